package main

import "testing"

func TestColorEnabled(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		env      map[string]string
		terminal bool
		want     bool
	}{
		{"terminal", nil, true, true},
		{"pipe", nil, false, false},
		{"no color", map[string]string{"NO_COLOR": ""}, true, false},
		{"dumb terminal", map[string]string{"TERM": "dumb"}, true, false},
		{"xterm", map[string]string{"TERM": "xterm-256color"}, true, true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			lookup := func(key string) (string, bool) {
				v, ok := tc.env[key]
				return v, ok
			}
			if got := colorEnabled(lookup, tc.terminal); got != tc.want {
				t.Fatalf("colorEnabled = %t, want %t", got, tc.want)
			}
		})
	}
}
