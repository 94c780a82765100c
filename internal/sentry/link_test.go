package sentry

import "testing"

func TestNextCursor(t *testing.T) {
	t.Parallel()

	const prev = `<https://sentry.io/api/0/organizations/acme/issues/?&cursor=1700000000000:0:1>; rel="previous"; results="false"; cursor="1700000000000:0:1"`

	cases := []struct {
		name   string
		link   string
		want   string
		wantOK bool
	}{
		{
			name:   "next with results",
			link:   prev + `, <https://sentry.io/api/0/organizations/acme/issues/?&cursor=1700000000000:100:0>; rel="next"; results="true"; cursor="1700000000000:100:0"`,
			want:   "1700000000000:100:0",
			wantOK: true,
		},
		{
			name: "next without results",
			link: prev + `, <https://sentry.io/api/0/organizations/acme/issues/?&cursor=1700000000000:100:0>; rel="next"; results="false"; cursor="1700000000000:100:0"`,
		},
		{
			name: "only previous",
			link: `<https://sentry.io/x>; rel="previous"; results="true"; cursor="0:0:1"`,
		},
		{name: "empty header", link: ""},
		{name: "garbage", link: "not a link header"},
		{
			name:   "unquoted cursor",
			link:   `<https://sentry.io/x>; rel="next"; results="true"; cursor=abc`,
			want:   "abc",
			wantOK: true,
		},
		{
			name: "qualifying entry without cursor",
			link: `<https://sentry.io/x>; rel="next"; results="true"`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := nextCursor(tc.link)
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("nextCursor = (%q, %t), want (%q, %t)", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}
