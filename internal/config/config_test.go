package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ylchen07/sentry-cli/internal/apperr"
)

// clearEnv unsets the connection variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAuthToken, EnvServerURL, EnvOrg} {
		t.Setenv(key, "")
	}
}

func TestResolveAuthTokenPrecedence(t *testing.T) {
	cases := []struct {
		name     string
		override string
		env      string
		file     string
		want     string
	}{
		{"override wins", "flag", "env", "file", "flag"},
		{"env beats file", "", "env", "file", "env"},
		{"file fallback", "", "", "file", "file"},
		{"override trimmed", "  flag  ", "", "", "flag"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvAuthToken, tc.env)

			f := File{AuthToken: tc.file}
			got, err := f.ResolveAuthToken(tc.override)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("ResolveAuthToken = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveAuthTokenMissing(t *testing.T) {
	clearEnv(t)

	_, err := File{}.ResolveAuthToken("")
	if apperr.KindOf(err) != apperr.KindAuth {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestResolveServerURLDefault(t *testing.T) {
	clearEnv(t)

	if got := (File{}).ResolveServerURL(""); got != DefaultServerURL {
		t.Fatalf("ResolveServerURL = %q, want default", got)
	}

	f := File{ServerURL: "https://file.example"}
	if got := f.ResolveServerURL(""); got != "https://file.example" {
		t.Fatalf("expected file to override default, got %q", got)
	}

	t.Setenv(EnvServerURL, "https://env.example")
	if got := f.ResolveServerURL(""); got != "https://env.example" {
		t.Fatalf("expected env to override file, got %q", got)
	}
	if got := f.ResolveServerURL("https://flag.example"); got != "https://flag.example" {
		t.Fatalf("expected flag to win, got %q", got)
	}
}

func TestResolveOrgMissing(t *testing.T) {
	clearEnv(t)

	_, err := File{}.ResolveOrg("")
	if apperr.KindOf(err) != apperr.KindConfig {
		t.Fatalf("expected config error, got %v", err)
	}

	t.Setenv(EnvOrg, "env-org")
	got, err := File{DefaultOrg: "acme"}.ResolveOrg("")
	if err != nil || got != "env-org" {
		t.Fatalf("ResolveOrg = %q, %v", got, err)
	}
}

func TestResolve(t *testing.T) {
	clearEnv(t)

	f := File{DefaultOrg: "acme", AuthToken: "secret"}
	s, err := Resolve(f, Overrides{ServerURL: "http://localhost:9000"})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if s.Org != "acme" || s.AuthToken != "secret" || s.ServerURL != "http://localhost:9000" {
		t.Fatalf("unexpected settings %#v", s)
	}

	if _, err := Resolve(File{DefaultOrg: "acme"}, Overrides{}); apperr.KindOf(err) != apperr.KindAuth {
		t.Fatalf("expected auth error first, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	f, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != (File{}) {
		t.Fatalf("expected empty config, got %#v", f)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `default_org = "acme"
server_url = "https://sentry.acme.dev"
auth_token = "sntrys_abc"
default_project = "backend"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	want := File{DefaultOrg: "acme", ServerURL: "https://sentry.acme.dev", AuthToken: "sntrys_abc", DefaultProject: "backend"}
	if f != want {
		t.Fatalf("Load = %#v, want %#v", f, want)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("default_org = = nope"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(path); apperr.KindOf(err) != apperr.KindConfig {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	in := File{DefaultOrg: "acme", DefaultProject: "web"}
	if err := Save(path, in); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(data), "auth_token") {
		t.Fatalf("unset keys must be omitted, got:\n%s", data)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if out != in {
		t.Fatalf("round trip = %#v, want %#v", out, in)
	}
}

func TestInitRefusesExisting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), AppName, "config.toml")
	if err := Init(path); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("template must parse: %v", err)
	}
	if f != (File{}) {
		t.Fatalf("template should only contain comments, got %#v", f)
	}

	if err := Init(path); apperr.KindOf(err) != apperr.KindConfig {
		t.Fatalf("expected config error on second init, got %v", err)
	}
}

func TestFileSet(t *testing.T) {
	t.Parallel()

	var f File
	for _, key := range Keys {
		if err := f.Set(key, "v-"+key); err != nil {
			t.Fatalf("Set(%s): %v", key, err)
		}
	}
	if f.DefaultOrg != "v-default_org" || f.AuthToken != "v-auth_token" || f.ServerURL != "v-server_url" || f.DefaultProject != "v-default_project" {
		t.Fatalf("unexpected file %#v", f)
	}

	err := f.Set("colour", "blue")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "default_project") {
		t.Fatalf("expected valid keys in message, got %q", err.Error())
	}
}

func TestTokenSourceMatchesResolution(t *testing.T) {
	clearEnv(t)

	if got := (File{}).TokenSource(); got != "" {
		t.Fatalf("TokenSource = %q, want empty", got)
	}
	if got := (File{AuthToken: "x"}).TokenSource(); got != "config" {
		t.Fatalf("TokenSource = %q, want config", got)
	}

	t.Setenv(EnvAuthToken, "y")
	f := File{AuthToken: "x"}
	if got := f.TokenSource(); got != "env" {
		t.Fatalf("TokenSource = %q, want env", got)
	}
	if token, _ := f.ResolveAuthToken(""); token != "y" {
		t.Fatalf("ResolveAuthToken = %q, want the env token", token)
	}
}
