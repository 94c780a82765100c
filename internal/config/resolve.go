package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/ylchen07/sentry-cli/internal/apperr"
)

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"auth_token":  EnvAuthToken,
	"server_url":  EnvServerURL,
	"default_org": EnvOrg,
}

// Overrides holds values given explicitly on the command line.
type Overrides struct {
	Token     string
	ServerURL string
	Org       string
}

// Settings are the resolved connection parameters.
type Settings struct {
	AuthToken string
	ServerURL string
	Org       string
}

// Resolve merges overrides, environment and file values, in that order of precedence.
func Resolve(f File, o Overrides) (Settings, error) {
	token, err := f.ResolveAuthToken(o.Token)
	if err != nil {
		return Settings{}, err
	}

	org, err := f.ResolveOrg(o.Org)
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		AuthToken: token,
		ServerURL: f.ResolveServerURL(o.ServerURL),
		Org:       org,
	}, nil
}

// ResolveAuthToken returns override, SENTRY_AUTH_TOKEN or the file value.
func (f File) ResolveAuthToken(override string) (string, error) {
	if v := f.layered("auth_token", override); v != "" {
		return v, nil
	}
	return "", apperr.Auth("No auth token found. Set SENTRY_AUTH_TOKEN or configure in config file")
}

// ResolveServerURL returns override, SENTRY_SERVER_URL, the file value or DefaultServerURL.
func (f File) ResolveServerURL(override string) string {
	return f.layered("server_url", override)
}

// ResolveOrg returns override, SENTRY_ORG or the file value.
func (f File) ResolveOrg(override string) (string, error) {
	if v := f.layered("default_org", override); v != "" {
		return v, nil
	}
	return "", apperr.Config("No organization specified. Use --org or configure default_org")
}

// TokenSource reports where the token ResolveAuthToken would use comes from:
// "env", "config" or "" when neither supplies one.
func (f File) TokenSource() string {
	switch {
	case envViper().GetString("auth_token") != "":
		return "env"
	case strings.TrimSpace(f.AuthToken) != "":
		return "config"
	default:
		return ""
	}
}

// layered resolves key through viper's override > env > config > default chain.
func (f File) layered(key, override string) string {
	v := envViper()
	v.SetDefault("server_url", DefaultServerURL)

	// Empty file values stay out of the config layer so they cannot mask the default.
	values := make(map[string]any)
	for k, val := range f.values() {
		if strings.TrimSpace(val) != "" {
			values[k] = val
		}
	}
	if err := v.MergeConfigMap(values); err != nil {
		return ""
	}

	if override = strings.TrimSpace(override); override != "" {
		v.Set(key, override)
	}

	return strings.TrimSpace(v.GetString(key))
}

func envViper() *viper.Viper {
	v := viper.New()
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
	return v
}

func (f File) values() map[string]string {
	return map[string]string{
		"default_org":     f.DefaultOrg,
		"server_url":      f.ServerURL,
		"auth_token":      f.AuthToken,
		"default_project": f.DefaultProject,
	}
}
