package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/ylchen07/sentry-cli/internal/apperr"
)

const (
	// AppName names the directory holding config.toml under the user config dir.
	AppName = "sentry-cli"

	// DefaultServerURL is used when no server URL is configured anywhere.
	DefaultServerURL = "https://sentry.io"

	// EnvAuthToken overrides auth_token from the config file.
	EnvAuthToken = "SENTRY_AUTH_TOKEN"
	// EnvServerURL overrides server_url from the config file.
	EnvServerURL = "SENTRY_SERVER_URL"
	// EnvOrg overrides default_org from the config file.
	EnvOrg = "SENTRY_ORG"
)

// Keys lists the settable config keys in file order.
var Keys = []string{"default_org", "server_url", "auth_token", "default_project"}

// File represents config.toml. Every field is optional.
type File struct {
	DefaultOrg     string `mapstructure:"default_org" toml:"default_org,omitempty"`
	ServerURL      string `mapstructure:"server_url" toml:"server_url,omitempty"`
	AuthToken      string `mapstructure:"auth_token" toml:"auth_token,omitempty"`
	DefaultProject string `mapstructure:"default_project" toml:"default_project,omitempty"`
}

const template = `# Sentry CLI Configuration

# Default organization slug
# default_org = "my-organization"

# Sentry server URL (for self-hosted instances)
# server_url = "https://sentry.io"

# Auth token (SENTRY_AUTH_TOKEN env var takes precedence)
# auth_token = "sntrys_..."

# Default project slug
# default_project = "my-project"
`

// DefaultPath returns <user config dir>/sentry-cli/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		dir = "."
	}
	return filepath.Join(dir, AppName, "config.toml")
}

// Load reads the config file at path. A missing file is not an error and
// yields an empty File.
func Load(path string) (File, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return File{}, nil
		}
		return File{}, apperr.ConfigWrap("read "+path, err)
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return File{}, apperr.ConfigWrap("parse "+path, err)
	}

	return f, nil
}

// Save writes f to path as TOML, creating the parent directory if needed.
func Save(path string, f File) error {
	data, err := toml.Marshal(f)
	if err != nil {
		return apperr.ConfigWrap("failed to serialize config", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return apperr.IO(err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return apperr.IO(err)
	}

	return nil
}

// Init writes the commented starter file. It refuses to overwrite an existing file.
func Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return apperr.Config(fmt.Sprintf("Config file already exists at %s", path))
	} else if !errors.Is(err, fs.ErrNotExist) {
		return apperr.IO(err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return apperr.IO(err)
	}

	if err := os.WriteFile(path, []byte(template), 0o600); err != nil {
		return apperr.IO(err)
	}

	return nil
}

// Set assigns value to the named key.
func (f *File) Set(key, value string) error {
	switch key {
	case "default_org":
		f.DefaultOrg = value
	case "server_url":
		f.ServerURL = value
	case "auth_token":
		f.AuthToken = value
	case "default_project":
		f.DefaultProject = value
	default:
		return apperr.Validation(fmt.Sprintf("Unknown config key: %s. Valid keys: %s", key, strings.Join(Keys, ", ")))
	}
	return nil
}
