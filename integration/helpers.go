package integration

import (
	"os"
	"strings"
	"testing"

	"github.com/ylchen07/sentry-cli/internal/config"
	"github.com/ylchen07/sentry-cli/internal/sentry"
	"github.com/ylchen07/sentry-cli/pkg/logging"
)

// requireIntegration skips the test if SENTRY_INTEGRATION environment variable is not set.
func requireIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("SENTRY_INTEGRATION") == "" {
		t.Skip("SENTRY_INTEGRATION not set; skipping integration tests")
	}
}

// resolveEnv returns the first non-empty environment variable value from the provided keys.
func resolveEnv(keys ...string) string {
	for _, key := range keys {
		if val := os.Getenv(key); strings.TrimSpace(val) != "" {
			return val
		}
	}
	return ""
}

// setupClient creates a Sentry client from the same environment variables the CLI reads.
// The test is skipped when token or organization are missing.
func setupClient(t *testing.T) *sentry.Client {
	t.Helper()

	settings, err := config.Resolve(config.File{}, config.Overrides{})
	if err != nil {
		t.Skipf("Sentry credentials not provided: %v", err)
	}

	level := "warn"
	if resolveEnv("SENTRY_INTEGRATION_VERBOSE") != "" {
		level = "debug"
	}

	client, err := sentry.NewClient(settings.ServerURL, settings.Org, settings.AuthToken, logging.New(level, nil))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

// projectFilter returns the optional project slug to scope listings to.
func projectFilter() []string {
	if project := resolveEnv("SENTRY_INTEGRATION_PROJECT", "SENTRY_PROJECT"); project != "" {
		return []string{project}
	}
	return nil
}

// skipIfEmpty skips the test if the provided slice is empty with a helpful message.
func skipIfEmpty[T any](t *testing.T, items []T, itemType string) {
	t.Helper()
	if len(items) == 0 {
		t.Skipf("no %s found; cannot proceed with test", itemType)
	}
}
