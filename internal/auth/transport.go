package auth

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/ylchen07/sentry-cli/internal/apperr"
)

// UserAgent identifies the CLI to the Sentry server.
const UserAgent = "sentry-cli-go"

// Transport injects the Sentry bearer token into outbound requests.
type Transport struct {
	base       http.RoundTripper
	authHeader string
	once       sync.Once
	initErr    error
	token      string
}

// NewTransport creates a new auth transport wrapping the provided RoundTripper.
func NewTransport(base http.RoundTripper, token string) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, token: token}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.initialize(); err != nil {
		return nil, err
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", t.authHeader)
	clone.Header.Set("Accept", "application/json")
	if clone.Header.Get("User-Agent") == "" {
		clone.Header.Set("User-Agent", UserAgent)
	}
	return t.base.RoundTrip(clone)
}

func (t *Transport) initialize() error {
	t.once.Do(func() {
		token := strings.TrimSpace(t.token)
		if token == "" {
			t.initErr = apperr.Auth("insufficient credentials")
			return
		}
		t.authHeader = fmt.Sprintf("Bearer %s", token)
	})
	return t.initErr
}
