package sentry

import (
	"net/http"
	"testing"

	"github.com/ylchen07/sentry-cli/internal/apperr"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		status     int
		header     http.Header
		body       string
		kind       apperr.Kind
		message    string
		retryAfter int
	}{
		{"unauthorized", 401, nil, `{"detail":"Invalid token"}`, apperr.KindAuth, "Invalid token", 0},
		{"forbidden", 403, nil, `{"detail":"You do not have permission"}`, apperr.KindForbidden, "You do not have permission", 0},
		{"not found", 404, nil, `{"detail":"The requested resource does not exist"}`, apperr.KindNotFound, "The requested resource does not exist", 0},
		{"rate limited with header", 429, http.Header{"Retry-After": []string{"120"}}, "", apperr.KindRateLimited, "", 120},
		{"rate limited without header", 429, http.Header{}, "", apperr.KindRateLimited, "", 60},
		{"rate limited unparseable header", 429, http.Header{"Retry-After": []string{"soon"}}, "", apperr.KindRateLimited, "", 60},
		{"rate limited zero header", 429, http.Header{"Retry-After": []string{"0"}}, "", apperr.KindRateLimited, "", 0},
		{"rate limited negative header", 429, http.Header{"Retry-After": []string{"-5"}}, "", apperr.KindRateLimited, "", 60},
		{"server error raw body", 500, nil, "Internal Server Error", apperr.KindAPI, "Internal Server Error", 0},
		{"json without detail", 502, nil, `{"error":"bad gateway"}`, apperr.KindAPI, `{"error":"bad gateway"}`, 0},
		{"bad request detail", 400, nil, `{"detail":"Invalid query"}`, apperr.KindAPI, "Invalid query", 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := classify(tc.status, tc.header, []byte(tc.body))
			if err.Kind != tc.kind {
				t.Fatalf("Kind = %v, want %v", err.Kind, tc.kind)
			}
			if err.Message != tc.message {
				t.Fatalf("Message = %q, want %q", err.Message, tc.message)
			}
			if err.RetryAfter != tc.retryAfter {
				t.Fatalf("RetryAfter = %d, want %d", err.RetryAfter, tc.retryAfter)
			}
			if tc.kind == apperr.KindAPI && err.Status != tc.status {
				t.Fatalf("Status = %d, want %d", err.Status, tc.status)
			}
		})
	}
}

func TestClassifyMessageText(t *testing.T) {
	t.Parallel()

	got := classify(500, nil, []byte(`{"detail":"boom"}`)).Error()
	if got != "API error (500): boom" {
		t.Fatalf("unexpected message: %s", got)
	}
}
