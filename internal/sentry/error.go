package sentry

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ylchen07/sentry-cli/internal/apperr"
)

type errorBody struct {
	Detail *string `json:"detail"`
}

// classify maps a non-2xx response onto an apperr kind.
func classify(status int, header http.Header, body []byte) *apperr.Error {
	switch status {
	case http.StatusUnauthorized:
		return apperr.Auth(errorMessage(body))
	case http.StatusForbidden:
		return apperr.Forbidden(errorMessage(body))
	case http.StatusNotFound:
		return apperr.NotFound(errorMessage(body))
	case http.StatusTooManyRequests:
		return apperr.RateLimited(retryAfter(header))
	default:
		return apperr.API(status, errorMessage(body))
	}
}

// errorMessage prefers the "detail" field of a JSON body, else the raw body.
func errorMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Detail != nil {
		return *eb.Detail
	}
	return string(body)
}

func retryAfter(header http.Header) int {
	if header == nil {
		return apperr.DefaultRetryAfter
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(header.Get("Retry-After")))
	if err != nil || seconds < 0 {
		return apperr.DefaultRetryAfter
	}
	return seconds
}
