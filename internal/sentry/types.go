package sentry

import (
	"fmt"
	"strings"
	"time"

	"github.com/ylchen07/sentry-cli/internal/apperr"
)

// IssueStatus is the lifecycle state of an issue.
type IssueStatus string

const (
	StatusResolved     IssueStatus = "resolved"
	StatusUnresolved   IssueStatus = "unresolved"
	StatusIgnored      IssueStatus = "ignored"
	StatusReprocessing IssueStatus = "reprocessing"
)

func (s IssueStatus) String() string {
	return string(s)
}

// ParseStatus accepts the filterable statuses, case-insensitively.
func ParseStatus(value string) (IssueStatus, error) {
	switch IssueStatus(strings.ToLower(strings.TrimSpace(value))) {
	case StatusResolved:
		return StatusResolved, nil
	case StatusUnresolved:
		return StatusUnresolved, nil
	case StatusIgnored:
		return StatusIgnored, nil
	default:
		return "", apperr.Validation(fmt.Sprintf("unknown status %q (expected resolved, unresolved or ignored)", value))
	}
}

// Actor is a user or team an issue can be assigned to.
type Actor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Type  string `json:"type"`
}

// ProjectRef identifies the project an issue belongs to.
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// IssueMetadata is the error detail Sentry extracted from the first event.
type IssueMetadata struct {
	Value    string `json:"value,omitempty"`
	Filename string `json:"filename,omitempty"`
	Function string `json:"function,omitempty"`
}

// Issue is a grouped error as returned by the issues endpoints.
type Issue struct {
	ID           string        `json:"id"`
	ShortID      string        `json:"shortId"`
	Title        string        `json:"title"`
	Culprit      string        `json:"culprit,omitempty"`
	Level        string        `json:"level"`
	Status       IssueStatus   `json:"status"`
	Count        string        `json:"count"`
	UserCount    int64         `json:"userCount"`
	FirstSeen    time.Time     `json:"firstSeen"`
	LastSeen     time.Time     `json:"lastSeen"`
	Permalink    string        `json:"permalink"`
	Project      ProjectRef    `json:"project"`
	AssignedTo   *Actor        `json:"assignedTo"`
	IsBookmarked bool          `json:"isBookmarked"`
	IsSubscribed bool          `json:"isSubscribed"`
	HasSeen      bool          `json:"hasSeen"`
	Metadata     IssueMetadata `json:"metadata"`
}

// IssueUpdate is a sparse patch: nil fields are not transmitted.
// AssignedTo pointing at "" unassigns.
type IssueUpdate struct {
	Status         *IssueStatus   `json:"status,omitempty"`
	AssignedTo     *string        `json:"assignedTo,omitempty"`
	HasSeen        *bool          `json:"hasSeen,omitempty"`
	IsBookmarked   *bool          `json:"isBookmarked,omitempty"`
	Merge          *bool          `json:"merge,omitempty"`
	IgnoreDuration *uint64        `json:"ignoreDuration,omitempty"`
	IgnoreCount    *uint64        `json:"ignoreCount,omitempty"`
	IgnoreWindow   *uint64        `json:"ignoreWindow,omitempty"`
	StatusDetails  *StatusDetails `json:"statusDetails,omitempty"`
}

// StatusDetails carries the parameters of a status change.
type StatusDetails struct {
	InRelease             *string `json:"inRelease,omitempty"`
	InNextRelease         *bool   `json:"inNextRelease,omitempty"`
	IgnoreDuration        *uint64 `json:"ignoreDuration,omitempty"`
	IgnoreCount           *uint64 `json:"ignoreCount,omitempty"`
	IgnoreUntilEscalating *bool   `json:"ignoreUntilEscalating,omitempty"`
}

// ListIssuesParams describes one issue listing. Zero values are omitted from the request.
type ListIssuesParams struct {
	Projects []string
	Query    string
	Status   IssueStatus
	Sort     string
	Limit    int
	Cursor   string
}

// MergeResult describes the outcome of a merge. Depending on the server the
// response is either the surviving issue or a merge object; ShortID is set in
// the first case, Parent and Children in the second.
type MergeResult struct {
	ShortID  string   `json:"shortId,omitempty"`
	Parent   string   `json:"parent,omitempty"`
	Children []string `json:"children,omitempty"`
}

// Survivor names the issue the others were merged into, preferring the short
// id, then the parent id, then fallback.
func (m MergeResult) Survivor(fallback string) string {
	switch {
	case m.ShortID != "":
		return m.ShortID
	case m.Parent != "":
		return m.Parent
	default:
		return fallback
	}
}

type mergeResponse struct {
	ShortID string `json:"shortId"`
	Merge   struct {
		Parent   string   `json:"parent"`
		Children []string `json:"children"`
	} `json:"merge"`
}

// Ptr returns a pointer to v, for filling sparse patches.
func Ptr[T any](v T) *T {
	return &v
}
