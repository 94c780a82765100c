package sentry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombinedQuery(t *testing.T) {
	t.Parallel()

	for _, status := range []IssueStatus{StatusResolved, StatusUnresolved, StatusIgnored} {
		assert.Equal(t, "level:error is:"+string(status), combinedQuery("level:error", status))
		assert.Equal(t, "is:"+string(status), combinedQuery("", status))
	}
	assert.Equal(t, "browser:Chrome", combinedQuery("browser:Chrome", ""))
	assert.Empty(t, combinedQuery("", ""))
}

func TestIssueListQuery(t *testing.T) {
	t.Parallel()

	params := ListIssuesParams{
		Projects: []string{"web", "api"},
		Query:    "is:assigned",
		Status:   StatusUnresolved,
		Sort:     "freq",
		Limit:    25,
		Cursor:   "0:25:0",
	}

	q := issueListQuery(params)
	assert.Equal(t, []string{"web", "api"}, q["project"])
	assert.Equal(t, "is:assigned is:unresolved", q.Get("query"))
	assert.Equal(t, "freq", q.Get("sort"))
	assert.Equal(t, "25", q.Get("limit"))
	assert.Equal(t, "0:25:0", q.Get("cursor"))

	assert.Equal(t,
		"cursor=0%3A25%3A0&limit=25&project=web&project=api&query=is%3Aassigned+is%3Aunresolved&sort=freq",
		q.Encode(),
		"encoding must be stable")
}

func TestIssueListQueryOmitsAbsent(t *testing.T) {
	t.Parallel()

	assert.Empty(t, issueListQuery(ListIssuesParams{}).Encode())
	assert.Equal(t, "limit=10", issueListQuery(ListIssuesParams{Limit: 10}).Encode())
}

func TestIDsQuery(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "id=42&id=7&id=100", idsQuery([]string{"42", "7", "100"}).Encode())
}
