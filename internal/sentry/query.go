package sentry

import (
	"net/url"
	"strconv"
)

// issueListQuery encodes params as query values. Projects repeat, the free-text
// query and status filter share one "query" value.
func issueListQuery(params ListIssuesParams) url.Values {
	q := url.Values{}

	for _, project := range params.Projects {
		q.Add("project", project)
	}

	if query := combinedQuery(params.Query, params.Status); query != "" {
		q.Set("query", query)
	}

	if params.Sort != "" {
		q.Set("sort", params.Sort)
	}

	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}

	if params.Cursor != "" {
		q.Set("cursor", params.Cursor)
	}

	return q
}

func combinedQuery(query string, status IssueStatus) string {
	switch {
	case query != "" && status != "":
		return query + " is:" + string(status)
	case status != "":
		return "is:" + string(status)
	default:
		return query
	}
}

func idsQuery(ids []string) url.Values {
	q := url.Values{}
	for _, id := range ids {
		q.Add("id", id)
	}
	return q
}
