package sentry

import (
	"context"
	"net/http"

	"github.com/ylchen07/sentry-cli/internal/apperr"
)

func (c *Client) issuesPath() string {
	return apiPath("organizations", c.org, "issues")
}

func (c *Client) issuePath(id string) string {
	return apiPath("organizations", c.org, "issues", id)
}

// ListIssues fetches a single page of issues.
func (c *Client) ListIssues(ctx context.Context, params ListIssuesParams) ([]Issue, error) {
	issues, _, err := c.listPage(ctx, params)
	if err != nil {
		return nil, err
	}
	return issues, nil
}

// ListAllIssues follows the Link header cursor until the server reports no
// further results. Pages are appended in the order they were fetched. Any
// failed page discards what was already collected.
func (c *Client) ListAllIssues(ctx context.Context, params ListIssuesParams) ([]Issue, error) {
	var all []Issue
	page := params
	page.Cursor = ""

	for number := 1; ; number++ {
		c.logger.Debug("fetching page", "page", number)

		issues, header, err := c.listPage(ctx, page)
		if err != nil {
			return nil, err
		}

		all = append(all, issues...)
		c.logger.Debug("page", "page", number, "count", len(issues), "total", len(all))

		cursor, ok := nextCursor(header.Get("Link"))
		if !ok {
			break
		}
		page.Cursor = cursor
	}

	if all == nil {
		all = []Issue{}
	}
	return all, nil
}

func (c *Client) listPage(ctx context.Context, params ListIssuesParams) ([]Issue, http.Header, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, c.issuesPath(), issueListQuery(params), nil)
	if err != nil {
		return nil, nil, err
	}

	issues := []Issue{}
	header, err := c.Do(req, &issues)
	if err != nil {
		return nil, nil, err
	}

	return issues, header, nil
}

// GetIssue fetches one issue by numeric or short id.
func (c *Client) GetIssue(ctx context.Context, id string) (*Issue, error) {
	if id == "" {
		return nil, apperr.Validation("issue id required")
	}

	req, err := c.NewRequest(ctx, http.MethodGet, c.issuePath(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var issue Issue
	if _, err := c.Do(req, &issue); err != nil {
		return nil, err
	}

	return &issue, nil
}

// UpdateIssue applies update to a single issue and returns the updated resource.
func (c *Client) UpdateIssue(ctx context.Context, id string, update IssueUpdate) (*Issue, error) {
	if id == "" {
		return nil, apperr.Validation("issue id required")
	}

	req, err := c.NewRequest(ctx, http.MethodPut, c.issuePath(id), nil, update)
	if err != nil {
		return nil, err
	}

	var issue Issue
	if _, err := c.Do(req, &issue); err != nil {
		return nil, err
	}

	return &issue, nil
}

// UpdateIssues applies update to every id in one bulk request.
func (c *Client) UpdateIssues(ctx context.Context, ids []string, update IssueUpdate) error {
	if len(ids) == 0 {
		return apperr.Validation("at least one issue id required")
	}

	req, err := c.NewRequest(ctx, http.MethodPut, c.issuesPath(), idsQuery(ids), update)
	if err != nil {
		return err
	}

	_, err = c.Do(req, nil)
	return err
}

// DeleteIssue removes a single issue.
func (c *Client) DeleteIssue(ctx context.Context, id string) error {
	if id == "" {
		return apperr.Validation("issue id required")
	}

	req, err := c.NewRequest(ctx, http.MethodDelete, c.issuePath(id), nil, nil)
	if err != nil {
		return err
	}

	_, err = c.Do(req, nil)
	return err
}

// DeleteIssues removes every id in one bulk request.
func (c *Client) DeleteIssues(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return apperr.Validation("at least one issue id required")
	}

	req, err := c.NewRequest(ctx, http.MethodDelete, c.issuesPath(), idsQuery(ids), nil)
	if err != nil {
		return err
	}

	_, err = c.Do(req, nil)
	return err
}

// MergeIssues merges others into primary through the bulk endpoint.
func (c *Client) MergeIssues(ctx context.Context, primary string, others []string) (*MergeResult, error) {
	if primary == "" || len(others) == 0 {
		return nil, apperr.Validation("merge requires a primary issue and at least one other issue")
	}

	ids := append([]string{primary}, others...)
	update := IssueUpdate{Merge: Ptr(true)}

	req, err := c.NewRequest(ctx, http.MethodPut, c.issuesPath(), idsQuery(ids), update)
	if err != nil {
		return nil, err
	}

	var res mergeResponse
	if _, err := c.Do(req, &res); err != nil {
		return nil, err
	}

	return &MergeResult{
		ShortID:  res.ShortID,
		Parent:   res.Merge.Parent,
		Children: res.Merge.Children,
	}, nil
}
