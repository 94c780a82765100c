package output

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ylchen07/sentry-cli/internal/sentry"
)

const titleWidth = 50

// Issues renders a list of issues as a table or a JSON array.
func (r *Renderer) Issues(issues []sentry.Issue) error {
	if r.opts.Format == FormatJSON {
		if issues == nil {
			issues = []sentry.Issue{}
		}
		return r.JSON(issues)
	}

	if len(issues) == 0 {
		fmt.Fprintln(r.out, "No issues found.")
		return nil
	}

	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, []string{
			issue.ID,
			issue.ShortID,
			truncate(issue.Title, titleWidth),
			r.statusLabel(issue.Status),
			issue.Count,
			r.relativeTime(issue.LastSeen),
		})
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Short ID", "Title", "Status", "Events", "Last Seen").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style { return cell })

	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintf(r.out, "Showing %d issue(s)\n", len(issues))
	return nil
}

// Issue renders a single issue in detail or as a JSON object.
func (r *Renderer) Issue(issue *sentry.Issue) error {
	if r.opts.Format == FormatJSON {
		return r.JSON(issue)
	}

	label := func(s string) string {
		return r.bold.Sprint(fmt.Sprintf("%-12s", s))
	}

	var b strings.Builder
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "%s: %s\n", r.bold.Sprint("Issue"), r.cyan.Sprint(issue.ShortID))
	fmt.Fprintln(&b, strings.Repeat("=", 80))
	fmt.Fprintf(&b, "%s %s\n", label("Title:"), issue.Title)
	fmt.Fprintf(&b, "%s %s\n", label("Status:"), r.statusLabel(issue.Status))
	fmt.Fprintf(&b, "%s %s\n", label("Level:"), issue.Level)
	fmt.Fprintf(&b, "%s %s (%s)\n", label("Project:"), issue.Project.Name, issue.Project.Slug)
	fmt.Fprintf(&b, "%s %s\n", label("First Seen:"), formatTimestamp(issue.FirstSeen))
	fmt.Fprintf(&b, "%s %s\n", label("Last Seen:"), formatTimestamp(issue.LastSeen))
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "%s %s total (%s users affected)\n", label("Events:"), issue.Count, strconv.FormatInt(issue.UserCount, 10))
	fmt.Fprintln(&b)

	if issue.AssignedTo != nil {
		who := issue.AssignedTo.Email
		if who == "" {
			who = issue.AssignedTo.Type
		}
		fmt.Fprintf(&b, "%s %s (%s)\n", label("Assigned:"), issue.AssignedTo.Name, who)
	} else {
		fmt.Fprintf(&b, "%s %s\n", label("Assigned:"), r.faint.Sprint("Unassigned"))
	}

	if issue.Culprit != "" {
		fmt.Fprintf(&b, "%s %s\n", label("Culprit:"), issue.Culprit)
	}

	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "%s %s\n", label("Link:"), r.blue.Sprint(issue.Permalink))
	fmt.Fprintln(&b)

	_, err := fmt.Fprint(r.out, b.String())
	return err
}

func (r *Renderer) statusLabel(status sentry.IssueStatus) string {
	switch status {
	case sentry.StatusResolved:
		return r.green.Sprint(string(status))
	case sentry.StatusUnresolved:
		return r.red.Sprint(string(status))
	case sentry.StatusIgnored:
		return r.yellow.Sprint(string(status))
	case sentry.StatusReprocessing:
		return r.cyan.Sprint(string(status))
	default:
		return string(status)
	}
}

func (r *Renderer) relativeTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	d := r.now().Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hr ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(d/(24*time.Hour)))
	default:
		return t.UTC().Format("2006-01-02")
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}

// truncate shortens s to at most limit runes, marking the cut with "...".
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
