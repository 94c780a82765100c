package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ylchen07/sentry-cli/internal/apperr"
	"github.com/ylchen07/sentry-cli/internal/sentry"
)

func (a *app) newIssuesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "issues",
		Aliases: []string{"i"},
		Short:   "Manage Sentry issues",
		Example: `  sentry issues list --project myproject
  sentry issues list --status unresolved --limit 50
  sentry issues view ISSUE-123
  sentry issues resolve ISSUE-123 ISSUE-456`,
	}

	cmd.AddCommand(
		a.newListCommand(),
		a.newViewCommand(),
		a.newResolveCommand(),
		a.newUnresolveCommand(),
		a.newAssignCommand(),
		a.newIgnoreCommand(),
		a.newDeleteCommand(),
		a.newMergeCommand(),
	)

	return cmd
}

func (a *app) newListCommand() *cobra.Command {
	var (
		project string
		status  string
		query   string
		sort    string
		limit   int
		all     bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List issues with optional filtering",
		Example: `  sentry issues list
  sentry issues list --project myproject --status unresolved
  sentry issues list --query "is:unresolved" --limit 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return apperr.Validation(fmt.Sprintf("--limit must be positive, got %d", limit))
			}

			params := sentry.ListIssuesParams{
				Query: query,
				Sort:  sort,
				Limit: limit,
			}

			if status != "" {
				parsed, err := sentry.ParseStatus(status)
				if err != nil {
					return err
				}
				params.Status = parsed
			}

			client, file, err := a.client()
			if err != nil {
				return err
			}

			params.Projects = splitProjects(project)
			if len(params.Projects) == 0 && file.DefaultProject != "" {
				params.Projects = []string{file.DefaultProject}
			}

			var issues []sentry.Issue
			if all {
				issues, err = client.ListAllIssues(cmd.Context(), params)
			} else {
				issues, err = client.ListIssues(cmd.Context(), params)
			}
			if err != nil {
				return err
			}

			return a.renderer.Issues(issues)
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Filter by project slug(s), comma-separated")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status: unresolved, resolved, ignored")
	cmd.Flags().StringVar(&query, "query", "", "Sentry search query string")
	cmd.Flags().StringVar(&sort, "sort", "date", "Sort by: date, new, freq, user")
	cmd.Flags().IntVar(&limit, "limit", 25, "Maximum number of results per page")
	cmd.Flags().BoolVar(&all, "all", false, "Fetch all pages (may be slow for large result sets)")

	return cmd
}

func (a *app) newViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "view <issue-id>",
		Aliases: []string{"show", "v"},
		Short:   "View detailed issue information",
		Example: `  sentry issues view ISSUE-123
  sentry issues view 12345678`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := a.client()
			if err != nil {
				return err
			}

			issue, err := client.GetIssue(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return a.renderer.Issue(issue)
		},
	}
}

func (a *app) newResolveCommand() *cobra.Command {
	var (
		inRelease     string
		inNextRelease bool
	)

	cmd := &cobra.Command{
		Use:     "resolve <issue-id>...",
		Aliases: []string{"r"},
		Short:   "Resolve one or more issues",
		Example: `  sentry issues resolve ISSUE-123
  sentry issues resolve ISSUE-123 ISSUE-456 --in-next-release`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update := sentry.IssueUpdate{Status: sentry.Ptr(sentry.StatusResolved)}
			if inRelease != "" || inNextRelease {
				details := &sentry.StatusDetails{}
				if inRelease != "" {
					details.InRelease = sentry.Ptr(inRelease)
				}
				if inNextRelease {
					details.InNextRelease = sentry.Ptr(true)
				}
				update.StatusDetails = details
			}

			return a.applyUpdate(cmd, args, update, func(issue *sentry.Issue) string {
				return fmt.Sprintf("Issue %s resolved.", issue.ShortID)
			}, fmt.Sprintf("Resolved %d issues.", len(args)))
		},
	}

	cmd.Flags().StringVar(&inRelease, "in-release", "", "Mark resolved in specific release")
	cmd.Flags().BoolVar(&inNextRelease, "in-next-release", false, "Mark resolved in next release")

	return cmd
}

func (a *app) newUnresolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "unresolve <issue-id>...",
		Short:   "Unresolve one or more issues",
		Example: `  sentry issues unresolve ISSUE-123`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update := sentry.IssueUpdate{Status: sentry.Ptr(sentry.StatusUnresolved)}
			return a.applyUpdate(cmd, args, update, func(issue *sentry.Issue) string {
				return fmt.Sprintf("Issue %s unresolved.", issue.ShortID)
			}, fmt.Sprintf("Unresolved %d issues.", len(args)))
		},
	}
}

func (a *app) newAssignCommand() *cobra.Command {
	var (
		to       string
		unassign bool
	)

	cmd := &cobra.Command{
		Use:     "assign <issue-id>...",
		Aliases: []string{"a"},
		Short:   "Assign issue(s) to a user or team",
		Example: `  sentry issues assign ISSUE-123 --to user@example.com
  sentry issues assign ISSUE-123 --to team:backend
  sentry issues assign ISSUE-123 --unassign`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var update sentry.IssueUpdate
			switch {
			case unassign:
				update.AssignedTo = sentry.Ptr("")
			case strings.TrimSpace(to) != "":
				update.AssignedTo = sentry.Ptr(strings.TrimSpace(to))
			default:
				return apperr.Validation("Must specify --to <user> or --unassign")
			}

			if unassign {
				return a.applyUpdate(cmd, args, update, func(issue *sentry.Issue) string {
					return fmt.Sprintf("Issue %s unassigned.", issue.ShortID)
				}, fmt.Sprintf("Unassigned %d issues.", len(args)))
			}

			return a.applyUpdate(cmd, args, update, func(issue *sentry.Issue) string {
				assignee := "unknown"
				if issue.AssignedTo != nil && issue.AssignedTo.Name != "" {
					assignee = issue.AssignedTo.Name
				}
				return fmt.Sprintf("Issue %s assigned to %s.", issue.ShortID, assignee)
			}, fmt.Sprintf("Assigned %d issues.", len(args)))
		},
	}

	cmd.Flags().StringVar(&to, "to", "", `User email or team slug (prefix with "team:")`)
	cmd.Flags().BoolVar(&unassign, "unassign", false, "Remove assignment instead")
	cmd.MarkFlagsMutuallyExclusive("to", "unassign")

	return cmd
}

func (a *app) newIgnoreCommand() *cobra.Command {
	var (
		duration        uint64
		count           uint64
		untilEscalating bool
	)

	cmd := &cobra.Command{
		Use:   "ignore <issue-id>...",
		Short: "Ignore issue(s)",
		Example: `  sentry issues ignore ISSUE-123 --duration 60
  sentry issues ignore ISSUE-123 --count 100
  sentry issues ignore ISSUE-123 --until-escalating`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hasDuration := cmd.Flags().Changed("duration")
			hasCount := cmd.Flags().Changed("count")

			update := sentry.IssueUpdate{Status: sentry.Ptr(sentry.StatusIgnored)}
			if hasDuration || hasCount || untilEscalating {
				details := &sentry.StatusDetails{}
				if hasDuration {
					details.IgnoreDuration = sentry.Ptr(duration)
				}
				if hasCount {
					details.IgnoreCount = sentry.Ptr(count)
				}
				if untilEscalating {
					details.IgnoreUntilEscalating = sentry.Ptr(true)
				}
				update.StatusDetails = details
			}

			var detail string
			switch {
			case hasDuration:
				detail = fmt.Sprintf(" for %d minutes", duration)
			case hasCount:
				detail = fmt.Sprintf(" until %d more events", count)
			case untilEscalating:
				detail = " until escalating"
			}

			return a.applyUpdate(cmd, args, update, func(issue *sentry.Issue) string {
				return fmt.Sprintf("Issue %s ignored%s.", issue.ShortID, detail)
			}, fmt.Sprintf("Ignored %d issues.", len(args)))
		},
	}

	cmd.Flags().Uint64Var(&duration, "duration", 0, "Ignore for N minutes")
	cmd.Flags().Uint64Var(&count, "count", 0, "Ignore until N more events")
	cmd.Flags().BoolVar(&untilEscalating, "until-escalating", false, "Ignore until escalating")

	return cmd
}

func (a *app) newDeleteCommand() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:     "delete <issue-id>...",
		Short:   "Delete issue(s)",
		Example: `  sentry issues delete ISSUE-123 --confirm`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				ok, err := prompt(cmd, fmt.Sprintf("Are you sure you want to delete %d issue(s)? [y/N]: ", len(args)))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			client, _, err := a.client()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				if err := client.DeleteIssue(cmd.Context(), args[0]); err != nil {
					return err
				}
				a.renderer.Success(fmt.Sprintf("Issue %s deleted.", args[0]))
				return nil
			}

			if err := client.DeleteIssues(cmd.Context(), args); err != nil {
				return err
			}
			a.renderer.Success(fmt.Sprintf("Deleted %d issues.", len(args)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "Skip confirmation prompt")

	return cmd
}

func (a *app) newMergeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "merge <primary-id> <issue-id>...",
		Short:   "Merge multiple issues into one",
		Example: `  sentry issues merge ISSUE-123 ISSUE-456 ISSUE-789`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := a.client()
			if err != nil {
				return err
			}

			others := args[1:]
			merged, err := client.MergeIssues(cmd.Context(), args[0], others)
			if err != nil {
				return err
			}

			a.renderer.Success(fmt.Sprintf("Merged %d issue(s) into %s.", len(others), merged.Survivor(args[0])))
			return nil
		},
	}
}

// applyUpdate sends update to the single-issue endpoint for one id and to the
// bulk endpoint otherwise.
func (a *app) applyUpdate(cmd *cobra.Command, ids []string, update sentry.IssueUpdate, single func(*sentry.Issue) string, bulk string) error {
	client, _, err := a.client()
	if err != nil {
		return err
	}

	if len(ids) == 1 {
		issue, err := client.UpdateIssue(cmd.Context(), ids[0], update)
		if err != nil {
			return err
		}
		if issue.ShortID == "" {
			issue.ShortID = ids[0]
		}
		a.renderer.Success(single(issue))
		return nil
	}

	if err := client.UpdateIssues(cmd.Context(), ids, update); err != nil {
		return err
	}
	a.renderer.Success(bulk)
	return nil
}

// prompt writes question and reports whether the next input line is "y".
func prompt(cmd *cobra.Command, question string) (bool, error) {
	fmt.Fprint(cmd.OutOrStdout(), question)

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, apperr.IO(err)
	}

	return strings.EqualFold(strings.TrimSpace(line), "y"), nil
}

func splitProjects(value string) []string {
	var projects []string
	for _, p := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			projects = append(projects, trimmed)
		}
	}
	return projects
}
