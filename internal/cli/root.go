// Package cli wires the sentry command tree.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ylchen07/sentry-cli/internal/config"
	"github.com/ylchen07/sentry-cli/internal/output"
	"github.com/ylchen07/sentry-cli/internal/sentry"
	"github.com/ylchen07/sentry-cli/pkg/logging"
)

// Version is reported by --version. Overridden at build time.
var Version = "dev"

// Streams are the process IO handles commands read from and write to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Env bundles the process environment a command tree runs against.
type Env struct {
	Streams Streams
	// Color allows coloured output. Callers set it when stdout is a terminal.
	Color bool
}

type app struct {
	env Env

	configPath string
	server     string
	org        string
	token      string
	format     string
	quiet      bool
	verbose    bool

	renderer *output.Renderer
	logger   *slog.Logger
}

// NewRootCommand builds the sentry command tree.
func NewRootCommand(env Env) *cobra.Command {
	return newApp(env).rootCommand()
}

// Execute runs the command tree with args and reports failures on the error
// stream. It returns the process exit code.
func Execute(ctx context.Context, args []string, env Env) int {
	a := newApp(env)
	root := a.rootCommand()
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		a.printer().Error(err)
		return 1
	}
	return 0
}

func newApp(env Env) *app {
	if env.Streams.In == nil {
		env.Streams.In = os.Stdin
	}
	if env.Streams.Out == nil {
		env.Streams.Out = os.Stdout
	}
	if env.Streams.Err == nil {
		env.Streams.Err = os.Stderr
	}
	return &app{env: env}
}

func (a *app) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentry",
		Short: "CLI tool for managing Sentry issues",
		Example: `  sentry issues list --project myproject
  sentry issues view ISSUE-123
  sentry issues resolve ISSUE-123
  sentry config show`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	cmd.SetIn(a.env.Streams.In)
	cmd.SetOut(a.env.Streams.Out)
	cmd.SetErr(a.env.Streams.Err)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.server, "server", "", "Sentry server URL (default: https://sentry.io)")
	flags.StringVarP(&a.org, "org", "o", "", "Organization slug")
	flags.StringVar(&a.token, "token", "", "Auth token (overrides env var and config)")
	flags.StringVarP(&a.format, "format", "O", string(output.FormatTable), "Output format (table, json)")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "Suppress success messages")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output (request log and error chains)")
	flags.StringVar(&a.configPath, "config", "", "Path to the config file")

	cmd.AddCommand(a.newIssuesCommand(), a.newConfigCommand())

	return cmd
}

func (a *app) setup() error {
	format, err := output.ParseFormat(a.format)
	if err != nil {
		return err
	}

	a.renderer = output.NewRenderer(a.env.Streams.Out, a.env.Streams.Err, output.Options{
		Format:  format,
		Quiet:   a.quiet,
		Verbose: a.verbose,
		Color:   a.env.Color,
	})

	level := "warn"
	if a.verbose {
		level = "debug"
	}
	a.logger = logging.New(level, a.env.Streams.Err)

	return nil
}

// printer returns the renderer, building a plain one if setup never ran.
func (a *app) printer() *output.Renderer {
	if a.renderer != nil {
		return a.renderer
	}
	return output.NewRenderer(a.env.Streams.Out, a.env.Streams.Err, output.Options{
		Verbose: a.verbose,
		Color:   a.env.Color,
	})
}

func (a *app) path() string {
	if strings.TrimSpace(a.configPath) != "" {
		return a.configPath
	}
	return config.DefaultPath()
}

func (a *app) loadConfig() (config.File, error) {
	return config.Load(a.path())
}

// client resolves connection settings and builds an API client.
func (a *app) client() (*sentry.Client, config.File, error) {
	file, err := a.loadConfig()
	if err != nil {
		return nil, config.File{}, err
	}

	settings, err := config.Resolve(file, config.Overrides{
		Token:     a.token,
		ServerURL: a.server,
		Org:       a.org,
	})
	if err != nil {
		return nil, config.File{}, err
	}

	logger := a.logger
	if logger == nil {
		logger = logging.Discard()
	}

	client, err := sentry.NewClient(ensureScheme(settings.ServerURL), settings.Org, settings.AuthToken, logger)
	if err != nil {
		return nil, config.File{}, err
	}

	return client, file, nil
}

// ensureScheme defaults scheme-less server URLs to https and trims trailing slashes.
func ensureScheme(server string) string {
	trimmed := strings.TrimSpace(server)
	if trimmed == "" {
		return ""
	}

	if strings.Contains(trimmed, "://") {
		return strings.TrimRight(trimmed, "/")
	}

	return "https://" + strings.TrimRight(trimmed, "/")
}
