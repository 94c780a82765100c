package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ylchen07/sentry-cli/internal/config"
	"github.com/ylchen07/sentry-cli/internal/output"
)

const maskedToken = "****..."

func (a *app) newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"cfg"},
		Short:   "Manage CLI configuration",
		Example: `  sentry config init
  sentry config show
  sentry config set default_org myorg`,
	}

	cmd.AddCommand(a.newConfigInitCommand(), a.newConfigShowCommand(), a.newConfigSetCommand())

	return cmd
}

func (a *app) newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.path()
			if err := config.Init(path); err != nil {
				return err
			}

			a.renderer.Success(fmt.Sprintf("Created config file at %s", path))
			a.renderer.Message("Edit the file to add your auth token and organization.")
			return nil
		},
	}
}

type configView struct {
	Path            string `json:"path"`
	DefaultOrg      string `json:"default_org,omitempty"`
	ServerURL       string `json:"server_url"`
	AuthToken       string `json:"auth_token,omitempty"`
	AuthTokenSource string `json:"auth_token_source,omitempty"`
	DefaultProject  string `json:"default_project,omitempty"`
}

func (a *app) newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := a.loadConfig()
			if err != nil {
				return err
			}

			view := configView{
				Path:            a.path(),
				DefaultOrg:      file.DefaultOrg,
				ServerURL:       file.ServerURL,
				AuthTokenSource: file.TokenSource(),
				DefaultProject:  file.DefaultProject,
			}
			if view.AuthTokenSource != "" {
				view.AuthToken = maskedToken
			}

			if a.renderer.Options().Format == output.FormatJSON {
				if view.ServerURL == "" {
					view.ServerURL = config.DefaultServerURL
				}
				return a.renderer.JSON(view)
			}

			a.printConfig(view)
			return nil
		},
	}
}

func (a *app) printConfig(view configView) {
	r := a.renderer

	r.Println("Config file:", view.Path)
	r.Println()

	if view.DefaultOrg != "" {
		r.Println(fmt.Sprintf("%-16s %s", "default_org:", view.DefaultOrg))
	}

	if view.ServerURL != "" {
		r.Println(fmt.Sprintf("%-16s %s", "server_url:", view.ServerURL))
	} else {
		r.Println(fmt.Sprintf("%-16s %s (default)", "server_url:", config.DefaultServerURL))
	}

	switch view.AuthTokenSource {
	case "config":
		r.Println(fmt.Sprintf("%-16s %s (set in config)", "auth_token:", maskedToken))
	case "env":
		r.Println(fmt.Sprintf("%-16s %s (from %s)", "auth_token:", maskedToken, config.EnvAuthToken))
	default:
		r.Println(fmt.Sprintf("%-16s (not set)", "auth_token:"))
	}

	if view.DefaultProject != "" {
		r.Println(fmt.Sprintf("%-16s %s", "default_project:", view.DefaultProject))
	}
}

func (a *app) newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Example: `  sentry config set default_org myorg
  sentry config set auth_token sntrys_...`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			file, err := a.loadConfig()
			if err != nil {
				return err
			}

			if err := file.Set(key, value); err != nil {
				return err
			}

			if err := config.Save(a.path(), file); err != nil {
				return err
			}

			a.renderer.Success(fmt.Sprintf("Updated %s to %q", key, value))
			return nil
		},
	}
}
