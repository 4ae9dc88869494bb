package main

import (
	"context"
	"os"

	"log/slog"

	"github.com/RodolfoBonis/spooliq-iamops/internal/logging"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "iamops",
		Short:   "Spooliq IAM provisioning CLI",
		Long:    "Idempotent multi-tenant Keycloak provisioning for the Spooliq platform",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultDB := os.Getenv("IAMOPS_DB_URL")
	cmd.PersistentFlags().String("db-url", defaultDB, "Run history database URL (env IAMOPS_DB_URL) (sqlite:/path/to.db | empty to disable)")
	cmd.PersistentFlags().String("config", "", "Config file path (default iamops.yml when present)")
	cmd.PersistentFlags().String("log-format", "human", "Log format (human|text|json) (env IAMOPS_LOG_FORMAT)")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		format, _ := c.Flags().GetString("log-format")
		if env := os.Getenv("IAMOPS_LOG_FORMAT"); env != "" { // env overrides flag
			format = env
		}
		l, err := logging.New(format, slog.LevelInfo)
		if err != nil {
			return err
		}
		ctx := logging.WithLogger(c.Context(), l)
		c.SetContext(ctx)
		return nil
	}

	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdProvision())
	cmd.AddCommand(newCmdRoles())
	cmd.AddCommand(newCmdUser())
	cmd.AddCommand(newCmdRuns())
	return cmd
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
		os.Exit(1)
	}
}
