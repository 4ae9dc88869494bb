package main

import (
	"fmt"
	"strings"

	"github.com/RodolfoBonis/spooliq-iamops/usecase/roles"
	"github.com/spf13/cobra"
)

func newCmdRoles() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "roles",
		Short:              "Manage realm roles",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(newCmdRolesFix())
	return cmd
}

// newCmdRolesFix returns the command that replaces legacy realm roles with
// the canonical set and remaps the admin user.
func newCmdRolesFix() *cobra.Command {
	return &cobra.Command{
		Use:           "fix",
		Short:         "Replace legacy realm roles with the canonical set",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			u := buildRolesUseCase(cfg)

			ctx, cleanup := withCmdRunLogger(cmd.Context(), "roles.fix", cfg.Realm)
			defer func() { cleanup(err) }()

			out, err := u.Fix(ctx, &roles.FixInput{Config: cfg})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Deleted) > 0 {
				fmt.Fprintf(w, "deleted legacy roles: %s\n", strings.Join(out.Deleted, ", "))
			}
			for name, status := range out.Ensured {
				fmt.Fprintf(w, "%-16s %s\n", name, status)
			}
			if len(out.Removed) > 0 {
				fmt.Fprintf(w, "removed from user: %s\n", strings.Join(out.Removed, ", "))
			}
			fmt.Fprintf(w, "assigned to user: %s\n", strings.Join(out.Assigned, ", "))
			return nil
		},
	}
}
