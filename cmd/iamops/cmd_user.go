package main

import (
	"fmt"

	"github.com/RodolfoBonis/spooliq-iamops/usecase/user"
	"github.com/spf13/cobra"
)

func newCmdUser() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "user",
		Short:              "Manage the admin user",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(newCmdUserCheck())
	return cmd
}

// newCmdUserCheck returns the command that reports where the admin user
// exists and optionally bootstraps it in the application realm.
func newCmdUserCheck() *cobra.Command {
	var create bool
	cmd := &cobra.Command{
		Use:           "check",
		Short:         "Check which realms the admin user exists in",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			u := buildUserUseCase(cfg)

			ctx, cleanup := withCmdRunLogger(cmd.Context(), "user.check", cfg.Realm)
			defer func() { cleanup(err) }()

			out, err := u.Check(ctx, &user.CheckInput{Config: cfg, Create: create})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "user=%s\n", out.Email)
			fmt.Fprintf(w, "master=%s\n", presence(out.InMaster, out.MasterUserID))
			fmt.Fprintf(w, "%s=%s\n", cfg.Realm, presence(out.InRealm, out.RealmUserID))
			if out.Created {
				fmt.Fprintf(w, "created in %s (password set: %t)\n", cfg.Realm, out.PasswordSet)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&create, "create", false, "Create the user in the application realm when absent")
	return cmd
}

func presence(found bool, id string) string {
	if !found {
		return "absent"
	}
	return "present id=" + id
}
