package main

import (
	"encoding/json"
	"fmt"

	"github.com/RodolfoBonis/spooliq-iamops/usecase/run"
	"github.com/spf13/cobra"
)

func newCmdRuns() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "runs",
		Short:              "Inspect recorded provisioning runs",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(newCmdRunsList(), newCmdRunsShow())
	return cmd
}

func newCmdRunsList() *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List recorded runs",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildRunUseCase(cmd)
			if err != nil {
				return err
			}
			out, err := u.List(cmd.Context(), &run.ListInput{})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, r := range out.Runs {
				fmt.Fprintf(w, "%s %s realm=%s tenant=%s ok=%t started=%s\n",
					r.ID, r.Workflow, r.Realm, r.TenantID, r.OK, r.StartedAt.Format("2006-01-02T15:04:05Z07:00"))
			}
			return nil
		},
	}
}

func newCmdRunsShow() *cobra.Command {
	return &cobra.Command{
		Use:           "show <id>",
		Short:         "Show one recorded run",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildRunUseCase(cmd)
			if err != nil {
				return err
			}
			out, err := u.Get(cmd.Context(), &run.GetInput{ID: args[0]})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out.Run)
		},
	}
}
