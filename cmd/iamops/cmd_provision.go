package main

import (
	"github.com/RodolfoBonis/spooliq-iamops/internal/report"
	"github.com/RodolfoBonis/spooliq-iamops/usecase/provision"
	"github.com/spf13/cobra"
)

// newCmdProvision returns the command that runs the full provisioning
// pipeline against the configured realm.
func newCmdProvision() *cobra.Command {
	var (
		style     string
		tenantID  string
		userEmail string
	)
	cmd := &cobra.Command{
		Use:           "provision",
		Short:         "Provision the realm: client, roles, scope, mappers, tenant",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if userEmail != "" {
				cfg.UserEmail = userEmail
			}
			u, err := buildProvisionUseCase(cmd, cfg)
			if err != nil {
				return err
			}

			ctx, cleanup := withCmdRunLogger(cmd.Context(), "provision", cfg.Realm)
			defer func() { cleanup(err) }()

			printer := report.New(cmd.OutOrStdout())
			out, err := u.Provision(ctx, &provision.ProvisionInput{
				Config:   cfg,
				Style:    provision.Style(style),
				TenantID: tenantID,
				OnResult: printer.StepResult,
			})
			if err != nil {
				return err
			}

			summary := report.SummaryInput{
				Realm:       cfg.Realm,
				ClientID:    cfg.Client.ClientID,
				UserEmail:   cfg.UserEmailOrDefault(),
				TenantID:    out.TenantID,
				CompanyName: cfg.Group.CompanyName,
				ClaimName:   cfg.Scope.ClaimName,
			}
			if out.Run != nil {
				summary.RunID = out.Run.ID
			}
			printer.Summary(summary)
			return nil
		},
	}
	cmd.Flags().StringVar(&style, "style", string(provision.StyleBoth), "Tenant binding style (attribute|group|both)")
	cmd.Flags().StringVar(&tenantID, "tenant", "", "Reuse an existing tenant UUID instead of minting one")
	cmd.Flags().StringVar(&userEmail, "user-email", "", "Target user email (default: admin email)")
	return cmd
}
