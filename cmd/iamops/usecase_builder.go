package main

import (
	"github.com/RodolfoBonis/spooliq-iamops/adapters/iam/keycloak"
	"github.com/RodolfoBonis/spooliq-iamops/config/iamopscfg"
	"github.com/RodolfoBonis/spooliq-iamops/usecase/provision"
	"github.com/RodolfoBonis/spooliq-iamops/usecase/roles"
	"github.com/RodolfoBonis/spooliq-iamops/usecase/run"
	"github.com/RodolfoBonis/spooliq-iamops/usecase/user"
	"github.com/spf13/cobra"
)

// buildAdminPort creates the Keycloak admin session for the configuration.
// Credentials are validated by the use cases before any network call.
func buildAdminPort(cfg *iamopscfg.Config) *keycloak.Admin {
	return keycloak.New(cfg.URL, cfg.AdminEmail, cfg.AdminPassword)
}

// buildProvisionUseCase creates the provision use case with the admin port
// and the optional run history store.
func buildProvisionUseCase(cmd *cobra.Command, cfg *iamopscfg.Config) (*provision.UseCase, error) {
	runs, err := buildRunRepository(cmd)
	if err != nil {
		return nil, err
	}
	return &provision.UseCase{Port: buildAdminPort(cfg), Runs: runs}, nil
}

// buildRolesUseCase creates the roles use case.
func buildRolesUseCase(cfg *iamopscfg.Config) *roles.UseCase {
	return &roles.UseCase{Port: buildAdminPort(cfg)}
}

// buildUserUseCase creates the user use case.
func buildUserUseCase(cfg *iamopscfg.Config) *user.UseCase {
	return &user.UseCase{Port: buildAdminPort(cfg)}
}

// buildRunUseCase creates the run history use case.
func buildRunUseCase(cmd *cobra.Command) (*run.UseCase, error) {
	runs, err := buildRunRepository(cmd)
	if err != nil {
		return nil, err
	}
	return &run.UseCase{Runs: runs}, nil
}
