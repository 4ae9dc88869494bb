package keycloak

import (
	"context"
	"fmt"

	"github.com/Nerzal/gocloak/v13"
	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
)

func roleToModel(r *gocloak.Role) model.Role {
	return model.Role{
		ID:          gocloak.PString(r.ID),
		Name:        gocloak.PString(r.Name),
		Description: gocloak.PString(r.Description),
	}
}

func roleToRepresentation(r model.Role) gocloak.Role {
	role := gocloak.Role{Name: gocloak.StringP(r.Name)}
	if r.ID != "" {
		role.ID = gocloak.StringP(r.ID)
	}
	if r.Description != "" {
		role.Description = gocloak.StringP(r.Description)
	}
	return role
}

// GetRealmRole looks up a realm role by name. Absence is (nil, nil).
func (a *Admin) GetRealmRole(ctx context.Context, realm, name string) (*model.Role, error) {
	token, err := a.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	role, err := a.gc.GetRealmRole(ctx, token, realm, name)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, mapError(err)
	}
	out := roleToModel(role)
	return &out, nil
}

func (a *Admin) CreateRealmRole(ctx context.Context, realm string, role model.Role) error {
	token, err := a.accessToken(ctx)
	if err != nil {
		return err
	}
	if _, err := a.gc.CreateRealmRole(ctx, token, realm, roleToRepresentation(role)); err != nil {
		return mapError(err)
	}
	return nil
}

func (a *Admin) DeleteRealmRole(ctx context.Context, realm, name string) error {
	token, err := a.accessToken(ctx)
	if err != nil {
		return err
	}
	if err := a.gc.DeleteRealmRole(ctx, token, realm, name); err != nil {
		return mapError(err)
	}
	return nil
}

// GetUserRealmRoles returns the realm roles currently assigned to the user.
func (a *Admin) GetUserRealmRoles(ctx context.Context, realm, userID string) ([]model.Role, error) {
	token, err := a.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	roles, err := a.gc.GetRealmRolesByUserID(ctx, token, realm, userID)
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]model.Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, roleToModel(r))
	}
	return out, nil
}

func (a *Admin) AddUserRealmRoles(ctx context.Context, realm, userID string, roles []model.Role) error {
	token, err := a.accessToken(ctx)
	if err != nil {
		return err
	}
	reps := make([]gocloak.Role, 0, len(roles))
	for _, r := range roles {
		reps = append(reps, roleToRepresentation(r))
	}
	if err := a.gc.AddRealmRoleToUser(ctx, token, realm, userID, reps); err != nil {
		return fmt.Errorf("assign realm roles: %w", mapError(err))
	}
	return nil
}

func (a *Admin) RemoveUserRealmRoles(ctx context.Context, realm, userID string, roles []model.Role) error {
	token, err := a.accessToken(ctx)
	if err != nil {
		return err
	}
	reps := make([]gocloak.Role, 0, len(roles))
	for _, r := range roles {
		reps = append(reps, roleToRepresentation(r))
	}
	if err := a.gc.DeleteRealmRoleFromUser(ctx, token, realm, userID, reps); err != nil {
		return fmt.Errorf("remove realm roles: %w", mapError(err))
	}
	return nil
}
