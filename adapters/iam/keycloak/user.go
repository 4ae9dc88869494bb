package keycloak

import (
	"context"
	"fmt"

	"github.com/Nerzal/gocloak/v13"
	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
)

func userToModel(u *gocloak.User) *model.User {
	out := &model.User{
		ID:       gocloak.PString(u.ID),
		Username: gocloak.PString(u.Username),
		Email:    gocloak.PString(u.Email),
	}
	if u.Attributes != nil {
		out.Attributes = *u.Attributes
	}
	return out
}

// GetUserByEmail looks up a user by exact email match. Absence is
// (nil, nil); more than one match is a LookupAmbiguityError.
func (a *Admin) GetUserByEmail(ctx context.Context, realm, email string) (*model.User, error) {
	token, err := a.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	users, err := a.gc.GetUsers(ctx, token, realm, gocloak.GetUsersParams{
		Email: gocloak.StringP(email),
		Exact: gocloak.BoolP(true),
	})
	if err != nil {
		return nil, mapError(err)
	}
	switch len(users) {
	case 0:
		return nil, nil
	case 1:
		return userToModel(users[0]), nil
	default:
		return nil, &model.LookupAmbiguityError{Kind: model.KindUser, NaturalKey: email, Matches: len(users)}
	}
}

// CreateUser creates an enabled user with a verified email.
func (a *Admin) CreateUser(ctx context.Context, realm string, spec model.UserSpec) (*model.User, error) {
	token, err := a.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	id, err := a.gc.CreateUser(ctx, token, realm, gocloak.User{
		Username:      gocloak.StringP(spec.Username),
		Email:         gocloak.StringP(spec.Email),
		FirstName:     gocloak.StringP(spec.FirstName),
		LastName:      gocloak.StringP(spec.LastName),
		Enabled:       gocloak.BoolP(true),
		EmailVerified: gocloak.BoolP(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create user %s: %w", spec.Email, mapError(err))
	}
	return &model.User{ID: id, Username: spec.Username, Email: spec.Email}, nil
}

func (a *Admin) SetUserPassword(ctx context.Context, realm, userID, password string, temporary bool) error {
	token, err := a.accessToken(ctx)
	if err != nil {
		return err
	}
	if err := a.gc.SetPassword(ctx, token, userID, realm, password, temporary); err != nil {
		return fmt.Errorf("set password: %w", mapError(err))
	}
	return nil
}

// SetUserAttribute sets one attribute on the user, preserving the rest of
// the user representation.
func (a *Admin) SetUserAttribute(ctx context.Context, realm, userID, key string, values []string) error {
	token, err := a.accessToken(ctx)
	if err != nil {
		return err
	}
	user, err := a.gc.GetUserByID(ctx, token, realm, userID)
	if err != nil {
		return mapError(err)
	}
	attrs := map[string][]string{}
	if user.Attributes != nil {
		attrs = *user.Attributes
	}
	attrs[key] = values
	user.Attributes = &attrs
	if err := a.gc.UpdateUser(ctx, token, realm, *user); err != nil {
		return fmt.Errorf("set user attribute %s: %w", key, mapError(err))
	}
	return nil
}
