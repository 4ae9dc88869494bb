package roles

import (
	"context"
	"errors"
	"fmt"

	"github.com/RodolfoBonis/spooliq-iamops/config/iamopscfg"
	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
	"github.com/RodolfoBonis/spooliq-iamops/internal/logging"
	"github.com/RodolfoBonis/spooliq-iamops/usecase/provision"
)

// FixInput configures a role fixup run.
type FixInput struct {
	Config *iamopscfg.Config
}

// FixOutput reports what the fixup changed.
type FixOutput struct {
	// Deleted lists legacy roles that existed and were removed.
	Deleted []string
	// Ensured maps each canonical role name to its reconcile status.
	Ensured map[string]model.ReconcileStatus
	// Removed lists the role names stripped from the user before
	// reassignment.
	Removed []string
	// Assigned lists the canonical roles now mapped to the user.
	Assigned []string
}

// Fix removes legacy realm roles, reconciles the canonical role set, then
// replaces the admin user's realm role mappings with exactly that set.
// Deleting an absent legacy role is a no-op, so the whole workflow is safe
// to re-run.
func (u *UseCase) Fix(ctx context.Context, in *FixInput) (*FixOutput, error) {
	if in == nil || in.Config == nil {
		return nil, fmt.Errorf("fix input missing configuration")
	}
	cfg := in.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := u.Port.Login(ctx); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	out := &FixOutput{Ensured: make(map[string]model.ReconcileStatus, len(cfg.Roles.Names))}

	for _, name := range cfg.Roles.Legacy {
		err := u.Port.DeleteRealmRole(ctx, cfg.Realm, name)
		switch {
		case err == nil:
			out.Deleted = append(out.Deleted, name)
			log.Info(ctx, "legacy role deleted", "role", name)
		case errors.Is(err, model.ErrNotFound):
			log.Debug(ctx, "legacy role absent", "role", name)
		default:
			return nil, fmt.Errorf("delete role %s: %w", name, err)
		}
	}

	for _, name := range cfg.Roles.Names {
		_, status, err := provision.Ensure(ctx, provision.EnsureSpec{
			Kind:       model.KindRealmRole,
			NaturalKey: name,
			Lookup: func(ctx context.Context) (*model.RemoteResource, error) {
				r, err := u.Port.GetRealmRole(ctx, cfg.Realm, name)
				if err != nil || r == nil {
					return nil, err
				}
				return &model.RemoteResource{Kind: model.KindRealmRole, NaturalKey: name, RemoteID: r.ID}, nil
			},
			Create: func(ctx context.Context) (*model.RemoteResource, error) {
				err := u.Port.CreateRealmRole(ctx, cfg.Realm, model.Role{
					Name:        name,
					Description: cfg.RoleDescription(name),
				})
				if err != nil {
					return nil, err
				}
				return &model.RemoteResource{Kind: model.KindRealmRole, NaturalKey: name}, nil
			},
		})
		if err != nil {
			return nil, fmt.Errorf("role %s: %w", name, err)
		}
		out.Ensured[name] = status
	}

	email := cfg.UserEmailOrDefault()
	user, err := u.Port.GetUserByEmail(ctx, cfg.Realm, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &model.MissingPrerequisiteError{Kind: model.KindUser, NaturalKey: email}
	}

	current, err := u.Port.GetUserRealmRoles(ctx, cfg.Realm, user.ID)
	if err != nil {
		return nil, err
	}
	if len(current) > 0 {
		if err := u.Port.RemoveUserRealmRoles(ctx, cfg.Realm, user.ID, current); err != nil {
			return nil, fmt.Errorf("remove current roles: %w", err)
		}
		for _, r := range current {
			out.Removed = append(out.Removed, r.Name)
		}
	}

	canonical := make([]model.Role, 0, len(cfg.Roles.Names))
	for _, name := range cfg.Roles.Names {
		r, err := u.Port.GetRealmRole(ctx, cfg.Realm, name)
		if err != nil {
			return nil, fmt.Errorf("role %s: %w", name, err)
		}
		if r == nil {
			return nil, fmt.Errorf("role %s: %w", name, model.ErrNotFound)
		}
		canonical = append(canonical, *r)
	}
	if err := u.Port.AddUserRealmRoles(ctx, cfg.Realm, user.ID, canonical); err != nil {
		return nil, fmt.Errorf("assign roles: %w", err)
	}
	out.Assigned = append(out.Assigned, cfg.Roles.Names...)
	return out, nil
}
