package user

import (
	"context"
	"fmt"

	"github.com/RodolfoBonis/spooliq-iamops/config/iamopscfg"
	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
	"github.com/RodolfoBonis/spooliq-iamops/internal/logging"
)

// MasterRealm is the administrative realm the admin credential lives in.
const MasterRealm = "master"

// CheckInput configures a user check run.
type CheckInput struct {
	Config *iamopscfg.Config
	// Create bootstraps the user in the target realm when absent, setting
	// a permanent password equal to the admin password.
	Create bool
}

// CheckOutput reports where the user exists.
type CheckOutput struct {
	Email        string
	InMaster     bool
	MasterUserID string
	InRealm      bool
	RealmUserID  string
	Created      bool
	PasswordSet  bool
}

// Check reports whether the target user exists in the master realm and the
// application realm, optionally creating it in the application realm. The
// created user is enabled with a verified email, matching what the
// provisioning pipeline expects to find.
func (u *UseCase) Check(ctx context.Context, in *CheckInput) (*CheckOutput, error) {
	if in == nil || in.Config == nil {
		return nil, fmt.Errorf("check input missing configuration")
	}
	cfg := in.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := u.Port.Login(ctx); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	email := cfg.UserEmailOrDefault()
	out := &CheckOutput{Email: email}

	master, err := u.Port.GetUserByEmail(ctx, MasterRealm, email)
	if err != nil {
		return nil, fmt.Errorf("check %s realm: %w", MasterRealm, err)
	}
	if master != nil {
		out.InMaster = true
		out.MasterUserID = master.ID
	}

	realmUser, err := u.Port.GetUserByEmail(ctx, cfg.Realm, email)
	if err != nil {
		return nil, fmt.Errorf("check %s realm: %w", cfg.Realm, err)
	}
	if realmUser != nil {
		out.InRealm = true
		out.RealmUserID = realmUser.ID
		return out, nil
	}

	if !in.Create {
		return out, nil
	}

	log.Info(ctx, "creating user in realm", "realm", cfg.Realm, "email", email)
	created, err := u.Port.CreateUser(ctx, cfg.Realm, model.UserSpec{
		Username:  email,
		Email:     email,
		FirstName: "Admin",
		LastName:  "Platform",
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	out.InRealm = true
	out.RealmUserID = created.ID
	out.Created = true

	if err := u.Port.SetUserPassword(ctx, cfg.Realm, created.ID, cfg.AdminPassword, false); err != nil {
		// The user exists; the operator can set the password manually.
		log.Warn(ctx, "password setup failed", "err", err)
		return out, nil
	}
	out.PasswordSet = true
	return out, nil
}
