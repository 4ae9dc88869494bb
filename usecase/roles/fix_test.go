package roles

import (
	"context"
	"errors"
	"testing"

	"github.com/RodolfoBonis/spooliq-iamops/adapters/iam/iamtest"
	"github.com/RodolfoBonis/spooliq-iamops/config/iamopscfg"
	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
)

func testConfig() *iamopscfg.Config {
	cfg := iamopscfg.New()
	cfg.URL = "https://auth.example.com"
	cfg.AdminEmail = "admin@example.com"
	cfg.AdminPassword = "secret"
	return cfg
}

func TestFixReplacesUserRoles(t *testing.T) {
	port := iamtest.New()
	port.Users["admin@example.com"] = model.User{ID: "user-uuid-1", Email: "admin@example.com"}
	// Legacy state: lowercase roles exist and are mapped to the user.
	port.Roles["user"] = model.Role{ID: "role-uuid-user", Name: "user"}
	port.Roles["adm"] = model.Role{ID: "role-uuid-adm", Name: "adm"}
	port.AssignedRoles["user-uuid-1"] = []model.Role{
		{ID: "role-uuid-user", Name: "user"},
		{ID: "role-uuid-adm", Name: "adm"},
	}

	u := &UseCase{Port: port}
	out, err := u.Fix(context.Background(), &FixInput{Config: testConfig()})
	if err != nil {
		t.Fatalf("Fix: %v", err)
	}

	if len(out.Deleted) != 2 {
		t.Errorf("deleted = %v, want both legacy roles", out.Deleted)
	}
	for _, name := range []string{"PlatformAdmin", "OrgAdmin", "Owner", "User"} {
		if status, ok := out.Ensured[name]; !ok || !status.Success() {
			t.Errorf("role %s not ensured: %v", name, out.Ensured)
		}
	}
	if len(out.Removed) != 2 {
		t.Errorf("removed = %v, want the two legacy mappings", out.Removed)
	}
	assigned := port.AssignedRoles["user-uuid-1"]
	if len(assigned) != 4 {
		t.Fatalf("assigned = %v, want the 4 canonical roles", assigned)
	}
	for _, r := range assigned {
		if r.ID == "" {
			t.Errorf("assigned role %s missing remote id", r.Name)
		}
		if r.Name == "user" || r.Name == "adm" {
			t.Errorf("legacy role %s still mapped", r.Name)
		}
	}
}

func TestFixToleratesAbsentLegacyRoles(t *testing.T) {
	port := iamtest.New()
	port.Users["admin@example.com"] = model.User{ID: "user-uuid-1", Email: "admin@example.com"}

	u := &UseCase{Port: port}
	out, err := u.Fix(context.Background(), &FixInput{Config: testConfig()})
	if err != nil {
		t.Fatalf("Fix with absent legacy roles: %v", err)
	}
	if len(out.Deleted) != 0 {
		t.Errorf("deleted = %v, want none", out.Deleted)
	}
	if port.CreatedRoles != 4 {
		t.Errorf("roles created = %d, want 4", port.CreatedRoles)
	}
}

func TestFixIsRerunnable(t *testing.T) {
	port := iamtest.New()
	port.Users["admin@example.com"] = model.User{ID: "user-uuid-1", Email: "admin@example.com"}
	u := &UseCase{Port: port}

	if _, err := u.Fix(context.Background(), &FixInput{Config: testConfig()}); err != nil {
		t.Fatalf("first fix: %v", err)
	}
	created := port.CreatedRoles
	out, err := u.Fix(context.Background(), &FixInput{Config: testConfig()})
	if err != nil {
		t.Fatalf("second fix: %v", err)
	}
	if port.CreatedRoles != created {
		t.Errorf("second fix created %d roles, want 0", port.CreatedRoles-created)
	}
	for name, status := range out.Ensured {
		if status != model.StatusFound {
			t.Errorf("role %s status = %s on re-run, want Found", name, status)
		}
	}
	if got := port.AssignedRoles["user-uuid-1"]; len(got) != 4 {
		t.Errorf("re-run left %d mappings, want 4", len(got))
	}
}

func TestFixMissingUser(t *testing.T) {
	u := &UseCase{Port: iamtest.New()}
	_, err := u.Fix(context.Background(), &FixInput{Config: testConfig()})
	var missing *model.MissingPrerequisiteError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingPrerequisiteError", err)
	}
}

func TestFixAuthFailure(t *testing.T) {
	port := iamtest.New()
	port.LoginErr = errors.New("invalid credentials")
	u := &UseCase{Port: port}
	_, err := u.Fix(context.Background(), &FixInput{Config: testConfig()})
	var authErr *model.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("error = %v, want AuthError", err)
	}
	if len(port.Calls) != 1 {
		t.Errorf("calls = %v, want login only", port.Calls)
	}
}
