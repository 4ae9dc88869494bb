package provision

import (
	"context"
	"errors"
	"testing"

	"github.com/RodolfoBonis/spooliq-iamops/adapters/iam/iamtest"
	"github.com/RodolfoBonis/spooliq-iamops/config/iamopscfg"
	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
	"github.com/RodolfoBonis/spooliq-iamops/internal/naming"
)

// fakeRunRepo records persisted runs in memory.
type fakeRunRepo struct {
	runs      []*model.Run
	createErr error
}

func (f *fakeRunRepo) Create(ctx context.Context, r *model.Run) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.runs = append(f.runs, r)
	return nil
}

func (f *fakeRunRepo) Get(ctx context.Context, id string) (*model.Run, error) {
	for _, r := range f.runs {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, model.ErrRunNotFound
}

func (f *fakeRunRepo) List(ctx context.Context) ([]*model.Run, error) {
	return f.runs, nil
}

func testConfig() *iamopscfg.Config {
	cfg := iamopscfg.New()
	cfg.URL = "https://auth.example.com"
	cfg.AdminEmail = "admin@example.com"
	cfg.AdminPassword = "secret"
	return cfg
}

func portWithUser() *iamtest.FakePort {
	port := iamtest.New()
	port.Users["admin@example.com"] = model.User{ID: "user-uuid-1", Email: "admin@example.com"}
	return port
}

func TestProvisionEmptyRealm(t *testing.T) {
	port := portWithUser()
	u := &UseCase{Port: port}

	out, err := u.Provision(context.Background(), &ProvisionInput{Config: testConfig(), Style: StyleBoth})
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}
	if !out.Result.OK {
		t.Fatal("result not OK")
	}
	if !naming.IsTenantID(out.TenantID) {
		t.Errorf("tenant id %q is not a UUID", out.TenantID)
	}
	if port.CreatedClients != 1 {
		t.Errorf("clients created = %d, want 1", port.CreatedClients)
	}
	if port.CreatedRoles != 4 {
		t.Errorf("roles created = %d, want 4", port.CreatedRoles)
	}
	if port.CreatedScopes != 1 {
		t.Errorf("scopes created = %d, want 1", port.CreatedScopes)
	}
	if port.CreatedMappers != 2 {
		t.Errorf("mappers created = %d, want 2 for style both", port.CreatedMappers)
	}
	if port.CreatedGroups != 1 {
		t.Errorf("groups created = %d, want 1", port.CreatedGroups)
	}
	if got := port.UserAttrs["user-uuid-1"]["organization_id"]; len(got) != 1 || got[0] != out.TenantID {
		t.Errorf("user attribute = %v, want [%s]", got, out.TenantID)
	}
	if members := port.GroupMembers["group-uuid-1"]; len(members) != 1 || members[0] != "user-uuid-1" {
		t.Errorf("group members = %v, want the user", members)
	}
	if assigned := port.AssignedRoles["user-uuid-1"]; len(assigned) != 4 {
		t.Errorf("assigned roles = %v, want 4", assigned)
	}
	// Group attributes carry the tenant identifier.
	g := port.Groups["spooliq-platform"]
	if got := g.Attributes["organization_id"]; len(got) != 1 || got[0] != out.TenantID {
		t.Errorf("group attributes = %v, want tenant id", g.Attributes)
	}
}

func TestProvisionIdempotent(t *testing.T) {
	port := portWithUser()
	u := &UseCase{Port: port}
	cfg := testConfig()

	first, err := u.Provision(context.Background(), &ProvisionInput{Config: cfg, Style: StyleBoth})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	creationsAfterFirst := port.Creations()

	second, err := u.Provision(context.Background(), &ProvisionInput{
		Config:   cfg,
		Style:    StyleBoth,
		TenantID: first.TenantID,
	})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.Result.OK {
		t.Fatal("second run not OK")
	}
	if port.Creations() != creationsAfterFirst {
		t.Errorf("second run issued %d creations, want 0", port.Creations()-creationsAfterFirst)
	}
	for _, sr := range second.Result.Steps {
		switch sr.Name {
		case "ensure-client", "ensure-realm-roles", "ensure-client-scope", "ensure-protocol-mappers", "ensure-tenant-group":
			if sr.Status != model.StatusFound {
				t.Errorf("step %s status = %s on re-run, want Found", sr.Name, sr.Status)
			}
		}
	}
	if got := port.UserAttrs["user-uuid-1"]["organization_id"]; got[0] != first.TenantID {
		t.Errorf("tenant id changed between runs: %v", got)
	}
}

func TestProvisionAuthFailureIsFatal(t *testing.T) {
	port := portWithUser()
	port.LoginErr = errors.New("invalid credentials")
	u := &UseCase{Port: port}

	_, err := u.Provision(context.Background(), &ProvisionInput{Config: testConfig()})
	if err == nil {
		t.Fatal("Provision should fail on auth error")
	}
	var authErr *model.AuthError
	if !errors.As(err, &authErr) {
		t.Errorf("error = %v, want AuthError", err)
	}
	if len(port.Calls) != 1 || port.Calls[0] != "Login" {
		t.Errorf("calls after auth failure = %v, want [Login] only", port.Calls)
	}
}

func TestProvisionMissingUserGuard(t *testing.T) {
	port := iamtest.New() // no users
	u := &UseCase{Port: port}

	out, err := u.Provision(context.Background(), &ProvisionInput{Config: testConfig(), Style: StyleBoth})
	if err == nil {
		t.Fatal("Provision should fail when the user is absent")
	}
	var missing *model.MissingPrerequisiteError
	if !errors.As(err, &missing) || missing.Kind != model.KindUser {
		t.Fatalf("error = %v, want MissingPrerequisiteError for User", err)
	}
	// Provisioning of client/roles/scope/mappers still completed.
	if port.CreatedClients != 1 || port.CreatedScopes != 1 {
		t.Error("client and scope should be provisioned before the user guard")
	}
	for _, call := range port.Calls {
		switch call {
		case "SetUserAttribute", "AddUserToGroup", "AddUserRealmRoles", "CreateGroup":
			t.Errorf("call %s must never happen after a missing user", call)
		}
	}
	last := out.Result.Steps[len(out.Result.Steps)-1]
	if last.Name != "find-user" || last.Status != model.StatusFailed {
		t.Errorf("last step = %+v, want failed find-user", last)
	}
}

func TestProvisionConflictNormalization(t *testing.T) {
	port := portWithUser()
	port.ConflictRoles["Owner"] = true
	u := &UseCase{Port: port}

	out, err := u.Provision(context.Background(), &ProvisionInput{Config: testConfig(), Style: StyleAttribute})
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}
	if !out.Result.OK {
		t.Fatal("conflict must normalize to success")
	}
	var rolesStep *StepResult
	for i := range out.Result.Steps {
		if out.Result.Steps[i].Name == "ensure-realm-roles" {
			rolesStep = &out.Result.Steps[i]
		}
	}
	if rolesStep == nil || rolesStep.Status != model.StatusCreated {
		t.Errorf("roles step = %+v, want Created (other roles were created)", rolesStep)
	}
	// The conflicted role still lands in the assignment payload.
	found := false
	for _, r := range port.AssignedRoles["user-uuid-1"] {
		if r.Name == "Owner" && r.ID != "" {
			found = true
		}
	}
	if !found {
		t.Error("conflicted role Owner missing from final role assignment")
	}
}

func TestProvisionStyles(t *testing.T) {
	tests := []struct {
		style       Style
		wantAttr    bool
		wantGroup   bool
		wantMappers int
	}{
		{style: StyleAttribute, wantAttr: true, wantGroup: false, wantMappers: 1},
		{style: StyleGroup, wantAttr: false, wantGroup: true, wantMappers: 2},
		{style: StyleBoth, wantAttr: true, wantGroup: true, wantMappers: 2},
	}
	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			port := portWithUser()
			u := &UseCase{Port: port}
			_, err := u.Provision(context.Background(), &ProvisionInput{Config: testConfig(), Style: tt.style})
			if err != nil {
				t.Fatalf("Provision: %v", err)
			}
			if got := len(port.UserAttrs["user-uuid-1"]) > 0; got != tt.wantAttr {
				t.Errorf("attribute set = %v, want %v", got, tt.wantAttr)
			}
			if got := port.CreatedGroups > 0; got != tt.wantGroup {
				t.Errorf("group created = %v, want %v", got, tt.wantGroup)
			}
			if port.CreatedMappers != tt.wantMappers {
				t.Errorf("mappers created = %d, want %d", port.CreatedMappers, tt.wantMappers)
			}
		})
	}
}

func TestProvisionRecordsRun(t *testing.T) {
	port := portWithUser()
	repo := &fakeRunRepo{}
	u := &UseCase{Port: port, Runs: repo}

	out, err := u.Provision(context.Background(), &ProvisionInput{Config: testConfig(), Style: StyleBoth})
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}
	if out.Run == nil || len(repo.runs) != 1 {
		t.Fatal("run was not recorded")
	}
	run := repo.runs[0]
	if run.Workflow != "provision" || !run.OK {
		t.Errorf("run = %+v, want successful provision record", run)
	}
	if run.TenantID != out.TenantID {
		t.Errorf("run tenant = %q, want %q", run.TenantID, out.TenantID)
	}
	if len(run.Steps) != len(out.Result.Steps) {
		t.Errorf("run has %d steps, result has %d", len(run.Steps), len(out.Result.Steps))
	}
}

func TestProvisionRunStoreFailureDoesNotMaskOutcome(t *testing.T) {
	port := portWithUser()
	repo := &fakeRunRepo{createErr: errors.New("disk full")}
	u := &UseCase{Port: port, Runs: repo}

	out, err := u.Provision(context.Background(), &ProvisionInput{Config: testConfig(), Style: StyleAttribute})
	if err != nil {
		t.Fatalf("Provision must succeed despite run-store failure: %v", err)
	}
	if out.Run != nil {
		t.Error("out.Run should be nil when the record write failed")
	}
}

func TestProvisionInputValidation(t *testing.T) {
	u := &UseCase{Port: iamtest.New()}
	ctx := context.Background()

	if _, err := u.Provision(ctx, nil); err == nil {
		t.Error("nil input must be rejected")
	}
	cfg := testConfig()
	cfg.AdminPassword = ""
	if _, err := u.Provision(ctx, &ProvisionInput{Config: cfg}); err == nil {
		t.Error("invalid config must be rejected before any call")
	}
	if _, err := u.Provision(ctx, &ProvisionInput{Config: testConfig(), Style: "wild"}); err == nil {
		t.Error("unknown style must be rejected")
	}
	if _, err := u.Provision(ctx, &ProvisionInput{Config: testConfig(), TenantID: "not-a-uuid"}); err == nil {
		t.Error("malformed tenant id must be rejected")
	}
}
