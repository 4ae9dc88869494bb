package report

import (
	"strings"
	"testing"

	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
	"github.com/RodolfoBonis/spooliq-iamops/usecase/provision"
)

func TestStepResultLines(t *testing.T) {
	var buf strings.Builder
	p := New(&buf)

	p.StepResult(provision.StepResult{
		Name:     "ensure-client",
		Status:   model.StatusCreated,
		Resource: &model.RemoteResource{Kind: model.KindClient, NaturalKey: "spooliq", RemoteID: "abc-123"},
	})
	p.StepResult(provision.StepResult{
		Name:   "ensure-realm-roles",
		Status: model.StatusFound,
		Detail: "Owner:found User:found",
	})

	out := buf.String()
	for _, want := range []string{"ensure-client", "Created", "id=abc-123", "Owner:found"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStepResultFailure(t *testing.T) {
	var buf strings.Builder
	p := New(&buf)
	p.StepResult(provision.StepResult{
		Name:   "find-user",
		Status: model.StatusFailed,
		Detail: `required User "admin@example.com" does not exist`,
	})
	if !strings.HasPrefix(buf.String(), "FAILED find-user:") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestSummary(t *testing.T) {
	var buf strings.Builder
	p := New(&buf)
	p.Summary(SummaryInput{
		Realm:       "spooliq",
		ClientID:    "spooliq",
		UserEmail:   "admin@example.com",
		TenantID:    "11111111-2222-3333-4444-555555555555",
		CompanyName: "Spooliq Platform",
		ClaimName:   "organization_id",
		RunID:       "run-1",
	})

	out := buf.String()
	for _, want := range []string{
		"tenant=11111111-2222-3333-4444-555555555555",
		"INSERT INTO companies",
		"'Spooliq Platform'",
		"curl -X POST",
		"organization_id claim",
		"run=run-1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
