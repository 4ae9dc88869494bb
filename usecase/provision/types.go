// Package provision implements the idempotent multi-tenant provisioning
// workflow: a fixed pipeline of resource reconciliations against the IAM
// admin API, each safe to re-run.
package provision

import (
	"github.com/RodolfoBonis/spooliq-iamops/domain"
	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
)

// Style selects how the tenant identifier reaches issued tokens.
type Style string

const (
	// StyleAttribute sets the tenant identifier directly as a user attribute.
	StyleAttribute Style = "attribute"
	// StyleGroup represents the tenant as a group carrying the identifier.
	StyleGroup Style = "group"
	// StyleBoth applies both mechanisms; the user attribute is kept for
	// consumers that predate the group claim.
	StyleBoth Style = "both"
)

// Valid reports whether s is a recognized provisioning style.
func (s Style) Valid() bool {
	switch s {
	case StyleAttribute, StyleGroup, StyleBoth:
		return true
	}
	return false
}

func (s Style) attribute() bool { return s == StyleAttribute || s == StyleBoth }
func (s Style) group() bool     { return s == StyleGroup || s == StyleBoth }

// UseCase wires the admin port and the optional run-history repository.
type UseCase struct {
	Port model.AdminPort
	// Runs records completed runs when non-nil.
	Runs domain.RunRepository
}
