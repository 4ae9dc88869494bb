// Package naming mints the generated identifiers used during provisioning.
package naming

import "github.com/google/uuid"

// NewTenantID mints the tenant (organization) identifier for a provisioning
// run. It is generated exactly once per run and threaded through group and
// user-attribute steps; the issued tokens later expose it as a claim.
func NewTenantID() string {
	return uuid.NewString()
}

// NewRunID returns a unique identifier for a recorded provisioning run.
func NewRunID() string {
	return "run-" + uuid.NewString()
}

// IsTenantID reports whether s parses as a tenant identifier.
func IsTenantID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
