// Package roles implements the realm role fixup workflow: legacy role
// removal, canonical role reconciliation, and replacement of the admin
// user's realm role mappings.
package roles

import "github.com/RodolfoBonis/spooliq-iamops/domain/model"

// UseCase wires the admin port for role fixup.
type UseCase struct {
	Port model.AdminPort
}
