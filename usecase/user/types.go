// Package user implements the cross-realm user check and bootstrap
// workflow used before provisioning: the target user must exist in the
// application realm for the provisioning pipeline to succeed.
package user

import "github.com/RodolfoBonis/spooliq-iamops/domain/model"

// UseCase wires the admin port for user checks.
type UseCase struct {
	Port model.AdminPort
}
