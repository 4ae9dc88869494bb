// Package run exposes recorded run history.
package run

import (
	"github.com/RodolfoBonis/spooliq-iamops/domain"
)

// UseCase reads recorded provisioning runs.
type UseCase struct {
	Runs domain.RunRepository
}
