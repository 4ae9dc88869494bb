package domain

import (
	"context"

	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
)

// RunRepository stores and retrieves recorded provisioning runs.
type RunRepository interface {
	Create(ctx context.Context, r *model.Run) error
	Get(ctx context.Context, id string) (*model.Run, error)
	List(ctx context.Context) ([]*model.Run, error)
}
