package run

import (
	"context"
	"fmt"

	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
)

// ListInput selects runs to list.
type ListInput struct{}

// ListOutput carries the recorded runs, newest first.
type ListOutput struct {
	Runs []*model.Run
}

// List returns all recorded runs.
func (u *UseCase) List(ctx context.Context, _ *ListInput) (*ListOutput, error) {
	if u.Runs == nil {
		return nil, fmt.Errorf("run history store not configured")
	}
	runs, err := u.Runs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return &ListOutput{Runs: runs}, nil
}

// GetInput selects a single run.
type GetInput struct {
	ID string
}

// GetOutput carries one recorded run.
type GetOutput struct {
	Run *model.Run
}

// Get returns a recorded run by ID.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if u.Runs == nil {
		return nil, fmt.Errorf("run history store not configured")
	}
	if in == nil || in.ID == "" {
		return nil, model.ErrRunInvalid
	}
	r, err := u.Runs.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", in.ID, err)
	}
	return &GetOutput{Run: r}, nil
}
