package provision

import (
	"context"
	"errors"

	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
)

// EnsureSpec parameterizes one idempotent resource reconciliation: a lookup
// by natural key and a creation fallback. Every managed resource kind goes
// through the same algorithm.
type EnsureSpec struct {
	Kind       model.Kind
	NaturalKey string
	// Lookup returns the existing resource or (nil, nil) when absent.
	Lookup func(ctx context.Context) (*model.RemoteResource, error)
	// Create issues the creation request and returns the created resource.
	// It may return a resource without a RemoteID when the service does not
	// hand the identifier back directly; Ensure recovers it by re-running
	// Lookup.
	Create func(ctx context.Context) (*model.RemoteResource, error)
}

// Ensure reconciles a single resource:
//
//  1. Lookup by natural key; a match is returned as StatusFound with no
//     mutation attempted, which is what makes every step safe to re-run.
//  2. Otherwise create. Success is StatusCreated. A conflict means the
//     resource exists (concurrent or prior partial run) and is normalized
//     to StatusConflictExists, indistinguishable from success.
//  3. Any other failure is StatusFailed with the error carrying the remote
//     status and body.
func Ensure(ctx context.Context, spec EnsureSpec) (*model.RemoteResource, model.ReconcileStatus, error) {
	res, err := spec.Lookup(ctx)
	if err != nil {
		return nil, model.StatusFailed, err
	}
	if res != nil {
		return res, model.StatusFound, nil
	}

	created, err := spec.Create(ctx)
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			// Created concurrently or left behind by a partial run. The
			// desired end state holds; recover the id via lookup.
			res, lerr := spec.Lookup(ctx)
			if lerr != nil {
				return nil, model.StatusFailed, lerr
			}
			if res == nil {
				res = &model.RemoteResource{Kind: spec.Kind, NaturalKey: spec.NaturalKey}
			}
			return res, model.StatusConflictExists, nil
		}
		return nil, model.StatusFailed, err
	}

	if created == nil || created.RemoteID == "" {
		res, lerr := spec.Lookup(ctx)
		if lerr == nil && res != nil {
			return res, model.StatusCreated, nil
		}
	}
	if created == nil {
		created = &model.RemoteResource{Kind: spec.Kind, NaturalKey: spec.NaturalKey}
	}
	return created, model.StatusCreated, nil
}
