package provision

import (
	"context"
	"errors"
	"testing"

	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
)

func TestEnsure(t *testing.T) {
	boom := errors.New("boom")
	existing := &model.RemoteResource{Kind: model.KindClient, NaturalKey: "app", RemoteID: "uuid-1"}

	tests := []struct {
		name        string
		lookups     []*model.RemoteResource // consecutive lookup returns
		lookupErr   error
		createRes   *model.RemoteResource
		createErr   error
		wantStatus  model.ReconcileStatus
		wantErr     bool
		wantID      string
		wantCreates int
		wantLookups int
	}{
		{
			name:        "found skips creation",
			lookups:     []*model.RemoteResource{existing},
			wantStatus:  model.StatusFound,
			wantID:      "uuid-1",
			wantCreates: 0,
			wantLookups: 1,
		},
		{
			name:        "created with id from create",
			lookups:     []*model.RemoteResource{nil},
			createRes:   existing,
			wantStatus:  model.StatusCreated,
			wantID:      "uuid-1",
			wantCreates: 1,
			wantLookups: 1,
		},
		{
			name:        "created id recovered by relookup",
			lookups:     []*model.RemoteResource{nil, existing},
			createRes:   &model.RemoteResource{Kind: model.KindClient, NaturalKey: "app"},
			wantStatus:  model.StatusCreated,
			wantID:      "uuid-1",
			wantCreates: 1,
			wantLookups: 2,
		},
		{
			name:        "conflict normalized to success",
			lookups:     []*model.RemoteResource{nil, existing},
			createErr:   model.ErrConflict,
			wantStatus:  model.StatusConflictExists,
			wantID:      "uuid-1",
			wantCreates: 1,
			wantLookups: 2,
		},
		{
			name:       "create failure",
			lookups:    []*model.RemoteResource{nil},
			createErr:  &model.RemoteError{Status: 500, Body: "server error"},
			wantStatus: model.StatusFailed,
			wantErr:    true,
		},
		{
			name:       "lookup failure",
			lookupErr:  boom,
			wantStatus: model.StatusFailed,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lookups, creates int
			spec := EnsureSpec{
				Kind:       model.KindClient,
				NaturalKey: "app",
				Lookup: func(ctx context.Context) (*model.RemoteResource, error) {
					if tt.lookupErr != nil {
						return nil, tt.lookupErr
					}
					i := lookups
					lookups++
					if i >= len(tt.lookups) {
						return nil, nil
					}
					return tt.lookups[i], nil
				},
				Create: func(ctx context.Context) (*model.RemoteResource, error) {
					creates++
					return tt.createRes, tt.createErr
				},
			}
			res, status, err := Ensure(context.Background(), spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Ensure() error = %v, wantErr %v", err, tt.wantErr)
			}
			if status != tt.wantStatus {
				t.Errorf("status = %s, want %s", status, tt.wantStatus)
			}
			if tt.wantErr {
				return
			}
			if res == nil || res.RemoteID != tt.wantID {
				t.Errorf("resource = %+v, want RemoteID %q", res, tt.wantID)
			}
			if creates != tt.wantCreates {
				t.Errorf("creates = %d, want %d", creates, tt.wantCreates)
			}
			if lookups != tt.wantLookups {
				t.Errorf("lookups = %d, want %d", lookups, tt.wantLookups)
			}
		})
	}
}

func TestEnsureStatusSuccess(t *testing.T) {
	for _, s := range []model.ReconcileStatus{model.StatusFound, model.StatusCreated, model.StatusConflictExists} {
		if !s.Success() {
			t.Errorf("%s.Success() = false, want true", s)
		}
	}
	if model.StatusFailed.Success() {
		t.Error("Failed.Success() = true, want false")
	}
}
