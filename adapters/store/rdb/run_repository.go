// Package rdb persists run history in a relational database.
package rdb

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RodolfoBonis/spooliq-iamops/domain"
	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
	"github.com/RodolfoBonis/spooliq-iamops/internal/naming"
	"gorm.io/gorm"
)

type RunRepository struct{ db *gorm.DB }

func NewRunRepository(db *gorm.DB) *RunRepository { return &RunRepository{db: db} }

func runToRecord(r *model.Run) (*RunRecord, error) {
	steps, err := json.Marshal(r.Steps)
	if err != nil {
		return nil, fmt.Errorf("encode run steps: %w", err)
	}
	return &RunRecord{
		ID:         r.ID,
		Workflow:   r.Workflow,
		Realm:      r.Realm,
		ClientID:   r.ClientID,
		UserEmail:  r.UserEmail,
		TenantID:   r.TenantID,
		OK:         r.OK,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Steps:      string(steps),
	}, nil
}

func runToModel(rec *RunRecord) (*model.Run, error) {
	r := &model.Run{
		ID:         rec.ID,
		Workflow:   rec.Workflow,
		Realm:      rec.Realm,
		ClientID:   rec.ClientID,
		UserEmail:  rec.UserEmail,
		TenantID:   rec.TenantID,
		OK:         rec.OK,
		StartedAt:  rec.StartedAt,
		FinishedAt: rec.FinishedAt,
	}
	if rec.Steps != "" {
		if err := json.Unmarshal([]byte(rec.Steps), &r.Steps); err != nil {
			return nil, fmt.Errorf("decode run steps: %w", err)
		}
	}
	return r, nil
}

func (r *RunRepository) Create(ctx context.Context, run *model.Run) error {
	if run.ID == "" {
		run.ID = naming.NewRunID()
	}
	rec, err := runToRecord(run)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *RunRepository) Get(ctx context.Context, id string) (*model.Run, error) {
	var rec RunRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrRunNotFound
		}
		return nil, err
	}
	return runToModel(&rec)
}

func (r *RunRepository) List(ctx context.Context) ([]*model.Run, error) {
	var recs []RunRecord
	if err := r.db.WithContext(ctx).Order("started_at DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Run, 0, len(recs))
	for i := range recs {
		run, err := runToModel(&recs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, nil
}

var _ domain.RunRepository = (*RunRepository)(nil)
