package rdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
)

func openTestDB(t *testing.T) *RunRepository {
	t.Helper()
	db, err := OpenFromURL("sqlite::memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRunRepository(db)
}

func TestRunRepositoryRoundTrip(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	run := &model.Run{
		Workflow:   "provision",
		Realm:      "spooliq",
		ClientID:   "spooliq",
		UserEmail:  "admin@example.com",
		TenantID:   "tenant-1",
		OK:         true,
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Steps: []model.RunStep{
			{Name: "ensure-client", Status: model.StatusCreated, Kind: model.KindClient, NaturalKey: "spooliq", RemoteID: "abc"},
			{Name: "ensure-realm-roles", Status: model.StatusFound, Detail: "Owner:found"},
		},
	}
	if err := repo.Create(ctx, run); err != nil {
		t.Fatalf("create: %v", err)
	}
	if run.ID == "" {
		t.Fatal("create must assign an id")
	}

	got, err := repo.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Realm != "spooliq" || got.TenantID != "tenant-1" || !got.OK {
		t.Errorf("run = %+v", got)
	}
	if len(got.Steps) != 2 || got.Steps[0].Status != model.StatusCreated {
		t.Errorf("steps = %+v", got.Steps)
	}
}

func TestRunRepositoryListNewestFirst(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run := &model.Run{Workflow: "provision", Realm: "spooliq", StartedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := repo.Create(ctx, run); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	runs, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("runs = %d, want 3", len(runs))
	}
	if !runs[0].StartedAt.After(runs[2].StartedAt) {
		t.Errorf("runs not ordered newest first: %v, %v", runs[0].StartedAt, runs[2].StartedAt)
	}
}

func TestRunRepositoryGetMissing(t *testing.T) {
	repo := openTestDB(t)
	if _, err := repo.Get(context.Background(), "run-missing"); !errors.Is(err, model.ErrRunNotFound) {
		t.Errorf("error = %v, want ErrRunNotFound", err)
	}
}
