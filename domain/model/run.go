package model

import "time"

// Run is the recorded outcome of one orchestration run. Runs are only
// persisted when a run-history store is configured; the remote IAM state is
// always the source of truth.
type Run struct {
	ID         string
	Workflow   string // provision
	Realm      string
	ClientID   string
	UserEmail  string
	TenantID   string
	OK         bool
	StartedAt  time.Time
	FinishedAt time.Time
	Steps      []RunStep
}

// RunStep is the recorded outcome of a single orchestration step.
type RunStep struct {
	Name       string
	Status     ReconcileStatus
	Kind       Kind
	NaturalKey string
	RemoteID   string
	Detail     string
}
