package provision

import (
	"context"
	"fmt"

	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
	"github.com/RodolfoBonis/spooliq-iamops/internal/logging"
)

// Identifiers carries the opaque identifiers produced by earlier steps and
// consumed by later ones (client remote id, scope id, user id, tenant id).
type Identifiers map[string]string

// StepResult is the outcome of one executed step.
type StepResult struct {
	Name     string
	Status   model.ReconcileStatus
	Resource *model.RemoteResource
	Detail   string
	// Produced holds the identifiers this step makes available to later
	// steps; the driver merges it into the run's identifier set.
	Produced Identifiers
}

// Step is one orchestration step. Produces and Consumes declare the
// identifier dependencies so the pipeline ordering is checkable before any
// network call.
type Step struct {
	Name     string
	Produces []string
	Consumes []string
	Run      func(ctx context.Context, ids Identifiers) (*StepResult, error)
}

// Result is the outcome of a pipeline execution.
type Result struct {
	OK    bool
	Steps []StepResult
}

// Pipeline is a fixed sequence of dependent steps executed fail-fast.
type Pipeline struct {
	Steps []Step
	// OnResult observes each step outcome as it completes, including the
	// failing one.
	OnResult func(StepResult)
}

// Validate rejects a misordered pipeline: every consumed identifier must be
// produced by a strictly earlier step or seeded before execution.
func (p *Pipeline) Validate(seed ...string) error {
	available := make(map[string]bool, len(seed))
	for _, k := range seed {
		available[k] = true
	}
	for i, s := range p.Steps {
		for _, c := range s.Consumes {
			if !available[c] {
				return fmt.Errorf("pipeline misordered: step %d (%s) consumes %q before any earlier step produces it", i, s.Name, c)
			}
		}
		for _, k := range s.Produces {
			available[k] = true
		}
	}
	return nil
}

// Execute validates the pipeline, then runs each step in order. The first
// failure aborts the remaining steps and is returned wrapped with the step
// name; the partial Result is still returned for reporting.
func (p *Pipeline) Execute(ctx context.Context, seed Identifiers) (*Result, error) {
	seedKeys := make([]string, 0, len(seed))
	for k := range seed {
		seedKeys = append(seedKeys, k)
	}
	if err := p.Validate(seedKeys...); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	ids := make(Identifiers, len(seed))
	for k, v := range seed {
		ids[k] = v
	}

	result := &Result{}
	for _, s := range p.Steps {
		log.Debug(ctx, "step start", "step", s.Name)
		sr, err := s.Run(ctx, ids)
		if err != nil {
			fail := StepResult{Name: s.Name, Status: model.StatusFailed, Detail: err.Error()}
			result.Steps = append(result.Steps, fail)
			if p.OnResult != nil {
				p.OnResult(fail)
			}
			log.Error(ctx, "step failed", "step", s.Name, "err", err)
			return result, &model.StepError{Step: s.Name, Err: err}
		}
		if sr == nil {
			sr = &StepResult{}
		}
		if sr.Name == "" {
			sr.Name = s.Name
		}
		for k, v := range sr.Produced {
			ids[k] = v
		}
		result.Steps = append(result.Steps, *sr)
		if p.OnResult != nil {
			p.OnResult(*sr)
		}
		log.Debug(ctx, "step done", "step", s.Name, "status", string(sr.Status))
	}
	result.OK = true
	return result, nil
}
