// internal/wizard/navigator.go

// Package wizard ties the step schemas and the state store together: the
// navigator moves through the step sequence under an explicit per-step
// policy, and the session owns one application in progress from first render
// to finalization.
package wizard

import (
	"context"
	"math"
	"time"

	"benefits-wizard/internal/common/config"
	"benefits-wizard/internal/common/errors"
	"benefits-wizard/internal/common/logger"
	"benefits-wizard/internal/common/metrics"
	"benefits-wizard/internal/common/observability"
	"benefits-wizard/internal/forms/field"
	"benefits-wizard/internal/forms/state"
	"benefits-wizard/internal/forms/steps"
	"benefits-wizard/internal/models"
)

// Policy decides what happens when a step's draft fails validation on
// advance. Every step gets exactly one policy, fixed at construction.
type Policy string

const (
	// PolicyStrict blocks the advance and surfaces the violations.
	PolicyStrict Policy = "strict"
	// PolicyLenient commits the draft as-is and advances; violations are
	// still returned so the caller can display them.
	PolicyLenient Policy = "lenient"
)

// Progress is the position indicator shown above the form. Percent is
// rounded to a whole number, the way the page header displays it.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// NextResult reports what an advance attempt did.
type NextResult struct {
	Step       models.StepID    `json:"step"`
	Committed  bool             `json:"committed"`
	Advanced   bool             `json:"advanced"`
	Violations field.Violations `json:"violations,omitempty"`
}

// Navigator advances and retreats through the wizard. It reads and writes
// the store but never owns rendering; callers hand it the current draft on
// each advance attempt.
type Navigator struct {
	store         *state.Store
	defaultPolicy Policy
	stepPolicies  map[models.StepID]Policy
	log           logger.Logger
	obs           *observability.Observability
}

// NewNavigator builds a navigator over the given store using the configured
// policies. Unknown policy strings have been rejected by config validation,
// so anything unrecognized here falls back to strict.
func NewNavigator(store *state.Store, cfg config.WizardConfig, log logger.Logger, obs *observability.Observability) *Navigator {
	n := &Navigator{
		store:         store,
		defaultPolicy: parsePolicy(cfg.DefaultPolicy),
		stepPolicies:  make(map[models.StepID]Policy, len(cfg.StepPolicies)),
		log:           log,
		obs:           obs,
	}
	for step, policy := range cfg.StepPolicies {
		n.stepPolicies[models.StepID(step)] = parsePolicy(policy)
	}
	return n
}

func parsePolicy(s string) Policy {
	if Policy(s) == PolicyLenient {
		return PolicyLenient
	}
	return PolicyStrict
}

// PolicyFor returns the navigation policy for a step.
func (n *Navigator) PolicyFor(id models.StepID) Policy {
	if p, ok := n.stepPolicies[id]; ok {
		return p
	}
	return n.defaultPolicy
}

// CurrentStep returns the step the user is on.
func (n *Navigator) CurrentStep() models.StepID {
	return n.store.CurrentStep()
}

// Progress returns the 1-based position over the total step count.
func (n *Navigator) Progress() Progress {
	current := models.StepNumber(n.store.CurrentStep())
	return Progress{
		Current: current,
		Total:   models.TotalSteps,
		Percent: int(math.Round(float64(current) / float64(models.TotalSteps) * 100)),
	}
}

// SkippableNow reports whether the current step is a pass-through for the
// committed program selection.
func (n *Navigator) SkippableNow() bool {
	return steps.Skippable(n.store.CurrentStep(), n.store.Selection())
}

// Next attempts to advance past the current step with the given draft.
//
// A nil draft on a skippable step advances without touching the store. On the
// last step Next is a no-op on the pointer; finalization is a separate
// operation on the session. Otherwise the draft is validated: under the
// strict policy violations block the advance, under the lenient policy the
// draft is committed and the user advanced regardless, with the violations
// returned for display.
func (n *Navigator) Next(ctx context.Context, draft interface{}) (NextResult, error) {
	id := n.store.CurrentStep()
	index := n.store.CurrentStepIndex()
	policy := n.PolicyFor(id)

	if index >= models.TotalSteps {
		return NextResult{Step: id}, nil
	}

	if draft == nil {
		if !steps.Skippable(id, n.store.Selection()) {
			return NextResult{Step: id}, errors.NewStepNotSkippableError(string(id))
		}
		n.store.SetCurrentStepIndex(index + 1)
		n.obs.RecordStepTransition(ctx, string(id), "next", "skipped")
		n.log.Debug("step skipped", map[string]interface{}{"step": id})
		return NextResult{Step: n.store.CurrentStep(), Advanced: true}, nil
	}

	start := time.Now()
	violations, err := steps.Validate(id, draft, n.store.Selection())
	n.obs.RecordValidationDuration(ctx, string(id), time.Since(start))
	if err != nil {
		return NextResult{Step: id}, err
	}
	if !violations.OK() {
		n.obs.RecordValidationFailure(ctx, string(id), len(violations))
	}

	if policy == PolicyStrict && !violations.OK() {
		metrics.StepsBlocked.WithLabelValues(string(id)).Inc()
		n.obs.RecordStepTransition(ctx, string(id), "next", "blocked")
		n.log.Info("advance blocked by validation", map[string]interface{}{
			"step":       id,
			"violations": len(violations),
		})
		return NextResult{Step: id, Violations: violations}, nil
	}

	if err := n.store.SetStep(id, draft); err != nil {
		return NextResult{Step: id}, err
	}
	n.store.SetCurrentStepIndex(index + 1)
	metrics.StepsCommitted.WithLabelValues(string(id), string(policy)).Inc()
	n.obs.RecordStepTransition(ctx, string(id), "next", "committed")
	if !violations.OK() {
		n.log.Warn("lenient step committed with violations", map[string]interface{}{
			"step":       id,
			"violations": len(violations),
		})
	}
	return NextResult{
		Step:       n.store.CurrentStep(),
		Committed:  true,
		Advanced:   true,
		Violations: violations,
	}, nil
}

// Back retreats one step without validating or touching committed data.
// Clamped at step 1.
func (n *Navigator) Back(ctx context.Context) models.StepID {
	index := n.store.CurrentStepIndex()
	if index > 1 {
		n.store.SetCurrentStepIndex(index - 1)
		n.obs.RecordStepTransition(ctx, string(n.store.CurrentStep()), "back", "moved")
	}
	return n.store.CurrentStep()
}
