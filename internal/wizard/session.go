// internal/wizard/session.go
package wizard

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"benefits-wizard/internal/common/config"
	"benefits-wizard/internal/common/errors"
	"benefits-wizard/internal/common/logger"
	"benefits-wizard/internal/common/metrics"
	"benefits-wizard/internal/common/observability"
	"benefits-wizard/internal/forms/field"
	"benefits-wizard/internal/forms/resolve"
	"benefits-wizard/internal/forms/state"
	"benefits-wizard/internal/forms/steps"
	"benefits-wizard/internal/models"
	"benefits-wizard/internal/prefill"
)

// Notifier delivers the post-submission acknowledgement. Failures are logged
// and swallowed; a lost acknowledgement never blocks finalization.
type Notifier interface {
	ApplicationSubmitted(ctx context.Context, app models.ApplicationState, confirmationID string) error
}

// FinalizeResult reports the outcome of a submission attempt.
type FinalizeResult struct {
	ConfirmationID string           `json:"confirmationId,omitempty"`
	Violations     field.Violations `json:"violations,omitempty"`
}

// Session owns one application in progress: the store, the navigator over
// it, a visit epoch per step for prefill staleness tracking, and the
// finalized flag. Sessions are constructed explicitly and passed to whoever
// needs them; there is no ambient global.
type Session struct {
	mu sync.Mutex

	id             uuid.UUID
	store          *state.Store
	nav            *Navigator
	epochs         map[models.StepID]uint64
	finalized      bool
	confirmationID string

	log      logger.Logger
	obs      *observability.Observability
	notifier Notifier
}

// NewSession builds a session at step 1 with an empty application. The
// notifier may be nil when acknowledgements are disabled.
func NewSession(cfg config.WizardConfig, log logger.Logger, obs *observability.Observability, notifier Notifier) *Session {
	store := state.New()
	s := &Session{
		id:       uuid.New(),
		store:    store,
		nav:      NewNavigator(store, cfg, log, obs),
		epochs:   make(map[models.StepID]uint64, models.TotalSteps),
		log:      log,
		obs:      obs,
		notifier: notifier,
	}
	s.epochs[models.StepProgramSelection] = 1
	return s
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Store exposes the underlying application store for read paths (rendering,
// derived lists).
func (s *Session) Store() *state.Store {
	return s.store
}

// CurrentStep returns the step the user is on.
func (s *Session) CurrentStep() models.StepID {
	return s.store.CurrentStep()
}

// Progress returns the position indicator.
func (s *Session) Progress() Progress {
	return s.nav.Progress()
}

// SkippableNow reports whether the current step is a pass-through for the
// committed program selection.
func (s *Session) SkippableNow() bool {
	return s.nav.SkippableNow()
}

// PolicyFor returns the navigation policy applied to a step.
func (s *Session) PolicyFor(id models.StepID) Policy {
	return s.nav.PolicyFor(id)
}

// Finalized reports whether the application has been submitted.
func (s *Session) Finalized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalized
}

// Epoch returns the current visit token for a step. A prefill result carries
// the epoch captured when it was requested; if the step has been left and
// revisited since, the tokens differ and the result is dropped.
func (s *Session) Epoch(id models.StepID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epochs[id]
}

func (s *Session) bumpEpoch(id models.StepID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epochs[id]++
}

// Next attempts to advance past the current step. See Navigator.Next for the
// policy semantics. Advancing a finalized session is an error.
func (s *Session) Next(ctx context.Context, draft interface{}) (NextResult, error) {
	if s.Finalized() {
		return NextResult{Step: s.store.CurrentStep()}, errors.NewSessionFinalizedError()
	}
	res, err := s.nav.Next(ctx, draft)
	if err == nil && res.Advanced {
		s.bumpEpoch(res.Step)
	}
	return res, err
}

// Back retreats one step without validating or mutating committed data.
func (s *Session) Back(ctx context.Context) (models.StepID, error) {
	if s.Finalized() {
		return s.store.CurrentStep(), errors.NewSessionFinalizedError()
	}
	id := s.nav.Back(ctx)
	s.bumpEpoch(id)
	return id, nil
}

// ApplyPrefill merges a prefill record into the applicant draft, provided
// the result still belongs to the step visit that requested it. Stale
// results, meaning the user navigated away or revisited since the scan
// started, are dropped and reported, never merged.
func (s *Session) ApplyPrefill(id models.StepID, epoch uint64, rec prefill.Record, draft models.ApplicantInfo) (models.ApplicantInfo, error) {
	if s.prefillStale(id, epoch) {
		return draft, errors.NewPrefillStaleError(string(id), epoch)
	}
	return rec.ApplyToApplicant(draft), nil
}

// ApplyMemberPrefill merges a scanned record into a household-member draft,
// under the same staleness rules as ApplyPrefill. This is where scanned SSNs
// and dates of birth land; the applicant contact step has no fields for
// them.
func (s *Session) ApplyMemberPrefill(id models.StepID, epoch uint64, rec prefill.Record, draft models.HouseholdMember) (models.HouseholdMember, error) {
	if s.prefillStale(id, epoch) {
		return draft, errors.NewPrefillStaleError(string(id), epoch)
	}
	return rec.ApplyToMember(draft), nil
}

// prefillStale reports whether a scan that started on step id during the
// given visit is still current. Stale results are dropped and counted.
func (s *Session) prefillStale(id models.StepID, epoch uint64) bool {
	if s.Finalized() || id != s.store.CurrentStep() || epoch != s.Epoch(id) {
		s.obs.RecordPrefillStaleDrop(context.Background(), string(id))
		s.log.Info("prefill result dropped as stale", map[string]interface{}{
			"step":  id,
			"epoch": epoch,
		})
		return true
	}
	return false
}

// Finalize validates the review step strictly, checks the whole application
// for dangling person references, and marks the session submitted. The
// store is not reset; the applicant keeps their data on screen until an
// explicit reset, and a second Finalize is an error.
func (s *Session) Finalize(ctx context.Context, review models.ReviewAcknowledgements) (FinalizeResult, error) {
	if s.Finalized() {
		return FinalizeResult{}, errors.NewSessionFinalizedError()
	}
	if index := s.store.FurthestStepIndex(); index < models.TotalSteps {
		return FinalizeResult{}, errors.NewSessionNotCompleteError(s.store.CurrentStepIndex())
	}

	// The review step always validates strictly, whatever its configured
	// policy; an unsigned application never finalizes.
	violations := steps.ValidateReview(review)
	if !violations.OK() {
		s.obs.RecordValidationFailure(ctx, string(models.StepReview), len(violations))
		return FinalizeResult{Violations: violations},
			errors.NewStepValidationFailedError(string(models.StepReview), violations.String())
	}
	if err := s.store.SetStep(models.StepReview, review); err != nil {
		return FinalizeResult{}, err
	}

	if refs := resolve.CheckReferences(s.store.Snapshot()); !refs.OK() {
		s.log.Warn("finalization blocked by dangling references", map[string]interface{}{
			"violations": len(refs),
		})
		return FinalizeResult{Violations: refs},
			errors.NewReferentialIntegrityError(refs.String())
	}

	s.mu.Lock()
	s.finalized = true
	s.confirmationID = uuid.NewString()
	confirmationID := s.confirmationID
	s.mu.Unlock()

	metrics.SubmissionsFinalized.Inc()
	s.log.Info("application finalized", map[string]interface{}{
		"session":        s.id.String(),
		"confirmationId": confirmationID,
	})

	if s.notifier != nil {
		if err := s.notifier.ApplicationSubmitted(ctx, s.store.Snapshot(), confirmationID); err != nil {
			s.log.WithError(err).Warn("acknowledgement delivery failed", map[string]interface{}{
				"confirmationId": confirmationID,
			})
		}
	}

	return FinalizeResult{ConfirmationID: confirmationID}, nil
}

// Reset discards the application and returns the session to step 1. This is
// the only path that clears a finalized session.
func (s *Session) Reset() {
	s.store.Reset()
	s.mu.Lock()
	s.finalized = false
	s.confirmationID = ""
	s.epochs = make(map[models.StepID]uint64, models.TotalSteps)
	s.epochs[models.StepProgramSelection] = 1
	s.mu.Unlock()
	s.log.Info("session reset", map[string]interface{}{"session": s.id.String()})
}

// ConfirmationID returns the confirmation id once finalized.
func (s *Session) ConfirmationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmationID
}
