// internal/forms/state/store.go

// Package state holds the central in-memory application store. The store is
// deliberately dumb: SetStep overwrites without validating, GetStep returns
// whatever was last committed, and the step index is kept clamped to the
// wizard's bounds. Policy lives in the wizard package, not here.
package state

import (
	"fmt"
	"sync"

	"benefits-wizard/internal/models"
)

// Store owns one application's committed step data plus the current position.
// All methods are safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	state       *models.ApplicationState
	currentStep int // 1-based
	furthest    int // highest step index ever reached
}

// New returns a store positioned at step 1 with an empty application.
func New() *Store {
	return &Store{
		state:       models.NewApplicationState(),
		currentStep: 1,
		furthest:    1,
	}
}

// CurrentStepIndex returns the 1-based current position.
func (s *Store) CurrentStepIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentStep
}

// CurrentStep returns the StepID at the current position.
func (s *Store) CurrentStep() models.StepID {
	return models.StepAt(s.CurrentStepIndex())
}

// FurthestStepIndex returns the highest 1-based position ever reached. Going
// back never lowers it, so the navigator can tell revisits from first visits.
func (s *Store) FurthestStepIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.furthest
}

// SetCurrentStepIndex moves the position, clamped to [1, TotalSteps].
// Out-of-range input is a no-op at the nearest bound, never an error.
func (s *Store) SetCurrentStepIndex(n int) {
	if n < 1 {
		n = 1
	}
	if n > models.TotalSteps {
		n = models.TotalSteps
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentStep = n
	if n > s.furthest {
		s.furthest = n
	}
}

// SetStep overwrites one step's committed data. No validation happens here;
// committing invalid data is the caller's decision (lenient steps do exactly
// that). Setting the same draft twice is harmless.
func (s *Store) SetStep(id models.StepID, draft interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch id {
	case models.StepProgramSelection:
		d, ok := draft.(models.ProgramSelection)
		if !ok {
			return storeTypeError(id, draft)
		}
		s.state.ProgramSelection = &d
	case models.StepApplicantInfo:
		d, ok := draft.(models.ApplicantInfo)
		if !ok {
			return storeTypeError(id, draft)
		}
		s.state.ApplicantInfo = &d
	case models.StepHousehold:
		d, ok := draft.(models.Household)
		if !ok {
			return storeTypeError(id, draft)
		}
		s.state.Household = &d
	case models.StepIncome:
		d, ok := draft.(models.IncomeInfo)
		if !ok {
			return storeTypeError(id, draft)
		}
		s.state.Income = &d
	case models.StepResources:
		d, ok := draft.(models.ResourcesInfo)
		if !ok {
			return storeTypeError(id, draft)
		}
		s.state.Resources = &d
	case models.StepProgramSpecific:
		d, ok := draft.(models.ProgramSpecific)
		if !ok {
			return storeTypeError(id, draft)
		}
		s.state.ProgramSpecific = &d
	case models.StepRepresentative:
		d, ok := draft.(models.AuthorizedRepresentative)
		if !ok {
			return storeTypeError(id, draft)
		}
		s.state.Representative = &d
	case models.StepReview:
		d, ok := draft.(models.ReviewAcknowledgements)
		if !ok {
			return storeTypeError(id, draft)
		}
		s.state.Review = &d
	default:
		return fmt.Errorf("unknown step %q", id)
	}
	return nil
}

// GetStep returns the committed data for a step, or ok=false when the user
// has never committed it.
func (s *Store) GetStep(id models.StepID) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch id {
	case models.StepProgramSelection:
		if s.state.ProgramSelection == nil {
			return nil, false
		}
		return *s.state.ProgramSelection, true
	case models.StepApplicantInfo:
		if s.state.ApplicantInfo == nil {
			return nil, false
		}
		return *s.state.ApplicantInfo, true
	case models.StepHousehold:
		if s.state.Household == nil {
			return nil, false
		}
		return *s.state.Household, true
	case models.StepIncome:
		if s.state.Income == nil {
			return nil, false
		}
		return *s.state.Income, true
	case models.StepResources:
		if s.state.Resources == nil {
			return nil, false
		}
		return *s.state.Resources, true
	case models.StepProgramSpecific:
		if s.state.ProgramSpecific == nil {
			return nil, false
		}
		return *s.state.ProgramSpecific, true
	case models.StepRepresentative:
		if s.state.Representative == nil {
			return nil, false
		}
		return *s.state.Representative, true
	case models.StepReview:
		if s.state.Review == nil {
			return nil, false
		}
		return *s.state.Review, true
	default:
		return nil, false
	}
}

// Selection returns the committed program selection, or the empty default
// before step 1 has ever been committed.
func (s *Store) Selection() models.ProgramSelection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Selection()
}

// Household returns the committed household, or an empty one.
func (s *Store) Household() models.Household {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Household == nil {
		return models.Household{}
	}
	return *s.state.Household
}

// Applicant returns the committed applicant info and whether it exists.
func (s *Store) Applicant() (models.ApplicantInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.ApplicantInfo == nil {
		return models.ApplicantInfo{}, false
	}
	return *s.state.ApplicantInfo, true
}

// Snapshot returns a copy of the whole aggregate for read-only use
// (rendering the review page, finalization checks).
func (s *Store) Snapshot() models.ApplicationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.state
}

// Reset discards everything and returns the store to its initial state:
// step 1, empty selection, all other steps unset.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = models.NewApplicationState()
	s.currentStep = 1
	s.furthest = 1
}

func storeTypeError(id models.StepID, draft interface{}) error {
	return fmt.Errorf("step %q: unexpected draft type %T", id, draft)
}
