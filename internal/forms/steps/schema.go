// internal/forms/steps/schema.go

// Package steps holds one validation schema per wizard step. A schema is a
// pure function of its draft: shape rules run first, then the step's named
// refinement table, and the full violation list is always returned.
package steps

import (
	"fmt"

	"benefits-wizard/internal/forms/field"
	"benefits-wizard/internal/models"
)

// Refinement is one named cross-field rule: a predicate over the whole draft
// plus the field path and message reported when it fails.
type Refinement[T any] struct {
	Name    string
	Field   string
	Message string
	Failed  func(draft T) bool
}

func runRefinements[T any](draft T, rules []Refinement[T]) field.Violations {
	var out field.Violations
	for _, r := range rules {
		if r.Failed(draft) {
			out.AddCode(r.Field, r.Message, r.Name)
		}
	}
	return out
}

// Validate dispatches a draft to its step schema. The draft must carry the
// concrete type for the step; anything else is a programming error, reported
// as an error rather than a violation. ProgramSpecific validation is gated by
// the committed program selection, which the caller passes in so schemas stay
// pure.
func Validate(id models.StepID, draft interface{}, selection models.ProgramSelection) (field.Violations, error) {
	switch id {
	case models.StepProgramSelection:
		d, ok := draft.(models.ProgramSelection)
		if !ok {
			return nil, draftTypeError(id, draft)
		}
		return ValidateProgramSelection(d), nil
	case models.StepApplicantInfo:
		d, ok := draft.(models.ApplicantInfo)
		if !ok {
			return nil, draftTypeError(id, draft)
		}
		return ValidateApplicantInfo(d), nil
	case models.StepHousehold:
		d, ok := draft.(models.Household)
		if !ok {
			return nil, draftTypeError(id, draft)
		}
		return ValidateHousehold(d), nil
	case models.StepIncome:
		d, ok := draft.(models.IncomeInfo)
		if !ok {
			return nil, draftTypeError(id, draft)
		}
		return ValidateIncome(d), nil
	case models.StepResources:
		d, ok := draft.(models.ResourcesInfo)
		if !ok {
			return nil, draftTypeError(id, draft)
		}
		return ValidateResources(d), nil
	case models.StepProgramSpecific:
		d, ok := draft.(models.ProgramSpecific)
		if !ok {
			return nil, draftTypeError(id, draft)
		}
		return ValidateProgramSpecific(d, selection), nil
	case models.StepRepresentative:
		d, ok := draft.(models.AuthorizedRepresentative)
		if !ok {
			return nil, draftTypeError(id, draft)
		}
		return ValidateRepresentative(d), nil
	case models.StepReview:
		d, ok := draft.(models.ReviewAcknowledgements)
		if !ok {
			return nil, draftTypeError(id, draft)
		}
		return ValidateReview(d), nil
	default:
		return nil, fmt.Errorf("no schema registered for step %q", id)
	}
}

func draftTypeError(id models.StepID, draft interface{}) error {
	return fmt.Errorf("step %q: unexpected draft type %T", id, draft)
}

func fieldIndex(base string, i int) string {
	return fmt.Sprintf("%s[%d]", base, i)
}

func fieldAt(base string, i int, sub string) string {
	return fmt.Sprintf("%s[%d].%s", base, i, sub)
}

// Skippable reports whether a step is a pass-through for the given program
// selection. Skippable steps may be advanced past without data.
func Skippable(id models.StepID, selection models.ProgramSelection) bool {
	switch id {
	case models.StepResources:
		// Resources are not collected for TANF-only applications.
		return selection.OnlyTANF()
	case models.StepProgramSpecific:
		return !selection.HasProgramSpecificSections()
	default:
		return false
	}
}
