// internal/models/steps.go
package models

// StepID identifies one page of the wizard.
type StepID string

const (
	StepProgramSelection StepID = "program_selection"
	StepApplicantInfo    StepID = "applicant_info"
	StepHousehold        StepID = "household"
	StepIncome           StepID = "income"
	StepResources        StepID = "resources"
	StepProgramSpecific  StepID = "program_specific"
	StepRepresentative   StepID = "authorized_representative"
	StepReview           StepID = "review"
)

// StepOrder is the canonical 8-step DSS taxonomy, in wizard order.
var StepOrder = []StepID{
	StepProgramSelection,
	StepApplicantInfo,
	StepHousehold,
	StepIncome,
	StepResources,
	StepProgramSpecific,
	StepRepresentative,
	StepReview,
}

// StepTitles maps step ids to the page titles shown to applicants.
var StepTitles = map[StepID]string{
	StepProgramSelection: "Program Selection & Orientation",
	StepApplicantInfo:    "Applicant Information",
	StepHousehold:        "Household Composition",
	StepIncome:           "Income",
	StepResources:        "Resources",
	StepProgramSpecific:  "Program-Specific Sections",
	StepRepresentative:   "Authorized Representative",
	StepReview:           "Review, Acknowledgements & Submit",
}

// TotalSteps is the step count of the canonical taxonomy.
const TotalSteps = 8

// StepNumber returns the 1-based position of id, or 0 if unknown.
func StepNumber(id StepID) int {
	for i, s := range StepOrder {
		if s == id {
			return i + 1
		}
	}
	return 0
}

// StepAt returns the step at the 1-based position n, clamped to [1, TotalSteps].
func StepAt(n int) StepID {
	if n < 1 {
		n = 1
	}
	if n > TotalSteps {
		n = TotalSteps
	}
	return StepOrder[n-1]
}
