// internal/models/application.go
package models

// ApplicationState is the root aggregate: each step's last-committed data,
// nil until the user advances past that step. Program selection starts
// defaulted (empty selection) rather than nil so downstream predicates can
// always read it.
type ApplicationState struct {
	ProgramSelection *ProgramSelection         `json:"programSelection,omitempty"`
	ApplicantInfo    *ApplicantInfo            `json:"applicantInfo,omitempty"`
	Household        *Household                `json:"household,omitempty"`
	Income           *IncomeInfo               `json:"income,omitempty"`
	Resources        *ResourcesInfo            `json:"resources,omitempty"`
	ProgramSpecific  *ProgramSpecific          `json:"programSpecific,omitempty"`
	Representative   *AuthorizedRepresentative `json:"authorizedRepresentative,omitempty"`
	Review           *ReviewAcknowledgements   `json:"review,omitempty"`
}

// NewApplicationState returns the initial aggregate: empty program selection,
// everything else unset.
func NewApplicationState() *ApplicationState {
	return &ApplicationState{
		ProgramSelection: &ProgramSelection{Programs: []Program{}},
	}
}

// Selection returns the committed program selection, or the empty default.
func (a *ApplicationState) Selection() ProgramSelection {
	if a.ProgramSelection == nil {
		return ProgramSelection{}
	}
	return *a.ProgramSelection
}
