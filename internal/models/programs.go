// internal/models/programs.go
package models

// Program identifies one of the assistance programs an application may cover.
type Program string

const (
	ProgramSNAP                 Program = "SNAP"
	ProgramTANF                 Program = "TANF"
	ProgramTANFDiversionary     Program = "TANF_DIVERSIONARY"
	ProgramTANFEmergency        Program = "TANF_EMERGENCY"
	ProgramAuxiliaryGrants      Program = "AUXILIARY_GRANTS"
	ProgramGeneralRelief        Program = "GENERAL_RELIEF"
	ProgramRefugeeCash          Program = "REFUGEE_CASH_ASSISTANCE"
)

// AllPrograms lists every selectable program, in display order.
var AllPrograms = []Program{
	ProgramSNAP,
	ProgramTANF,
	ProgramTANFDiversionary,
	ProgramTANFEmergency,
	ProgramAuxiliaryGrants,
	ProgramGeneralRelief,
	ProgramRefugeeCash,
}

// ProgramSelection is the step 1 entity. An application for TANF is treated
// as an application for SNAP unless TANFNoSNAP is set.
type ProgramSelection struct {
	Programs   []Program `json:"programs"`
	TANFNoSNAP bool      `json:"tanfNoSnap"`
}

// Has reports whether p is among the selected programs.
func (s ProgramSelection) Has(p Program) bool {
	for _, sel := range s.Programs {
		if sel == p {
			return true
		}
	}
	return false
}

// OnlyTANF reports whether TANF is the single selected program. The
// Resources step is a pass-through in that case.
func (s ProgramSelection) OnlyTANF() bool {
	return len(s.Programs) == 1 && s.Programs[0] == ProgramTANF
}

// HasProgramSpecificSections reports whether any selected program collects a
// program-specific sub-record in step 6.
func (s ProgramSelection) HasProgramSpecificSections() bool {
	return s.Has(ProgramTANF) || s.Has(ProgramTANFDiversionary) ||
		s.Has(ProgramTANFEmergency) || s.Has(ProgramSNAP) || s.Has(ProgramAuxiliaryGrants)
}
