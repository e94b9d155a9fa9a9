// internal/forms/steps/program_selection.go
package steps

import (
	"benefits-wizard/internal/forms/field"
	"benefits-wizard/internal/models"
)

var programSelectionRefinements = []Refinement[models.ProgramSelection]{
	{
		Name:    "programs-required",
		Field:   "programs",
		Message: "select at least one program",
		Failed: func(d models.ProgramSelection) bool {
			return len(d.Programs) == 0
		},
	},
	{
		Name:    "tanf-no-snap-requires-tanf",
		Field:   "tanfNoSnap",
		Message: "only applies when TANF is selected without SNAP",
		Failed: func(d models.ProgramSelection) bool {
			return d.TANFNoSNAP && (!d.Has(models.ProgramTANF) || d.Has(models.ProgramSNAP))
		},
	},
}

// ValidateProgramSelection checks that at least one known program is chosen.
func ValidateProgramSelection(d models.ProgramSelection) field.Violations {
	var out field.Violations
	known := make(map[models.Program]bool, len(models.AllPrograms))
	for _, p := range models.AllPrograms {
		known[p] = true
	}
	for i, p := range d.Programs {
		if !known[p] {
			out.Add(fieldIndex("programs", i), "unknown program")
		}
	}
	out.Merge(runRefinements(d, programSelectionRefinements))
	return out
}
