// internal/forms/steps/representative.go
package steps

import (
	"benefits-wizard/internal/forms/field"
	"benefits-wizard/internal/models"
)

var representativeRefinements = []Refinement[models.AuthorizedRepresentative]{
	{
		Name:    "name-required",
		Field:   "name",
		Message: "representative name is required",
		Failed: func(d models.AuthorizedRepresentative) bool {
			return d.HasRepresentative && d.Name == ""
		},
	},
	{
		Name:    "address-required",
		Field:   "address",
		Message: "representative address is required",
		Failed: func(d models.AuthorizedRepresentative) bool {
			return d.HasRepresentative && d.Address == ""
		},
	},
	{
		Name:    "phone-required",
		Field:   "phone",
		Message: "representative phone is required",
		Failed: func(d models.AuthorizedRepresentative) bool {
			return d.HasRepresentative && d.Phone == ""
		},
	},
}

// ValidateRepresentative checks the step 7 draft. Declining a representative
// passes with no further input; naming one requires full contact details.
func ValidateRepresentative(d models.AuthorizedRepresentative) field.Violations {
	out := runRefinements(d, representativeRefinements)
	if d.HasRepresentative && d.Phone != "" {
		if err := field.Phone().Validate(d.Phone); err != nil {
			out.Add("phone", err.Error())
		}
	}
	return out
}
