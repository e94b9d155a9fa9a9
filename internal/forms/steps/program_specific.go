// internal/forms/steps/program_specific.go
package steps

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"benefits-wizard/internal/forms/field"
	"benefits-wizard/internal/models"
)

var medicareParts = []string{"A", "B", "C", "D"}

// ValidateProgramSpecific checks the step 6 draft against the committed
// program selection. A sub-record is required and validated only when its
// program was selected; sub-records for unselected programs are ignored.
func ValidateProgramSpecific(d models.ProgramSpecific, selection models.ProgramSelection) field.Violations {
	var out field.Violations
	if selection.Has(models.ProgramTANF) {
		if d.TANF == nil {
			out.AddCode("tanf", "TANF details are required", "tanf-required")
		} else {
			out.Merge(validateTANF("tanf", *d.TANF))
		}
	}
	if selection.Has(models.ProgramTANFDiversionary) || selection.Has(models.ProgramTANFEmergency) {
		if d.TANFDiversionary == nil {
			out.AddCode("tanfDiversionary", "emergency assistance details are required", "tanf-diversionary-required")
		} else if d.TANFDiversionary.EmergencyNeed && d.TANFDiversionary.EmergencyDescription == "" {
			out.AddCode("tanfDiversionary.emergencyDescription", "describe the emergency need", "emergency-description-required")
		}
	}
	if selection.Has(models.ProgramSNAP) {
		if d.SNAP == nil {
			out.AddCode("snap", "SNAP details are required", "snap-required")
		} else {
			out.Merge(validateSNAP("snap", *d.SNAP))
		}
	}
	if selection.Has(models.ProgramAuxiliaryGrants) {
		if d.AuxiliaryGrants == nil {
			out.AddCode("auxiliaryGrants", "Auxiliary Grants details are required", "auxiliary-grants-required")
		} else {
			out.Merge(validateAuxiliaryGrants("auxiliaryGrants", *d.AuxiliaryGrants))
		}
	}
	return out
}

func validateTANF(prefix string, t models.TANFInfo) field.Violations {
	var out field.Violations
	for i, cp := range t.ChildParentInfo {
		p := fieldIndex(prefix+".childParentInfo", i)
		out.Merge(field.FromValidationErrors(p, validation.ValidateStruct(&cp,
			validation.Field(&cp.ChildID, validation.Required.Error("select the child")),
			validation.Field(&cp.ParentID, validation.Required.Error("select the parent")),
			validation.Field(&cp.ImmunizationStatus, validation.Required.Error("immunization status is required")),
		)))
	}
	return out
}

func validateSNAP(prefix string, s models.SNAPInfo) field.Violations {
	out := field.FromValidationErrors(prefix, validation.ValidateStruct(&s,
		validation.Field(&s.HeadOfHousehold, validation.Required.Error("select the head of household")),
		validation.Field(&s.HeatingMethod,
			validation.Required.Error("heating method is required"),
			field.OneOf(models.HeatingMethods)),
	))
	out.Merge(field.FromValidationErrors(prefix+".shelterCosts", validation.ValidateStruct(&s.ShelterCosts,
		validation.Field(&s.ShelterCosts.Rent, field.Currency()),
		validation.Field(&s.ShelterCosts.PropertyTax, field.Currency()),
		validation.Field(&s.ShelterCosts.HomeInsurance, field.Currency()),
	)))
	for i, me := range s.MedicalExpenses {
		p := fieldIndex(prefix+".medicalExpenses", i)
		out.Merge(field.FromValidationErrors(p, validation.ValidateStruct(&me,
			validation.Field(&me.PersonID, validation.Required.Error("select the person the expense belongs to")),
			validation.Field(&me.Amount, field.Currency()),
			validation.Field(&me.Description, validation.Required.Error("description is required")),
		)))
	}
	return out
}

func validateAuxiliaryGrants(prefix string, ag models.AuxiliaryGrantsInfo) field.Violations {
	out := field.FromValidationErrors(prefix, validation.ValidateStruct(&ag,
		validation.Field(&ag.LivingSituation,
			validation.Required.Error("living situation is required"),
			field.OneOf(models.AGLivingSituations)),
	))
	for i, p := range ag.Property {
		pp := fieldIndex(prefix+".property", i)
		out.Merge(field.FromValidationErrors(pp, validation.ValidateStruct(&p,
			validation.Field(&p.Type, validation.Required.Error("property type is required")),
			validation.Field(&p.Location, validation.Required.Error("location is required")),
			validation.Field(&p.Value, field.Currency()),
		)))
	}
	for i, v := range ag.Vehicles {
		vp := fieldIndex(prefix+".vehicles", i)
		out.Merge(field.FromValidationErrors(vp, validation.ValidateStruct(&v,
			validation.Field(&v.Make, validation.Required.Error("make is required")),
			validation.Field(&v.Model, validation.Required.Error("model is required")),
			validation.Field(&v.Year, validation.Min(1900).Error("enter a valid year")),
			validation.Field(&v.Value, field.Currency()),
		)))
	}
	if ag.BurialArrangements.HasArrangements && ag.BurialArrangements.Value <= 0 {
		out.AddCode(prefix+".burialArrangements.value", "value is required", "burial-value-required")
	}
	if ag.LifeInsurance.HasPolicy && ag.LifeInsurance.Value <= 0 {
		out.AddCode(prefix+".lifeInsurance.value", "policy value is required", "life-insurance-value-required")
	}
	if ag.HealthInsurance.HasInsurance && ag.HealthInsurance.Provider == "" {
		out.AddCode(prefix+".healthInsurance.provider", "provider is required", "health-insurance-provider-required")
	}
	if ag.Medicare.HasMedicare {
		if len(ag.Medicare.Parts) == 0 {
			out.AddCode(prefix+".medicare.parts", "select at least one part", "medicare-parts-required")
		} else if err := field.SubsetOf(medicareParts).Validate(ag.Medicare.Parts); err != nil {
			out.Add(prefix+".medicare.parts", err.Error())
		}
	}
	return out
}
