// internal/forms/steps/household.go
package steps

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"benefits-wizard/internal/forms/field"
	"benefits-wizard/internal/models"
)

var memberRefinements = []Refinement[models.HouseholdMember]{
	{
		Name:    "other-relationship-required",
		Field:   "otherRelationship",
		Message: "describe the relationship",
		Failed: func(m models.HouseholdMember) bool {
			return (m.Relationship == "Other Relative" || m.Relationship == "Unrelated") &&
				m.OtherRelationship == ""
		},
	},
	{
		Name:    "alien-registration-required",
		Field:   "alienRegistrationNumber",
		Message: "alien registration number is required for non-citizens",
		Failed: func(m models.HouseholdMember) bool {
			return !m.Citizenship && m.AlienRegistration == ""
		},
	},
	{
		Name:    "school-name-required",
		Field:   "schoolName",
		Message: "school name is required for students",
		Failed: func(m models.HouseholdMember) bool {
			return m.Student && m.SchoolName == ""
		},
	},
	{
		Name:    "programs-require-applying",
		Field:   "programs",
		Message: "programs only apply to members applying for benefits",
		Failed: func(m models.HouseholdMember) bool {
			return !m.ApplyingForBenefits && len(m.Programs) > 0
		},
	},
}

// ValidateHousehold checks the step 3 draft: every member's identity fields,
// the conditional detail fields, and the household-level invariant that
// exactly one member is the applicant's own entry.
func ValidateHousehold(d models.Household) field.Violations {
	var out field.Violations
	if len(d.Members) == 0 {
		out.AddCode("members", "add at least one household member", "members-required")
	}
	selfCount := 0
	for i, m := range d.Members {
		prefix := fieldIndex("members", i)
		out.Merge(validateMember(prefix, m))
		if m.IsSelf() {
			selfCount++
		}
	}
	if len(d.Members) > 0 && selfCount == 0 {
		out.AddCode("members", "one member must be the applicant", "self-entry-required")
	}
	if selfCount > 1 {
		out.AddCode("members", "only one member can be the applicant", "self-entry-duplicated")
	}
	return out
}

func validateMember(prefix string, m models.HouseholdMember) field.Violations {
	out := field.FromValidationErrors(prefix, validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.Required.Error("member id is required")),
		validation.Field(&m.Relationship,
			validation.Required.Error("relationship is required"),
			field.OneOf(models.Relationships)),
		validation.Field(&m.DateOfBirth, validation.Required.Error("date of birth is required"), field.ISODate()),
		validation.Field(&m.Gender,
			validation.Required.Error("gender is required"),
			field.OneOf(models.Genders)),
		validation.Field(&m.ResidencyDate, field.ISODate()),
		validation.Field(&m.MaritalStatus,
			validation.Required.Error("marital status is required"),
			field.OneOf(models.MaritalStatuses)),
		validation.Field(&m.EducationLevel, field.OneOf(models.EducationLevels)),
		validation.Field(&m.SSN, field.SSN()),
		validation.Field(&m.Programs, field.SubsetOf(models.AllPrograms)),
	))
	out.Merge(validateName(prefix+".name", m.Name))
	if m.TemporarilyAway {
		if m.AwayDates == nil {
			out.AddCode(prefix+".awayDates.start", "start date is required", "away-dates-required")
			out.AddCode(prefix+".awayDates.end", "end date is required", "away-dates-required")
			out.AddCode(prefix+".awayDates.reason", "reason is required", "away-dates-required")
		} else {
			out.Merge(field.FromValidationErrors(prefix+".awayDates", validation.ValidateStruct(m.AwayDates,
				validation.Field(&m.AwayDates.Start, validation.Required.Error("start date is required"), field.ISODate()),
				validation.Field(&m.AwayDates.End, validation.Required.Error("end date is required"), field.ISODate()),
				validation.Field(&m.AwayDates.Reason, validation.Required.Error("reason is required")),
			)))
		}
	}
	for _, r := range memberRefinements {
		if r.Failed(m) {
			out.AddCode(prefix+"."+r.Field, r.Message, r.Name)
		}
	}
	return out
}
