// internal/forms/steps/applicant.go
package steps

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"benefits-wizard/internal/forms/field"
	"benefits-wizard/internal/models"
)

var correspondencePreferences = []models.CorrespondencePreference{
	models.CorrespondText,
	models.CorrespondEmail,
	models.CorrespondMail,
}

var applicantRefinements = []Refinement[models.ApplicantInfo]{
	{
		Name:    "mailing-address-required",
		Field:   "mailingAddress",
		Message: "mailing address is required when it differs from the street address",
		Failed: func(d models.ApplicantInfo) bool {
			return !d.MailingAddressSame && d.MailingAddress == nil
		},
	},
	{
		Name:    "other-language-required",
		Field:   "otherLanguage",
		Message: "specify the primary language",
		Failed: func(d models.ApplicantInfo) bool {
			return d.PrimaryLanguage == "Other" && d.OtherLanguage == ""
		},
	},
	{
		Name:    "email-required-for-email-preference",
		Field:   "email",
		Message: "email address is required for email correspondence",
		Failed: func(d models.ApplicantInfo) bool {
			return d.CorrespondencePreference == models.CorrespondEmail && d.Email == ""
		},
	},
	{
		Name:    "prior-benefits-details-required",
		Field:   "priorBenefitsDetails",
		Message: "describe the prior benefits received",
		Failed: func(d models.ApplicantInfo) bool {
			return d.PriorBenefits && d.PriorBenefitsDetails == ""
		},
	},
	{
		Name:    "felony-types-required",
		Field:   "felonyTypes",
		Message: "select at least one felony type",
		Failed: func(d models.ApplicantInfo) bool {
			return d.FelonyConvictions && len(d.FelonyTypes) == 0
		},
	},
	{
		Name:    "felony-types-not-applicable",
		Field:   "felonyTypes",
		Message: "felony types only apply when a felony conviction is reported",
		Failed: func(d models.ApplicantInfo) bool {
			return !d.FelonyConvictions && len(d.FelonyTypes) > 0
		},
	},
}

// ValidateApplicantInfo checks the step 2 draft: applicant name, home and
// mailing addresses, contact details, language, and background questions.
func ValidateApplicantInfo(d models.ApplicantInfo) field.Violations {
	out := field.FromValidationErrors("", validation.ValidateStruct(&d,
		validation.Field(&d.StreetAddress, validation.Required.Error("street address is required")),
		validation.Field(&d.City, validation.Required.Error("city is required")),
		validation.Field(&d.County, validation.Required.Error("county is required")),
		validation.Field(&d.Zip, validation.Required.Error("ZIP code is required"), field.Zip()),
		validation.Field(&d.Email, field.Email()),
		validation.Field(&d.PrimaryPhone, validation.Required.Error("primary phone is required"), field.Phone()),
		validation.Field(&d.AlternatePhone, field.Phone()),
		validation.Field(&d.PrimaryLanguage,
			validation.Required.Error("primary language is required"),
			field.OneOf(models.Languages)),
		validation.Field(&d.CorrespondencePreference,
			validation.Required.Error("correspondence preference is required"),
			field.OneOf(correspondencePreferences)),
		validation.Field(&d.FelonyTypes, field.SubsetOf(models.FelonyTypes)),
	))
	out.Merge(validateName("name", d.Name))
	if d.MailingAddress != nil && !d.MailingAddressSame {
		out.Merge(validateMailingAddress("mailingAddress", *d.MailingAddress))
	}
	out.Merge(runRefinements(d, applicantRefinements))
	return out
}

func validateName(prefix string, n models.Name) field.Violations {
	return field.FromValidationErrors(prefix, validation.ValidateStruct(&n,
		validation.Field(&n.First, validation.Required.Error("first name is required")),
		validation.Field(&n.Last, validation.Required.Error("last name is required")),
	))
}

func validateMailingAddress(prefix string, a models.MailingAddress) field.Violations {
	return field.FromValidationErrors(prefix, validation.ValidateStruct(&a,
		validation.Field(&a.Street, validation.Required.Error("street is required")),
		validation.Field(&a.City, validation.Required.Error("city is required")),
		validation.Field(&a.Zip, validation.Required.Error("ZIP code is required"), field.Zip()),
	))
}
