// internal/forms/steps/review.go
package steps

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"benefits-wizard/internal/forms/field"
	"benefits-wizard/internal/models"
)

var reviewRefinements = []Refinement[models.ReviewAcknowledgements]{
	{
		Name:    "truthfulness-required",
		Field:   "truthfulness",
		Message: "you must affirm the information is true",
		Failed: func(d models.ReviewAcknowledgements) bool {
			return !d.Truthfulness
		},
	},
	{
		Name:    "change-reporting-required",
		Field:   "changeReporting",
		Message: "you must agree to report changes",
		Failed: func(d models.ReviewAcknowledgements) bool {
			return !d.ChangeReporting
		},
	},
	{
		Name:    "penalties-required",
		Field:   "penalties",
		Message: "you must acknowledge the penalties for false statements",
		Failed: func(d models.ReviewAcknowledgements) bool {
			return !d.Penalties
		},
	},
	{
		Name:    "consent-required",
		Field:   "consentToDataSharing",
		Message: "you must consent to data sharing for eligibility checks",
		Failed: func(d models.ReviewAcknowledgements) bool {
			return !d.ConsentToDataSharing
		},
	},
	{
		Name:    "preparer-details-required",
		Field:   "completedByDetails",
		Message: "identify who completed the application",
		Failed: func(d models.ReviewAcknowledgements) bool {
			return !d.CompletedBySelf && d.CompletedByDetails == ""
		},
	},
}

// ValidateReview checks the step 8 draft: all four acknowledgements affirmed,
// a signature and date present, and preparer details when someone other than
// the applicant filled in the application.
func ValidateReview(d models.ReviewAcknowledgements) field.Violations {
	out := field.FromValidationErrors("", validation.ValidateStruct(&d,
		validation.Field(&d.Signature, validation.Required.Error("signature is required")),
		validation.Field(&d.Date, validation.Required.Error("date is required"), field.ISODate()),
	))
	out.Merge(runRefinements(d, reviewRefinements))
	return out
}
