// internal/forms/steps/income.go
package steps

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"benefits-wizard/internal/forms/field"
	"benefits-wizard/internal/models"
)

var incomeRefinements = []Refinement[models.IncomeInfo]{
	{
		Name:    "sources-required",
		Field:   "sources",
		Message: "add at least one income source",
		Failed: func(d models.IncomeInfo) bool {
			return d.HasIncome && len(d.Sources) == 0
		},
	},
	{
		Name:    "job-loss-details-required",
		Field:   "jobLossDetails",
		Message: "describe the job loss",
		Failed: func(d models.IncomeInfo) bool {
			return d.JobLossLast60Days && d.JobLossDetails == ""
		},
	},
	{
		Name:    "third-party-details-required",
		Field:   "thirdPartyDetails",
		Message: "describe who pays the bills",
		Failed: func(d models.IncomeInfo) bool {
			return d.ThirdPartyBillPayment && d.ThirdPartyDetails == ""
		},
	},
	{
		Name:    "daycare-amount-required",
		Field:   "daycareAmount",
		Message: "daycare amount is required",
		Failed: func(d models.IncomeInfo) bool {
			return d.DaycareExpenses && d.DaycareAmount <= 0
		},
	},
	{
		Name:    "child-support-amount-required",
		Field:   "childSupportAmount",
		Message: "child support amount is required",
		Failed: func(d models.IncomeInfo) bool {
			return d.ChildSupportPaid && d.ChildSupportAmount <= 0
		},
	},
}

// ValidateIncome checks the step 4 draft. Employer name is required only for
// work income; unearned sources carry just an amount and frequency. Whether
// each PersonID resolves to a real household member is checked at
// finalization, not here, so the schema stays a pure function of its draft.
func ValidateIncome(d models.IncomeInfo) field.Violations {
	var out field.Violations
	for i, src := range d.Sources {
		prefix := fieldIndex("sources", i)
		out.Merge(field.FromValidationErrors(prefix, validation.ValidateStruct(&src,
			validation.Field(&src.PersonID, validation.Required.Error("select the person this income belongs to")),
			validation.Field(&src.SourceType,
				validation.Required.Error("source type is required"),
				field.OneOf(models.IncomeSourceTypes)),
			validation.Field(&src.Amount, field.Currency()),
			validation.Field(&src.Frequency,
				validation.Required.Error("pay frequency is required"),
				field.OneOf(models.PayFrequencies)),
		)))
		if src.SourceType == models.IncomeWork && src.EmployerName == "" {
			out.AddCode(prefix+".employerName", "employer name is required for work income", "employer-required")
		}
	}
	out.Merge(runRefinements(d, incomeRefinements))
	return out
}
