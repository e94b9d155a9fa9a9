// internal/forms/steps/resources.go
package steps

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"benefits-wizard/internal/forms/field"
	"benefits-wizard/internal/models"
)

var resourcesRefinements = []Refinement[models.ResourcesInfo]{
	{
		Name:    "lottery-amount-minimum",
		Field:   "lotteryAmount",
		Message: "must be $4,250 or more",
		Failed: func(d models.ResourcesInfo) bool {
			return d.LotteryWinnings && d.LotteryAmount < models.MinReportableLotteryAmount
		},
	},
	{
		Name:    "transfer-details-required",
		Field:   "transferDetails",
		Message: "describe the transferred assets",
		Failed: func(d models.ResourcesInfo) bool {
			return d.AssetTransfers && d.TransferDetails == ""
		},
	},
}

// ValidateResources checks the step 5 draft. Winnings below the reportable
// threshold are rejected rather than silently dropped. Asset OwnerIDs are
// resolved against the household at finalization.
func ValidateResources(d models.ResourcesInfo) field.Violations {
	var out field.Violations
	for i, a := range d.Assets {
		prefix := fieldIndex("assets", i)
		out.Merge(field.FromValidationErrors(prefix, validation.ValidateStruct(&a,
			validation.Field(&a.Type,
				validation.Required.Error("asset type is required"),
				field.OneOf(models.AssetTypes)),
			validation.Field(&a.Institution, validation.Required.Error("institution name is required")),
			validation.Field(&a.AccountType, validation.Required.Error("account type is required")),
			validation.Field(&a.Balance, field.Currency()),
			validation.Field(&a.InstitutionAddress, validation.Required.Error("institution address is required")),
		)))
		if len(a.OwnerIDs) == 0 {
			out.AddCode(prefix+".ownerIds", "select at least one owner", "owners-required")
		}
	}
	out.Merge(runRefinements(d, resourcesRefinements))
	return out
}
