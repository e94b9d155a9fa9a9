// internal/models/resources.go
package models

// MinReportableLotteryAmount is the threshold above which lottery or
// gambling winnings must be reported.
const MinReportableLotteryAmount = 4250

// AssetTypes offered in the Resources step.
var AssetTypes = []string{
	"Cash",
	"Checking Account",
	"Savings Account",
	"Stocks/Bonds",
	"401k/Retirement",
	"Other",
}

// Asset belongs to one or more household members via OwnerIDs.
type Asset struct {
	ID                 string   `json:"id"`
	Type               string   `json:"type"`
	OwnerIDs           []string `json:"ownerIds"`
	Institution        string   `json:"institution"`
	AccountType        string   `json:"accountType"`
	AccountNumber      string   `json:"accountNumber,omitempty"`
	Balance            float64  `json:"balance"`
	InstitutionAddress string   `json:"institutionAddress"`
}

// ResourcesInfo is the step 5 entity.
type ResourcesInfo struct {
	Assets          []Asset `json:"assets"`
	LotteryWinnings bool    `json:"lotteryWinnings"`
	LotteryAmount   float64 `json:"lotteryAmount,omitempty"`
	AssetTransfers  bool    `json:"assetTransfers"`
	TransferDetails string  `json:"transferDetails,omitempty"`
}
