// internal/models/income.go
package models

// IncomeSourceType distinguishes work income from the fixed set of
// unearned types. Only work income carries an employer name.
type IncomeSourceType string

const (
	IncomeWork           IncomeSourceType = "work"
	IncomeSocialSecurity IncomeSourceType = "Social Security"
	IncomeSSI            IncomeSourceType = "SSI"
	IncomeUnemployment   IncomeSourceType = "Unemployment"
	IncomeChildSupport   IncomeSourceType = "Child support"
	IncomeVeteransBen    IncomeSourceType = "Veterans benefits"
	IncomeRetirement     IncomeSourceType = "Retirement"
)

// IncomeSourceTypes lists every accepted source type.
var IncomeSourceTypes = []IncomeSourceType{
	IncomeWork,
	IncomeSocialSecurity,
	IncomeSSI,
	IncomeUnemployment,
	IncomeChildSupport,
	IncomeVeteransBen,
	IncomeRetirement,
}

// PayFrequency is how often an amount recurs.
type PayFrequency string

const (
	FrequencyWeekly       PayFrequency = "weekly"
	FrequencyBiweekly     PayFrequency = "biweekly"
	FrequencyTwiceMonthly PayFrequency = "twice-monthly"
	FrequencyMonthly      PayFrequency = "monthly"
)

var PayFrequencies = []PayFrequency{
	FrequencyWeekly,
	FrequencyBiweekly,
	FrequencyTwiceMonthly,
	FrequencyMonthly,
}

// IncomeSource belongs to exactly one household member via PersonID.
type IncomeSource struct {
	ID           string           `json:"id"`
	PersonID     string           `json:"personId"`
	SourceType   IncomeSourceType `json:"sourceType"`
	EmployerName string           `json:"employerName,omitempty"`
	Amount       float64          `json:"amount"`
	Frequency    PayFrequency     `json:"frequency"`
}

// IncomeInfo is the step 4 entity.
type IncomeInfo struct {
	HasIncome bool           `json:"hasIncome"`
	Sources   []IncomeSource `json:"sources"`

	JobLossLast60Days     bool    `json:"jobLossLast60Days"`
	JobLossDetails        string  `json:"jobLossDetails,omitempty"`
	ThirdPartyBillPayment bool    `json:"thirdPartyBillPayment"`
	ThirdPartyDetails     string  `json:"thirdPartyDetails,omitempty"`
	DaycareExpenses       bool    `json:"daycareExpenses"`
	DaycareAmount         float64 `json:"daycareAmount,omitempty"`
	ChildSupportPaid      bool    `json:"childSupportPaid"`
	ChildSupportAmount    float64 `json:"childSupportAmount,omitempty"`
}
