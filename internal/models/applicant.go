// internal/models/applicant.go
package models

// Name is the first/middle/last triple used for the applicant and every
// household member.
type Name struct {
	First  string `json:"first"`
	Middle string `json:"middle"`
	Last   string `json:"last"`
}

// MailingAddress is collected only when the mailing address differs from the
// street address.
type MailingAddress struct {
	Street string `json:"street"`
	City   string `json:"city"`
	Zip    string `json:"zip"`
}

// CorrespondencePreference selects the channel for notices.
type CorrespondencePreference string

const (
	CorrespondText  CorrespondencePreference = "text"
	CorrespondEmail CorrespondencePreference = "email"
	CorrespondMail  CorrespondencePreference = "mail"
)

// Languages offered in the primary-language select; "Other" unlocks a
// free-text override.
var Languages = []string{
	"English",
	"Spanish",
	"Vietnamese",
	"Farsi",
	"Arabic",
	"Chinese",
	"Other",
}

// FelonyTypes is the closed set offered when the felony question is answered yes.
var FelonyTypes = []string{
	"Sexual abuse",
	"Murder",
	"Sexual exploitation",
	"Other",
}

// ApplicantInfo is the step 2 entity.
type ApplicantInfo struct {
	Name                     Name                     `json:"name"`
	StreetAddress            string                   `json:"streetAddress"`
	City                     string                   `json:"city"`
	County                   string                   `json:"county"`
	Zip                      string                   `json:"zip"`
	MailingAddressSame       bool                     `json:"mailingAddressSame"`
	MailingAddress           *MailingAddress          `json:"mailingAddress,omitempty"`
	Email                    string                   `json:"email,omitempty"`
	PrimaryPhone             string                   `json:"primaryPhone"`
	AlternatePhone           string                   `json:"alternatePhone,omitempty"`
	PrimaryLanguage          string                   `json:"primaryLanguage"`
	OtherLanguage            string                   `json:"otherLanguage,omitempty"`
	CorrespondencePreference CorrespondencePreference `json:"correspondencePreference"`

	// Background screening questions. Each yes answer may unlock a detail field.
	PriorBenefits        bool     `json:"priorBenefits"`
	PriorBenefitsDetails string   `json:"priorBenefitsDetails,omitempty"`
	FraudConvictions     bool     `json:"fraudConvictions"`
	Disqualifications    bool     `json:"disqualifications"`
	ParoleProbation      bool     `json:"paroleProbation"`
	FelonyConvictions    bool     `json:"felonyConvictions"`
	FelonyTypes          []string `json:"felonyTypes,omitempty"`
}
