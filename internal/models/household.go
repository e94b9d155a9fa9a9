// internal/models/household.go
package models

// RelationshipSelf marks the household entry seeded from the applicant.
// Exactly one member carries it and it cannot be edited or removed.
const RelationshipSelf = "Self (Applicant)"

// Relationships offered for household members. "Other Relative" and
// "Unrelated" unlock a free-text description.
var Relationships = []string{
	RelationshipSelf,
	"Spouse",
	"Child",
	"Parent",
	"Sibling",
	"Other Relative",
	"Unrelated",
}

var Genders = []string{"Male", "Female", "Non-binary", "Prefer not to answer"}

var MaritalStatuses = []string{
	"Single",
	"Married",
	"Divorced",
	"Widowed",
	"Separated",
}

var EducationLevels = []string{
	"Less than high school",
	"High school/GED",
	"Some college",
	"Associate degree",
	"Bachelor's degree",
	"Graduate degree",
}

// AwayPeriod is collected when a member is temporarily out of the home.
type AwayPeriod struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Reason string `json:"reason"`
}

// HouseholdMember is one person in the step 3 entity. IDs are generated once
// when the member is added and referenced by later steps.
type HouseholdMember struct {
	ID                string      `json:"id"`
	Name              Name        `json:"name"`
	Relationship      string      `json:"relationship"`
	OtherRelationship string      `json:"otherRelationship,omitempty"`
	DateOfBirth       string      `json:"dateOfBirth"`
	Gender            string      `json:"gender"`
	Citizenship       bool        `json:"citizenship"`
	AlienRegistration string      `json:"alienRegistrationNumber,omitempty"`
	ResidencyDate     string      `json:"residencyDate"`
	MaritalStatus     string      `json:"maritalStatus"`
	EducationLevel    string      `json:"educationLevel"`
	Veteran           bool        `json:"veteran"`
	Disabled          bool        `json:"disabled"`
	Pregnant          bool        `json:"pregnant"`
	Student           bool        `json:"student"`
	SchoolName        string      `json:"schoolName,omitempty"`
	TemporarilyAway   bool        `json:"temporarilyAway"`
	AwayDates         *AwayPeriod `json:"awayDates,omitempty"`

	ApplyingForBenefits bool      `json:"applyingForBenefits"`
	SSN                 string    `json:"ssn,omitempty"`
	Programs            []Program `json:"programs,omitempty"`

	Race      string `json:"race,omitempty"`
	Ethnicity string `json:"ethnicity,omitempty"`
}

// IsSelf reports whether this member is the applicant's own entry.
func (m HouseholdMember) IsSelf() bool {
	return m.Relationship == RelationshipSelf
}

// Household is the step 3 entity.
type Household struct {
	Members []HouseholdMember `json:"members"`
}

// MemberByID returns the member with the given id, if present.
func (h Household) MemberByID(id string) (HouseholdMember, bool) {
	for _, m := range h.Members {
		if m.ID == id {
			return m, true
		}
	}
	return HouseholdMember{}, false
}
