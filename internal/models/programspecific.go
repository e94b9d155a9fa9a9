// internal/models/programspecific.go
package models

// HeatingMethods offered in the SNAP section.
var HeatingMethods = []string{"gas", "electric", "oil", "wood", "none"}

// AGLivingSituations offered in the Auxiliary Grants section.
var AGLivingSituations = []string{"own-home", "rent", "family", "institution", "other"}

// ChildParentInfo ties a child to a parent for TANF, with immunization status.
type ChildParentInfo struct {
	ChildID            string `json:"childId"`
	ParentID           string `json:"parentId"`
	ImmunizationStatus string `json:"immunizationStatus"`
}

// TANFInfo is collected when TANF is selected.
type TANFInfo struct {
	ChildParentInfo []ChildParentInfo `json:"childParentInfo"`
}

// TANFDiversionaryInfo is shared by the diversionary and emergency programs.
type TANFDiversionaryInfo struct {
	EmergencyNeed        bool   `json:"emergencyNeed"`
	EmergencyDescription string `json:"emergencyDescription,omitempty"`
}

// MedicalExpense is one SNAP medical expense attributed to a member.
type MedicalExpense struct {
	PersonID    string  `json:"personId"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// ShelterCosts are the monthly SNAP shelter figures.
type ShelterCosts struct {
	Rent          float64 `json:"rent"`
	PropertyTax   float64 `json:"propertyTax"`
	HomeInsurance float64 `json:"homeInsurance"`
}

// SNAPInfo is collected when SNAP is selected.
type SNAPInfo struct {
	HeadOfHousehold    string           `json:"headOfHousehold"`
	MealPrepSeparation bool             `json:"mealPrepSeparation"`
	RoomersBoarders    bool             `json:"roomersBoarders"`
	MedicalExpenses    []MedicalExpense `json:"medicalExpenses"`
	ShelterCosts       ShelterCosts     `json:"shelterCosts"`
	HeatingMethod      string           `json:"heatingMethod"`
	TemporaryHousing   bool             `json:"temporaryHousing"`
}

// Property is one real-estate holding in the Auxiliary Grants section.
type Property struct {
	Type     string  `json:"type"`
	Value    float64 `json:"value"`
	Location string  `json:"location"`
}

// Vehicle is one vehicle in the Auxiliary Grants section.
type Vehicle struct {
	Make  string  `json:"make"`
	Model string  `json:"model"`
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// AuxiliaryGrantsInfo is collected when Auxiliary Grants is selected.
type AuxiliaryGrantsInfo struct {
	LivingSituation string     `json:"livingSituation"`
	Property        []Property `json:"property"`
	Vehicles        []Vehicle  `json:"vehicles"`

	BurialArrangements struct {
		HasArrangements bool    `json:"hasArrangements"`
		Value           float64 `json:"value,omitempty"`
	} `json:"burialArrangements"`
	LifeInsurance struct {
		HasPolicy bool    `json:"hasPolicy"`
		Value     float64 `json:"value,omitempty"`
	} `json:"lifeInsurance"`
	HealthInsurance struct {
		HasInsurance bool   `json:"hasInsurance"`
		Provider     string `json:"provider,omitempty"`
	} `json:"healthInsurance"`
	Medicare struct {
		HasMedicare bool     `json:"hasMedicare"`
		Parts       []string `json:"parts,omitempty"`
	} `json:"medicare"`

	TaxFilers []string `json:"taxFilers"`
	NonFilers []string `json:"nonFilers"`
}

// ProgramSpecific is the step 6 entity. Sub-records exist only for the
// programs selected in step 1.
type ProgramSpecific struct {
	TANF             *TANFInfo             `json:"tanf,omitempty"`
	TANFDiversionary *TANFDiversionaryInfo `json:"tanfDiversionary,omitempty"`
	SNAP             *SNAPInfo             `json:"snap,omitempty"`
	AuxiliaryGrants  *AuxiliaryGrantsInfo  `json:"auxiliaryGrants,omitempty"`
}
