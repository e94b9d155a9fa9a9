// internal/forms/resolve/resolver.go

// Package resolve derives cross-step lists from committed state and checks
// that later steps only reference people who exist in the household. Every
// function is pure and tolerant of steps the user has not reached yet.
package resolve

import (
	"fmt"
	"time"

	"benefits-wizard/internal/forms/field"
	"benefits-wizard/internal/models"
)

const adultAge = 18

// Person is one selectable household member, as shown in "who does this
// belong to" dropdowns in later steps.
type Person struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	IsSelf      bool   `json:"isSelf"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

func toPerson(m models.HouseholdMember) Person {
	name := m.Name.First + " " + m.Name.Last
	if m.IsSelf() {
		name += " (you)"
	}
	return Person{
		ID:          m.ID,
		DisplayName: name,
		IsSelf:      m.IsSelf(),
		DateOfBirth: m.DateOfBirth,
	}
}

// People returns every household member in entry order. An uncommitted
// household yields an empty list, never an error.
func People(h models.Household) []Person {
	out := make([]Person, 0, len(h.Members))
	for _, m := range h.Members {
		out = append(out, toPerson(m))
	}
	return out
}

// Children returns members under 18 as of now. Members with an unparseable
// date of birth are treated as adults; the household schema already rejects
// bad dates, so this only matters for leniently committed data.
func Children(h models.Household, now time.Time) []Person {
	var out []Person
	for _, m := range h.Members {
		if age, ok := ageAt(m.DateOfBirth, now); ok && age < adultAge {
			out = append(out, toPerson(m))
		}
	}
	return out
}

// Adults returns members 18 or older as of now, plus members whose date of
// birth cannot be parsed.
func Adults(h models.Household, now time.Time) []Person {
	var out []Person
	for _, m := range h.Members {
		if age, ok := ageAt(m.DateOfBirth, now); !ok || age >= adultAge {
			out = append(out, toPerson(m))
		}
	}
	return out
}

func ageAt(dob string, now time.Time) (int, bool) {
	born, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return 0, false
	}
	years := now.Year() - born.Year()
	if now.YearDay() < born.YearDay() {
		years--
	}
	return years, true
}

// CheckReferences verifies that every person reference in the committed
// state resolves to a household member: income sources, asset owners, the
// SNAP head of household and medical expenses, TANF child/parent rows, and
// the Auxiliary Grants filer lists. Steps that were never committed are
// skipped. This runs at finalization, after going back and removing a member
// may have orphaned references committed earlier.
func CheckReferences(state models.ApplicationState) field.Violations {
	var out field.Violations
	var household models.Household
	if state.Household != nil {
		household = *state.Household
	}

	check := func(path, personID string) {
		if personID == "" {
			return
		}
		if _, ok := household.MemberByID(personID); !ok {
			out.AddCode(path, fmt.Sprintf("references a household member that no longer exists (%s)", personID), "dangling-reference")
		}
	}

	if state.Income != nil {
		for i, src := range state.Income.Sources {
			check(fmt.Sprintf("income.sources[%d].personId", i), src.PersonID)
		}
	}
	if state.Resources != nil {
		for i, a := range state.Resources.Assets {
			for j, owner := range a.OwnerIDs {
				check(fmt.Sprintf("resources.assets[%d].ownerIds[%d]", i, j), owner)
			}
		}
	}
	if state.ProgramSpecific != nil {
		if snap := state.ProgramSpecific.SNAP; snap != nil {
			check("programSpecific.snap.headOfHousehold", snap.HeadOfHousehold)
			for i, me := range snap.MedicalExpenses {
				check(fmt.Sprintf("programSpecific.snap.medicalExpenses[%d].personId", i), me.PersonID)
			}
		}
		if tanf := state.ProgramSpecific.TANF; tanf != nil {
			for i, cp := range tanf.ChildParentInfo {
				check(fmt.Sprintf("programSpecific.tanf.childParentInfo[%d].childId", i), cp.ChildID)
				check(fmt.Sprintf("programSpecific.tanf.childParentInfo[%d].parentId", i), cp.ParentID)
			}
		}
		if ag := state.ProgramSpecific.AuxiliaryGrants; ag != nil {
			for i, id := range ag.TaxFilers {
				check(fmt.Sprintf("programSpecific.auxiliaryGrants.taxFilers[%d]", i), id)
			}
			for i, id := range ag.NonFilers {
				check(fmt.Sprintf("programSpecific.auxiliaryGrants.nonFilers[%d]", i), id)
			}
		}
	}
	return out
}
