// internal/forms/resolve/resolver_test.go
package resolve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benefits-wizard/internal/models"
)

var testNow = time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

func createTestHousehold() models.Household {
	return models.Household{Members: []models.HouseholdMember{
		{
			ID:           "m1",
			Name:         models.Name{First: "Maria", Last: "Lopez"},
			Relationship: models.RelationshipSelf,
			DateOfBirth:  "1990-04-12",
		},
		{
			ID:           "m2",
			Name:         models.Name{First: "Sam", Last: "Lopez"},
			Relationship: "Child",
			DateOfBirth:  "2015-06-01",
		},
		{
			ID:           "m3",
			Name:         models.Name{First: "Ana", Last: "Lopez"},
			Relationship: "Child",
			// turns 18 the day before testNow
			DateOfBirth: "2008-08-29",
		},
	}}
}

func TestPeople(t *testing.T) {
	people := People(createTestHousehold())
	require.Len(t, people, 3)

	assert.Equal(t, "Maria Lopez (you)", people[0].DisplayName)
	assert.True(t, people[0].IsSelf)
	assert.Equal(t, "Sam Lopez", people[1].DisplayName)
	assert.False(t, people[1].IsSelf)

	assert.Empty(t, People(models.Household{}))
}

func TestChildrenAndAdults(t *testing.T) {
	h := createTestHousehold()

	children := Children(h, testNow)
	require.Len(t, children, 1)
	assert.Equal(t, "m2", children[0].ID)

	adults := Adults(h, testNow)
	require.Len(t, adults, 2)
	assert.Equal(t, "m1", adults[0].ID)
	assert.Equal(t, "m3", adults[1].ID, "member who just turned 18 counts as adult")
}

func TestAdultsIncludesUnparseableDOB(t *testing.T) {
	h := models.Household{Members: []models.HouseholdMember{
		{ID: "m1", Name: models.Name{First: "A", Last: "B"}, DateOfBirth: "not-a-date"},
	}}
	assert.Len(t, Adults(h, testNow), 1)
	assert.Empty(t, Children(h, testNow))
}

func TestCheckReferencesCleanState(t *testing.T) {
	h := createTestHousehold()
	state := models.ApplicationState{
		Household: &h,
		Income: &models.IncomeInfo{Sources: []models.IncomeSource{
			{ID: "s1", PersonID: "m1", SourceType: models.IncomeWork, Amount: 100, Frequency: models.FrequencyWeekly},
		}},
		Resources: &models.ResourcesInfo{Assets: []models.Asset{
			{ID: "a1", OwnerIDs: []string{"m1", "m3"}},
		}},
		ProgramSpecific: &models.ProgramSpecific{
			SNAP: &models.SNAPInfo{HeadOfHousehold: "m1"},
			TANF: &models.TANFInfo{ChildParentInfo: []models.ChildParentInfo{
				{ChildID: "m2", ParentID: "m1", ImmunizationStatus: "current"},
			}},
		},
	}

	assert.True(t, CheckReferences(state).OK())
}

func TestCheckReferencesFindsDanglingIDs(t *testing.T) {
	h := createTestHousehold()
	ag := &models.AuxiliaryGrantsInfo{TaxFilers: []string{"m1", "gone-1"}, NonFilers: []string{"gone-2"}}
	state := models.ApplicationState{
		Household: &h,
		Income: &models.IncomeInfo{Sources: []models.IncomeSource{
			{ID: "s1", PersonID: "removed"},
		}},
		Resources: &models.ResourcesInfo{Assets: []models.Asset{
			{ID: "a1", OwnerIDs: []string{"m1", "removed"}},
		}},
		ProgramSpecific: &models.ProgramSpecific{
			SNAP:            &models.SNAPInfo{HeadOfHousehold: "removed"},
			AuxiliaryGrants: ag,
		},
	}

	v := CheckReferences(state)
	assert.True(t, v.Has("income.sources[0].personId"))
	assert.True(t, v.Has("resources.assets[0].ownerIds[1]"))
	assert.True(t, v.Has("programSpecific.snap.headOfHousehold"))
	assert.True(t, v.Has("programSpecific.auxiliaryGrants.taxFilers[1]"))
	assert.True(t, v.Has("programSpecific.auxiliaryGrants.nonFilers[0]"))
	assert.Len(t, v, 5)
}

func TestCheckReferencesSkipsUncommittedSteps(t *testing.T) {
	// Only the household exists; nothing references anyone yet.
	h := createTestHousehold()
	assert.True(t, CheckReferences(models.ApplicationState{Household: &h}).OK())

	// No household at all: references cannot resolve.
	state := models.ApplicationState{
		Income: &models.IncomeInfo{Sources: []models.IncomeSource{{ID: "s1", PersonID: "m1"}}},
	}
	v := CheckReferences(state)
	assert.True(t, v.Has("income.sources[0].personId"))
}
