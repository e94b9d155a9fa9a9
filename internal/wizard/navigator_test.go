// internal/wizard/navigator_test.go
package wizard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benefits-wizard/internal/common/config"
	"benefits-wizard/internal/common/logger"
	"benefits-wizard/internal/common/observability"
	"benefits-wizard/internal/forms/state"
	"benefits-wizard/internal/models"
)

func testWizardConfig() config.WizardConfig {
	return config.WizardConfig{
		DefaultPolicy: "strict",
		StepPolicies:  map[string]string{string(models.StepProgramSpecific): "lenient"},
	}
}

func createTestNavigator(t *testing.T) (*Navigator, *state.Store) {
	t.Helper()
	store := state.New()
	nav := NewNavigator(store, testWizardConfig(), logger.NewTestLogger(t), observability.New("wizard-test"))
	return nav, store
}

func validSelection(programs ...models.Program) models.ProgramSelection {
	return models.ProgramSelection{Programs: programs}
}

func validApplicant() models.ApplicantInfo {
	return models.ApplicantInfo{
		Name:                     models.Name{First: "Maria", Last: "Lopez"},
		StreetAddress:            "123 Main St",
		City:                     "Richmond",
		County:                   "Henrico",
		Zip:                      "23220",
		MailingAddressSame:       true,
		PrimaryPhone:             "804-555-0101",
		PrimaryLanguage:          "English",
		CorrespondencePreference: models.CorrespondMail,
	}
}

func validHousehold() models.Household {
	return models.Household{Members: []models.HouseholdMember{{
		ID:            "m1",
		Name:          models.Name{First: "Maria", Last: "Lopez"},
		Relationship:  models.RelationshipSelf,
		DateOfBirth:   "1990-04-12",
		Gender:        "Female",
		Citizenship:   true,
		MaritalStatus: "Single",
	}}}
}

func TestNavigatorPolicyResolution(t *testing.T) {
	nav, _ := createTestNavigator(t)

	assert.Equal(t, PolicyStrict, nav.PolicyFor(models.StepApplicantInfo))
	assert.Equal(t, PolicyLenient, nav.PolicyFor(models.StepProgramSpecific))
}

func TestNavigatorStrictBlocksInvalidDraft(t *testing.T) {
	nav, store := createTestNavigator(t)
	ctx := context.Background()

	res, err := nav.Next(ctx, models.ProgramSelection{})
	require.NoError(t, err)

	assert.False(t, res.Advanced)
	assert.False(t, res.Committed)
	assert.True(t, res.Violations.Has("programs"))
	assert.Equal(t, 1, store.CurrentStepIndex())

	// Committed data untouched: the default selection is still empty but
	// present, not overwritten by the rejected draft.
	_, ok := store.GetStep(models.StepProgramSelection)
	assert.True(t, ok)
}

func TestNavigatorStrictCommitsValidDraft(t *testing.T) {
	nav, store := createTestNavigator(t)
	ctx := context.Background()

	res, err := nav.Next(ctx, validSelection(models.ProgramSNAP))
	require.NoError(t, err)

	assert.True(t, res.Advanced)
	assert.True(t, res.Committed)
	assert.True(t, res.Violations.OK())
	assert.Equal(t, models.StepApplicantInfo, res.Step)
	assert.Equal(t, 2, store.CurrentStepIndex())
	assert.True(t, store.Selection().Has(models.ProgramSNAP))
}

func TestNavigatorLenientCommitsInvalidDraft(t *testing.T) {
	nav, store := createTestNavigator(t)
	ctx := context.Background()

	// Walk to the program-specific step with SNAP selected.
	_, err := nav.Next(ctx, validSelection(models.ProgramSNAP))
	require.NoError(t, err)
	store.SetCurrentStepIndex(6)

	// SNAP details missing entirely: invalid, but the step is lenient.
	res, err := nav.Next(ctx, models.ProgramSpecific{})
	require.NoError(t, err)

	assert.True(t, res.Advanced)
	assert.True(t, res.Committed)
	assert.True(t, res.Violations.Has("snap"), "violations still reported for display")
	assert.Equal(t, 7, store.CurrentStepIndex())

	_, ok := store.GetStep(models.StepProgramSpecific)
	assert.True(t, ok, "lenient policy persists the draft as-is")
}

func TestNavigatorSkipsResourcesForTANFOnly(t *testing.T) {
	nav, store := createTestNavigator(t)
	ctx := context.Background()

	_, err := nav.Next(ctx, validSelection(models.ProgramTANF))
	require.NoError(t, err)
	store.SetCurrentStepIndex(5)
	require.True(t, nav.SkippableNow())

	res, err := nav.Next(ctx, nil)
	require.NoError(t, err)

	assert.True(t, res.Advanced)
	assert.False(t, res.Committed)
	assert.Equal(t, 6, store.CurrentStepIndex())
	_, ok := store.GetStep(models.StepResources)
	assert.False(t, ok)
}

func TestNavigatorNilDraftOnRequiredStepErrors(t *testing.T) {
	nav, store := createTestNavigator(t)

	_, err := nav.Next(context.Background(), nil)
	assert.Error(t, err)
	assert.Equal(t, 1, store.CurrentStepIndex())
}

func TestNavigatorBoundaryClamping(t *testing.T) {
	nav, store := createTestNavigator(t)
	ctx := context.Background()

	// back from step 1 stays at step 1
	assert.Equal(t, models.StepProgramSelection, nav.Back(ctx))
	assert.Equal(t, 1, store.CurrentStepIndex())

	// next from the last step is a no-op on the pointer
	store.SetCurrentStepIndex(models.TotalSteps)
	res, err := nav.Next(ctx, models.ReviewAcknowledgements{})
	require.NoError(t, err)
	assert.False(t, res.Advanced)
	assert.Equal(t, models.TotalSteps, store.CurrentStepIndex())
}

func TestNavigatorBackDoesNotMutateCommittedData(t *testing.T) {
	nav, store := createTestNavigator(t)
	ctx := context.Background()

	_, err := nav.Next(ctx, validSelection(models.ProgramSNAP))
	require.NoError(t, err)
	_, err = nav.Next(ctx, validApplicant())
	require.NoError(t, err)

	nav.Back(ctx)
	assert.Equal(t, 2, store.CurrentStepIndex())

	got, ok := store.GetStep(models.StepApplicantInfo)
	require.True(t, ok)
	assert.Equal(t, validApplicant(), got)
}

func TestNavigatorProgress(t *testing.T) {
	nav, store := createTestNavigator(t)

	p := nav.Progress()
	assert.Equal(t, 1, p.Current)
	assert.Equal(t, models.TotalSteps, p.Total)
	assert.Equal(t, 13, p.Percent, "12.5 rounds up for the header")

	store.SetCurrentStepIndex(4)
	assert.Equal(t, 50, nav.Progress().Percent)

	store.SetCurrentStepIndex(models.TotalSteps)
	assert.Equal(t, 100, nav.Progress().Percent)
}

func TestNavigatorValidationIsDeterministic(t *testing.T) {
	nav, _ := createTestNavigator(t)
	ctx := context.Background()

	draft := models.ProgramSelection{}
	first, err := nav.Next(ctx, draft)
	require.NoError(t, err)
	second, err := nav.Next(ctx, draft)
	require.NoError(t, err)

	assert.Equal(t, first.Violations, second.Violations)
}
