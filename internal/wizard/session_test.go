// internal/wizard/session_test.go
package wizard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"benefits-wizard/internal/common/errors"
	"benefits-wizard/internal/common/logger"
	"benefits-wizard/internal/common/observability"
	"benefits-wizard/internal/models"
	"benefits-wizard/internal/prefill"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) ApplicationSubmitted(ctx context.Context, app models.ApplicationState, confirmationID string) error {
	args := m.Called(ctx, app, confirmationID)
	return args.Error(0)
}

func createTestSession(t *testing.T, notifier Notifier) *Session {
	t.Helper()
	return NewSession(testWizardConfig(), logger.NewTestLogger(t), observability.New("wizard-test"), notifier)
}

func validIncome() models.IncomeInfo {
	return models.IncomeInfo{HasIncome: true, Sources: []models.IncomeSource{{
		ID:           "s1",
		PersonID:     "m1",
		SourceType:   models.IncomeWork,
		EmployerName: "Acme Cleaning",
		Amount:       1200,
		Frequency:    models.FrequencyMonthly,
	}}}
}

func validReview() models.ReviewAcknowledgements {
	return models.ReviewAcknowledgements{
		Truthfulness:         true,
		ChangeReporting:      true,
		Penalties:            true,
		ConsentToDataSharing: true,
		CompletedBySelf:      true,
		Signature:            "Maria Lopez",
		Date:                 "2026-08-30",
	}
}

// driveToReview advances a fresh session through steps 1-7 with valid data
// for a SNAP+TANF application.
func driveToReview(t *testing.T, s *Session) {
	t.Helper()
	ctx := context.Background()

	advance := func(draft interface{}) {
		res, err := s.Next(ctx, draft)
		require.NoError(t, err)
		require.True(t, res.Advanced, "expected advance past %s, violations: %s", res.Step, res.Violations)
	}

	advance(validSelection(models.ProgramSNAP, models.ProgramTANF))
	advance(validApplicant())
	advance(validHousehold())
	advance(validIncome())
	advance(models.ResourcesInfo{})
	advance(models.ProgramSpecific{
		SNAP: &models.SNAPInfo{HeadOfHousehold: "m1", HeatingMethod: "electric"},
		TANF: &models.TANFInfo{},
	})
	advance(models.AuthorizedRepresentative{})
	require.Equal(t, models.StepReview, s.CurrentStep())
}

func TestSessionFinalizeHappyPath(t *testing.T) {
	notifier := &mockNotifier{}
	notifier.On("ApplicationSubmitted", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s := createTestSession(t, notifier)
	driveToReview(t, s)

	res, err := s.Finalize(context.Background(), validReview())
	require.NoError(t, err)

	assert.NotEmpty(t, res.ConfirmationID)
	assert.True(t, s.Finalized())
	assert.Equal(t, res.ConfirmationID, s.ConfirmationID())
	notifier.AssertCalled(t, "ApplicationSubmitted", mock.Anything, mock.Anything, res.ConfirmationID)

	// Submission does not reset the application.
	_, ok := s.Store().GetStep(models.StepApplicantInfo)
	assert.True(t, ok)
}

func TestSessionFinalizeBlocksUnacknowledgedReview(t *testing.T) {
	s := createTestSession(t, nil)
	driveToReview(t, s)

	review := validReview()
	review.Truthfulness = false
	review.Signature = ""

	res, err := s.Finalize(context.Background(), review)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeStepValidationFailed))
	assert.True(t, res.Violations.Has("truthfulness"))
	assert.True(t, res.Violations.Has("signature"))
	assert.False(t, s.Finalized())
}

func TestSessionFinalizeDetectsDanglingReferences(t *testing.T) {
	s := createTestSession(t, nil)
	driveToReview(t, s)

	// Go back and remove the member the income source points at. The
	// household step revalidates cleanly on its own, so only finalization
	// can catch the orphaned reference.
	ctx := context.Background()
	s.Store().SetCurrentStepIndex(3)
	h := models.Household{Members: []models.HouseholdMember{{
		ID:            "m9",
		Name:          models.Name{First: "Maria", Last: "Lopez"},
		Relationship:  models.RelationshipSelf,
		DateOfBirth:   "1990-04-12",
		Gender:        "Female",
		Citizenship:   true,
		MaritalStatus: "Single",
	}}}
	res, err := s.Next(ctx, h)
	require.NoError(t, err)
	require.True(t, res.Advanced)
	s.Store().SetCurrentStepIndex(8)

	final, err := s.Finalize(ctx, validReview())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeReferentialIntegrity))
	assert.True(t, final.Violations.Has("income.sources[0].personId"))
	assert.True(t, final.Violations.Has("programSpecific.snap.headOfHousehold"))
	assert.False(t, s.Finalized())
}

func TestSessionFinalizeRequiresReachingTheEnd(t *testing.T) {
	s := createTestSession(t, nil)

	_, err := s.Finalize(context.Background(), validReview())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeSessionNotComplete))
}

func TestSessionFinalizeTwiceFails(t *testing.T) {
	s := createTestSession(t, nil)
	driveToReview(t, s)

	_, err := s.Finalize(context.Background(), validReview())
	require.NoError(t, err)

	_, err = s.Finalize(context.Background(), validReview())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeSessionFinalized))
}

func TestSessionFinalizeSurvivesNotifierFailure(t *testing.T) {
	notifier := &mockNotifier{}
	notifier.On("ApplicationSubmitted", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.NewNotificationSendFailedError("email", assert.AnError))
	s := createTestSession(t, notifier)
	driveToReview(t, s)

	res, err := s.Finalize(context.Background(), validReview())
	require.NoError(t, err, "acknowledgement failure never blocks finalization")
	assert.NotEmpty(t, res.ConfirmationID)
	assert.True(t, s.Finalized())
}

func TestSessionNavigationAfterFinalizeBlocked(t *testing.T) {
	s := createTestSession(t, nil)
	driveToReview(t, s)
	_, err := s.Finalize(context.Background(), validReview())
	require.NoError(t, err)

	_, err = s.Next(context.Background(), validReview())
	assert.True(t, errors.HasCode(err, errors.ErrCodeSessionFinalized))
	_, err = s.Back(context.Background())
	assert.True(t, errors.HasCode(err, errors.ErrCodeSessionFinalized))
}

func TestSessionResetClearsEverything(t *testing.T) {
	s := createTestSession(t, nil)
	driveToReview(t, s)
	_, err := s.Finalize(context.Background(), validReview())
	require.NoError(t, err)

	s.Reset()

	assert.False(t, s.Finalized())
	assert.Empty(t, s.ConfirmationID())
	assert.Equal(t, models.StepProgramSelection, s.CurrentStep())
	_, ok := s.Store().GetStep(models.StepApplicantInfo)
	assert.False(t, ok)
	assert.Equal(t, uint64(1), s.Epoch(models.StepProgramSelection))
}

func TestSessionEpochsAdvancePerVisit(t *testing.T) {
	s := createTestSession(t, nil)
	ctx := context.Background()

	require.Equal(t, uint64(1), s.Epoch(models.StepProgramSelection))
	require.Equal(t, uint64(0), s.Epoch(models.StepApplicantInfo))

	_, err := s.Next(ctx, validSelection(models.ProgramSNAP))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), s.Epoch(models.StepApplicantInfo))

	// Leave and come back: new visit, new epoch.
	_, err = s.Back(ctx)
	require.NoError(t, err)
	_, err = s.Next(ctx, validSelection(models.ProgramSNAP))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), s.Epoch(models.StepApplicantInfo))
}

func TestSessionApplyPrefill(t *testing.T) {
	s := createTestSession(t, nil)
	ctx := context.Background()

	_, err := s.Next(ctx, validSelection(models.ProgramSNAP))
	require.NoError(t, err)
	require.Equal(t, models.StepApplicantInfo, s.CurrentStep())

	draft := validApplicant()
	first := "Jordan"
	rec := prefill.Record{FirstName: &first}

	// Fresh epoch: merge applies.
	epoch := s.Epoch(models.StepApplicantInfo)
	got, err := s.ApplyPrefill(models.StepApplicantInfo, epoch, rec, draft)
	require.NoError(t, err)
	assert.Equal(t, "Jordan", got.Name.First)

	// Result from a previous visit: dropped, draft unchanged.
	_, err = s.Back(ctx)
	require.NoError(t, err)
	_, err = s.Next(ctx, validSelection(models.ProgramSNAP))
	require.NoError(t, err)

	got, err = s.ApplyPrefill(models.StepApplicantInfo, epoch, rec, draft)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodePrefillStale))
	assert.Equal(t, draft, got)

	// Result for a step the user is no longer viewing: dropped.
	_, err = s.Next(ctx, validApplicant())
	require.NoError(t, err)
	_, err = s.ApplyPrefill(models.StepApplicantInfo, s.Epoch(models.StepApplicantInfo), rec, draft)
	assert.True(t, errors.HasCode(err, errors.ErrCodePrefillStale))
}

func TestSessionApplyMemberPrefill(t *testing.T) {
	s := createTestSession(t, nil)
	ctx := context.Background()

	_, err := s.Next(ctx, validSelection(models.ProgramSNAP))
	require.NoError(t, err)
	_, err = s.Next(ctx, validApplicant())
	require.NoError(t, err)
	require.Equal(t, models.StepHousehold, s.CurrentStep())

	ssn := "123-45-6789"
	rec := prefill.Record{SSN: &ssn}
	draft := models.HouseholdMember{Name: models.Name{First: "Jorge"}, Relationship: "Child"}

	// Fresh epoch: the scanned SSN lands, manual fields stay.
	epoch := s.Epoch(models.StepHousehold)
	got, err := s.ApplyMemberPrefill(models.StepHousehold, epoch, rec, draft)
	require.NoError(t, err)
	assert.Equal(t, "123-45-6789", got.SSN)
	assert.Equal(t, "Jorge", got.Name.First)

	// Revisiting bumps the epoch; the old result is dropped.
	_, err = s.Back(ctx)
	require.NoError(t, err)
	_, err = s.Next(ctx, validApplicant())
	require.NoError(t, err)

	got, err = s.ApplyMemberPrefill(models.StepHousehold, epoch, rec, draft)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodePrefillStale))
	assert.Equal(t, draft, got)
}
