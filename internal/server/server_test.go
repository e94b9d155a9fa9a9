// internal/server/server_test.go
package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benefits-wizard/internal/common/config"
	"benefits-wizard/internal/common/logger"
	"benefits-wizard/internal/common/observability"
	"benefits-wizard/internal/models"
	"benefits-wizard/internal/prefill"
	"benefits-wizard/internal/wizard"
	"benefits-wizard/pkg/registry"
)

// testObs is shared across tests: each observability.New registers an
// exporter on the global default Prometheus registry, and a second
// registration makes /metrics fail with duplicate target_info.
var testObs = observability.New("server-test")

func createTestServer(t *testing.T) (*Server, *wizard.Session) {
	t.Helper()
	wcfg := config.WizardConfig{
		DefaultPolicy: "strict",
		StepPolicies:  map[string]string{string(models.StepProgramSpecific): "lenient"},
	}
	log := logger.NewTestLogger(t)
	obs := testObs
	session := wizard.NewSession(wcfg, log, obs, nil)
	scanner := prefill.NewService(config.PrefillConfig{Enabled: true, LatencyMS: 0, TimeoutMS: 1000, CacheTTLMins: 1}, nil, log, obs)
	return New(config.ServerConfig{Address: ":0", MetricsPath: "/metrics"}, session, scanner, nil, log), session
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v))
}

func nextBody(draft interface{}) map[string]interface{} {
	return map[string]interface{}{"draft": draft}
}

func TestServerCurrentView(t *testing.T) {
	srv, _ := createTestServer(t)

	rr := doJSON(t, srv.Handler(), http.MethodGet, "/api/wizard", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var view stepView
	decodeBody(t, rr, &view)
	assert.Equal(t, models.StepProgramSelection, view.Step)
	assert.Equal(t, "Program Selection & Orientation", view.Title)
	assert.Equal(t, 1, view.Progress.Current)
	assert.Equal(t, 8, view.Progress.Total)
	assert.Equal(t, wizard.PolicyStrict, view.Policy)
	assert.Empty(t, view.People)
}

func TestServerStepCatalog(t *testing.T) {
	srv, _ := createTestServer(t)

	rr := doJSON(t, srv.Handler(), http.MethodGet, "/api/wizard/steps", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var cat registry.StepCatalog
	decodeBody(t, rr, &cat)
	require.Len(t, cat.Steps, models.TotalSteps)
	assert.Equal(t, string(models.StepProgramSelection), cat.Steps[0].ID)
	assert.NoError(t, cat.Validate())
}

func TestServerNextBlocksInvalidDraft(t *testing.T) {
	srv, _ := createTestServer(t)

	rr := doJSON(t, srv.Handler(), http.MethodPost, "/api/wizard/next", nextBody(models.ProgramSelection{}))
	require.Equal(t, http.StatusOK, rr.Code)

	var res nextResponse
	decodeBody(t, rr, &res)
	assert.False(t, res.Advanced)
	require.NotEmpty(t, res.Violations)
	assert.Equal(t, "programs", res.Violations[0].Field)
	assert.Equal(t, models.StepProgramSelection, res.View.Step)
}

func TestServerWizardFlowEndToEnd(t *testing.T) {
	srv, _ := createTestServer(t)
	h := srv.Handler()

	advance := func(draft interface{}) nextResponse {
		rr := doJSON(t, h, http.MethodPost, "/api/wizard/next", nextBody(draft))
		require.Equal(t, http.StatusOK, rr.Code)
		var res nextResponse
		decodeBody(t, rr, &res)
		require.True(t, res.Advanced, "expected to advance, violations: %v", res.Violations)
		return res
	}

	advance(models.ProgramSelection{Programs: []models.Program{models.ProgramTANF}})
	advance(models.ApplicantInfo{
		Name:                     models.Name{First: "Maria", Last: "Lopez"},
		StreetAddress:            "123 Main St",
		City:                     "Richmond",
		County:                   "Henrico",
		Zip:                      "23220",
		MailingAddressSame:       true,
		PrimaryPhone:             "804-555-0101",
		PrimaryLanguage:          "English",
		CorrespondencePreference: models.CorrespondMail,
	})
	res := advance(models.Household{Members: []models.HouseholdMember{{
		ID:            "m1",
		Name:          models.Name{First: "Maria", Last: "Lopez"},
		Relationship:  models.RelationshipSelf,
		DateOfBirth:   "1990-04-12",
		Gender:        "Female",
		Citizenship:   true,
		MaritalStatus: "Single",
	}}})

	// Derived people list now populated for the income step.
	require.Len(t, res.View.People, 1)
	assert.Equal(t, "Maria Lopez (you)", res.View.People[0].DisplayName)

	advance(models.IncomeInfo{})

	// TANF-only: resources is a pass-through.
	rr := doJSON(t, h, http.MethodGet, "/api/wizard", nil)
	var view stepView
	decodeBody(t, rr, &view)
	require.Equal(t, models.StepResources, view.Step)
	assert.True(t, view.Skippable)

	rrSkip := doJSON(t, h, http.MethodPost, "/api/wizard/next", map[string]interface{}{"skip": true})
	require.Equal(t, http.StatusOK, rrSkip.Code)
	var skipRes nextResponse
	decodeBody(t, rrSkip, &skipRes)
	assert.True(t, skipRes.Advanced)
	assert.False(t, skipRes.Committed)

	advance(models.ProgramSpecific{TANF: &models.TANFInfo{}})
	advance(models.AuthorizedRepresentative{})

	// Submit.
	review := models.ReviewAcknowledgements{
		Truthfulness:         true,
		ChangeReporting:      true,
		Penalties:            true,
		ConsentToDataSharing: true,
		CompletedBySelf:      true,
		Signature:            "Maria Lopez",
		Date:                 "2026-08-30",
	}
	rrSubmit := doJSON(t, h, http.MethodPost, "/api/wizard/submit", review)
	require.Equal(t, http.StatusOK, rrSubmit.Code)
	var submit submitResponse
	decodeBody(t, rrSubmit, &submit)
	assert.NotEmpty(t, submit.ConfirmationID)
	assert.True(t, submit.View.Finalized)

	// Submission keeps the data on screen; navigation is locked.
	rrNext := doJSON(t, h, http.MethodPost, "/api/wizard/next", nextBody(review))
	assert.Equal(t, http.StatusConflict, rrNext.Code)

	// Reset starts over.
	rrReset := doJSON(t, h, http.MethodPost, "/api/wizard/reset", nil)
	require.Equal(t, http.StatusOK, rrReset.Code)
	var fresh stepView
	decodeBody(t, rrReset, &fresh)
	assert.Equal(t, models.StepProgramSelection, fresh.Step)
	assert.False(t, fresh.Finalized)
}

func TestServerHouseholdSeededFromApplicant(t *testing.T) {
	srv, session := createTestServer(t)
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	_, err := session.Next(ctx, models.ProgramSelection{Programs: []models.Program{models.ProgramSNAP}})
	require.NoError(t, err)
	_, err = session.Next(ctx, models.ApplicantInfo{
		Name:                     models.Name{First: "Maria", Last: "Lopez"},
		StreetAddress:            "123 Main St",
		City:                     "Richmond",
		County:                   "Henrico",
		Zip:                      "23220",
		MailingAddressSame:       true,
		PrimaryPhone:             "804-555-0101",
		PrimaryLanguage:          "English",
		CorrespondencePreference: models.CorrespondMail,
	})
	require.NoError(t, err)

	rr := doJSON(t, srv.Handler(), http.MethodGet, "/api/wizard", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var view struct {
		Step models.StepID    `json:"step"`
		Seed models.Household `json:"seed"`
	}
	decodeBody(t, rr, &view)
	require.Equal(t, models.StepHousehold, view.Step)
	require.Len(t, view.Seed.Members, 1)
	assert.Equal(t, models.RelationshipSelf, view.Seed.Members[0].Relationship)
	assert.Equal(t, "Maria", view.Seed.Members[0].Name.First)
	assert.NotEmpty(t, view.Seed.Members[0].ID)
}

func TestServerSubmitWithUnacknowledgedReview(t *testing.T) {
	srv, session := createTestServer(t)
	driveSessionToReview(t, session)

	rr := doJSON(t, srv.Handler(), http.MethodPost, "/api/wizard/submit", models.ReviewAcknowledgements{})
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var res submitResponse
	decodeBody(t, rr, &res)
	assert.Empty(t, res.ConfirmationID)
	assert.NotEmpty(t, res.Violations)
}

func TestServerPrefill(t *testing.T) {
	srv, session := createTestServer(t)
	h := srv.Handler()

	// Prefill is rejected on steps that have nothing to prefill.
	rr := doJSON(t, h, http.MethodPost, "/api/wizard/prefill", map[string]interface{}{})
	assert.Equal(t, http.StatusConflict, rr.Code)

	_, err := session.Next(httptest.NewRequest(http.MethodGet, "/", nil).Context(),
		models.ProgramSelection{Programs: []models.Program{models.ProgramSNAP}})
	require.NoError(t, err)

	body := map[string]interface{}{
		"files": []map[string]string{{
			"name":    "drivers-license.jpg",
			"content": base64.StdEncoding.EncodeToString([]byte("license-bytes")),
		}},
		"draft": models.ApplicantInfo{City: "Norfolk", PrimaryPhone: "804-555-0101"},
	}
	rr = doJSON(t, h, http.MethodPost, "/api/wizard/prefill", body)
	require.Equal(t, http.StatusOK, rr.Code)

	var res struct {
		Draft   models.ApplicantInfo `json:"draft"`
		Applied bool                 `json:"applied"`
	}
	decodeBody(t, rr, &res)
	assert.True(t, res.Applied)
	assert.NotEmpty(t, res.Draft.Name.First, "scanned name merged in")
	assert.Equal(t, "804-555-0101", res.Draft.PrimaryPhone, "manual field untouched")
}

func TestServerHouseholdMemberPrefill(t *testing.T) {
	srv, session := createTestServer(t)
	h := srv.Handler()
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	_, err := session.Next(ctx, models.ProgramSelection{Programs: []models.Program{models.ProgramSNAP}})
	require.NoError(t, err)
	_, err = session.Next(ctx, models.ApplicantInfo{
		Name:                     models.Name{First: "Maria", Last: "Lopez"},
		StreetAddress:            "123 Main St",
		City:                     "Richmond",
		County:                   "Henrico",
		Zip:                      "23220",
		MailingAddressSame:       true,
		PrimaryPhone:             "804-555-0101",
		PrimaryLanguage:          "English",
		CorrespondencePreference: models.CorrespondMail,
	})
	require.NoError(t, err)

	body := map[string]interface{}{
		"files": []map[string]string{{
			"name":    "ssn-card.png",
			"content": base64.StdEncoding.EncodeToString([]byte("card-bytes")),
		}},
		"draft": models.HouseholdMember{
			Name:         models.Name{First: "Jorge", Last: "Lopez"},
			Relationship: "Child",
		},
	}
	rr := doJSON(t, h, http.MethodPost, "/api/wizard/prefill", body)
	require.Equal(t, http.StatusOK, rr.Code)

	var res struct {
		Draft   models.HouseholdMember `json:"draft"`
		Applied bool                   `json:"applied"`
	}
	decodeBody(t, rr, &res)
	assert.True(t, res.Applied)
	assert.Regexp(t, `^\d{3}-\d{2}-\d{4}$`, res.Draft.SSN, "scanned SSN merged in")
	assert.Equal(t, "Jorge", res.Draft.Name.First, "manual field untouched")
}

func TestServerHealthAndMetrics(t *testing.T) {
	srv, _ := createTestServer(t)
	h := srv.Handler()

	rr := doJSON(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func driveSessionToReview(t *testing.T, session *wizard.Session) {
	t.Helper()
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	drafts := []interface{}{
		models.ProgramSelection{Programs: []models.Program{models.ProgramSNAP}},
		models.ApplicantInfo{
			Name:                     models.Name{First: "Maria", Last: "Lopez"},
			StreetAddress:            "123 Main St",
			City:                     "Richmond",
			County:                   "Henrico",
			Zip:                      "23220",
			MailingAddressSame:       true,
			PrimaryPhone:             "804-555-0101",
			PrimaryLanguage:          "English",
			CorrespondencePreference: models.CorrespondMail,
		},
		models.Household{Members: []models.HouseholdMember{{
			ID:            "m1",
			Name:          models.Name{First: "Maria", Last: "Lopez"},
			Relationship:  models.RelationshipSelf,
			DateOfBirth:   "1990-04-12",
			Gender:        "Female",
			Citizenship:   true,
			MaritalStatus: "Single",
		}}},
		models.IncomeInfo{},
		models.ResourcesInfo{},
		models.ProgramSpecific{SNAP: &models.SNAPInfo{HeadOfHousehold: "m1", HeatingMethod: "electric"}},
		models.AuthorizedRepresentative{},
	}
	for i, d := range drafts {
		res, err := session.Next(ctx, d)
		require.NoError(t, err)
		require.True(t, res.Advanced, fmt.Sprintf("step %d violations: %v", i+1, res.Violations))
	}
}
