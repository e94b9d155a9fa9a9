// internal/server/server.go

// Package server is the JSON shell around one wizard session: the render
// collaborator fetches the current step and its choice lists, posts drafts
// to advance, and uploads documents for prefill. It exists so the core can
// be driven by any front end; nothing in here validates or stores form data
// itself.
package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"benefits-wizard/internal/common/config"
	"benefits-wizard/internal/common/errors"
	"benefits-wizard/internal/common/logger"
	"benefits-wizard/internal/common/metrics"
	"benefits-wizard/internal/forms/resolve"
	"benefits-wizard/internal/models"
	"benefits-wizard/internal/prefill"
	"benefits-wizard/internal/wizard"
	"benefits-wizard/pkg/registry"
)

// Server serves one session. The wizard core holds a single application;
// concurrent requests are serialized by the store's own locking.
type Server struct {
	cfg     config.ServerConfig
	session *wizard.Session
	scanner *prefill.Service
	catalog *registry.StepCatalog
	log     logger.Logger
	mux     *http.ServeMux
}

// New wires the routes. scanner may be nil when prefill is disabled; catalog
// may be nil to use the built-in step catalog.
func New(cfg config.ServerConfig, session *wizard.Session, scanner *prefill.Service, catalog *registry.StepCatalog, log logger.Logger) *Server {
	if catalog == nil {
		catalog = registry.Default()
	}
	s := &Server{
		cfg:     cfg,
		session: session,
		scanner: scanner,
		catalog: catalog,
		log:     log.WithFields(map[string]interface{}{"component": "server"}),
		mux:     http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/wizard", s.timed("current", s.handleCurrent))
	s.mux.HandleFunc("GET /api/wizard/steps", s.timed("steps", s.handleSteps))
	s.mux.HandleFunc("POST /api/wizard/next", s.timed("next", s.handleNext))
	s.mux.HandleFunc("POST /api/wizard/back", s.timed("back", s.handleBack))
	s.mux.HandleFunc("POST /api/wizard/submit", s.timed("submit", s.handleSubmit))
	s.mux.HandleFunc("POST /api/wizard/reset", s.timed("reset", s.handleReset))
	s.mux.HandleFunc("POST /api/wizard/prefill", s.timed("prefill", s.handlePrefill))
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.Handle("GET "+s.cfg.MetricsPath, promhttp.Handler())
}

// Handler returns the root handler, exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe blocks serving the API until the context is cancelled,
// then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("listening", map[string]interface{}{"address": s.cfg.Address})

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) timed(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h(w, r)
		metrics.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	}
}

// stepView is the render collaborator's contract: everything needed to draw
// the current page.
type stepView struct {
	Step      models.StepID    `json:"step"`
	Title     string           `json:"title"`
	Progress  wizard.Progress  `json:"progress"`
	Policy    wizard.Policy    `json:"policy"`
	Skippable bool             `json:"skippable"`
	Finalized bool             `json:"finalized"`
	Committed interface{}      `json:"committed,omitempty"`
	Seed      interface{}      `json:"seed,omitempty"`
	People    []resolve.Person `json:"people"`
	Children  []resolve.Person `json:"children"`
	Adults    []resolve.Person `json:"adults"`
}

func (s *Server) currentView() stepView {
	id := s.session.CurrentStep()
	household := s.session.Store().Household()
	now := time.Now()
	title := models.StepTitles[id]
	if info, ok := s.catalog.Lookup(id); ok {
		title = info.Title
	}
	view := stepView{
		Step:      id,
		Title:     title,
		Progress:  s.session.Progress(),
		Policy:    s.session.PolicyFor(id),
		Skippable: false,
		Finalized: s.session.Finalized(),
		People:    resolve.People(household),
		Children:  resolve.Children(household, now),
		Adults:    resolve.Adults(household, now),
	}
	if committed, ok := s.session.Store().GetStep(id); ok {
		view.Committed = committed
	} else if id == models.StepHousehold {
		// First visit to the household page starts from the applicant's own
		// entry; the self member cannot be removed later.
		if applicant, ok := s.session.Store().Applicant(); ok {
			view.Seed = models.Household{Members: []models.HouseholdMember{{
				ID:           uuid.NewString(),
				Name:         applicant.Name,
				Relationship: models.RelationshipSelf,
			}}}
		}
	}
	if view.Step != models.StepReview {
		view.Skippable = s.session.SkippableNow()
	}
	return view
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.currentView())
}

func (s *Server) handleSteps(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog)
}

type nextRequest struct {
	// Draft is the step payload; its shape depends on the current step.
	Draft json.RawMessage `json:"draft,omitempty"`
	// Skip advances past a skippable step without data.
	Skip bool `json:"skip,omitempty"`
}

type nextResponse struct {
	wizard.NextResult
	View stepView `json:"view"`
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	var req nextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	var draft interface{}
	if !req.Skip {
		var err error
		draft, err = decodeDraft(s.session.CurrentStep(), req.Draft)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	res, err := s.session.Next(r.Context(), draft)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nextResponse{NextResult: res, View: s.currentView()})
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	if _, err := s.session.Back(r.Context()); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.currentView())
}

type submitResponse struct {
	wizard.FinalizeResult
	View stepView `json:"view"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var review models.ReviewAcknowledgements
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	res, err := s.session.Finalize(r.Context(), review)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeStepValidationFailed) ||
			errors.HasCode(err, errors.ErrCodeReferentialIntegrity) {
			writeJSON(w, http.StatusUnprocessableEntity, submitResponse{FinalizeResult: res, View: s.currentView()})
			return
		}
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{FinalizeResult: res, View: s.currentView()})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.session.Reset()
	writeJSON(w, http.StatusOK, s.currentView())
}

type prefillRequest struct {
	Files []struct {
		Name    string `json:"name"`
		Content string `json:"content"` // base64
	} `json:"files"`
	// Draft is the in-progress form being prefilled: an applicant draft on
	// the contact step, a household-member draft on the household step.
	Draft json.RawMessage `json:"draft,omitempty"`
}

type prefillResponse struct {
	Draft   interface{} `json:"draft"`
	Applied bool        `json:"applied"`
}

func (s *Server) handlePrefill(w http.ResponseWriter, r *http.Request) {
	if s.scanner == nil {
		writeError(w, http.StatusNotFound, "document prefill is disabled")
		return
	}
	step := s.session.CurrentStep()
	if step != models.StepApplicantInfo && step != models.StepHousehold {
		writeError(w, http.StatusConflict, "prefill only applies to the applicant and household steps")
		return
	}

	var req prefillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	rawDraft := req.Draft
	if len(rawDraft) == 0 {
		rawDraft = json.RawMessage("{}")
	}

	files := make([]prefill.File, 0, len(req.Files))
	for _, f := range req.Files {
		content, err := base64.StdEncoding.DecodeString(f.Content)
		if err != nil {
			writeError(w, http.StatusBadRequest, "file content must be base64")
			return
		}
		files = append(files, prefill.File{Name: f.Name, Content: content})
	}

	// Capture the visit token before scanning; if the user navigates away
	// while the scan runs, the merge is dropped.
	epoch := s.session.Epoch(step)
	rec, err := s.scanner.Scan(r.Context(), files)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	switch step {
	case models.StepApplicantInfo:
		var draft models.ApplicantInfo
		if err := json.Unmarshal(rawDraft, &draft); err != nil {
			writeError(w, http.StatusBadRequest, "draft must be an applicant payload")
			return
		}
		merged, err := s.session.ApplyPrefill(step, epoch, rec, draft)
		if err != nil {
			// Stale result: the draft comes back untouched.
			writeJSON(w, http.StatusOK, prefillResponse{Draft: draft, Applied: false})
			return
		}
		writeJSON(w, http.StatusOK, prefillResponse{Draft: merged, Applied: true})
	case models.StepHousehold:
		var draft models.HouseholdMember
		if err := json.Unmarshal(rawDraft, &draft); err != nil {
			writeError(w, http.StatusBadRequest, "draft must be a household member payload")
			return
		}
		merged, err := s.session.ApplyMemberPrefill(step, epoch, rec, draft)
		if err != nil {
			writeJSON(w, http.StatusOK, prefillResponse{Draft: draft, Applied: false})
			return
		}
		writeJSON(w, http.StatusOK, prefillResponse{Draft: merged, Applied: true})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeDraft(id models.StepID, raw json.RawMessage) (interface{}, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	switch id {
	case models.StepProgramSelection:
		var d models.ProgramSelection
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case models.StepApplicantInfo:
		var d models.ApplicantInfo
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case models.StepHousehold:
		var d models.Household
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case models.StepIncome:
		var d models.IncomeInfo
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case models.StepResources:
		var d models.ResourcesInfo
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case models.StepProgramSpecific:
		var d models.ProgramSpecific
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case models.StepRepresentative:
		var d models.AuthorizedRepresentative
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case models.StepReview:
		var d models.ReviewAcknowledgements
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, errors.NewUnknownStepError(string(id))
	}
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.HasCode(err, errors.ErrCodeSessionFinalized):
		status = http.StatusConflict
	case errors.HasCode(err, errors.ErrCodeStepNotSkippable),
		errors.HasCode(err, errors.ErrCodeSessionNotComplete):
		status = http.StatusUnprocessableEntity
	case errors.HasCode(err, errors.ErrCodeUnknownStep),
		errors.HasCode(err, errors.ErrCodePrefillPayloadInvalid):
		status = http.StatusBadRequest
	}
	fields := map[string]interface{}{"retryable": errors.IsRetryable(err)}
	if se, ok := err.(*errors.StandardError); ok {
		fields["category"] = errors.GetErrorCategory(se.Code)
	}
	s.log.WithError(err).Warn("request failed", fields)
	writeError(w, status, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
