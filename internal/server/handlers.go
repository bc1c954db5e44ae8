package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finnav/finnav/internal/calculation"
	"github.com/finnav/finnav/internal/config"
	"github.com/finnav/finnav/internal/domain"
	"github.com/finnav/finnav/internal/output"
	"github.com/finnav/finnav/internal/session"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "finnav",
	})
}

// handleCreateSession starts a new assessment session.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	p := s.sessions.Create()

	s.log.Info().Str("session_id", p.Meta.SessionID).Msg("Session created")
	s.writeJSON(w, http.StatusCreated, p)
}

// handleGetSession returns the current profile of a session.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	p, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}

	s.writeJSON(w, http.StatusOK, p)
}

// IntakeRequest carries a partial intake update. Sections left out of the
// request body stay untouched; Finish triggers scoring and marks the basic
// assessment complete.
type IntakeRequest struct {
	Basic      *domain.Basic      `json:"basic"`
	Cashflow   *domain.Cashflow   `json:"cashflow"`
	Assets     *domain.Assets     `json:"assets"`
	Debts      *domain.Debts      `json:"debts"`
	Protection *domain.Protection `json:"protection"`
	Finish     bool               `json:"finish"`
}

// handleUpdateIntake applies intake answers to a session and optionally
// finishes the basic assessment.
func (s *Server) handleUpdateIntake(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	var req IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	parser := config.NewInputParser()
	p, err := s.sessions.Update(id, func(p domain.Profile) (domain.Profile, error) {
		if req.Basic != nil {
			p.Basic = *req.Basic
		}
		if req.Cashflow != nil {
			p.Cashflow = *req.Cashflow
		}
		if req.Assets != nil {
			p.Assets = *req.Assets
		}
		if req.Debts != nil {
			p.Debts = *req.Debts
		}
		if req.Protection != nil {
			p.Protection = *req.Protection
		}
		return p, parser.ValidateProfile(&p)
	})
	if errors.Is(err, session.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if req.Finish {
		p, err = s.sessions.Finish(id)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.log.Info().
			Str("session_id", id).
			Int("score_overall", p.Scores.Overall).
			Msg("Basic assessment finished")
	}

	s.writeJSON(w, http.StatusOK, p)
}

// handleRunModule runs one deep-dive calculator and folds its result back
// into the session scores.
func (s *Server) handleRunModule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	moduleID, err := domain.ParseModuleID(chi.URLParam(r, "module"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	current, err := s.sessions.Get(id)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if !current.Meta.IsFinished {
		s.writeError(w, http.StatusConflict, "basic assessment must be finished before running a module")
		return
	}

	parser := config.NewInputParser()
	var updateFn func(domain.Profile) (domain.Profile, error)

	switch moduleID {
	case domain.ModulePension:
		var in calculation.PensionInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		prefillPension(&in, current)
		in.ApplyDefaults()
		if err := parser.ValidatePensionInput(&in); err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		updateFn = func(p domain.Profile) (domain.Profile, error) {
			return calculation.ApplyPension(p, calculation.CalculatePension(in)), nil
		}

	case domain.ModuleFinancing:
		var in calculation.FinancingInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		prefillFinancing(&in, current)
		in.ApplyDefaults()
		if err := parser.ValidateFinancingInput(&in); err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		updateFn = func(p domain.Profile) (domain.Profile, error) {
			return calculation.ApplyFinancing(p, calculation.CalculateFinancing(in)), nil
		}

	case domain.ModuleRisk:
		var in calculation.RiskInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		prefillRisk(&in, current)
		in.ApplyDefaults()
		if err := parser.ValidateRiskInput(&in); err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		updateFn = func(p domain.Profile) (domain.Profile, error) {
			return calculation.ApplyRisk(p, calculation.CalculateRisk(in)), nil
		}
	}

	p, err := s.sessions.Update(id, updateFn)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.log.Info().
		Str("session_id", id).
		Str("module", string(moduleID)).
		Int("score_overall", p.Scores.Overall).
		Msg("Module completed")

	s.writeJSON(w, http.StatusOK, p)
}

// LeadRequest carries the contact data captured at report unlock.
type LeadRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Consent bool   `json:"consent"`
}

// handleCaptureLead stores the lead and unlocks the report.
func (s *Server) handleCaptureLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	var req LeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" || req.Email == "" {
		s.writeError(w, http.StatusUnprocessableEntity, "name and email are required")
		return
	}

	p, err := s.sessions.Update(id, func(p domain.Profile) (domain.Profile, error) {
		p.Lead = domain.Lead{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Consent: req.Consent,
		}
		return p, nil
	})
	if errors.Is(err, session.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.leads != nil {
		if err := s.leads.Upsert(r.Context(), p); err != nil {
			s.log.Error().Err(err).Str("session_id", id).Msg("Failed to persist lead")
			s.writeError(w, http.StatusInternalServerError, "failed to store lead")
			return
		}
	}

	s.writeJSON(w, http.StatusOK, p)
}

// handleGetReport returns the assembled report. The report is gated on lead
// capture.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	p, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if !p.Lead.Captured() {
		s.writeError(w, http.StatusForbidden, "report is locked until contact details are provided")
		return
	}

	s.writeJSON(w, http.StatusOK, output.BuildReport(p))
}

// prefillPension fills request fields the client left empty from the intake
// answers, so a deep dive can start from what is already known.
func prefillPension(in *calculation.PensionInput, p domain.Profile) {
	if in.Age == 0 && p.Basic.Age != nil {
		in.Age = *p.Basic.Age
	}
	if in.NetIncomeMonthly.IsZero() && p.Cashflow.NetIncomeMonthly != nil {
		in.NetIncomeMonthly = *p.Cashflow.NetIncomeMonthly
	}
}

func prefillFinancing(in *calculation.FinancingInput, p domain.Profile) {
	if in.NetIncomeMonthly.IsZero() && p.Cashflow.NetIncomeMonthly != nil {
		in.NetIncomeMonthly = *p.Cashflow.NetIncomeMonthly
	}
	if in.ExistingDebtMonthly.IsZero() {
		in.ExistingDebtMonthly = p.ConsumerDebtMonthly()
	}
}

func prefillRisk(in *calculation.RiskInput, p domain.Profile) {
	if in.NetIncomeMonthly.IsZero() && p.Cashflow.NetIncomeMonthly != nil {
		in.NetIncomeMonthly = *p.Cashflow.NetIncomeMonthly
	}
	if in.FixedCostsMonthly.IsZero() && p.Cashflow.FixedCostsMonthly != nil {
		in.FixedCostsMonthly = *p.Cashflow.FixedCostsMonthly
	}
	if in.DebtPaymentsMonthly.IsZero() {
		in.DebtPaymentsMonthly = p.ConsumerDebtMonthly()
	}
	if in.Savings.IsZero() && p.Assets.Savings != nil {
		in.Savings = *p.Assets.Savings
	}
	if in.IncomeProtection == "" {
		in.IncomeProtection = p.Protection.IncomeProtection
	}
}
