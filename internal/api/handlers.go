package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sprite-ai/consentlens/internal/analysis"
	"github.com/sprite-ai/consentlens/internal/model"
)

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Analyze ---

// consentInput mirrors model.AnalysisRequest but keeps permissions nullable
// so a missing field can be told apart from an empty list.
type consentInput struct {
	AppName     *string  `json:"app_name"`
	Permissions []string `json:"permissions"`
	PolicyText  *string  `json:"policy_text"`
}

func (in consentInput) validate() error {
	var missing []string
	if in.AppName == nil {
		missing = append(missing, "app_name")
	}
	if in.Permissions == nil {
		missing = append(missing, "permissions")
	}
	if in.PolicyText == nil {
		missing = append(missing, "policy_text")
	}
	if len(missing) > 0 {
		return errors.New("missing fields: " + strings.Join(missing, ", "))
	}
	return nil
}

func (s *Server) handleAnalyzeConsent(w http.ResponseWriter, r *http.Request) {
	var in consentInput
	if err := readJSON(r, &in); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if err := in.validate(); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	req := model.NewAnalysisRequest(*in.AppName, in.Permissions, *in.PolicyText)
	result, err := s.analyzer.Analyze(r.Context(), req)
	if errors.Is(err, analysis.ErrEmptyPolicy) {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("analysis failed", "error", err, "request_id", requestIDFrom(r.Context()))
		s.writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}
