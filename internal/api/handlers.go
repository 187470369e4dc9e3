package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/leakwatch/leakage-engine/internal/alerts"
	"github.com/leakwatch/leakage-engine/internal/business"
	"github.com/leakwatch/leakage-engine/internal/models"
	"github.com/leakwatch/leakage-engine/internal/services"
	"github.com/leakwatch/leakage-engine/internal/utils"
)

// AnalyzeRequest is the JSON payload for a dataset analysis. Rows carry raw
// cells aligned with Columns; null, empty-string, and NaN cells are missing.
type AnalyzeRequest struct {
	Columns []string           `json:"columns"`
	Rows    [][]any            `json:"rows"`
	Rules   []models.AlertRule `json:"rules,omitempty"`
}

// AnalyzeResponse is the JSON result of a dataset analysis.
type AnalyzeResponse struct {
	Report          models.LeakageReport    `json:"report"`
	Summary         models.FinancialSummary `json:"summary"`
	TriggeredAlerts []models.TriggeredAlert `json:"triggered_alerts"`
}

// EvaluateAlertsRequest re-evaluates a rule set against a previously computed
// analysis, so callers can test rules without re-uploading data.
type EvaluateAlertsRequest struct {
	Rules   []models.AlertRule      `json:"rules"`
	Report  models.LeakageReport    `json:"report"`
	Summary models.FinancialSummary `json:"summary"`
}

// EvaluateAlertsResponse lists the alerts the rule set triggered.
type EvaluateAlertsResponse struct {
	TriggeredAlerts []models.TriggeredAlert `json:"triggered_alerts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handlers owns the HTTP route implementations.
type Handlers struct {
	logger       *slog.Logger
	service      *services.AnalysisService
	maxBodyBytes int64
}

// NewHandlers constructs the route set around the analysis service.
func NewHandlers(logger *slog.Logger, service *services.AnalysisService, maxBodyBytes int64) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{logger: logger, service: service, maxBodyBytes: maxBodyBytes}
}

// Routes mounts every endpoint on a fresh mux.
func (h *Handlers) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/analyze", h.handleAnalyze)
	mux.HandleFunc("POST /api/v1/alerts/evaluate", h.handleEvaluateAlerts)
	mux.HandleFunc("POST /api/v1/business/new", h.handleNewBusiness)
	mux.HandleFunc("POST /api/v1/business/existing", h.handleExistingBusiness)
	mux.HandleFunc("GET /api/v1/alerts/metrics", h.handleListMetrics)
	mux.HandleFunc("GET /healthz", h.handleHealth)
	return mux
}

func (h *Handlers) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.AnalyzeRecords(r.Context(), req.Columns, req.Rows)
	if err != nil {
		h.writeError(w, "analyze", err)
		return
	}

	triggered := result.TriggeredAlerts
	if len(req.Rules) > 0 {
		triggered = append(triggered, h.service.EvaluateAlerts(req.Rules, result.Report, result.Summary)...)
	}
	if triggered == nil {
		triggered = []models.TriggeredAlert{}
	}

	h.writeJSON(w, http.StatusOK, AnalyzeResponse{
		Report:          result.Report,
		Summary:         result.Summary,
		TriggeredAlerts: triggered,
	})
}

func (h *Handlers) handleEvaluateAlerts(w http.ResponseWriter, r *http.Request) {
	var req EvaluateAlertsRequest
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.Rules) == 0 {
		h.writeError(w, "evaluate alerts", utils.NewInvalidError("api.handleEvaluateAlerts", "no rules supplied", nil))
		return
	}

	triggered := h.service.EvaluateAlerts(req.Rules, req.Report, req.Summary)
	if triggered == nil {
		triggered = []models.TriggeredAlert{}
	}
	h.writeJSON(w, http.StatusOK, EvaluateAlertsResponse{TriggeredAlerts: triggered})
}

func (h *Handlers) handleNewBusiness(w http.ResponseWriter, r *http.Request) {
	var form business.NewBusinessForm
	if !h.decode(w, r, &form) {
		return
	}
	if form.ExpectedMonthlyRevenue <= 0 {
		h.writeError(w, "new business", utils.NewInvalidError("api.handleNewBusiness", "expected_monthly_revenue must be positive", nil))
		return
	}
	h.writeJSON(w, http.StatusOK, business.AnalyzeNewBusiness(form))
}

func (h *Handlers) handleExistingBusiness(w http.ResponseWriter, r *http.Request) {
	var form business.ExistingBusinessForm
	if !h.decode(w, r, &form) {
		return
	}
	if form.MonthlyRevenue <= 0 {
		h.writeError(w, "existing business", utils.NewInvalidError("api.handleExistingBusiness", "monthly_revenue must be positive", nil))
		return
	}
	h.writeJSON(w, http.StatusOK, business.AnalyzeExistingBusiness(form))
}

func (h *Handlers) handleListMetrics(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"metrics": alerts.AvailableMetrics()})
}

func (h *Handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// decode reads a JSON body into dst, enforcing the body size limit. Returns
// false after writing the error response.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return false
		}
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload: " + err.Error()})
		return false
	}
	return true
}

func (h *Handlers) writeError(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	if utils.ErrorKind(err) == utils.KindInvalid {
		status = http.StatusBadRequest
	} else {
		h.logger.Error(op+" failed", slog.Any("error", err))
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("encode response failed", slog.Any("error", err))
	}
}
