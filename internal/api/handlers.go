package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"fembalance/internal/domain/history"
	"fembalance/internal/domain/pcos"
	"fembalance/internal/services/inference"
	"fembalance/pkg/errors"
	"fembalance/pkg/logger"
)

// Handler serves the prediction endpoints
type Handler struct {
	service *inference.Service
	log     *logger.Logger
}

// NewHandler creates the prediction handler
func NewHandler(service *inference.Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// HandlePredictCycle predicts the next menstrual cycle
// POST /predict/next-cycle
func (h *Handler) HandlePredictCycle(w http.ResponseWriter, r *http.Request) {
	var req predictCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON", "request body must be valid JSON", nil)
		return
	}

	records, err := req.toDomain()
	if err != nil {
		h.respondFailure(w, err, "cycle prediction")
		return
	}

	result, err := h.service.PredictCycle(r.Context(), records)
	if err != nil {
		h.respondFailure(w, err, "cycle prediction")
		return
	}

	respondSuccess(w, http.StatusOK, result)
}

// HandlePredictPCOSRisk predicts PCOS risk from a user profile
// POST /predict/pcos-risk
func (h *Handler) HandlePredictPCOSRisk(w http.ResponseWriter, r *http.Request) {
	var profile pcos.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON", "request body must be valid JSON", nil)
		return
	}

	result, err := h.service.PredictPCOSRisk(r.Context(), &profile)
	if err != nil {
		h.respondFailure(w, err, "PCOS risk")
		return
	}

	respondSuccess(w, http.StatusOK, result)
}

// HandleAnalyzeSymptoms analyzes symptom patterns
// POST /analyze/symptoms
func (h *Handler) HandleAnalyzeSymptoms(w http.ResponseWriter, r *http.Request) {
	var req analyzeSymptomsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON", "request body must be valid JSON", nil)
		return
	}

	records, err := req.toDomain()
	if err != nil {
		h.respondFailure(w, err, "symptom analysis")
		return
	}

	result, err := h.service.AnalyzeSymptoms(r.Context(), records)
	if err != nil {
		h.respondFailure(w, err, "symptom analysis")
		return
	}

	respondSuccess(w, http.StatusOK, result)
}

// HandleModelInfo returns diagnostics for the loaded models
// GET /model/info
func (h *Handler) HandleModelInfo(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, h.service.ModelsInfo())
}

// HandleHistory lists stored predictions of a kind over a window
// GET /predictions/history?kind=cycle&days=30
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	kind := history.Kind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = history.KindCycle
	}
	if kind != history.KindCycle && kind != history.KindPCOS {
		respondError(w, http.StatusBadRequest, "Validation error", "kind must be \"cycle\" or \"pcos\"", nil)
		return
	}

	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 365 {
			respondError(w, http.StatusBadRequest, "Validation error", "days must be an integer between 1 and 365", nil)
			return
		}
		days = parsed
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	entries, err := h.service.History(r.Context(), kind, since)
	if err != nil {
		if errors.Is(err, errors.ErrUnavailable) {
			respondError(w, http.StatusServiceUnavailable, "History unavailable", "prediction history is not enabled", nil)
			return
		}
		h.respondFailure(w, err, "prediction history")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"kind":    kind,
		"since":   since,
		"count":   len(entries),
		"entries": entries,
	})
}

// respondFailure maps pipeline errors onto HTTP statuses. Internal
// detail never leaks into 5xx messages
func (h *Handler) respondFailure(w http.ResponseWriter, err error, operation string) {
	var inputErr *errors.InputError

	switch {
	case errors.As(err, &inputErr):
		h.log.Warnw("Request validation failed", "operation", operation, "details", inputErr.Details)
		respondError(w, http.StatusBadRequest, "Validation error", "invalid input data", inputErr.Details)

	case errors.Is(err, errors.ErrInvalidInput):
		h.log.Warnw("Request validation failed", "operation", operation, "error", err)
		respondError(w, http.StatusBadRequest, "Validation error", err.Error(), nil)

	case errors.Is(err, errors.ErrModelNotLoaded), errors.Is(err, errors.ErrUnavailable):
		h.log.Errorw("Model unavailable", "operation", operation, "error", err)
		respondError(w, http.StatusServiceUnavailable, "Model error", "model is not available", nil)

	default:
		h.log.Errorw("Request failed", "operation", operation, "error", err)
		respondError(w, http.StatusInternalServerError, "Prediction failed", "an unexpected error occurred", nil)
	}
}
