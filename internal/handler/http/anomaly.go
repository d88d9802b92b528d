package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/anomaly"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AnomalyHandler interface {
	StartSession(w http.ResponseWriter, r *http.Request)
	AnalyzeSample(w http.ResponseWriter, r *http.Request)
	EndSession(w http.ResponseWriter, r *http.Request)
}

type anomalyHandlerImpl struct {
	anomalyService anomaly.Service
}

func NewAnomalyHandler(anomalyService anomaly.Service) AnomalyHandler {
	return &anomalyHandlerImpl{anomalyService: anomalyService}
}

// StartSession implements AnomalyHandler.
func (h *anomalyHandlerImpl) StartSession(w http.ResponseWriter, r *http.Request) {
	result, err := h.anomalyService.StartSession(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "GPS session started", result)
}

// AnalyzeSample implements AnomalyHandler.
func (h *anomalyHandlerImpl) AnalyzeSample(w http.ResponseWriter, r *http.Request) {
	var req anomaly.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.SessionID = chi.URLParam(r, "id")

	result, err := h.anomalyService.Analyze(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EndSession implements AnomalyHandler.
func (h *anomalyHandlerImpl) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.anomalyService.EndSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "GPS session ended", nil)
}
