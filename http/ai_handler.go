package http

import (
	"encoding/json"
	"net/http"

	"move-advisor/domain"
	"move-advisor/service"
)

// AIHandler exposes the text-generation collaborator endpoints:
// address valuation, structured property details, and the narrative
// analysis. Collaborator failures surface as a single user-facing
// message and never alter any computed state.
type AIHandler struct {
	ai *service.AIService
}

func NewAIHandler(ai *service.AIService) *AIHandler {
	return &AIHandler{ai: ai}
}

type valueEstimateRequest struct {
	Address string `json:"address"`
}

type valueEstimateResponse struct {
	EstimatedValue float64 `json:"estimatedValue"`
}

func (h *AIHandler) EstimateValue(w http.ResponseWriter, r *http.Request) {
	var req valueEstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	value, err := h.ai.EstimateHomeValue(r.Context(), req.Address)
	if err != nil {
		writeError(w, http.StatusBadGateway, "could not estimate a value for that address")
		return
	}

	writeJSON(w, http.StatusOK, valueEstimateResponse{EstimatedValue: value})
}

type propertyDetailRequest struct {
	Address string  `json:"address"`
	Price   float64 `json:"price"`
}

func (h *AIHandler) PropertyDetails(w http.ResponseWriter, r *http.Request) {
	var req propertyDetailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	estimate, err := h.ai.EstimatePropertyDetails(r.Context(), req.Address, req.Price)
	if err != nil {
		writeError(w, http.StatusBadGateway, "could not estimate property details for that address")
		return
	}

	writeJSON(w, http.StatusOK, estimate)
}

type analysisRequest struct {
	Profile domain.FinancialProfile  `json:"profile"`
	Result  domain.CalculationResult `json:"result"`
}

type analysisResponse struct {
	Analysis string `json:"analysis"`
}

// Analyze always answers 200: when the remote service is unavailable
// the deterministic fallback narrative is returned instead.
func (h *AIHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	analysis := h.ai.GenerateAnalysis(r.Context(), req.Profile, req.Result)
	writeJSON(w, http.StatusOK, analysisResponse{Analysis: analysis})
}
