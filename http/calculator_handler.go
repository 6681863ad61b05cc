package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"move-advisor/domain"
	"move-advisor/service"
)

type CalculatorHandler struct {
	service *service.CalculatorService
}

func NewCalculatorHandler(service *service.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{service: service}
}

// Calculate runs the affordability computation for a submitted
// profile. Validation failures return 400 with the failing rule's
// message; a negative-equity scenario is a 200 with the warning flag
// set on the result.
func (h *CalculatorHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var profile domain.FinancialProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Compute(profile)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		writeError(w, http.StatusInternalServerError, "calculation failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
