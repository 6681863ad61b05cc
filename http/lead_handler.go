package http

import (
	"encoding/json"
	"net/http"

	"move-advisor/domain"
	"move-advisor/service"
)

type LeadHandler struct {
	service *service.LeadService
}

func NewLeadHandler(service *service.LeadService) *LeadHandler {
	return &LeadHandler{service: service}
}

// Submit forwards a lead to the marketing webhook. One shot: a
// rejected or failed submission is reported to the user, nothing is
// retried or queued.
func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var lead domain.Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Submit(r.Context(), lead); err != nil {
		writeError(w, http.StatusBadGateway, "could not submit your details, please try again")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "submitted"})
}
