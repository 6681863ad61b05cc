package http

import (
	"encoding/json"
	"net/http"

	"move-advisor/domain"
	"move-advisor/service"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

type reportRequest struct {
	Profile domain.FinancialProfile  `json:"profile"`
	Result  domain.CalculationResult `json:"result"`
}

// Generate renders the PDF snapshot for download.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pdfBytes, err := h.service.Generate(req.Profile, req.Result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not generate the report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="affordability-report.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}
