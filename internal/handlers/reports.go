package handlers

import (
	"net/http"

	"stockpilot/backend/internal/httpx"
	"stockpilot/backend/internal/services"
)

type ReportHandler struct {
	Reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{Reports: reports}
}

// Summary: GET /reports/summary returns the dashboard numbers.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Reports.Summary(r.Context())
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}
