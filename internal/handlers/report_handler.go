package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelbudget/internal/services"
)

// ReportHandler serves derived reports.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ReconciliationResponse wraps the reconciliation report.
type ReconciliationResponse struct {
	Report *services.ReconciliationReport `json:"report"`
}

// GetReconciliation returns spending against budget for the caller.
// @Summary     Budget reconciliation
// @Description Per-budget spent and remaining amounts, unbudgeted spending, daily totals and the overall balance
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} ReconciliationResponse "Reconciliation report"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/reconciliation [get]
func (h *ReportHandler) GetReconciliation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.GetReconciliation(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ReconciliationResponse{Report: report})
}
