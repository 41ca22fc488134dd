package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/wkaram/expense_tracker_app/internal/core/ports/services"
	"github.com/wkaram/expense_tracker_app/internal/dto"
)

// reportingHandler handles HTTP requests for spending summaries.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/summary/:month", h.monthSummary)
		reports.GET("/months", h.availableMonths)
	}
}

func (h *reportingHandler) monthSummary(c *gin.Context) {
	summary, err := h.reportingService.MonthSummary(c.Request.Context(), c.Param("month"))
	if err != nil {
		respondServiceError(c, err, "Failed to build month summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *reportingHandler) availableMonths(c *gin.Context) {
	months, err := h.reportingService.AvailableMonths(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list months")
		return
	}
	c.JSON(http.StatusOK, dto.AvailableMonthsResponse{Months: months})
}
