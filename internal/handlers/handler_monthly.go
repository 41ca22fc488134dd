package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/wkaram/expense_tracker_app/internal/core/ports/services"
	"github.com/wkaram/expense_tracker_app/internal/dto"
	"github.com/wkaram/expense_tracker_app/internal/middleware"
)

// monthlyHandler handles HTTP requests related to recurring monthly
// expense templates.
type monthlyHandler struct {
	monthlyService portssvc.MonthlyPaymentSvcFacade
}

// registerMonthlyRoutes registers routes related to monthly expenses.
func registerMonthlyRoutes(rg *gin.RouterGroup, monthlyService portssvc.MonthlyPaymentSvcFacade) {
	h := &monthlyHandler{monthlyService: monthlyService}

	monthly := rg.Group("/monthly-expenses")
	{
		monthly.POST("", h.createMonthlyExpense)
		monthly.GET("", h.listMonthlyExpenses)
		monthly.DELETE("/:id", h.deleteMonthlyExpense)
		monthly.POST("/:id/pay", h.payMonthlyExpense)
	}
}

func (h *monthlyHandler) createMonthlyExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMonthlyExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateMonthlyExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	template, err := h.monthlyService.CreateMonthlyExpense(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create monthly expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMonthlyExpenseResponse(template, false))
}

func (h *monthlyHandler) listMonthlyExpenses(c *gin.Context) {
	templates, err := h.monthlyService.ListMonthlyExpenses(c.Request.Context(), c.Query("month"))
	if err != nil {
		respondServiceError(c, err, "Failed to list monthly expenses")
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *monthlyHandler) deleteMonthlyExpense(c *gin.Context) {
	if err := h.monthlyService.DeleteMonthlyExpense(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete monthly expense")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *monthlyHandler) payMonthlyExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PayMonthlyExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PayMonthlyExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.monthlyService.PayMonthlyExpense(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to pay monthly expense")
		return
	}
	if expense == nil {
		// Already paid this month and the linked expense is gone.
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}
