package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/wkaram/expense_tracker_app/internal/core/ports/services"
	"github.com/wkaram/expense_tracker_app/internal/dto"
	"github.com/wkaram/expense_tracker_app/internal/middleware"
)

// incomeHandler handles HTTP requests related to incomes.
type incomeHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// registerIncomeRoutes registers routes related to incomes.
func registerIncomeRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &incomeHandler{ledgerService: ledgerService}

	incomes := rg.Group("/incomes")
	{
		incomes.POST("", h.addIncome)
		incomes.GET("", h.listIncomes)
	}
}

func (h *incomeHandler) addIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddIncome", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	income, err := h.ledgerService.AddIncome(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to add income")
		return
	}
	c.JSON(http.StatusCreated, dto.ToIncomeResponse(income))
}

func (h *incomeHandler) listIncomes(c *gin.Context) {
	incomes, err := h.ledgerService.ListIncomes(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list incomes")
		return
	}
	c.JSON(http.StatusOK, dto.ToListIncomeResponse(incomes))
}
