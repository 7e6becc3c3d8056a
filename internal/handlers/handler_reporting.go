package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/gestinov/ledger_backend/internal/core/ports/services"
	"github.com/gestinov/ledger_backend/internal/dto"
	"github.com/gestinov/ledger_backend/internal/middleware"
)

// reportingHandler serves the read-only ledger reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to ledger reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/balances", h.accountBalances)
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/entries", h.entrySnapshots)
	}
}

// accountBalances godoc
// @Summary Account balance snapshot
// @Description Returns every account with its current balance, ordered by code
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.AccountBalancesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build balance snapshot"
// @Security BearerAuth
// @Router /reports/balances [get]
func (h *reportingHandler) accountBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.reportingService.AccountBalances(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build balance snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build balance snapshot"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountBalancesResponse(rows))
}

// trialBalance godoc
// @Summary Trial balance
// @Description Aggregates validated debit and credit totals per account, optionally restricted to one period
// @Tags reports
// @Produce  json
// @Param   periodID query string false "Restrict to one period"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build trial balance"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Query("periodID")

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), periodID)
	if err != nil {
		logger.Error("Failed to build trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build trial balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(rows))
}

// entrySnapshots godoc
// @Summary Denormalized entry views
// @Description Returns entries joined with their journal and period codes for ledger reports
// @Tags reports
// @Produce  json
// @Param   journalID query string false "Filter by journal"
// @Param   from query string false "Inclusive lower bound on entry date (YYYY-MM-DD)"
// @Param   to query string false "Inclusive upper bound on entry date (YYYY-MM-DD)"
// @Param   limit query int false "Maximum number of entries" default(20)
// @Success 200 {object} dto.EntrySnapshotsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build entry snapshots"
// @Security BearerAuth
// @Router /reports/entries [get]
func (h *reportingHandler) entrySnapshots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	rows, err := h.reportingService.EntrySnapshots(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to build entry snapshots", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build entry snapshots"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEntrySnapshotsResponse(rows))
}
