package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopbooks/shopbooks/internal/apperrors"
	"github.com/shopbooks/shopbooks/internal/core/domain"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
	"github.com/shopbooks/shopbooks/internal/dto"
	"github.com/shopbooks/shopbooks/internal/middleware"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// reportingHandler handles statements, dues, dashboard, reconciliation and
// the audit trail.
type reportingHandler struct {
	statementService  portssvc.StatementSvc
	agingService      portssvc.AgingSvc
	dashboardService  portssvc.DashboardSvc
	reconcilerService portssvc.ReconcilerSvc
	auditService      portssvc.AuditSvc
}

// registerReportingRoutes registers the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &reportingHandler{
		statementService:  services.Statement,
		agingService:      services.Aging,
		dashboardService:  services.Dashboard,
		reconcilerService: services.Reconciler,
		auditService:      services.Audit,
	}

	// Reports expose every account's history, so the whole group sits behind
	// the reporting capability.
	reports := rg.Group("/reports", middleware.RequireCapability(services.Authorizer, domain.CapViewReports))
	{
		reports.GET("/statement", h.getStatement)
		reports.GET("/dues", h.getDues)
		reports.GET("/dashboard", h.getDashboard)
		reports.GET("/audit", h.listAuditEvents)
		reports.POST("/recompute", h.recompute)
	}
}

// getStatement godoc
// @Summary Build an account statement
// @Description Produces the carried-forward row plus every entry in the period with a running balance.
// @Tags reports
// @Produce json
// @Param account query string true "Account display name"
// @Param from query string true "Period start (YYYY-MM-DD)"
// @Param to query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} ErrorResponse "Malformed or inverted period"
// @Failure 404 {object} ErrorResponse "Unknown account"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/statement [get]
func (h *reportingHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.StatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "account, from and to are required"})
		return
	}

	from, err := time.Parse(dateLayout, params.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from must be YYYY-MM-DD"})
		return
	}
	to, err := time.Parse(dateLayout, params.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "to must be YYYY-MM-DD"})
		return
	}

	statement, err := h.statementService.BuildStatement(c.Request.Context(), params.Account, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrUnknownAccount) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		} else {
			logger.Error("Failed to build statement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build statement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStatementResponse(statement))
}

// getDues godoc
// @Summary Dues aging report
// @Description Partitions deferred purchases into due and critical sets relative to the analysis date.
// @Tags reports
// @Produce json
// @Param asOf query string false "Analysis date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.DuesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/dues [get]
func (h *reportingHandler) getDues(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DuesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	asOf := time.Now().UTC()
	if params.AsOf != "" {
		parsed, err := time.Parse(dateLayout, params.AsOf)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "asOf must be YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	report, err := h.agingService.ComputeDues(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to compute dues", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute dues"})
		return
	}

	c.JSON(http.StatusOK, toDuesResponse(report, asOf))
}

// toDuesResponse renders the entry-level report plus the per-account
// aggregation the UI shows.
func toDuesResponse(report *domain.DuesReport, asOf time.Time) dto.DuesResponse {
	resp := dto.DuesResponse{
		AsOf:       asOf.Format(dateLayout),
		Due:        make([]dto.AgedEntryResponse, len(report.Due)),
		Critical:   make([]dto.AgedEntryResponse, len(report.Critical)),
		TotalDue:   decimal.Zero,
		TotalCount: len(report.Due),
	}

	byAccount := map[string]*dto.AccountDuesSummary{}
	for i, aged := range report.Due {
		resp.Due[i] = dto.ToAgedEntryResponse(aged)
		resp.TotalDue = resp.TotalDue.Add(aged.Entry.TotalAmount)

		summary, ok := byAccount[aged.Entry.AccountName]
		if !ok {
			summary = &dto.AccountDuesSummary{AccountName: aged.Entry.AccountName}
			byAccount[aged.Entry.AccountName] = summary
		}
		summary.Total = summary.Total.Add(aged.Entry.TotalAmount)
		summary.EntryCount++
	}
	for i, aged := range report.Critical {
		resp.Critical[i] = dto.ToAgedEntryResponse(aged)
	}

	resp.ByAccount = make([]dto.AccountDuesSummary, 0, len(byAccount))
	for _, summary := range byAccount {
		resp.ByAccount = append(resp.ByAccount, *summary)
	}
	sort.Slice(resp.ByAccount, func(i, j int) bool {
		return resp.ByAccount[i].Total.GreaterThan(resp.ByAccount[j].Total)
	})
	return resp
}

// getDashboard godoc
// @Summary Landing-page summary
// @Description Category balance totals, recent entries and due amounts.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	dashboard, err := h.dashboardService.Dashboard(c.Request.Context(), time.Now().UTC())
	if err != nil {
		logger.Error("Failed to build dashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// listAuditEvents godoc
// @Summary List recent audit events
// @Tags reports
// @Produce json
// @Param limit query int false "Maximum rows" default(50)
// @Success 200 {array} domain.AuditEvent
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/audit [get]
func (h *reportingHandler) listAuditEvents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	events, err := h.auditService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		logger.Error("Failed to list audit events", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list audit events"})
		return
	}

	c.JSON(http.StatusOK, events)
}

// recompute godoc
// @Summary Recompute cached balances
// @Description Recalculates one account's balance from source data when the account query parameter is set, else every account.
// @Tags reports
// @Produce json
// @Param account query string false "Account display name"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse "Unknown account"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/recompute [post]
func (h *reportingHandler) recompute(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if account := c.Query("account"); account != "" {
		balance, err := h.reconcilerService.RecomputeBalance(c.Request.Context(), account)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrUnknownAccount) {
				c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
				return
			}
			logger.Error("Failed to recompute balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to recompute balance"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"account": account, "balance": balance})
		return
	}

	count, err := h.reconcilerService.RecomputeAll(c.Request.Context())
	if err != nil {
		logger.Error("Full recompute failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to recompute balances"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recomputedAccounts": count})
}
