package handler

import (
	accountingapp "github.com/finbooks/backend/internal/application/accounting"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves aggregate financial views
type DashboardHandler struct {
	BaseHandler
	dashboardService *accountingapp.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *accountingapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// RegisterRoutes registers dashboard routes on the given group
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	finance := rg.Group("/finance")
	{
		finance.GET("/summary", h.Summary)
		finance.GET("/monthly-series", h.MonthlySeries)
	}
}

// Summary returns the tenant's financial summary built from the full ledger
func (h *DashboardHandler) Summary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	summary, err := h.dashboardService.GetFinancialSummary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// MonthlySeries returns month-bucketed revenue and expense totals
func (h *DashboardHandler) MonthlySeries(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	series, err := h.dashboardService.GetMonthlySeries(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, series)
}
