package handler

import (
	accountingapp "github.com/finbooks/backend/internal/application/accounting"
	"github.com/finbooks/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles chart-of-accounts HTTP requests
type AccountHandler struct {
	BaseHandler
	accountService   *accountingapp.AccountService
	dashboardService *accountingapp.DashboardService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(
	accountService *accountingapp.AccountService,
	dashboardService *accountingapp.DashboardService,
) *AccountHandler {
	return &AccountHandler{
		accountService:   accountService,
		dashboardService: dashboardService,
	}
}

// RegisterRoutes registers account routes on the given group
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/finance/accounts")
	{
		accounts.POST("", h.Create)
		accounts.GET("", h.List)
		accounts.GET("/:id", h.Get)
		accounts.PUT("/:id", h.Update)
		accounts.DELETE("/:id", h.Delete)
		accounts.GET("/:id/balance", h.Balance)
	}
}

// Create adds a new account to the chart
func (h *AccountHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req accountingapp.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, account)
}

// Get returns a single account
func (h *AccountHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), tenantID, mustParseUUID(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// List returns the tenant's accounts with pagination and filtering
func (h *AccountHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter accountingapp.AccountListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.accountService.ListAccounts(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update renames or reclassifies an account
func (h *AccountHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req accountingapp.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), tenantID, mustParseUUID(idReq.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// Delete removes an account that has no postings
func (h *AccountHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), tenantID, mustParseUUID(idReq.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Balance returns the account's running balance
func (h *AccountHandler) Balance(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	balance, err := h.dashboardService.GetAccountBalance(c.Request.Context(), tenantID, mustParseUUID(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balance)
}
