package handler

import (
	accountingapp "github.com/finbooks/backend/internal/application/accounting"
	"github.com/finbooks/backend/internal/domain/shared"
	"github.com/finbooks/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles transaction posting and listing
type TransactionHandler struct {
	BaseHandler
	transactionService *accountingapp.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *accountingapp.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// RegisterRoutes registers transaction routes on the given group
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	transactions := rg.Group("/finance/transactions")
	{
		transactions.POST("", h.Create)
		transactions.GET("", h.List)
		transactions.GET("/:id", h.Get)
	}
}

// Create posts a new transaction
func (h *TransactionHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req accountingapp.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, transaction)
}

// Get returns a single transaction
func (h *TransactionHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(c.Request.Context(), tenantID, mustParseUUID(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, transaction)
}

// List returns the tenant's transactions with pagination and filtering.
// An account_id query parameter narrows the list to transactions touching
// that account on either side.
func (h *TransactionHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter accountingapp.TransactionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	var page *shared.Paginated[accountingapp.TransactionResponse]
	if filter.AccountID != nil {
		page, err = h.transactionService.ListTransactionsByAccount(c.Request.Context(), tenantID, *filter.AccountID, filter)
	} else {
		page, err = h.transactionService.ListTransactions(c.Request.Context(), tenantID, filter)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
