package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jumapesa/billing-api/internal/application/service"
	"github.com/jumapesa/billing-api/internal/domain/entity"
	"github.com/jumapesa/billing-api/internal/domain/enum"
	"github.com/jumapesa/billing-api/internal/domain/repository"
	"github.com/jumapesa/billing-api/internal/presentation/http/dto/request"
	"github.com/jumapesa/billing-api/internal/presentation/http/dto/response"
	"github.com/jumapesa/billing-api/pkg/pagination"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List handles listing invoices
// @Summary List Invoices
// @Description Get invoices with pagination and filtering. Admins see all invoices.
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query int false "Status filter"
// @Param series query int false "Series filter"
// @Success 200 {object} response.APIResponse
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page := 1
	perPage := 15
	if p := c.Query("page"); p != "" {
		if parsed, err := parsePositiveInt(p); err == nil {
			page = parsed
		}
	}
	if pp := c.Query("per_page"); pp != "" {
		if parsed, err := parsePositiveInt(pp); err == nil {
			perPage = parsed
		}
	}

	var status *enum.InvoiceStatus
	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.InvoiceStatus(parsed)
			status = &st
		}
	}

	var series *enum.InvoiceSeries
	if s := c.Query("series"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			sr := enum.InvoiceSeries(parsed)
			series = &sr
		}
	}

	// Admins see invoices across all users
	filterUserID := *userID
	if IsAdmin(c) {
		filterUserID = uuid.Nil
	}

	params := &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		Search:     c.Query("search"),
		Status:     status,
		Series:     series,
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), filterUserID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(invoices, pagination.NewPagination(page, perPage, total))
	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles getting a single invoice
// @Summary Get Invoice
// @Description Get an invoice by ID
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.canAccess(c, invoice) {
		response.Forbidden(c, "You do not have access to this invoice")
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Create handles creating an invoice
// @Summary Create Invoice
// @Description Create a new invoice with line items
// @Tags invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateInvoiceRequest true "Invoice data"
// @Success 201 {object} response.APIResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	currencyID, err := uuid.Parse(req.CurrencyID)
	if err != nil {
		response.BadRequest(c, "Invalid currency ID")
		return
	}

	var accountID *uuid.UUID
	if req.AccountID != nil {
		parsed, err := uuid.Parse(*req.AccountID)
		if err != nil {
			response.BadRequest(c, "Invalid account ID")
			return
		}
		accountID = &parsed
	}

	series := enum.InvoiceSeriesIN
	switch req.Series {
	case "PF":
		series = enum.InvoiceSeriesPF
	case "CN":
		series = enum.InvoiceSeriesCN
	}

	items := make([]service.InvoiceItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.InvoiceItemInput{
			Description: item.Description,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		UserID:     *userID,
		Series:     series,
		Status:     enum.InvoiceStatusDraft,
		CurrencyID: currencyID,
		AccountID:  accountID,
		TaxRate:    req.TaxRate,
		Notes:      req.Notes,
		Items:      items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Delete handles deleting an invoice
// @Summary Delete Invoice
// @Description Soft delete an invoice
// @Tags invoices
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 204
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.canAccess(c, invoice) {
		response.Forbidden(c, "You do not have access to this invoice")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// UpdateStatus handles invoice status transitions
// @Summary Update Invoice Status
// @Description Transition an invoice to a new status
// @Tags invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body request.UpdateInvoiceStatusRequest true "New status"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id}/status [patch]
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var status enum.InvoiceStatus
	if err := status.UnmarshalJSON([]byte(fmt.Sprintf("%q", req.Status))); err != nil {
		response.BadRequest(c, "Invalid invoice status")
		return
	}

	invoice, err := h.invoiceService.UpdateInvoiceStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice status updated successfully", invoice)
}

// GeneratePDF handles invoice document generation
// @Summary Generate Invoice PDF
// @Description Render the invoice PDF, mark it mailed and notify administrators
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id}/pdf [post]
func (h *InvoiceHandler) GeneratePDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.canAccess(c, invoice) {
		response.Forbidden(c, "You do not have access to this invoice")
		return
	}

	path, err := h.invoiceService.GenerateDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice document generated successfully", gin.H{
		"file_path": path,
	})
}

// ConvertCurrency handles invoice currency conversion
// @Summary Convert Invoice Currency
// @Description Convert the invoice to another currency at the latest exchange rate
// @Tags invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body request.ConvertCurrencyRequest true "Target currency"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id}/convert-currency [post]
func (h *InvoiceHandler) ConvertCurrency(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.ConvertCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.canAccess(c, invoice) {
		response.Forbidden(c, "You do not have access to this invoice")
		return
	}

	converted, err := h.invoiceService.ConvertCurrency(c.Request.Context(), id, req.Currency)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice currency converted successfully", converted)
}

// canAccess reports whether the caller owns the invoice or is an admin
func (h *InvoiceHandler) canAccess(c *gin.Context, invoice *entity.Invoice) bool {
	if IsAdmin(c) {
		return true
	}
	userID := GetUserID(c)
	return userID != nil && invoice.UserID == *userID
}

// Helper functions for parsing query parameters
func parsePositiveInt(s string) (int, error) {
	var result int
	_, err := fmt.Sscanf(s, "%d", &result)
	if err != nil || result < 1 {
		return 1, err
	}
	return result, nil
}

func parseNonNegativeInt(s string) (int, error) {
	var result int
	_, err := fmt.Sscanf(s, "%d", &result)
	if err != nil || result < 0 {
		return 0, err
	}
	return result, nil
}
