package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jumapesa/billing-api/internal/application/service"
	"github.com/jumapesa/billing-api/internal/presentation/http/dto/response"
)

// CurrencyHandler handles currency and bank account HTTP requests
type CurrencyHandler struct {
	currencyService *service.CurrencyService
}

// NewCurrencyHandler creates a new currency handler
func NewCurrencyHandler(currencyService *service.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currencyService: currencyService}
}

// List handles listing currencies
// @Summary List Currencies
// @Description Get all supported currencies
// @Tags currencies
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /currencies [get]
func (h *CurrencyHandler) List(c *gin.Context) {
	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Currencies retrieved successfully", currencies)
}

// Get handles getting a single currency
// @Summary Get Currency
// @Description Get a currency by ID
// @Tags currencies
// @Security BearerAuth
// @Produce json
// @Param id path string true "Currency ID"
// @Success 200 {object} response.APIResponse
// @Router /currencies/{id} [get]
func (h *CurrencyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid currency ID")
		return
	}

	currency, err := h.currencyService.GetCurrency(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Currency retrieved successfully", currency)
}

// ListAccounts handles listing bank accounts
// @Summary List Bank Accounts
// @Description Get all bank accounts
// @Tags accounts
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /accounts [get]
func (h *CurrencyHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.currencyService.ListAccounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Accounts retrieved successfully", accounts)
}

// CreateAccount handles creating a bank account
// @Summary Create Bank Account
// @Description Create a new bank account
// @Tags accounts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /accounts [post]
func (h *CurrencyHandler) CreateAccount(c *gin.Context) {
	var req struct {
		BankName     string `json:"bank_name" binding:"required"`
		BicSwiftCode string `json:"bic_swift_code" binding:"required"`
		Number       string `json:"number" binding:"required"`
		Enabled      bool   `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.currencyService.CreateAccount(c.Request.Context(), &service.CreateAccountInput{
		BankName:     req.BankName,
		BicSwiftCode: req.BicSwiftCode,
		Number:       req.Number,
		Enabled:      req.Enabled,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Account created successfully", account)
}
