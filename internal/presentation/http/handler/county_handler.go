package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jumapesa/billing-api/internal/application/service"
	"github.com/jumapesa/billing-api/internal/presentation/http/dto/request"
	"github.com/jumapesa/billing-api/internal/presentation/http/dto/response"
	"github.com/jumapesa/billing-api/pkg/pagination"
)

// CountyHandler handles county reference data HTTP requests
type CountyHandler struct {
	countyService *service.CountyService
}

// NewCountyHandler creates a new county handler
func NewCountyHandler(countyService *service.CountyService) *CountyHandler {
	return &CountyHandler{countyService: countyService}
}

// List handles listing counties
// @Summary List Counties
// @Description Get counties with pagination and optional search
// @Tags counties
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Success 200 {object} response.APIResponse
// @Router /counties [get]
func (h *CountyHandler) List(c *gin.Context) {
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

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	counties, total, err := h.countyService.ListCounties(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(counties, pagination.NewPagination(page, perPage, total))
	response.SuccessWithPagination(c, 200, "Counties retrieved successfully", result)
}

// Get handles getting a single county
// @Summary Get County
// @Description Get a county by ID
// @Tags counties
// @Security BearerAuth
// @Produce json
// @Param id path string true "County ID"
// @Success 200 {object} response.APIResponse
// @Router /counties/{id} [get]
func (h *CountyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid county ID")
		return
	}

	county, err := h.countyService.GetCounty(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "County retrieved successfully", county)
}

// Create handles creating a county
// @Summary Create County
// @Description Create a new county
// @Tags counties
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateCountyRequest true "County data"
// @Success 201 {object} response.APIResponse
// @Router /counties [post]
func (h *CountyHandler) Create(c *gin.Context) {
	var req request.CreateCountyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	county, err := h.countyService.CreateCounty(c.Request.Context(), &service.CreateCountyInput{
		Name: req.County,
		Code: req.CountyCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "County created successfully", county)
}

// Update handles updating a county
// @Summary Update County
// @Description Update an existing county
// @Tags counties
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "County ID"
// @Param request body request.UpdateCountyRequest true "County data"
// @Success 200 {object} response.APIResponse
// @Router /counties/{id} [put]
func (h *CountyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid county ID")
		return
	}

	var req request.UpdateCountyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	county, err := h.countyService.UpdateCounty(c.Request.Context(), id, &service.UpdateCountyInput{
		Name: req.County,
		Code: req.CountyCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "County updated successfully", county)
}

// Delete handles deleting a county
// @Summary Delete County
// @Description Soft delete a county
// @Tags counties
// @Security BearerAuth
// @Param id path string true "County ID"
// @Success 204
// @Router /counties/{id} [delete]
func (h *CountyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid county ID")
		return
	}

	if err := h.countyService.DeleteCounty(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Export handles exporting counties to an Excel workbook
// @Summary Export Counties
// @Description Export all counties to an Excel file and report row counts
// @Tags counties
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /counties/export [post]
func (h *CountyHandler) Export(c *gin.Context) {
	result, err := h.countyService.ExportCounties(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result.CompletionMessage(), result)
}
