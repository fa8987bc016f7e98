package handler

import (
	"errors"
	"net/http"

	"pvadb-backend/internal/domains/brand"
	"pvadb-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type BrandHandler struct {
	service brand.Service
}

func NewBrandHandler(svc brand.Service) *BrandHandler {
	return &BrandHandler{
		service: svc,
	}
}

// List handles GET /v1/brands
func (h *BrandHandler) List(c *gin.Context) {
	brands, err := h.service.List(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "failed to list brands")
		return
	}

	response.Success(c, http.StatusOK, brands)
}

// GetBySlug handles GET /v1/brands/:slug
func (h *BrandHandler) GetBySlug(c *gin.Context) {
	resp, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, brand.ErrBrandNotFound) {
			response.NotFound(c, "brand not found")
			return
		}
		response.InternalServerError(c, "failed to get brand")
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Create handles POST /v1/admin/brands
func (h *BrandHandler) Create(c *gin.Context) {
	var req brand.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeBrandError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// Update handles PUT /v1/admin/brands/:id
func (h *BrandHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid brand id")
		return
	}

	var req brand.UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeBrandError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Delete handles DELETE /v1/admin/brands/:id
func (h *BrandHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid brand id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeBrandError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func writeBrandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, brand.ErrBrandNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, brand.ErrDuplicateSlug), errors.Is(err, brand.ErrBrandHasProducts):
		response.Conflict(c, err.Error())
	case errors.Is(err, brand.ErrInvalidBrandName):
		response.BadRequest(c, err.Error())
	default:
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid brand", verrs)
			return
		}
		response.InternalServerError(c, "brand operation failed")
	}
}
