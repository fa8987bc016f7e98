package handler

import (
	"errors"
	"net/http"

	"pvadb-backend/internal/domains/product"
	"pvadb-backend/internal/domains/product/model"
	"pvadb-backend/internal/domains/quota"
	"pvadb-backend/internal/shared/middleware"
	"pvadb-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{
		service: svc,
	}
}

// List handles GET /v1/products
func (h *ProductHandler) List(c *gin.Context) {
	var query model.ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	products, total, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.InternalServerError(c, "failed to list products")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, products, &response.Meta{
		Page:  query.Page,
		Limit: query.Limit,
		Total: int(total),
	})
}

// GetBySlug handles GET /v1/products/:slug
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	resp, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		response.InternalServerError(c, "failed to get product")
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Submit handles POST /v1/submissions. Runs behind OptionalAuthMiddleware:
// anonymous callers are accepted and treated as untrusted.
func (h *ProductHandler) Submit(c *gin.Context) {
	var req model.SubmitProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	submitter := submitterFromContext(c)

	resp, err := h.service.Submit(c.Request.Context(), submitter, &req)
	if err != nil {
		writeSubmissionError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// UploadImage handles POST /v1/products/:id/image
func (h *ProductHandler) UploadImage(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}
	defer src.Close()

	objectKey, err := h.service.UploadImage(c.Request.Context(), productID, file.Filename, src, file.Size)
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"image_url": objectKey})
}

func submitterFromContext(c *gin.Context) product.Submitter {
	userID, _ := middleware.GetAuthenticatedUserID(c)
	return product.Submitter{
		UserID:  userID,
		IsAdmin: middleware.IsAdminRequest(c),
	}
}

func writeSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, quota.ErrSubmissionLimitReached):
		response.TooManyRequests(c, err.Error())
	case errors.Is(err, model.ErrDuplicateSlug):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrBrandNotFound),
		errors.Is(err, model.ErrInvalidProductName),
		errors.Is(err, model.ErrInvalidCategory),
		errors.Is(err, model.ErrInvalidPVAStatus),
		errors.Is(err, model.ErrInvalidPVAPercentage),
		errors.Is(err, model.ErrEmptyFile),
		errors.Is(err, model.ErrTooManyRows),
		errors.Is(err, model.ErrImportFileRequired):
		response.BadRequest(c, err.Error())
	default:
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid submission", verrs)
			return
		}
		response.InternalServerError(c, "failed to process submission")
	}
}
