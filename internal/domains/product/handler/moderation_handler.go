package handler

import (
	"errors"
	"net/http"
	"strconv"

	"pvadb-backend/internal/domains/product"
	"pvadb-backend/internal/domains/product/model"
	"pvadb-backend/internal/shared/middleware"
	"pvadb-backend/internal/shared/response"
	"pvadb-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ModerationHandler serves the admin moderation queue. All routes run
// behind AuthMiddleware + AdminMiddleware.
type ModerationHandler struct {
	service product.Service
}

func NewModerationHandler(svc product.Service) *ModerationHandler {
	return &ModerationHandler{
		service: svc,
	}
}

// ListPending handles GET /v1/admin/submissions
func (h *ModerationHandler) ListPending(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, limit = utils.NormalizePage(page, limit)

	products, total, err := h.service.ListPending(c.Request.Context(), page, limit)
	if err != nil {
		response.InternalServerError(c, "failed to list pending submissions")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, products, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: int(total),
	})
}

// Approve handles POST /v1/admin/submissions/:id/approve
func (h *ModerationHandler) Approve(c *gin.Context) {
	productID, moderatorID, ok := h.moderationIDs(c)
	if !ok {
		return
	}

	if err := h.service.Approve(c.Request.Context(), productID, moderatorID); err != nil {
		writeModerationError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": model.StatusApproved})
}

// Reject handles POST /v1/admin/submissions/:id/reject
func (h *ModerationHandler) Reject(c *gin.Context) {
	productID, moderatorID, ok := h.moderationIDs(c)
	if !ok {
		return
	}

	var req model.RejectSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "a rejection reason is required")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.Reject(c.Request.Context(), productID, moderatorID, req.Reason); err != nil {
		writeModerationError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": model.StatusRejected})
}

func (h *ModerationHandler) moderationIDs(c *gin.Context) (productID, moderatorID uuid.UUID, ok bool) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid submission id")
		return uuid.Nil, uuid.Nil, false
	}

	userID, authenticated := middleware.GetAuthenticatedUserID(c)
	if !authenticated {
		response.Unauthorized(c, "authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	moderatorID, err = uuid.Parse(userID)
	if err != nil {
		response.Unauthorized(c, "invalid moderator identity")
		return uuid.Nil, uuid.Nil, false
	}

	return productID, moderatorID, true
}

func writeModerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrProductNotFound):
		response.NotFound(c, "submission not found")
	case errors.Is(err, model.ErrAlreadyModerated):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrRejectionReason):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, "failed to moderate submission")
	}
}
