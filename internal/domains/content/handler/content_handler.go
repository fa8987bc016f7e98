package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"pvadb-backend/internal/domains/content"
	"pvadb-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type ContentHandler struct {
	service content.Service
}

func NewContentHandler(svc content.Service) *ContentHandler {
	return &ContentHandler{
		service: svc,
	}
}

// ========================================
// PUBLIC: posts, research, videos
// ========================================

// ListPosts handles GET /v1/blog
func (h *ContentHandler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	posts, total, err := h.service.ListPublishedPosts(c.Request.Context(), page, limit)
	if err != nil {
		response.InternalServerError(c, "failed to list posts")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, posts, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: int(total),
	})
}

// GetPost handles GET /v1/blog/:slug
func (h *ContentHandler) GetPost(c *gin.Context) {
	p, err := h.service.GetPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, content.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		response.InternalServerError(c, "failed to get post")
		return
	}

	response.Success(c, http.StatusOK, p)
}

// ListResearch handles GET /v1/research
func (h *ContentHandler) ListResearch(c *gin.Context) {
	links, err := h.service.ListResearch(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "failed to list research links")
		return
	}

	response.Success(c, http.StatusOK, links)
}

// ListVideos handles GET /v1/videos
func (h *ContentHandler) ListVideos(c *gin.Context) {
	videos, err := h.service.ListVideos(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "failed to list videos")
		return
	}

	response.Success(c, http.StatusOK, videos)
}

// ========================================
// ADMIN: content management
// ========================================

// CreatePost handles POST /v1/admin/blog
func (h *ContentHandler) CreatePost(c *gin.Context) {
	var req content.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.CreatePost(c.Request.Context(), req)
	if err != nil {
		writeContentError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, p)
}

// UpdatePost handles PUT /v1/admin/blog/:id
func (h *ContentHandler) UpdatePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	var req content.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.UpdatePost(c.Request.Context(), id, req)
	if err != nil {
		writeContentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

// DeletePost handles DELETE /v1/admin/blog/:id
func (h *ContentHandler) DeletePost(c *gin.Context) {
	h.deleteByID(c, h.service.DeletePost)
}

// CreateResearch handles POST /v1/admin/research
func (h *ContentHandler) CreateResearch(c *gin.Context) {
	var req content.CreateResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	link, err := h.service.AddResearch(c.Request.Context(), req)
	if err != nil {
		writeContentError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, link)
}

// DeleteResearch handles DELETE /v1/admin/research/:id
func (h *ContentHandler) DeleteResearch(c *gin.Context) {
	h.deleteByID(c, h.service.DeleteResearch)
}

// CreateVideo handles POST /v1/admin/videos
func (h *ContentHandler) CreateVideo(c *gin.Context) {
	var req content.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	v, err := h.service.AddVideo(c.Request.Context(), req)
	if err != nil {
		writeContentError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, v)
}

// DeleteVideo handles DELETE /v1/admin/videos/:id
func (h *ContentHandler) DeleteVideo(c *gin.Context) {
	h.deleteByID(c, h.service.DeleteVideo)
}

func (h *ContentHandler) deleteByID(c *gin.Context, del func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	if err := del(c.Request.Context(), id); err != nil {
		writeContentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func writeContentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, content.ErrPostNotFound),
		errors.Is(err, content.ErrResearchNotFound),
		errors.Is(err, content.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, content.ErrDuplicateSlug):
		response.Conflict(c, err.Error())
	case errors.Is(err, content.ErrInvalidTitle), errors.Is(err, content.ErrInvalidBody):
		response.BadRequest(c, err.Error())
	default:
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid content", verrs)
			return
		}
		response.InternalServerError(c, "content operation failed")
	}
}
