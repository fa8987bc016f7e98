package handler

import (
	"errors"
	"net/http"

	"pvadb-backend/internal/domains/user"
	"pvadb-backend/internal/shared/middleware"
	"pvadb-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{
		service: svc,
	}
}

// Register handles POST /v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailAlreadyExists):
			response.Conflict(c, err.Error())
		default:
			var verrs validation.Errors
			if errors.As(err, &verrs) {
				response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid registration", verrs)
				return
			}
			response.InternalServerError(c, "failed to register")
		}
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// Login handles POST /v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials):
			response.Unauthorized(c, err.Error())
		case errors.Is(err, user.ErrUserInactive):
			response.Forbidden(c, err.Error())
		default:
			response.BadRequest(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// RefreshToken handles POST /v1/auth/refresh
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req user.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "refresh token is required")
		return
	}

	resp, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidToken), errors.Is(err, user.ErrUserNotFound):
			response.Unauthorized(c, "invalid refresh token")
		case errors.Is(err, user.ErrUserInactive):
			response.Forbidden(c, err.Error())
		default:
			response.InternalServerError(c, "failed to refresh token")
		}
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetProfile handles GET /v1/users/me. Requires AuthMiddleware.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		response.Unauthorized(c, "invalid identity")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalServerError(c, "failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, profile)
}
