package handler

import (
	"net/http"
	"strconv"

	"pvadb-backend/internal/domains/quota"
	"pvadb-backend/internal/shared/middleware"
	"pvadb-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// QuotaHandler lets clients preview their submission allowance so the UI
// can disable the submit button before the user types anything.
type QuotaHandler struct {
	service quota.Service
}

func NewQuotaHandler(svc quota.Service) *QuotaHandler {
	return &QuotaHandler{
		service: svc,
	}
}

// Status handles GET /v1/submissions/quota?bulk=false&count=1.
// Runs behind OptionalAuthMiddleware: anonymous callers get the untrusted
// allowance.
func (h *QuotaHandler) Status(c *gin.Context) {
	isBulk := c.Query("bulk") == "true"

	count := 1
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.BadRequest(c, quota.ErrInvalidRequestedCount.Error())
			return
		}
		count = n
	}

	userID, _ := middleware.GetAuthenticatedUserID(c)
	isAdmin := middleware.IsAdminRequest(c)

	decision := h.service.CheckSubmissionLimits(c.Request.Context(), userID, isAdmin, isBulk, count)

	response.Success(c, http.StatusOK, decision)
}
