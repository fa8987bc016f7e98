package handler

import (
	"net/http"

	"pvadb-backend/internal/domains/product"
	"pvadb-backend/internal/domains/product/model"
	"pvadb-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type BulkImportHandler struct {
	service product.BulkImportService
}

func NewBulkImportHandler(svc product.BulkImportService) *BulkImportHandler {
	return &BulkImportHandler{
		service: svc,
	}
}

// Import handles POST /v1/submissions/import. Requires authentication:
// bulk mode is never available anonymously through the UI, and the quota
// engine would cap an anonymous batch at the untrusted allowance anyway.
func (h *BulkImportHandler) Import(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, model.ErrImportFileRequired.Error())
		return
	}

	src, err := file.Open()
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}
	defer src.Close()

	submitter := submitterFromContext(c)

	result, err := h.service.ImportFromExcel(c.Request.Context(), submitter, src)
	if err != nil {
		writeSubmissionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
