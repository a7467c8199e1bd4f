package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeol2/8-pumati-be/internal/dto"
	"github.com/yeol2/8-pumati-be/internal/service"
	"github.com/yeol2/8-pumati-be/pkg/response"
	"github.com/yeol2/8-pumati-be/pkg/validator"
)

type UploadHandler struct {
	uploadService service.UploadService
}

func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

func (h *UploadHandler) GeneratePresignedURL(c *gin.Context) {
	var req dto.SinglePresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.uploadService.GeneratePresignedURL(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UploadHandler) GeneratePresignedURLs(c *gin.Context) {
	var req dto.MultiplePresignedURLsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.uploadService.GeneratePresignedURLs(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
