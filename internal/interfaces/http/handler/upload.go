package handler

import (
	mediaapp "github.com/ecomercado/backend/internal/application/media"
	"github.com/gin-gonic/gin"
)

// UploadHandler handles image uploads for listings, chats and receipts
type UploadHandler struct {
	BaseHandler
	uploadService *mediaapp.UploadService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploadService *mediaapp.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload stores one multipart image under the kind's prefix and returns
// its public URL
func (h *UploadHandler) Upload(c *gin.Context) {
	if _, _, ok := requireCaller(c); !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	kind := c.Param("kind")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Could not read uploaded file")
		return
	}
	defer file.Close()

	url, err := h.uploadService.Upload(c.Request.Context(), kind, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, gin.H{"url": url})
}
