package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectStorage stores an uploaded object and returns its public URL
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

// Upload kinds name what an image is attached to. Product photos land under
// images/, donation photos under donations/, everything else under uploads/.
const (
	KindProduct  = "products"
	KindDonation = "donations"
	KindChat     = "chat"
	KindReceipt  = "receipts"
	KindAvatar   = "avatars"
)

var kindPrefixes = map[string]string{
	KindProduct:  "images",
	KindDonation: "donations",
	KindChat:     "uploads",
	KindReceipt:  "uploads",
	KindAvatar:   "uploads",
}

// MaxUploadSize bounds a single image upload
const MaxUploadSize = 10 << 20 // 10 MiB

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// UploadService validates image uploads and hands them to object storage
type UploadService struct {
	storage ObjectStorage
	logger  *zap.Logger
}

// NewUploadService creates a new UploadService
func NewUploadService(storage ObjectStorage, logger *zap.Logger) *UploadService {
	return &UploadService{storage: storage, logger: logger}
}

// Upload stores one image under the kind's prefix and returns its public URL
func (s *UploadService) Upload(ctx context.Context, kind, filename string, body io.Reader, size int64) (string, error) {
	prefix, ok := kindPrefixes[kind]
	if !ok {
		return "", shared.NewDomainError("INVALID_UPLOAD_KIND", fmt.Sprintf("Unknown upload kind %q", kind))
	}
	if size <= 0 || size > MaxUploadSize {
		return "", shared.NewDomainError("INVALID_UPLOAD_SIZE", "Upload must be between 1 byte and 10 MiB")
	}

	ext := strings.ToLower(path.Ext(filename))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		return "", shared.NewDomainError("INVALID_UPLOAD_TYPE", fmt.Sprintf("Unsupported file extension %q", ext))
	}

	key := fmt.Sprintf("%s/%s-%s%s", prefix, time.Now().UTC().Format("20060102T150405"), uuid.New().String(), ext)

	url, err := s.storage.Upload(ctx, key, contentType, body, size)
	if err != nil {
		s.logger.Error("Image upload failed",
			zap.String("kind", kind),
			zap.String("key", key),
			zap.Error(err))
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	return url, nil
}
