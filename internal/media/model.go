package media

import (
	"net/http"
	"time"

	"github.com/mesaflow/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound    = apperror.New(http.StatusNotFound, "photo not found")
	ErrNoThumbnail = apperror.New(http.StatusNotFound, "thumbnail not available for this photo")
	ErrNotAnImage  = apperror.New(http.StatusBadRequest, "uploaded file is not an image")
)

// Photo is an image attached to a business: a menu page, a room, a dish.
type Photo struct {
	ID            string
	BusinessID    string
	UploadedBy    string
	Filename      string
	StoragePath   string  // internal, never serialized
	ThumbnailPath *string // internal, never serialized
	ContentType   string
	Size          int64
	Caption       *string
	CreatedAt     time.Time
}

// URL returns the public download path for a photo.
func URL(id string) string {
	return "/v1/photos/" + id
}

// ThumbnailURL returns the public thumbnail path for a photo.
func ThumbnailURL(id string) string {
	return "/v1/photos/" + id + "/thumbnail"
}
