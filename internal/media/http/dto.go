package http

import (
	"time"

	"github.com/mesaflow/booking-backend/internal/media"
)

type PhotoResponse struct {
	ID           string    `json:"id"`
	BusinessID   string    `json:"business_id"`
	Filename     string    `json:"filename"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	Caption      *string   `json:"caption,omitempty"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewResponse(p *media.Photo) PhotoResponse {
	resp := PhotoResponse{
		ID:          p.ID,
		BusinessID:  p.BusinessID,
		Filename:    p.Filename,
		ContentType: p.ContentType,
		Size:        p.Size,
		Caption:     p.Caption,
		URL:         media.URL(p.ID),
		CreatedAt:   p.CreatedAt,
	}
	if p.ThumbnailPath != nil {
		resp.ThumbnailURL = media.ThumbnailURL(p.ID)
	}
	return resp
}
