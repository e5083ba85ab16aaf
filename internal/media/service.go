package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mesaflow/booking-backend/internal/pkg/storage"
)

// Service defines photo handling for businesses.
type Service interface {
	Upload(ctx context.Context, header *multipart.FileHeader, businessID, userID string, caption *string) (*Photo, error)
	Get(ctx context.Context, id string) (*Photo, error)
	ListByBusiness(ctx context.Context, businessID string) ([]*Photo, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
	log     zerolog.Logger
}

func NewService(repo Repository, store storage.Storage, log zerolog.Logger) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
		log:     log,
	}
}

func (s *service) Upload(ctx context.Context, header *multipart.FileHeader, businessID, userID string, caption *string) (*Photo, error) {
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Buffer the whole upload: it is read twice (original + thumbnail) and
	// photos are small enough to hold in memory.
	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	photoID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))

	// Sharded path: photos/ab/UUID.ext keeps directories small.
	shard := photoID[:2]
	storagePath := fmt.Sprintf("photos/%s/%s%s", shard, photoID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("failed to save photo to storage: %w", err)
	}

	var thumbnailPath *string
	thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), 200, 200)
	if err != nil {
		// A broken thumbnail never blocks the upload.
		s.log.Warn().Err(err).Str("photo_id", photoID).Msg("thumbnail generation failed")
	} else {
		tPath := fmt.Sprintf("photos/%s/%s_thumb.jpg", shard, photoID)
		if err := s.storage.Save(ctx, tPath, thumbReader); err != nil {
			s.log.Warn().Err(err).Str("photo_id", photoID).Msg("saving thumbnail failed")
		} else {
			thumbnailPath = &tPath
		}
	}

	p := &Photo{
		ID:            photoID,
		BusinessID:    businessID,
		UploadedBy:    userID,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          header.Size,
		Caption:       caption,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		// Clean up orphaned blobs when the metadata insert fails.
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return p, nil
}

func (s *service) Get(ctx context.Context, id string) (*Photo, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByBusiness(ctx context.Context, businessID string) ([]*Photo, error) {
	return s.repo.ListByBusiness(ctx, businessID)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, p.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve photo from storage: %w", err)
	}
	return stream, p, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if p.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.storage.Get(ctx, *p.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail from storage: %w", err)
	}
	return stream, p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Best-effort blob cleanup; the metadata row is the source of truth.
	if err := s.storage.Delete(ctx, p.StoragePath); err != nil {
		s.log.Warn().Err(err).Str("photo_id", id).Msg("deleting photo blob failed")
	}
	if p.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *p.ThumbnailPath)
	}

	return s.repo.Delete(ctx, id)
}
