package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists photo metadata.
type Repository interface {
	Create(ctx context.Context, p *Photo) error
	GetByID(ctx context.Context, id string) (*Photo, error)
	ListByBusiness(ctx context.Context, businessID string) ([]*Photo, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a Repository implementation backed by pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const photoColumns = "id, business_id, uploaded_by, filename, storage_path, thumbnail_path, content_type, size, caption, created_at"

func (r *pgxRepository) Create(ctx context.Context, p *Photo) error {
	query, args, err := psql.Insert("photos").
		Columns("id", "business_id", "uploaded_by", "filename", "storage_path", "thumbnail_path", "content_type", "size", "caption").
		Values(p.ID, p.BusinessID, p.UploadedBy, p.Filename, p.StoragePath, p.ThumbnailPath, p.ContentType, p.Size, p.Caption).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create photo query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&p.CreatedAt); err != nil {
		return fmt.Errorf("create photo failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Photo, error) {
	query, args, err := psql.Select(photoColumns).
		From("photos").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get photo query failed: %w", err)
	}

	var p Photo
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.BusinessID, &p.UploadedBy, &p.Filename, &p.StoragePath, &p.ThumbnailPath,
		&p.ContentType, &p.Size, &p.Caption, &p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get photo failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) ListByBusiness(ctx context.Context, businessID string) ([]*Photo, error) {
	query, args, err := psql.Select(photoColumns).
		From("photos").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list photos query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list photos failed: %w", err)
	}
	defer rows.Close()

	var photos []*Photo
	for rows.Next() {
		var p Photo
		if err := rows.Scan(
			&p.ID, &p.BusinessID, &p.UploadedBy, &p.Filename, &p.StoragePath, &p.ThumbnailPath,
			&p.ContentType, &p.Size, &p.Caption, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan photo failed: %w", err)
		}
		photos = append(photos, &p)
	}

	return photos, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("photos").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete photo query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete photo failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
