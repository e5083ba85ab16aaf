package business

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines storage access for businesses and their members.
type Repository interface {
	Create(ctx context.Context, b *Business) error
	GetByID(ctx context.Context, id string) (*Business, error)
	List(ctx context.Context, filter Filter) ([]*Business, int, error)
	Update(ctx context.Context, b *Business) error
	Delete(ctx context.Context, id string) error

	GetMember(ctx context.Context, businessID, userID string) (*Member, error)
	AddMember(ctx context.Context, businessID, userID, role string) error
	RemoveMember(ctx context.Context, businessID, userID string) error
	ListMembers(ctx context.Context, businessID string) ([]*Member, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a Repository implementation backed by pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const businessColumns = "id, name, timezone, locale, max_capacity, zone_fill_order, is_active, created_at"

func scanBusiness(row pgx.Row) (*Business, error) {
	var b Business
	err := row.Scan(
		&b.ID, &b.Name, &b.Timezone, &b.Locale,
		&b.MaxCapacity, &b.ZoneFillOrder, &b.IsActive, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan business failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Business) error {
	query, args, err := psql.Insert("businesses").
		Columns("name", "timezone", "locale", "max_capacity", "zone_fill_order", "is_active").
		Values(b.Name, b.Timezone, b.Locale, b.MaxCapacity, b.ZoneFillOrder, b.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create business query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("create business failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Business, error) {
	query, args, err := psql.Select(businessColumns).
		From("businesses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get business query failed: %w", err)
	}

	return scanBusiness(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Business, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query, args, err := psql.Select(businessColumns, "count(*) OVER() AS total_count").
		From("businesses").
		OrderBy("created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list businesses query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list businesses failed: %w", err)
	}
	defer rows.Close()

	var businesses []*Business
	var total int

	for rows.Next() {
		var b Business
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Timezone, &b.Locale,
			&b.MaxCapacity, &b.ZoneFillOrder, &b.IsActive, &b.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan business failed: %w", err)
		}
		businesses = append(businesses, &b)
	}

	return businesses, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Business) error {
	query, args, err := psql.Update("businesses").
		Set("name", b.Name).
		Set("timezone", b.Timezone).
		Set("locale", b.Locale).
		Set("max_capacity", b.MaxCapacity).
		Set("zone_fill_order", b.ZoneFillOrder).
		Set("is_active", b.IsActive).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update business query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update business failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	// Soft delete: bookings and history stay queryable.
	query, args, err := psql.Update("businesses").
		Set("is_active", false).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete business query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete business failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) GetMember(ctx context.Context, businessID, userID string) (*Member, error) {
	query, args, err := psql.Select("m.user_id", "u.email", "u.display_name", "m.role").
		From("business_members m").
		Join("users u ON m.user_id = u.id").
		Where(squirrel.Eq{"m.business_id": businessID, "m.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get member query failed: %w", err)
	}

	var m Member
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&m.UserID, &m.Email, &m.DisplayName, &m.Role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("get member failed: %w", err)
	}
	return &m, nil
}

func (r *pgxRepository) AddMember(ctx context.Context, businessID, userID, role string) error {
	query, args, err := psql.Insert("business_members").
		Columns("business_id", "user_id", "role").
		Values(businessID, userID, role).
		ToSql()
	if err != nil {
		return fmt.Errorf("build add member query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrUserAlreadyMember
		}
		return fmt.Errorf("add member failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) RemoveMember(ctx context.Context, businessID, userID string) error {
	query, args, err := psql.Delete("business_members").
		Where(squirrel.Eq{"business_id": businessID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build remove member query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("remove member failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *pgxRepository) ListMembers(ctx context.Context, businessID string) ([]*Member, error) {
	query, args, err := psql.Select("m.user_id", "u.email", "u.display_name", "m.role").
		From("business_members m").
		Join("users u ON m.user_id = u.id").
		Where(squirrel.Eq{"m.business_id": businessID}).
		OrderBy("m.role", "u.email").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list members query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list members failed: %w", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.UserID, &m.Email, &m.DisplayName, &m.Role); err != nil {
			return nil, fmt.Errorf("scan member failed: %w", err)
		}
		members = append(members, &m)
	}
	return members, nil
}
