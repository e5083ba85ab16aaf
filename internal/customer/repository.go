package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines storage access for customers.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context, filter Filter) ([]*Customer, int, error)
	Update(ctx context.Context, c *Customer) error
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

const customerColumns = "id, business_id, name, email, phone, notes, created_at"

func (r *pgxRepository) Create(ctx context.Context, c *Customer) error {
	query, args, err := psql.Insert("customers").
		Columns("business_id", "name", "email", "phone", "notes").
		Values(c.BusinessID, c.Name, c.Email, c.Phone, c.Notes).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create customer query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("create customer failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Customer, error) {
	query, args, err := psql.Select(customerColumns).
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get customer query failed: %w", err)
	}

	var c Customer
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.BusinessID, &c.Name, &c.Email, &c.Phone, &c.Notes, &c.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get customer failed: %w", err)
	}
	return &c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Customer, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := psql.Select(customerColumns, "count(*) OVER() AS total_count").
		From("customers").
		Where(squirrel.Eq{"business_id": filter.BusinessID})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"email": pattern},
		})
	}

	sql, args, err := query.
		OrderBy("created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list customers query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers failed: %w", err)
	}
	defer rows.Close()

	var customers []*Customer
	var total int

	for rows.Next() {
		var c Customer
		if err := rows.Scan(
			&c.ID, &c.BusinessID, &c.Name, &c.Email, &c.Phone, &c.Notes, &c.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan customer failed: %w", err)
		}
		customers = append(customers, &c)
	}

	return customers, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, c *Customer) error {
	query, args, err := psql.Update("customers").
		Set("name", c.Name).
		Set("email", c.Email).
		Set("phone", c.Phone).
		Set("notes", c.Notes).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update customer query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update customer failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete customer query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete customer failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
