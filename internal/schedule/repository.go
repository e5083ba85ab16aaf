package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines storage access for operating hours rules.
type Repository interface {
	Create(ctx context.Context, rule *Rule) error
	GetByID(ctx context.Context, id string) (*Rule, error)
	ListByBusiness(ctx context.Context, businessID string) ([]*Rule, error)
	Update(ctx context.Context, rule *Rule) error
	Delete(ctx context.Context, id string) error

	// FindForDate resolves the applicable rule for a local calendar date:
	// a specific-date rule wins over the day-of-week rule. Returns
	// (nil, nil) when no rule exists, which callers treat as closed.
	FindForDate(ctx context.Context, businessID, dateStr string, dayOfWeek int) (*Rule, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a Repository implementation backed by pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const ruleColumns = "id, business_id, day_of_week, specific_date, opens_at, closes_at, closed, created_at"

func scanRule(row pgx.Row) (*Rule, error) {
	var r Rule
	err := row.Scan(
		&r.ID, &r.BusinessID, &r.DayOfWeek, &r.SpecificDate,
		&r.OpensAt, &r.ClosesAt, &r.Closed, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *pgxRepository) Create(ctx context.Context, rule *Rule) error {
	query, args, err := psql.Insert("operating_hours_rules").
		Columns("business_id", "day_of_week", "specific_date", "opens_at", "closes_at", "closed").
		Values(rule.BusinessID, rule.DayOfWeek, rule.SpecificDate, rule.OpensAt, rule.ClosesAt, rule.Closed).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create rule query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rule.ID, &rule.CreatedAt); err != nil {
		return fmt.Errorf("create rule failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Rule, error) {
	query, args, err := psql.Select(ruleColumns).
		From("operating_hours_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get rule query failed: %w", err)
	}

	rule, err := scanRule(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get rule failed: %w", err)
	}
	return rule, nil
}

func (r *pgxRepository) ListByBusiness(ctx context.Context, businessID string) ([]*Rule, error) {
	query, args, err := psql.Select(ruleColumns).
		From("operating_hours_rules").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("specific_date NULLS FIRST", "day_of_week").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rules query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rules failed: %w", err)
	}
	defer rows.Close()

	var rules []*Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rule failed: %w", err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (r *pgxRepository) Update(ctx context.Context, rule *Rule) error {
	query, args, err := psql.Update("operating_hours_rules").
		Set("opens_at", rule.OpensAt).
		Set("closes_at", rule.ClosesAt).
		Set("closed", rule.Closed).
		Where(squirrel.Eq{"id": rule.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update rule query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update rule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("operating_hours_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete rule query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete rule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) FindForDate(ctx context.Context, businessID, dateStr string, dayOfWeek int) (*Rule, error) {
	// Specific-date rules sort before day-of-week rules, so LIMIT 1 picks
	// the override when both exist.
	query, args, err := psql.Select(ruleColumns).
		From("operating_hours_rules").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Or{
			squirrel.Eq{"specific_date": dateStr},
			squirrel.Eq{"day_of_week": dayOfWeek},
		}).
		OrderBy("specific_date NULLS LAST").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find rule query failed: %w", err)
	}

	rule, err := scanRule(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find rule failed: %w", err)
	}
	return rule, nil
}
