package table

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines storage access for tables and combinations.
type Repository interface {
	Create(ctx context.Context, t *Table) error
	GetByID(ctx context.Context, id string) (*Table, error)
	List(ctx context.Context, filter Filter) ([]*Table, int, error)
	Update(ctx context.Context, t *Table) error
	Delete(ctx context.Context, id string) error

	// ListAssignable returns active auto-assign tables of a business,
	// ordered by priority then capacity.
	ListAssignable(ctx context.Context, businessID string) ([]*Table, error)

	CreateCombination(ctx context.Context, c *Combination) error
	GetCombination(ctx context.Context, id string) (*Combination, error)
	ListCombinations(ctx context.Context, businessID string) ([]*Combination, error)
	DeleteCombination(ctx context.Context, id string) error

	// ListCombinationsForParty returns combinations that can seat the
	// party, smallest total capacity first, with member tables populated.
	ListCombinationsForParty(ctx context.Context, businessID string, partySize int) ([]*Combination, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a Repository implementation backed by pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const tableColumns = "id, business_id, name, capacity, min_capacity, zone, priority, auto_assign, is_active, created_at"

func scanTable(row pgx.Row) (*Table, error) {
	var t Table
	err := row.Scan(
		&t.ID, &t.BusinessID, &t.Name, &t.Capacity, &t.MinCapacity,
		&t.Zone, &t.Priority, &t.AutoAssign, &t.IsActive, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *pgxRepository) Create(ctx context.Context, t *Table) error {
	query, args, err := psql.Insert("tables").
		Columns("business_id", "name", "capacity", "min_capacity", "zone", "priority", "auto_assign", "is_active").
		Values(t.BusinessID, t.Name, t.Capacity, t.MinCapacity, t.Zone, t.Priority, t.AutoAssign, t.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create table query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&t.ID, &t.CreatedAt); err != nil {
		return fmt.Errorf("create table failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Table, error) {
	query, args, err := psql.Select(tableColumns).
		From("tables").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get table query failed: %w", err)
	}

	t, err := scanTable(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get table failed: %w", err)
	}
	return t, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Table, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := psql.Select(tableColumns, "count(*) OVER() AS total_count").
		From("tables").
		Where(squirrel.Eq{"business_id": filter.BusinessID})

	if filter.Zone != "" {
		query = query.Where(squirrel.Eq{"zone": filter.Zone})
	}
	if filter.OnlyActive {
		query = query.Where(squirrel.Eq{"is_active": true})
	}

	sql, args, err := query.
		OrderBy("priority ASC", "capacity ASC", "name ASC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list tables query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tables failed: %w", err)
	}
	defer rows.Close()

	var tables []*Table
	var total int

	for rows.Next() {
		var t Table
		if err := rows.Scan(
			&t.ID, &t.BusinessID, &t.Name, &t.Capacity, &t.MinCapacity,
			&t.Zone, &t.Priority, &t.AutoAssign, &t.IsActive, &t.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan table failed: %w", err)
		}
		tables = append(tables, &t)
	}

	return tables, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, t *Table) error {
	query, args, err := psql.Update("tables").
		Set("name", t.Name).
		Set("capacity", t.Capacity).
		Set("min_capacity", t.MinCapacity).
		Set("zone", t.Zone).
		Set("priority", t.Priority).
		Set("auto_assign", t.AutoAssign).
		Set("is_active", t.IsActive).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update table query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update table failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete soft-deletes by flipping is_active.
func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Update("tables").
		Set("is_active", false).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete table query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete table failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListAssignable(ctx context.Context, businessID string) ([]*Table, error) {
	query, args, err := psql.Select(tableColumns).
		From("tables").
		Where(squirrel.Eq{
			"business_id": businessID,
			"is_active":   true,
			"auto_assign": true,
		}).
		OrderBy("priority ASC", "capacity ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list assignable tables query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assignable tables failed: %w", err)
	}
	defer rows.Close()

	var tables []*Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("scan table failed: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func (r *pgxRepository) CreateCombination(ctx context.Context, c *Combination) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create combination failed: %w", err)
	}
	defer tx.Rollback(ctx)

	query, args, err := psql.Insert("table_combinations").
		Columns("business_id", "name", "total_capacity", "min_capacity").
		Values(c.BusinessID, c.Name, c.TotalCapacity, c.MinCapacity).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create combination query failed: %w", err)
	}
	if err := tx.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("create combination failed: %w", err)
	}

	insert := psql.Insert("combination_members").Columns("combination_id", "table_id")
	for _, tableID := range c.TableIDs {
		insert = insert.Values(c.ID, tableID)
	}
	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("build create combination members query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create combination members failed: %w", err)
	}

	return tx.Commit(ctx)
}

const combinationColumns = "c.id, c.business_id, c.name, c.total_capacity, c.min_capacity, c.created_at"

func (r *pgxRepository) GetCombination(ctx context.Context, id string) (*Combination, error) {
	combos, err := r.queryCombinations(ctx, squirrel.Eq{"c.id": id})
	if err != nil {
		return nil, err
	}
	if len(combos) == 0 {
		return nil, ErrCombinationNotFound
	}
	return combos[0], nil
}

func (r *pgxRepository) ListCombinations(ctx context.Context, businessID string) ([]*Combination, error) {
	return r.queryCombinations(ctx, squirrel.Eq{"c.business_id": businessID})
}

func (r *pgxRepository) ListCombinationsForParty(ctx context.Context, businessID string, partySize int) ([]*Combination, error) {
	return r.queryCombinations(ctx, squirrel.And{
		squirrel.Eq{"c.business_id": businessID},
		squirrel.LtOrEq{"c.min_capacity": partySize},
		squirrel.GtOrEq{"c.total_capacity": partySize},
	})
}

// queryCombinations fetches combinations matching pred with member tables
// populated, ordered by total capacity ascending.
func (r *pgxRepository) queryCombinations(ctx context.Context, pred squirrel.Sqlizer) ([]*Combination, error) {
	query, args, err := psql.Select(combinationColumns).
		From("table_combinations c").
		Where(pred).
		OrderBy("c.total_capacity ASC", "c.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list combinations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list combinations failed: %w", err)
	}
	defer rows.Close()

	var combos []*Combination
	byID := make(map[string]*Combination)

	for rows.Next() {
		var c Combination
		if err := rows.Scan(&c.ID, &c.BusinessID, &c.Name, &c.TotalCapacity, &c.MinCapacity, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan combination failed: %w", err)
		}
		combos = append(combos, &c)
		byID[c.ID] = &c
	}
	rows.Close()

	if len(combos) == 0 {
		return combos, nil
	}

	ids := make([]string, len(combos))
	for i, c := range combos {
		ids[i] = c.ID
	}

	query, args, err = psql.Select("m.combination_id", tablePrefixedColumns()).
		From("combination_members m").
		Join("tables t ON t.id = m.table_id").
		Where(squirrel.Eq{"m.combination_id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build combination members query failed: %w", err)
	}

	memberRows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list combination members failed: %w", err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var comboID string
		var t Table
		if err := memberRows.Scan(
			&comboID,
			&t.ID, &t.BusinessID, &t.Name, &t.Capacity, &t.MinCapacity,
			&t.Zone, &t.Priority, &t.AutoAssign, &t.IsActive, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan combination member failed: %w", err)
		}
		combo := byID[comboID]
		combo.Tables = append(combo.Tables, &t)
		combo.TableIDs = append(combo.TableIDs, t.ID)
	}

	return combos, nil
}

func tablePrefixedColumns() string {
	return "t.id, t.business_id, t.name, t.capacity, t.min_capacity, t.zone, t.priority, t.auto_assign, t.is_active, t.created_at"
}

func (r *pgxRepository) DeleteCombination(ctx context.Context, id string) error {
	query, args, err := psql.Delete("table_combinations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete combination query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete combination failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrCombinationNotFound
	}
	return nil
}
