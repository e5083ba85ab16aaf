package booking

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines storage access for bookings.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Booking, error)
	GetByCode(ctx context.Context, code string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id, status string) error

	// ListActiveForDay returns pending/confirmed bookings of a business
	// whose interval overlaps [dayStart, dayEnd).
	ListActiveForDay(ctx context.Context, businessID string, dayStart, dayEnd time.Time) ([]*Booking, error)

	// ListActiveForTables returns active bookings occupying any of the
	// given tables, directly or through a combination, in the window.
	ListActiveForTables(ctx context.Context, tableIDs []string, dayStart, dayEnd time.Time) ([]*Booking, error)

	// CreateGuarded inserts the booking inside a transaction holding an
	// advisory lock on the (business, local day) pair. The slot capacity
	// and the assigned table are re-checked under the lock, so two
	// concurrent requests for the same slot serialize instead of both
	// passing the read-path availability check.
	CreateGuarded(ctx context.Context, b *Booking, maxCapacity int, dayKey string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a Repository implementation backed by pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const bookingColumns = "id, business_id, customer_id, table_id, combination_id, confirmation_code, " +
	"start_time, duration_minutes, party_size, status, notes, created_at, updated_at"

// endTimeExpr computes the booking end instant in SQL so overlap predicates
// stay in one place.
const endTimeExpr = "start_time + make_interval(mins => duration_minutes)"

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.BusinessID, &b.CustomerID, &b.TableID, &b.CombinationID, &b.ConfirmationCode,
		&b.StartTime, &b.DurationMinutes, &b.PartySize, &b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetByCode(ctx context.Context, code string) (*Booking, error) {
	return r.getBy(ctx, squirrel.Eq{"confirmation_code": code})
}

func (r *pgxRepository) getBy(ctx context.Context, pred squirrel.Sqlizer) (*Booking, error) {
	query, args, err := psql.Select(bookingColumns).
		From("bookings").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := psql.Select(bookingColumns, "count(*) OVER() AS total_count").
		From("bookings")

	if filter.BusinessID != "" {
		query = query.Where(squirrel.Eq{"business_id": filter.BusinessID})
	}
	if filter.CustomerID != "" {
		query = query.Where(squirrel.Eq{"customer_id": filter.CustomerID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	// Date range filtering (intersection logic)
	if filter.From != nil {
		query = query.Where(squirrel.Expr(endTimeExpr+" > ?", *filter.From))
	}
	if filter.To != nil {
		query = query.Where(squirrel.Lt{"start_time": *filter.To})
	}

	sql, args, err := query.
		OrderBy("start_time DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.BusinessID, &b.CustomerID, &b.TableID, &b.CombinationID, &b.ConfirmationCode,
			&b.StartTime, &b.DurationMinutes, &b.PartySize, &b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query, args, err := psql.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func activeOverlapPred(dayStart, dayEnd time.Time) squirrel.Sqlizer {
	return squirrel.And{
		squirrel.Eq{"status": []string{StatusPending, StatusConfirmed}},
		squirrel.Lt{"start_time": dayEnd},
		squirrel.Expr(endTimeExpr+" > ?", dayStart),
	}
}

func (r *pgxRepository) ListActiveForDay(ctx context.Context, businessID string, dayStart, dayEnd time.Time) ([]*Booking, error) {
	query, args, err := psql.Select(bookingColumns).
		From("bookings").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(activeOverlapPred(dayStart, dayEnd)).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list active bookings query failed: %w", err)
	}
	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) ListActiveForTables(ctx context.Context, tableIDs []string, dayStart, dayEnd time.Time) ([]*Booking, error) {
	if len(tableIDs) == 0 {
		return nil, nil
	}

	// A combination booking occupies every member table.
	query, args, err := psql.Select(bookingColumns).
		From("bookings").
		Where(squirrel.Or{
			squirrel.Eq{"table_id": tableIDs},
			squirrel.Expr(
				"combination_id IN (SELECT combination_id FROM combination_members WHERE table_id = ANY(?))",
				tableIDs,
			),
		}).
		Where(activeOverlapPred(dayStart, dayEnd)).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings for tables query failed: %w", err)
	}
	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) queryBookings(ctx context.Context, query string, args []any) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// slotLockKey derives the advisory lock key for a business's local day.
func slotLockKey(businessID, dayKey string) int64 {
	h := fnv.New64a()
	h.Write([]byte(businessID))
	h.Write([]byte{'|'})
	h.Write([]byte(dayKey))
	return int64(h.Sum64())
}

func (r *pgxRepository) CreateGuarded(ctx context.Context, b *Booking, maxCapacity int, dayKey string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize writers for this business-day. The lock is released at
	// commit/rollback.
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", slotLockKey(b.BusinessID, dayKey)); err != nil {
		return fmt.Errorf("acquire slot lock failed: %w", err)
	}

	iv := b.Interval()

	// Recount overlapping active bookings under the lock.
	countSQL, countArgs, err := psql.Select("count(*)").
		From("bookings").
		Where(squirrel.Eq{"business_id": b.BusinessID}).
		Where(activeOverlapPred(iv.Start, iv.End)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build recount query failed: %w", err)
	}

	var overlapping int
	if err := tx.QueryRow(ctx, countSQL, countArgs...).Scan(&overlapping); err != nil {
		return fmt.Errorf("recount overlapping bookings failed: %w", err)
	}
	if overlapping+1 > maxCapacity {
		return ErrSlotFull
	}

	// Re-check the assigned table (or combination members) is still free.
	if b.TableID != nil || b.CombinationID != nil {
		taken, err := r.tableTakenTx(ctx, tx, b, iv.Start, iv.End)
		if err != nil {
			return err
		}
		if taken {
			return ErrTableTaken
		}
	}

	insertSQL, insertArgs, err := psql.Insert("bookings").
		Columns("business_id", "customer_id", "table_id", "combination_id", "confirmation_code",
			"start_time", "duration_minutes", "party_size", "status", "notes").
		Values(b.BusinessID, b.CustomerID, b.TableID, b.CombinationID, b.ConfirmationCode,
			b.StartTime, b.DurationMinutes, b.PartySize, b.Status, b.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, insertSQL, insertArgs...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrCodeConflict
		}
		return fmt.Errorf("create booking failed: %w", err)
	}

	return tx.Commit(ctx)
}

// tableTakenTx checks, inside the guarded transaction, whether any table the
// booking needs is occupied by another active overlapping booking.
func (r *pgxRepository) tableTakenTx(ctx context.Context, tx pgx.Tx, b *Booking, start, end time.Time) (bool, error) {
	var neededTables squirrel.Sqlizer
	if b.TableID != nil {
		neededTables = squirrel.Expr("ARRAY[?::uuid]", *b.TableID)
	} else {
		neededTables = squirrel.Expr(
			"(SELECT array_agg(table_id) FROM combination_members WHERE combination_id = ?)",
			*b.CombinationID,
		)
	}

	neededSQL, neededArgs, err := neededTables.ToSql()
	if err != nil {
		return false, fmt.Errorf("build needed tables expr failed: %w", err)
	}

	subQuery := psql.Select("1").
		From("bookings").
		Where(squirrel.Or{
			squirrel.Expr("table_id = ANY("+neededSQL+")", neededArgs...),
			squirrel.Expr(
				"combination_id IN (SELECT combination_id FROM combination_members WHERE table_id = ANY("+neededSQL+"))",
				neededArgs...,
			),
		}).
		Where(activeOverlapPred(start, end))

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build table recheck query failed: %w", err)
	}

	var taken bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&taken); err != nil {
		return false, fmt.Errorf("table recheck failed: %w", err)
	}
	return taken, nil
}
