package notify

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists the outbound notification log.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	UpdateStatus(ctx context.Context, id, status string) error
	ListByBooking(ctx context.Context, bookingID string) ([]*Notification, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a Repository implementation backed by pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const notificationColumns = "id, business_id, booking_id, channel, recipient, body, status, created_at"

func (r *pgxRepository) Create(ctx context.Context, n *Notification) error {
	query, args, err := psql.Insert("notifications").
		Columns("business_id", "booking_id", "channel", "recipient", "body", "status").
		Values(n.BusinessID, n.BookingID, n.Channel, n.Recipient, n.Body, n.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create notification query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n.ID, &n.CreatedAt); err != nil {
		return fmt.Errorf("create notification failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query, args, err := psql.Update("notifications").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update notification query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update notification failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListByBooking(ctx context.Context, bookingID string) ([]*Notification, error) {
	query, args, err := psql.Select(notificationColumns).
		From("notifications").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list notifications query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications failed: %w", err)
	}
	defer rows.Close()

	var notifications []*Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(
			&n.ID, &n.BusinessID, &n.BookingID, &n.Channel, &n.Recipient, &n.Body, &n.Status, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification failed: %w", err)
		}
		notifications = append(notifications, &n)
	}

	return notifications, nil
}
