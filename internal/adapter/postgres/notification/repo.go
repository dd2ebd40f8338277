// Package notification implements the notification repository using PostgreSQL.
package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/workdeskhq/workdesk-backend/internal/adapter/postgres"
	"github.com/workdeskhq/workdesk-backend/internal/domain"
)

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new notification repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const notificationColumns = `id, employee_id, type, title, message, created_by, created_at, read_at`

const createSQL = `
INSERT INTO notifications (id, employee_id, type, title, message, created_by, created_at, read_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + notificationColumns

const listByEmployeeSQL = `
SELECT ` + notificationColumns + `
FROM notifications
WHERE employee_id = $1
ORDER BY created_at DESC`

const countUnreadSQL = `
SELECT count(*) FROM notifications
WHERE employee_id = $1 AND read_at IS NULL`

// markReadSQL only touches unread rows owned by the employee, so a repeated
// mark leaves read_at at its first value.
const markReadSQL = `
UPDATE notifications
SET read_at = $3
WHERE id = $1 AND employee_id = $2 AND read_at IS NULL`

const existsForEmployeeSQL = `
SELECT EXISTS(SELECT 1 FROM notifications WHERE id = $1 AND employee_id = $2)`

// Create inserts a new notification and returns the persisted domain.Notification.
func (r *Repo) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		n.ID,
		n.EmployeeID,
		string(n.Type),
		n.Title,
		n.Message,
		n.CreatedBy,
		n.CreatedAt,
		n.ReadAt,
	)

	created, err := scanNotification(row)
	if err != nil {
		return nil, mapError(err, "notification", n.ID)
	}

	return created, nil
}

// ListByEmployee returns all notifications for an employee,
// ordered by created_at DESC. Returns an empty slice if there are none.
func (r *Repo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Notification, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByEmployeeSQL, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list notifications by employee: %w", err)
	}
	defer rows.Close()

	var ns []*domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		ns = append(ns, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}

	if ns == nil {
		ns = []*domain.Notification{}
	}

	return ns, nil
}

// CountUnread returns the number of unread notifications for an employee.
func (r *Repo) CountUnread(ctx context.Context, employeeID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countUnreadSQL, employeeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}

	return count, nil
}

// MarkRead stamps readAt on an unread notification owned by the employee.
// Marking an already-read notification is a no-op that keeps the original
// read time. Returns domain.ErrNotFound if the notification does not exist
// or belongs to another employee.
func (r *Repo) MarkRead(ctx context.Context, id, employeeID uuid.UUID, readAt time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markReadSQL, id, employeeID, readAt)
	if err != nil {
		return mapError(err, "notification", id)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// 0 rows: either already read (fine) or not visible to this employee.
	var exists bool
	if err := querier.QueryRow(ctx, existsForEmployeeSQL, id, employeeID).Scan(&exists); err != nil {
		return fmt.Errorf("notification %s: check existence: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var (
		n   domain.Notification
		typ string
	)

	err := row.Scan(
		&n.ID,
		&n.EmployeeID,
		&typ,
		&n.Title,
		&n.Message,
		&n.CreatedBy,
		&n.CreatedAt,
		&n.ReadAt,
	)
	if err != nil {
		return nil, err
	}

	n.Type = domain.NotificationType(typ)
	return &n, nil
}

func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
