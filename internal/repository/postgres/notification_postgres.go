package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/model"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/repository"
)

// dateLayout formats calendar days for DATE parameters.
const dateLayout = "2006-01-02"

// NotificationPostgres is the PostgreSQL store for notifications.
type NotificationPostgres struct {
	db *sql.DB
}

// NewNotificationPostgres creates a new NotificationPostgres repository.
func NewNotificationPostgres(db *sql.DB) *NotificationPostgres {
	return &NotificationPostgres{db: db}
}

var _ repository.NotificationRepository = (*NotificationPostgres)(nil)

// ExistsForDay checks for a notification on the same calendar day.
func (r *NotificationPostgres) ExistsForDay(ctx context.Context, userID, entityType, entityID string, day time.Time) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3 AND created_on = $4
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, userID, entityType, entityID, day.Format(dateLayout)).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts the notification unless the per-day unique index already holds one.
func (r *NotificationPostgres) Create(ctx context.Context, n *model.Notification) (bool, error) {
	const q = `
		INSERT INTO notifications (id, user_id, title, message, category, entity_type, entity_id, is_read, created_at, created_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, entity_type, entity_id, created_on) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, q,
		n.ID,
		n.UserID,
		n.Title,
		n.Message,
		n.Category,
		n.EntityType,
		n.EntityID,
		n.Read,
		n.CreatedAt,
		n.CreatedOn.Format(dateLayout),
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ListByUser returns notifications using LIMIT/OFFSET pagination and a total count.
func (r *NotificationPostgres) ListByUser(ctx context.Context, userID string, unreadOnly bool, pq repository.PageQuery) (*repository.PageResult[model.Notification], error) {
	const qCount = `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND (NOT $2 OR is_read = false)`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, userID, unreadOnly).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, user_id, title, message, category, entity_type, entity_id, is_read, created_at
		FROM notifications
		WHERE user_id = $1 AND (NOT $2 OR is_read = false)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.QueryContext(ctx, qList, userID, unreadOnly, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Title,
			&n.Message,
			&n.Category,
			&n.EntityType,
			&n.EntityID,
			&n.Read,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Notification]{
		Items: items,
		Total: total,
	}, nil
}

// MarkRead sets is_read on a notification belonging to userID.
func (r *NotificationPostgres) MarkRead(ctx context.Context, id, userID string) (bool, error) {
	const q = `UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
