package repository

import (
	"context"
	"time"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/model"
)

// NotificationRepository persists notifications.
type NotificationRepository interface {
	// ExistsForDay reports whether the recipient already has a notification for the
	// entity on the given calendar day.
	ExistsForDay(ctx context.Context, userID, entityType, entityID string, day time.Time) (bool, error)

	// Create inserts a notification. It returns false without error when the
	// (user, entity, day) unique index already holds a row.
	Create(ctx context.Context, n *model.Notification) (bool, error)

	// ListByUser returns a user's notifications, newest first.
	ListByUser(ctx context.Context, userID string, unreadOnly bool, pq PageQuery) (*PageResult[model.Notification], error)

	// MarkRead flags a notification as read. It returns false if no row matched.
	MarkRead(ctx context.Context, id, userID string) (bool, error)
}
