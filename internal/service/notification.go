package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/model"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/repository"
)

var (
	ErrUserRequired         = errors.New("user id is required")
	ErrNotificationNotFound = errors.New("notification not found")
)

const (
	defaultNotificationLimit = 20
	maxNotificationLimit     = 100
)

// NotificationListResult is the service-level DTO for paginated notifications.
type NotificationListResult struct {
	Items []model.Notification `json:"data"`
	Total int                  `json:"total"`
}

// NotificationService exposes a user's in-app notifications.
type NotificationService interface {
	// List returns the user's notifications, newest first.
	List(ctx context.Context, userID string, unreadOnly bool, limit, offset int) (*NotificationListResult, error)

	// MarkRead flags one of the user's notifications as read.
	MarkRead(ctx context.Context, userID, id string) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService constructs a new NotificationService.
func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func validateUser(userID string) error {
	if userID == "" {
		return ErrUserRequired
	}
	if _, err := uuid.Parse(userID); err != nil {
		return ErrInvalidID
	}
	return nil
}

func (s *notificationService) List(ctx context.Context, userID string, unreadOnly bool, limit, offset int) (*NotificationListResult, error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.ListByUser(ctx, userID, unreadOnly, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &NotificationListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id string) error {
	if err := validateUser(userID); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}
	ok, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}
