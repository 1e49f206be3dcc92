package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/model"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/repository"
)

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) ExistsForDay(ctx context.Context, userID, entityType, entityID string, day time.Time) (bool, error) {
	args := m.Called(ctx, userID, entityType, entityID, day)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *model.Notification) (bool, error) {
	args := m.Called(ctx, n)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool, pq repository.PageQuery) (*repository.PageResult[model.Notification], error) {
	args := m.Called(ctx, userID, unreadOnly, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Notification]), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, userID string) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}
