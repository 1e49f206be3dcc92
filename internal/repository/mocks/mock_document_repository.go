package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/model"
)

type MockDocumentRepository struct {
	mock.Mock

	// RowErrors are handed to the onRowError callback of ListAlertCandidates.
	RowErrors []error
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id string) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListByEmployee(ctx context.Context, employeeID string) ([]model.Document, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

// ListAlertCandidates reports every error in RowErrors to onRowError before returning.
func (m *MockDocumentRepository) ListAlertCandidates(ctx context.Context, until time.Time, onRowError func(error)) ([]model.AlertCandidate, error) {
	args := m.Called(ctx, until)
	if onRowError != nil {
		for _, err := range m.RowErrors {
			onRowError(err)
		}
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AlertCandidate), args.Error(1)
}
