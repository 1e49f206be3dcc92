package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/model"
)

type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) ListAll(ctx context.Context) ([]model.ComplianceRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ComplianceRule), args.Error(1)
}

func (m *MockRuleRepository) ListApplicable(ctx context.Context, companyID string) ([]model.ComplianceRule, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ComplianceRule), args.Error(1)
}

type MockDependencyRepository struct {
	mock.Mock
}

func (m *MockDependencyRepository) List(ctx context.Context) ([]model.DependencyEdge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DependencyEdge), args.Error(1)
}
