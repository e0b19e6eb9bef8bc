package mocks

import (
	"context"

	"github.com/linklytics/linklytics/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockVisitRepository struct {
	mock.Mock
}

func (m *MockVisitRepository) Record(ctx context.Context, visit *domain.Visit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *MockVisitRepository) ListByLink(ctx context.Context, linkID int64) ([]domain.Visit, error) {
	args := m.Called(ctx, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Visit), args.Error(1)
}

func (m *MockVisitRepository) ListByLinks(ctx context.Context, linkIDs []int64) ([]domain.Visit, error) {
	args := m.Called(ctx, linkIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Visit), args.Error(1)
}
