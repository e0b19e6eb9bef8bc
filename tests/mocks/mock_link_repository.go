package mocks

import (
	"context"

	"github.com/linklytics/linklytics/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockLinkRepository struct {
	mock.Mock
}

func (m *MockLinkRepository) Create(ctx context.Context, link *domain.Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockLinkRepository) GetBySlug(ctx context.Context, slug string) (*domain.Link, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockLinkRepository) ListByTopic(ctx context.Context, topic domain.Topic) ([]domain.Link, error) {
	args := m.Called(ctx, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Link), args.Error(1)
}

func (m *MockLinkRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Link, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Link), args.Error(1)
}
