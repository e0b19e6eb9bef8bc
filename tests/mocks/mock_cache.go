package mocks

import (
	"context"
	"time"

	"github.com/linklytics/linklytics/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetRedirect(ctx context.Context, slug string) (*domain.RedirectEntry, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RedirectEntry), args.Error(1)
}

func (m *MockCache) SetRedirect(ctx context.Context, slug string, entry *domain.RedirectEntry, ttl time.Duration) error {
	args := m.Called(ctx, slug, entry, ttl)
	return args.Error(0)
}

func (m *MockCache) GetReport(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) SetReport(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, payload, ttl)
	return args.Error(0)
}
