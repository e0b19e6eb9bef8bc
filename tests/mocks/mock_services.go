package mocks

import (
	"context"
	"encoding/json"

	"github.com/linklytics/linklytics/internal/domain"
	"github.com/linklytics/linklytics/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockResolverService struct {
	mock.Mock
}

func (m *MockResolverService) Shorten(ctx context.Context, userID int64, req *domain.CreateLinkRequest) (*domain.Link, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockResolverService) Resolve(ctx context.Context, slug string, visitor service.Visitor) (string, error) {
	args := m.Called(ctx, slug, visitor)
	return args.String(0), args.Error(1)
}

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) LinkAnalytics(ctx context.Context, slug string) (json.RawMessage, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockAnalyticsService) TopicAnalytics(ctx context.Context, topic domain.Topic) (json.RawMessage, error) {
	args := m.Called(ctx, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockAnalyticsService) OverallAnalytics(ctx context.Context, userID int64) (json.RawMessage, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
