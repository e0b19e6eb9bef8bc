package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/linklytics/linklytics/internal/domain"
	"github.com/linklytics/linklytics/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetLinkAnalytics_Success(t *testing.T) {
	mockService := new(mocks.MockAnalyticsService)
	h := NewAnalyticsHandler(mockService)
	router := setupTestRouter()
	router.GET("/api/analytics/:shortId", h.GetLinkAnalytics)

	payload := json.RawMessage(`{"totalClicks":5,"uniqueClicks":2,"clicksByDate":[],"osType":[],"deviceType":[]}`)
	mockService.On("LinkAnalytics", mock.Anything, "abc1234").Return(payload, nil).Once()

	req := httptest.NewRequest("GET", "/api/analytics/abc1234", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, string(payload), w.Body.String(), "memoized payload must be served byte for byte")
	mockService.AssertExpectations(t)
}

func TestGetLinkAnalytics_NotFound(t *testing.T) {
	mockService := new(mocks.MockAnalyticsService)
	h := NewAnalyticsHandler(mockService)
	router := setupTestRouter()
	router.GET("/api/analytics/:shortId", h.GetLinkAnalytics)

	mockService.On("LinkAnalytics", mock.Anything, "nope").Return(nil, domain.ErrNotFound).Once()

	req := httptest.NewRequest("GET", "/api/analytics/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "URL not found", response["message"])
}

func TestGetLinkAnalytics_ServiceError(t *testing.T) {
	mockService := new(mocks.MockAnalyticsService)
	h := NewAnalyticsHandler(mockService)
	router := setupTestRouter()
	router.GET("/api/analytics/:shortId", h.GetLinkAnalytics)

	mockService.On("LinkAnalytics", mock.Anything, "abc1234").
		Return(nil, errors.New("connection timeout")).Once()

	req := httptest.NewRequest("GET", "/api/analytics/abc1234", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetTopicAnalytics_Success(t *testing.T) {
	mockService := new(mocks.MockAnalyticsService)
	h := NewAnalyticsHandler(mockService)
	router := setupTestRouter()
	router.GET("/api/analytics/topic/:topic", h.GetTopicAnalytics)

	payload := json.RawMessage(`{"totalClicks":3,"uniqueClicks":1,"clicksByDate":[],"osType":[],"deviceType":[],"urls":[]}`)
	mockService.On("TopicAnalytics", mock.Anything, domain.TopicAcquisition).Return(payload, nil).Once()

	req := httptest.NewRequest("GET", "/api/analytics/topic/acquisition", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(payload), w.Body.String())
}

func TestGetTopicAnalytics_NotFound(t *testing.T) {
	mockService := new(mocks.MockAnalyticsService)
	h := NewAnalyticsHandler(mockService)
	router := setupTestRouter()
	router.GET("/api/analytics/topic/:topic", h.GetTopicAnalytics)

	mockService.On("TopicAnalytics", mock.Anything, domain.TopicRetention).
		Return(nil, domain.ErrNotFound).Once()

	req := httptest.NewRequest("GET", "/api/analytics/topic/retention", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "No URLs found for the specified topic", response["message"])
}

func TestGetOverallAnalytics_Unauthenticated(t *testing.T) {
	mockService := new(mocks.MockAnalyticsService)
	h := NewAnalyticsHandler(mockService)
	router := setupTestRouter()
	router.GET("/api/analytics/overall", h.GetOverallAnalytics)

	req := httptest.NewRequest("GET", "/api/analytics/overall", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "OverallAnalytics")
}

func TestGetOverallAnalytics_Success(t *testing.T) {
	mockService := new(mocks.MockAnalyticsService)
	h := NewAnalyticsHandler(mockService)
	router := setupTestRouter()
	router.GET("/api/analytics/overall", asUser(42), h.GetOverallAnalytics)

	payload := json.RawMessage(`{"totalClicks":10,"uniqueClicks":4,"clicksByDate":[],"osType":[],"deviceType":[]}`)
	mockService.On("OverallAnalytics", mock.Anything, int64(42)).Return(payload, nil).Once()

	req := httptest.NewRequest("GET", "/api/analytics/overall", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(payload), w.Body.String())

	mockService.AssertExpectations(t)
}

func TestGetOverallAnalytics_NoLinks(t *testing.T) {
	mockService := new(mocks.MockAnalyticsService)
	h := NewAnalyticsHandler(mockService)
	router := setupTestRouter()
	router.GET("/api/analytics/overall", asUser(42), h.GetOverallAnalytics)

	mockService.On("OverallAnalytics", mock.Anything, int64(42)).
		Return(nil, domain.ErrNotFound).Once()

	req := httptest.NewRequest("GET", "/api/analytics/overall", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "No URLs found for this user", response["message"])
}
