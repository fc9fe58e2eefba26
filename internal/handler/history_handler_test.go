package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/podhaven/podhaven-backend/internal/common"
	"github.com/podhaven/podhaven-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockHistoryService is a mock implementation of service.HistoryService
type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) List(ownerID string, skip, take int) ([]domain.HistoryItemResponse, error) {
	args := m.Called(ownerID, skip, take)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryItemResponse), args.Error(1)
}

func (m *MockHistoryService) ListMetadata(ownerID string) ([]domain.HistoryItemMetadata, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryItemMetadata), args.Error(1)
}

func (m *MockHistoryService) AddOrUpdate(ownerID string, req *domain.AddHistoryItemRequest) error {
	args := m.Called(ownerID, req)
	return args.Error(0)
}

func (m *MockHistoryService) RemoveByKey(ownerID string, episodeID, mediaRefID string) error {
	args := m.Called(ownerID, episodeID, mediaRefID)
	return args.Error(0)
}

func (m *MockHistoryService) RemoveByEpisode(ownerID, episodeID string) error {
	args := m.Called(ownerID, episodeID)
	return args.Error(0)
}

func (m *MockHistoryService) RemoveByMediaRef(ownerID, mediaRefID string) error {
	args := m.Called(ownerID, mediaRefID)
	return args.Error(0)
}

func (m *MockHistoryService) RemoveAll(ownerID string) error {
	args := m.Called(ownerID)
	return args.Error(0)
}

func setupHistoryRouter(svc *MockHistoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Stand-in for JWTAuth: inject the caller identity directly
	router.Use(func(c *gin.Context) {
		c.Set("userID", "owner-1")
		c.Next()
	})

	h := NewHistoryHandler(svc)
	history := router.Group("/api/v1/user-history-item")
	history.GET("", h.List)
	history.GET("/metadata", h.ListMetadata)
	history.PATCH("", h.AddOrUpdate)
	history.DELETE("", h.Remove)
	history.DELETE("/episode/:episodeId", h.RemoveByEpisode)
	history.DELETE("/mediaRef/:mediaRefId", h.RemoveByMediaRef)
	history.DELETE("/remove-all", h.RemoveAll)
	return router
}

func TestHistoryList(t *testing.T) {
	svc := new(MockHistoryService)
	router := setupHistoryRouter(svc)

	position := 45
	items := []domain.HistoryItemResponse{
		{ID: "item-1", LastPlaybackPosition: &position, EpisodeID: "ep-1", EpisodeTitle: "Episode One", PodcastID: "pod-1", PodcastTitle: "The Show"},
	}
	svc.On("List", "owner-1", 10, 5).Return(items, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/user-history-item?skip=10&take=5", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp common.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.([]interface{})
	assert.True(t, ok)
	assert.Len(t, data, 1)
	svc.AssertExpectations(t)
}

func TestHistoryAddOrUpdate_Success(t *testing.T) {
	svc := new(MockHistoryService)
	router := setupHistoryRouter(svc)

	svc.On("AddOrUpdate", "owner-1", mock.MatchedBy(func(req *domain.AddHistoryItemRequest) bool {
		return req.EpisodeID != nil && *req.EpisodeID == "ep-1" &&
			req.LastPlaybackPosition != nil && *req.LastPlaybackPosition == 0 &&
			req.ForceUpdateOrderDate
	})).Return(nil)

	body := `{"episodeId":"ep-1","lastPlaybackPosition":0,"forceUpdateOrderDate":true}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/user-history-item", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHistoryAddOrUpdate_MissingPositionIsRejected(t *testing.T) {
	svc := new(MockHistoryService)
	router := setupHistoryRouter(svc)

	// lastPlaybackPosition is a required binding; the request never
	// reaches the service
	body := `{"episodeId":"ep-1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/user-history-item", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "AddOrUpdate", mock.Anything, mock.Anything)
}

func TestHistoryAddOrUpdate_InvalidInputMapsTo400(t *testing.T) {
	svc := new(MockHistoryService)
	router := setupHistoryRouter(svc)

	svc.On("AddOrUpdate", "owner-1", mock.Anything).Return(common.ErrInvalidInput)

	body := `{"episodeId":"ep-1","mediaRefId":"clip-1","lastPlaybackPosition":10}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/user-history-item", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistoryRemove_ByQueryKey(t *testing.T) {
	svc := new(MockHistoryService)
	router := setupHistoryRouter(svc)

	svc.On("RemoveByKey", "owner-1", "ep-1", "").Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/user-history-item?episodeId=ep-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}

func TestHistoryRemove_NotFoundMapsTo404(t *testing.T) {
	svc := new(MockHistoryService)
	router := setupHistoryRouter(svc)

	svc.On("RemoveByMediaRef", "owner-1", "clip-404").Return(common.ErrHistoryItemNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/user-history-item/mediaRef/clip-404", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHistoryRemoveByEpisode(t *testing.T) {
	svc := new(MockHistoryService)
	router := setupHistoryRouter(svc)

	svc.On("RemoveByEpisode", "owner-1", "ep-2").Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/user-history-item/episode/ep-2", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}

func TestHistoryRemoveAll(t *testing.T) {
	svc := new(MockHistoryService)
	router := setupHistoryRouter(svc)

	svc.On("RemoveAll", "owner-1").Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/user-history-item/remove-all", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}

func TestHistoryListMetadata(t *testing.T) {
	svc := new(MockHistoryService)
	router := setupHistoryRouter(svc)

	episodeID := "ep-1"
	meta := []domain.HistoryItemMetadata{{LastPlaybackPosition: 30, EpisodeID: &episodeID}}
	svc.On("ListMetadata", "owner-1").Return(meta, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/user-history-item/metadata", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
