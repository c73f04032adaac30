package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"church-calendar/internal/handler"
	"church-calendar/internal/service"
	mockservices "church-calendar/test/internal/mocks/services"

	apperrors "church-calendar/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupSyncTestRouter(mockService *mockservices.SyncServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	syncHandler := handler.NewSyncHandler(mockService)
	syncHandler.RegisterRoutes(router)

	return router
}

func TestTriggerAsana(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mockservices.NewSyncServiceMock()
		router := setupSyncTestRouter(mockService)

		summary := &service.SyncSummary{Fetched: 5, Inserted: 2, Updated: 1, Skipped: 2}
		mockService.On("SyncAsana", mock.Anything).Return(summary, nil).Once()

		req, _ := http.NewRequest("GET", "/trigger-asana", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Status  string               `json:"status"`
			Summary *service.SyncSummary `json:"summary"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp.Status)
		assert.Equal(t, 2, resp.Summary.Inserted)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - UpstreamError", func(t *testing.T) {
		mockService := mockservices.NewSyncServiceMock()
		router := setupSyncTestRouter(mockService)

		mockService.On("SyncAsana", mock.Anything).Return(nil, assert.AnError).Once()

		req, _ := http.NewRequest("GET", "/trigger-asana", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestImportICS(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mockservices.NewSyncServiceMock()
		router := setupSyncTestRouter(mockService)

		summary := &service.SyncSummary{Fetched: 3, Inserted: 3}
		mockService.On("ImportICS", mock.Anything, "https://feeds.example.org/parish.ics").
			Return(summary, nil).Once()

		req, _ := http.NewRequest("GET", "/import_ics?url=https%3A%2F%2Ffeeds.example.org%2Fparish.ics", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("PostAlsoAccepted", func(t *testing.T) {
		mockService := mockservices.NewSyncServiceMock()
		router := setupSyncTestRouter(mockService)

		summary := &service.SyncSummary{}
		mockService.On("ImportICS", mock.Anything, "https://feeds.example.org/parish.ics").
			Return(summary, nil).Once()

		req, _ := http.NewRequest("POST", "/import_ics?url=https%3A%2F%2Ffeeds.example.org%2Fparish.ics", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - MissingURL", func(t *testing.T) {
		mockService := mockservices.NewSyncServiceMock()
		router := setupSyncTestRouter(mockService)

		mockService.On("ImportICS", mock.Anything, "").Return(nil, apperrors.ErrInvalidInput).Once()

		req, _ := http.NewRequest("GET", "/import_ics", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - FeedUnreachable", func(t *testing.T) {
		mockService := mockservices.NewSyncServiceMock()
		router := setupSyncTestRouter(mockService)

		mockService.On("ImportICS", mock.Anything, "https://feeds.example.org/dead.ics").
			Return(nil, assert.AnError).Once()

		req, _ := http.NewRequest("GET", "/import_ics?url=https%3A%2F%2Ffeeds.example.org%2Fdead.ics", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestCompressImages(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mockservices.NewSyncServiceMock()
		router := setupSyncTestRouter(mockService)

		mockService.On("CompressImages", mock.Anything).Return(4, nil).Once()

		req, _ := http.NewRequest("GET", "/compress_images", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Status    string `json:"status"`
			Rewritten int    `json:"rewritten"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 4, resp.Rewritten)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - StorageError", func(t *testing.T) {
		mockService := mockservices.NewSyncServiceMock()
		router := setupSyncTestRouter(mockService)

		mockService.On("CompressImages", mock.Anything).Return(0, assert.AnError).Once()

		req, _ := http.NewRequest("GET", "/compress_images", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		mockService.AssertExpectations(t)
	})
}
