package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	v1routes "github.com/Lorak9904/RhetorAI/internal/api/v1/routes"
	"github.com/Lorak9904/RhetorAI/internal/app/metrics"
	"github.com/Lorak9904/RhetorAI/internal/app/testutil"
)

func newTestServer(t *testing.T) (*Server, *testutil.MockServices, *metrics.Metrics) {
	gin.SetMode(gin.TestMode)
	mocks := testutil.NewMockServices(t)
	m := metrics.New("test")

	container := &v1routes.ServiceContainer{
		FeedbackService: mocks.FeedbackService,
		SpeechService:   mocks.SpeechService,
		StatsService:    m,
		ProviderService: mocks.ProviderService,
		MaxUploadMB:     5,
	}
	srv := NewServer(Config{Host: "127.0.0.1", Port: "0", Environment: "test", Version: "test"}, container, m, zap.NewNop())
	return srv, mocks, m
}

func TestServer_BuiltinRoutes(t *testing.T) {
	srv, _, _ := newTestServer(t)

	tests := []struct {
		name         string
		path         string
		expectedBody string
	}{
		{name: "health", path: "/health", expectedBody: "healthy"},
		{name: "index", path: "/", expectedBody: "/api/v1/chat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestServer_RecordsHTTPMetrics(t *testing.T) {
	srv, _, _ := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `test_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestServer_HidesUnexpectedErrors(t *testing.T) {
	srv, mocks, _ := newTestServer(t)
	mocks.FeedbackService.On("Analyze", mock.Anything, "hello").Return(nil, assert.AnError)

	body, _ := json.Marshal(map[string]string{"text": "hello"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Internal server error", resp["message"])
	assert.NotEmpty(t, resp["request_id"])
	mocks.AssertExpectations(t)
}

func TestServer_StatsReflectMetrics(t *testing.T) {
	srv, _, m := newTestServer(t)
	m.RecordSuccess("generator", "mistral", 0)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["total_requests"])
}
