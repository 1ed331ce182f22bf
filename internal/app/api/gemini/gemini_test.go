package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
)

func newTestGenerator(t *testing.T, handler http.HandlerFunc) *Generator {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	g, err := NewGenerator(context.Background(), provider.Settings{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Options: map[string]interface{}{"temperature": 0.2},
	})
	require.NoError(t, err)
	return g
}

func TestGenerator_Generate(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/"+DefaultModel+":generateContent"), r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "contents")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"analysis\": \"ok\", \"score\": 70, \"tips\": []}"}]}}]}`))
	})

	reply, err := g.Generate(context.Background(), "Text: hello")
	require.NoError(t, err)
	assert.Equal(t, `{"analysis": "ok", "score": 70, "tips": []}`, reply)
}

func TestGenerator_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		code      string
		retryable bool
	}{
		{
			name:   "permission denied",
			status: http.StatusForbidden,
			body:   `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`,
			code:   provider.CodeAuthenticationFailed,
		},
		{
			name:      "resource exhausted",
			status:    http.StatusTooManyRequests,
			body:      `{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`,
			code:      provider.CodeRateLimitExceeded,
			retryable: true,
		},
		{
			name:      "empty candidates",
			status:    http.StatusOK,
			body:      `{"candidates":[]}`,
			code:      provider.CodeEmptyResponse,
			retryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := g.Generate(context.Background(), "hello")
			var genErr *provider.GenerationError
			require.ErrorAs(t, err, &genErr)
			assert.Equal(t, tt.code, genErr.Code)
			assert.Equal(t, tt.retryable, genErr.Retryable)
			assert.Equal(t, "gemini", genErr.Provider)
		})
	}
}

func TestRegisteredGemini(t *testing.T) {
	_, err := provider.NewGenerator("gemini", provider.Settings{})
	assert.Error(t, err)

	gen, err := provider.NewGenerator("gemini", provider.Settings{APIKey: "AIza-test", Model: "gemini-1.5-flash"})
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-flash", gen.GetProviderInfo().DefaultModel)
}
