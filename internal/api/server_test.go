package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shohag/airegistry/internal/config"
	"github.com/shohag/airegistry/internal/models"
	"github.com/shohag/airegistry/internal/registry"
	"github.com/shohag/airegistry/internal/storage"
	"github.com/shohag/airegistry/internal/validation"
)

func newTestServer(t *testing.T, cfg config.ServerConfig) (*Server, *registry.Service) {
	t.Helper()
	store := registry.NewStore(storage.NewMemory(), "", zerolog.Nop())
	svc := registry.NewService(store, validation.New(), zerolog.Nop())
	_, err := svc.EnsureSeeded(context.Background())
	require.NoError(t, err)
	return NewServer(cfg, svc, zerolog.Nop()), svc
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"endpointId":      "foo",
		"method":          "GET",
		"description":     "Foo endpoint",
		"url":             "https://x.com",
		"promptExample":   "hello",
		"responseExample": `{"answer": "world"}`,
		"creator":         "Sam",
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{})

	rec := do(t, srv.Handler(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"airegistry"}`, rec.Body.String())
}

func TestListEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{})

	rec := do(t, srv.Handler(), http.MethodGet, "/api/v1/endpoints", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var eps []models.Endpoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &eps))
	require.Len(t, eps, 3)
	assert.Equal(t, "text-generation", eps[0].EndpointID)
}

func TestListEndpoints_EmptyIsArray(t *testing.T) {
	store := registry.NewStore(storage.NewMemory(), "", zerolog.Nop())
	svc := registry.NewService(store, validation.New(), zerolog.Nop())
	srv := NewServer(config.ServerConfig{}, svc, zerolog.Nop())

	rec := do(t, srv.Handler(), http.MethodGet, "/api/v1/endpoints", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateEndpoint(t *testing.T) {
	srv, svc := newTestServer(t, config.ServerConfig{})

	rec := do(t, srv.Handler(), http.MethodPost, "/api/v1/endpoints", validBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var ep models.Endpoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ep))
	assert.NotEmpty(t, ep.ID)
	assert.Equal(t, "foo", ep.EndpointID)
	assert.Equal(t, models.MethodGet, ep.Method)
	assert.WithinDuration(t, time.Now(), ep.CreatedAt, time.Minute)

	eps, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, eps, 4)
	assert.Equal(t, ep.ID, eps[3].ID)
}

func TestCreateEndpoint_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(b map[string]interface{})
		field   string
		message string
	}{
		{"missing endpoint id", func(b map[string]interface{}) { delete(b, "endpointId") }, "endpointId", validation.MsgEndpointIDRequired},
		{"bad url", func(b map[string]interface{}) { b["url"] = "x.com" }, "url", validation.MsgInvalidURL},
		{"bad method", func(b map[string]interface{}) { b["method"] = "TRACE" }, "method", validation.MsgMethodUnsupported},
		{"json flag defaults to true", func(b map[string]interface{}) { b["responseExample"] = "not json" }, "responseExample", validation.MsgInvalidJSON},
		{"bad test case", func(b map[string]interface{}) {
			b["testCases"] = []map[string]string{{"input": "x"}}
		}, "testCases[0].expectedOutput", validation.MsgExpectedOutputRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, svc := newTestServer(t, config.ServerConfig{})

			body := validBody()
			tt.mutate(body)

			rec := do(t, srv.Handler(), http.MethodPost, "/api/v1/endpoints", body)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "validation failed", resp.Error)
			assert.Equal(t, map[string]string{tt.field: tt.message}, resp.Fields)

			eps, err := svc.List(context.Background())
			require.NoError(t, err)
			assert.Len(t, eps, 3)
		})
	}
}

func TestCreateEndpoint_NonJSONResponseAllowed(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{})

	body := validBody()
	body["responseExample"] = "not json"
	body["isJsonResponse"] = false

	rec := do(t, srv.Handler(), http.MethodPost, "/api/v1/endpoints", body)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestCreateEndpoint_BadBody(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{})

	rec := do(t, srv.Handler(), http.MethodPost, "/api/v1/endpoints", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid request body"}`, rec.Body.String())
}

func TestValidateEndpoint(t *testing.T) {
	srv, svc := newTestServer(t, config.ServerConfig{})

	rec := do(t, srv.Handler(), http.MethodPost, "/api/v1/endpoints/validate", validBody())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid":true}`, rec.Body.String())

	body := validBody()
	body["creator"] = ""
	rec = do(t, srv.Handler(), http.MethodPost, "/api/v1/endpoints/validate", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	eps, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, eps, 3, "validate must not save")
}

func TestGetEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{})

	rec := do(t, srv.Handler(), http.MethodGet, "/api/v1/endpoints/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ep models.Endpoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ep))
	assert.Equal(t, "image-analysis", ep.EndpointID)

	rec = do(t, srv.Handler(), http.MethodGet, "/api/v1/endpoints/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteEndpoint(t *testing.T) {
	srv, svc := newTestServer(t, config.ServerConfig{})

	rec := do(t, srv.Handler(), http.MethodDelete, "/api/v1/endpoints/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, srv.Handler(), http.MethodDelete, "/api/v1/endpoints/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code, "deleting a missing id is a no-op")

	eps, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, eps, 2)
	for _, ep := range eps {
		assert.NotEqual(t, "1", ep.ID)
	}
}

func TestStats(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{})

	rec := do(t, srv.Handler(), http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":3,"by_method":{"GET":1,"POST":2,"PUT":0,"DELETE":0}}`, rec.Body.String())
}

func rateLimitedServer(t *testing.T, requests int) http.Handler {
	t.Helper()
	srv, _ := newTestServer(t, config.ServerConfig{
		RateLimit: config.RateLimitConfig{Enabled: true, Requests: requests, Window: time.Hour},
	})
	return srv.Handler()
}

func TestRateLimit(t *testing.T) {
	h := rateLimitedServer(t, 2)

	for i := 0; i < 2; i++ {
		rec := do(t, h, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
}

func TestRateLimit_PerClientAddress(t *testing.T) {
	h := rateLimitedServer(t, 1)

	send := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:5000"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:5001"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:5000"))
}

func TestRateLimit_IgnoresForwardedHeaders(t *testing.T) {
	h := rateLimitedServer(t, 1)

	allowed := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		req.Header.Set("X-Real-IP", fmt.Sprintf("198.51.100.%d", i+1))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			allowed++
		}
	}
	assert.Equal(t, 1, allowed)
}
