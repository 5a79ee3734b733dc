package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func decodeReady(t *testing.T, rec *httptest.ResponseRecorder) ReadyResponse {
	t.Helper()

	var env struct {
		Data ReadyResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env.Data
}

func TestHealth(t *testing.T) {
	h := New("movies-search-api", "1.2.3")

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version":"1.2.3"`)
}

func TestReady_AllUp(t *testing.T) {
	ok := pingerFunc(func(context.Context) error { return nil })
	h := New("svc", "1", Dependency{Name: "cache", Pinger: ok}, Dependency{Name: "elasticsearch", Pinger: ok})

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeReady(t, rec)
	assert.True(t, resp.Ready)
	assert.Len(t, resp.Checks, 3)
}

func TestReady_DependencyDown(t *testing.T) {
	ok := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("dial tcp: refused") })
	h := New("svc", "1", Dependency{Name: "cache", Pinger: ok}, Dependency{Name: "elasticsearch", Pinger: down})

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeReady(t, rec)
	assert.False(t, resp.Ready)
	assert.Equal(t, Check{Name: "elasticsearch", Status: "unavailable", Error: "dial tcp: refused"}, resp.Checks[2])
}

func TestStatus(t *testing.T) {
	h := New("movies-search-api", "1")

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store, no-cache, must-revalidate", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), `"service":"movies-search-api"`)
}
