package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"movies-search-api/internal/model"
	"movies-search-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matrixID = "3d825f60-9fff-4dfe-b294-1a45fa1e115d"

type searchArgs struct {
	Field string
	Query string
	Page  int
	Size  int
}

type fakeFinder struct {
	film  *model.Film
	films []model.Film
	err   error
	last  searchArgs
}

func (f *fakeFinder) GetByID(ctx context.Context, id string) (*model.Film, error) {
	return f.film, f.err
}

func (f *fakeFinder) Search(ctx context.Context, query string, page, size int) ([]model.Film, error) {
	f.last = searchArgs{Query: query, Page: page, Size: size}
	return f.films, f.err
}

func (f *fakeFinder) SearchByField(ctx context.Context, field, query string, page, size int) ([]model.Film, error) {
	f.last = searchArgs{Field: field, Query: query, Page: page, Size: size}
	return f.films, f.err
}

func newTestServer(t *testing.T, finder *fakeFinder) *httptest.Server {
	t.Helper()

	prev := log.Writer()
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(prev) })

	r := chi.NewRouter()
	r.Route("/movies", NewResourceHandler[model.Film](finder, "Film", "Films").Routes)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Page  int `json:"page"`
		Size  int `json:"size"`
		Count int `json:"count"`
	} `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func get(t *testing.T, srv *httptest.Server, path string) (int, envelope) {
	t.Helper()

	res, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	return res.StatusCode, env
}

func matrix() model.Film {
	return model.Film{ID: uuid.MustParse(matrixID), Title: "The Matrix"}
}

func TestResourceHandler_Get(t *testing.T) {
	film := matrix()
	srv := newTestServer(t, &fakeFinder{film: &film})

	status, env := get(t, srv, "/movies/"+matrixID)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	var got model.Film
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, film, got)
}

func TestResourceHandler_GetNotFound(t *testing.T) {
	srv := newTestServer(t, &fakeFinder{})

	status, env := get(t, srv, "/movies/"+matrixID)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Film not found", env.Error.Message)
}

func TestResourceHandler_GetInvalidID(t *testing.T) {
	srv := newTestServer(t, &fakeFinder{})

	status, env := get(t, srv, "/movies/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestResourceHandler_Search(t *testing.T) {
	finder := &fakeFinder{films: []model.Film{matrix()}}
	srv := newTestServer(t, finder)

	status, env := get(t, srv, "/movies/search/?query=matrix&page=3&size=5")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, searchArgs{Query: "matrix", Page: 3, Size: 5}, finder.last)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 3, env.Meta.Page)
	assert.Equal(t, 5, env.Meta.Size)
	assert.Equal(t, 1, env.Meta.Count)
}

func TestResourceHandler_SearchDefaults(t *testing.T) {
	finder := &fakeFinder{films: []model.Film{matrix()}}
	srv := newTestServer(t, finder)

	status, _ := get(t, srv, "/movies/search?query=matrix")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, searchArgs{Query: "matrix", Page: DefaultPageNumber, Size: DefaultPageSize}, finder.last)
}

func TestResourceHandler_SearchValidation(t *testing.T) {
	srv := newTestServer(t, &fakeFinder{films: []model.Film{matrix()}})

	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing query", "/movies/search/", "BAD_REQUEST"},
		{"blank query", "/movies/search/?query=%20%20", "BAD_REQUEST"},
		{"page zero", "/movies/search/?query=x&page=0", "VALIDATION_ERROR"},
		{"negative size", "/movies/search/?query=x&size=-1", "VALIDATION_ERROR"},
		{"size too large", "/movies/search/?query=x&size=101", "VALIDATION_ERROR"},
		{"non numeric page", "/movies/search/?query=x&page=abc", "VALIDATION_ERROR"},
		{"missing field", "/movies/search_field/?query=x", "BAD_REQUEST"},
		{"field without query", "/movies/search_field/?field_search=title", "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := get(t, srv, tt.path)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestResourceHandler_SearchEmpty(t *testing.T) {
	srv := newTestServer(t, &fakeFinder{films: []model.Film{}})

	status, env := get(t, srv, "/movies/search/?query=nothing")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Films not found", env.Error.Message)

	status, env = get(t, srv, "/movies/search_field/?field_search=title&query=nothing")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No films found matching the query", env.Error.Message)
}

func TestResourceHandler_SearchByField(t *testing.T) {
	finder := &fakeFinder{films: []model.Film{matrix()}}
	srv := newTestServer(t, finder)

	status, _ := get(t, srv, "/movies/search_field/?field_search=actors.name&query=keanu&size=20")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, searchArgs{Field: "actors.name", Query: "keanu", Page: 1, Size: 20}, finder.last)
}

func TestResourceHandler_InvalidField(t *testing.T) {
	finder := &fakeFinder{err: fmt.Errorf("%w %q: no fuzzy support", service.ErrInvalidFieldName, "unknown_field")}
	srv := newTestServer(t, finder)

	status, env := get(t, srv, "/movies/search_field/?field_search=unknown_field&query=x")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_FIELD", env.Error.Code)
}

func TestResourceHandler_BackendFailure(t *testing.T) {
	srv := newTestServer(t, &fakeFinder{err: errors.New("redis: connection refused")})

	for _, path := range []string{
		"/movies/" + matrixID,
		"/movies/search/?query=x",
		"/movies/search_field/?field_search=title&query=x",
	} {
		status, env := get(t, srv, path)
		assert.Equal(t, http.StatusInternalServerError, status, path)
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code, path)
	}
}
