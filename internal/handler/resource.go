package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"movies-search-api/internal/middleware"
	"movies-search-api/internal/service"
	"movies-search-api/pkg/apierror"
	"movies-search-api/pkg/response"
	"movies-search-api/pkg/uid"

	"github.com/go-chi/chi/v5"
)

// Pagination defaults.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// Finder is the read surface of a resource service.
type Finder[T any] interface {
	GetByID(ctx context.Context, id string) (*T, error)
	Search(ctx context.Context, query string, page, size int) ([]T, error)
	SearchByField(ctx context.Context, field, query string, page, size int) ([]T, error)
}

// ResourceHandler serves lookups for one catalog resource.
type ResourceHandler[T any] struct {
	finder   Finder[T]
	singular string
	plural   string
}

// NewResourceHandler creates a handler. singular and plural name the
// resource in client-facing messages, e.g. "Film" and "Films".
func NewResourceHandler[T any](finder Finder[T], singular, plural string) *ResourceHandler[T] {
	return &ResourceHandler[T]{
		finder:   finder,
		singular: singular,
		plural:   plural,
	}
}

// Routes mounts the resource endpoints.
func (h *ResourceHandler[T]) Routes(r chi.Router) {
	r.Get("/search", h.Search)
	r.Get("/search/", h.Search)
	r.Get("/search_field", h.SearchByField)
	r.Get("/search_field/", h.SearchByField)
	r.Get("/{id}", h.Get)
}

// Get handles GET /api/v1/{resource}/{id}
func (h *ResourceHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !uid.IsValid(id) {
		response.Error(w, apierror.ValidationError("invalid id",
			apierror.FieldError{Field: "id", Message: "must be a UUID"}))
		return
	}

	item, err := h.finder.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if item == nil {
		response.Error(w, apierror.NotFound(h.singular+" not found"))
		return
	}

	response.OK(w, item)
}

// Search handles GET /api/v1/{resource}/search/?query=&page=&size=
func (h *ResourceHandler[T]) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		response.Error(w, apierror.BadRequest("Query string is required"))
		return
	}

	page, size, apiErr := parsePagination(r)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	items, err := h.finder.Search(r.Context(), query, page, size)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if len(items) == 0 {
		response.Error(w, apierror.NotFound(h.plural+" not found"))
		return
	}

	response.Page(w, items, page, size, len(items))
}

// SearchByField handles GET /api/v1/{resource}/search_field/?field_search=&query=&page=&size=
func (h *ResourceHandler[T]) SearchByField(w http.ResponseWriter, r *http.Request) {
	field := strings.TrimSpace(r.URL.Query().Get("field_search"))
	if field == "" {
		response.Error(w, apierror.BadRequest("Field search is required"))
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		response.Error(w, apierror.BadRequest("Query string is required"))
		return
	}

	page, size, apiErr := parsePagination(r)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	items, err := h.finder.SearchByField(r.Context(), field, query, page, size)
	if errors.Is(err, service.ErrInvalidFieldName) {
		response.Error(w, apierror.InvalidField(field))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if len(items) == 0 {
		response.Error(w, apierror.NotFound("No "+strings.ToLower(h.plural)+" found matching the query"))
		return
	}

	response.Page(w, items, page, size, len(items))
}

// fail logs an unexpected error and answers 500.
func (h *ResourceHandler[T]) fail(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("[%sHandler] request_id=%s %s %s: %v",
		h.singular, middleware.GetRequestID(r.Context()), r.Method, r.URL.Path, err)
	response.Error(w, err)
}

// parsePagination reads page and size, applying defaults when absent.
func parsePagination(r *http.Request) (int, int, *apierror.Error) {
	var details []apierror.FieldError

	page, ok := intParam(r, "page", DefaultPageNumber)
	if !ok || page < 1 {
		details = append(details, apierror.FieldError{Field: "page", Message: "must be an integer >= 1"})
	}

	size, ok := intParam(r, "size", DefaultPageSize)
	if !ok || size < 1 || size > MaxPageSize {
		details = append(details, apierror.FieldError{
			Field:   "size",
			Message: "must be an integer between 1 and " + strconv.Itoa(MaxPageSize),
		})
	}

	if len(details) > 0 {
		return 0, 0, apierror.ValidationError("invalid pagination", details...)
	}
	return page, size, nil
}

func intParam(r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
