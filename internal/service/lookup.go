package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"movies-search-api/internal/cache"
	"movies-search-api/internal/search"
)

// Operation kinds. They are part of the cache key and label metrics.
const (
	OpGetByID     = "get"
	OpSearch      = "search"
	OpSearchField = "search_field"
)

// ErrInvalidFieldName is returned when the engine refuses to query a field.
var ErrInvalidFieldName = errors.New("invalid field name")

// Observer receives cache and search outcomes.
type Observer interface {
	CacheLookup(index, op string, hit bool)
	SearchRequest(index, op string, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) CacheLookup(string, string, bool) {}
func (nopObserver) SearchRequest(string, string, time.Duration, error) {}

// Resource binds an index to the decoder for its documents.
type Resource[T any] struct {
	Index  string
	Decode func(raw json.RawMessage) (T, error)
}

// Dependencies are the shared handles every lookup borrows.
type Dependencies struct {
	Cache   cache.Store
	Gateway search.Gateway

	// TTL applies to populated entries; zero uses the store default.
	TTL time.Duration
	// NegativeTTL caches empty results for this long. Zero disables it.
	NegativeTTL time.Duration

	Observer Observer
	Debug    bool
}

// Lookup serves one resource cache-aside: the store is consulted first and
// the gateway only on a miss, after which non-empty results are stored.
type Lookup[T any] struct {
	resource    Resource[T]
	cache       cache.Store
	gateway     search.Gateway
	ttl         time.Duration
	negativeTTL time.Duration
	observer    Observer
	debug       bool
}

// NewLookup creates a lookup for the given resource.
func NewLookup[T any](res Resource[T], deps Dependencies) *Lookup[T] {
	observer := deps.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	return &Lookup[T]{
		resource:    res,
		cache:       deps.Cache,
		gateway:     deps.Gateway,
		ttl:         deps.TTL,
		negativeTTL: deps.NegativeTTL,
		observer:    observer,
		debug:       deps.Debug,
	}
}

// Index returns the index this lookup reads from.
func (l *Lookup[T]) Index() string {
	return l.resource.Index
}

// GetByID returns the entity with the given id, or nil if there is none.
func (l *Lookup[T]) GetByID(ctx context.Context, id string) (*T, error) {
	key := cache.Key(l.resource.Index, id)

	items, err := l.fetch(ctx, key, OpGetByID, func(ctx context.Context) ([]json.RawMessage, error) {
		return l.gateway.GetByID(ctx, l.resource.Index, id)
	})
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}

// Search runs a free-text query over all fields.
func (l *Lookup[T]) Search(ctx context.Context, query string, page, size int) ([]T, error) {
	key := cache.Key(l.resource.Index, OpSearch, query, page, size)
	window := search.NewWindow(page, size)

	return l.fetch(ctx, key, OpSearch, func(ctx context.Context) ([]json.RawMessage, error) {
		return l.gateway.Search(ctx, l.resource.Index, query, window)
	})
}

// SearchByField runs a query against a single field. A field the engine
// cannot query yields ErrInvalidFieldName.
func (l *Lookup[T]) SearchByField(ctx context.Context, field, query string, page, size int) ([]T, error) {
	key := cache.Key(l.resource.Index, OpSearchField, field, query, page, size)
	window := search.NewWindow(page, size)

	items, err := l.fetch(ctx, key, OpSearchField, func(ctx context.Context) ([]json.RawMessage, error) {
		return l.gateway.SearchField(ctx, l.resource.Index, field, query, window)
	})

	var respErr *search.ResponseError
	if errors.As(err, &respErr) && respErr.IsBadRequest() {
		return nil, fmt.Errorf("%w %q: %s", ErrInvalidFieldName, field, respErr.Reason)
	}
	return items, err
}

func (l *Lookup[T]) fetch(ctx context.Context, key, op string, load func(context.Context) ([]json.RawMessage, error)) ([]T, error) {
	items, hit, err := l.fromCache(ctx, key)
	if err != nil {
		return nil, err
	}
	l.observer.CacheLookup(l.resource.Index, op, hit)
	if hit {
		if l.debug {
			log.Printf("[Lookup] cache hit key=%s items=%d", key, len(items))
		}
		return items, nil
	}

	start := time.Now()
	docs, err := load(ctx)
	l.observer.SearchRequest(l.resource.Index, op, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	items, err = l.decodeAll(docs)
	if err != nil {
		return nil, err
	}

	ttl := l.ttl
	if len(items) == 0 {
		if l.negativeTTL <= 0 {
			return items, nil
		}
		ttl = l.negativeTTL
	}

	if err := l.toCache(ctx, key, items, ttl); err != nil {
		return nil, err
	}

	if l.debug {
		log.Printf("[Lookup] cache fill key=%s items=%d ttl=%v", key, len(items), ttl)
	}
	return items, nil
}

// fromCache reports a hit only when the store returned bytes.
func (l *Lookup[T]) fromCache(ctx context.Context, key string) ([]T, bool, error) {
	data, err := l.cache.Get(ctx, key)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(data) == 0 {
		return nil, false, nil
	}

	var docs []json.RawMessage
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, false, fmt.Errorf("decode cached %s: %w", key, err)
	}

	items, err := l.decodeAll(docs)
	if err != nil {
		return nil, false, err
	}
	return items, true, nil
}

// toCache stores the whole sequence, so single results share the list format.
func (l *Lookup[T]) toCache(ctx context.Context, key string, items []T, ttl time.Duration) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return l.cache.Set(ctx, key, data, ttl)
}

func (l *Lookup[T]) decodeAll(docs []json.RawMessage) ([]T, error) {
	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		item, err := l.resource.Decode(doc)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
