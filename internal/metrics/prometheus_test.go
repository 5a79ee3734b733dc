package metrics

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func scrape(t *testing.T, p *Prometheus) string {
	t.Helper()

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	return rec.Body.String()
}

func TestPrometheus_CacheLookup(t *testing.T) {
	p := NewPrometheus("test")

	p.CacheLookup("movies", "search", false)
	p.CacheLookup("movies", "search", true)
	p.CacheLookup("movies", "search", true)

	body := scrape(t, p)
	assert.Contains(t, body, `test_cache_lookups_total{index="movies",op="search",result="hit"} 2`)
	assert.Contains(t, body, `test_cache_lookups_total{index="movies",op="search",result="miss"} 1`)
}

func TestPrometheus_SearchRequest(t *testing.T) {
	p := NewPrometheus("test")

	p.SearchRequest("genres", "get", 10*time.Millisecond, nil)
	p.SearchRequest("genres", "get", 20*time.Millisecond, errors.New("down"))

	body := scrape(t, p)
	assert.Contains(t, body, `test_search_requests_total{index="genres",op="get",status="ok"} 1`)
	assert.Contains(t, body, `test_search_requests_total{index="genres",op="get",status="error"} 1`)
	assert.Contains(t, body, `test_search_request_duration_seconds_count{index="genres",op="get"} 2`)
}

func TestPrometheus_IncludesRuntimeCollectors(t *testing.T) {
	body := scrape(t, NewPrometheus("test"))
	assert.Contains(t, body, "go_goroutines")
}
