package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ElasticGateway implements Gateway with the official Elasticsearch client.
type ElasticGateway struct {
	client *elasticsearch.Client
	debug  bool
}

// ElasticConfig holds connection settings for the Elasticsearch client.
type ElasticConfig struct {
	Addresses []string
	Username  string
	Password  string
	Transport http.RoundTripper
	Debug     bool
}

// NewElasticGateway creates a gateway backed by a fresh client.
func NewElasticGateway(cfg ElasticConfig) (*ElasticGateway, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	return &ElasticGateway{client: client, debug: cfg.Debug}, nil
}

// getResponse is the subset of a document GET response we read.
type getResponse struct {
	Found  bool            `json:"found"`
	Source json.RawMessage `json:"_source"`
}

// searchResponse is the subset of a search response we read.
type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// errorResponse is the engine's error envelope.
type errorResponse struct {
	Error struct {
		Type      string `json:"type"`
		Reason    string `json:"reason"`
		RootCause []struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"root_cause"`
	} `json:"error"`
}

// GetByID fetches a single document by id.
func (g *ElasticGateway) GetByID(ctx context.Context, index, id string) ([]json.RawMessage, error) {
	res, err := g.client.Get(index, id, g.client.Get.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch get %s/%s: %w", index, id, err)
	}
	defer res.Body.Close()

	// Covers both a missing document and a missing index.
	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if res.IsError() {
		return nil, decodeError(res)
	}

	var doc getResponse
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("elasticsearch get %s/%s: decode response: %w", index, id, err)
	}
	if !doc.Found || len(doc.Source) == 0 {
		return nil, nil
	}

	return []json.RawMessage{doc.Source}, nil
}

// Search runs a multi-field free-text query.
func (g *ElasticGateway) Search(ctx context.Context, index, query string, w Window) ([]json.RawMessage, error) {
	return g.search(ctx, index, MultiMatchQuery(query, w))
}

// SearchField runs a single-field query.
func (g *ElasticGateway) SearchField(ctx context.Context, index, field, query string, w Window) ([]json.RawMessage, error) {
	return g.search(ctx, index, FieldQuery(field, query, w))
}

// Ping checks that the cluster answers.
func (g *ElasticGateway) Ping(ctx context.Context) error {
	res, err := g.client.Ping(g.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return decodeError(res)
	}
	return nil
}

func (g *ElasticGateway) search(ctx context.Context, index string, body map[string]any) ([]json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode search body: %w", err)
	}

	if g.debug {
		log.Printf("[ElasticGateway] search index=%s body=%s", index, payload)
	}

	res, err := g.client.Search(
		g.client.Search.WithContext(ctx),
		g.client.Search.WithIndex(index),
		g.client.Search.WithBody(bytes.NewReader(payload)),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, decodeError(res)
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("elasticsearch search %s: decode response: %w", index, err)
	}

	docs := make([]json.RawMessage, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		docs = append(docs, hit.Source)
	}
	return docs, nil
}

// decodeError turns an error response into a *ResponseError. The root cause
// is preferred since it names the failing clause.
func decodeError(res *esapi.Response) error {
	respErr := &ResponseError{StatusCode: res.StatusCode}

	data, err := io.ReadAll(res.Body)
	if err != nil || len(data) == 0 {
		return respErr
	}

	var parsed errorResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		respErr.Reason = string(data)
		return respErr
	}

	respErr.Type = parsed.Error.Type
	respErr.Reason = parsed.Error.Reason
	if len(parsed.Error.RootCause) > 0 {
		respErr.Type = parsed.Error.RootCause[0].Type
		respErr.Reason = parsed.Error.RootCause[0].Reason
	}
	return respErr
}
