package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"newsrag/internal/domain"
)

const providerName = "vector_index"

// Storage is a minimal read-only REST client to a Qdrant collection.
type Storage struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

// Config configures the Qdrant client. A zero Timeout keeps the HTTP client default.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// NewStorage creates a client for cfg.Collection on the Qdrant server at cfg.URL.
func NewStorage(cfg Config) (*Storage, error) {
	if cfg.URL == "" {
		return nil, domain.NewConfigError("vector_store.qdrant.url", "is empty")
	}
	if cfg.Collection == "" {
		return nil, domain.NewConfigError("vector_store.collection", "is empty")
	}
	return &Storage{
		url:        strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Name returns the identifier of this index implementation.
func (s *Storage) Name() string { return "qdrant" }

type searchRequest struct {
	Vector      []float32 `json:"vector"`
	Limit       int       `json:"limit"`
	WithPayload bool      `json:"with_payload"`
}

type searchResponse struct {
	Result []struct {
		Score   float64        `json:"score"`
		Payload map[string]any `json:"payload"`
	} `json:"result"`
}

// Search returns up to limit hits in the order Qdrant ranked them.
func (s *Storage) Search(ctx context.Context, vector []float32, limit int) ([]domain.SearchHit, error) {
	if limit <= 0 {
		return nil, domain.NewProviderError(providerName, "search", errors.New("limit must be at least 1"))
	}
	req := searchRequest{Vector: vector, Limit: limit, WithPayload: true}
	var resp searchResponse
	path := fmt.Sprintf("/collections/%s/points/search", url.PathEscape(s.collection))
	if err := s.postJSON(ctx, path, req, &resp); err != nil {
		return nil, domain.NewProviderError(providerName, "search", err)
	}
	hits := make([]domain.SearchHit, 0, len(resp.Result))
	for _, r := range resp.Result {
		hits = append(hits, domain.HitFromPayload(r.Score, r.Payload))
	}
	return hits, nil
}

func (s *Storage) postJSON(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("qdrant POST %s failed: %s: %s", path, resp.Status, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode qdrant response: %w", err)
	}
	return nil
}
