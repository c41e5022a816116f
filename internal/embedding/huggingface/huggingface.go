package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tmc/langchaingo/embeddings"

	"newsrag/internal/domain"
)

const (
	providerName = "embedding"
	featureTask  = "feature-extraction"
)

// Client embeds text through the Hugging Face inference feature-extraction pipeline.
type Client struct {
	embedder *embeddings.EmbedderImpl
	model    string
}

// Config configures the Hugging Face embeddings client.
type Config struct {
	URL   string
	Token string
	Model string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// NewClient creates a new embeddings client using the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, domain.NewConfigError("embedder.huggingface.api_key_env", "resolved to an empty token")
	}
	if cfg.Model == "" {
		return nil, domain.NewConfigError("embedder.model", "is empty")
	}
	if cfg.URL == "" {
		return nil, domain.NewConfigError("embedder.huggingface.url", "is empty")
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	rc := &routerClient{
		endpoint: modelEndpoint(cfg.URL, cfg.Model),
		token:    cfg.Token,
		http:     hc,
	}
	// The query is embedded verbatim, so newlines are kept.
	emb, err := embeddings.NewEmbedder(rc, embeddings.WithStripNewLines(false))
	if err != nil {
		return nil, domain.NewConfigError("embedder.huggingface", err.Error())
	}
	return &Client{embedder: emb, model: cfg.Model}, nil
}

// Name returns the identifier of this embedder implementation.
func (c *Client) Name() string { return "huggingface" }

// Embed returns the feature-extraction vector for text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := c.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, domain.NewProviderError(providerName, "embed", err)
	}
	if len(vec) == 0 {
		return nil, domain.NewProviderError(providerName, "embed", errors.New("empty embedding"))
	}
	return vec, nil
}

// modelEndpoint is the router route for a model's feature-extraction pipeline:
// {base}/models/{model}/pipeline/feature-extraction.
func modelEndpoint(base, model string) string {
	return strings.TrimRight(base, "/") + "/models/" + model + "/pipeline/" + featureTask
}

// routerClient implements embeddings.EmbedderClient against the inference router.
type routerClient struct {
	endpoint string
	token    string
	http     *http.Client
}

type featureRequest struct {
	Inputs []string `json:"inputs"`
}

func (c *routerClient) CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	data, err := json.Marshal(featureRequest{Inputs: texts})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("feature-extraction failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	vecs, err := decodeVectors(body)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("feature-extraction returned %d vectors for %d inputs", len(vecs), len(texts))
	}
	return vecs, nil
}

// decodeVectors accepts one vector per input, or a bare vector for a single input.
func decodeVectors(body []byte) ([][]float32, error) {
	var batch [][]float32
	if err := json.Unmarshal(body, &batch); err == nil {
		return batch, nil
	}
	var single []float32
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, fmt.Errorf("decode feature-extraction response: %w", err)
	}
	return [][]float32{single}, nil
}
