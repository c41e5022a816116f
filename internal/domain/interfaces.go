package domain

import "context"

// UntitledPlaceholder is shown for hits whose payload has no title.
const UntitledPlaceholder = "Untitled"

// SearchHit is one ranked chunk returned by the vector index.
type SearchHit struct {
	Score float64
	Title string
	URL   string
	Chunk string
}

// Result is the outcome of one question/answer cycle.
type Result struct {
	Query  string
	Answer string
	Hits   []SearchHit
}

// HitFromPayload builds a SearchHit from a raw index payload, substituting
// defaults for missing or non-string keys.
func HitFromPayload(score float64, payload map[string]any) SearchHit {
	hit := SearchHit{Score: score, Title: UntitledPlaceholder}
	if v, ok := payload["title"].(string); ok {
		hit.Title = v
	}
	if v, ok := payload["url"].(string); ok {
		hit.URL = v
	}
	if v, ok := payload["chunk"].(string); ok {
		hit.Chunk = v
	}
	return hit
}

// HitFromMetadata is HitFromPayload for stores that keep string metadata and
// the chunk text as the document content.
func HitFromMetadata(score float64, metadata map[string]string, content string) SearchHit {
	hit := SearchHit{Score: score, Title: UntitledPlaceholder, Chunk: content}
	if v, ok := metadata["title"]; ok {
		hit.Title = v
	}
	if v, ok := metadata["url"]; ok {
		hit.URL = v
	}
	if hit.Chunk == "" {
		hit.Chunk = metadata["chunk"]
	}
	return hit
}

// Embedder converts free text into a numeric vector representation.
type Embedder interface {
	Name() string
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex runs nearest-neighbour search over a pre-populated collection.
// Hits come back in the index's own relevance order.
type VectorIndex interface {
	Name() string
	Search(ctx context.Context, vector []float32, limit int) ([]SearchHit, error)
}

// ChatCompleter produces a single completion for a one-message prompt.
type ChatCompleter interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// Previewer condenses a chunk into a short teaser for collapsed views.
type Previewer interface {
	Preview(text string) string
}

// RAGService defines the operations exposed by the application core.
type RAGService interface {
	Answer(ctx context.Context, query string) (Result, error)
}
