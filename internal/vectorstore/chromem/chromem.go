// Package chromem serves searches from a local chromem-go database that was
// populated ahead of time with the same embedding model as the query side.
package chromem

import (
	"context"
	"errors"
	"fmt"

	chromemgo "github.com/philippgille/chromem-go"

	"newsrag/internal/domain"
)

const providerName = "vector_index"

// Config points at a persistent chromem-go directory and the collection to query.
type Config struct {
	Path       string
	Compress   bool
	Collection string
}

// Storage is a read-only view of one chromem-go collection.
type Storage struct {
	collection *chromemgo.Collection
}

// Open loads the database at cfg.Path. The collection must already exist.
func Open(cfg Config) (*Storage, error) {
	if cfg.Path == "" {
		return nil, domain.NewConfigError("vector_store.chromem.path", "is empty")
	}
	db, err := chromemgo.NewPersistentDB(cfg.Path, cfg.Compress)
	if err != nil {
		return nil, domain.NewConfigError("vector_store.chromem.path", fmt.Sprintf("cannot be opened: %v", err))
	}
	col := db.GetCollection(cfg.Collection, nil)
	if col == nil {
		return nil, domain.NewConfigError("vector_store.collection", fmt.Sprintf("%q not found in %s", cfg.Collection, cfg.Path))
	}
	return &Storage{collection: col}, nil
}

// Name returns the identifier of this index implementation.
func (s *Storage) Name() string { return "chromem" }

// Search returns up to limit hits ranked by cosine similarity.
func (s *Storage) Search(ctx context.Context, vector []float32, limit int) ([]domain.SearchHit, error) {
	if limit <= 0 {
		return nil, domain.NewProviderError(providerName, "search", errors.New("limit must be at least 1"))
	}
	// chromem rejects nResults above the document count
	n := min(limit, s.collection.Count())
	if n == 0 {
		return []domain.SearchHit{}, nil
	}
	res, err := s.collection.QueryEmbedding(ctx, vector, n, nil, nil)
	if err != nil {
		return nil, domain.NewProviderError(providerName, "search", err)
	}
	hits := make([]domain.SearchHit, 0, len(res))
	for _, r := range res {
		hits = append(hits, domain.HitFromMetadata(float64(r.Similarity), r.Metadata, r.Content))
	}
	return hits, nil
}
