package vectorstore

import (
	"fmt"
	"os"
	"time"

	"newsrag/internal/config"
	"newsrag/internal/domain"
	"newsrag/internal/vectorstore/chromem"
	"newsrag/internal/vectorstore/qdrant"
)

// Open assembles the vector index selected by cfg.
func Open(cfg config.VectorStoreConfig) (domain.VectorIndex, error) {
	switch cfg.Type {
	case "qdrant", "":
		if cfg.Qdrant == nil {
			return nil, domain.NewConfigError("vector_store.qdrant", "is missing")
		}
		return qdrant.NewStorage(qdrant.Config{
			URL:        cfg.Qdrant.URL,
			APIKey:     os.Getenv(cfg.Qdrant.APIKeyEnv),
			Collection: cfg.Collection,
			Timeout:    time.Duration(cfg.Qdrant.TimeoutSecs) * time.Second,
		})
	case "chromem":
		if cfg.Chromem == nil {
			return nil, domain.NewConfigError("vector_store.chromem", "is missing")
		}
		return chromem.Open(chromem.Config{
			Path:       cfg.Chromem.Path,
			Compress:   cfg.Chromem.Compress,
			Collection: cfg.Collection,
		})
	default:
		return nil, domain.NewConfigError("vector_store.type", fmt.Sprintf("unknown vector store %q", cfg.Type))
	}
}
