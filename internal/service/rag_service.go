package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"newsrag/internal/domain"
	"newsrag/internal/logger"
)

// RAGServiceImpl runs one embed, search, generate cycle per question.
// It holds no state between calls beyond its provider handles.
type RAGServiceImpl struct {
	embedder  domain.Embedder
	index     domain.VectorIndex
	generator domain.ChatCompleter
	limit     int
}

func NewRAGService(embedder domain.Embedder, index domain.VectorIndex, generator domain.ChatCompleter, limit int) *RAGServiceImpl {
	if limit <= 0 {
		limit = 4
	}
	return &RAGServiceImpl{embedder: embedder, index: index, generator: generator, limit: limit}
}

// Answer embeds query, retrieves up to the configured number of hits and asks
// the chat model to answer from them. Any provider failure aborts the cycle.
func (s *RAGServiceImpl) Answer(ctx context.Context, query string) (domain.Result, error) {
	if query == "" {
		return domain.Result{}, domain.ErrEmptyQuery
	}
	log := logger.FromContext(ctx)

	start := time.Now()
	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		log.Error("embed query", zap.String("embedder", s.embedder.Name()), zap.Error(err))
		return domain.Result{}, err
	}
	log.Debug("query embedded", zap.Int("dimension", len(vec)), zap.Duration("took", time.Since(start)))

	start = time.Now()
	hits, err := s.index.Search(ctx, vec, s.limit)
	if err != nil {
		log.Error("search index", zap.String("index", s.index.Name()), zap.Error(err))
		return domain.Result{}, err
	}
	if len(hits) > s.limit {
		hits = hits[:s.limit]
	}
	if len(hits) == 0 {
		log.Warn("search returned no hits, answering without context")
	}
	log.Debug("index searched", zap.Int("hits", len(hits)), zap.Duration("took", time.Since(start)))

	prompt := BuildPrompt(query, BuildContext(hits))

	start = time.Now()
	answer, err := s.generator.Complete(ctx, prompt)
	if err != nil {
		log.Error("generate answer", zap.String("generator", s.generator.Name()), zap.Error(err))
		return domain.Result{}, err
	}
	log.Debug("answer generated", zap.Int("prompt_bytes", len(prompt)), zap.Duration("took", time.Since(start)))

	return domain.Result{Query: query, Answer: answer, Hits: hits}, nil
}
