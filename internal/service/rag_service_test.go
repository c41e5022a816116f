package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsrag/internal/domain"
)

// --- Fakes ---

type fakeEmbedder struct {
	vec    []float32
	err    error
	called bool
	got    string
}

func (f *fakeEmbedder) Name() string { return "fake" }

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.called = true
	f.got = text
	return f.vec, f.err
}

type fakeIndex struct {
	hits     []domain.SearchHit
	err      error
	called   bool
	gotVec   []float32
	gotLimit int
}

func (f *fakeIndex) Name() string { return "fake" }

func (f *fakeIndex) Search(_ context.Context, vector []float32, limit int) ([]domain.SearchHit, error) {
	f.called = true
	f.gotVec = vector
	f.gotLimit = limit
	return f.hits, f.err
}

type fakeGenerator struct {
	answer    string
	err       error
	called    bool
	gotPrompt string
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Complete(_ context.Context, prompt string) (string, error) {
	f.called = true
	f.gotPrompt = prompt
	return f.answer, f.err
}

var (
	hitA = domain.SearchHit{Score: 0.9, Title: "Article A", URL: "http://a", Chunk: "text A"}
	hitB = domain.SearchHit{Score: 0.8, Title: "Article B", URL: "http://b", Chunk: "text B"}
)

// --- Tests ---

func TestAnswer_Scenario(t *testing.T) {
	emb := &fakeEmbedder{vec: []float32{0.1, 0.2}}
	idx := &fakeIndex{hits: []domain.SearchHit{hitA, hitB}}
	gen := &fakeGenerator{answer: "Curricula should emphasize X and Y."}
	svc := NewRAGService(emb, idx, gen, 4)

	const query = "What skills should CS curricula emphasize?"
	res, err := svc.Answer(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, "Curricula should emphasize X and Y.", res.Answer)
	assert.Equal(t, []domain.SearchHit{hitA, hitB}, res.Hits)
	assert.Equal(t, query, res.Query)

	assert.Equal(t, query, emb.got)
	assert.Equal(t, []float32{0.1, 0.2}, idx.gotVec)
	assert.Equal(t, 4, idx.gotLimit)

	p := gen.gotPrompt
	a := strings.Index(p, "--- Article 1: Article A ---")
	b := strings.Index(p, "--- Article 2: Article B ---")
	require.GreaterOrEqual(t, a, 0)
	require.Greater(t, b, a)
	assert.Contains(t, p, "--- Article 1: Article A ---\nURL: http://a\n\ntext A\n")
	assert.Contains(t, p, "--- Article 2: Article B ---\nURL: http://b\n\ntext B\n")
}

func TestAnswer_EmptyQueryCallsNothing(t *testing.T) {
	emb, idx, gen := &fakeEmbedder{}, &fakeIndex{}, &fakeGenerator{}
	svc := NewRAGService(emb, idx, gen, 4)

	_, err := svc.Answer(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrEmptyQuery)
	assert.NotErrorIs(t, err, domain.ErrProvider)
	assert.False(t, emb.called)
	assert.False(t, idx.called)
	assert.False(t, gen.called)
}

func TestAnswer_PassesQueryVerbatim(t *testing.T) {
	emb := &fakeEmbedder{vec: []float32{1}}
	gen := &fakeGenerator{answer: "ok"}
	svc := NewRAGService(emb, &fakeIndex{}, gen, 4)

	const query = "  skills\nfor educators "
	res, err := svc.Answer(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, query, emb.got)
	assert.Equal(t, query, res.Query)
	assert.Equal(t, BuildPrompt(query, ""), gen.gotPrompt)
}

func TestAnswer_EmbedFailureStopsPipeline(t *testing.T) {
	emb := &fakeEmbedder{err: domain.NewProviderError("embedding", "embed", errors.New("unreachable"))}
	idx, gen := &fakeIndex{}, &fakeGenerator{}
	svc := NewRAGService(emb, idx, gen, 4)

	res, err := svc.Answer(context.Background(), "q")
	require.ErrorIs(t, err, domain.ErrProvider)
	assert.Equal(t, domain.Result{}, res)
	assert.False(t, idx.called)
	assert.False(t, gen.called)
}

func TestAnswer_SearchFailureSkipsGeneration(t *testing.T) {
	emb := &fakeEmbedder{vec: []float32{1}}
	idx := &fakeIndex{err: domain.NewProviderError("vector_index", "search", errors.New("403"))}
	gen := &fakeGenerator{}
	svc := NewRAGService(emb, idx, gen, 4)

	_, err := svc.Answer(context.Background(), "q")
	require.ErrorIs(t, err, domain.ErrProvider)
	assert.False(t, gen.called)
}

func TestAnswer_GenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: domain.NewProviderError("chat_completion", "complete", errors.New("quota"))}
	svc := NewRAGService(&fakeEmbedder{vec: []float32{1}}, &fakeIndex{hits: []domain.SearchHit{hitA}}, gen, 4)

	res, err := svc.Answer(context.Background(), "q")
	require.ErrorIs(t, err, domain.ErrProvider)
	assert.Empty(t, res.Hits)
	assert.Empty(t, res.Answer)
}

func TestAnswer_ZeroHitsStillGenerates(t *testing.T) {
	gen := &fakeGenerator{answer: "No supporting articles were found."}
	svc := NewRAGService(&fakeEmbedder{vec: []float32{1}}, &fakeIndex{}, gen, 4)

	res, err := svc.Answer(context.Background(), "q")
	require.NoError(t, err)
	assert.True(t, gen.called)
	assert.Empty(t, res.Hits)
	assert.Equal(t, BuildPrompt("q", ""), gen.gotPrompt)
}

func TestAnswer_KeepsIndexOrderAndLimit(t *testing.T) {
	low := domain.SearchHit{Score: 0.1, Title: "Low"}
	high := domain.SearchHit{Score: 0.99, Title: "High"}
	extra := domain.SearchHit{Score: 0.5, Title: "Extra"}
	idx := &fakeIndex{hits: []domain.SearchHit{low, high, extra}}
	svc := NewRAGService(&fakeEmbedder{vec: []float32{1}}, idx, &fakeGenerator{answer: "ok"}, 2)

	res, err := svc.Answer(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, 2, idx.gotLimit)
	assert.Equal(t, []domain.SearchHit{low, high}, res.Hits)
}
