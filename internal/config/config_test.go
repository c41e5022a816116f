package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsrag/internal/domain"
)

func setTokens(t *testing.T) {
	t.Helper()
	t.Setenv("hf_token", "hf-test")
	t.Setenv("qdrant_token", "qd-test")
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "huggingface", cfg.Embedder.Type)
	assert.Equal(t, DefaultEmbeddingModel, cfg.Embedder.Model)
	assert.Equal(t, "hf_token", cfg.Embedder.HuggingFace.APIKeyEnv)
	assert.Equal(t, "qdrant", cfg.VectorStore.Type)
	assert.Equal(t, DefaultCollection, cfg.VectorStore.Collection)
	assert.Equal(t, DefaultQdrantURL, cfg.VectorStore.Qdrant.URL)
	assert.Equal(t, "qdrant_token", cfg.VectorStore.Qdrant.APIKeyEnv)
	assert.Equal(t, DefaultChatModel, cfg.Generator.Model)
	assert.Equal(t, DefaultChatBaseURL, cfg.Generator.BaseURL)
	assert.Equal(t, 4, cfg.Pipeline.Limit)
}

func TestParse_ExpandsEnvAndKeepsOverrides(t *testing.T) {
	t.Setenv("NEWSRAG_QDRANT", "http://localhost:6333")
	cfg, err := Parse([]byte(`
vector_store:
  type: qdrant
  collection: tech_news
  qdrant:
    url: ${NEWSRAG_QDRANT}
pipeline:
  limit: 8
logging:
  level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:6333", cfg.VectorStore.Qdrant.URL)
	assert.Equal(t, "tech_news", cfg.VectorStore.Collection)
	assert.Equal(t, "qdrant_token", cfg.VectorStore.Qdrant.APIKeyEnv)
	assert.Equal(t, 8, cfg.Pipeline.Limit)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestParse_ChromemDefaults(t *testing.T) {
	cfg, err := Parse([]byte("vector_store:\n  type: chromem\n  chromem:\n    path: ./index\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.VectorStore.Chromem)
	assert.Equal(t, "./index", cfg.VectorStore.Chromem.Path)
	assert.Nil(t, cfg.VectorStore.Qdrant)
}

func TestValidate_DefaultsWithTokens(t *testing.T) {
	setTokens(t)
	require.NoError(t, defaultConfig().Validate())
}

func TestValidate_MissingCredentials(t *testing.T) {
	tests := []struct {
		name  string
		unset string
		field string
	}{
		{name: "hugging face token", unset: "hf_token", field: "embedder.huggingface.api_key_env"},
		{name: "qdrant token", unset: "qdrant_token", field: "vector_store.qdrant.api_key_env"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setTokens(t)
			t.Setenv(tt.unset, "")

			err := defaultConfig().Validate()
			require.ErrorIs(t, err, domain.ErrConfig)

			var ce *domain.ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	setTokens(t)

	cfg := defaultConfig()
	cfg.Pipeline.Limit = -1
	require.ErrorIs(t, cfg.Validate(), domain.ErrConfig)

	cfg = defaultConfig()
	cfg.VectorStore.Type = "pinecone"
	require.ErrorIs(t, cfg.Validate(), domain.ErrConfig)

	cfg = defaultConfig()
	cfg.Generator.BaseURL = ""
	require.ErrorIs(t, cfg.Validate(), domain.ErrConfig)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.Pipeline.Limit = 6

	require.NoError(t, Save(path, cfg))
	_, err := os.Stat(path)
	require.NoError(t, err)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, loaded.Pipeline.Limit)
	assert.Equal(t, cfg.VectorStore.Qdrant.URL, loaded.VectorStore.Qdrant.URL)
}
