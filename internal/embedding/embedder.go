package embedding

import (
	"fmt"
	"os"

	"newsrag/internal/config"
	"newsrag/internal/domain"
	"newsrag/internal/embedding/huggingface"
	"newsrag/internal/embedding/openai"
)

// New assembles the embedder selected by cfg. Credentials are read from the
// environment variables the config names.
func New(cfg config.EmbedderConfig) (domain.Embedder, error) {
	switch cfg.Type {
	case "huggingface", "":
		if cfg.HuggingFace == nil {
			return nil, domain.NewConfigError("embedder.huggingface", "is missing")
		}
		return huggingface.NewClient(huggingface.Config{
			URL:   cfg.HuggingFace.URL,
			Token: os.Getenv(cfg.HuggingFace.APIKeyEnv),
			Model: cfg.Model,
		})
	case "openai":
		if cfg.OpenAI == nil {
			return nil, domain.NewConfigError("embedder.openai", "is missing")
		}
		return openai.NewClient(openai.Config{
			BaseURL: cfg.OpenAI.BaseURL,
			APIKey:  os.Getenv(cfg.OpenAI.APIKeyEnv),
			Model:   cfg.Model,
		})
	default:
		return nil, domain.NewConfigError("embedder.type", fmt.Sprintf("unknown embedder %q", cfg.Type))
	}
}
