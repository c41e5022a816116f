package generation

import (
	"fmt"
	"os"

	"newsrag/internal/config"
	"newsrag/internal/domain"
	"newsrag/internal/generation/openai"
)

// New assembles the chat completion provider selected by cfg.
func New(cfg config.GeneratorConfig) (domain.ChatCompleter, error) {
	switch cfg.Type {
	case "openai", "":
		return openai.NewClient(openai.Config{
			BaseURL: cfg.BaseURL,
			APIKey:  os.Getenv(cfg.APIKeyEnv),
			Model:   cfg.Model,
		})
	default:
		return nil, domain.NewConfigError("generator.type", fmt.Sprintf("unknown generator %q", cfg.Type))
	}
}
