package config

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"newsrag/internal/domain"
)

const (
	DefaultCollection     = "news_articles"
	DefaultEmbeddingModel = "intfloat/multilingual-e5-large"
	DefaultChatModel      = "meta-llama/Llama-3.3-70B-Instruct"
	DefaultQdrantURL      = "https://cf58605f-3b88-494f-9b09-dcc67ca3478b.europe-west3-0.gcp.cloud.qdrant.io:6333"
	DefaultHFInferenceURL = "https://router.huggingface.co/hf-inference"
	DefaultChatBaseURL    = "https://router.huggingface.co/cerebras/v1"
	DefaultLimit          = 4
)

// HuggingFaceEmbedderConfig configures the Hugging Face feature-extraction embedder.
type HuggingFaceEmbedderConfig struct {
	URL       string `yaml:"url"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type        string                     `yaml:"type"`
	Model       string                     `yaml:"model"`
	HuggingFace *HuggingFaceEmbedderConfig `yaml:"huggingface,omitempty"`
	OpenAI      *OpenAIEmbedderConfig      `yaml:"openai,omitempty"`
}

// VectorStoreConfig selects and configures the vector index implementation.
type VectorStoreConfig struct {
	Type       string         `yaml:"type"`
	Collection string         `yaml:"collection"`
	Qdrant     *QdrantConfig  `yaml:"qdrant,omitempty"`
	Chromem    *ChromemConfig `yaml:"chromem,omitempty"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// ChromemConfig points at a pre-populated chromem-go database directory.
type ChromemConfig struct {
	Path     string `yaml:"path"`
	Compress bool   `yaml:"compress"`
}

// GeneratorConfig configures the chat completion provider.
type GeneratorConfig struct {
	Type      string `yaml:"type"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// PipelineConfig tunes the query pipeline.
type PipelineConfig struct {
	Limit int `yaml:"limit"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	PreviewSentences int `yaml:"preview_sentences"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Embedder    EmbedderConfig    `yaml:"embedder"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Generator   GeneratorConfig   `yaml:"generator"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	Logging     LoggingConfig     `yaml:"logging"`
	UI          UIConfig          `yaml:"ui"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML config bytes, expanding ${VAR} references and applying defaults.
func Parse(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(expandEnvVars(data), &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/newsrag/config.yaml.
// If neither exists, it writes defaults to ~/.config/newsrag/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks that every selected provider has its endpoint and credential.
// Credentials are looked up in the environment so that a missing token fails at startup.
func (c *AppConfig) Validate() error {
	switch c.Embedder.Type {
	case "huggingface":
		if c.Embedder.HuggingFace == nil {
			return domain.NewConfigError("embedder.huggingface", "is missing")
		}
		if err := requireEnv("embedder.huggingface.api_key_env", c.Embedder.HuggingFace.APIKeyEnv); err != nil {
			return err
		}
		if c.Embedder.HuggingFace.URL == "" {
			return domain.NewConfigError("embedder.huggingface.url", "is empty")
		}
	case "openai":
		if c.Embedder.OpenAI == nil {
			return domain.NewConfigError("embedder.openai", "is missing")
		}
		if err := requireEnv("embedder.openai.api_key_env", c.Embedder.OpenAI.APIKeyEnv); err != nil {
			return err
		}
	default:
		return domain.NewConfigError("embedder.type", "unknown value "+quote(c.Embedder.Type))
	}
	if c.Embedder.Model == "" {
		return domain.NewConfigError("embedder.model", "is empty")
	}

	if c.VectorStore.Collection == "" {
		return domain.NewConfigError("vector_store.collection", "is empty")
	}
	switch c.VectorStore.Type {
	case "qdrant":
		if c.VectorStore.Qdrant == nil || c.VectorStore.Qdrant.URL == "" {
			return domain.NewConfigError("vector_store.qdrant.url", "is empty")
		}
		if err := requireEnv("vector_store.qdrant.api_key_env", c.VectorStore.Qdrant.APIKeyEnv); err != nil {
			return err
		}
	case "chromem":
		if c.VectorStore.Chromem == nil || c.VectorStore.Chromem.Path == "" {
			return domain.NewConfigError("vector_store.chromem.path", "is empty")
		}
	default:
		return domain.NewConfigError("vector_store.type", "unknown value "+quote(c.VectorStore.Type))
	}

	if c.Generator.Type != "openai" {
		return domain.NewConfigError("generator.type", "unknown value "+quote(c.Generator.Type))
	}
	if c.Generator.Model == "" {
		return domain.NewConfigError("generator.model", "is empty")
	}
	if c.Generator.BaseURL == "" {
		return domain.NewConfigError("generator.base_url", "is empty")
	}
	if err := requireEnv("generator.api_key_env", c.Generator.APIKeyEnv); err != nil {
		return err
	}

	if c.Pipeline.Limit < 1 {
		return domain.NewConfigError("pipeline.limit", "must be at least 1")
	}
	return nil
}

func requireEnv(field, name string) error {
	if name == "" {
		return domain.NewConfigError(field, "is empty")
	}
	if os.Getenv(name) == "" {
		return domain.NewConfigError(field, "names unset environment variable "+name)
	}
	return nil
}

func quote(s string) string { return `"` + s + `"` }

var envVarRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars substitutes ${VAR} with the environment value; unset variables become empty.
func expandEnvVars(data []byte) []byte {
	return envVarRe.ReplaceAllFunc(data, func(m []byte) []byte {
		name := strings.TrimSuffix(strings.TrimPrefix(string(m), "${"), "}")
		return []byte(os.Getenv(name))
	})
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "newsrag", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "huggingface"
	}
	if cfg.Embedder.Model == "" {
		cfg.Embedder.Model = DefaultEmbeddingModel
	}
	switch cfg.Embedder.Type {
	case "huggingface":
		if cfg.Embedder.HuggingFace == nil {
			cfg.Embedder.HuggingFace = &HuggingFaceEmbedderConfig{}
		}
		if cfg.Embedder.HuggingFace.URL == "" {
			cfg.Embedder.HuggingFace.URL = DefaultHFInferenceURL
		}
		if cfg.Embedder.HuggingFace.APIKeyEnv == "" {
			cfg.Embedder.HuggingFace.APIKeyEnv = "hf_token"
		}
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			cfg.Embedder.OpenAI = &OpenAIEmbedderConfig{}
		}
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
	}

	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "qdrant"
	}
	if cfg.VectorStore.Collection == "" {
		cfg.VectorStore.Collection = DefaultCollection
	}
	switch cfg.VectorStore.Type {
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			cfg.VectorStore.Qdrant = &QdrantConfig{}
		}
		if cfg.VectorStore.Qdrant.URL == "" {
			cfg.VectorStore.Qdrant.URL = DefaultQdrantURL
		}
		if cfg.VectorStore.Qdrant.APIKeyEnv == "" {
			cfg.VectorStore.Qdrant.APIKeyEnv = "qdrant_token"
		}
	case "chromem":
		if cfg.VectorStore.Chromem == nil {
			cfg.VectorStore.Chromem = &ChromemConfig{}
		}
	}

	if cfg.Generator.Type == "" {
		cfg.Generator.Type = "openai"
	}
	if cfg.Generator.Model == "" {
		cfg.Generator.Model = DefaultChatModel
	}
	if cfg.Generator.BaseURL == "" {
		cfg.Generator.BaseURL = DefaultChatBaseURL
	}
	if cfg.Generator.APIKeyEnv == "" {
		cfg.Generator.APIKeyEnv = "hf_token"
	}

	if cfg.Pipeline.Limit == 0 {
		cfg.Pipeline.Limit = DefaultLimit
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.UI.PreviewSentences == 0 {
		cfg.UI.PreviewSentences = 1
	}
}
