package model

import "time"

// Config holds the complete application configuration.
type Config struct {
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	Retrieval RetrievalConfig `yaml:"retrieval" mapstructure:"retrieval"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Ingest    IngestConfig    `yaml:"ingest" mapstructure:"ingest"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
}

// LLMConfig configures the embedding and generation provider.
type LLMConfig struct {
	Provider   string `yaml:"provider" mapstructure:"provider"`       // openai, ollama
	Model      string `yaml:"model" mapstructure:"model"`             // chat model name
	EmbedModel string `yaml:"embed_model" mapstructure:"embed_model"` // embedding model name
	APIKey     string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL    string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout    int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens  int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// RetrievalConfig tunes the retrieval orchestrator.
type RetrievalConfig struct {
	MaxResults          int     `yaml:"max_results" mapstructure:"max_results"`
	SimilarityThreshold float64 `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
	NameMatchThreshold  float64 `yaml:"name_match_threshold" mapstructure:"name_match_threshold"`
}

// CacheConfig tunes the embedding cache.
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// IngestConfig tunes concurrent corpus ingestion.
type IngestConfig struct {
	Workers           int     `yaml:"workers" mapstructure:"workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// OutputConfig controls CLI output behavior.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:   "openai",
			Model:      "gpt-4o-mini",
			EmbedModel: "text-embedding-3-small",
			Timeout:    30,
			MaxTokens:  1000,
		},
		Retrieval: RetrievalConfig{
			MaxResults:          5,
			SimilarityThreshold: 0.6,
			NameMatchThreshold:  0.3,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             24 * time.Hour,
			CleanupInterval: time.Hour,
		},
		Ingest: IngestConfig{
			Workers:           4,
			RequestsPerSecond: 5,
		},
		Output: OutputConfig{},
	}
}
