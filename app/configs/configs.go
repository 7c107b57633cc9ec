package configs

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Sources SourcesConfig  `yaml:"sources"`
	Index   IndexConfig    `yaml:"index"`
	LLM     LLMConfig      `yaml:"llm"`
	Server  ServerConfig   `yaml:"server"`
	Clients []ClientConfig `yaml:"clients,omitempty"`
}

type SourcesConfig struct {
	PDFs []string `yaml:"pdfs,omitempty"`
	CSVs []string `yaml:"csvs,omitempty"`
	URLs []string `yaml:"urls,omitempty" validate:"dive,url"`
}

type IndexConfig struct {
	Backend    string `yaml:"backend" validate:"oneof=sqlite qdrant"`
	Path       string `yaml:"path" validate:"required"`
	Collection string `yaml:"collection" validate:"required"`
	VectorSize int    `yaml:"vector_size" validate:"gt=0"`
	QdrantHost string `yaml:"qdrant_host,omitempty"`
	QdrantPort int    `yaml:"qdrant_port,omitempty"`
}

type LLMConfig struct {
	BaseURL        string  `yaml:"base_url" validate:"required,url"`
	APIKey         string  `yaml:"api_key"`
	Model          string  `yaml:"model" validate:"required"`
	EmbeddingModel string  `yaml:"embedding_model" validate:"required"`
	Temperature    float64 `yaml:"temperature" validate:"gte=0,lte=2"`
	TopK           int     `yaml:"top_k" validate:"gt=0"`
	TimeoutSeconds int     `yaml:"timeout_seconds" validate:"gte=0"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

// ClientConfig describes an optional chat front end connector.
type ClientConfig struct {
	Type    string            `yaml:"type"`
	Enabled bool              `yaml:"enabled"`
	Config  map[string]string `yaml:"config,omitempty"`
}

// Default returns the built-in source set and service settings used when no
// config file is given.
func Default() *Config {
	return &Config{
		Sources: SourcesConfig{
			PDFs: []string{"pdf_c_3_merged.pdf"},
			CSVs: []string{"customs_duty_table.csv"},
			URLs: []string{
				"https://www.india-briefing.com/doing-business-guide/india/taxation-and-accounting/customs-duty-and-import-export-taxes-in-india",
				"https://cleartax.in/s/customs-duty-india",
			},
		},
		Index: IndexConfig{
			Backend:    "sqlite",
			Path:       "rag_db",
			Collection: "customs",
			VectorSize: 768,
			QdrantHost: "localhost",
			QdrantPort: 6334,
		},
		LLM: LLMConfig{
			BaseURL:        "https://generativelanguage.googleapis.com/v1beta/openai",
			APIKey:         os.Getenv("GOOGLE_API_KEY"),
			Model:          "gemini-2.5-flash",
			EmbeddingModel: "text-embedding-004",
			Temperature:    0,
			TopK:           5,
			TimeoutSeconds: 120,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// LoadConfig reads a YAML config file, expanding ${VAR} references from the
// environment before parsing. Missing fields fall back to the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configs file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Sources.PDFs)+len(c.Sources.CSVs)+len(c.Sources.URLs) == 0 {
		return fmt.Errorf("no document sources configured")
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configs: %w", err)
	}

	for _, client := range c.Clients {
		if client.Enabled && client.Type == "" {
			return fmt.Errorf("enabled client is missing a type")
		}
	}

	return nil
}

func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
