// Package config loads the optional papergen config file: paper layout,
// reusable criteria templates, server and classifier settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/papergen/internal/export"
)

// Config is the on-disk YAML configuration.
type Config struct {
	// Bank is the default question bank file to load.
	Bank string `yaml:"bank"`

	// Layout controls rendered paper presentation.
	Layout export.Layout `yaml:"layout"`

	// Templates maps a template name to a raw criteria map, the same
	// keys accepted on the command line.
	Templates map[string]map[string]any `yaml:"templates"`

	Server     Server     `yaml:"server"`
	Classifier Classifier `yaml:"classifier"`

	// StorePath is the SQLite bank store location. Empty defers to the
	// store package's default data path.
	StorePath string `yaml:"store_path"`
}

// Server holds HTTP API settings.
type Server struct {
	Addr string `yaml:"addr"`
}

// Classifier selects and configures the label backfill.
type Classifier struct {
	// Provider is "keyword", "llm" or "none".
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	// APIKeyEnv names the environment variable holding the LLM key.
	APIKeyEnv string `yaml:"api_key_env"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	cfg := Config{}
	Normalize(&cfg)
	return cfg
}

// Load reads, parses, normalizes, and validates a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize fills unset fields with defaults.
func Normalize(cfg *Config) {
	if cfg.Layout.Title == "" {
		cfg.Layout = mergeLayout(cfg.Layout)
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Classifier.Provider == "" {
		cfg.Classifier.Provider = "keyword"
	}
	if cfg.Classifier.APIKeyEnv == "" {
		cfg.Classifier.APIKeyEnv = "OPENAI_API_KEY"
	}
}

// mergeLayout keeps any fields the file did set and defaults the rest.
func mergeLayout(l export.Layout) export.Layout {
	def := export.DefaultLayout()
	if l.Title == "" {
		l.Title = def.Title
	}
	if l.DurationMinutes == 0 {
		l.DurationMinutes = def.DurationMinutes
	}
	if len(l.Instructions) == 0 {
		l.Instructions = def.Instructions
	}
	return l
}

// Validate rejects configurations that cannot be acted on.
func Validate(cfg *Config) error {
	switch cfg.Classifier.Provider {
	case "keyword", "llm", "none":
	default:
		return fmt.Errorf("config: unknown classifier provider %q (want keyword, llm or none)", cfg.Classifier.Provider)
	}
	if cfg.Layout.DurationMinutes < 0 {
		return fmt.Errorf("config: layout duration must not be negative")
	}
	if cfg.Layout.TotalMarks < 0 {
		return fmt.Errorf("config: layout total marks must not be negative")
	}
	for name, tmpl := range cfg.Templates {
		if name == "" {
			return fmt.Errorf("config: template with empty name")
		}
		if len(tmpl) == 0 {
			return fmt.Errorf("config: template %q is empty", name)
		}
	}
	return nil
}
