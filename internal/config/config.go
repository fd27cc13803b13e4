package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"withefuck/internal/logging"
)

// Supported providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// ValidProviders lists all supported LLM providers.
var ValidProviders = []string{ProviderOpenAI, ProviderGemini}

// DefaultHistoryCount is used when the file does not set history_count.
const DefaultHistoryCount = 5

var (
	// ErrNotFound is returned by Load when no config file exists at any location.
	ErrNotFound = errors.New("Config file not found. Please run 'wtf --config' first.")

	// ErrIncomplete is returned by Validate when a required field is empty.
	ErrIncomplete = errors.New("Incomplete configuration. Please run 'wtf --config' to set up.")
)

// Config holds all wtf configuration from wtf.json (or wtf.yaml).
type Config struct {
	APIKey      string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	APIEndpoint string `json:"api_endpoint,omitempty" yaml:"api_endpoint,omitempty"`
	Model       string `json:"model,omitempty" yaml:"model,omitempty"`

	// Number of previous commands sent as context (1-100)
	HistoryCount HistoryCount `json:"history_count" yaml:"history_count"`

	// Sampling temperature (0.0-1.0)
	Temperature Temperature `json:"temperature" yaml:"temperature"`

	// Backend selection: openai (default) or gemini
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`

	// Master toggle - false = no logging (production)
	DebugMode bool   `json:"debug_mode,omitempty" yaml:"debug_mode,omitempty"`
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"` // debug, info, warn, error
}

// DefaultConfig returns a Config with defaults applied.
func DefaultConfig() *Config {
	return &Config{HistoryCount: DefaultHistoryCount}
}

// Load finds the config file and loads it.
func Load() (*Config, error) {
	path := FindPathForRead()
	if _, err := os.Stat(path); err != nil {
		logging.ConfigWarn("No config file at %s", path)
		return nil, ErrNotFound
	}
	return LoadFrom(path)
}

// LoadFrom loads configuration from a JSON or YAML file and applies environment
// overrides.
func LoadFrom(path string) (*Config, error) {
	cfg, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	logging.Config("Loaded config from %s (provider=%s, model=%s, history_count=%d)",
		path, cfg.ActiveProvider(), cfg.Model, cfg.HistoryCount)
	return cfg, nil
}

// ReadExisting returns the file's values without environment overrides, or
// defaults when the file is missing or unreadable. The wizard edits this.
func ReadExisting(path string) *Config {
	cfg, err := decodeFile(path)
	if err != nil {
		logging.ConfigDebug("No usable existing config at %s: %v", path, err)
		return DefaultConfig()
	}
	return cfg
}

func decodeFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Error reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if isYAML(path) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("Invalid %s format: %w", YAMLFileName, err)
		}
		return cfg, nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("Invalid %s format: %w", FileName, err)
	}
	return cfg, nil
}

// Save writes the configuration as indented JSON, or YAML for .yaml/.yml paths.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file holds an API key.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("Error saving configuration: %w", err)
	}
	logging.Config("Saved config to %s", path)
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("WTF_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("WTF_API_ENDPOINT"); v != "" {
		c.APIEndpoint = v
	}
	if v := os.Getenv("WTF_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("WTF_PROVIDER"); v != "" {
		c.Provider = strings.ToLower(v)
	}

	// Gemini users usually already export this.
	if c.APIKey == "" && c.ActiveProvider() == ProviderGemini {
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			c.APIKey = key
		}
	}
}

// ActiveProvider returns the configured provider, defaulting to openai.
func (c *Config) ActiveProvider() string {
	if c.Provider == "" {
		return ProviderOpenAI
	}
	return c.Provider
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	provider := c.ActiveProvider()
	if c.APIKey == "" || c.Model == "" || (c.APIEndpoint == "" && provider != ProviderGemini) {
		return ErrIncomplete
	}

	validProvider := false
	for _, p := range ValidProviders {
		if provider == p {
			validProvider = true
			break
		}
	}
	if !validProvider {
		return fmt.Errorf("invalid provider: %s (valid: %v)", provider, ValidProviders)
	}

	if c.HistoryCount < 1 || c.HistoryCount > 100 {
		return errors.New("history_count must be between 1 and 100")
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return errors.New("temperature must be between 0.0 and 1.0")
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
