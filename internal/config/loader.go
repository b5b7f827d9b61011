package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigError is a configuration validation error.
type ConfigError string

func (e ConfigError) Error() string {
	return string(e)
}

// ErrMissingAuth indicates no API key is configured for the active provider.
const ErrMissingAuth = ConfigError("no API key configured for the active provider")

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from the given path, falling back to the
// default location when path is empty.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = Path()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			// Config file is optional, don't fail if it doesn't exist
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	loadFromEnv(cfg)
	expandDirs(cfg)

	return cfg, nil
}

// Path returns the path to the config file.
func Path() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "aura", "config.yaml")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "aura", "config.yaml")
}

// Dir returns the directory the config file (and log file) live in.
func Dir() string {
	p := Path()
	if p == "" {
		return "."
	}
	return filepath.Dir(p)
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Expand environment variables in the config file
	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// loadFromEnv loads configuration from environment variables.
func loadFromEnv(cfg *Config) {
	if key := os.Getenv("AURA_API_KEY"); key != "" {
		cfg.API.GeminiKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.API.GeminiKey = key
	}

	if model := os.Getenv("AURA_MODEL"); model != "" {
		cfg.Model.Name = model
	}
	if provider := os.Getenv("AURA_PROVIDER"); provider != "" {
		cfg.API.ActiveProvider = provider
	}
	if url := os.Getenv("OLLAMA_HOST"); url != "" {
		cfg.API.OllamaBaseURL = url
	}
	if thr := os.Getenv("AURA_CONFIDENCE_THRESHOLD"); thr != "" {
		if v, err := strconv.ParseFloat(thr, 64); err == nil && v > 0 && v <= 1 {
			cfg.Brain.ConfidenceThreshold = v
		}
	}
}

// expandDirs expands ~ in configured directories.
func expandDirs(cfg *Config) {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	for i, d := range cfg.Skills.SearchDirs {
		if strings.HasPrefix(d, "~") {
			cfg.Skills.SearchDirs[i] = filepath.Join(home, strings.TrimPrefix(d, "~"))
		}
	}
	if strings.HasPrefix(cfg.Skills.ScreenshotDir, "~") {
		cfg.Skills.ScreenshotDir = filepath.Join(home, strings.TrimPrefix(cfg.Skills.ScreenshotDir, "~"))
	}
	if strings.HasPrefix(cfg.Session.TranscriptPath, "~") {
		cfg.Session.TranscriptPath = filepath.Join(home, strings.TrimPrefix(cfg.Session.TranscriptPath, "~"))
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.API.GetActiveProvider() {
	case "gemini":
		if c.API.GetActiveKey() == "" {
			return ErrMissingAuth
		}
	case "ollama":
		// Local Ollama needs no key.
	default:
		return ConfigError("unknown provider: " + c.API.ActiveProvider)
	}
	if c.Brain.ConfidenceThreshold <= 0 || c.Brain.ConfidenceThreshold > 1 {
		return ConfigError("confidence_threshold must be in (0, 1]")
	}
	if c.Session.HistorySize <= 0 {
		return ConfigError("history_size must be positive")
	}
	return nil
}
