package config

import "time"

// Default configuration values.
const (
	// Classification
	DefaultConfidenceThreshold = 0.75
	DefaultModel               = "gemini-2.5-flash"
	DefaultTemperature         = 0.2
	DefaultMaxTokens           = 1024

	// Session settings
	DefaultHistorySize = 50

	// Skill I/O
	DefaultSkillTimeout = 15 * time.Second
	DefaultHTTPTimeout  = 20 * time.Second
	DefaultSearchURL    = "https://duckduckgo.com/?q=%s"
)

// DefaultConfig returns a configuration populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			ActiveProvider: "gemini",
			OllamaBaseURL:  "http://localhost:11434",
		},
		Model: ModelConfig{
			Name:        DefaultModel,
			Temperature: DefaultTemperature,
			MaxTokens:   DefaultMaxTokens,
		},
		Brain: BrainConfig{
			ConfidenceThreshold: DefaultConfidenceThreshold,
		},
		Session: SessionConfig{
			HistorySize:       DefaultHistorySize,
			PersistTranscript: false,
		},
		Skills: SkillsConfig{
			SearchDirs: []string{"~/Downloads", "~/Documents", "~/Desktop"},
			SearchURL:  DefaultSearchURL,
		},
		UI: UIConfig{
			Theme:          "dark",
			RenderMarkdown: true,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
		},
	}
}
