package config

// Config represents the main application configuration.
type Config struct {
	API          APIConfig          `yaml:"api"`
	Model        ModelConfig        `yaml:"model"`
	Brain        BrainConfig        `yaml:"brain"`
	Session      SessionConfig      `yaml:"session"`
	Skills       SkillsConfig       `yaml:"skills"`
	Capabilities CapabilitiesConfig `yaml:"capabilities"`
	UI           UIConfig           `yaml:"ui"`
	Logging      LoggingConfig      `yaml:"logging"`

	// Runtime version information
	Version string `yaml:"-"`
}

// APIConfig holds classifier backend settings.
type APIConfig struct {
	// Gemini API key
	GeminiKey string `yaml:"gemini_key,omitempty"`

	// Ollama server URL (default: http://localhost:11434)
	OllamaBaseURL string `yaml:"ollama_base_url,omitempty"`
	// Optional, for remote Ollama servers with auth
	OllamaKey string `yaml:"ollama_key,omitempty"`

	// Active provider: gemini, ollama (default: gemini)
	ActiveProvider string `yaml:"active_provider"`
}

// GetActiveKey returns the API key for the active provider.
func (c *APIConfig) GetActiveKey() string {
	switch c.GetActiveProvider() {
	case "ollama":
		// Ollama key is optional (local server doesn't need it)
		return c.OllamaKey
	default:
		return c.GeminiKey
	}
}

// GetActiveProvider returns the active provider name.
func (c *APIConfig) GetActiveProvider() string {
	if c.ActiveProvider != "" {
		return c.ActiveProvider
	}
	return "gemini"
}

// ModelConfig holds model selection settings.
type ModelConfig struct {
	Name        string  `yaml:"name"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int32   `yaml:"max_tokens"`
}

// BrainConfig holds pipeline policy settings.
type BrainConfig struct {
	// Minimum classification confidence before any side-effecting action runs.
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
}

// SessionConfig holds session memory settings.
type SessionConfig struct {
	// Maximum exchanges kept in memory; oldest evicted first.
	HistorySize int `yaml:"history_size"`
	// Persist exchanges to a sqlite transcript database.
	PersistTranscript bool   `yaml:"persist_transcript"`
	TranscriptPath    string `yaml:"transcript_path,omitempty"`
}

// SkillsConfig holds skill handler settings.
type SkillsConfig struct {
	// Directories searched by the file skill, ~ expanded at load.
	SearchDirs []string `yaml:"search_dirs,omitempty"`
	// Directory screenshots are written to.
	ScreenshotDir string `yaml:"screenshot_dir,omitempty"`
	// Search engine URL template, %s replaced with the query.
	SearchURL string `yaml:"search_url,omitempty"`
}

// CapabilitiesConfig allows forcing capabilities off.
type CapabilitiesConfig struct {
	DisableLLM        bool `yaml:"disable_llm"`
	DisableAutomation bool `yaml:"disable_automation"`
	DisableVision     bool `yaml:"disable_vision"`
}

// UIConfig holds chat UI settings.
type UIConfig struct {
	Theme          string `yaml:"theme"`
	RenderMarkdown bool   `yaml:"render_markdown"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
}
