// Package config loads the arena's TOML configuration and resolves API keys
// from the environment. Secrets never live in the config file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"lexarena/model"
)

// DefaultOpenRouterBaseURL is used when a candidate does not set base_url.
const DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// DefaultOllamaHost is used when an ollama candidate does not set base_url.
const DefaultOllamaHost = "http://localhost:11434"

type ArenaConfig struct {
	TimeoutSeconds   int `toml:"timeout_seconds"`
	MaxOutputTokens  int `toml:"max_output_tokens"`
	FallbackMinChars int `toml:"fallback_min_chars"`
}

type JudgeConfig struct {
	// Provider selects the referee: "openai" or "wordlist".
	Provider        string `toml:"provider"`
	Model           string `toml:"model"`
	MaxOutputTokens int    `toml:"max_output_tokens"`
	// WordlistPath points at a newline-separated lexicon when Provider is
	// "wordlist".
	WordlistPath string `toml:"wordlist_path"`
}

type GameConfig struct {
	Language string `toml:"language"`
}

// CandidateConfig is one [[candidates]] entry.
type CandidateConfig struct {
	ID              string `toml:"id"`
	Name            string `toml:"name"`
	Provider        string `toml:"provider"`
	Model           string `toml:"model"`
	BaseURL         string `toml:"base_url"`
	MaxOutputTokens int    `toml:"max_output_tokens"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
}

type Config struct {
	DataDirectory string            `toml:"data_directory"`
	Arena         ArenaConfig       `toml:"arena"`
	Judge         JudgeConfig       `toml:"judge"`
	Game          GameConfig        `toml:"game"`
	Candidates    []CandidateConfig `toml:"candidates"`
}

// Defaults returns the built-in configuration used when no file exists.
func Defaults() *Config {
	return &Config{
		DataDirectory: "~/.local/share/lexarena",
		Arena: ArenaConfig{
			TimeoutSeconds:   120,
			MaxOutputTokens:  3600,
			FallbackMinChars: 32,
		},
		Judge: JudgeConfig{
			Provider:        "openai",
			Model:           "gpt-4o-mini",
			MaxOutputTokens: 800,
		},
		Game: GameConfig{Language: "English"},
	}
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields the defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = SettingsFilePath()
	}

	cfg := Defaults()
	if FileExists(path) {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("LEXARENA_DATA_DIR"); dir != "" {
		c.DataDirectory = dir
	}
	if lang := os.Getenv("LEXARENA_LANGUAGE"); lang != "" {
		c.Game.Language = lang
	}
	if m := os.Getenv("LEXARENA_JUDGE_MODEL"); m != "" {
		c.Judge.Model = m
	}
	if s := os.Getenv("LEXARENA_TIMEOUT_SECONDS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			c.Arena.TimeoutSeconds = n
		}
	}
}

func (c *Config) validate() error {
	seen := map[string]bool{}
	for i := range c.Candidates {
		cand := &c.Candidates[i]
		if cand.Model == "" {
			return fmt.Errorf("candidate %d: model is required", i)
		}
		if cand.Provider == "" {
			return fmt.Errorf("candidate %d (%s): provider is required", i, cand.Model)
		}
		if cand.ID == "" {
			cand.ID = fmt.Sprintf("%s-%s-%d", cand.Provider, cand.Model, i)
		}
		if seen[cand.ID] {
			return fmt.Errorf("duplicate candidate id %q", cand.ID)
		}
		seen[cand.ID] = true
	}
	switch c.Judge.Provider {
	case "openai", "wordlist", "":
	default:
		return fmt.Errorf("unknown judge provider %q", c.Judge.Provider)
	}
	return nil
}

// DataDir returns the expanded data directory.
func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// Timeout returns the arena budget as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Arena.TimeoutSeconds) * time.Second
}

// ModelCandidates converts the [[candidates]] entries into arena candidates,
// preserving declaration order.
func (c *Config) ModelCandidates() []model.Candidate {
	out := make([]model.Candidate, 0, len(c.Candidates))
	for _, cand := range c.Candidates {
		maxTokens := cand.MaxOutputTokens
		if maxTokens <= 0 {
			maxTokens = c.Arena.MaxOutputTokens
		}
		out = append(out, model.Candidate{
			ID:              cand.ID,
			DisplayName:     cand.Name,
			Provider:        cand.Provider,
			Model:           cand.Model,
			MaxOutputTokens: maxTokens,
			Timeout:         time.Duration(cand.TimeoutSeconds) * time.Second,
		})
	}
	return out
}

// BaseURLFor resolves the endpoint for a candidate, filling provider
// defaults when the entry leaves base_url empty.
func BaseURLFor(cand CandidateConfig) string {
	if cand.BaseURL != "" {
		return cand.BaseURL
	}
	switch cand.Provider {
	case "openrouter":
		return DefaultOpenRouterBaseURL
	case "ollama":
		return DefaultOllamaHost
	}
	return ""
}

const sampleSettings = `# lexarena settings
# API keys are read from the environment (or a .env file), never from here:
#   OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY

data_directory = "~/.local/share/lexarena"

[arena]
timeout_seconds = 120
max_output_tokens = 3600
fallback_min_chars = 32

[judge]
provider = "openai"        # or "wordlist" with wordlist_path
model = "gpt-4o-mini"
max_output_tokens = 800

[game]
language = "English"

# Declaration order matters: ties on score go to the earliest entry.
#
# [[candidates]]
# name = "GPT-4o"
# provider = "openai"
# model = "gpt-4o"
#
# [[candidates]]
# name = "Claude"
# provider = "anthropic"
# model = "claude-sonnet-4-5"
#
# [[candidates]]
# name = "Local Llama"
# provider = "ollama"
# model = "llama3.1:latest"
`

// EnsureSettingsFile writes a commented sample settings.toml on first run so
// users have something to edit. Existing files are left alone.
func EnsureSettingsFile() (string, error) {
	path := SettingsFilePath()
	if FileExists(path) {
		return path, nil
	}
	if err := os.MkdirAll(ConfigDir(), 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleSettings), 0600); err != nil {
		return "", fmt.Errorf("failed to write sample settings: %w", err)
	}
	return path, nil
}

// APIKeyFor returns the environment API key for a provider kind. Local
// providers need none.
func APIKeyFor(kind string) string {
	switch kind {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	case "openrouter":
		return os.Getenv("OPENROUTER_API_KEY")
	}
	return ""
}
