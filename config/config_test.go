package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleConfig = `
data_directory = "{{DIR}}"

[arena]
timeout_seconds = 90
max_output_tokens = 2000
fallback_min_chars = 48

[judge]
provider = "wordlist"
wordlist_path = "/tmp/words.txt"

[game]
language = "Slovak"

[[candidates]]
name = "GPT"
provider = "openai"
model = "gpt-4o"

[[candidates]]
id = "local"
name = "Llama"
provider = "ollama"
model = "llama3.1:latest"
max_output_tokens = 800
timeout_seconds = 30
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	content = strings.ReplaceAll(content, "{{DIR}}", dir)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadParsesCandidatesInOrder(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Arena.TimeoutSeconds != 90 || cfg.Arena.FallbackMinChars != 48 {
		t.Errorf("arena = %+v", cfg.Arena)
	}
	if cfg.Judge.Provider != "wordlist" || cfg.Judge.WordlistPath != "/tmp/words.txt" {
		t.Errorf("judge = %+v", cfg.Judge)
	}
	if cfg.Game.Language != "Slovak" {
		t.Errorf("language = %q", cfg.Game.Language)
	}

	cands := cfg.ModelCandidates()
	if len(cands) != 2 {
		t.Fatalf("got %d candidates, want 2", len(cands))
	}
	if cands[0].Model != "gpt-4o" || cands[1].ID != "local" {
		t.Errorf("candidate order = %s, %s", cands[0].Model, cands[1].ID)
	}
	// First entry inherits the arena-wide token budget; second overrides it.
	if cands[0].MaxOutputTokens != 2000 || cands[1].MaxOutputTokens != 800 {
		t.Errorf("token budgets = %d, %d", cands[0].MaxOutputTokens, cands[1].MaxOutputTokens)
	}
	if cands[1].Timeout != 30*time.Second {
		t.Errorf("candidate timeout = %v", cands[1].Timeout)
	}
	// Missing id gets a stable generated one.
	if cands[0].ID == "" {
		t.Error("expected a generated id for the first candidate")
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("LEXARENA_DATA_DIR", t.TempDir())
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Arena.TimeoutSeconds != 120 || cfg.Arena.FallbackMinChars != 32 {
		t.Errorf("defaults = %+v", cfg.Arena)
	}
	if cfg.Judge.Model != "gpt-4o-mini" {
		t.Errorf("default judge model = %q", cfg.Judge.Model)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LEXARENA_LANGUAGE", "German")
	t.Setenv("LEXARENA_TIMEOUT_SECONDS", "15")
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Game.Language != "German" {
		t.Errorf("language = %q, want env override", cfg.Game.Language)
	}
	if cfg.Arena.TimeoutSeconds != 15 {
		t.Errorf("timeout = %d, want env override", cfg.Arena.TimeoutSeconds)
	}
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	bad := `
data_directory = "{{DIR}}"
[[candidates]]
id = "dup"
provider = "openai"
model = "gpt-4o"
[[candidates]]
id = "dup"
provider = "openai"
model = "gpt-4o-mini"
`
	if _, err := Load(writeConfig(t, bad)); err == nil {
		t.Error("expected duplicate id error")
	}
}

func TestLoadRejectsCandidateWithoutModel(t *testing.T) {
	bad := `
data_directory = "{{DIR}}"
[[candidates]]
provider = "openai"
`
	if _, err := Load(writeConfig(t, bad)); err == nil {
		t.Error("expected missing model error")
	}
}

func TestEnsureSettingsFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path, err := EnsureSettingsFile()
	if err != nil {
		t.Fatal(err)
	}
	if !FileExists(path) {
		t.Fatal("sample settings not written")
	}

	// The sample must parse and keep the defaults; candidates are commented out.
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Candidates) != 0 || cfg.Arena.TimeoutSeconds != 120 {
		t.Errorf("sample config = %+v", cfg)
	}

	// Second call leaves the existing file alone.
	data, _ := os.ReadFile(path)
	if _, err := EnsureSettingsFile(); err != nil {
		t.Fatal(err)
	}
	after, _ := os.ReadFile(path)
	if string(data) != string(after) {
		t.Error("existing settings file was rewritten")
	}
}

func TestBaseURLDefaults(t *testing.T) {
	if got := BaseURLFor(CandidateConfig{Provider: "openrouter"}); got != DefaultOpenRouterBaseURL {
		t.Errorf("openrouter base = %q", got)
	}
	if got := BaseURLFor(CandidateConfig{Provider: "ollama"}); got != DefaultOllamaHost {
		t.Errorf("ollama base = %q", got)
	}
	if got := BaseURLFor(CandidateConfig{Provider: "openai", BaseURL: "http://x"}); got != "http://x" {
		t.Errorf("explicit base = %q", got)
	}
}
