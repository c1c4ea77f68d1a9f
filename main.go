package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"lexarena/arena"
	"lexarena/config"
	"lexarena/judge"
	"lexarena/model"
	"lexarena/parse"
	"lexarena/provider"
	"lexarena/storage"
	"lexarena/ui"
)

const Version = "v0.1.0"

func main() {
	var (
		configPath = flag.String("config", "", "path to settings.toml (default: ~/.config/lexarena/settings.toml)")
		statePath  = flag.String("state", "", "path to a JSON game state file; empty board when omitted")
		rack       = flag.String("rack", "AEINRST", "rack letters when no state file is given ('?' is a blank)")
		headless   = flag.Bool("headless", false, "run one competition and print the result table")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	// Secrets come from the environment; .env is a convenience, not required.
	_ = godotenv.Load()

	if *configPath == "" {
		if _, err := config.EnsureSettingsFile(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create default settings: %v\n", err)
			os.Exit(1)
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	closeLogs, err := setupLogging(cfg.DataDir(), *headless, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLogs()

	if len(cfg.Candidates) == 0 {
		fmt.Fprintf(os.Stderr, "No candidates configured. Add [[candidates]] entries to %s\n", config.SettingsFilePath())
		os.Exit(1)
	}

	snap, err := loadSnapshot(*statePath, *rack, cfg.Game.Language)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load game state: %v\n", err)
		os.Exit(1)
	}

	entrants, err := buildEntrants(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure candidates: %v\n", err)
		os.Exit(1)
	}

	ref, err := buildJudge(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure referee: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open history store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	coord := &arena.Coordinator{
		Judge:            ref,
		Extractor:        buildExtractor(),
		Timeout:          cfg.Timeout(),
		FallbackMinChars: cfg.Arena.FallbackMinChars,
	}

	if *headless {
		runHeadless(coord, snap, entrants, store)
		return
	}

	candidates := cfg.ModelCandidates()
	run := func(onEvent func(arena.Event)) (arena.Outcome, error) {
		coord.OnEvent = onEvent
		return coord.Run(context.Background(), snap, entrants)
	}

	p := tea.NewProgram(ui.NewProgress(candidates, run), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running lexarena: %v\n", err)
		os.Exit(1)
	}

	if pm, ok := finalModel.(ui.ProgressModel); ok && pm.Outcome() != nil {
		saveTurn(store, snap.Language, pm.Outcome())
	}
}

// setupLogging routes zerolog to stderr in headless mode and to a file under
// the data directory otherwise, so log lines never tear the TUI.
func setupLogging(dataDir string, headless, debug bool) (func(), error) {
	level := zerolog.InfoLevel
	if debug || os.Getenv("LEXARENA_DEBUG") != "" {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if headless {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		return func() {}, nil
	}

	logPath := filepath.Join(dataDir, "lexarena.log")
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}
	log.Logger = log.Output(f)
	return func() { f.Close() }, nil
}

// stateFile is the on-disk game state schema.
type stateFile struct {
	Rows         []string        `json:"rows"`
	Rack         []string        `json:"rack"`
	Language     string          `json:"language"`
	UsedPremiums map[string]bool `json:"used_premiums"`
}

func loadSnapshot(path, rack, language string) (model.Snapshot, error) {
	if path == "" {
		rows := make([]string, 15)
		for i := range rows {
			rows[i] = strings.Repeat(".", 15)
		}
		letters := make([]string, 0, len(rack))
		for _, r := range strings.ToUpper(rack) {
			letters = append(letters, string(r))
		}
		return model.Snapshot{Rows: rows, Rack: letters, Language: language}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to read state file: %w", err)
	}
	var sf stateFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to parse state file: %w", err)
	}
	if sf.Language == "" {
		sf.Language = language
	}
	return model.Snapshot{
		Rows:         sf.Rows,
		Rack:         sf.Rack,
		Language:     sf.Language,
		UsedPremiums: sf.UsedPremiums,
	}, nil
}

func buildEntrants(cfg *config.Config) ([]arena.Entrant, error) {
	candidates := cfg.ModelCandidates()
	entrants := make([]arena.Entrant, 0, len(candidates))
	for i, cand := range candidates {
		pcfg := provider.Config{
			Kind:        provider.MapKind(cand.Provider),
			BaseURL:     config.BaseURLFor(cfg.Candidates[i]),
			Model:       cand.Model,
			APIKey:      config.APIKeyFor(cand.Provider),
			CandidateID: cand.ID,
			HTTPTimeout: cand.Timeout,
		}
		client, err := provider.New(pcfg)
		if err != nil {
			return nil, fmt.Errorf("candidate %s: %w", cand.Name(), err)
		}
		entrants = append(entrants, arena.Entrant{Candidate: cand, Client: client})
	}
	return entrants, nil
}

func buildJudge(cfg *config.Config) (judge.Judge, error) {
	if cfg.Judge.Provider == "wordlist" {
		wl, err := judge.LoadWordlistJudge(config.ExpandPath(cfg.Judge.WordlistPath))
		if err != nil {
			return nil, err
		}
		return wl, nil
	}
	oj, err := judge.NewOpenAIJudge(config.APIKeyFor("openai"), cfg.Judge.Model, cfg.Judge.MaxOutputTokens)
	if err != nil {
		return nil, err
	}
	return oj, nil
}

// buildExtractor wires the last parser tier when an OpenAI key is present.
// Without it the tier reports itself unavailable instead of failing calls.
func buildExtractor() parse.Extractor {
	key := config.APIKeyFor("openai")
	if key == "" {
		return nil
	}
	cfg := provider.Config{
		Kind:        provider.KindOpenAI,
		Model:       judge.DefaultJudgeModel,
		APIKey:      key,
		CandidateID: "fallback-extractor",
	}
	client, err := provider.New(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("fallback extractor unavailable")
		return nil
	}
	return &parse.LLMExtractor{Provider: client}
}

func runHeadless(coord *arena.Coordinator, snap model.Snapshot, entrants []arena.Entrant, store *storage.TurnStore) {
	outcome, err := coord.Run(context.Background(), snap, entrants)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Competition failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-26s %-11s %6s  %s\n", "CANDIDATE", "STATUS", "SCORE", "DETAIL")
	for _, r := range outcome.Results {
		detail := ""
		switch {
		case r.Playable() && r.Move != nil && r.Move.Pass:
			detail = "pass"
		case r.Playable():
			detail = fmt.Sprintf("%s [%s]", strings.Join(r.Words, ", "), r.Move.Method)
		case r.JudgeReason != "":
			detail = r.JudgeReason
		default:
			detail = r.Diagnostic
		}
		fmt.Printf("%-26s %-11s %6d  %s\n", r.Candidate.Name(), r.Status, r.Score, detail)
	}

	switch {
	case outcome.Winner != nil:
		fmt.Printf("\nWinner: %s (%d points)\n", outcome.Winner.Candidate.Name(), outcome.Winner.Score)
	case outcome.BestAttempt != nil:
		fmt.Printf("\nNo legal move. Best attempt: %s (%s)\n",
			outcome.BestAttempt.Candidate.Name(), outcome.BestAttempt.Status)
	default:
		fmt.Println("\nNo legal move proposed.")
	}

	saveTurn(store, snap.Language, &outcome)
}

func saveTurn(store *storage.TurnStore, language string, outcome *arena.Outcome) {
	id, err := store.SaveTurn(language, outcome.Results, outcome.Winner)
	if err != nil {
		log.Error().Err(err).Msg("failed to save turn history")
		return
	}
	log.Info().Str("turn_id", id).Msg("turn saved")
}
