// Package storage persists competition history in SQLite so past turns can
// be inspected after the fact.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"lexarena/model"
)

// TurnStore records one row per candidate result per turn.
type TurnStore struct {
	db *sql.DB
}

// TurnMeta is a lightweight listing entry for one stored turn.
type TurnMeta struct {
	ID        string
	CreatedAt time.Time
	Language  string
	WinnerID  string
	Results   int
}

// Turn is one fully loaded competition record.
type Turn struct {
	TurnMeta
	Results []model.CompetitionResult
}

const schema = `
CREATE TABLE IF NOT EXISTS turns (
	id         TEXT PRIMARY KEY,
	created_at TIMESTAMP NOT NULL,
	language   TEXT NOT NULL,
	winner_id  TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS results (
	turn_id      TEXT NOT NULL REFERENCES turns(id) ON DELETE CASCADE,
	position     INTEGER NOT NULL,
	candidate_id TEXT NOT NULL,
	display_name TEXT NOT NULL,
	provider     TEXT NOT NULL,
	model        TEXT NOT NULL,
	status       TEXT NOT NULL,
	score        INTEGER NOT NULL,
	judge_valid  INTEGER NOT NULL,
	judge_reason TEXT NOT NULL,
	move_json    TEXT NOT NULL,
	words_json   TEXT NOT NULL,
	raw_text     TEXT NOT NULL,
	diagnostic   TEXT NOT NULL,
	elapsed_ms   INTEGER NOT NULL,
	PRIMARY KEY (turn_id, position)
);
`

// Open creates or opens the history database under dataDir.
func Open(dataDir string) (*TurnStore, error) {
	path := filepath.Join(dataDir, "history.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}
	return &TurnStore{db: db}, nil
}

// Close releases the database handle.
func (s *TurnStore) Close() error {
	return s.db.Close()
}

// SaveTurn stores a finished competition and returns its generated turn id.
func (s *TurnStore) SaveTurn(language string, results []model.CompetitionResult, winner *model.CompetitionResult) (string, error) {
	id := uuid.New().String()
	winnerID := ""
	if winner != nil {
		winnerID = winner.Candidate.ID
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO turns (id, created_at, language, winner_id) VALUES (?, ?, ?, ?)`,
		id, time.Now().UTC(), language, winnerID,
	); err != nil {
		return "", fmt.Errorf("failed to insert turn: %w", err)
	}

	for i, r := range results {
		moveJSON := []byte("null")
		if r.Move != nil {
			moveJSON, err = json.Marshal(r.Move)
			if err != nil {
				return "", fmt.Errorf("failed to marshal move: %w", err)
			}
		}
		wordsJSON, err := json.Marshal(r.Words)
		if err != nil {
			return "", fmt.Errorf("failed to marshal words: %w", err)
		}
		if _, err := tx.Exec(
			`INSERT INTO results (turn_id, position, candidate_id, display_name, provider, model,
				status, score, judge_valid, judge_reason, move_json, words_json, raw_text, diagnostic, elapsed_ms)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, r.Candidate.ID, r.Candidate.Name(), r.Candidate.Provider, r.Candidate.Model,
			string(r.Status), r.Score, boolInt(r.JudgeValid), r.JudgeReason,
			string(moveJSON), string(wordsJSON), r.RawText, r.Diagnostic, r.ElapsedMS,
		); err != nil {
			return "", fmt.Errorf("failed to insert result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit turn: %w", err)
	}
	return id, nil
}

// ListTurns returns stored turns, newest first.
func (s *TurnStore) ListTurns() ([]TurnMeta, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.created_at, t.language, t.winner_id, COUNT(r.turn_id)
		FROM turns t LEFT JOIN results r ON r.turn_id = t.id
		GROUP BY t.id ORDER BY t.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}
	defer rows.Close()

	var out []TurnMeta
	for rows.Next() {
		var m TurnMeta
		if err := rows.Scan(&m.ID, &m.CreatedAt, &m.Language, &m.WinnerID, &m.Results); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// LoadTurn loads one turn with its results in stored order.
func (s *TurnStore) LoadTurn(id string) (*Turn, error) {
	turn := &Turn{}
	err := s.db.QueryRow(
		`SELECT id, created_at, language, winner_id FROM turns WHERE id = ?`, id,
	).Scan(&turn.ID, &turn.CreatedAt, &turn.Language, &turn.WinnerID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("turn %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load turn: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT candidate_id, display_name, provider, model, status, score, judge_valid,
			judge_reason, move_json, words_json, raw_text, diagnostic, elapsed_ms
		 FROM results WHERE turn_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r model.CompetitionResult
		var status, moveJSON, wordsJSON string
		var judgeValid int
		if err := rows.Scan(&r.Candidate.ID, &r.Candidate.DisplayName, &r.Candidate.Provider,
			&r.Candidate.Model, &status, &r.Score, &judgeValid, &r.JudgeReason,
			&moveJSON, &wordsJSON, &r.RawText, &r.Diagnostic, &r.ElapsedMS); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		r.Status = model.Status(status)
		r.JudgeValid = judgeValid != 0
		if moveJSON != "null" && moveJSON != "" {
			var mv model.ParsedMove
			if err := json.Unmarshal([]byte(moveJSON), &mv); err != nil {
				return nil, fmt.Errorf("failed to unmarshal stored move: %w", err)
			}
			r.Move = &mv
		}
		if err := json.Unmarshal([]byte(wordsJSON), &r.Words); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stored words: %w", err)
		}
		turn.Results = append(turn.Results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	turn.TurnMeta.Results = len(turn.Results)
	return turn, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
