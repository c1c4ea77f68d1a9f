package model

// WordReason is the referee's verdict for a single formed word.
type WordReason struct {
	Word   string `json:"word"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

// Verdict aggregates the referee's per-word judgments for one candidate.
type Verdict struct {
	AllValid bool
	Words    []WordReason
}

// Reasons joins the per-word rejection reasons for display.
func (v Verdict) Reasons() string {
	out := ""
	for _, w := range v.Words {
		if w.Valid {
			continue
		}
		if out != "" {
			out += "; "
		}
		out += w.Word + ": " + w.Reason
	}
	return out
}

// Status is the terminal classification of one candidate's attempt.
type Status string

const (
	StatusOK         Status = "ok"
	StatusInvalid    Status = "invalid"
	StatusParseError Status = "parse_error"
	StatusTimeout    Status = "timeout"
	StatusError      Status = "error"
)

// statusRank orders statuses for display: ok > invalid > parse_error >
// timeout > error. Lower is better.
var statusRank = map[Status]int{
	StatusOK:         0,
	StatusInvalid:    1,
	StatusParseError: 2,
	StatusTimeout:    3,
	StatusError:      4,
}

// Rank returns the display rank of s; unknown statuses sort last.
func (s Status) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return len(statusRank)
}

// CompetitionResult is the terminal record for one candidate in one
// orchestration call. Exactly one is produced per candidate; once finalized
// it is never mutated; the aggregator and any UI only read it.
//
// Field population follows the status:
//   - StatusOK: Move, Score, Words and JudgeValid are set; Diagnostic may
//     note which envelope field the text was recovered from.
//   - StatusInvalid: Move, Score, Words set; JudgeValid is false.
//   - StatusParseError: Move is nil; Diagnostic names the tiers attempted.
//   - StatusTimeout / StatusError: Move is nil; Diagnostic has the cause.
type CompetitionResult struct {
	Candidate  Candidate
	Status     Status
	Move       *ParsedMove
	Score      int
	Words      []string
	JudgeValid bool
	// JudgeReason carries the referee's rejection reasons when invalid.
	JudgeReason string
	RawText     string
	Diagnostic  string
	// ElapsedMS is the candidate pipeline's wall-clock time, for display.
	ElapsedMS int64
}

// Playable reports whether this result can win the turn.
func (r CompetitionResult) Playable() bool {
	return r.Status == StatusOK && r.JudgeValid
}
