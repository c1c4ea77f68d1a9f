// Package ui renders the live competition view: one row per candidate that
// updates as its pipeline advances, then the final standings and winner.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"lexarena/arena"
	"lexarena/model"
)

// RunFunc executes one competition, reporting progress through onEvent.
// The progress model calls it exactly once, from a tea command.
type RunFunc func(onEvent func(arena.Event)) (arena.Outcome, error)

type eventMsg arena.Event

type outcomeMsg arena.Outcome

type runErrMsg struct{ err error }

type row struct {
	candidate model.Candidate
	stage     arena.Stage
	result    *model.CompetitionResult
}

// ProgressModel is the bubbletea model for one competition.
type ProgressModel struct {
	run     RunFunc
	events  chan arena.Event
	spinner spinner.Model

	rows  []row
	index map[string]int

	outcome *arena.Outcome
	err     error
	width   int
}

// NewProgress builds the view for the given candidates, in declaration order.
func NewProgress(candidates []model.Candidate, run RunFunc) ProgressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = DimStyle

	rows := make([]row, len(candidates))
	index := make(map[string]int, len(candidates))
	for i, c := range candidates {
		rows[i] = row{candidate: c, stage: arena.StageCalling}
		index[c.ID] = i
	}
	return ProgressModel{
		run:     run,
		events:  make(chan arena.Event, len(candidates)*4),
		spinner: sp,
		rows:    rows,
		index:   index,
		width:   80,
	}
}

// Outcome returns the finished competition, or nil if it is still running.
func (m ProgressModel) Outcome() *arena.Outcome {
	return m.outcome
}

// Err returns the startup error, if the competition could not run.
func (m ProgressModel) Err() error {
	return m.err
}

func (m ProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startRun(), m.waitForEvent())
}

func (m ProgressModel) startRun() tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.run(func(ev arena.Event) { m.events <- ev })
		if err != nil {
			return runErrMsg{err: err}
		}
		return outcomeMsg(outcome)
	}
}

func (m ProgressModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return eventMsg(<-m.events)
	}
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c", "enter":
			if m.outcome != nil || m.err != nil {
				return m, tea.Quit
			}
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case eventMsg:
		if i, ok := m.index[msg.CandidateID]; ok {
			m.rows[i].stage = msg.Stage
			if msg.Stage == arena.StageDone {
				m.rows[i].result = msg.Result
			}
		}
		return m, m.waitForEvent()

	case outcomeMsg:
		outcome := arena.Outcome(msg)
		m.outcome = &outcome
		return m, nil

	case runErrMsg:
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ProgressModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Move competition"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(ErrorStyle.Render("failed: " + m.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(FormatFooter("q", "Quit"))
		return b.String()
	}

	for _, r := range m.rows {
		b.WriteString(m.renderRow(r))
		b.WriteByte('\n')
	}

	if m.outcome == nil {
		b.WriteString("\n" + DimStyle.Render("waiting for all candidates..."))
		return b.String()
	}

	b.WriteByte('\n')
	switch {
	case m.outcome.Winner != nil:
		w := m.outcome.Winner
		b.WriteString(WinnerStyle.Render(fmt.Sprintf("Winner: %s (%d points)", w.Candidate.Name(), w.Score)))
	case m.outcome.BestAttempt != nil:
		ba := m.outcome.BestAttempt
		b.WriteString(InvalidStyle.Render(fmt.Sprintf("No legal move. Best attempt: %s (%s)", ba.Candidate.Name(), describeFailure(*ba))))
	default:
		b.WriteString(InvalidStyle.Render("No legal move proposed."))
	}
	b.WriteString("\n\n")
	b.WriteString(FormatFooter("enter", "Accept", "q", "Quit"))
	return b.String()
}

func (m ProgressModel) renderRow(r row) string {
	name := NameStyle.Render(runewidth.FillRight(runewidth.Truncate(r.candidate.Name(), 24, "…"), 24))

	if r.result == nil {
		return fmt.Sprintf("%s %s %s", m.spinner.View(), name, DimStyle.Render(stageLabel(r.stage)))
	}

	res := *r.result
	detail := DimStyle.Render(preview(res, m.width-40))
	switch res.Status {
	case model.StatusOK:
		label := fmt.Sprintf("%3d pts", res.Score)
		if res.Move != nil && res.Move.Pass {
			label = "pass"
		}
		return fmt.Sprintf("%s %s %s %s", OKStyle.Render("✓"), name, OKStyle.Render(label), detail)
	case model.StatusInvalid:
		return fmt.Sprintf("%s %s %s %s", InvalidStyle.Render("✗"), name, InvalidStyle.Render("invalid"), detail)
	default:
		return fmt.Sprintf("%s %s %s %s", ErrorStyle.Render("✗"), name, ErrorStyle.Render(string(res.Status)), detail)
	}
}

func stageLabel(s arena.Stage) string {
	switch s {
	case arena.StageCalling:
		return "calling model..."
	case arena.StageParsing:
		return "parsing response..."
	case arena.StageValidating:
		return "validating words..."
	default:
		return string(s)
	}
}

func describeFailure(r model.CompetitionResult) string {
	switch r.Status {
	case model.StatusInvalid:
		if r.JudgeReason != "" {
			return r.JudgeReason
		}
		return "move rejected"
	case model.StatusTimeout:
		return "timed out"
	default:
		if r.Diagnostic != "" {
			return r.Diagnostic
		}
		return string(r.Status)
	}
}

// preview picks the most useful one-liner for a finished row.
func preview(r model.CompetitionResult, width int) string {
	if width < 10 {
		width = 10
	}
	var s string
	switch {
	case r.Status == model.StatusOK && r.Move != nil && !r.Move.Pass:
		s = fmt.Sprintf("%s [%s]", strings.Join(r.Words, ", "), r.Move.Method)
	case r.Status == model.StatusInvalid && r.JudgeReason != "":
		s = r.JudgeReason
	case r.Diagnostic != "":
		s = r.Diagnostic
	default:
		s = strings.TrimSpace(r.RawText)
	}
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.Truncate(s, width, "…")
}
