// Package presenter turns game snapshots into display data for clients.
// The core never formats text; everything human readable is built here.
package presenter

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-replay/internal/entity"
)

const startLabel = "Game start"

// Step is one selectable entry of the move list.
type Step struct {
	Index   int    `json:"index"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
}

// View is everything a client needs to draw a game.
type View struct {
	ID      string         `json:"id"`
	Board   [9]string      `json:"board"`
	Turn    string         `json:"turn"`
	Status  string         `json:"status"`
	Outcome entity.Outcome `json:"outcome"`
	Winner  string         `json:"winner,omitempty"`
	WinLine []int          `json:"win_line,omitempty"`
	Step    int            `json:"step"`
	Rewound bool           `json:"rewound"`
	Steps   []Step         `json:"steps"`
}

// StatusText describes the displayed state in one line.
func StatusText(state entity.GameState) string {
	switch state.Result.Outcome {
	case entity.OutcomeWin:
		return fmt.Sprintf("%s wins", state.Result.Winner)
	case entity.OutcomeDraw:
		return "Draw"
	default:
		return fmt.Sprintf("Next player: %s", state.Turn)
	}
}

// StepLabel names a history entry as "mover (row, col)", 1-based.
func StepLabel(index int, entry entity.HistoryEntry) string {
	if index == 0 || entry.IsStart() {
		return startLabel
	}

	row, col := entry.MovedAt/3+1, entry.MovedAt%3+1

	return fmt.Sprintf("%s (%d, %d)", entry.MovedBy, row, col)
}

func NewView(id string, state entity.GameState, history []entity.HistoryEntry) *View {
	view := &View{
		ID:      id,
		Turn:    string(state.Turn),
		Status:  StatusText(state),
		Outcome: state.Result.Outcome,
		Winner:  string(state.Result.Winner),
		WinLine: state.Result.Line,
		Step:    state.Step,
		Rewound: state.IsRewound(),
		Steps:   make([]Step, 0, len(history)),
	}

	for i, cell := range state.Board {
		view.Board[i] = string(cell)
	}

	for i, entry := range history {
		view.Steps = append(view.Steps, Step{
			Index:   i,
			Label:   StepLabel(i, entry),
			Current: i == state.Step,
		})
	}

	return view
}
