package presenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-replay/internal/entity"
	"github.com/rocketscienceinc/tictactoe-replay/internal/tictactoe"
)

func TestStatusText(t *testing.T) {
	t.Run("Announces the next player", func(t *testing.T) {
		state := entity.GameState{Turn: entity.PlayerO, Result: entity.WinResult{Outcome: entity.OutcomeNone}}

		assert.Equal(t, "Next player: O", StatusText(state))
	})

	t.Run("Announces the winner", func(t *testing.T) {
		state := entity.GameState{
			Turn:   entity.PlayerO,
			Result: entity.WinResult{Outcome: entity.OutcomeWin, Winner: entity.PlayerX, Line: []int{0, 1, 2}},
		}

		assert.Equal(t, "X wins", StatusText(state))
	})

	t.Run("Announces a draw", func(t *testing.T) {
		state := entity.GameState{Turn: entity.PlayerO, Result: entity.WinResult{Outcome: entity.OutcomeDraw}}

		assert.Equal(t, "Draw", StatusText(state))
	})
}

func TestStepLabel(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		entry    entity.HistoryEntry
		expected string
	}{
		{name: "Start entry", index: 0, entry: entity.HistoryEntry{}, expected: "Game start"},
		{name: "Top left", index: 1, entry: entity.HistoryEntry{MovedBy: entity.PlayerX, MovedAt: 0}, expected: "X (1, 1)"},
		{name: "Center", index: 2, entry: entity.HistoryEntry{MovedBy: entity.PlayerO, MovedAt: 4}, expected: "O (2, 2)"},
		{name: "Bottom left", index: 3, entry: entity.HistoryEntry{MovedBy: entity.PlayerX, MovedAt: 6}, expected: "X (3, 1)"},
		{name: "Middle right", index: 4, entry: entity.HistoryEntry{MovedBy: entity.PlayerO, MovedAt: 5}, expected: "O (2, 3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StepLabel(tt.index, tt.entry))
		})
	}
}

func TestNewView(t *testing.T) {
	// Given: a game won by X and rewound to step 1
	game := tictactoe.NewGame()
	for _, cell := range []int{0, 4, 1, 5, 2} {
		_, err := game.ApplyMove(cell)
		require.NoError(t, err)
	}
	require.NoError(t, game.JumpTo(1))

	// When: the view is built
	view := NewView("g1", game.State(), game.History())

	// Then: the board and status reflect step 1
	assert.Equal(t, "g1", view.ID)
	assert.Equal(t, [9]string{"X", "", "", "", "", "", "", "", ""}, view.Board)
	assert.Equal(t, "O", view.Turn)
	assert.Equal(t, "Next player: O", view.Status)
	assert.Equal(t, entity.OutcomeNone, view.Outcome)
	assert.Empty(t, view.WinLine)
	assert.True(t, view.Rewound)

	// Then: every step is labelled and step 1 is marked current
	require.Len(t, view.Steps, 6)
	assert.Equal(t, Step{Index: 0, Label: "Game start"}, view.Steps[0])
	assert.Equal(t, Step{Index: 1, Label: "X (1, 1)", Current: true}, view.Steps[1])
	assert.Equal(t, Step{Index: 5, Label: "X (1, 3)"}, view.Steps[5])
}
