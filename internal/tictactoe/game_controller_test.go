package tictactoe

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-replay/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-replay/internal/entity"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

func playMoves(t *testing.T, game *Game, cells ...int) {
	t.Helper()

	for _, cell := range cells {
		accepted, err := game.ApplyMove(cell)
		require.NoError(t, err)
		require.True(t, accepted, "move to cell %d was ignored", cell)
	}
}

func TestNewGame(t *testing.T) {
	// When: a new game is created
	game := NewGame()

	// Then: the board is empty, X plays first and nobody has won
	expectedState := entity.GameState{
		Board:  entity.Board{},
		Turn:   x,
		Result: entity.WinResult{Outcome: entity.OutcomeNone},
		Step:   0,
		Latest: 0,
	}
	require.Equal(t, expectedState, game.State())

	// Then: the history holds only the start entry
	require.Equal(t, []entity.HistoryEntry{{Board: entity.Board{}, MovedBy: e, MovedAt: 0}}, game.History())
}

func TestGame_ApplyMove(t *testing.T) {
	t.Run("Places the mark and flips the turn", func(t *testing.T) {
		// Given: a new game
		game := NewGame()

		// When: X plays the center
		accepted, err := game.ApplyMove(4)

		// Then: the move is accepted and O is next
		require.NoError(t, err)
		assert.True(t, accepted)

		state := game.State()
		assert.Equal(t, entity.Board{e, e, e, e, x, e, e, e, e}, state.Board)
		assert.Equal(t, o, state.Turn)
		assert.Equal(t, entity.OutcomeNone, state.Result.Outcome)
		assert.Equal(t, 1, state.Step)

		// Then: the history records who moved where
		history := game.History()
		require.Len(t, history, 2)
		assert.Equal(t, entity.HistoryEntry{Board: state.Board, MovedBy: x, MovedAt: 4}, history[1])
	})

	t.Run("Turns alternate starting with X", func(t *testing.T) {
		// Given: a new game
		game := NewGame()

		// When: four moves are played
		playMoves(t, game, 0, 1, 2, 3)

		// Then: the movers alternate X, O, X, O
		history := game.History()
		movers := make([]entity.Mark, 0, len(history)-1)
		for _, entry := range history[1:] {
			movers = append(movers, entry.MovedBy)
		}
		assert.Equal(t, []entity.Mark{x, o, x, o}, movers)
		assert.Equal(t, x, game.State().Turn)
	})

	t.Run("Ignores a move on an occupied cell", func(t *testing.T) {
		// Given: a game where X holds cell 0
		game := NewGame()
		playMoves(t, game, 0)
		before := game.State()

		// When: O tries cell 0 as well
		accepted, err := game.ApplyMove(0)

		// Then: nothing changes and no error is reported
		require.NoError(t, err)
		assert.False(t, accepted)
		assert.Equal(t, before, game.State())
		assert.Len(t, game.History(), 2)
	})

	t.Run("Rejects out of range cells", func(t *testing.T) {
		for _, cell := range []int{-1, 9, 20} {
			// Given: a new game
			game := NewGame()

			// When: a cell outside the board is played
			accepted, err := game.ApplyMove(cell)

			// Then: the caller gets ErrInvalidCell and the game is untouched
			require.ErrorIs(t, err, apperror.ErrInvalidCell)
			assert.False(t, accepted)
			assert.Len(t, game.History(), 1)
		}
	})

	t.Run("X wins on the top row", func(t *testing.T) {
		// Given: a new game
		game := NewGame()

		// When: X plays 0, 1, 2 while O plays 4, 5
		playMoves(t, game, 0, 4, 1, 5, 2)

		// Then: X wins with line 0-1-2
		state := game.State()
		assert.Equal(t, entity.Board{x, x, x, e, o, o, e, e, e}, state.Board)
		assert.Equal(t, entity.WinResult{Outcome: entity.OutcomeWin, Winner: x, Line: []int{0, 1, 2}}, state.Result)

		// When: someone tries to keep playing on any empty cell
		for _, cell := range []int{3, 6, 7, 8} {
			accepted, err := game.ApplyMove(cell)

			// Then: the move is ignored
			require.NoError(t, err)
			assert.False(t, accepted, "cell %d", cell)
			assert.Equal(t, state, game.State())
			assert.Len(t, game.History(), 6)
		}
	})

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		// Given: a new game
		game := NewGame()

		// When: the board is filled without three in a row
		playMoves(t, game, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// Then: the game is drawn and further moves are ignored
		assert.Equal(t, entity.WinResult{Outcome: entity.OutcomeDraw}, game.State().Result)

		accepted, err := game.ApplyMove(0)
		require.NoError(t, err)
		assert.False(t, accepted)
		assert.Len(t, game.History(), 10)
	})

	t.Run("Finished game ignores moves after rewinding to the end", func(t *testing.T) {
		// Given: a won game displayed at its latest step after a rewind
		game := NewGame()
		playMoves(t, game, 0, 4, 1, 5, 2)
		require.NoError(t, game.JumpTo(2))
		require.NoError(t, game.JumpTo(5))

		// When: every empty cell is tried
		for cell := range entity.BoardSize {
			if game.State().Board[cell] != e {
				continue
			}

			accepted, err := game.ApplyMove(cell)

			// Then: none is accepted
			require.NoError(t, err)
			assert.False(t, accepted, "cell %d", cell)
		}
		assert.Len(t, game.History(), 6)
	})

	t.Run("Ignores moves while an earlier step is displayed", func(t *testing.T) {
		// Given: a game rewound to its second entry
		game := NewGame()
		playMoves(t, game, 0, 4, 8)
		require.NoError(t, game.JumpTo(1))
		before := game.State()

		// When: a move is made on an empty cell
		accepted, err := game.ApplyMove(2)

		// Then: it is ignored and history keeps all entries
		require.NoError(t, err)
		assert.False(t, accepted)
		assert.Equal(t, before, game.State())
		assert.Len(t, game.History(), 4)

		// When: the latest step is displayed again
		require.NoError(t, game.JumpTo(3))

		// Then: play resumes
		playMoves(t, game, 2)
		assert.Len(t, game.History(), 5)
	})
}

func TestGame_JumpTo(t *testing.T) {
	t.Run("Step zero restores the empty board", func(t *testing.T) {
		// Given: a finished game
		game := NewGame()
		playMoves(t, game, 0, 4, 1, 5, 2)

		// When: jumping to the start
		err := game.JumpTo(0)

		// Then: the board is empty, X is next and nobody has won
		require.NoError(t, err)
		state := game.State()
		assert.Equal(t, entity.Board{}, state.Board)
		assert.Equal(t, x, state.Turn)
		assert.Equal(t, entity.WinResult{Outcome: entity.OutcomeNone}, state.Result)
		assert.True(t, state.IsRewound())
	})

	t.Run("Every step round-trips its board", func(t *testing.T) {
		// Given: a drawn game
		game := NewGame()
		playMoves(t, game, 0, 1, 2, 4, 3, 5, 7, 6, 8)
		history := game.History()

		for i, entry := range history {
			// When: jumping to step i
			require.NoError(t, game.JumpTo(i))

			// Then: the displayed board is exactly the recorded one
			if diff := cmp.Diff(entry.Board, game.State().Board); diff != "" {
				t.Errorf("step %d board mismatch (-want +got):\n%s", i, diff)
			}

			// Then: the turn follows from the marks on the board
			expectedTurn := x
			if i%2 == 1 {
				expectedTurn = o
			}
			assert.Equal(t, expectedTurn, game.State().Turn, "step %d", i)
		}

		// Then: history is unchanged by jumping around
		assert.Empty(t, cmp.Diff(history, game.History()))
	})

	t.Run("Jumping to the final step shows the result again", func(t *testing.T) {
		// Given: a won game viewed at its start
		game := NewGame()
		playMoves(t, game, 0, 4, 1, 5, 2)
		require.NoError(t, game.JumpTo(0))

		// When: jumping to the last step
		require.NoError(t, game.JumpTo(5))

		// Then: the win is reported
		assert.Equal(t, entity.OutcomeWin, game.State().Result.Outcome)
		assert.False(t, game.State().IsRewound())
	})

	t.Run("Rejects out of range steps", func(t *testing.T) {
		// Given: a game with one move
		game := NewGame()
		playMoves(t, game, 0)
		before := game.State()

		for _, step := range []int{-1, 2, 100} {
			// When: jumping outside the history
			err := game.JumpTo(step)

			// Then: ErrInvalidStep is returned and nothing changes
			require.ErrorIs(t, err, apperror.ErrInvalidStep)
			assert.Equal(t, before, game.State())
		}
	})
}

func TestGame_State(t *testing.T) {
	t.Run("Snapshot changes do not reach the game", func(t *testing.T) {
		// Given: a game X won on the top row
		game := NewGame()
		playMoves(t, game, 0, 4, 1, 5, 2)

		// When: the caller edits a snapshot
		snapshot := game.State()
		snapshot.Result.Line[0] = 8
		snapshot.Board[3] = o

		// Then: the game still reports its own line and board
		state := game.State()
		assert.Equal(t, []int{0, 1, 2}, state.Result.Line)
		assert.Equal(t, e, state.Board[3])
	})

	t.Run("History copies do not reach the game", func(t *testing.T) {
		// Given: a game with one move
		game := NewGame()
		playMoves(t, game, 4)

		// When: the caller edits the returned history
		entries := game.History()
		entries[1].Board[0] = o

		// Then: the stored entry is unchanged
		assert.Equal(t, e, game.History()[1].Board[0])
	})
}

func TestComputeWinResult(t *testing.T) {
	tests := []struct {
		name     string
		board    entity.Board
		expected entity.WinResult
	}{
		{
			name:     "Empty board",
			board:    entity.Board{},
			expected: entity.WinResult{Outcome: entity.OutcomeNone},
		},
		{
			name:     "Column win for X",
			board:    entity.Board{x, o, e, x, o, e, x, e, e},
			expected: entity.WinResult{Outcome: entity.OutcomeWin, Winner: x, Line: []int{0, 3, 6}},
		},
		{
			name:     "Anti-diagonal win for O",
			board:    entity.Board{x, x, o, e, o, e, o, e, x},
			expected: entity.WinResult{Outcome: entity.OutcomeWin, Winner: o, Line: []int{2, 4, 6}},
		},
		{
			name:     "Earliest line wins when two are complete",
			board:    entity.Board{x, x, x, x, o, o, x, o, o},
			expected: entity.WinResult{Outcome: entity.OutcomeWin, Winner: x, Line: []int{0, 1, 2}},
		},
		{
			name:     "Ongoing game",
			board:    entity.Board{x, o, x, e, o, e, x, e, e},
			expected: entity.WinResult{Outcome: entity.OutcomeNone},
		},
		{
			name:     "Draw",
			board:    entity.Board{o, x, o, o, x, x, x, o, x},
			expected: entity.WinResult{Outcome: entity.OutcomeDraw},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When: the result is computed twice
			first := ComputeWinResult(tt.board)
			second := ComputeWinResult(tt.board)

			// Then: it matches the expectation and is deterministic
			assert.Equal(t, tt.expected, first)
			assert.Equal(t, first, second)
		})
	}
}

func TestRestore(t *testing.T) {
	t.Run("Rebuilds a game from its record", func(t *testing.T) {
		// Given: a record of a won game displayed at step 2
		original := NewGame()
		playMoves(t, original, 0, 4, 1, 5, 2)
		require.NoError(t, original.JumpTo(2))
		record := original.Record("g1")

		// When: the record is restored
		restored, err := Restore(record)

		// Then: the state and history are identical
		require.NoError(t, err)
		assert.Equal(t, original.State(), restored.State())
		assert.Equal(t, original.History(), restored.History())
	})

	t.Run("Rejects a record without a start entry", func(t *testing.T) {
		// Given: an empty record
		record := &entity.GameRecord{ID: "g1"}

		// When: it is restored
		_, err := Restore(record)

		// Then: ErrCorruptHistory is returned
		require.ErrorIs(t, err, apperror.ErrCorruptHistory)
	})

	t.Run("Rejects a record whose boards do not follow from the moves", func(t *testing.T) {
		// Given: a record where step 1 claims a different board
		record := NewGame().Record("g1")
		record.History = append(record.History, entity.HistoryEntry{
			Board:   entity.Board{e, x, e, e, e, e, e, e, e},
			MovedBy: x,
			MovedAt: 0,
		})

		// When: it is restored
		_, err := Restore(record)

		// Then: ErrCorruptHistory is returned
		require.ErrorIs(t, err, apperror.ErrCorruptHistory)
	})

	t.Run("Rejects a record with the wrong mover", func(t *testing.T) {
		// Given: a record where O opens the game
		record := NewGame().Record("g1")
		record.History = append(record.History, entity.HistoryEntry{
			Board:   entity.Board{o, e, e, e, e, e, e, e, e},
			MovedBy: o,
			MovedAt: 0,
		})

		// When: it is restored
		_, err := Restore(record)

		// Then: ErrCorruptHistory is returned
		require.ErrorIs(t, err, apperror.ErrCorruptHistory)
	})

	t.Run("Rejects a displayed step outside the history", func(t *testing.T) {
		// Given: a record pointing past its last entry
		record := NewGame().Record("g1")
		record.Step = 3

		// When: it is restored
		_, err := Restore(record)

		// Then: ErrInvalidStep is returned
		require.ErrorIs(t, err, apperror.ErrInvalidStep)
	})
}
