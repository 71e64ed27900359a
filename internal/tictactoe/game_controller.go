package tictactoe

import (
	"fmt"
	"slices"
	"sync"

	"github.com/rocketscienceinc/tictactoe-replay/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-replay/internal/entity"
)

// Game owns the displayed board, the turn and the move history of one session.
// All methods are safe for concurrent use; each call is atomic.
type Game struct {
	mu sync.Mutex

	board   entity.Board
	turn    entity.Mark
	result  entity.WinResult
	step    int
	history *entity.History
}

func NewGame() *Game {
	return &Game{
		board:   entity.Board{},
		turn:    entity.PlayerX,
		result:  ComputeWinResult(entity.Board{}),
		history: entity.NewHistory(),
	}
}

// Restore rebuilds a game from a stored record by replaying its history.
// A record whose entries do not follow from the moves they describe is rejected.
func Restore(record *entity.GameRecord) (*Game, error) {
	if len(record.History) == 0 || record.History[0] != entity.NewHistory().Latest() {
		return nil, fmt.Errorf("%w: missing start entry", apperror.ErrCorruptHistory)
	}

	game := NewGame()

	for i, entry := range record.History[1:] {
		if entry.MovedBy != game.turn {
			return nil, fmt.Errorf("%w: step %d moved by %q, expected %q", apperror.ErrCorruptHistory, i+1, entry.MovedBy, game.turn)
		}

		accepted, err := game.ApplyMove(entry.MovedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: step %d: %w", apperror.ErrCorruptHistory, i+1, err)
		}

		if !accepted || game.board != entry.Board {
			return nil, fmt.Errorf("%w: step %d does not match its move", apperror.ErrCorruptHistory, i+1)
		}
	}

	if err := game.JumpTo(record.Step); err != nil {
		return nil, fmt.Errorf("failed to restore displayed step: %w", err)
	}

	return game, nil
}

// ApplyMove places the current turn's mark on cell.
// Moves on an occupied cell, on a finished board, or while an earlier step is
// displayed are ignored and reported as not accepted.
func (that *Game) ApplyMove(cell int) (bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if cell < 0 || cell >= entity.BoardSize {
		return false, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.board[cell] != entity.EmptyCell || that.result.IsFinished() {
		return false, nil
	}

	if that.step != that.history.Len()-1 {
		return false, nil
	}

	mover := that.turn

	that.board = that.board.With(cell, mover)
	that.turn = mover.Opponent()
	that.result = ComputeWinResult(that.board)

	that.history.Append(entity.HistoryEntry{
		Board:   that.board,
		MovedBy: mover,
		MovedAt: cell,
	})
	that.step = that.history.Len() - 1

	return true, nil
}

// JumpTo displays the board stored at the given history step.
// Turn and result are derived from that board; history is left untouched.
func (that *Game) JumpTo(step int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, err := that.history.Get(step)
	if err != nil {
		return fmt.Errorf("failed to jump: %w", err)
	}

	that.board = entry.Board
	that.turn = turnFor(entry.Board)
	that.result = ComputeWinResult(entry.Board)
	that.step = step

	return nil
}

// State returns a snapshot of what is currently displayed.
// The snapshot shares no memory with the game.
func (that *Game) State() entity.GameState {
	that.mu.Lock()
	defer that.mu.Unlock()

	result := that.result
	result.Line = slices.Clone(that.result.Line)

	return entity.GameState{
		Board:  that.board,
		Turn:   that.turn,
		Result: result,
		Step:   that.step,
		Latest: that.history.Len() - 1,
	}
}

// History returns a copy of all recorded entries.
func (that *Game) History() []entity.HistoryEntry {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.history.Entries()
}

// Record returns the storable form of the game.
func (that *Game) Record(id string) *entity.GameRecord {
	that.mu.Lock()
	defer that.mu.Unlock()

	return &entity.GameRecord{
		ID:      id,
		History: that.history.Entries(),
		Step:    that.step,
	}
}

// ComputeWinResult checks the winning lines in order and reports the first complete one.
func ComputeWinResult(board entity.Board) entity.WinResult {
	for _, combo := range entity.WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return entity.WinResult{
				Outcome: entity.OutcomeWin,
				Winner:  a,
				Line:    []int{combo[0], combo[1], combo[2]},
			}
		}
	}

	// the game continues while any cell is empty
	if !board.IsFull() {
		return entity.WinResult{Outcome: entity.OutcomeNone}
	}

	return entity.WinResult{Outcome: entity.OutcomeDraw}
}

// turnFor derives whose turn it is from the marks on the board; X always opens.
func turnFor(board entity.Board) entity.Mark {
	if board.Count(entity.PlayerX) > board.Count(entity.PlayerO) {
		return entity.PlayerO
	}
	return entity.PlayerX
}
