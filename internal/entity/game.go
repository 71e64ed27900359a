package entity

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	EmptyCell Mark = ""

	BoardSize = 9
)

const (
	OutcomeNone Outcome = "none"
	OutcomeWin  Outcome = "win"
	OutcomeDraw Outcome = "draw"
)

// WinCombos lists the winning lines in the order they are checked: rows, columns, diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Mark is the content of a single cell, or the player owning a turn.
type Mark string

// Opponent returns the mark that plays after this one.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Board is a row-major 3x3 grid. It is a value type, so copies never share cells.
type Board [BoardSize]Mark

// With returns a copy of the board with cell set to mark.
func (that Board) With(cell int, mark Mark) Board {
	that[cell] = mark
	return that
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Count returns how many cells hold mark.
func (that Board) Count(mark Mark) int {
	n := 0
	for _, cell := range that {
		if cell == mark {
			n++
		}
	}

	return n
}

type Outcome string

// WinResult describes whether a board is won, drawn or still open.
type WinResult struct {
	Outcome Outcome `json:"outcome"`
	Winner  Mark    `json:"winner,omitempty"`
	Line    []int   `json:"line,omitempty"`
}

func (that WinResult) IsFinished() bool {
	return that.Outcome == OutcomeWin || that.Outcome == OutcomeDraw
}

// GameState is a read-only snapshot of a game as it is displayed.
type GameState struct {
	Board  Board     `json:"board"`
	Turn   Mark      `json:"turn"`
	Result WinResult `json:"result"`
	// Step is the index of the history entry the board was taken from.
	Step int `json:"step"`
	// Latest is the index of the newest history entry.
	Latest int `json:"latest"`
}

// IsRewound reports whether an earlier history entry is being displayed.
func (that GameState) IsRewound() bool {
	return that.Step != that.Latest
}

// GameRecord is the storable form of a game: its history and the displayed step.
type GameRecord struct {
	ID      string         `json:"id"`
	History []HistoryEntry `json:"history"`
	Step    int            `json:"step"`
}
