package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-replay/internal/apperror"
)

// HistoryEntry is one snapshot of the board. Entry 0 is the start state with no mover.
type HistoryEntry struct {
	Board   Board `json:"board"`
	MovedBy Mark  `json:"moved_by,omitempty"`
	MovedAt int   `json:"moved_at"`
}

// IsStart reports whether the entry is the synthetic start state.
func (that HistoryEntry) IsStart() bool {
	return that.MovedBy == EmptyCell
}

// History is an append-only log of board snapshots in chronological order.
type History struct {
	entries []HistoryEntry
}

// NewHistory returns a log holding only the empty start entry.
func NewHistory() *History {
	return &History{
		entries: []HistoryEntry{{Board: Board{}, MovedBy: EmptyCell, MovedAt: 0}},
	}
}

func (that *History) Append(entry HistoryEntry) {
	that.entries = append(that.entries, entry)
}

func (that *History) Get(index int) (HistoryEntry, error) {
	if index < 0 || index >= len(that.entries) {
		return HistoryEntry{}, fmt.Errorf("%w: step %d of %d", apperror.ErrInvalidStep, index, len(that.entries))
	}

	return that.entries[index], nil
}

func (that *History) Len() int {
	return len(that.entries)
}

// Latest returns the newest entry.
func (that *History) Latest() HistoryEntry {
	return that.entries[len(that.entries)-1]
}

// Entries returns a copy of the log, safe to hand to callers.
func (that *History) Entries() []HistoryEntry {
	return append([]HistoryEntry(nil), that.entries...)
}
