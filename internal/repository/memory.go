package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-replay/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-replay/internal/entity"
)

// memoryGame keeps records in process memory; they are lost on restart.
type memoryGame struct {
	mu    sync.RWMutex
	games map[string]*entity.GameRecord
}

func NewMemoryGameRepository() GameRepository {
	return &memoryGame{
		games: make(map[string]*entity.GameRecord),
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.GameRecord) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = cloneRecord(game)

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.GameRecord, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	return cloneRecord(game), nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	delete(that.games, id)

	return nil
}

// cloneRecord copies the history slice so callers never share it with the store.
func cloneRecord(game *entity.GameRecord) *entity.GameRecord {
	clone := *game
	clone.History = append([]entity.HistoryEntry(nil), game.History...)

	return &clone
}
