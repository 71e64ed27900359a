package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-replay/internal/entity"
	"github.com/rocketscienceinc/tictactoe-replay/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-replay/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.GameRecord) error
	GetByID(ctx context.Context, id string) (*entity.GameRecord, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager runs independent game sessions stored in a repository.
// Operations on the same game are serialized; different games proceed in parallel.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	mu    sync.Mutex
	locks map[string]*gameLock
}

// gameLock is dropped from the map once no caller holds or waits for it.
type gameLock struct {
	mu   sync.Mutex
	refs int
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
		locks:    make(map[string]*gameLock),
	}
}

func (that *GameManager) NewGame(ctx context.Context) (*presenter.View, error) {
	gameID := uuid.NewString()
	game := tictactoe.NewGame()

	if err := that.gameRepo.CreateOrUpdate(ctx, game.Record(gameID)); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", gameID)

	return presenter.NewView(gameID, game.State(), game.History()), nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*presenter.View, error) {
	game, err := that.loadGame(ctx, id)
	if err != nil {
		return nil, err
	}

	return presenter.NewView(id, game.State(), game.History()), nil
}

// MakeMove plays cell in the game. Ignored moves are not errors; the returned
// view simply shows the unchanged game.
func (that *GameManager) MakeMove(ctx context.Context, id string, cell int) (*presenter.View, error) {
	log := that.logger.With("method", "MakeMove", "gameID", id, "cell", cell)

	unlock := that.lock(id)
	defer unlock()

	game, err := that.loadGame(ctx, id)
	if err != nil {
		return nil, err
	}

	accepted, err := game.ApplyMove(cell)
	if err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	if !accepted {
		log.Debug("move ignored")
		return presenter.NewView(id, game.State(), game.History()), nil
	}

	if err = that.saveGame(ctx, id, game); err != nil {
		return nil, err
	}

	state := game.State()
	if state.Result.IsFinished() {
		log.Info("game finished", "outcome", state.Result.Outcome, "winner", state.Result.Winner)
	}

	return presenter.NewView(id, state, game.History()), nil
}

// JumpTo displays an earlier (or the latest) history step of the game.
func (that *GameManager) JumpTo(ctx context.Context, id string, step int) (*presenter.View, error) {
	unlock := that.lock(id)
	defer unlock()

	game, err := that.loadGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = game.JumpTo(step); err != nil {
		return nil, fmt.Errorf("failed to jump: %w", err)
	}

	if err = that.saveGame(ctx, id, game); err != nil {
		return nil, err
	}

	return presenter.NewView(id, game.State(), game.History()), nil
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	unlock := that.lock(id)
	defer unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

func (that *GameManager) loadGame(ctx context.Context, id string) (*tictactoe.Game, error) {
	record, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	game, err := tictactoe.Restore(record)
	if err != nil {
		that.logger.Error("stored game is corrupt", "gameID", id, "error", err)
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	return game, nil
}

func (that *GameManager) saveGame(ctx context.Context, id string, game *tictactoe.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game.Record(id)); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

// lock takes the per-game mutex and returns its release func.
func (that *GameManager) lock(id string) func() {
	that.mu.Lock()
	l, ok := that.locks[id]
	if !ok {
		l = &gameLock{}
		that.locks[id] = l
	}
	l.refs++
	that.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		that.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(that.locks, id)
		}
		that.mu.Unlock()
	}
}
