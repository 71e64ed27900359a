package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-replay/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-replay/internal/presenter"
)

var (
	errBadPayload     = errors.New("malformed payload")
	errGameIDRequired = errors.New("game_id is required")
	errCellRequired   = errors.New("cell is required")
	errStepRequired   = errors.New("step is required")
)

func (that *Server) handleNewGame(ctx context.Context, _ *Message) (*presenter.View, error) {
	view, err := that.uGame.NewGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game started", "gameID", view.ID)

	return view, nil
}

func (that *Server) handleGameState(ctx context.Context, msg *Message) (*presenter.View, error) {
	req, err := decodeRequest(msg)
	if err != nil {
		return nil, err
	}

	return that.uGame.GetGame(ctx, req.GameID)
}

func (that *Server) handleMove(ctx context.Context, msg *Message) (*presenter.View, error) {
	req, err := decodeRequest(msg)
	if err != nil {
		return nil, err
	}

	if req.Cell == nil {
		return nil, errCellRequired
	}

	return that.uGame.MakeMove(ctx, req.GameID, *req.Cell)
}

func (that *Server) handleJump(ctx context.Context, msg *Message) (*presenter.View, error) {
	req, err := decodeRequest(msg)
	if err != nil {
		return nil, err
	}

	if req.Step == nil {
		return nil, errStepRequired
	}

	return that.uGame.JumpTo(ctx, req.GameID, *req.Step)
}

// decodeRequest reads the payload of msg and checks that it names a game.
func decodeRequest(msg *Message) (*Request, error) {
	var req Request
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadPayload, err)
	}

	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	return &req, nil
}

// errorText is what the client sees; internal failures are not exposed.
func errorText(err error) string {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return "game not found"
	case errors.Is(err, apperror.ErrInvalidCell):
		return apperror.ErrInvalidCell.Error()
	case errors.Is(err, apperror.ErrInvalidStep):
		return apperror.ErrInvalidStep.Error()
	case errors.Is(err, errBadPayload):
		return errBadPayload.Error()
	case errors.Is(err, errGameIDRequired), errors.Is(err, errCellRequired), errors.Is(err, errStepRequired):
		return err.Error()
	default:
		return "internal error"
	}
}
