package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gameroomdev/tictactoe/internal/apperror"
)

// Client actions. Every request is answered with the same action, except
// failures which come back as ActionError.
const (
	ActionConnect     = "connect"
	ActionNewGame     = "game:new"
	ActionTurn        = "game:turn"
	ActionMode        = "game:mode"
	ActionResetScores = "game:reset-scores"
	ActionError       = "error"
)

func (that *Server) handleConnect(ctx context.Context, sessionID string, _ *Message) (*ResponsePayload, error) {
	sess, err := that.manager.GetOrCreateSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create session: %w", err)
	}

	return &ResponsePayload{Session: newSessionResponse(sess)}, nil
}

func (that *Server) handleNewGame(ctx context.Context, sessionID string, _ *Message) (*ResponsePayload, error) {
	sess, err := that.manager.NewGame(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to start new game: %w", err)
	}

	return &ResponsePayload{Session: newSessionResponse(sess)}, nil
}

func (that *Server) handleTurn(ctx context.Context, sessionID string, msg *Message) (*ResponsePayload, error) {
	var payload TurnPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal turn payload: %w", err)
	}

	sess, err := that.manager.MakeTurn(ctx, sessionID, payload.Position)
	if err != nil {
		// rule violations keep the connection and the session view alive
		if sess != nil && isRuleViolation(err) {
			return &ResponsePayload{
				Session: newSessionResponse(sess),
				Error:   err.Error(),
			}, nil
		}

		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	return &ResponsePayload{Session: newSessionResponse(sess)}, nil
}

func (that *Server) handleChangeMode(ctx context.Context, sessionID string, msg *Message) (*ResponsePayload, error) {
	var payload ModePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mode payload: %w", err)
	}

	sess, err := that.manager.ChangeMode(ctx, sessionID, payload.Mode)
	if err != nil {
		if errors.Is(err, apperror.ErrUnknownMode) {
			return &ResponsePayload{
				Session: newSessionResponse(sess),
				Error:   err.Error(),
			}, nil
		}

		return nil, fmt.Errorf("failed to change mode: %w", err)
	}

	return &ResponsePayload{Session: newSessionResponse(sess)}, nil
}

func (that *Server) handleResetScores(ctx context.Context, sessionID string, _ *Message) (*ResponsePayload, error) {
	sess, err := that.manager.ResetScores(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to reset scores: %w", err)
	}

	return &ResponsePayload{Session: newSessionResponse(sess)}, nil
}

// isRuleViolation - tells a rejected move apart from an infrastructure failure.
func isRuleViolation(err error) bool {
	return errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrInvalidPosition) ||
		errors.Is(err, apperror.ErrNotYourTurn) ||
		errors.Is(err, apperror.ErrGameFinished)
}
