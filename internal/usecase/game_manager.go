package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gameroomdev/tictactoe/internal/apperror"
	"github.com/gameroomdev/tictactoe/internal/game"
	"github.com/gameroomdev/tictactoe/internal/session"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, sess *session.Session) error
	GetByID(ctx context.Context, id string) (*session.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type bot interface {
	Move(board game.Board, botMark, humanMark, difficulty string) int
}

// GameManager drives sessions on behalf of the transports: it loads a
// session, applies one event, lets the bot answer when its turn comes up,
// and stores the result.
type GameManager struct {
	logger *slog.Logger

	sessionRepo sessionRepo
	bot         bot

	defaultMode string
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, bot bot, defaultMode string) *GameManager {
	return &GameManager{
		logger: logger,

		sessionRepo: sessionRepo,
		bot:         bot,

		defaultMode: defaultMode,
	}
}

// GetOrCreateSession returns the stored session or starts a fresh one in
// the default mode.
func (that *GameManager) GetOrCreateSession(ctx context.Context, id string) (*session.Session, error) {
	sess, err := that.sessionRepo.GetByID(ctx, id)
	if err == nil {
		return sess, nil
	}

	if !errors.Is(err, apperror.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	sess, err = session.New(id, that.defaultMode, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	that.logger.Info("registered new session", "sessionID", id, "mode", sess.Mode)

	return sess, nil
}

// GetSession returns the stored session.
func (that *GameManager) GetSession(ctx context.Context, id string) (*session.Session, error) {
	sess, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return sess, nil
}

// MakeTurn applies the human move and, in a bot mode, computes and applies
// the reply turn before saving.
func (that *GameManager) MakeTurn(ctx context.Context, sessionID string, position int) (*session.Session, error) {
	sess, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	if err = sess.SelectCell(position); err != nil {
		return sess, fmt.Errorf("failed to make turn: %w", err)
	}

	if sess.AwaitsComputer() {
		move := that.bot.Move(sess.Board, sess.BotMark, sess.HumanMark, sess.Difficulty())
		if err = sess.ApplyComputerMove(move); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return sess, nil
}

// NewGame clears the board for another round and saves the session.
func (that *GameManager) NewGame(ctx context.Context, sessionID string) (*session.Session, error) {
	sess, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	sess.NewGame()

	if err = that.sessionRepo.CreateOrUpdate(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return sess, nil
}

// ChangeMode switches the session to mode and starts a fresh game.
func (that *GameManager) ChangeMode(ctx context.Context, sessionID, mode string) (*session.Session, error) {
	sess, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	if err = sess.ChangeMode(mode); err != nil {
		return sess, fmt.Errorf("failed to change mode: %w", err)
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return sess, nil
}

// ResetScores zeroes the session scoreboard.
func (that *GameManager) ResetScores(ctx context.Context, sessionID string) (*session.Session, error) {
	sess, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	sess.ResetScores()

	if err = that.sessionRepo.CreateOrUpdate(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return sess, nil
}

// CleanupSession drops the session once its connection is gone.
func (that *GameManager) CleanupSession(ctx context.Context, sessionID string) {
	log := that.logger.With("method", "CleanupSession", "sessionID", sessionID)

	if err := that.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		log.Error("failed to delete session", "error", err)
	}
}
