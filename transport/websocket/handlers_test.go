package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameroomdev/tictactoe/internal/apperror"
	"github.com/gameroomdev/tictactoe/internal/game"
	"github.com/gameroomdev/tictactoe/internal/session"
	"github.com/gameroomdev/tictactoe/internal/usecase"
)

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
}

func (that *memSessionRepo) CreateOrUpdate(_ context.Context, sess *session.Session) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[sess.ID] = sess
	return nil
}

func (that *memSessionRepo) GetByID(_ context.Context, id string) (*session.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	sess, ok := that.sessions[id]
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}
	return sess, nil
}

func (that *memSessionRepo) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.sessions, id)
	return nil
}

type firstAvailableBot struct{}

func (firstAvailableBot) Move(board game.Board, _, _, _ string) int {
	return game.AvailableMoves(board)[0]
}

func newTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := &memSessionRepo{sessions: make(map[string]*session.Session)}
	manager := usecase.NewGameManager(logger, repo, firstAvailableBot{}, session.ModeHard)

	return New(logger, manager)
}

func message(t *testing.T, action string, payload any) *Message {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	return &Message{Action: action, Payload: raw}
}

func TestServer_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("Connect", func(t *testing.T) {
		server := newTestServer()

		// When: a client connects with a fresh session ID
		response, action := server.process(ctx, "abc", &Message{Action: ActionConnect})

		// Then: a session in the default mode comes back
		require.Equal(t, ActionConnect, action)
		require.Empty(t, response.Error)
		require.NotNil(t, response.Session)
		require.Equal(t, session.ModeHard, response.Session.Mode)
		assert.Equal(t, session.StateAwaitingHumanMove, response.Session.State)
	})

	t.Run("TurnWithBotReply", func(t *testing.T) {
		server := newTestServer()
		server.process(ctx, "abc", &Message{Action: ActionConnect})

		// When: the client selects the center
		response, action := server.process(ctx, "abc", message(t, ActionTurn, TurnPayload{Position: 5}))

		// Then: the board shows both the human move and the bot reply
		require.Equal(t, ActionTurn, action)
		require.Empty(t, response.Error)
		require.Equal(t, game.PlayerX, response.Session.Board[1][1])
		assert.Equal(t, game.PlayerO, response.Session.Board[0][0])
	})

	t.Run("OccupiedCellKeepsConnection", func(t *testing.T) {
		server := newTestServer()
		server.process(ctx, "abc", &Message{Action: ActionConnect})
		server.process(ctx, "abc", message(t, ActionTurn, TurnPayload{Position: 5}))

		// When: the client selects the same cell again
		response, action := server.process(ctx, "abc", message(t, ActionTurn, TurnPayload{Position: 5}))

		// Then: the violation is reported alongside the live session view
		require.Equal(t, ActionTurn, action)
		require.NotEmpty(t, response.Error)
		assert.NotNil(t, response.Session)
	})

	t.Run("WinningLineHighlight", func(t *testing.T) {
		server := newTestServer()
		server.process(ctx, "abc", &Message{Action: ActionConnect})
		server.process(ctx, "abc", message(t, ActionMode, ModePayload{Mode: session.ModeTwoPlayer}))

		// When: X runs the top row in a two-player session
		var response *ResponsePayload
		for _, pos := range []int{1, 4, 2, 5, 3} {
			response, _ = server.process(ctx, "abc", message(t, ActionTurn, TurnPayload{Position: pos}))
		}

		// Then: the finished game names the cells to highlight
		require.Equal(t, session.StateGameOver, response.Session.State)
		require.Equal(t, game.PlayerX, response.Session.Winner)
		require.Equal(t, []int{1, 2, 3}, response.Session.WinningLine)
		assert.Equal(t, 1, response.Session.Scoreboard.Player1Wins)
	})

	t.Run("NewGameKeepsScoreboard", func(t *testing.T) {
		server := newTestServer()
		server.process(ctx, "abc", &Message{Action: ActionConnect})
		server.process(ctx, "abc", message(t, ActionMode, ModePayload{Mode: session.ModeTwoPlayer}))
		for _, pos := range []int{1, 4, 2, 5, 3} {
			server.process(ctx, "abc", message(t, ActionTurn, TurnPayload{Position: pos}))
		}

		// When: the client asks for a new game
		response, _ := server.process(ctx, "abc", &Message{Action: ActionNewGame})

		// Then: the board is fresh and the tally survives
		require.Equal(t, game.NewBoard(), response.Session.Board)
		require.Equal(t, session.StateAwaitingHumanMove, response.Session.State)
		assert.Equal(t, 1, response.Session.Scoreboard.GamesPlayed)
	})

	t.Run("ResetScores", func(t *testing.T) {
		server := newTestServer()
		server.process(ctx, "abc", &Message{Action: ActionConnect})
		server.process(ctx, "abc", message(t, ActionMode, ModePayload{Mode: session.ModeTwoPlayer}))
		for _, pos := range []int{1, 4, 2, 5, 3} {
			server.process(ctx, "abc", message(t, ActionTurn, TurnPayload{Position: pos}))
		}

		// When: the client resets the scores
		response, _ := server.process(ctx, "abc", &Message{Action: ActionResetScores})

		// Then: the counters are back to zero
		require.Zero(t, response.Session.Scoreboard.GamesPlayed)
		assert.Zero(t, response.Session.Scoreboard.Player1Wins)
	})

	t.Run("UnknownAction", func(t *testing.T) {
		server := newTestServer()

		// When: the client sends an action nobody registered
		response, action := server.process(ctx, "abc", &Message{Action: "game:teleport"})

		// Then: the error action carries the complaint
		require.Equal(t, ActionError, action)
		assert.Contains(t, response.Error, "unknown action")
	})
}
