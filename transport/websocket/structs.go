package websocket

import (
	"encoding/json"

	"github.com/gameroomdev/tictactoe/internal/game"
	"github.com/gameroomdev/tictactoe/internal/session"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// TurnPayload carries the cell a player selected.
type TurnPayload struct {
	Position int `json:"position"`
}

// ModePayload carries the requested game mode.
type ModePayload struct {
	Mode string `json:"mode"`
}

// ResponsePayload is what every action answers with: the session view, or
// an error the client should show without dropping the connection.
type ResponsePayload struct {
	Session *SessionResponse `json:"session,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// SessionResponse is the client's view of a session. WinningLine names the
// three cells a graphical client highlights when the game is over.
type SessionResponse struct {
	ID          string           `json:"id"`
	Mode        string           `json:"mode"`
	State       string           `json:"state"`
	Board       game.Board       `json:"board"`
	Turn        string           `json:"turn,omitempty"`
	Winner      string           `json:"winner,omitempty"`
	WinningLine []int            `json:"winning_line,omitempty"`
	Scoreboard  *game.Scoreboard `json:"scoreboard,omitempty"`
}

func newSessionResponse(sess *session.Session) *SessionResponse {
	response := &SessionResponse{
		ID:         sess.ID,
		Mode:       sess.Mode,
		State:      sess.State,
		Board:      sess.Board,
		Turn:       sess.Turn,
		Winner:     sess.Winner,
		Scoreboard: sess.Scoreboard,
	}

	if sess.IsOver() && sess.Winner != game.EmptyCell {
		response.WinningLine = sess.WinningLine[:]
	}

	return response
}
