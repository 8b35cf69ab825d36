package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/gameroomdev/tictactoe/internal/usecase"
)

const sessionCookieName = "user_session"

type Server struct {
	logger  *slog.Logger
	manager *usecase.GameManager

	upgrader websocket.Upgrader
	handlers map[string]func(ctx context.Context, sessionID string, message *Message) (*ResponsePayload, error)
}

func New(logger *slog.Logger, manager *usecase.GameManager) *Server {
	server := &Server{
		logger:  logger,
		manager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	server.handlers = map[string]func(context.Context, string, *Message) (*ResponsePayload, error){
		ActionConnect:     server.handleConnect,
		ActionNewGame:     server.handleNewGame,
		ActionTurn:        server.handleTurn,
		ActionMode:        server.handleChangeMode,
		ActionResetScores: server.handleResetScores,
	}

	return server
}

// Start - starts the WebSocket server and shuts it down when ctx ends.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveConnection - upgrades the connection and serves its message loop.
func (that *Server) serveConnection(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveConnection")

	sessionID, header := that.sessionID(req)

	conn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("websocket connection established", "sessionID", sessionID)

	// srv.Shutdown does not cover upgraded connections, so close them
	// when the application context ends.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stop:
		}
	}()

	if err = that.handleMessages(ctx, sessionID, conn); err != nil {
		log.Error("error handling messages", "error", err)
	}

	// sessions are connection-scoped: once the client is gone, its
	// state leaves redis with it
	cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	that.manager.CleanupSession(cleanupCtx, sessionID)
	log.Info("websocket connection closed", "sessionID", sessionID)
}

// sessionID - reads the session cookie, minting a new ID when absent.
func (that *Server) sessionID(req *http.Request) (string, http.Header) {
	if cookie, err := req.Cookie(sessionCookieName); err == nil {
		return cookie.Value, nil
	}

	cookie := &http.Cookie{
		Name:    sessionCookieName,
		Value:   uuid.NewString(),
		Expires: time.Now().Add(24 * time.Hour),
		Path:    "/ws",
	}

	header := http.Header{}
	header.Add("Set-Cookie", cookie.String())

	return cookie.Value, header
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, sessionID string, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages", "sessionID", sessionID)

	for {
		_, reqBody, err := conn.ReadMessage()
		if err != nil {
			// the shutdown watcher closed the connection under us
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		response, action := that.process(ctx, sessionID, &message)

		if err = that.sendMessage(conn, action, response); err != nil {
			return fmt.Errorf("failed to send response: %w", err)
		}
	}
}

// process - dispatches one message to its handler and folds game-rule
// violations into an error payload the client can show.
func (that *Server) process(ctx context.Context, sessionID string, message *Message) (*ResponsePayload, string) {
	handler, ok := that.handlers[message.Action]
	if !ok {
		return &ResponsePayload{Error: "unknown action: " + message.Action}, ActionError
	}

	response, err := handler(ctx, sessionID, message)
	if err != nil {
		that.logger.Error("error processing message", "action", message.Action, "error", err)
		return &ResponsePayload{Error: err.Error()}, ActionError
	}

	return response, message.Action
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload *ResponsePayload) error {
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := Message{
		Action:  action,
		Payload: rawPayload,
	}

	if err = conn.WriteJSON(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
