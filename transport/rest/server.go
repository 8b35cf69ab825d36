package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gameroomdev/tictactoe/internal/apperror"
	"github.com/gameroomdev/tictactoe/internal/usecase"
)

// Start - serves the HTTP surface: health check and read-only scoreboards.
func Start(ctx context.Context, logger *slog.Logger, port string, manager *usecase.GameManager) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(logger, manager),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
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

// NewRouter wires the routes and returns the handler.
func NewRouter(logger *slog.Logger, manager *usecase.GameManager) http.Handler {
	router := chi.NewRouter()

	router.Get("/ping", pingHandler)
	router.Get("/sessions/{id}/scoreboard", scoreboardHandler(logger, manager))

	return router
}

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func scoreboardHandler(logger *slog.Logger, manager *usecase.GameManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "id")

		sess, err := manager.GetSession(r.Context(), sessionID)
		if err != nil {
			if errors.Is(err, apperror.ErrSessionNotFound) {
				http.Error(w, "session not found", http.StatusNotFound)
				return
			}

			logger.Error("failed to get session", "sessionID", sessionID, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err = json.NewEncoder(w).Encode(sess.Scoreboard); err != nil {
			logger.Error("failed to encode scoreboard", "sessionID", sessionID, "error", err)
		}
	}
}
