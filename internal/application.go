package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gameroomdev/tictactoe/internal/config"
	"github.com/gameroomdev/tictactoe/internal/console"
	"github.com/gameroomdev/tictactoe/internal/game"
	"github.com/gameroomdev/tictactoe/internal/repository"
	"github.com/gameroomdev/tictactoe/internal/repository/storage"
	"github.com/gameroomdev/tictactoe/internal/usecase"
	"github.com/gameroomdev/tictactoe/transport/rest"
	"github.com/gameroomdev/tictactoe/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application. With no arguments it plays the game in
// the terminal; "serve" starts the HTTP and WebSocket servers instead.
func RunApp(logger *slog.Logger, conf *config.Config, args []string) error {
	if len(args) > 0 && args[0] == "serve" {
		return runServer(logger, conf)
	}

	return runConsole(logger)
}

// runConsole - plays the game over stdin/stdout.
func runConsole(logger *slog.Logger) error {
	log := logger.With("component", "console")

	bot := game.NewBot(nil)

	if err := console.New(os.Stdin, os.Stdout, bot).Run(); err != nil {
		return fmt.Errorf("console game failed: %w", err)
	}

	log.Debug("console session finished")

	return nil
}

// runServer - runs the HTTP and WebSocket front ends backed by redis.
func runServer(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sessionRepo := repository.NewSessionRepository(redisStorage)
	bot := game.NewBot(nil)
	gameManager := usecase.NewGameManager(logger, sessionRepo, bot, conf.Game.DefaultMode)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, logger, conf.HTTPPort, gameManager); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run WebSocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameManager)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
