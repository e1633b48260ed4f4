package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/templui/scoutbot/internal/app"
	"github.com/templui/scoutbot/internal/bot"
	"github.com/templui/scoutbot/internal/config"
	"github.com/templui/scoutbot/internal/handler"
	"github.com/templui/scoutbot/internal/logger"
	"github.com/templui/scoutbot/internal/routes"
)

// gateway is the chat connection the server keeps open until shutdown
type gateway interface {
	Open() error
	Close() error
}

type gatewayFactory func(cfg *config.Config, commands *handler.CommandHandler) (gateway, error)

func newDiscordGateway(cfg *config.Config, commands *handler.CommandHandler) (gateway, error) {
	return bot.New(cfg.DiscordToken, cfg.DiscordGuildID, commands)
}

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg, newDiscordGateway)
	stop()

	if err != nil {
		slog.Error("server exited with error", "error", err)
		logger.Flush(2 * time.Second)
		// Non-zero so restart-on-failure policies bring the bot back
		os.Exit(1)
	}
	logger.Flush(2 * time.Second)
}

// run serves until ctx is cancelled. Any startup or server failure is returned.
func run(ctx context.Context, cfg *config.Config, newGateway gatewayFactory) error {
	app, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	// Liveness server runs beside the bot and shares none of its state
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRoutes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		if err != nil {
			slog.Error("failed to shut down server", "error", err)
		}
	}()

	discord, err := newGateway(cfg, app.CommandHandler)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}
	err = discord.Open()
	if err != nil {
		return fmt.Errorf("failed to start bot: %w", err)
	}
	defer func() {
		closeErr := discord.Close()
		if closeErr != nil {
			slog.Error("failed to close bot", "error", closeErr)
		}
	}()
	slog.Info("bot running", "config", cfg.Sanitized())

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
		return nil
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}
}
