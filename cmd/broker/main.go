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

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"chat-session/auth"
	"chat-session/credentials"
	"chat-session/infrastructure/storage"
	"chat-session/internal"
	"chat-session/presence"
	"chat-session/transport"
)

// Exit codes to provide meaningful status to the operating system or
// service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper: it calls run() and turns
	// its result into the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Broker terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle and
// centralizes error reporting, so deferred cleanup always executes.
func run() (int, error) {
	// 1. Configuration & logger
	_ = godotenv.Load()
	var config internal.BrokerConfig
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	// 2. Directory store (BadgerDB)
	opts := badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(opts)
	if err != nil {
		return exitRuntime, fmt.Errorf("directory store opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing directory store...")
		_ = db.Close()
	}()

	if logger.Enabled(context.Background(), slog.LevelDebug) {
		endpoint := "/inspect"
		logger.Info("Debug directory inspector available",
			"url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		internal.StartDebugServer(db, config.DebugPort, endpoint, internal.DefaultMapper, nil)
	}

	// 3. Credential issuer & sessions
	issuer, err := credentials.NewIssuer(logger, config.AblyAPIKey, config.TokenTTL)
	if err != nil {
		// The broker still serves: the token endpoint answers 500 with an
		// error payload, which is the contract for a missing signing key.
		logger.Error("credential issuer unavailable", "error", err)
	}
	sessions := auth.NewSessions([]byte(config.SessionSecret), config.SessionLifetime)

	// 4. Repositories & handlers
	users := storage.NewUserRepository(db, logger)
	statuses := storage.NewStatusRepository(db, logger)
	accounts := auth.NewHandlers(logger, users, sessions)

	mux := http.NewServeMux()
	mux.HandleFunc("/register", accounts.Register)
	mux.HandleFunc("/login", accounts.Login)
	mux.Handle("/status", presence.NewStatusHandler(logger, statuses))

	if issuer != nil {
		mux.Handle("/token", credentials.NewHandler(logger, issuer, sessions))
		notifier := presence.NewNotifier(logger,
			transport.NewRESTPublisher(issuer.REST(), presence.ChannelName), statuses)
		mux.Handle("/notify-connection", presence.NewHandler(logger, notifier))
	} else {
		mux.HandleFunc("/token", unavailable)
		mux.HandleFunc("/notify-connection", unavailable)
	}

	// 5. Context & signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler: mux,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Broker listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down broker...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return exitRuntime, fmt.Errorf("shutdown error: %w", err)
		}
		return exitOK, nil
	case err := <-errChan:
		return exitRuntime, fmt.Errorf("server error: %w", err)
	}
}

func unavailable(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"error":"failed to generate token"}`))
}
