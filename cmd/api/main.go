package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"monkey-social/internal/adapters/auth/firebaseauth"
	"monkey-social/internal/adapters/completion/anthropic"
	"monkey-social/internal/adapters/storage"
	"monkey-social/internal/config"
	"monkey-social/internal/platform/logger"
	"monkey-social/internal/ports/auth"
	"monkey-social/internal/router"
)

// @title        monkey-social API
// @version      1.0
// @description  Proxy de completion, almacenamiento de monos/relaciones/notificaciones y endpoints de compañía.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"err": err})
		os.Exit(1)
	}
	cfg = cfg.ForAPI()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := run(cfg, log); err != nil {
		log.Error("api stopped", map[string]any{"err": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	openCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	st, err := storage.Open(openCtx, cfg, log)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn("store close failed", map[string]any{"err": err})
		}
	}()

	// Sin API key el proxy igual responde; el upstream devolverá su error de auth.
	if err := cfg.ValidateCompletion(); err != nil {
		log.Warn("completion credential missing", map[string]any{"err": err})
	}
	llm := anthropic.NewClient(anthropic.Config{
		URL:     cfg.AnthropicURL,
		APIKey:  cfg.AnthropicAPIKey,
		Version: cfg.AnthropicVersion,
		Model:   cfg.AnthropicModel,
		Timeout: cfg.AnthropicTimeout,
	})

	var verifier auth.AuthVerifier // nil => modo dev (X-Debug-User-ID)
	if cfg.FirebaseProjectID != "" {
		tokens, err := firebaseauth.NewTokenVerifier(ctx, firebaseauth.Config{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsFile: cfg.FirebaseCredentialsFile,
		})
		if err != nil {
			return err
		}
		verifier = firebaseauth.NewVerifier(tokens)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Store:        st.Store,
		Completer:    llm,
		Forwarder:    llm,
		Log:          log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		// sin WriteTimeout (websockets)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":    srv.Addr,
			"backend": string(st.Backend),
			"auth":    verifier != nil,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	log.Info("shutting down", nil)
	return srv.Shutdown(shutdownCtx)
}
