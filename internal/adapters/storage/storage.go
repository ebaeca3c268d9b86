// Package storage arma el store configurado (memory, postgres o firebase) y, si hay
// REDIS_ADDR, lo conecta al bridge de cambios entre procesos.
package storage

import (
	"context"
	"errors"
	"fmt"

	"monkey-social/internal/adapters/changefeed/redisfeed"
	"monkey-social/internal/adapters/storage/firebase"
	"monkey-social/internal/adapters/storage/hub"
	"monkey-social/internal/adapters/storage/memory"
	"monkey-social/internal/adapters/storage/postgres"
	"monkey-social/internal/config"
	"monkey-social/internal/platform/logger"
	"monkey-social/internal/ports/store"
)

// hubbed son los backends que notifican cambios con un hub local.
type hubbed interface {
	store.Store
	Hub() *hub.Hub
	SetNotifier(n store.ChangeNotifier)
}

// Handle es el store abierto más lo necesario para cerrarlo.
type Handle struct {
	Store   store.Store
	Backend config.Backend

	closers []func() error
	stop    context.CancelFunc
}

func (h *Handle) Close() error {
	if h.stop != nil {
		h.stop()
	}
	var errs []error
	for i := len(h.closers) - 1; i >= 0; i-- {
		if err := h.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open construye el backend de cfg.StoreBackend. ctx solo se usa durante la apertura.
func Open(ctx context.Context, cfg config.Config, log logger.Logger) (*Handle, error) {
	if log == nil {
		log = logger.Nop()
	}
	h := &Handle{Backend: cfg.StoreBackend}

	var local hubbed
	switch cfg.StoreBackend {
	case config.BackendFirebase:
		fb, err := firebase.NewStore(firebase.Config{
			BaseURL:   cfg.FirebaseURL,
			AuthToken: cfg.FirebaseAuth,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("storage: firebase: %w", err)
		}
		// Firebase ya empuja cambios por streaming; no hace falta bridge.
		h.Store = fb
		return h, nil

	case config.BackendPostgres:
		db, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("storage: postgres: %w", err)
		}
		h.closers = append(h.closers, db.Close)
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = h.Close()
			return nil, fmt.Errorf("storage: postgres schema: %w", err)
		}
		local = postgres.NewStore(db, log)

	default:
		local = memory.NewStore(log)
	}

	h.Store = local
	if cfg.RedisAddr == "" {
		return h, nil
	}

	client := redisfeed.NewClient(redisfeed.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Channel:  cfg.RedisChannel,
	})
	h.closers = append(h.closers, client.Close)

	bridge := redisfeed.New(client, cfg.RedisChannel, local.Hub(), log)
	local.SetNotifier(bridge)

	runCtx, stop := context.WithCancel(context.Background())
	h.stop = stop
	go func() {
		if err := bridge.Run(runCtx); err != nil {
			// sin bridge los cambios vuelven a notificarse solo en este proceso
			log.Error("change bridge stopped", map[string]any{"err": err})
			local.SetNotifier(nil)
		}
	}()
	return h, nil
}
