package router

import (
	"net/http"

	_ "monkey-social/docs"

	mem "monkey-social/internal/adapters/storage/memory"
	"monkey-social/internal/domain/companion"
	"monkey-social/internal/domain/monkeys"
	"monkey-social/internal/domain/notifications"
	"monkey-social/internal/domain/proxy"
	"monkey-social/internal/domain/relations"
	"monkey-social/internal/middleware"
	"monkey-social/internal/platform/logger"
	"monkey-social/internal/ports/auth"
	"monkey-social/internal/ports/completion"
	"monkey-social/internal/ports/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si no viene, store in-memory (dev/tests).
	Store store.Store

	// Completer alimenta los endpoints /companion; Forwarder el proxy en "/".
	// Normalmente ambos son el mismo cliente anthropic.
	Completer completion.Completer
	Forwarder proxy.Forwarder

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS("/"))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	st := opts.Store
	if st == nil {
		st = mem.NewStore(log)
	}

	// Services por módulo
	monkeysSvc := monkeys.NewService(monkeys.NewStoreRepo(st, log))
	relationsSvc := relations.NewService(relations.NewStoreRepo(st))
	notificationsSvc := notifications.NewService(notifications.NewStoreRepo(st))

	// Rutas por módulo
	monkeys.RegisterRoutes(r, monkeysSvc, log)
	relations.RegisterRoutes(r, relationsSvc)
	notifications.RegisterRoutes(r, notificationsSvc, log)

	if opts.Completer != nil {
		companion.RegisterRoutes(r, companion.Deps{
			Companion:     companion.NewService(opts.Completer, log),
			Monkeys:       monkeysSvc,
			Relations:     relationsSvc,
			Notifications: notificationsSvc,
			Log:           log,
		})
	}
	if opts.Forwarder != nil {
		proxy.RegisterRoutes(r, opts.Forwarder, log)
	}

	return r
}
