package monkeys

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"monkey-social/internal/middleware"
	"monkey-social/internal/platform/logger"
	"monkey-social/internal/platform/wsstream"
	"monkey-social/internal/ports/store"

	"github.com/go-chi/chi/v5"
)

// MyMonkeyCookie recuerda en el navegador qué mono es "el mío".
const MyMonkeyCookie = "my-monkey-id"

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/monkeys", func(mr chi.Router) {
		mr.Get("/", listMonkeysHandler(svc))
		mr.Get("/{monkeyID}", getMonkeyHandler(svc))
		mr.Put("/{monkeyID}", saveMonkeyHandler(svc))
	})

	r.Get("/me/monkey", myMonkeyHandler(svc))
	r.Get("/ws/monkeys", watchMonkeysHandler(svc, log))
}

// saveMonkeyHandler godoc
// @Summary      Guardar mono
// @Description  Escribe el registro completo del mono del usuario y marca lastActive.
// @Tags         monkeys
// @Accept       json
// @Produce      json
// @Param        X-Debug-User-ID  header  string  false  "Usuario (modo dev)"
// @Param        monkeyID         path    string  true   "odId"
// @Param        body             body    Monkey  true   "Registro"
// @Success      200  {object}  Monkey
// @Failure      400  {string}  string  "invalid input"
// @Failure      401  {string}  string  "unauthorized"
// @Failure      403  {string}  string  "forbidden"
// @Router       /monkeys/{monkeyID} [put]
func saveMonkeyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Cada usuario tiene un solo mono y su odId es el id del usuario.
		monkeyID := chi.URLParam(r, "monkeyID")
		if monkeyID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var in Monkey
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		in.ID = monkeyID

		saved, err := svc.Save(r.Context(), in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     MyMonkeyCookie,
			Value:    saved.ID,
			Path:     "/",
			MaxAge:   int((365 * 24 * time.Hour).Seconds()),
			SameSite: http.SameSiteLaxMode,
		})
		writeJSON(w, http.StatusOK, saved)
	}
}

// listMonkeysHandler godoc
// @Summary      Listar monos
// @Tags         monkeys
// @Produce      json
// @Param        X-Debug-User-ID  header  string  false  "Usuario (modo dev)"
// @Success      200  {array}  Monkey
// @Failure      401  {string}  string  "unauthorized"
// @Router       /monkeys [get]
func listMonkeysHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func getMonkeyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		writeMonkey(w, r, svc, chi.URLParam(r, "monkeyID"))
	}
}

// myMonkeyHandler resuelve el mono propio: cookie primero, luego el usuario autenticado.
// Exige identidad en ambos casos, igual que GET /monkeys/{id}.
func myMonkeyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if c, err := r.Cookie(MyMonkeyCookie); err == nil && strings.TrimSpace(c.Value) != "" {
			writeMonkey(w, r, svc, c.Value)
			return
		}
		writeMonkey(w, r, svc, claims.UserID)
	}
}

func writeMonkey(w http.ResponseWriter, r *http.Request, svc *Service, id string) {
	m, err := svc.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidInput):
			http.Error(w, "monkey not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func watchMonkeysHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wsstream.Serve(w, r, log.With(map[string]any{"stream": "monkeys"}),
			func(ctx context.Context, push func(any)) (store.Cancel, error) {
				return svc.SubscribeAll(ctx, func(items []Monkey) { push(items) })
			})
	}
}

// writeJSON está duplicado en cada módulo de dominio a propósito.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
