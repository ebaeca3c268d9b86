package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"monkey-social/internal/domain/monkeys"
	"monkey-social/internal/middleware"
	"monkey-social/internal/platform/logger"
	"monkey-social/internal/platform/wsstream"
	"monkey-social/internal/ports/store"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/notifications", func(nr chi.Router) {
		nr.Get("/", listNotificationsHandler(svc))
		nr.Post("/{toID}", sendNotificationHandler(svc))
		nr.Delete("/{notifID}", deleteNotificationHandler(svc))
	})

	r.Get("/ws/notifications", watchNotificationsHandler(svc, log))
}

type sendNotificationRequest struct {
	Type       Type        `json:"type"`
	FromMonkey monkeys.Ref `json:"fromMonkey"`
	Summary    string      `json:"summary"`
}

// sendNotificationHandler godoc
// @Summary      Enviar notificación
// @Description  Agrega una notificación a la bandeja de otro dueño. El servidor asigna id y timestamp.
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        X-Debug-User-ID  header  string                   true  "Usuario (modo dev)"
// @Param        toID             path    string                   true  "Dueño destino"
// @Param        body             body    sendNotificationRequest  true  "Notificación"
// @Success      201  {object}  Notification
// @Failure      400  {string}  string  "invalid input"
// @Failure      401  {string}  string  "unauthorized"
// @Router       /notifications/{toID} [post]
func sendNotificationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req sendNotificationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		// El remitente es siempre el mono del usuario autenticado.
		req.FromMonkey.ID = claims.UserID

		n, err := svc.Send(r.Context(), chi.URLParam(r, "toID"), Notification{
			Type:       req.Type,
			FromMonkey: req.FromMonkey,
			Summary:    strings.TrimSpace(req.Summary),
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, n)
	}
}

// listNotificationsHandler godoc
// @Summary      Bandeja propia
// @Description  Notificaciones del usuario, más nueva primero.
// @Tags         notifications
// @Produce      json
// @Param        X-Debug-User-ID  header  string  true  "Usuario (modo dev)"
// @Success      200  {array}  Notification
// @Failure      401  {string}  string  "unauthorized"
// @Router       /notifications [get]
func listNotificationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func deleteNotificationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "notifID")); err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func watchNotificationsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		owner := claims.UserID
		wsstream.Serve(w, r, log.With(map[string]any{"stream": "notifications", "owner": owner}),
			func(ctx context.Context, push func(any)) (store.Cancel, error) {
				return svc.Subscribe(ctx, owner, func(items []Notification) { push(items) })
			})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
