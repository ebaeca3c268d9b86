package companion

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"monkey-social/internal/domain/monkeys"
	"monkey-social/internal/domain/notifications"
	"monkey-social/internal/domain/relations"
	"monkey-social/internal/middleware"
	"monkey-social/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Deps agrupa los servicios que usan los endpoints de compañía.
type Deps struct {
	Companion     *Service
	Monkeys       *monkeys.Service
	Relations     *relations.Service
	Notifications *notifications.Service
	Log           logger.Logger
}

func RegisterRoutes(r chi.Router, d Deps) {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	r.Route("/companion", func(cr chi.Router) {
		cr.Post("/personality", personalityHandler(d))
		cr.Post("/welcome", welcomeHandler(d))
		cr.Post("/interaction", interactionHandler(d))
	})
}

type personalityRequest struct {
	Traits monkeys.Traits `json:"traits"`
}

type personalityResponse struct {
	Personality string `json:"personality"`
}

// personalityHandler godoc
// @Summary      Describir personalidad
// @Description  Una frase a partir de los 8 rasgos. Sin respuesta del modelo devuelve 可爱的小猴子.
// @Tags         companion
// @Accept       json
// @Produce      json
// @Param        body  body      personalityRequest  true  "Rasgos"
// @Success      200   {object}  personalityResponse
// @Failure      400   {string}  string  "invalid json"
// @Router       /companion/personality [post]
func personalityHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req personalityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, personalityResponse{
			Personality: d.Companion.Personality(r.Context(), req.Traits),
		})
	}
}

type welcomeResponse struct {
	Message string `json:"message"`
}

// welcomeHandler godoc
// @Summary      Saludo de regreso
// @Description  El mono del usuario saluda según su personalidad y lo que pasó en su ausencia.
// @Tags         companion
// @Accept       json
// @Produce      json
// @Param        X-Debug-User-ID  header  string        true  "Usuario (modo dev)"
// @Param        body             body    WelcomeInput  true  "Ausencia"
// @Success      200  {object}  welcomeResponse
// @Failure      401  {string}  string  "unauthorized"
// @Failure      404  {string}  string  "monkey not found"
// @Failure      502  {object}  errorResponse
// @Router       /companion/welcome [post]
func welcomeHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var in WelcomeInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		me, ok := loadMonkey(w, r, d.Monkeys, claims.UserID)
		if !ok {
			return
		}

		msg, err := d.Companion.Welcome(r.Context(), me, in)
		if err != nil {
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "no result"})
			return
		}
		writeJSON(w, http.StatusOK, welcomeResponse{Message: msg})
	}
}

type interactionRequest struct {
	OtherID string `json:"otherId"`
	Type    string `json:"type"`
}

// interactionHandler godoc
// @Summary      Interacción entre monos
// @Description  Genera el guion, aplica relationChange a la relación del usuario y avisa al otro dueño.
// @Tags         companion
// @Accept       json
// @Produce      json
// @Param        X-Debug-User-ID  header  string              true  "Usuario (modo dev)"
// @Param        body             body    interactionRequest  true  "Con quién y qué"
// @Success      200  {object}  InteractionOutcome
// @Failure      400  {string}  string  "invalid input"
// @Failure      401  {string}  string  "unauthorized"
// @Failure      404  {string}  string  "monkey not found"
// @Router       /companion/interaction [post]
func interactionHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req interactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		req.OtherID = strings.TrimSpace(req.OtherID)
		if req.OtherID == "" || req.OtherID == claims.UserID {
			http.Error(w, "invalid input", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Type) == "" {
			req.Type = "打招呼"
		}

		me, ok := loadMonkey(w, r, d.Monkeys, claims.UserID)
		if !ok {
			return
		}
		other, ok := loadMonkey(w, r, d.Monkeys, req.OtherID)
		if !ok {
			return
		}

		rel, err := d.Relations.Get(r.Context(), me.ID, other.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := d.Companion.Interaction(r.Context(), me, other, req.Type, rel)

		// Los efectos secundarios fallan en silencio: el guion ya se generó.
		if _, err := d.Relations.Apply(r.Context(), me.ID, other.ID, other.Name,
			out.RelationChange, out.NewSharedMemory); err != nil {
			d.Log.Warn("relation update failed", map[string]any{"err": err, "me": me.ID, "other": other.ID})
		}
		if _, err := d.Notifications.Send(r.Context(), other.ID, notifications.Notification{
			Type:       notifications.TypeInteraction,
			FromMonkey: me.Ref(),
			Summary:    interactionSummary(me, out.Interaction),
		}); err != nil {
			d.Log.Warn("interaction notify failed", map[string]any{"err": err, "to": other.ID})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func interactionSummary(me monkeys.Monkey, in Interaction) string {
	if in.Summary != "" {
		return in.Summary
	}
	return fmt.Sprintf("%s 来找你玩了", me.Name)
}

func loadMonkey(w http.ResponseWriter, r *http.Request, svc *monkeys.Service, id string) (monkeys.Monkey, bool) {
	m, err := svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, monkeys.ErrNotFound) || errors.Is(err, monkeys.ErrInvalidInput) {
			http.Error(w, "monkey not found", http.StatusNotFound)
			return monkeys.Monkey{}, false
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return monkeys.Monkey{}, false
	}
	return m, true
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
