package relations

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"monkey-social/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/relations", func(rr chi.Router) {
		rr.Get("/", listRelationsHandler(svc))
		rr.Put("/{friendID}", saveRelationHandler(svc))
	})
}

type saveRelationRequest struct {
	FriendName   string `json:"friendName"`
	Level        int    `json:"level"`
	SharedMemory string `json:"sharedMemory"`
}

// saveRelationHandler godoc
// @Summary      Guardar relación
// @Description  Reemplaza la relación del usuario con otro mono. level se recorta a 0..5.
// @Tags         relations
// @Accept       json
// @Produce      json
// @Param        X-Debug-User-ID  header  string               true  "Usuario (modo dev)"
// @Param        friendID         path    string               true  "odId del otro mono"
// @Param        body             body    saveRelationRequest  true  "Relación"
// @Success      200  {object}  Relation
// @Failure      400  {string}  string  "invalid input"
// @Failure      401  {string}  string  "unauthorized"
// @Router       /relations/{friendID} [put]
func saveRelationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req saveRelationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		saved, err := svc.Save(r.Context(), claims.UserID, chi.URLParam(r, "friendID"), Relation{
			FriendName:   req.FriendName,
			Level:        req.Level,
			SharedMemory: req.SharedMemory,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, saved)
	}
}

// listRelationsHandler godoc
// @Summary      Listar relaciones propias
// @Tags         relations
// @Produce      json
// @Param        X-Debug-User-ID  header  string  true  "Usuario (modo dev)"
// @Success      200  {array}  Relation
// @Failure      401  {string}  string  "unauthorized"
// @Router       /relations [get]
func listRelationsHandler(svc *Service) http.HandlerFunc {
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

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
