// Package proxy reenvía pedidos de chat del browser al servicio de completion,
// agregando la credencial del servidor y los headers CORS.
package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"monkey-social/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

const maxRequestBody = 1 << 20

// Forwarder envía el body tal cual al upstream y devuelve status + body sin tocar.
type Forwarder interface {
	Forward(ctx context.Context, body []byte) (int, []byte, error)
}

var (
	errInvalidRequest  = errors.New("request body is not valid JSON")
	errInvalidUpstream = errors.New("upstream response is not valid JSON")
)

func RegisterRoutes(r chi.Router, fwd Forwarder, log logger.Logger) {
	r.HandleFunc("/", Handler(fwd, log))
}

// Handler godoc
// @Summary      Proxy de completion
// @Description  Reenvía {model, max_tokens, messages} al servicio de completion y devuelve su JSON con CORS abierto.
// @Tags         proxy
// @Accept       json
// @Produce      json
// @Param        body  body      object  true  "Pedido de chat"
// @Success      200   {object}  object
// @Failure      405   {string}  string  "Method not allowed"
// @Failure      500   {object}  errorResponse
// @Router       / [post]
func Handler(fwd Forwarder, log logger.Logger) http.HandlerFunc {
	if log == nil {
		log = logger.Nop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodOptions:
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusOK)
			return
		case http.MethodPost:
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := readJSONBody(w, r)
		if err != nil {
			writeError(w, log, err)
			return
		}

		status, raw, err := fwd.Forward(r.Context(), body)
		if err != nil {
			writeError(w, log, err)
			return
		}
		if !json.Valid(raw) {
			writeError(w, log, fmt.Errorf("%w (status %d)", errInvalidUpstream, status))
			return
		}
		if status < 200 || status >= 300 {
			// el JSON de error del upstream viaja igual; el cliente mira el campo "error"
			log.Warn("upstream non-2xx", map[string]any{"status": status})
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(raw)
	}
}

func readJSONBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if !json.Valid(body) {
		return nil, errInvalidRequest
	}
	return body, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	log.Error("proxy failed", map[string]any{"err": err})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}
