// Package wsstream empuja snapshots de una suscripción del store a un cliente websocket.
// Cada snapshot nuevo reemplaza al pendiente: un cliente lento solo ve el último estado.
package wsstream

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"monkey-social/internal/platform/logger"
	"monkey-social/internal/ports/store"

	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = (pongWait * 9) / 10
)

// SubscribeFunc registra push como callback de cambios y devuelve cómo cancelarlo.
type SubscribeFunc func(ctx context.Context, push func(v any)) (store.Cancel, error)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Los clientes web viven en otro origen (mismo criterio que el proxy CORS).
	CheckOrigin: func(*http.Request) bool { return true },
}

// Serve hace el upgrade y bloquea hasta que el cliente cierra o falla una escritura.
func Serve(w http.ResponseWriter, r *http.Request, log logger.Logger, subscribe SubscribeFunc) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", map[string]any{"error": err, "remote_addr": r.RemoteAddr})
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	latest := make(chan []byte, 1)
	push := func(v any) {
		b, err := json.Marshal(v)
		if err != nil {
			log.Error("websocket encode failed", map[string]any{"error": err})
			return
		}
		for {
			select {
			case latest <- b:
				return
			default:
			}
			select {
			case <-latest:
			default:
			}
		}
	}

	stop, err := subscribe(ctx, push)
	if err != nil {
		log.Error("websocket subscribe failed", map[string]any{"error": err})
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "subscribe failed"),
			time.Now().Add(writeTimeout))
		return
	}
	defer stop()

	// Lector: solo mantiene vivos los pongs y detecta el cierre del cliente.
	go func() {
		defer cancel()
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case b := <-latest:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				log.Debug("websocket write failed", map[string]any{"error": err})
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}
