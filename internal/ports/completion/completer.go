package completion

import (
	"context"
	"errors"
)

// ErrNoResult indica que el servicio de completion no devolvió texto utilizable
// (red, status no-2xx, body inválido, campo error o contenido vacío).
var ErrNoResult = errors.New("completion: no result")

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Completer interface {
	// Complete devuelve el primer segmento de texto de la respuesta.
	// Cualquier falla se reporta envuelta en ErrNoResult.
	Complete(ctx context.Context, messages []Message, maxTokens int) (string, error)
}
