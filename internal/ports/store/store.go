package store

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrOverlappingPaths = errors.New("store: overlapping paths in update")

// Store es el cliente del árbol jerárquico (monkeys/{id}, relations/{owner}/{friend},
// notifications/{owner}/{id}). Se construye explícitamente y se inyecta.
// No hay transacciones ni control de concurrencia: gana la última escritura por path.
type Store interface {
	// Get devuelve el subárbol serializado; nil si no existe.
	Get(ctx context.Context, path string) (json.RawMessage, error)
	// Set reemplaza el nodo. value nil lo elimina.
	Set(ctx context.Context, path string, value any) error
	// Push agrega un hijo con id asignado por el store y devuelve ese id.
	Push(ctx context.Context, path string, value any) (string, error)
	Remove(ctx context.Context, path string) error
	// Update aplica varias escrituras parciales en un solo envío. Valores nil eliminan.
	// Los paths no pueden solaparse (ErrOverlappingPaths).
	Update(ctx context.Context, updates map[string]any) error
	// Watch entrega el snapshot actual de path y luego uno nuevo por cada cambio.
	// El orden entre escritores distintos no está garantizado.
	Watch(ctx context.Context, path string, fn func(json.RawMessage)) (Cancel, error)
}

// Cancel termina una suscripción. Es idempotente.
type Cancel func()

// ChangeNotifier recibe los paths modificados después de cada escritura exitosa.
type ChangeNotifier interface {
	Changed(paths ...string)
}
