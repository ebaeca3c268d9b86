package auth

import "context"

// AuthVerifier resuelve un bearer token a la identidad del dueño.
// Un error significa "sin identidad", nunca un 5xx para el cliente.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
