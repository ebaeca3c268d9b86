package middleware

import (
	"context"
	"net/http"
	"strings"

	"monkey-social/internal/ports/auth"
)

type ownerKey struct{}

// DebugUserHeader fija el dueño cuando no hay verificador configurado.
const DebugUserHeader = "X-Debug-User-ID"

// AuthContext pone en el contexto la identidad del dueño, si la hay.
// Con verificador se usa el bearer token; sin él, el header de debug.
// Nunca corta el request: cada handler decide si la identidad es obligatoria.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := resolveOwner(r, verifier); ok {
				r = r.WithContext(context.WithValue(r.Context(), ownerKey{}, claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveOwner(r *http.Request, verifier auth.AuthVerifier) (auth.Claims, bool) {
	if verifier == nil {
		uid := strings.TrimSpace(r.Header.Get(DebugUserHeader))
		return auth.Claims{UserID: uid}, uid != ""
	}
	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return auth.Claims{}, false
	}
	claims, err := verifier.Verify(r.Context(), token)
	if err != nil || claims.UserID == "" {
		return auth.Claims{}, false
	}
	return claims, true
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(ownerKey{}).(auth.Claims)
	return c, ok
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
