package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"monkey-social/internal/ports/auth"
)

type tokenVerifier map[string]string

func (v tokenVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if uid, ok := v[token]; ok {
		return auth.Claims{UserID: uid}, nil
	}
	return auth.Claims{}, errors.New("invalid token")
}

func ownerOf(t *testing.T, verifier auth.AuthVerifier, headers map[string]string) string {
	t.Helper()
	var got string
	h := AuthContext(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, ok := GetClaims(r.Context()); ok {
			got = c.UserID
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/me/monkey", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	return got
}

func TestAuthContext_DebugHeaderWithoutVerifier(t *testing.T) {
	assert.Equal(t, "owner-1", ownerOf(t, nil, map[string]string{DebugUserHeader: " owner-1 "}))
	assert.Equal(t, "", ownerOf(t, nil, nil))
}

func TestAuthContext_BearerToken(t *testing.T) {
	v := tokenVerifier{"tok-1": "owner-1", "tok-empty": ""}

	assert.Equal(t, "owner-1", ownerOf(t, v, map[string]string{"Authorization": "bearer tok-1"}))
	assert.Equal(t, "", ownerOf(t, v, map[string]string{"Authorization": "Bearer nope"}))
	assert.Equal(t, "", ownerOf(t, v, map[string]string{"Authorization": "Basic tok-1"}))
	assert.Equal(t, "", ownerOf(t, v, map[string]string{"Authorization": "Bearer tok-empty"}))

	// con verificador el header de debug no vale
	assert.Equal(t, "", ownerOf(t, v, map[string]string{DebugUserHeader: "owner-1"}))
}
