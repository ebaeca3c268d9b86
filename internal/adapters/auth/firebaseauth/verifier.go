package firebaseauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	"monkey-social/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("firebaseauth: token is empty")

// Verifier traduce un ID token al dueño (uid de Firebase).
type Verifier struct {
	tokens TokenVerifier
}

var _ auth.AuthVerifier = (*Verifier)(nil)

func NewVerifier(tokens TokenVerifier) *Verifier {
	return &Verifier{tokens: tokens}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.tokens == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	tok, err := v.tokens.VerifyIDToken(ctx, token)
	if err != nil {
		// solo la descarga de certificados es culpa del upstream
		if fbauth.IsCertificateFetchFailed(err) {
			return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if tok == nil || strings.TrimSpace(tok.UID) == "" {
		return auth.Claims{}, fmt.Errorf("%w: token without uid", ErrUnauthorized)
	}
	return auth.Claims{UserID: strings.TrimSpace(tok.UID)}, nil
}
