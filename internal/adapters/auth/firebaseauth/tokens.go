// Package firebaseauth resuelve el dueño de un ID token de Firebase Authentication
// con el Admin SDK. Firma, audiencia y expiración se validan localmente contra los
// certificados públicos de Google (cacheados por el SDK).
package firebaseauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var (
	ErrNotConfigured = errors.New("firebaseauth: project id not configured")
	ErrUnauthorized  = errors.New("firebaseauth: unauthorized")
	ErrUpstream      = errors.New("firebaseauth: upstream error")
)

// TokenVerifier es la parte del cliente de auth del SDK que usamos.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

type Config struct {
	ProjectID string

	// CredentialsFile opcional (service account JSON). Para verificar ID tokens
	// alcanza con ProjectID; sin archivo el cliente no se autentica.
	CredentialsFile string
}

// NewTokenVerifier arma el cliente de auth del Admin SDK.
// FIREBASE_AUTH_EMULATOR_HOST lo respeta el propio SDK.
func NewTokenVerifier(ctx context.Context, cfg Config) (*fbauth.Client, error) {
	pid := strings.TrimSpace(cfg.ProjectID)
	if pid == "" {
		return nil, ErrNotConfigured
	}

	var opts []option.ClientOption
	if f := strings.TrimSpace(cfg.CredentialsFile); f != "" {
		opts = append(opts, option.WithCredentialsFile(f))
	} else {
		opts = append(opts, option.WithoutAuthentication())
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: pid}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebaseauth: init app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebaseauth: init auth client: %w", err)
	}
	return client, nil
}
