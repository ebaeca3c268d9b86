// Package firebase habla con Firebase Realtime Database por REST
// (GET/PUT/POST/DELETE {path}.json, PATCH multi-path) y usa el protocolo de
// streaming (text/event-stream, vía r3labs/sse) para los watchers.
package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/r3labs/sse/v2"

	"monkey-social/internal/platform/httpclient"
	"monkey-social/internal/platform/jsontree"
	"monkey-social/internal/platform/logger"
	"monkey-social/internal/ports/store"
)

const (
	DefaultBaseURL = "https://monkey-social-250aa-default-rtdb.firebaseio.com"

	reconnectDelay = time.Second
)

var ErrNotConfigured = errors.New("firebase: base url not configured")

type Config struct {
	BaseURL string
	// AuthToken opcional (database secret o ID token); se manda como ?auth=.
	AuthToken string
	Timeout   time.Duration
}

type Store struct {
	client *httpclient.Client
	stream *http.Client
	log    logger.Logger
}

var _ store.Store = (*Store)(nil)

func NewStore(cfg Config, log logger.Logger) (*Store, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNotConfigured
	}
	c, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	if tok := strings.TrimSpace(cfg.AuthToken); tok != "" {
		c.Query = url.Values{"auth": []string{tok}}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		client: c,
		// sin timeout: la conexión de streaming queda abierta
		stream: &http.Client{Transport: c.HTTP.Transport},
		log:    log.With(map[string]any{"component": "firebase"}),
	}, nil
}

func jsonPath(path string) string {
	p := jsontree.Join(path)
	if p == "" {
		return "/.json"
	}
	return "/" + p + ".json"
}

func (s *Store) Get(ctx context.Context, path string) (json.RawMessage, error) {
	status, raw, err := s.client.DoRaw(ctx, http.MethodGet, jsonPath(path), nil, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &httpclient.HTTPError{StatusCode: status, Body: strings.TrimSpace(string(raw))}
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	return raw, nil
}

func (s *Store) Set(ctx context.Context, path string, value any) error {
	if value == nil {
		return s.Remove(ctx, path)
	}
	return s.client.DoJSON(ctx, http.MethodPut, jsonPath(path), nil, value, nil)
}

func (s *Store) Push(ctx context.Context, path string, value any) (string, error) {
	var out struct {
		Name string `json:"name"`
	}
	if err := s.client.DoJSON(ctx, http.MethodPost, jsonPath(path), nil, value, &out); err != nil {
		return "", err
	}
	if out.Name == "" {
		return "", errors.New("firebase: push response missing name")
	}
	return out.Name, nil
}

func (s *Store) Remove(ctx context.Context, path string) error {
	return s.client.DoJSON(ctx, http.MethodDelete, jsonPath(path), nil, nil, nil)
}

func (s *Store) Update(ctx context.Context, updates map[string]any) error {
	writes, err := store.PlanUpdate(updates)
	if err != nil {
		return err
	}
	if len(writes) == 0 {
		return nil
	}
	body := make(map[string]any, len(writes))
	for _, w := range writes {
		body["/"+w.Path] = w.Value
	}
	return s.client.DoJSON(ctx, http.MethodPatch, "/.json", nil, body, nil)
}

// Watch entrega el snapshot actual y luego uno nuevo por cada evento put/patch del stream.
// Si la conexión se corta, reconecta hasta que ctx termine o se llame a Cancel.
func (s *Store) Watch(ctx context.Context, path string, fn func(json.RawMessage)) (store.Cancel, error) {
	first, err := s.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	wctx, cancel := context.WithCancel(ctx)
	w := &watcher{store: s, path: path, fn: fn}
	w.deliver(first)

	go w.loop(wctx)

	var once sync.Once
	return func() { once.Do(cancel) }, nil
}

type watcher struct {
	store *Store
	path  string
	fn    func(json.RawMessage)

	last json.RawMessage
}

func (w *watcher) deliver(raw json.RawMessage) {
	if w.last != nil && bytes.Equal(w.last, raw) {
		return
	}
	w.last = raw
	var cp json.RawMessage
	if raw != nil {
		cp = append(json.RawMessage(nil), raw...)
	}
	w.fn(cp)
}

func (w *watcher) loop(ctx context.Context) {
	for {
		err := w.streamOnce(ctx)
		if ctx.Err() != nil {
			return
		}
		if errors.Is(err, errStreamClosed) {
			w.store.log.Warn("stream closed by server", map[string]any{"path": w.path})
			return
		}
		if err == nil {
			err = errStreamEnded
		}
		w.store.log.Warn("stream error, reconnecting", map[string]any{"path": w.path, "err": err})
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

var (
	errStreamClosed = errors.New("firebase: stream cancelled")
	errStreamEnded  = errors.New("firebase: stream ended")
)

// streamOnce abre una suscripción y vuelve cuando el servidor la corta.
// Los reintentos quedan en loop, no en el backoff del cliente.
func (w *watcher) streamOnce(ctx context.Context) error {
	u, err := w.store.client.URL(jsonPath(w.path))
	if err != nil {
		return err
	}

	sctx, stop := context.WithCancel(ctx)
	defer stop()

	c := sse.NewClient(u)
	c.Connection = w.store.stream
	c.ReconnectStrategy = backoff.WithContext(&backoff.StopBackOff{}, sctx)

	var failed error
	err = c.SubscribeRawWithContext(sctx, func(msg *sse.Event) {
		if failed != nil {
			return
		}
		if derr := w.dispatch(sctx, string(msg.Event)); derr != nil {
			failed = derr
			stop()
		}
	})
	if failed != nil {
		return failed
	}
	if err != nil && ctx.Err() == nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (w *watcher) dispatch(ctx context.Context, event string) error {
	switch event {
	case "put", "patch":
		raw, err := w.store.Get(ctx, w.path)
		if err != nil {
			return err
		}
		w.deliver(raw)
	case "cancel", "auth_revoked":
		return errStreamClosed
	}
	// keep-alive y eventos desconocidos se ignoran
	return nil
}
