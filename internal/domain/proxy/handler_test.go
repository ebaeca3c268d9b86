package proxy

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeForwarder struct {
	status int
	body   string
	err    error
	got    []byte
	calls  int
}

func (f *fakeForwarder) Forward(_ context.Context, body []byte) (int, []byte, error) {
	f.calls++
	f.got = body
	return f.status, []byte(f.body), f.err
}

func serve(t *testing.T, fwd Forwarder, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	RegisterRoutes(r, fwd, nil)

	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/", rdr)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestProxy_Preflight(t *testing.T) {
	fwd := &fakeForwarder{}
	rec := serve(t, fwd, http.MethodOptions, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Empty(t, rec.Body.String())
	assert.Zero(t, fwd.calls)
}

func TestProxy_OtherMethodsAre405(t *testing.T) {
	for _, m := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := serve(t, &fakeForwarder{}, m, "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, m)
		assert.Equal(t, "Method not allowed", strings.TrimSpace(rec.Body.String()), m)
	}
}

func TestProxy_ForwardsVerbatim(t *testing.T) {
	fwd := &fakeForwarder{status: 200, body: `{"content":[{"type":"text","text":"hi"}]}`}
	in := `{"model":"m","max_tokens":50,"messages":[{"role":"user","content":"hola"}]}`

	rec := serve(t, fwd, http.MethodPost, in)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, in, string(fwd.got))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, fwd.body, rec.Body.String())
}

func TestProxy_UpstreamErrorBodyPassesThroughWith200(t *testing.T) {
	fwd := &fakeForwarder{status: 429, body: `{"error":{"type":"rate_limit_error"}}`}
	rec := serve(t, fwd, http.MethodPost, `{}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, fwd.body, rec.Body.String())
}

func TestProxy_FailuresAre500WithCORS(t *testing.T) {
	cases := map[string]struct {
		fwd  *fakeForwarder
		body string
	}{
		"bad request json":  {fwd: &fakeForwarder{}, body: `{nope`},
		"transport":         {fwd: &fakeForwarder{err: errors.New("dial tcp: refused")}, body: `{}`},
		"upstream not json": {fwd: &fakeForwarder{status: 502, body: `<html>bad gateway</html>`}, body: `{}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := serve(t, tc.fwd, http.MethodPost, tc.body)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, rec.Body.String(), `"error":`)
		})
	}
}
