package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"monkey-social/internal/platform/httpclient"
	"monkey-social/internal/ports/completion"
)

const (
	DefaultURL     = "https://api.anthropic.com/v1/messages"
	DefaultVersion = "2023-06-01"
	DefaultModel   = "claude-sonnet-4-20250514"

	defaultTimeout = 60 * time.Second
)

// Config del cliente. APIKey es la credencial del servidor; nunca viaja al browser.
type Config struct {
	URL     string
	APIKey  string
	Version string
	Model   string
	Timeout time.Duration
}

type Client struct {
	http *httpclient.Client
	cfg  Config
}

var _ completion.Completer = (*Client)(nil)

func NewClient(cfg Config) *Client {
	if strings.TrimSpace(cfg.URL) == "" {
		cfg.URL = DefaultURL
	}
	if strings.TrimSpace(cfg.Version) == "" {
		cfg.Version = DefaultVersion
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		http: httpclient.New(cfg.Timeout),
		cfg:  cfg,
	}
}

// NewClientWithHTTP permite inyectar el httpclient (tests).
func NewClientWithHTTP(cfg Config, hc *httpclient.Client) *Client {
	c := NewClient(cfg)
	if hc != nil {
		c.http = hc
	}
	return c
}

func (c *Client) IsConfigured() bool {
	return c != nil && strings.TrimSpace(c.cfg.APIKey) != ""
}

type messagesRequest struct {
	Model     string               `json:"model"`
	MaxTokens int                  `json:"max_tokens"`
	Messages  []completion.Message `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error json.RawMessage `json:"error"`
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"x-api-key":         c.cfg.APIKey,
		"anthropic-version": c.cfg.Version,
	}
}

func (c *Client) Complete(ctx context.Context, messages []completion.Message, maxTokens int) (string, error) {
	body, err := json.Marshal(messagesRequest{
		Model:     c.cfg.Model,
		MaxTokens: maxTokens,
		Messages:  messages,
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", completion.ErrNoResult, err)
	}

	status, raw, err := c.Forward(ctx, body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", completion.ErrNoResult, err)
	}

	var resp messagesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("%w: invalid json: %v", completion.ErrNoResult, err)
	}
	if hasError(resp.Error) {
		return "", fmt.Errorf("%w: upstream error: %s", completion.ErrNoResult, string(resp.Error))
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("%w: status=%d", completion.ErrNoResult, status)
	}
	if len(resp.Content) == 0 || resp.Content[0].Text == "" {
		return "", fmt.Errorf("%w: empty content", completion.ErrNoResult)
	}
	return resp.Content[0].Text, nil
}

// Forward manda body tal cual al endpoint de mensajes con la credencial del servidor.
func (c *Client) Forward(ctx context.Context, body []byte) (int, []byte, error) {
	return c.http.DoRaw(ctx, http.MethodPost, c.cfg.URL, c.headers(), body)
}

// hasError replica el chequeo "truthy" del campo error.
func hasError(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 {
		return false
	}
	switch string(v) {
	case "null", "false", `""`, "0":
		return false
	}
	return true
}
