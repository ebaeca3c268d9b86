// Package redisfeed replica las notificaciones de cambio entre procesos
// (API y worker) usando pub/sub de Redis.
package redisfeed

import (
	"context"
	"encoding/json"
	"time"

	"monkey-social/internal/platform/logger"
	"monkey-social/internal/ports/store"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultChannel = "monkey-social:changes"

	publishTimeout = 2 * time.Second
)

// Bridge publica los paths cambiados y, desde Run, reenvía al notifier local
// todo lo publicado por cualquier proceso (incluido este).
type Bridge struct {
	client  *redis.Client
	channel string
	local   store.ChangeNotifier
	log     logger.Logger
}

var _ store.ChangeNotifier = (*Bridge)(nil)

type Options struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

func NewClient(opts Options) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
}

func New(client *redis.Client, channel string, local store.ChangeNotifier, log logger.Logger) *Bridge {
	if channel == "" {
		channel = DefaultChannel
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Bridge{
		client:  client,
		channel: channel,
		local:   local,
		log:     log.With(map[string]any{"component": "redisfeed", "channel": channel}),
	}
}

type message struct {
	Paths []string `json:"paths"`
}

// Changed publica; si Redis falla, al menos notifica a los watchers locales.
func (b *Bridge) Changed(paths ...string) {
	if len(paths) == 0 {
		return
	}
	payload, err := json.Marshal(message{Paths: paths})
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		err = b.client.Publish(ctx, b.channel, payload).Err()
		cancel()
	}
	if err != nil {
		b.log.Warn("publish change failed, notifying locally", map[string]any{"err": err, "paths": paths})
		b.local.Changed(paths...)
	}
}

// Run escucha el canal hasta que ctx termine.
func (b *Bridge) Run(ctx context.Context) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			paths, err := decode(msg.Payload)
			if err != nil {
				b.log.Warn("invalid change message", map[string]any{"err": err})
				continue
			}
			b.local.Changed(paths...)
		}
	}
}

func decode(payload string) ([]string, error) {
	var m message
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		return nil, err
	}
	return m.Paths, nil
}
