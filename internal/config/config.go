// Package config carga la configuración desde variables de entorno (y un .env opcional).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendPostgres Backend = "postgres"
	BackendFirebase Backend = "firebase"
)

// DefaultFirebaseURL solo la usa la API; el worker exige una ubicación explícita.
const DefaultFirebaseURL = "https://monkey-social-250aa-default-rtdb.firebaseio.com"

var (
	ErrUnknownBackend  = errors.New("config: unknown STORE_BACKEND")
	ErrMissingStoreURL = errors.New("config: remote store requires FIREBASE_URL or DB_DSN")
	ErrMissingAPIKey   = errors.New("config: ANTHROPIC_API_KEY is required")
)

type Config struct {
	Port string

	StoreBackend Backend
	FirebaseURL  string
	FirebaseAuth string
	DBDSN        string

	// FirebaseProjectID activa la verificación de ID tokens; vacío => modo dev (X-Debug-User-ID).
	FirebaseProjectID       string
	FirebaseCredentialsFile string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string

	AnthropicAPIKey  string
	AnthropicURL     string
	AnthropicVersion string
	AnthropicModel   string
	AnthropicTimeout time.Duration

	WorldSchedule    string
	WorldTickTimeout time.Duration
	MetricsAddr      string

	LogLevel  string
	LogFormat string
	AppName   string
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("STORE_BACKEND", string(BackendMemory))
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_CHANNEL", "monkey-social:changes")
	v.SetDefault("ANTHROPIC_URL", "https://api.anthropic.com/v1/messages")
	v.SetDefault("ANTHROPIC_VERSION", "2023-06-01")
	v.SetDefault("ANTHROPIC_MODEL", "claude-sonnet-4-20250514")
	v.SetDefault("ANTHROPIC_TIMEOUT", "60s")
	v.SetDefault("WORLD_SCHEDULE", "@every 15m")
	v.SetDefault("WORLD_TICK_TIMEOUT", "5m")
	v.SetDefault("METRICS_ADDR", ":9090")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "monkey-social")
}

// keys se enlazan explícitamente con BindEnv.
var keys = []string{
	"PORT", "STORE_BACKEND", "FIREBASE_URL", "FIREBASE_AUTH", "DB_DSN",
	"FIREBASE_PROJECT_ID", "FIREBASE_CREDENTIALS_FILE",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_CHANNEL",
	"ANTHROPIC_API_KEY", "ANTHROPIC_URL", "ANTHROPIC_VERSION", "ANTHROPIC_MODEL", "ANTHROPIC_TIMEOUT",
	"WORLD_SCHEDULE", "WORLD_TICK_TIMEOUT", "METRICS_ADDR",
	"LOG_LEVEL", "LOG_FORMAT", "APP_NAME",
}

// Load lee .env (si existe, sin pisar variables ya definidas) y luego el entorno.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	cfg := Config{
		Port: v.GetString("PORT"),

		StoreBackend: Backend(strings.ToLower(strings.TrimSpace(v.GetString("STORE_BACKEND")))),
		FirebaseURL:  strings.TrimSpace(v.GetString("FIREBASE_URL")),
		FirebaseAuth: v.GetString("FIREBASE_AUTH"),
		DBDSN:        strings.TrimSpace(v.GetString("DB_DSN")),

		FirebaseProjectID:       strings.TrimSpace(v.GetString("FIREBASE_PROJECT_ID")),
		FirebaseCredentialsFile: strings.TrimSpace(v.GetString("FIREBASE_CREDENTIALS_FILE")),

		RedisAddr:     strings.TrimSpace(v.GetString("REDIS_ADDR")),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		RedisChannel:  v.GetString("REDIS_CHANNEL"),

		AnthropicAPIKey:  strings.TrimSpace(v.GetString("ANTHROPIC_API_KEY")),
		AnthropicURL:     v.GetString("ANTHROPIC_URL"),
		AnthropicVersion: v.GetString("ANTHROPIC_VERSION"),
		AnthropicModel:   v.GetString("ANTHROPIC_MODEL"),
		AnthropicTimeout: v.GetDuration("ANTHROPIC_TIMEOUT"),

		WorldSchedule:    v.GetString("WORLD_SCHEDULE"),
		WorldTickTimeout: v.GetDuration("WORLD_TICK_TIMEOUT"),
		MetricsAddr:      v.GetString("METRICS_ADDR"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
		AppName:   v.GetString("APP_NAME"),
	}

	switch cfg.StoreBackend {
	case BackendMemory, BackendPostgres, BackendFirebase:
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.StoreBackend)
	}
	return cfg, nil
}

// ForAPI completa lo que la API puede suponer: sin FIREBASE_URL usa la base por defecto.
func (c Config) ForAPI() Config {
	if c.StoreBackend == BackendFirebase && c.FirebaseURL == "" {
		c.FirebaseURL = DefaultFirebaseURL
	}
	return c
}

// ValidateWorker exige la ubicación del store remoto y la credencial del upstream.
func (c Config) ValidateWorker() error {
	switch c.StoreBackend {
	case BackendFirebase:
		if c.FirebaseURL == "" {
			return ErrMissingStoreURL
		}
	case BackendPostgres:
		if c.DBDSN == "" {
			return ErrMissingStoreURL
		}
	}
	return nil
}

// ValidateCompletion se usa donde hace falta hablar con el servicio de completion.
func (c Config) ValidateCompletion() error {
	if c.AnthropicAPIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
