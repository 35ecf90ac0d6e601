// Package config loads the voice-agent configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Session store drivers.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	Addr string

	// Provider credentials. The Gemini key is required at startup; the
	// other two are passed through to their clients unvalidated.
	GeminiAPIKey     string
	AssemblyAIAPIKey string
	MurfAPIKey       string

	GeminiModel string
	MurfVoiceID string
	MurfStyle   string

	// SynthesisMaxChars caps each synthesis call; replies longer than this
	// are chunked (Murf rejects longer inputs).
	SynthesisMaxChars int

	// MaxHistoryTurns windows the transcript fed to the prompt.
	// Zero sends the whole history.
	MaxHistoryTurns int

	MaxBodyBytes int64

	UploadDir   string
	FrontendDir string

	// SessionStore selects the transcript store driver: memory or redis.
	SessionStore    string
	RedisAddr       string
	RedisSessionTTL time.Duration

	// STTPollInterval is how often AssemblyAI transcript status is polled.
	STTPollInterval time.Duration

	// CORS
	CORSAllowedOrigins map[string]struct{} // empty => disabled

	// Operational defaults
	ReadHeaderTimeout   time.Duration
	ReadTimeout         time.Duration
	ShutdownGracePeriod time.Duration

	// Upstream HTTP client defaults
	UpstreamConnectTimeout time.Duration
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		Addr:                   envOr("VOICE_AGENT_ADDR", ":8080"),
		GeminiAPIKey:           strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		AssemblyAIAPIKey:       strings.TrimSpace(os.Getenv("ASSEMBLYAI_API_KEY")),
		MurfAPIKey:             strings.TrimSpace(os.Getenv("MURF_API_KEY")),
		GeminiModel:            envOr("VOICE_AGENT_GEMINI_MODEL", "gemini-1.5-flash"),
		MurfVoiceID:            envOr("VOICE_AGENT_VOICE_ID", "en-UK-peter"),
		MurfStyle:              envOr("VOICE_AGENT_VOICE_STYLE", "Conversational"),
		SynthesisMaxChars:      envIntOr("VOICE_AGENT_SYNTHESIS_MAX_CHARS", 3000),
		MaxHistoryTurns:        envIntOr("VOICE_AGENT_MAX_HISTORY_TURNS", 0),
		MaxBodyBytes:           envInt64Or("VOICE_AGENT_MAX_BODY_BYTES", 16<<20), // 16 MiB
		UploadDir:              envOr("VOICE_AGENT_UPLOAD_DIR", "uploads"),
		FrontendDir:            envOr("VOICE_AGENT_FRONTEND_DIR", "frontend"),
		SessionStore:           envOr("VOICE_AGENT_SESSION_STORE", StoreMemory),
		RedisAddr:              strings.TrimSpace(os.Getenv("VOICE_AGENT_REDIS_ADDR")),
		RedisSessionTTL:        envDurationOr("VOICE_AGENT_REDIS_SESSION_TTL", 24*time.Hour),
		STTPollInterval:        envDurationOr("VOICE_AGENT_STT_POLL_INTERVAL", time.Second),
		CORSAllowedOrigins:     make(map[string]struct{}),
		ReadHeaderTimeout:      envDurationOr("VOICE_AGENT_READ_HEADER_TIMEOUT", 10*time.Second),
		ReadTimeout:            envDurationOr("VOICE_AGENT_READ_TIMEOUT", 30*time.Second),
		ShutdownGracePeriod:    envDurationOr("VOICE_AGENT_SHUTDOWN_GRACE_PERIOD", 30*time.Second),
		UpstreamConnectTimeout: envDurationOr("VOICE_AGENT_CONNECT_TIMEOUT", 5*time.Second),
	}

	for _, origin := range splitCSV(os.Getenv("VOICE_AGENT_CORS_ORIGINS")) {
		cfg.CORSAllowedOrigins[origin] = struct{}{}
	}

	if cfg.GeminiAPIKey == "" {
		return Config{}, fmt.Errorf("GEMINI_API_KEY must be set")
	}

	switch cfg.SessionStore {
	case StoreMemory:
	case StoreRedis:
		if cfg.RedisAddr == "" {
			return Config{}, fmt.Errorf("VOICE_AGENT_REDIS_ADDR must be set when VOICE_AGENT_SESSION_STORE=redis")
		}
	default:
		return Config{}, fmt.Errorf("VOICE_AGENT_SESSION_STORE must be one of memory|redis")
	}

	if cfg.SynthesisMaxChars <= 0 {
		return Config{}, fmt.Errorf("VOICE_AGENT_SYNTHESIS_MAX_CHARS must be > 0")
	}
	if cfg.MaxHistoryTurns < 0 {
		return Config{}, fmt.Errorf("VOICE_AGENT_MAX_HISTORY_TURNS must be >= 0")
	}
	if cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("VOICE_AGENT_MAX_BODY_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.UploadDir) == "" {
		return Config{}, fmt.Errorf("VOICE_AGENT_UPLOAD_DIR must not be empty")
	}
	if strings.TrimSpace(cfg.FrontendDir) == "" {
		return Config{}, fmt.Errorf("VOICE_AGENT_FRONTEND_DIR must not be empty")
	}
	if cfg.RedisSessionTTL <= 0 {
		return Config{}, fmt.Errorf("VOICE_AGENT_REDIS_SESSION_TTL must be > 0")
	}
	if cfg.STTPollInterval <= 0 {
		return Config{}, fmt.Errorf("VOICE_AGENT_STT_POLL_INTERVAL must be > 0")
	}
	if cfg.ReadHeaderTimeout <= 0 {
		return Config{}, fmt.Errorf("VOICE_AGENT_READ_HEADER_TIMEOUT must be > 0")
	}
	if cfg.ReadTimeout <= 0 {
		return Config{}, fmt.Errorf("VOICE_AGENT_READ_TIMEOUT must be > 0")
	}
	if cfg.ShutdownGracePeriod <= 0 {
		return Config{}, fmt.Errorf("VOICE_AGENT_SHUTDOWN_GRACE_PERIOD must be > 0")
	}
	if cfg.UpstreamConnectTimeout <= 0 {
		return Config{}, fmt.Errorf("VOICE_AGENT_CONNECT_TIMEOUT must be > 0")
	}

	return cfg, nil
}

func envOr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envIntOr(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func envInt64Or(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func envDurationOr(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}

func splitCSV(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
