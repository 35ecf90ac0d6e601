// Package server assembles the voice-agent HTTP surface: routes, middleware
// chain, provider clients and the session transcript store.
package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voicelane/voice-agent/pkg/agent"
	"github.com/voicelane/voice-agent/pkg/agent/store"
	"github.com/voicelane/voice-agent/pkg/core/providers/gemini"
	"github.com/voicelane/voice-agent/pkg/core/voice/stt"
	"github.com/voicelane/voice-agent/pkg/core/voice/tts"
	"github.com/voicelane/voice-agent/pkg/gateway/config"
	"github.com/voicelane/voice-agent/pkg/gateway/handlers"
	"github.com/voicelane/voice-agent/pkg/gateway/mw"
)

// Server owns the mux and the long-lived collaborators behind it.
type Server struct {
	cfg    config.Config
	logger *slog.Logger
	mux    *http.ServeMux
	store  store.Store
}

// New builds a fully wired server from configuration.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	transcripts, err := newStore(cfg)
	if err != nil {
		return nil, err
	}

	// One upstream client for all providers. Connect/TLS phases are bounded;
	// no overall deadline, because AssemblyAI polling legitimately spans the
	// length of the audio.
	upstream := &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   cfg.UpstreamConnectTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   cfg.UpstreamConnectTimeout,
			ResponseHeaderTimeout: cfg.ReadTimeout,
			MaxIdleConnsPerHost:   4,
		},
	}

	llm := gemini.New(cfg.GeminiAPIKey, gemini.WithHTTPClient(upstream))
	transcriber := stt.NewAssemblyAIWithClient(cfg.AssemblyAIAPIKey, upstream).
		WithPollInterval(cfg.STTPollInterval)
	synth := tts.NewMurfWithClient(cfg.MurfAPIKey, upstream)

	voiceOpts := tts.SynthesizeOptions{Voice: cfg.MurfVoiceID, Style: cfg.MurfStyle}

	turns := &agent.Orchestrator{
		Store:             transcripts,
		Transcriber:       sttAdapter{provider: transcriber},
		Generator:         llmAdapter{provider: llm, model: cfg.GeminiModel},
		Synthesizer:       ttsAdapter{provider: synth, opts: voiceOpts},
		Logger:            logger,
		MaxHistoryTurns:   cfg.MaxHistoryTurns,
		SynthesisMaxChars: cfg.SynthesisMaxChars,
	}

	mux := http.NewServeMux()

	mux.Handle("/healthz", handlers.HealthHandler{})
	mux.Handle("/ping", handlers.PingHandler{})
	mux.Handle("/", handlers.RootHandler{})
	mux.Handle("/frontend/", http.StripPrefix("/frontend/", http.FileServer(http.Dir(cfg.FrontendDir))))

	mux.Handle("/tts", handlers.TTSHandler{Config: cfg, Synth: synth})
	mux.Handle("/upload", handlers.UploadHandler{Config: cfg, Logger: logger})
	mux.Handle("/transcribe/file", handlers.TranscribeHandler{Config: cfg, Transcriber: transcriber})
	mux.Handle("/tts/echo", handlers.EchoHandler{Config: cfg, Transcriber: transcriber, Synth: synth})

	mux.Handle("/llm/query", handlers.LLMQueryHandler{Config: cfg, Generator: llm})
	mux.Handle("/llm/query/text", handlers.LLMQueryTextHandler{Config: cfg, Generator: llm, Synth: synth})
	mux.Handle("/llm/query/audio", handlers.LLMQueryAudioHandler{
		Config:      cfg,
		Transcriber: transcriber,
		Generator:   llm,
		Synth:       synth,
	})

	mux.Handle("/agent/chat/{session_id}", handlers.AgentChatHandler{Config: cfg, Turns: turns})

	return &Server{
		cfg:    cfg,
		logger: logger,
		mux:    mux,
		store:  transcripts,
	}, nil
}

// Handler returns the mux wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = mw.CORS(s.cfg, h)
	h = mw.Recover(s.logger, h)
	h = mw.AccessLog(s.logger, h)
	h = mw.RequestID(h)
	return h
}

// Close releases the transcript store.
func (s *Server) Close() error {
	return s.store.Close()
}

func newStore(cfg config.Config) (store.Store, error) {
	switch cfg.SessionStore {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:        cfg.RedisAddr,
			DialTimeout: cfg.UpstreamConnectTimeout,
		})
		return store.NewRedisStore(client, cfg.RedisSessionTTL), nil
	case config.StoreMemory:
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}
