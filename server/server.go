package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/foliopilot/foliopilot/agent/contract"
	"github.com/foliopilot/foliopilot/portfolio"
	"github.com/foliopilot/foliopilot/view"
)

// Chat is the copilot surface the server depends on.
type Chat interface {
	HandleMessage(ctx context.Context, sessionID string, text string) (contractx.CopilotReply, error)
}

type Config struct {
	Addr            string        `envconfig:"ADDR" default:":8080"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Server ties page rendering, portfolio pricing, and the copilot together
// behind an HTTP API.
type Server struct {
	interpreter *view.Interpreter
	copilot     Chat
	valuer      *portfolio.Valuer
	holdings    portfolio.Store

	cfg  Config
	http *http.Server
}

type Option func(*Server)

func WithCopilot(c Chat) Option {
	return func(s *Server) {
		s.copilot = c
	}
}

func WithPortfolio(store portfolio.Store, valuer *portfolio.Valuer) Option {
	return func(s *Server) {
		s.holdings = store
		s.valuer = valuer
	}
}

func New(cfg Config, opts ...Option) *Server {
	s := &Server{
		interpreter: view.NewInterpreter(),
		cfg:         cfg,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/pages", s.handleListPages)
	mux.HandleFunc("GET /v1/pages/{id}", s.handleGetPage)
	mux.HandleFunc("POST /v1/render", s.handleRender)
	mux.HandleFunc("POST /v1/copilot/message", s.handleCopilotMessage)
	mux.HandleFunc("GET /v1/portfolio/{userID}/summary", s.handlePortfolioSummary)
	mux.HandleFunc("PUT /v1/portfolio/{userID}/holdings", s.handleUpsertHolding)
	mux.HandleFunc("DELETE /v1/portfolio/{userID}/holdings/{symbol}", s.handleRemoveHolding)

	return withRequestLogging(mux)
}

// ListenAndServe blocks until the context is cancelled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.Addr).Msg("http server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	})
}

func trimPathValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.PathValue(name))
}
