// Package api exposes the agent over HTTP. The layer stays thin: decode,
// validate, delegate, envelope.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sandevgo/scribe/internal/config"
	"github.com/sandevgo/scribe/internal/core"
	"github.com/sandevgo/scribe/internal/service/memory"
	"github.com/sandevgo/scribe/internal/storage/docstore"
	"github.com/sandevgo/scribe/pkg/log"
)

type MessageProcessor interface {
	Process(ctx context.Context, msg core.Message) core.Response
}

type SessionStore interface {
	ClearSession(sessionID string)
	ClearAllSessions()
	Stats() memory.Stats
}

type DocumentStore interface {
	Clear()
	Stats() docstore.Stats
}

type PluginLister interface {
	List() []core.Plugin
}

type Server struct {
	agent    MessageProcessor
	sessions SessionStore
	docs     DocumentStore
	plugins  PluginLister

	httpServer *http.Server
}

func NewServer(cfg *config.AppConfig, agent MessageProcessor, sessions SessionStore, docs DocumentStore, plugins PluginLister) *Server {
	s := &Server{
		agent:    agent,
		sessions: sessions,
		docs:     docs,
		plugins:  plugins,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Route("/agent", func(r chi.Router) {
		r.Post("/message", s.handleMessage)
		r.Get("/stats", s.handleStats)
		r.Delete("/session/{id}", s.handleClearSession)
		r.Delete("/sessions", s.handleClearSessions)
		r.Post("/documents/clear", s.handleClearDocuments)
	})
	return r
}

func (s *Server) Start(ctx context.Context) error {
	// Handlers inherit the service context so log.FromCtx works in them.
	s.httpServer.BaseContext = func(net.Listener) context.Context { return ctx }

	log.FromCtx(ctx).Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
	if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("http server shutting down")

	// The lifecycle context is already cancelled at this point, so drain
	// in-flight requests on a fresh deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
