// Package site hosts the browser-facing marketing site and inquiry wizard.
package site

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/louisbranch/voicebridge/internal/platform/timeouts"
	"github.com/louisbranch/voicebridge/internal/services/site/module"
	"github.com/louisbranch/voicebridge/internal/services/site/modules"
	"github.com/louisbranch/voicebridge/internal/services/site/platform/httpx"
	"github.com/louisbranch/voicebridge/internal/services/site/platform/observability"
	"github.com/louisbranch/voicebridge/internal/services/site/platform/sessioncookie"
	"github.com/louisbranch/voicebridge/internal/services/site/routepath"
	"github.com/louisbranch/voicebridge/internal/services/site/static"
)

// Config defines startup inputs for the site service.
type Config struct {
	HTTPAddr     string
	Dependencies module.Dependencies
	// Modules overrides the default module registry.
	Modules []module.Module
}

// Server hosts the site HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *zap.Logger
}

// NewHandler builds the root handler from the module registry.
func NewHandler(cfg Config) (http.Handler, error) {
	logger := cfg.Dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	features := cfg.Modules
	if features == nil {
		features = modules.Default()
	}
	h, err := compose(cfg.Dependencies, features)
	if err != nil {
		return nil, err
	}
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, static.Handler()))
	rootMux.Handle(routepath.Root, h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.RequestLogger(logger),
		httpx.RequireSameOrigin(sessioncookie.Name, cfg.Dependencies.SchemePolicy.HasSameOriginProof),
	), nil
}

// NewServer validates config and constructs a site server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose site handler: %w", err)
	}
	logger := cfg.Dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			ErrorLog:          zap.NewStdLog(logger.Named("http")),
		},
		logger: logger,
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("site server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info("site listening", zap.String("addr", s.httpAddr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown site http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve site http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
