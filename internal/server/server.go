package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/toyz/tsport/internal/errors"
	"github.com/toyz/tsport/internal/utils"
)

const defaultShutdownTimeout = 5 * time.Second

// TransportFactory builds a fresh transport
type TransportFactory func() Transport

// Engines lists the available transports by name
var Engines = utils.NewRegistry[TransportFactory]("engine")

func init() {
	Engines.MustRegister("gin", func() Transport { return NewGinTransport() })
	Engines.MustRegister("echo", func() Transport { return NewEchoTransport() })
	Engines.MustRegister("fiber", func() Transport { return NewFiberTransport() })
}

// Config configures a Server
type Config struct {
	Addr   string
	Engine string
	Serde  bool
	Strict bool

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration
}

// Server is the translation service mounted on one transport
type Server struct {
	config    Config
	transport Transport
	logger    *zap.Logger
}

// New builds the transport named by config.Engine and mounts the routes
func New(config Config, logger *zap.Logger) (*Server, error) {
	factory, ok := Engines.Get(strings.ToLower(config.Engine))
	if !ok {
		return nil, errors.NewConfigurationError("unknown server engine: "+config.Engine,
			"Use one of: "+strings.Join(Engines.Keys(), ", "))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = defaultShutdownTimeout
	}

	s := &Server{config: config, transport: factory(), logger: logger}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.transport.Use(RequestID())
	s.transport.Use(AccessLog(s.logger))
	s.transport.Use(Recover(s.logger))

	handlers := NewHandlers(s.logger, s.config.Serde, s.config.Strict)
	s.transport.RegisterRoute(http.MethodGet, "/healthz", handlers.Health)
	s.transport.RegisterRoute(http.MethodPost, "/v1/translate", handlers.Translate)
}

// Transport returns the underlying transport
func (s *Server) Transport() Transport {
	return s.transport
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening",
			zap.String("addr", s.config.Addr),
			zap.String("engine", s.transport.Name()))
		errCh <- s.transport.Start(s.config.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Wrapf(errors.TransportErrorCode, err, "%s server failed", s.transport.Name())
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	s.logger.Info("server shutting down")
	if err := s.transport.Stop(shutdownCtx); err != nil {
		return errors.Wrap(errors.TransportErrorCode, "graceful shutdown failed", err)
	}
	return <-errCh
}
