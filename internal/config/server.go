package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	assistantHandler "WellCommand/internal/api/assistant/handler"
	assistantRepository "WellCommand/internal/api/assistant/repository"
	assistantService "WellCommand/internal/api/assistant/service"
	"WellCommand/internal/middleware"
	"WellCommand/pkg/nlp"
	"WellCommand/pkg/redis"
	"WellCommand/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine          *fiber.App
	log             *logrus.Logger
	middleware      middleware.Middleware
	validator       *validator.Validate
	utils           utils.IUtils
	handlers        []handler
	redisServer     redis.IRedis
	catalogue       *nlp.Catalogue
	local           *nlp.LocalInterpreter
	completer       nlp.Completer
	commandSource   *nlp.FallbackInterpreter
	remote          *nlp.RemoteInterpreter
	assistantConfig assistantService.Config
	services        []assistantService.IAssistantService
	closers         []func()
	cancelJanitor   context.CancelFunc
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{
		assistantConfig: assistantService.DefaultConfig(),
	}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.catalogue == nil {
		server.catalogue = nlp.NewDefaultCatalogue()
	}
	// interpreters are built last so they see the final catalogue whatever
	// the option order
	server.local = nlp.NewLocalInterpreter(server.catalogue)
	server.remote = nlp.NewRemoteInterpreter(server.completer, server.catalogue)
	server.commandSource = nlp.NewFallbackInterpreter(server.remote, server.local, server.log)
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.utils == nil {
		server.utils = utils.New()
	}
	if server.middleware == nil {
		server.middleware = middleware.New(server.log, middleware.DefaultConfig())
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		if redisServer != nil {
			s.closers = append(s.closers, func() { _ = redisServer.Close() })
		}
		return nil
	}
}

func WithCatalogue(catalogue *nlp.Catalogue) ServerOption {
	return func(s *Server) error {
		s.catalogue = catalogue
		return nil
	}
}

// WithCommandSource wires the remote backend named by ASSISTANT_PROVIDER
// behind the local fallback.
func WithCommandSource() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before command source")
		}
		completer, closer := newCompleter(s.log)
		s.closers = append(s.closers, closer)
		return WithCompleter(completer)(s)
	}
}

// WithCompleter wires an explicit remote backend. A nil completer means
// local-only interpretation.
func WithCompleter(completer nlp.Completer) ServerOption {
	return func(s *Server) error {
		s.completer = completer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}

		cfg := middleware.DefaultConfig()
		if v, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_PER_SECOND"), 64); err == nil && v > 0 {
			cfg.RatePerSecond = v
		}
		if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST")); err == nil && v > 0 {
			cfg.Burst = v
		}

		s.middleware = middleware.New(s.log, cfg)
		return nil
	}
}

func WithSessionConfig() ServerOption {
	return func(s *Server) error {
		if v, err := strconv.Atoi(os.Getenv("SESSION_TTL_HOURS")); err == nil && v > 0 {
			s.assistantConfig.SessionTTL = time.Duration(v) * time.Hour
		}
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	var lock assistantService.QueryLocker = assistantRepository.NewMemoryLock()
	if s.redisServer != nil {
		lock = s.redisServer
	}

	// Assistant Domain
	assistantRepo := assistantRepository.New(s.log)
	assistantServices := assistantService.NewAssistantService(
		s.log, assistantRepo, s.commandSource, s.local, s.catalogue, lock, s.utils, s.assistantConfig,
	)
	assistantHandlers := assistantHandler.New(s.log, s.validator, s.middleware, assistantServices)

	s.services = append(s.services, assistantServices)

	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())
	s.setupHealthCheck()

	router := s.engine.Group("/api/v1")
	s.handlers = append(s.handlers, assistantHandlers)
	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) App() *fiber.App {
	return s.engine
}

func (s *Server) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelJanitor = cancel

	sweep := s.assistantConfig.SessionTTL / 24
	if sweep < time.Minute {
		sweep = time.Minute
	}
	for _, svc := range s.services {
		svc.StartJanitor(ctx, sweep)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	s.log.WithFields(logrus.Fields{
		"port":     port,
		"provider": s.remote.Provider(),
	}).Info("Starting assistant server")

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) Shutdown() error {
	if s.cancelJanitor != nil {
		s.cancelJanitor()
	}
	err := s.engine.Shutdown()
	for _, closer := range s.closers {
		closer()
	}
	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message":        "Server is Healthy!",
			"remote_state":   s.remoteState(),
			"remote_backend": s.remote.Provider(),
		})
	})
}

func (s *Server) remoteState() nlp.RemoteState {
	if s.remote.Configured() {
		return nlp.StateActive
	}
	return nlp.StateNotConfigured
}
