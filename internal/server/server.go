package server

import (
	_ "embed"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/1broseidon/textviz/internal/config"
	"github.com/1broseidon/textviz/internal/logging"
	"github.com/1broseidon/textviz/orchestrator"
)

//go:embed web/index.html
var indexHTML []byte

// defaultCycleTimeout bounds one background generation cycle.
const defaultCycleTimeout = 3 * time.Minute

type Server struct {
	app      *fiber.App
	cfg      *config.Config
	sessions *SessionStore
	logger   logging.Logger
}

type Option func(*sessionController)

// WithSpawn replaces the goroutine launcher for background cycles.
func WithSpawn(spawn func(func())) Option {
	return func(c *sessionController) {
		c.spawn = spawn
	}
}

// WithCycleTimeout bounds each background cycle.
func WithCycleTimeout(d time.Duration) Option {
	return func(c *sessionController) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New builds the HTTP server. newSession is called once per browser session.
func New(cfg *config.Config, newSession func() *orchestrator.Orchestrator, logger logging.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	app := fiber.New(fiber.Config{
		BodyLimit:             1 * 1024 * 1024, // 1MB
		ErrorHandler:          errorHandler(logger),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.App.CorsAllowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept",
		AllowMethods:  "GET, POST, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Type, Content-Disposition",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())
	app.Use(requestLogger(logger))

	sessions := NewSessionStore(cfg.App.SessionTTL)
	controller := &sessionController{
		sessions:   sessions,
		newSession: newSession,
		spawn:      func(fn func()) { go fn() },
		timeout:    defaultCycleTimeout,
	}
	for _, opt := range opts {
		opt(controller)
	}

	app.Get("/", func(ctx *fiber.Ctx) error {
		ctx.Type("html", "utf-8")
		return ctx.Send(indexHTML)
	})
	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", fiber.Map{"sessions": sessions.Count()}))
	})
	controller.RegisterRoutes(app.Group("/api"))

	return &Server{
		app:      app,
		cfg:      cfg,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.logger.Infof("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func requestLogger(logger logging.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()
		logger.Debugf("%s %s %d %s", ctx.Method(), ctx.Path(), ctx.Response().StatusCode(), time.Since(start))
		return err
	}
}
