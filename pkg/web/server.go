// Package web serves sensor ingestion, the CSV download and the live
// heart rate dashboard.
package web

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"ppg-monitor/pkg/bpm"
	"ppg-monitor/pkg/hub"
	"ppg-monitor/pkg/model"
	"ppg-monitor/pkg/storage"
)

const DownloadName = "sensors.csv"

// ReadingSubmitter queues a reading for the CSV log. *ingest.Recorder
// implements it.
type ReadingSubmitter interface {
	Submit(ctx context.Context, r *model.Reading) error
}

type Options struct {
	Buffer      storage.Buffer
	Store       storage.ReadingStore
	Recorder    ReadingSubmitter
	Estimator   *bpm.Estimator
	Hub         *hub.Hub
	DisplaySize int
	Debug       bool
	Logger      *slog.Logger
	// Now defaults to time.Now
	Now func() time.Time
}

// Server is the HTTP front end
type Server struct {
	app         *fiber.App
	buffer      storage.Buffer
	store       storage.ReadingStore
	recorder    ReadingSubmitter
	estimator   *bpm.Estimator
	hub         *hub.Hub
	displaySize int
	logger      *slog.Logger
	now         func() time.Time
}

func NewServer(opts Options) *Server {
	s := &Server{
		buffer:      opts.Buffer,
		store:       opts.Store,
		recorder:    opts.Recorder,
		estimator:   opts.Estimator,
		hub:         opts.Hub,
		displaySize: opts.DisplaySize,
		logger:      opts.Logger,
		now:         opts.Now,
	}
	if s.estimator == nil {
		s.estimator = bpm.Default
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.displaySize <= 0 {
		s.displaySize = 200
	}

	app := fiber.New(fiber.Config{
		AppName:               "PPG Monitor",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New())
	if opts.Debug {
		app.Use(s.logRequest)
	}

	app.Get("/", s.handleDashboard)
	app.Get("/healthz", s.handleHealth)
	app.Post("/data", s.handleData)
	app.Get("/download", s.handleDownload)
	app.Post("/ppg", s.handlePPG)

	api := app.Group("/api")
	api.Get("/bpm", s.handleBPM)
	api.Get("/signal", s.handleSignal)

	if s.hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/ws/bpm", websocket.New(s.handleBPMWS))
	}

	s.app = app
	return s
}

// App exposes the fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving on addr.
func (s *Server) Listen(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) logRequest(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.logger.Debug("request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
	)
	return err
}
