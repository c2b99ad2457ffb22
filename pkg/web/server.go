// Package web provides a real-time dashboard for a camera session
package web

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-camera/internal/log"
	"github.com/teslashibe/go-camera/pkg/camera"
	"github.com/teslashibe/go-camera/pkg/hub"
)

// DefaultStatusInterval is how often StatusLoop pushes session stats.
const DefaultStatusInterval = time.Second

// Status is the payload pushed on /ws/status and served by /api/status.
type Status struct {
	Camera  camera.Info  `json:"camera"`
	Stats   camera.Stats `json:"stats"`
	Clients int          `json:"clients"`
}

// Server is the web dashboard server
type Server struct {
	app    *fiber.App
	addr   string
	logger *slog.Logger

	registry *camera.Registry
	manager  *camera.Manager
	preview  *Preview

	session   *camera.Session
	sessionMu sync.RWMutex

	// Hubs for websocket broadcast
	statusHub *hub.Hub
	cameraHub *hub.Hub
}

// NewServer creates a dashboard listening on addr (":8080").
func NewServer(addr string, registry *camera.Registry, manager *camera.Manager) *Server {
	if registry == nil {
		registry = camera.DefaultRegistry()
	}

	s := &Server{
		addr:      addr,
		logger:    log.Component("web"),
		registry:  registry,
		manager:   manager,
		statusHub: hub.New("status"),
		cameraHub: hub.New("camera"),
	}
	s.preview = NewPreview(s.cameraHub, manager)

	app := fiber.New(fiber.Config{
		AppName:               "Camera Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// API routes
	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/specs", s.handleSpecs)
	api.Get("/types", s.handleTypes)
	api.Get("/snapshot", s.handleSnapshot)
	api.Get("/settings", s.handleGetSettings)
	api.Put("/settings", s.handleUpdateSettings)
	api.Get("/settings/presets", s.handlePresets)
	api.Get("/settings/capabilities", s.handleCapabilities)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/camera", websocket.New(s.handleHubWS(s.cameraHub)))
	app.Get("/ws/status", websocket.New(s.handleHubWS(s.statusHub)))

	s.app = app
	return s
}

// Attach points the dashboard at a running session.
func (s *Server) Attach(session *camera.Session) {
	s.sessionMu.Lock()
	s.session = session
	s.sessionMu.Unlock()
}

// Preview returns the displayer that feeds /ws/camera.
func (s *Server) Preview() *Preview {
	return s.preview
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start runs the hubs and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("web dashboard listening", "addr", s.addr)

	go s.statusHub.Run(ctx)
	go s.cameraHub.Run(ctx)
	go s.StatusLoop(ctx, DefaultStatusInterval)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(s.addr)
	}()

	select {
	case <-ctx.Done():
		return s.app.Shutdown()
	case err := <-errCh:
		return err
	}
}

// StatusLoop pushes the current Status to /ws/status subscribers.
func (s *Server) StatusLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			status, ok := s.status()
			if !ok || s.statusHub.ClientCount() == 0 {
				continue
			}
			if err := s.statusHub.BroadcastJSON(status); err != nil {
				s.logger.Warn("status broadcast failed", "error", err)
			}
		}
	}
}

func (s *Server) status() (Status, bool) {
	s.sessionMu.RLock()
	session := s.session
	s.sessionMu.RUnlock()

	if session == nil {
		return Status{}, false
	}
	return Status{
		Camera:  session.GetSpecs(),
		Stats:   session.Stats(),
		Clients: s.cameraHub.ClientCount(),
	}, true
}
