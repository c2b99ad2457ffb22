package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/teslashibe/go-camera/internal/config"
	"github.com/teslashibe/go-camera/internal/log"
	"github.com/teslashibe/go-camera/pkg/camera"
	"github.com/teslashibe/go-camera/pkg/frame"
	"github.com/teslashibe/go-camera/pkg/web"
)

// Source is a capture collaborator owned by the app. The app opens it
// before building the session and closes it on Shutdown.
type Source interface {
	camera.Capturer
	io.Closer
}

// Window is a local preview that can report a quit key.
type Window interface {
	camera.Displayer
	QuitRequested() bool
	Close() error
}

// SourceOpener opens the capture source for info with the given settings.
type SourceOpener func(ctx context.Context, cfg Config, info camera.Info, capture camera.Config) (Source, error)

// applier is implemented by sources that accept settings at runtime.
type applier interface {
	Apply(cfg camera.Config) error
}

// App is the capture application orchestrator.
// It manages all components and their lifecycle.
type App struct {
	config Config
	logger *slog.Logger
	out    io.Writer

	// Factories, replaceable in tests
	openSource SourceOpener
	newWindow  func() Window

	// Components
	info      camera.Info
	camType   camera.Type
	manager   *camera.Manager
	source    Source
	window    Window
	webServer *web.Server
	session   *camera.Session
}

// Option configures an App.
type Option func(*App)

// WithSourceOpener replaces the default source opener.
func WithSourceOpener(fn SourceOpener) Option {
	return func(a *App) { a.openSource = fn }
}

// WithWindow replaces the local preview window factory.
func WithWindow(fn func() Window) Option {
	return func(a *App) { a.newWindow = fn }
}

// WithOutput sets where PrintSpecs writes (stdout by default).
func WithOutput(w io.Writer) Option {
	return func(a *App) { a.out = w }
}

// New creates a new capture application with the given configuration.
func New(cfg Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		config:     cfg,
		logger:     log.Component("app"),
		out:        os.Stdout,
		openSource: openDefaultSource,
		newWindow:  newDefaultWindow,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Init loads settings, opens the source and builds the session.
// Call this after New() and before Run().
func (a *App) Init(ctx context.Context) error {
	if err := a.loadSettings(); err != nil {
		return err
	}

	capture := a.manager.GetConfig()
	source, err := a.openSource(ctx, a.config, a.info, capture)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	a.source = source

	if ap, ok := source.(applier); ok {
		a.manager.OnConfigChange = ap.Apply
	}

	var displays camera.MultiDisplay
	if !a.config.Headless && a.newWindow != nil {
		a.window = a.newWindow()
		displays = append(displays, a.window)
	}
	if a.config.WebAddr != "" {
		a.webServer = web.NewServer(a.config.WebAddr, camera.DefaultRegistry(), a.manager)
		displays = append(displays, a.webServer.Preview())
	}

	opts := []camera.Option{
		camera.WithOutput(a.out),
		camera.WithPacing(a.config.Paced),
	}
	if len(displays) > 0 {
		opts = append(opts, camera.WithDisplay(displays))
	}

	session, err := camera.NewSession(a.info, source, opts...)
	if err != nil {
		return err
	}
	a.session = session

	if a.webServer != nil {
		a.webServer.Attach(session)
	}

	a.logger.Info("camera ready",
		"name", a.info.Name, "type", a.camType, "index", a.info.Index, "fps", a.info.FPS,
		"width", capture.Width, "height", capture.Height)
	return nil
}

// loadSettings resolves the camera identity and capture settings.
// Flags win over the environment, which wins over the settings file.
func (a *App) loadSettings() error {
	store, info, err := config.LoadCamera(a.config.SettingsPath)
	if err != nil {
		return err
	}

	if a.config.Name != "" {
		info.Name = a.config.Name
	}
	if a.config.Type != "" {
		info.Type = a.config.Type
	}
	if a.config.Index >= 0 {
		info.Index = a.config.Index
	}
	if a.config.FPS > 0 {
		info.FPS = a.config.FPS
	}
	if err := info.Validate(); err != nil {
		return err
	}

	camType, err := info.Resolve(camera.DefaultRegistry())
	if err != nil {
		return err
	}

	capture, err := store.CaptureConfig(camType)
	if err != nil {
		return err
	}
	if a.config.Preset != "" {
		preset := camera.GetPreset(a.config.Preset)
		if preset == nil {
			return fmt.Errorf("%w: unknown preset %q", camera.ErrInvalidCameraConfig, a.config.Preset)
		}
		capture = *preset
	}
	if info.FPS <= camera.MaxFramerate {
		capture.Framerate = info.FPS
	}

	a.info, a.camType = info, camType
	a.manager = camera.NewManager(capture)
	return a.manager.SetConfig(capture)
}

// Run prints the camera specs and runs the capture loop until ctx is
// cancelled, the quit key is pressed, or MaxFrames is reached.
func (a *App) Run(ctx context.Context) error {
	if a.session == nil {
		return errors.New("app: Run called before Init")
	}

	a.session.PrintSpecs()

	if a.webServer != nil {
		go func() {
			if err := a.webServer.Start(ctx); err != nil {
				a.logger.Error("web server error", "error", err)
			}
		}()
	}

	logEvery := a.config.LogEvery
	if logEvery == 0 {
		logEvery = a.info.FPS
	}

	var n int
	return a.session.Run(ctx, func(ctx context.Context, f frame.Frame) error {
		n++

		lum, err := a.session.Luminosity(f)
		if err != nil {
			a.logger.Warn("luminosity failed", "frame", n, "error", err)
		} else if n%logEvery == 0 {
			a.logger.Info("frame", "frame", n, "luminosity", lum)
		}

		if err := a.session.Display(f, camera.DefaultWaitMillis); err != nil && !errors.Is(err, camera.ErrNoDisplay) {
			return err
		}

		if a.window != nil && a.window.QuitRequested() {
			a.logger.Info("quit key pressed")
			return camera.ErrStop
		}
		if a.config.MaxFrames > 0 && n >= a.config.MaxFrames {
			return camera.ErrStop
		}
		return nil
	})
}

// Session returns the running session, or nil before Init.
func (a *App) Session() *camera.Session {
	return a.session
}

// Shutdown releases the session and closes everything the app opened.
func (a *App) Shutdown() {
	if a.session != nil {
		a.session.Release()
		stats := a.session.Stats()
		a.logger.Info("session finished", "frames", stats.Frames, "failures", stats.Failures)
	}
	if a.window != nil {
		a.window.Close()
	}
	if a.source != nil {
		if err := a.source.Close(); err != nil {
			a.logger.Warn("close source failed", "error", err)
		}
	}
}
