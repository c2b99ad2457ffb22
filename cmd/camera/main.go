// camera captures frames from a local device or a remote stream, shows
// them in a window and/or the web dashboard, and logs their luminosity.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/teslashibe/go-camera/internal/log"
	"github.com/teslashibe/go-camera/pkg/app"
)

func main() {
	cfg := parseFlags()

	level := "info"
	if cfg.Debug {
		level = "debug"
	}
	log.Init(level)

	a, err := app.New(cfg)
	if err != nil {
		log.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := a.Init(ctx); err != nil {
		a.Shutdown()
		log.Error("initialization failed", "error", err)
		os.Exit(1)
	}

	err = a.Run(ctx)
	a.Shutdown()
	if err != nil {
		log.Error("capture failed", "error", err)
		os.Exit(1)
	}
}

// parseFlags parses command line flags and returns configuration.
func parseFlags() app.Config {
	cfg := app.DefaultConfig()

	flag.BoolVar(&cfg.Debug, "debug", false, "Enable verbose debug logging")
	flag.StringVar(&cfg.SettingsPath, "config", cfg.SettingsPath, "Settings file (YAML)")
	flag.StringVar(&cfg.Name, "name", "", "Camera name (overrides settings and CAMERA_NAME)")
	flag.StringVar(&cfg.Type, "type", "", "Camera type: USB, RPI_USB, RPI_FLEX, THERMAL, DEPTH")
	flag.IntVar(&cfg.Index, "index", cfg.Index, "Device index (overrides settings and CAMERA_INDEX)")
	flag.IntVar(&cfg.FPS, "fps", 0, "Frames per second (overrides settings and CAMERA_FPS)")
	flag.StringVar(&cfg.Preset, "preset", "", "Capture preset: default, vga, 720p, 1080p, thermal, depth, lowlag")
	flag.StringVar(&cfg.Remote, "remote", "", "Read frames from a ws:// stream instead of a local device")
	flag.StringVar(&cfg.WebAddr, "web", "", "Serve the dashboard on this address (e.g. :8080)")
	flag.BoolVar(&cfg.Headless, "headless", false, "Do not open a preview window")
	flag.BoolVar(&cfg.Paced, "paced", false, "Wait 1/FPS between captures")
	flag.IntVar(&cfg.MaxFrames, "max-frames", 0, "Stop after this many frames (0 = until Ctrl+C, q or ESC)")
	flag.IntVar(&cfg.LogEvery, "log-every", 0, "Log luminosity every N frames (0 = once per second)")

	flag.Parse()
	return cfg
}
