package opencv

import (
	"fmt"
	"log/slog"
	"sync"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-camera/internal/log"
	"github.com/teslashibe/go-camera/pkg/camera"
	"github.com/teslashibe/go-camera/pkg/frame"
)

// Device is a camera opened through cv::VideoCapture.
// The caller opens it, hands it to one camera.Session and closes it when
// done; the session never does either.
type Device struct {
	index   int
	capture *gocv.VideoCapture
	mat     gocv.Mat
	mu      sync.Mutex // Protects capture and mat

	owner   string
	ownerMu sync.Mutex

	logger *slog.Logger
}

// Open opens the device at index and applies cfg.
func Open(index int, cfg camera.Config) (*Device, error) {
	capture, err := gocv.OpenVideoCapture(index)
	if err != nil {
		return nil, fmt.Errorf("open camera index %d: %w", index, err)
	}

	d := &Device{
		index:   index,
		capture: capture,
		mat:     gocv.NewMat(),
		logger:  log.Component("opencv").With("index", index),
	}
	if err := d.Apply(cfg); err != nil {
		d.Close()
		return nil, err
	}

	d.logger.Info("camera opened",
		"width", capture.Get(gocv.VideoCaptureFrameWidth),
		"height", capture.Get(gocv.VideoCaptureFrameHeight),
		"fps", capture.Get(gocv.VideoCaptureFPS),
		"backend", capture.Get(gocv.VideoCaptureBackend))
	return d, nil
}

// Apply pushes capture settings to the driver. Drivers silently ignore
// properties they do not support.
func (d *Device) Apply(cfg camera.Config) error {
	if errs := cfg.Validate(); len(errs) > 0 {
		return fmt.Errorf("%w: %v", camera.ErrInvalidCameraConfig, errs)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.capture == nil {
		return camera.ErrCameraUnavailable
	}

	// FOURCC must be set before the resolution on V4L2.
	if cfg.FourCC != "" {
		d.capture.Set(gocv.VideoCaptureFOURCC, d.capture.ToCodec(cfg.FourCC))
	}
	d.capture.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	d.capture.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	d.capture.Set(gocv.VideoCaptureFPS, float64(cfg.Framerate))

	if cfg.BufferSize > 0 {
		d.capture.Set(gocv.VideoCaptureBufferSize, float64(cfg.BufferSize))
	}
	if cfg.Brightness != 0 {
		d.capture.Set(gocv.VideoCaptureBrightness, cfg.Brightness)
	}
	if cfg.Gain != 0 {
		d.capture.Set(gocv.VideoCaptureGain, cfg.Gain)
	}
	if cfg.ExposureTime != 0 {
		d.capture.Set(gocv.VideoCaptureExposure, float64(cfg.ExposureTime))
	}

	d.logger.Debug("capture settings applied",
		"width", cfg.Width, "height", cfg.Height, "fps", cfg.Framerate, "fourcc", cfg.FourCC)
	return nil
}

// Index returns the device index.
func (d *Device) Index() int {
	return d.index
}

// IsOpened reports whether the underlying VideoCapture is open.
func (d *Device) IsOpened() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.capture != nil && d.capture.IsOpened()
}

// Read grabs and decodes the next frame. A failed grab yields an empty
// frame, which the session reports as an empty capture.
func (d *Device) Read() (frame.Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.capture == nil {
		return frame.Frame{}, camera.ErrCameraUnavailable
	}
	if ok := d.capture.Read(&d.mat); !ok {
		return frame.Frame{}, nil
	}
	return FromMat(d.mat)
}

// Bind claims the device for one session.
func (d *Device) Bind(owner string) error {
	d.ownerMu.Lock()
	defer d.ownerMu.Unlock()

	if d.owner != "" && d.owner != owner {
		return fmt.Errorf("%w: index %d", camera.ErrCollaboratorInUse, d.index)
	}
	d.owner = owner
	return nil
}

// Unbind releases the claim held by owner.
func (d *Device) Unbind(owner string) {
	d.ownerMu.Lock()
	defer d.ownerMu.Unlock()

	if d.owner == owner {
		d.owner = ""
	}
}

// Close releases the VideoCapture. Safe to call more than once.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.capture == nil {
		return nil
	}

	err := d.capture.Close()
	d.capture = nil
	d.mat.Close()
	d.logger.Info("camera closed")
	return err
}
