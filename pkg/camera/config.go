// Package camera holds the camera session core: camera types and their
// registry, camera identity (Info), the capture session that drives an
// external capture/display collaborator, and runtime-tunable capture
// settings.
package camera

import "fmt"

// Config holds capture settings applied to the device.
// These can be modified via the dashboard API at runtime.
type Config struct {
	// === Resolution ===
	Width     int `json:"width" yaml:"width"`         // Frame width in pixels
	Height    int `json:"height" yaml:"height"`       // Frame height in pixels
	Framerate int `json:"framerate" yaml:"framerate"` // Target FPS
	Quality   int `json:"quality" yaml:"quality"`     // Preview JPEG quality 1-100

	// FourCC is the requested pixel format (e.g. "MJPG", "YUYV").
	// Empty leaves the driver default.
	FourCC string `json:"fourcc" yaml:"fourcc"`

	// === Image controls ===
	// Brightness adjustment (-1.0 to +1.0). 0 leaves the driver default.
	Brightness float64 `json:"brightness" yaml:"brightness"`

	// Gain is manual sensor gain (1.0 to 16.0). 0 for auto.
	Gain float64 `json:"gain" yaml:"gain"`

	// ExposureTime is manual exposure in microseconds (100 to 120000).
	// 0 for auto exposure.
	ExposureTime int `json:"exposure_time" yaml:"exposure_time"`

	// BufferSize is the number of frames the driver queues. Small values
	// keep latency low.
	BufferSize int `json:"buffer_size" yaml:"buffer_size"`

	// PreviewWidth is the width previews are scaled to before encoding,
	// up or down, keeping the aspect ratio. 0 keeps the captured width.
	PreviewWidth int `json:"preview_width" yaml:"preview_width"`
}

// Capture limits
const (
	MaxWidth        = 4608
	MaxHeight       = 2592
	MaxFramerate    = 120
	MaxGain         = 16.0
	MaxExposureTime = 120000 // microseconds
	MaxBufferSize   = 16
)

// DefaultConfig returns a VGA configuration every supported type can serve.
func DefaultConfig() Config {
	return Config{
		Width:     640,
		Height:    480,
		Framerate: 30,
		Quality:   80,

		Brightness:   0.0,
		Gain:         0, // Auto
		ExposureTime: 0, // Auto

		BufferSize:   1,
		PreviewWidth: 640,
	}
}

var validFourCC = map[string]bool{"": true, "MJPG": true, "YUYV": true, "H264": true, "GREY": true, "Y16 ": true}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.Width < 80 || c.Width > MaxWidth {
		errors = append(errors, fmt.Sprintf("width must be between 80 and %d", MaxWidth))
	}
	if c.Height < 60 || c.Height > MaxHeight {
		errors = append(errors, fmt.Sprintf("height must be between 60 and %d", MaxHeight))
	}
	if c.Framerate < 1 || c.Framerate > MaxFramerate {
		errors = append(errors, fmt.Sprintf("framerate must be between 1 and %d", MaxFramerate))
	}
	if c.Quality < 1 || c.Quality > 100 {
		errors = append(errors, "quality must be between 1 and 100")
	}

	if !validFourCC[c.FourCC] {
		errors = append(errors, "fourcc must be MJPG, YUYV, H264, GREY or \"Y16 \"")
	}

	if c.Brightness < -1.0 || c.Brightness > 1.0 {
		errors = append(errors, "brightness must be between -1.0 and 1.0")
	}
	if c.Gain != 0 && (c.Gain < 1.0 || c.Gain > MaxGain) {
		errors = append(errors, "gain must be 0 (auto) or between 1.0 and 16.0")
	}
	if c.ExposureTime != 0 && (c.ExposureTime < 100 || c.ExposureTime > MaxExposureTime) {
		errors = append(errors, "exposure_time must be 0 (auto) or between 100 and 120000")
	}

	if c.BufferSize < 0 || c.BufferSize > MaxBufferSize {
		errors = append(errors, fmt.Sprintf("buffer_size must be between 0 and %d", MaxBufferSize))
	}
	if c.PreviewWidth < 0 || c.PreviewWidth > MaxWidth {
		errors = append(errors, fmt.Sprintf("preview_width must be between 0 and %d", MaxWidth))
	}

	return errors
}

// Capabilities returns the capture limits for the dashboard.
func Capabilities() map[string]interface{} {
	return map[string]interface{}{
		"types":           DefaultRegistry().Names(),
		"max_width":       MaxWidth,
		"max_height":      MaxHeight,
		"max_framerate":   MaxFramerate,
		"max_gain":        MaxGain,
		"max_exposure_us": MaxExposureTime,
		"max_buffer_size": MaxBufferSize,
		"fourcc":          []string{"MJPG", "YUYV", "H264", "GREY", "Y16 "},
		"presets":         PresetNames(),
	}
}
