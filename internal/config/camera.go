package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/teslashibe/go-camera/pkg/camera"
)

// Settings keys for the camera identity.
const (
	KeyCameraName    = "hardware/camera/name"
	KeyCameraType    = "hardware/camera/type"
	KeyCameraIndex   = "hardware/camera/index"
	KeyCameraFPS     = "hardware/camera/fps"
	KeyCameraCapture = "hardware/camera/capture"
)

// CameraParams maps logical field names to their settings keys.
var CameraParams = map[string]string{
	"NAME":  KeyCameraName,
	"TYPE":  KeyCameraType,
	"INDEX": KeyCameraIndex,
	"FPS":   KeyCameraFPS,
}

// Default camera identity, used when neither settings nor env provide one.
const (
	DefaultCameraName  = "Camera"
	DefaultCameraType  = camera.NameUSB
	DefaultCameraIndex = 0
	DefaultCameraFPS   = 30
)

// Environment variables that override the settings file.
const (
	EnvCameraName  = "CAMERA_NAME"
	EnvCameraType  = "CAMERA_TYPE"
	EnvCameraIndex = "CAMERA_INDEX"
	EnvCameraFPS   = "CAMERA_FPS"
)

// CameraInfo builds the camera identity from the store and the environment
// and validates it. Env wins over the store, the store over defaults.
func (s *Store) CameraInfo() (camera.Info, error) {
	info := camera.NewInfo(DefaultCameraName, DefaultCameraType, DefaultCameraIndex, DefaultCameraFPS)

	if v, ok := s.String(KeyCameraName); ok {
		info.Name = v
	}
	if v, ok := s.String(KeyCameraType); ok {
		info.Type = v
	}
	if v, ok, err := s.Int(KeyCameraIndex); err != nil {
		return camera.Info{}, &camera.ConfigError{Field: "index", Message: err.Error()}
	} else if ok {
		info.Index = v
	}
	if v, ok, err := s.Int(KeyCameraFPS); err != nil {
		return camera.Info{}, &camera.ConfigError{Field: "fps", Message: err.Error()}
	} else if ok {
		info.FPS = v
	}

	info.Name = getEnvOrDefault(EnvCameraName, info.Name)
	info.Type = getEnvOrDefault(EnvCameraType, info.Type)
	var err error
	if info.Index, err = getEnvAsIntOrDefault(EnvCameraIndex, info.Index); err != nil {
		return camera.Info{}, &camera.ConfigError{Field: "index", Message: err.Error()}
	}
	if info.FPS, err = getEnvAsIntOrDefault(EnvCameraFPS, info.FPS); err != nil {
		return camera.Info{}, &camera.ConfigError{Field: "fps", Message: err.Error()}
	}

	if err := info.Validate(); err != nil {
		return camera.Info{}, err
	}
	return info, nil
}

// CaptureConfig returns the capture settings: the preset for the camera
// type, overlaid with hardware/camera/capture from the store.
func (s *Store) CaptureConfig(t camera.Type) (camera.Config, error) {
	cfg := camera.PresetFor(t)
	if err := s.Decode(KeyCameraCapture, &cfg); err != nil {
		return camera.Config{}, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return camera.Config{}, fmt.Errorf("%w: %v", camera.ErrInvalidCameraConfig, errs)
	}
	return cfg, nil
}

// LoadCamera reads path (if it exists) and returns the validated identity.
// A missing file falls back to defaults and env.
func LoadCamera(path string) (*Store, camera.Info, error) {
	store := Empty()
	if path != "" {
		loaded, err := Load(path)
		switch {
		case err == nil:
			store = loaded
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, camera.Info{}, err
		}
	}

	info, err := store.CameraInfo()
	if err != nil {
		return nil, camera.Info{}, err
	}
	return store, info, nil
}

// getEnvOrDefault returns the env value, or def when unset.
func getEnvOrDefault(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}

// getEnvAsIntOrDefault parses the env value as an int, or returns def when
// unset.
func getEnvAsIntOrDefault(key string, def int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return def, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return def, fmt.Errorf("%s=%q: %w", key, value, err)
	}
	return i, nil
}
