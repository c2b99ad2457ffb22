package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/teslashibe/go-camera/pkg/camera"
)

const sampleSettings = `
hardware:
  camera:
    name: Front
    type: RPI_FLEX
    index: 2
    fps: 60
    capture:
      width: 1920
      height: 1080
      fourcc: MJPG
`

func clearCameraEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvCameraName, EnvCameraType, EnvCameraIndex, EnvCameraFPS} {
		t.Setenv(key, "")
	}
}

func TestStore_Lookup(t *testing.T) {
	s, err := Parse([]byte(sampleSettings))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if v, ok := s.String(KeyCameraName); !ok || v != "Front" {
		t.Errorf("name = %q, %v", v, ok)
	}
	if v, ok, err := s.Int(KeyCameraFPS); err != nil || !ok || v != 60 {
		t.Errorf("fps = %d, %v, %v", v, ok, err)
	}
	if !s.Has("/hardware/camera/index/") {
		t.Error("leading and trailing slashes should be ignored")
	}
	if s.Has("hardware/camera/missing") || s.Has("hardware/camera/name/deeper") {
		t.Error("missing keys reported present")
	}
	if _, ok := s.String("hardware/camera"); ok {
		t.Error("String on a subtree should fail")
	}
}

func TestStore_IntFromString(t *testing.T) {
	s, _ := Parse([]byte("hardware:\n  camera:\n    index: \"3\"\n    fps: abc\n"))

	if v, ok, err := s.Int(KeyCameraIndex); err != nil || !ok || v != 3 {
		t.Errorf("index = %d, %v, %v", v, ok, err)
	}
	if _, ok, err := s.Int(KeyCameraFPS); !ok || err == nil {
		t.Error("expected error for non-numeric fps")
	}
}

func TestCameraParams(t *testing.T) {
	want := map[string]string{
		"NAME":  "hardware/camera/name",
		"TYPE":  "hardware/camera/type",
		"INDEX": "hardware/camera/index",
		"FPS":   "hardware/camera/fps",
	}
	for k, v := range want {
		if CameraParams[k] != v {
			t.Errorf("CameraParams[%s] = %q, want %q", k, CameraParams[k], v)
		}
	}
}

func TestStore_CameraInfoDefaults(t *testing.T) {
	clearCameraEnv(t)

	info, err := Empty().CameraInfo()
	if err != nil {
		t.Fatalf("CameraInfo failed: %v", err)
	}
	want := camera.NewInfo("Camera", "USB", 0, 30)
	if info != want {
		t.Errorf("info = %+v, want %+v", info, want)
	}
}

func TestStore_CameraInfoFromSettings(t *testing.T) {
	clearCameraEnv(t)

	s, _ := Parse([]byte(sampleSettings))
	info, err := s.CameraInfo()
	if err != nil {
		t.Fatalf("CameraInfo failed: %v", err)
	}
	want := camera.NewInfo("Front", "RPI_FLEX", 2, 60)
	if info != want {
		t.Errorf("info = %+v, want %+v", info, want)
	}
}

func TestStore_CameraInfoEnvOverrides(t *testing.T) {
	clearCameraEnv(t)
	t.Setenv(EnvCameraType, "THERMAL")
	t.Setenv(EnvCameraFPS, "9")

	s, _ := Parse([]byte(sampleSettings))
	info, err := s.CameraInfo()
	if err != nil {
		t.Fatalf("CameraInfo failed: %v", err)
	}
	if info.Type != "THERMAL" || info.FPS != 9 || info.Name != "Front" {
		t.Errorf("info = %+v", info)
	}
}

func TestStore_CameraInfoInvalid(t *testing.T) {
	tests := []struct {
		name     string
		settings string
		env      map[string]string
	}{
		{"unknown type", "hardware:\n  camera:\n    type: webcam\n", nil},
		{"negative index", "hardware:\n  camera:\n    index: -1\n", nil},
		{"zero fps", "hardware:\n  camera:\n    fps: 0\n", nil},
		{"fractional fps", "hardware:\n  camera:\n    fps: 29.97\n", nil},
		{"bad env index", "", map[string]string{EnvCameraIndex: "first"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearCameraEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			s, err := Parse([]byte(tc.settings))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if _, err := s.CameraInfo(); !errors.Is(err, camera.ErrInvalidCameraConfig) {
				t.Errorf("err = %v, want ErrInvalidCameraConfig", err)
			}
		})
	}
}

func TestStore_CameraInfoUnknownType(t *testing.T) {
	clearCameraEnv(t)

	s, err := Parse([]byte("hardware:\n  camera:\n    type: webcam\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := s.CameraInfo(); !errors.Is(err, camera.ErrUnknownCameraType) {
		t.Errorf("CameraInfo err = %v, want ErrUnknownCameraType", err)
	}

	path := filepath.Join(t.TempDir(), "camera.yaml")
	if err := os.WriteFile(path, []byte("hardware:\n  camera:\n    type: webcam\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err = LoadCamera(path)
	if !errors.Is(err, camera.ErrUnknownCameraType) {
		t.Errorf("LoadCamera err = %v, want ErrUnknownCameraType", err)
	}
	if !errors.Is(err, camera.ErrInvalidCameraConfig) {
		t.Errorf("LoadCamera err = %v, want ErrInvalidCameraConfig", err)
	}

	t.Setenv(EnvCameraType, "webcam")
	if _, _, err := LoadCamera(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, camera.ErrUnknownCameraType) {
		t.Errorf("env override err = %v, want ErrUnknownCameraType", err)
	}
}

func TestStore_CaptureConfig(t *testing.T) {
	s, _ := Parse([]byte(sampleSettings))

	cfg, err := s.CaptureConfig(camera.TypeRPiFlex)
	if err != nil {
		t.Fatalf("CaptureConfig failed: %v", err)
	}
	if cfg.Width != 1920 || cfg.Height != 1080 || cfg.FourCC != "MJPG" {
		t.Errorf("capture = %+v", cfg)
	}
	// Fields absent from the file keep the preset's values.
	if cfg.Framerate != 30 || cfg.Quality != 80 {
		t.Errorf("preset values lost: %+v", cfg)
	}

	bad, _ := Parse([]byte("hardware:\n  camera:\n    capture:\n      width: 1\n"))
	if _, err := bad.CaptureConfig(camera.TypeUSB); !errors.Is(err, camera.ErrInvalidCameraConfig) {
		t.Errorf("err = %v, want ErrInvalidCameraConfig", err)
	}
}

func TestLoadCamera(t *testing.T) {
	clearCameraEnv(t)

	path := filepath.Join(t.TempDir(), "camera.yaml")
	if err := os.WriteFile(path, []byte(sampleSettings), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	_, info, err := LoadCamera(path)
	if err != nil {
		t.Fatalf("LoadCamera failed: %v", err)
	}
	if info.Name != "Front" {
		t.Errorf("Name = %q, want Front", info.Name)
	}

	_, info, err = LoadCamera(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if info.Name != DefaultCameraName {
		t.Errorf("Name = %q, want default", info.Name)
	}

	broken := filepath.Join(t.TempDir(), "broken.yaml")
	os.WriteFile(broken, []byte("hardware: [unterminated"), 0o644)
	if _, _, err := LoadCamera(broken); err == nil {
		t.Error("Expected parse error")
	}
}
