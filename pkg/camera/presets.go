package camera

// Preset names for common configurations
const (
	PresetDefault = "default"
	PresetVGA     = "vga"
	Preset720p    = "720p"
	Preset1080p   = "1080p"
	PresetThermal = "thermal"
	PresetDepth   = "depth"
	PresetLowLag  = "lowlag"
)

// Presets returns all available preset configurations.
func Presets() map[string]Config {
	return map[string]Config{
		PresetDefault: DefaultConfig(),
		PresetVGA:     VGAConfig(),
		Preset720p:    HD720Config(),
		Preset1080p:   HD1080Config(),
		PresetThermal: ThermalConfig(),
		PresetDepth:   DepthConfig(),
		PresetLowLag:  LowLagConfig(),
	}
}

// PresetNames returns the list of available preset names.
func PresetNames() []string {
	return []string{
		PresetDefault,
		PresetVGA,
		Preset720p,
		Preset1080p,
		PresetThermal,
		PresetDepth,
		PresetLowLag,
	}
}

// GetPreset returns a preset config by name, or nil if not found.
func GetPreset(name string) *Config {
	if cfg, ok := Presets()[name]; ok {
		return &cfg
	}
	return nil
}

// PresetFor returns the starting configuration for a camera type.
func PresetFor(t Type) Config {
	switch t {
	case TypeThermal:
		return ThermalConfig()
	case TypeDepth:
		return DepthConfig()
	case TypeRPiFlex:
		return HD720Config()
	default:
		return DefaultConfig()
	}
}

// VGAConfig returns 640x480 with an MJPG stream, which most USB
// cameras deliver at full rate.
func VGAConfig() Config {
	cfg := DefaultConfig()
	cfg.FourCC = "MJPG"
	return cfg
}

// HD720Config returns 720p HD configuration.
func HD720Config() Config {
	cfg := DefaultConfig()
	cfg.Width = 1280
	cfg.Height = 720
	cfg.FourCC = "MJPG"
	return cfg
}

// HD1080Config returns 1080p Full HD configuration.
// Previews are still scaled down to keep websocket frames small.
func HD1080Config() Config {
	cfg := DefaultConfig()
	cfg.Width = 1920
	cfg.Height = 1080
	cfg.FourCC = "MJPG"
	return cfg
}

// ThermalConfig returns settings for small radiometric sensors
// (160x120 at 9 fps, previews upscaled to 480 wide).
func ThermalConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 160
	cfg.Height = 120
	cfg.Framerate = 9
	cfg.PreviewWidth = 480
	return cfg
}

// DepthConfig returns settings for the color stream of a depth camera.
func DepthConfig() Config {
	cfg := DefaultConfig()
	cfg.Framerate = 15
	return cfg
}

// LowLagConfig trades resolution for latency.
func LowLagConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 320
	cfg.Height = 240
	cfg.Framerate = 60
	cfg.BufferSize = 1
	cfg.PreviewWidth = 320
	cfg.Quality = 60
	return cfg
}
