package camera

import "fmt"

// Type is one of the supported camera categories.
type Type int

const (
	TypeUSB     Type = iota // Standard USB camera
	TypeRPiUSB              // USB camera on a Raspberry Pi
	TypeRPiFlex             // Raspberry Pi ribbon-cable camera
	TypeThermal             // Thermal camera
	TypeDepth               // Depth-sensing camera
)

// Canonical type names as they appear in configuration.
const (
	NameUSB     = "USB"
	NameRPiUSB  = "RPI_USB"
	NameRPiFlex = "RPI_FLEX"
	NameThermal = "THERMAL"
	NameDepth   = "DEPTH"
)

var typeNames = [...]string{
	TypeUSB:     NameUSB,
	TypeRPiUSB:  NameRPiUSB,
	TypeRPiFlex: NameRPiFlex,
	TypeThermal: NameThermal,
	TypeDepth:   NameDepth,
}

// String returns the canonical name.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// Registry maps canonical type names to Types. It is read-only once built.
type Registry struct {
	byName map[string]Type
	names  []string
}

// NewRegistry builds a registry holding the five supported types.
func NewRegistry() *Registry {
	r := &Registry{
		byName: make(map[string]Type, len(typeNames)),
		names:  make([]string, 0, len(typeNames)),
	}
	for t, name := range typeNames {
		r.byName[name] = Type(t)
		r.names = append(r.names, name)
	}
	return r
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the shared process-wide registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Resolve looks up name by exact, case-sensitive match.
func (r *Registry) Resolve(name string) (Type, error) {
	t, ok := r.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCameraType, name)
	}
	return t, nil
}

// Name returns the canonical name of t.
func (r *Registry) Name(t Type) (string, bool) {
	for name, v := range r.byName {
		if v == t {
			return name, true
		}
	}
	return "", false
}

// Names returns the canonical names in declaration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
