package camera

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrUnknownCameraType is returned when a type name is not registered.
	ErrUnknownCameraType = errors.New("camera: unknown camera type")

	// ErrCameraUnavailable is returned when capturing from a collaborator
	// that is not open.
	ErrCameraUnavailable = errors.New("camera: camera unavailable")

	// ErrEmptyFrameCaptured is returned when a read produces a zero-size frame.
	ErrEmptyFrameCaptured = errors.New("camera: empty frame captured")

	// ErrInvalidCameraConfig is returned by Info.Validate and Config checks.
	ErrInvalidCameraConfig = errors.New("camera: invalid camera config")

	// ErrNoDisplay is returned by Display when the session has no displayer.
	ErrNoDisplay = errors.New("camera: no display attached")

	// ErrSessionBusy is returned when Capture is called while another
	// Capture on the same session is still running.
	ErrSessionBusy = errors.New("camera: session busy")

	// ErrCollaboratorInUse is returned when a capture collaborator is
	// already bound to another session.
	ErrCollaboratorInUse = errors.New("camera: collaborator already bound to a session")

	// ErrStop can be returned from a FrameFunc to end Run without an error.
	ErrStop = errors.New("camera: stop")
)

// ConfigError describes which field failed validation. Err, when set,
// is the underlying cause such as ErrUnknownCameraType.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("camera: invalid %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidCameraConfig and the cause.
func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidCameraConfig}
	}
	return []error{ErrInvalidCameraConfig, e.Err}
}
