package camera

import "github.com/teslashibe/go-camera/pkg/frame"

// Capturer is the capture side of the external vision library.
// Use this minimal interface when only frame acquisition is needed.
type Capturer interface {
	// IsOpened reports whether the device is ready to be read.
	IsOpened() bool

	// Read blocks until the next frame is available. An empty frame
	// signals that the device produced nothing.
	Read() (frame.Frame, error)
}

// Displayer renders frames under a named window.
type Displayer interface {
	// Show renders f under window and waits up to waitMillis
	// milliseconds (or until an input event) before returning.
	Show(window string, f frame.Frame, waitMillis int) error
}

// Binder is implemented by collaborators that can only serve one session.
// Bind fails with ErrCollaboratorInUse when another owner holds it.
type Binder interface {
	Bind(owner string) error
	Unbind(owner string)
}

// DisplayFunc adapts a function to the Displayer interface.
type DisplayFunc func(window string, f frame.Frame, waitMillis int) error

// Show calls fn.
func (fn DisplayFunc) Show(window string, f frame.Frame, waitMillis int) error {
	return fn(window, f, waitMillis)
}

// MultiDisplay fans a frame out to several displayers. The first error
// stops the fan-out.
type MultiDisplay []Displayer

// Show forwards f to every displayer in order.
func (m MultiDisplay) Show(window string, f frame.Frame, waitMillis int) error {
	for _, d := range m {
		if err := d.Show(window, f, waitMillis); err != nil {
			return err
		}
	}
	return nil
}
