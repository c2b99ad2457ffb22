package opencv

import (
	"sync"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-camera/pkg/frame"
)

// Key codes returned by WaitKey that the capture loop reacts to.
const (
	KeyNone   = -1
	KeyEscape = 27
	KeyQuit   = 'q'
)

// Display shows frames in HighGUI windows, one window per name.
// HighGUI must be driven from a single goroutine.
type Display struct {
	mu      sync.Mutex
	windows map[string]*gocv.Window
	lastKey int
}

// NewDisplay creates an empty display.
func NewDisplay() *Display {
	return &Display{
		windows: make(map[string]*gocv.Window),
		lastKey: KeyNone,
	}
}

// Show renders f in the named window and waits up to waitMillis for a key.
func (d *Display) Show(window string, f frame.Frame, waitMillis int) error {
	mat, err := ToMat(f)
	if err != nil {
		return err
	}
	defer mat.Close()

	d.mu.Lock()
	defer d.mu.Unlock()

	w, ok := d.windows[window]
	if !ok {
		w = gocv.NewWindow(window)
		d.windows[window] = w
	}

	w.IMShow(mat)
	d.lastKey = w.WaitKey(waitMillis)
	return nil
}

// LastKey returns the key pressed during the last Show, or KeyNone.
func (d *Display) LastKey() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastKey
}

// QuitRequested reports whether the last key was 'q' or ESC.
func (d *Display) QuitRequested() bool {
	k := d.LastKey()
	return k == KeyQuit || k == KeyEscape
}

// Close destroys every window.
func (d *Display) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for name, w := range d.windows {
		w.Close()
		delete(d.windows, name)
	}
	return nil
}
