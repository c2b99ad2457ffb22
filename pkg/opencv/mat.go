// Package opencv implements the camera collaborators on top of OpenCV via
// GoCV: a VideoCapture-backed Device and a HighGUI window Display.
package opencv

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-camera/pkg/frame"
)

// FromMat copies m into a Frame. 8-bit 1/3/4-channel mats are copied as-is;
// 16-bit single-channel mats (thermal and depth sensors) are scaled down to
// 8 bits.
func FromMat(m gocv.Mat) (frame.Frame, error) {
	if m.Empty() {
		return frame.Frame{}, nil
	}

	switch m.Type() {
	case gocv.MatTypeCV8UC1, gocv.MatTypeCV8UC3, gocv.MatTypeCV8UC4:
		return frame.Frame{
			Rows:     m.Rows(),
			Cols:     m.Cols(),
			Channels: m.Channels(),
			Data:     m.ToBytes(),
		}, nil

	case gocv.MatTypeCV16UC1:
		scaled := gocv.NewMat()
		defer scaled.Close()
		m.ConvertToWithParams(&scaled, gocv.MatTypeCV8UC1, 1.0/256.0, 0)
		return FromMat(scaled)

	default:
		return frame.Frame{}, fmt.Errorf("opencv: unsupported mat type %v", m.Type())
	}
}

// ToMat copies f into a new Mat. The caller must Close it.
func ToMat(f frame.Frame) (gocv.Mat, error) {
	if f.Empty() {
		return gocv.NewMat(), fmt.Errorf("opencv: empty frame")
	}
	if err := f.Check(); err != nil {
		return gocv.NewMat(), err
	}

	var mt gocv.MatType
	switch f.Channels {
	case 1:
		mt = gocv.MatTypeCV8UC1
	case 3:
		mt = gocv.MatTypeCV8UC3
	case 4:
		mt = gocv.MatTypeCV8UC4
	default:
		return gocv.NewMat(), fmt.Errorf("opencv: unsupported channel count %d", f.Channels)
	}

	return gocv.NewMatFromBytes(f.Rows, f.Cols, mt, f.Data[:f.Pixels()*f.Channels])
}
