// Package luminosity computes the normalized average brightness of a frame.
package luminosity

import (
	"errors"
	"fmt"

	"github.com/teslashibe/go-camera/pkg/frame"
)

var (
	// ErrEmptyFrame is returned for frames with no rows or no columns.
	ErrEmptyFrame = errors.New("luminosity: empty frame")

	// ErrUnsupportedFrame is returned for 2-channel frames or short buffers.
	ErrUnsupportedFrame = errors.New("luminosity: unsupported frame")
)

// MaxIntensity is the largest 8-bit sample value.
const MaxIntensity = 255.0

// BGR->gray weights in 14-bit fixed point, the same table OpenCV's
// cvtColor(COLOR_BGR2GRAY) uses for 8-bit images.
const (
	grayShift = 14
	weightR   = 4899 // 0.299
	weightG   = 9617 // 0.587
	weightB   = 1868 // 0.114
	grayRound = 1 << (grayShift - 1)
)

// Compute returns the mean gray intensity of f normalized to [0,1].
// Color frames are converted to gray on a scratch buffer first; f is never
// modified.
func Compute(f frame.Frame) (float64, error) {
	if f.Empty() {
		return 0, ErrEmptyFrame
	}

	gray, err := Grayscale(f)
	if err != nil {
		return 0, err
	}

	return Mean(gray) / MaxIntensity, nil
}

// Grayscale returns a single-channel copy of f. Gray input is returned
// as-is (the buffer is shared but never written).
func Grayscale(f frame.Frame) (frame.Frame, error) {
	if f.Empty() {
		return frame.Frame{}, ErrEmptyFrame
	}
	if err := f.Check(); err != nil {
		return frame.Frame{}, fmt.Errorf("%w: %v", ErrUnsupportedFrame, err)
	}

	switch {
	case f.Channels == 1:
		return f, nil
	case f.Channels == 2:
		return frame.Frame{}, fmt.Errorf("%w: 2-channel frame", ErrUnsupportedFrame)
	}

	gray := frame.New(f.Rows, f.Cols, 1)
	src := 0
	for i := range gray.Data {
		b := uint32(f.Data[src])
		g := uint32(f.Data[src+1])
		r := uint32(f.Data[src+2])
		gray.Data[i] = byte((b*weightB + g*weightG + r*weightR + grayRound) >> grayShift)
		src += f.Channels
	}
	return gray, nil
}

// Mean returns the arithmetic mean of a single-channel frame, or 0 when the
// frame is empty.
func Mean(gray frame.Frame) float64 {
	n := gray.Pixels()
	if n == 0 {
		return 0
	}

	var sum uint64
	for _, v := range gray.Data[:n] {
		sum += uint64(v)
	}
	return float64(sum) / float64(n)
}
