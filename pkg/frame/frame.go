// Package frame defines the decoded pixel buffer exchanged between capture
// collaborators and the camera core.
//
// A Frame is row-major with interleaved 8-bit samples. Color frames use
// OpenCV's BGR (or BGRA) channel order so buffers coming out of gocv can be
// wrapped without reordering.
package frame

import (
	"fmt"
	"image"
	"image/color"
)

// Frame is one decoded image.
type Frame struct {
	Rows     int    // Height in pixels
	Cols     int    // Width in pixels
	Channels int    // 1 (gray), 3 (BGR) or 4 (BGRA)
	Data     []byte // Rows*Cols*Channels samples
}

// New allocates a zeroed frame.
func New(rows, cols, channels int) Frame {
	return Frame{
		Rows:     rows,
		Cols:     cols,
		Channels: channels,
		Data:     make([]byte, rows*cols*channels),
	}
}

// Empty reports whether the frame has no pixels.
func (f Frame) Empty() bool {
	return f.Rows <= 0 || f.Cols <= 0
}

// Pixels returns Rows*Cols, or 0 for an empty frame.
func (f Frame) Pixels() int {
	if f.Empty() {
		return 0
	}
	return f.Rows * f.Cols
}

// Check verifies the buffer is large enough for the declared geometry.
func (f Frame) Check() error {
	if f.Channels < 1 {
		return fmt.Errorf("frame: invalid channel count %d", f.Channels)
	}
	if need := f.Pixels() * f.Channels; len(f.Data) < need {
		return fmt.Errorf("frame: buffer holds %d bytes, %dx%dx%d needs %d",
			len(f.Data), f.Rows, f.Cols, f.Channels, need)
	}
	return nil
}

// Clone returns a deep copy.
func (f Frame) Clone() Frame {
	out := f
	out.Data = make([]byte, len(f.Data))
	copy(out.Data, f.Data)
	return out
}

// Fill sets every pixel to the given per-channel values.
// Missing values repeat the last one given.
func (f Frame) Fill(values ...byte) {
	if len(values) == 0 || f.Channels < 1 {
		return
	}
	px := make([]byte, f.Channels)
	for c := range px {
		if c < len(values) {
			px[c] = values[c]
		} else {
			px[c] = values[len(values)-1]
		}
	}
	for i := 0; i+f.Channels <= len(f.Data); i += f.Channels {
		copy(f.Data[i:i+f.Channels], px)
	}
}

// FromImage converts any image into a BGR frame (or a gray frame for
// *image.Gray sources).
func FromImage(img image.Image) Frame {
	b := img.Bounds()

	if g, ok := img.(*image.Gray); ok {
		f := New(b.Dy(), b.Dx(), 1)
		for y := 0; y < f.Rows; y++ {
			copy(f.Data[y*f.Cols:(y+1)*f.Cols], g.Pix[g.PixOffset(b.Min.X, b.Min.Y+y):])
		}
		return f
	}

	f := New(b.Dy(), b.Dx(), 3)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			f.Data[i] = c.B
			f.Data[i+1] = c.G
			f.Data[i+2] = c.R
			i += 3
		}
	}
	return f
}

// ToImage converts the frame into an image.Image without touching the
// frame's own buffer.
func (f Frame) ToImage() (image.Image, error) {
	if f.Empty() {
		return nil, fmt.Errorf("frame: empty")
	}
	if err := f.Check(); err != nil {
		return nil, err
	}

	if f.Channels == 1 {
		g := image.NewGray(image.Rect(0, 0, f.Cols, f.Rows))
		copy(g.Pix, f.Data[:f.Pixels()])
		return g, nil
	}
	if f.Channels < 3 {
		return nil, fmt.Errorf("frame: cannot convert %d-channel frame", f.Channels)
	}

	img := image.NewNRGBA(image.Rect(0, 0, f.Cols, f.Rows))
	src, dst := 0, 0
	for p := 0; p < f.Pixels(); p++ {
		img.Pix[dst] = f.Data[src+2]
		img.Pix[dst+1] = f.Data[src+1]
		img.Pix[dst+2] = f.Data[src]
		img.Pix[dst+3] = 0xff
		if f.Channels == 4 {
			img.Pix[dst+3] = f.Data[src+3]
		}
		src += f.Channels
		dst += 4
	}
	return img, nil
}
