package opencv

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-camera/pkg/camera"
	"github.com/teslashibe/go-camera/pkg/frame"
	"github.com/teslashibe/go-camera/pkg/luminosity"
)

func TestToMatFromMat_RoundTrip(t *testing.T) {
	for _, channels := range []int{1, 3, 4} {
		f := frame.New(4, 6, channels)
		for i := range f.Data {
			f.Data[i] = byte(i)
		}

		mat, err := ToMat(f)
		if err != nil {
			t.Fatalf("ToMat(%d channels) failed: %v", channels, err)
		}

		back, err := FromMat(mat)
		mat.Close()
		if err != nil {
			t.Fatalf("FromMat failed: %v", err)
		}

		if back.Rows != 4 || back.Cols != 6 || back.Channels != channels {
			t.Fatalf("geometry = %dx%dx%d", back.Rows, back.Cols, back.Channels)
		}
		for i := range f.Data {
			if back.Data[i] != f.Data[i] {
				t.Fatalf("%d channels: Data[%d] = %d, want %d", channels, i, back.Data[i], f.Data[i])
			}
		}
	}
}

func TestFromMat_Empty(t *testing.T) {
	mat := gocv.NewMat()
	defer mat.Close()

	f, err := FromMat(mat)
	if err != nil {
		t.Fatalf("FromMat failed: %v", err)
	}
	if !f.Empty() {
		t.Error("empty Mat should give an empty frame")
	}
}

func TestFromMat_16BitScaledTo8Bit(t *testing.T) {
	mat := gocv.NewMatWithSize(2, 2, gocv.MatTypeCV16UC1)
	defer mat.Close()
	mat.SetTo(gocv.NewScalar(65535, 0, 0, 0))

	f, err := FromMat(mat)
	if err != nil {
		t.Fatalf("FromMat failed: %v", err)
	}
	if f.Channels != 1 {
		t.Fatalf("Channels = %d, want 1", f.Channels)
	}

	lum, err := luminosity.Compute(f)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if lum != 1.0 {
		t.Errorf("saturated 16-bit frame luminosity = %v, want 1", lum)
	}
}

func TestToMat_Errors(t *testing.T) {
	if m, err := ToMat(frame.Frame{}); err == nil {
		t.Error("Expected error for empty frame")
	} else {
		m.Close()
	}

	if m, err := ToMat(frame.New(2, 2, 2)); err == nil {
		t.Error("Expected error for 2-channel frame")
	} else {
		m.Close()
	}
}

func TestOpen_MissingDevice(t *testing.T) {
	_, err := Open(-42, camera.DefaultConfig())
	if err == nil {
		t.Skip("a capture device answered at index -42")
	}
}

func TestDevice_ClosedIsUnavailable(t *testing.T) {
	d := &Device{index: 3}

	if d.IsOpened() {
		t.Error("device without capture should not be open")
	}
	if _, err := d.Read(); !errors.Is(err, camera.ErrCameraUnavailable) {
		t.Errorf("Read err = %v, want ErrCameraUnavailable", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close on closed device: %v", err)
	}
}

func TestDevice_Bind(t *testing.T) {
	d := &Device{index: 0}

	if err := d.Bind("a"); err != nil {
		t.Fatalf("first Bind failed: %v", err)
	}
	if err := d.Bind("a"); err != nil {
		t.Errorf("re-Bind by same owner failed: %v", err)
	}
	if err := d.Bind("b"); !errors.Is(err, camera.ErrCollaboratorInUse) {
		t.Errorf("Bind by other owner err = %v, want ErrCollaboratorInUse", err)
	}

	d.Unbind("b") // not the owner, no effect
	if err := d.Bind("b"); err == nil {
		t.Error("Unbind by non-owner released the device")
	}

	d.Unbind("a")
	if err := d.Bind("b"); err != nil {
		t.Errorf("Bind after Unbind failed: %v", err)
	}
}

func TestDevice_SessionRefusesSharedDevice(t *testing.T) {
	d := &Device{index: 0}

	first, err := camera.NewSession(camera.NewInfo("A", "USB", 0, 30), d)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	defer first.Release()

	if _, err := camera.NewSession(camera.NewInfo("B", "USB", 0, 30), d); !errors.Is(err, camera.ErrCollaboratorInUse) {
		t.Errorf("err = %v, want ErrCollaboratorInUse", err)
	}

	if _, err := first.Capture(); !errors.Is(err, camera.ErrCameraUnavailable) {
		t.Errorf("Capture err = %v, want ErrCameraUnavailable", err)
	}
}

func TestDisplay_QuitRequested(t *testing.T) {
	d := NewDisplay()
	if d.QuitRequested() {
		t.Error("fresh display should not request quit")
	}

	d.lastKey = KeyQuit
	if !d.QuitRequested() {
		t.Error("'q' should request quit")
	}
	d.lastKey = KeyEscape
	if !d.QuitRequested() {
		t.Error("ESC should request quit")
	}
}
