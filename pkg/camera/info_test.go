package camera

import (
	"errors"
	"testing"
)

func TestInfo_DescribeExactFormat(t *testing.T) {
	info := NewInfo("Cam1", "USB", 0, 30)

	want := "DUMPING CAMERA INFO\n" +
		"  Name: Cam1\n" +
		"  Type: USB\n" +
		"  Index: 0\n" +
		"  FPS: 30"

	if got := info.Describe(); got != want {
		t.Errorf("Describe() =\n%s\nwant\n%s", got, want)
	}
}

func TestInfo_DescribeRoundTrip(t *testing.T) {
	infos := []Info{
		NewInfo("Cam1", "USB", 0, 30),
		NewInfo("Front Camera", "RPI_FLEX", 2, 60),
		NewInfo("flir", "THERMAL", 11, 9),
		NewInfo("d435", "DEPTH", 4, 15),
		NewInfo("", "", -1, 0),
		NewInfo("colon: inside", "RPI_USB", 1, 120),
	}

	for _, want := range infos {
		t.Run(want.Name, func(t *testing.T) {
			got, err := ParseDescription(want.Describe())
			if err != nil {
				t.Fatalf("ParseDescription failed: %v", err)
			}
			if got != want {
				t.Errorf("round trip = %+v, want %+v", got, want)
			}
		})
	}
}

func TestInfo_DescribeRoundTripValidNames(t *testing.T) {
	// Any Info that passes Validate must survive the line-oriented dump.
	names := []string{"Cam1", "Cam\r", "Cam\nX", "tab\tname", "  padded  ", "caméra"}
	for _, name := range names {
		info := NewInfo(name, "USB", 0, 30)
		if info.Validate() != nil {
			continue
		}
		got, err := ParseDescription(info.Describe())
		if err != nil {
			t.Errorf("%q: ParseDescription failed: %v", name, err)
			continue
		}
		if got != info {
			t.Errorf("%q: round trip = %+v, want %+v", name, got, info)
		}
	}

	for _, name := range []string{"Cam\r", "Cam\nX"} {
		if err := NewInfo(name, "USB", 0, 30).Validate(); !errors.Is(err, ErrInvalidCameraConfig) {
			t.Errorf("Validate(%q) = %v, want ErrInvalidCameraConfig", name, err)
		}
	}
}

func TestParseDescription_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"wrong header", "CAMERA INFO\n  Name: a\n  Type: USB\n  Index: 0\n  FPS: 1"},
		{"truncated", "DUMPING CAMERA INFO\n  Name: a\n  Type: USB"},
		{"bad indent", "DUMPING CAMERA INFO\nName: a\n  Type: USB\n  Index: 0\n  FPS: 1"},
		{"bad index", "DUMPING CAMERA INFO\n  Name: a\n  Type: USB\n  Index: x\n  FPS: 1"},
		{"bad fps", "DUMPING CAMERA INFO\n  Name: a\n  Type: USB\n  Index: 0\n  FPS: fast"},
		{"trailing", "DUMPING CAMERA INFO\n  Name: a\n  Type: USB\n  Index: 0\n  FPS: 1\nextra"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseDescription(tc.in); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestNewInfo_AcceptsAnyValues(t *testing.T) {
	info := NewInfo("x", "NOPE", -5, -1)
	if info.Index != -5 || info.FPS != -1 || info.Type != "NOPE" {
		t.Errorf("NewInfo altered values: %+v", info)
	}
}

func TestInfo_Validate(t *testing.T) {
	tests := []struct {
		name  string
		info  Info
		field string
	}{
		{"valid", NewInfo("Cam1", "USB", 0, 30), ""},
		{"empty name", NewInfo(" ", "USB", 0, 30), "name"},
		{"carriage return in name", NewInfo("Cam\r", "USB", 0, 30), "name"},
		{"newline in name", NewInfo("Cam\nX", "USB", 0, 30), "name"},
		{"unknown type", NewInfo("Cam1", "usb", 0, 30), "type"},
		{"negative index", NewInfo("Cam1", "USB", -1, 30), "index"},
		{"zero fps", NewInfo("Cam1", "USB", 0, 0), "fps"},
		{"negative fps", NewInfo("Cam1", "DEPTH", 0, -30), "fps"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.info.Validate()
			if tc.field == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, ErrInvalidCameraConfig) {
				t.Fatalf("err = %v, want ErrInvalidCameraConfig", err)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("err %T is not *ConfigError", err)
			}
			if cfgErr.Field != tc.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tc.field)
			}
		})
	}
}

func TestInfo_ValidateUnknownTypeCause(t *testing.T) {
	err := NewInfo("Cam1", "webcam", 0, 30).Validate()
	if !errors.Is(err, ErrInvalidCameraConfig) {
		t.Errorf("err = %v, want ErrInvalidCameraConfig", err)
	}
	if !errors.Is(err, ErrUnknownCameraType) {
		t.Errorf("err = %v, want ErrUnknownCameraType", err)
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "type" {
		t.Fatalf("err = %v, want *ConfigError on type", err)
	}
	if cfgErr.Err == nil {
		t.Error("ConfigError.Err should hold the resolve error")
	}
}

func TestInfo_Resolve(t *testing.T) {
	typ, err := NewInfo("Cam1", "THERMAL", 0, 9).Resolve(DefaultRegistry())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if typ != TypeThermal {
		t.Errorf("Resolve = %v, want THERMAL", typ)
	}
}
