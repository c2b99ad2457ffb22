package camera

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// DescribeHeader is the first line of Info.Describe output.
const DescribeHeader = "DUMPING CAMERA INFO"

// Info identifies a camera and its capture rate.
type Info struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	Index int    `json:"index" yaml:"index"`
	FPS   int    `json:"fps" yaml:"fps"`
}

// NewInfo builds an Info from raw values. Nothing is validated here; call
// Validate when strict checking is wanted.
func NewInfo(name, typ string, index, fps int) Info {
	return Info{Name: name, Type: typ, Index: index, FPS: fps}
}

// Describe renders the diagnostic dump:
//
//	DUMPING CAMERA INFO
//	  Name: <name>
//	  Type: <type>
//	  Index: <index>
//	  FPS: <fps>
func (i Info) Describe() string {
	var b strings.Builder
	b.WriteString(DescribeHeader + "\n")
	b.WriteString("  Name: " + i.Name + "\n")
	b.WriteString("  Type: " + i.Type + "\n")
	b.WriteString("  Index: " + strconv.Itoa(i.Index) + "\n")
	b.WriteString("  FPS: " + strconv.Itoa(i.FPS))
	return b.String()
}

// String implements fmt.Stringer.
func (i Info) String() string {
	return fmt.Sprintf("%s (%s #%d @ %dfps)", i.Name, i.Type, i.Index, i.FPS)
}

var describeLabels = [...]string{"  Name: ", "  Type: ", "  Index: ", "  FPS: "}

// ParseDescription parses Describe output back into an Info.
func ParseDescription(s string) (Info, error) {
	sc := bufio.NewScanner(strings.NewReader(s))

	if !sc.Scan() || sc.Text() != DescribeHeader {
		return Info{}, fmt.Errorf("camera: description must start with %q", DescribeHeader)
	}

	var values [len(describeLabels)]string
	for n, label := range describeLabels {
		if !sc.Scan() {
			return Info{}, fmt.Errorf("camera: description truncated before %q", strings.TrimSpace(label))
		}
		line := sc.Text()
		if !strings.HasPrefix(line, label) {
			return Info{}, fmt.Errorf("camera: line %d: expected %q, got %q", n+2, label, line)
		}
		values[n] = strings.TrimPrefix(line, label)
	}
	if sc.Scan() {
		return Info{}, fmt.Errorf("camera: unexpected trailing line %q", sc.Text())
	}

	index, err := strconv.Atoi(values[2])
	if err != nil {
		return Info{}, fmt.Errorf("camera: parse index: %w", err)
	}
	fps, err := strconv.Atoi(values[3])
	if err != nil {
		return Info{}, fmt.Errorf("camera: parse fps: %w", err)
	}

	return NewInfo(values[0], values[1], index, fps), nil
}

// Resolve maps the Type string through r.
func (i Info) Resolve(r *Registry) (Type, error) {
	return r.Resolve(i.Type)
}

// Validate checks the fields against the default registry.
func (i Info) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return &ConfigError{Field: "name", Message: "must not be empty"}
	}
	// Describe is line-oriented, so a name must fit on one line.
	if strings.IndexFunc(i.Name, unicode.IsControl) >= 0 {
		return &ConfigError{Field: "name", Message: fmt.Sprintf("%q contains control characters", i.Name)}
	}
	if _, err := i.Resolve(DefaultRegistry()); err != nil {
		return &ConfigError{Field: "type", Message: fmt.Sprintf("%q is not one of %s",
			i.Type, strings.Join(DefaultRegistry().Names(), ", ")), Err: err}
	}
	if i.Index < 0 {
		return &ConfigError{Field: "index", Message: fmt.Sprintf("must be >= 0, got %d", i.Index)}
	}
	if i.FPS <= 0 {
		return &ConfigError{Field: "fps", Message: fmt.Sprintf("must be > 0, got %d", i.FPS)}
	}
	return nil
}
