package target

import (
	"fmt"
	"strings"
)

// Orientation selects which canvas axis the margin is taken from.
// Portrait scales the source to the safe width, Landscape to the safe height.
type Orientation int

const (
	Portrait Orientation = iota + 1
	Landscape
)

// DefaultMarginPercent is reserved on each side of the scaling axis.
const DefaultMarginPercent = 10

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	}
	return fmt.Sprintf("orientation(%d)", int(o))
}

// ParseOrientation accepts "portrait" or "landscape", case-insensitive.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "portrait":
		return Portrait, nil
	case "landscape":
		return Landscape, nil
	}
	return 0, fmt.Errorf("unknown orientation %q", s)
}

func (o Orientation) MarshalText() ([]byte, error) {
	if o != Portrait && o != Landscape {
		return nil, fmt.Errorf("unknown orientation %d", int(o))
	}
	return []byte(o.String()), nil
}

func (o *Orientation) UnmarshalText(b []byte) error {
	v, err := ParseOrientation(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Spec is a named canvas size for one store category.
type Spec struct {
	Name          string      `json:"name" yaml:"name" toml:"name"`
	Width         int         `json:"width" yaml:"width" toml:"width"`
	Height        int         `json:"height" yaml:"height" toml:"height"`
	Orientation   Orientation `json:"orientation" yaml:"orientation" toml:"orientation"`
	MarginPercent int         `json:"margin_percent" yaml:"margin_percent" toml:"margin_percent"`
}

// Margin returns the per-side margin percentage, falling back to the default
// when unset.
func (s Spec) Margin() int {
	if s.MarginPercent == 0 {
		return DefaultMarginPercent
	}
	return s.MarginPercent
}

func (s Spec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("target name is required")
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("target %s: dimensions must be positive, got %dx%d", s.Name, s.Width, s.Height)
	}
	if s.Orientation != Portrait && s.Orientation != Landscape {
		return fmt.Errorf("target %s: orientation must be portrait or landscape", s.Name)
	}
	if m := s.Margin(); m < 0 || m >= 50 {
		return fmt.Errorf("target %s: margin_percent must be in [0, 50), got %d", s.Name, m)
	}
	return nil
}

// Defaults returns the Google Play screenshot sizes.
func Defaults() []Spec {
	return []Spec{
		{Name: "Phone", Width: 1080, Height: 1920, Orientation: Portrait},
		{Name: "Tablet7", Width: 1200, Height: 1920, Orientation: Portrait},
		{Name: "Tablet10", Width: 1600, Height: 2560, Orientation: Portrait},
		{Name: "Chromebook", Width: 1366, Height: 768, Orientation: Landscape},
	}
}

// Lookup finds a spec by name, ignoring case.
func Lookup(specs []Spec, name string) (Spec, bool) {
	for _, s := range specs {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Spec{}, false
}
