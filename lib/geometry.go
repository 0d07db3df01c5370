package spanbglib

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Rect is one display's pixel size and position inside the virtual desktop,
// with (0,0) at the top left of the bounding box on all displays.
type Rect struct {
	Height  int
	Width   int
	YOffset int
	XOffset int
}

// Offset is a (y, x) pixel offset.
type Offset struct {
	Y int
	X int
}

// Layout is the display geometry a Desktop implementation reports.
type Layout struct {
	Displays []Rect
	// PrimaryOrigin is where the primary display's true origin landed after
	// normalizing all display offsets to be non-negative.
	PrimaryOrigin Offset
	// NeedsOriginWrap is set when the platform tiles wallpapers relative to
	// the primary display instead of the global top left.
	NeedsOriginWrap bool
}

// Desktop is the OS-specific surface the compositor talks to.
type Desktop interface {
	Displays() (*Layout, error)
	Apply(path string) error
}

var ErrNoDisplays = errors.New("No displays detected")

// BoundingBox returns the size of the smallest box containing every display.
func BoundingBox(rects []Rect) (int, int, error) {
	if len(rects) == 0 {
		return 0, 0, ErrNoDisplays
	}

	height := 0
	width := 0
	for _, r := range rects {
		if r.YOffset+r.Height > height {
			height = r.YOffset + r.Height
		}
		if r.XOffset+r.Width > width {
			width = r.XOffset + r.Width
		}
	}

	return height, width, nil
}

// NormalizeLayout shifts rects so that every offset is non-negative and
// records where the original (0,0) landed after the shift. wrap marks
// platforms whose wallpaper tiling is relative to the primary display.
func NormalizeLayout(rects []Rect, wrap bool) *Layout {
	minY, minX := 0, 0
	for _, r := range rects {
		if r.YOffset < minY {
			minY = r.YOffset
		}
		if r.XOffset < minX {
			minX = r.XOffset
		}
	}

	out := make([]Rect, len(rects))
	for i, r := range rects {
		r.YOffset -= minY
		r.XOffset -= minX
		out[i] = r
	}

	return &Layout{
		Displays:        out,
		PrimaryOrigin:   Offset{Y: -minY, X: -minX},
		NeedsOriginWrap: wrap,
	}
}

// ParseResolutionList parses xrandr-style WxH+X+Y specifiers into a Layout,
// bypassing any system display lookup.
func ParseResolutionList(specs []string) (*Layout, error) {
	l := &Layout{}

	for _, spec := range specs {
		parts := strings.Split(strings.ReplaceAll(spec, "+", "x"), "x")
		if len(parts) != 4 {
			return nil, fmt.Errorf(
				"Invalid resolution specifier [%s], expected WxH+X+Y", spec)
		}

		var vals [4]int
		for i, p := range parts {
			v, err := strconv.Atoi(p)
			if err != nil || v < 0 {
				return nil, fmt.Errorf(
					"Invalid resolution specifier [%s], expected WxH+X+Y", spec)
			}
			vals[i] = v
		}

		if vals[0] == 0 || vals[1] == 0 {
			return nil, fmt.Errorf("Display size in [%s] must be positive", spec)
		}

		l.Displays = append(l.Displays, Rect{
			Height:  vals[1],
			Width:   vals[0],
			YOffset: vals[3],
			XOffset: vals[2],
		})
	}

	return l, nil
}

// ParseXYOffset parses an "X,Y" pixel position.
func ParseXYOffset(s string) (Offset, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Offset{}, fmt.Errorf("Invalid position [%s], expected X,Y", s)
	}

	x, xerr := strconv.Atoi(strings.TrimSpace(parts[0]))
	y, yerr := strconv.Atoi(strings.TrimSpace(parts[1]))
	if xerr != nil || yerr != nil || x < 0 || y < 0 {
		return Offset{}, fmt.Errorf("Invalid position [%s], expected X,Y", s)
	}

	return Offset{Y: y, X: x}, nil
}
