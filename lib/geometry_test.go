package spanbglib

import (
	"reflect"
	"testing"
)

func TestBoundingBox(t *testing.T) {
	tests := []struct {
		name       string
		rects      []Rect
		height     int
		width      int
		wantNoDisp bool
	}{
		{
			name:       "no displays",
			rects:      nil,
			wantNoDisp: true,
		},
		{
			name:   "single display",
			rects:  []Rect{{Height: 1080, Width: 1920}},
			height: 1080,
			width:  1920,
		},
		{
			name: "side by side",
			rects: []Rect{
				{Height: 1080, Width: 1920},
				{Height: 1080, Width: 1920, XOffset: 1920},
			},
			height: 1080,
			width:  3840,
		},
		{
			name: "mixed sizes with vertical offset",
			rects: []Rect{
				{Height: 1440, Width: 2560},
				{Height: 1080, Width: 1920, XOffset: 2560, YOffset: 360},
			},
			height: 1440,
			width:  4480,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, w, err := BoundingBox(tc.rects)
			if tc.wantNoDisp {
				if err != ErrNoDisplays {
					t.Fatalf("expected ErrNoDisplays, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if h != tc.height || w != tc.width {
				t.Errorf("got %dx%d, want %dx%d", w, h, tc.width, tc.height)
			}
		})
	}
}

func TestNormalizeLayout(t *testing.T) {
	rects := []Rect{
		{Height: 1080, Width: 1920, XOffset: -1920, YOffset: -200},
		{Height: 1080, Width: 1920},
	}

	l := NormalizeLayout(rects, true)

	want := []Rect{
		{Height: 1080, Width: 1920},
		{Height: 1080, Width: 1920, XOffset: 1920, YOffset: 200},
	}
	if !reflect.DeepEqual(l.Displays, want) {
		t.Errorf("displays = %v, want %v", l.Displays, want)
	}
	if l.PrimaryOrigin != (Offset{Y: 200, X: 1920}) {
		t.Errorf("primary origin = %v, want {200 1920}", l.PrimaryOrigin)
	}
	if !l.NeedsOriginWrap {
		t.Error("expected NeedsOriginWrap to be set")
	}

	// Non-negative offsets are left alone and the origin stays at (0,0)
	l = NormalizeLayout(want, false)
	if !reflect.DeepEqual(l.Displays, want) {
		t.Errorf("displays = %v, want %v", l.Displays, want)
	}
	if l.PrimaryOrigin != (Offset{}) {
		t.Errorf("primary origin = %v, want {0 0}", l.PrimaryOrigin)
	}
	if l.NeedsOriginWrap {
		t.Error("expected NeedsOriginWrap to be clear")
	}
}

func TestParseResolutionList(t *testing.T) {
	l, err := ParseResolutionList([]string{"1920x1080+0+0", "2560x1440+1920+200"})
	if err != nil {
		t.Fatal(err)
	}

	want := []Rect{
		{Height: 1080, Width: 1920},
		{Height: 1440, Width: 2560, XOffset: 1920, YOffset: 200},
	}
	if !reflect.DeepEqual(l.Displays, want) {
		t.Errorf("displays = %v, want %v", l.Displays, want)
	}

	bad := []string{
		"1920x1080",
		"1920x1080+0",
		"1920x1080+0+0+0",
		"ax1080+0+0",
		"1920x1080+-5+0",
		"0x1080+0+0",
		"1920x0+0+0",
	}
	for _, spec := range bad {
		if _, err := ParseResolutionList([]string{spec}); err == nil {
			t.Errorf("expected an error for [%s]", spec)
		}
	}
}

func TestParseXYOffset(t *testing.T) {
	o, err := ParseXYOffset("1920, 200")
	if err != nil {
		t.Fatal(err)
	}
	if o != (Offset{Y: 200, X: 1920}) {
		t.Errorf("offset = %v, want {200 1920}", o)
	}

	for _, s := range []string{"", "5", "1,2,3", "a,5", "-1,5"} {
		if _, err := ParseXYOffset(s); err == nil {
			t.Errorf("expected an error for [%s]", s)
		}
	}
}
