package spanbglib

import (
	"testing"
)

func TestParseRGB(t *testing.T) {
	tests := []struct {
		in      string
		want    *RGB
		wantErr bool
	}{
		{in: "0,0,0", want: &RGB{}},
		{in: "255, 128, 1", want: &RGB{255, 128, 1}},
		{in: "", wantErr: true},
		{in: "1,2", wantErr: true},
		{in: "1,2,3,4", wantErr: true},
		{in: "256,0,0", wantErr: true},
		{in: "-1,0,0", wantErr: true},
		{in: "a,0,0", wantErr: true},
	}

	for _, tc := range tests {
		c, err := ParseRGB(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("expected an error for [%s]", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("[%s]: %s", tc.in, err)
			continue
		}
		if *c != *tc.want {
			t.Errorf("[%s] = %v, want %v", tc.in, c, tc.want)
		}
	}
}

func TestRasterFillSetAt(t *testing.T) {
	r := NewRaster(2, 3)
	r.Fill(RGB{1, 2, 3})

	if got := r.At(1, 2); got != (RGB{1, 2, 3}) {
		t.Errorf("At(1,2) = %v after Fill", got)
	}

	r.Set(0, 1, RGB{9, 8, 7})
	if got := r.At(0, 1); got != (RGB{9, 8, 7}) {
		t.Errorf("At(0,1) = %v after Set", got)
	}
	if got := r.At(0, 0); got != (RGB{1, 2, 3}) {
		t.Errorf("Set leaked into At(0,0) = %v", got)
	}
}

// gradientRaster gives every pixel a distinct color so copies can be traced.
func gradientRaster(height, width int) *Raster {
	r := NewRaster(height, width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r.Set(y, x, RGB{R: uint8(y), G: uint8(x), B: uint8(y + x)})
		}
	}
	return r
}

func TestCopyRegion(t *testing.T) {
	tests := []struct {
		name       string
		extY, extX int
		srcY, srcX int
		dstY, dstX int
		// want maps dst coordinates to the src coordinates they must hold,
		// with -1 marking pixels that must remain untouched.
		check func(t *testing.T, dst *Raster, src *Raster)
	}{
		{
			name: "full interior copy",
			extY: 2, extX: 2, srcY: 1, srcX: 1, dstY: 0, dstX: 0,
			check: func(t *testing.T, dst, src *Raster) {
				for y := 0; y < 2; y++ {
					for x := 0; x < 2; x++ {
						if dst.At(y, x) != src.At(y+1, x+1) {
							t.Errorf("dst(%d,%d) != src(%d,%d)", y, x, y+1, x+1)
						}
					}
				}
				if dst.At(2, 2) != (RGB{}) {
					t.Error("copy overran its extent")
				}
			},
		},
		{
			name: "negative source start shifts the window",
			extY: 2, extX: 2, srcY: -1, srcX: 0, dstY: 0, dstX: 0,
			check: func(t *testing.T, dst, src *Raster) {
				// Row 0 of dst had no source row, row 1 holds src row 0.
				if dst.At(0, 0) != (RGB{}) {
					t.Error("dst(0,0) should be untouched")
				}
				if dst.At(1, 0) != src.At(0, 0) || dst.At(1, 1) != src.At(0, 1) {
					t.Error("shifted window landed in the wrong place")
				}
			},
		},
		{
			name: "negative destination start clips the window",
			extY: 2, extX: 2, srcY: 0, srcX: 0, dstY: -1, dstX: 0,
			check: func(t *testing.T, dst, src *Raster) {
				if dst.At(0, 0) != src.At(1, 0) {
					t.Error("dst(0,0) should hold src(1,0)")
				}
				if dst.At(1, 0) != (RGB{}) {
					t.Error("clipped copy wrote too many rows")
				}
			},
		},
		{
			name: "extent clamped at the edges",
			extY: 10, extX: 10, srcY: 2, srcX: 2, dstY: 2, dstX: 2,
			check: func(t *testing.T, dst, src *Raster) {
				if dst.At(2, 2) != src.At(2, 2) || dst.At(3, 3) != src.At(3, 3) {
					t.Error("clamped copy missed pixels")
				}
				if dst.At(1, 1) != (RGB{}) {
					t.Error("clamped copy wrote outside the window")
				}
			},
		},
		{
			name: "zero extent is a no-op",
			extY: 0, extX: 4, srcY: 0, srcX: 0, dstY: 0, dstX: 0,
			check: func(t *testing.T, dst, src *Raster) {
				for y := 0; y < dst.Height; y++ {
					for x := 0; x < dst.Width; x++ {
						if dst.At(y, x) != (RGB{}) {
							t.Fatalf("dst(%d,%d) was written", y, x)
						}
					}
				}
			},
		},
		{
			name: "window entirely outside both rasters",
			extY: 2, extX: 2, srcY: 10, srcX: 0, dstY: 0, dstX: 0,
			check: func(t *testing.T, dst, src *Raster) {
				if dst.At(0, 0) != (RGB{}) {
					t.Error("out-of-range copy wrote pixels")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := gradientRaster(4, 4)
			dst := NewRaster(4, 4)
			CopyRegion(tc.extY, tc.extX, src, tc.srcY, tc.srcX, dst, tc.dstY, tc.dstX)
			tc.check(t, dst, src)
		})
	}
}

func TestResize(t *testing.T) {
	r := gradientRaster(4, 4)

	// Identity resizes share the backing buffer.
	same := r.Resize(4, 4, 3)
	if same != r {
		t.Error("identity resize should return the receiver")
	}

	// A uniform image stays uniform under every kernel order.
	for spline := 0; spline <= 5; spline++ {
		u := NewRaster(3, 3)
		u.Fill(RGB{10, 20, 30})
		out := u.Resize(7, 5, spline)

		if out.Height != 7 || out.Width != 5 {
			t.Fatalf("spline %d: got %dx%d, want 5x7", spline, out.Width, out.Height)
		}
		for y := 0; y < out.Height; y++ {
			for x := 0; x < out.Width; x++ {
				if out.At(y, x) != (RGB{10, 20, 30}) {
					t.Fatalf("spline %d: pixel (%d,%d) = %v",
						spline, y, x, out.At(y, x))
				}
			}
		}
	}

	// Nearest neighbor doubling replicates pixels exactly.
	out := r.Resize(8, 8, 0)
	if out.At(0, 0) != r.At(0, 0) ||
		out.At(7, 7) != r.At(3, 3) || out.At(4, 0) != r.At(2, 0) {
		t.Error("nearest neighbor doubling misplaced pixels")
	}
}
