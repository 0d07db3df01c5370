package spanbglib

import "testing"

func uniformRaster(height, width int, c RGB) *Raster {
	r := NewRaster(height, width)
	r.Fill(c)
	return r
}

func TestComposeFillPolicy(t *testing.T) {
	layout := &Layout{Displays: []Rect{
		{Height: 2, Width: 2},
		{Height: 2, Width: 2, XOffset: 2},
	}}
	images := []*Raster{
		uniformRaster(2, 2, RGB{10, 0, 0}),
		uniformRaster(2, 2, RGB{0, 20, 0}),
	}

	canvas, err := Compose(images, layout, &Options{})
	if err != nil {
		t.Fatal(err)
	}

	if canvas.Height != 2 || canvas.Width != 4 {
		t.Fatalf("canvas is %dx%d, want 4x2", canvas.Width, canvas.Height)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if canvas.At(y, x) != (RGB{10, 0, 0}) {
				t.Errorf("left display pixel (%d,%d) = %v", y, x, canvas.At(y, x))
			}
			if canvas.At(y, x+2) != (RGB{0, 20, 0}) {
				t.Errorf("right display pixel (%d,%d) = %v", y, x+2, canvas.At(y, x+2))
			}
		}
	}
}

func TestComposeFillPolicyCrops(t *testing.T) {
	// A square image on a wide display scales up and center-crops
	// vertically; every display pixel still comes from the image.
	layout := &Layout{Displays: []Rect{{Height: 2, Width: 4}}}
	images := []*Raster{uniformRaster(3, 3, RGB{5, 6, 7})}

	canvas, err := Compose(images, layout, &Options{})
	if err != nil {
		t.Fatal(err)
	}

	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if canvas.At(y, x) != (RGB{5, 6, 7}) {
				t.Errorf("pixel (%d,%d) = %v", y, x, canvas.At(y, x))
			}
		}
	}
}

func TestComposeFitPolicy(t *testing.T) {
	// Per the fit scenario: a 4:3 image on a 16:9 display scales to match
	// the height and is centered, with the pad color on both sides.
	layout := &Layout{Displays: []Rect{{Height: 1080, Width: 1920}}}
	images := []*Raster{uniformRaster(600, 800, RGB{200, 100, 50})}
	o := &Options{FitImage: &RGB{1, 2, 3}}

	canvas, err := Compose(images, layout, o)
	if err != nil {
		t.Fatal(err)
	}

	checks := []struct {
		y, x int
		want RGB
	}{
		{y: 0, x: 0, want: RGB{1, 2, 3}},
		{y: 540, x: 239, want: RGB{1, 2, 3}},
		{y: 540, x: 240, want: RGB{200, 100, 50}},
		{y: 540, x: 960, want: RGB{200, 100, 50}},
		{y: 540, x: 1679, want: RGB{200, 100, 50}},
		{y: 540, x: 1680, want: RGB{1, 2, 3}},
		{y: 1079, x: 1919, want: RGB{1, 2, 3}},
	}
	for _, c := range checks {
		if got := canvas.At(c.y, c.x); got != c.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", c.y, c.x, got, c.want)
		}
	}
}

func TestComposeColorFill(t *testing.T) {
	// Diagonal displays leave uncovered corners that take the fill color.
	layout := &Layout{Displays: []Rect{
		{Height: 2, Width: 2},
		{Height: 2, Width: 2, YOffset: 2, XOffset: 2},
	}}
	images := []*Raster{
		uniformRaster(2, 2, RGB{10, 0, 0}),
		uniformRaster(2, 2, RGB{0, 20, 0}),
	}
	o := &Options{ColorFill: &RGB{0, 0, 30}}

	canvas, err := Compose(images, layout, o)
	if err != nil {
		t.Fatal(err)
	}

	if canvas.At(0, 0) != (RGB{10, 0, 0}) {
		t.Errorf("first display pixel = %v", canvas.At(0, 0))
	}
	if canvas.At(3, 3) != (RGB{0, 20, 0}) {
		t.Errorf("second display pixel = %v", canvas.At(3, 3))
	}
	if canvas.At(0, 3) != (RGB{0, 0, 30}) || canvas.At(3, 0) != (RGB{0, 0, 30}) {
		t.Errorf("uncovered corners = %v, %v, want the fill color",
			canvas.At(0, 3), canvas.At(3, 0))
	}
}

func TestComposeOneImage(t *testing.T) {
	layout := &Layout{Displays: []Rect{
		{Height: 2, Width: 2},
		{Height: 2, Width: 2, XOffset: 2},
	}}
	images := []*Raster{uniformRaster(2, 4, RGB{7, 7, 7})}

	canvas, err := Compose(images, layout, &Options{OneImage: true})
	if err != nil {
		t.Fatal(err)
	}

	if canvas.Height != 2 || canvas.Width != 4 {
		t.Fatalf("canvas is %dx%d, want 4x2", canvas.Width, canvas.Height)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if canvas.At(y, x) != (RGB{7, 7, 7}) {
				t.Errorf("pixel (%d,%d) = %v", y, x, canvas.At(y, x))
			}
		}
	}
}

func TestComposeOriginWrap(t *testing.T) {
	layout := &Layout{
		Displays:        []Rect{{Height: 2, Width: 2}},
		PrimaryOrigin:   Offset{Y: 1, X: 1},
		NeedsOriginWrap: true,
	}

	img := NewRaster(2, 2)
	img.Set(0, 0, RGB{1, 0, 0})
	img.Set(0, 1, RGB{2, 0, 0})
	img.Set(1, 0, RGB{3, 0, 0})
	img.Set(1, 1, RGB{4, 0, 0})

	canvas, err := Compose([]*Raster{img}, layout, &Options{})
	if err != nil {
		t.Fatal(err)
	}

	// The canvas circularly shifted by (-1,-1).
	want := [2][2]uint8{{4, 3}, {2, 1}}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if canvas.At(y, x).R != want[y][x] {
				t.Errorf("pixel (%d,%d) = %v, want R=%d",
					y, x, canvas.At(y, x), want[y][x])
			}
		}
	}

	// The wrap can be suppressed even when the layout asks for it.
	canvas, err = Compose([]*Raster{img}, layout, &Options{SkipOriginWrap: true})
	if err != nil {
		t.Fatal(err)
	}
	if canvas.At(0, 0).R != 1 {
		t.Errorf("suppressed wrap still moved pixels: %v", canvas.At(0, 0))
	}
}

func TestComposeNoDisplays(t *testing.T) {
	if _, err := Compose(nil, &Layout{}, &Options{}); err != ErrNoDisplays {
		t.Errorf("expected ErrNoDisplays, got %v", err)
	}
}
