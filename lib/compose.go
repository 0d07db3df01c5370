package spanbglib

import (
	"log"
	"math"
)

// Options is the per-run configuration shared by the selector, planner and
// composer. Fixed for the duration of a composite.
type Options struct {
	Order SelectOrder
	// OneImage spans a single image across the bounding box of all displays.
	OneImage bool
	// FitImage selects the fit policy; the value pads the uncovered area.
	// When nil, the fill policy scales to cover and crops the excess.
	FitImage *RGB
	// ColorFill paints canvas regions not covered by any display.
	ColorFill *RGB
	// MaxErrorPercent rejects candidate images whose scaling error
	// percentage exceeds it. Nil accepts everything.
	MaxErrorPercent *float64
	// ZoomSpline is the interpolation order, 0 (nearest) to 5 (best).
	ZoomSpline int
	// SkipOriginWrap suppresses the primary-origin wrap on platforms that
	// would otherwise need it.
	SkipOriginWrap bool
	Verbose        bool
}

// fillColor is the color the canvas is primed with before compositing, if
// any. The fit pad color wins over an explicit background fill.
func (o *Options) fillColor() *RGB {
	if o.FitImage != nil {
		return o.FitImage
	}
	return o.ColorFill
}

// Compose builds the combined canvas: one image per display, scaled under
// the configured policy and copied into the display's sub-rectangle. The
// canvas is sized to the bounding box of all displays and origin-wrapped
// when the layout calls for it.
func Compose(images []*Raster, layout *Layout, o *Options) (*Raster, error) {
	displays := layout.Displays
	height, width, err := BoundingBox(displays)
	if err != nil {
		return nil, err
	}

	if o.OneImage {
		displays = []Rect{{Height: height, Width: width}}
	}

	if o.Verbose {
		log.Printf("Creating a %dx%d image bounding all displays", width, height)
	}
	canvas := NewRaster(height, width)

	n := len(displays)
	if len(images) < n {
		n = len(images)
	}

	scaled := make([]*Raster, n)
	plans := make([]ScalingPlan, n)
	for i := 0; i < n; i++ {
		plans[i] = CalculateScaling(
			images[i].Height, images[i].Width, displays[i], displays, o)
		scaled[i] = images[i].Resize(
			plans[i].Target.Height, plans[i].Target.Width, o.ZoomSpline)
	}

	if fill := o.fillColor(); fill != nil {
		canvas.Fill(*fill)
	}

	for i := 0; i < n; i++ {
		disp := displays[i]
		img := scaled[i]

		// Fill policy center-crops the overflow; the difference can be
		// slightly negative after rounding, so clamp before rounding.
		var srcY, srcX int
		if o.FitImage == nil {
			srcY = int(math.Round(math.Max(0, float64(img.Height-disp.Height)/2)))
			srcX = int(math.Round(math.Max(0, float64(img.Width-disp.Width)/2)))
		}

		dstY := disp.YOffset + plans[i].FitOffsets.Y
		dstX := disp.XOffset + plans[i].FitOffsets.X
		if o.Verbose {
			log.Printf("Copying image %d from (%d,%d) to canvas (%d,%d), extents %dx%d",
				i, srcY, srcX, dstY, dstX, disp.Height, disp.Width)
		}
		CopyRegion(disp.Height, disp.Width, img, srcY, srcX, canvas, dstY, dstX)
	}

	if layout.NeedsOriginWrap && !o.SkipOriginWrap {
		if o.Verbose {
			log.Printf("Wrapping the canvas around the primary origin (%d,%d)",
				layout.PrimaryOrigin.Y, layout.PrimaryOrigin.X)
		}
		canvas = CorrectOrigin(canvas, layout.PrimaryOrigin)
	}

	return canvas, nil
}
