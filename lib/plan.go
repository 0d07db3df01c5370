package spanbglib

import "math"

// Size is a (height, width) pixel size.
type Size struct {
	Height int
	Width  int
}

// ScalingPlan describes how one image maps onto one display rect.
type ScalingPlan struct {
	Current Size
	Target  Size
	// FitOffsets center the scaled image inside the display under the fit
	// policy; always zero under the fill policy.
	FitOffsets Offset
	// ErrFraction is the fraction of the image cropped away (fill policy),
	// of the display left uncovered (fit policy), or of the whole virtual
	// screen mismatched (one-image mode). Nominally in [0,1], rounding can
	// push it slightly past.
	ErrFraction float64
}

// CalculateScaling computes the target size, centering offsets and error
// fraction for scaling a srcH by srcW image onto disp. Two candidate sizes
// make one dimension match the display exactly; the fit policy picks the one
// that stays inside the display, the fill policy the one that covers it.
func CalculateScaling(srcH, srcW int, disp Rect, all []Rect, o *Options) ScalingPlan {
	zoomY := float64(disp.Height) / float64(srcH)
	zoomX := float64(disp.Width) / float64(srcW)
	byHeight := Size{Height: disp.Height, Width: int(math.Round(float64(srcW) * zoomY))}
	byWidth := Size{Height: int(math.Round(float64(srcH) * zoomX)), Width: disp.Width}

	target := byHeight
	var offs Offset
	var errF float64

	dispArea := float64(disp.Height) * float64(disp.Width)
	if o.FitImage != nil {
		if target.Width > disp.Width {
			target = byWidth
			offs.Y = int(math.Round(math.Abs(float64(target.Height-disp.Height) / 2)))
			errF = float64(disp.Height-target.Height) * float64(disp.Width) / dispArea
		} else {
			offs.X = int(math.Round(math.Abs(float64(target.Width-disp.Width) / 2)))
			errF = float64(disp.Width-target.Width) * float64(disp.Height) / dispArea
		}
	} else {
		if target.Width < disp.Width {
			target = byWidth
		}
		// The two overflow terms double-count the cropped corner when both
		// dimensions overflow. Kept as-is so --percenterror thresholds tuned
		// against older versions keep accepting the same images.
		area := float64(target.Height) * float64(target.Width)
		errF = float64(target.Height-disp.Height)*float64(target.Width)/area +
			float64(target.Width-disp.Width)*float64(target.Height)/area
	}

	if o.OneImage {
		total := 0
		for _, d := range all {
			total += d.Height * d.Width
		}
		errF = math.Abs(float64(target.Height*target.Width-total)) / float64(total)
	}

	return ScalingPlan{
		Current:     Size{Height: srcH, Width: srcW},
		Target:      target,
		FitOffsets:  offs,
		ErrFraction: errF,
	}
}
