package spanbglib

// CorrectOrigin remaps a canvas built with (0,0) at the global top left into
// the convention that tiles around the primary display origin: a 2D circular
// shift by (-origin.Y, -origin.X). The origin splits the canvas into four
// quadrants which move as blocks and tile the result exactly.
func CorrectOrigin(img *Raster, origin Offset) *Raster {
	h, w := img.Height, img.Width
	y0, x0 := origin.Y, origin.X
	out := NewRaster(h, w)

	// top left -> bottom right
	CopyRegion(y0, x0, img, 0, 0, out, h-y0, w-x0)
	// bottom right -> top left
	CopyRegion(h-y0, w-x0, img, y0, x0, out, 0, 0)
	// bottom left -> top right
	CopyRegion(h-y0, x0, img, y0, 0, out, 0, w-x0)
	// top right -> bottom left
	CopyRegion(y0, w-x0, img, 0, x0, out, h-y0, 0)

	return out
}
