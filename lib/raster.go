package spanbglib

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// RGB is a single 8-bit color sample.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// ParseRGB parses an "R,G,B" byte triple.
func ParseRGB(s string) (*RGB, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("Invalid color [%s], expected R,G,B", s)
	}

	var vals [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return nil, fmt.Errorf("Invalid color [%s], expected byte values R,G,B", s)
		}
		vals[i] = uint8(v)
	}

	return &RGB{vals[0], vals[1], vals[2]}, nil
}

// Raster is a packed row-major RGB pixel buffer, indexed [y][x] to match the
// display rect convention.
type Raster struct {
	Pix    []uint8
	Height int
	Width  int
}

func NewRaster(height, width int) *Raster {
	return &Raster{
		Pix:    make([]uint8, height*width*3),
		Height: height,
		Width:  width,
	}
}

func (r *Raster) At(y, x int) RGB {
	i := (y*r.Width + x) * 3
	return RGB{r.Pix[i], r.Pix[i+1], r.Pix[i+2]}
}

func (r *Raster) Set(y, x int, c RGB) {
	i := (y*r.Width + x) * 3
	r.Pix[i], r.Pix[i+1], r.Pix[i+2] = c.R, c.G, c.B
}

// Fill sets every pixel to c.
func (r *Raster) Fill(c RGB) {
	for i := 0; i < len(r.Pix); i += 3 {
		r.Pix[i], r.Pix[i+1], r.Pix[i+2] = c.R, c.G, c.B
	}
}

// scalerForSpline maps spline orders 0-5 to the resampling kernels available
// in x/image/draw. Orders above 3 share CatmullRom, the highest quality
// kernel the library ships.
func scalerForSpline(order int) xdraw.Scaler {
	switch {
	case order <= 0:
		return xdraw.NearestNeighbor
	case order == 1:
		return xdraw.ApproxBiLinear
	case order == 2:
		return xdraw.BiLinear
	default:
		return xdraw.CatmullRom
	}
}

// Resize resamples r to exactly height by width pixels. Returns r unchanged
// when it is already that size. The destination rect is the integer target
// size, so the scaled result can never undershoot by a pixel the way
// zoom-factor APIs can.
func (r *Raster) Resize(height, width, spline int) *Raster {
	if height == r.Height && width == r.Width {
		return r
	}

	src := r.toRGBA()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	scalerForSpline(spline).Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	return rasterFromRGBA(dst)
}

func (r *Raster) toRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		si := y * r.Width * 3
		di := y * img.Stride
		for x := 0; x < r.Width; x++ {
			img.Pix[di] = r.Pix[si]
			img.Pix[di+1] = r.Pix[si+1]
			img.Pix[di+2] = r.Pix[si+2]
			img.Pix[di+3] = 0xff
			si += 3
			di += 4
		}
	}
	return img
}

func rasterFromRGBA(img *image.RGBA) *Raster {
	b := img.Bounds()
	r := NewRaster(b.Dy(), b.Dx())
	for y := 0; y < r.Height; y++ {
		si := y * img.Stride
		di := y * r.Width * 3
		for x := 0; x < r.Width; x++ {
			r.Pix[di] = img.Pix[si]
			r.Pix[di+1] = img.Pix[si+1]
			r.Pix[di+2] = img.Pix[si+2]
			si += 4
			di += 3
		}
	}
	return r
}

// CopyRegion copies an extY by extX block from src starting at (srcY, srcX)
// into dst starting at (dstY, dstX), mutating dst in place. Out-of-range
// inputs are never an error: the copy window is shifted and shrunk until it
// fits both rasters, down to a zero-sized copy.
func CopyRegion(extY, extX int, src *Raster, srcY, srcX int, dst *Raster, dstY, dstX int) {
	// Negative starts shift the window instead of faulting.
	if srcY < 0 {
		extY += srcY
		dstY -= srcY
		srcY = 0
	}
	if srcX < 0 {
		extX += srcX
		dstX -= srcX
		srcX = 0
	}
	if dstY < 0 {
		extY += dstY
		srcY -= dstY
		dstY = 0
	}
	if dstX < 0 {
		extX += dstX
		srcX -= dstX
		dstX = 0
	}

	if srcY > src.Height {
		extY = 0
	}
	if srcY+extY > src.Height {
		extY = src.Height - srcY
	}
	if srcX > src.Width {
		extX = 0
	}
	if srcX+extX > src.Width {
		extX = src.Width - srcX
	}

	if dstY > dst.Height {
		extY = 0
	}
	if dstY+extY > dst.Height {
		extY = dst.Height - dstY
	}
	if dstX > dst.Width {
		extX = 0
	}
	if dstX+extX > dst.Width {
		extX = dst.Width - dstX
	}

	if extY <= 0 || extX <= 0 {
		return
	}

	for y := 0; y < extY; y++ {
		si := ((srcY+y)*src.Width + srcX) * 3
		di := ((dstY+y)*dst.Width + dstX) * 3
		copy(dst.Pix[di:di+extX*3], src.Pix[si:si+extX*3])
	}
}
