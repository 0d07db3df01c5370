package spanbglib

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// Suffixes accepted by default; matching is case-insensitive. Config can
// override the list but the decoder only understands these formats.
var defaultImageSuffixes = []string{".bmp", ".gif", ".jpg", ".jpeg", ".png"}

func HasImageSuffix(name string, suffixes []string) bool {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}

// DecodeImage reads path and normalizes the pixels to packed RGB.
func DecodeImage(path string) (*Raster, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("Input image [%s] is not a regular file", path)
	}

	img, _, err := image.Decode(in)
	if err != nil {
		return nil, err
	}

	return rasterFromImage(img), nil
}

func rasterFromImage(img image.Image) *Raster {
	b := img.Bounds()
	r := NewRaster(b.Dy(), b.Dx())

	switch im := img.(type) {
	case *image.RGBA:
		stripAlpha(r, im.Pix, im.Stride)
	case *image.NRGBA:
		stripAlpha(r, im.Pix, im.Stride)
	default:
		di := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				cr, cg, cb, _ := img.At(x, y).RGBA()
				r.Pix[di] = uint8(cr >> 8)
				r.Pix[di+1] = uint8(cg >> 8)
				r.Pix[di+2] = uint8(cb >> 8)
				di += 3
			}
		}
	}

	return r
}

func stripAlpha(r *Raster, pix []uint8, stride int) {
	for y := 0; y < r.Height; y++ {
		si := y * stride
		di := y * r.Width * 3
		for x := 0; x < r.Width; x++ {
			r.Pix[di] = pix[si]
			r.Pix[di+1] = pix[si+1]
			r.Pix[di+2] = pix[si+2]
			si += 4
			di += 3
		}
	}
}

// EncodeImage writes r to path in the format named by the path's suffix.
func EncodeImage(path string, r *Raster) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}

	img := r.toRGBA()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		err = bmp.Encode(out, img)
	case ".png":
		err = png.Encode(out, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(out, img, &jpeg.Options{Quality: 100})
	case ".gif":
		err = gif.Encode(out, img, nil)
	default:
		err = fmt.Errorf("Unsupported output image format [%s]", filepath.Ext(path))
	}

	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}

// ValidateOutputPath checks that path has an encodable suffix and that its
// directory exists before any time is spent building an image.
func ValidateOutputPath(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp", ".png", ".jpg", ".jpeg", ".gif":
	default:
		return fmt.Errorf(
			"No recognized image suffix on output file [%s]", path)
	}

	fi, err := os.Stat(filepath.Dir(path))
	if err != nil || !fi.IsDir() {
		return fmt.Errorf(
			"Directory for output file [%s] does not exist", path)
	}

	if fi, err := os.Stat(path); err == nil && !fi.Mode().IsRegular() {
		return fmt.Errorf(
			"Output pathname [%s] exists but is not a regular file", path)
	}

	return nil
}
