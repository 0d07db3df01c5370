package spanbglib

import (
	"errors"
	"log"
)

// SelectOrder controls how candidates are drawn from the pool.
type SelectOrder int

const (
	// OrderRandom draws uniformly at random without replacement.
	OrderRandom SelectOrder = iota
	// OrderSequential always draws the first remaining entry, preserving
	// the original pool order.
	OrderSequential
)

var ErrPoolExhausted = errors.New("No suitable image files found")

// SelectNext draws the next acceptable image for the display disp. A local
// index set tracks the candidates tried during this call; the pool itself
// only loses the one entry that is finally accepted, so a path listed twice
// in the sources stays eligible twice per cycle. The pool is reloaded at
// most once per call when the index set runs dry; if that still yields no
// acceptable candidate the selector gives up with ErrPoolExhausted.
func (p *CandidatePool) SelectNext(disp Rect, all []Rect, o *Options) (string, *Raster, error) {
	indices := make([]int, len(p.entries))
	for i := range indices {
		indices[i] = i
	}
	reloaded := false

	for {
		if len(indices) == 0 {
			if reloaded {
				return "", nil, ErrPoolExhausted
			}
			reloaded = true

			if err := p.Reload(); err != nil {
				return "", nil, err
			}
			indices = indices[:0]
			for i := range p.entries {
				indices = append(indices, i)
			}
			if o.Verbose {
				log.Printf("Loaded the image list, found %d filenames", len(p.entries))
			}
			continue
		}

		k := 0
		if o.Order == OrderRandom {
			k = p.rng.Intn(len(indices))
		}
		idx := indices[k]
		indices = append(indices[:k], indices[k+1:]...)

		path := p.entries[idx]
		img, err := DecodeImage(path)
		if err != nil {
			log.Printf("The file [%s] cannot be read as an image, ignoring it: %s",
				path, err)
			continue
		}

		if o.MaxErrorPercent != nil {
			plan := CalculateScaling(img.Height, img.Width, disp, all, o)
			pct := plan.ErrFraction * 100
			if pct > *o.MaxErrorPercent {
				if o.Verbose {
					log.Printf("Error percentage %.1f too high, rejecting [%s]", pct, path)
				}
				continue
			}
			if o.Verbose {
				log.Printf("Error percentage %.1f, accepting [%s]", pct, path)
			}
		}

		p.Remove(idx)
		return path, img, nil
	}
}
