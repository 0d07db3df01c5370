package spanbglib

import (
	"fmt"
	"io/ioutil"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CandidatePool owns the working list of selectable image paths. Entries are
// consumed as they are selected and the whole list is re-enumerated from the
// source arguments when it runs dry, so every image is used once per cycle
// and directory changes are picked up on reload.
type CandidatePool struct {
	sources   []string
	recursive bool
	suffixes  []string
	entries   []string
	// rank reorders a freshly loaded list, e.g. to bias selection toward
	// least-recently-used images.
	rank func([]string) ([]string, error)
	rng  *rand.Rand
}

func NewCandidatePool(sources []string, recursive bool, suffixes []string) *CandidatePool {
	if len(suffixes) == 0 {
		suffixes = defaultImageSuffixes
	}

	return &CandidatePool{
		sources:   sources,
		recursive: recursive,
		suffixes:  suffixes,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRanker installs a hook that reorders the pool after every (re)load.
func (p *CandidatePool) SetRanker(rank func([]string) ([]string, error)) {
	p.rank = rank
}

func (p *CandidatePool) Len() int {
	return len(p.entries)
}

// Remove permanently consumes the entry at index i, until the next reload.
func (p *CandidatePool) Remove(i int) {
	p.entries = append(p.entries[:i], p.entries[i+1:]...)
}

// Reload re-enumerates the source files and directories. Directory entries
// come back sorted so sequential selection is deterministic.
func (p *CandidatePool) Reload() error {
	var files []string

	for _, src := range p.sources {
		abs, err := expandPath(src)
		if err != nil {
			return err
		}

		fi, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("Error reading image source [%s]: %s", src, err)
		}

		if fi.IsDir() {
			if p.recursive {
				err = filepath.Walk(abs, func(path string, f os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if f.Mode().IsRegular() && HasImageSuffix(path, p.suffixes) {
						files = append(files, path)
					}
					return nil
				})
				if err != nil {
					return err
				}
			} else {
				infos, err := ioutil.ReadDir(abs)
				if err != nil {
					return err
				}
				for _, f := range infos {
					if f.Mode().IsRegular() && HasImageSuffix(f.Name(), p.suffixes) {
						files = append(files, filepath.Join(abs, f.Name()))
					}
				}
			}
		} else if fi.Mode().IsRegular() {
			// Explicit files still go through the suffix filter; anything
			// else is silently ignored like the directory case.
			if HasImageSuffix(abs, p.suffixes) {
				files = append(files, abs)
			}
		}
	}

	if p.rank != nil {
		ranked, err := p.rank(files)
		if err != nil {
			return err
		}
		files = ranked
	}

	p.entries = files
	return nil
}

func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	return filepath.Abs(path)
}
