package spanbglib

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// Config supplies defaults for the command-line flags plus a few settings
// that have no flag. Every field is optional; the program runs fine with no
// config file at all.
type Config struct {
	// Sources are the default image files and directories when none are
	// given on the command line.
	Sources    []string
	OutputFile string
	LogFile    string
	// TempDirectory holds intermediate files for interactive previews.
	TempDirectory string
	// DatabaseDir enables the persistent least-recently-used picker for
	// random selection.
	DatabaseDir         string
	ImageFileExtensions []string
	ZoomSpline          *int
	Recursive           bool
	Sequential          bool
	OneImage            bool
	MaxErrorPercent     *float64
	FitImage            string
	ColorFill           string
	IntervalMinutes     *float64
	LogCurrent          string
}

var conf *Config

var tempDir string
var tempErr error
var tempOnce sync.Once

func GetConfig() (*Config, error) {
	if conf != nil {
		return conf, nil
	}

	return nil, fmt.Errorf("Init never called")
}

// Be sure to defer Cleanup() after calling this
func Init(path string) (*Config, error) {
	c := &Config{}

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}

	if path != "" {
		_, err := toml.DecodeFile(path, c)
		if err != nil {
			// A missing default config is fine, a missing explicit one or a
			// broken file is not.
			if explicit || !os.IsNotExist(err) {
				return nil, fmt.Errorf("Error reading config [%s]: %s", path, err)
			}
		}
	}

	conf = c
	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "spanbg", "spanbg.toml")
}

func (c *Config) validate() error {
	if c.TempDirectory != "" {
		fi, err := os.Stat(c.TempDirectory)
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			return fmt.Errorf("TempDirectory [%s] is not a directory", c.TempDirectory)
		}
	}

	if c.DatabaseDir != "" {
		fi, err := os.Stat(c.DatabaseDir)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		if err == nil && !fi.IsDir() {
			return fmt.Errorf("DatabaseDir [%s] is not a directory", c.DatabaseDir)
		}
	}

	if c.ZoomSpline != nil && (*c.ZoomSpline < 0 || *c.ZoomSpline > 5) {
		return fmt.Errorf("ZoomSpline %d is not in the range 0-5", *c.ZoomSpline)
	}

	if c.MaxErrorPercent != nil && *c.MaxErrorPercent < 0 {
		return fmt.Errorf("MaxErrorPercent must not be negative")
	}

	return nil
}

func TempDir() (string, error) {
	c, err := GetConfig()
	if err != nil {
		return "", err
	}

	tempOnce.Do(func() {
		tempDir, tempErr = ioutil.TempDir(c.TempDirectory, "spanbg")
	})

	return tempDir, tempErr
}

func Cleanup() error {
	// tempDir is private and can't be set outside of this package
	if tempDir != "" {
		return os.RemoveAll(tempDir)
	}
	return nil
}
