package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	lib "github.com/abarker/spanbg/lib"
	"github.com/awused/go-strpick/persistent"
	"github.com/urfave/cli/v2"
)

const outfile = "outfile"
const oneimage = "oneimage"
const fitimage = "fitimage"
const colorfill = "colorfill"
const percenterror = "percenterror"
const zoomspline = "zoomspline"
const sequential = "sequential"
const recursive = "recursive"
const dontapply = "dontapply"
const noclobber = "noclobber"
const reslist = "reslist"
const windowsOrigin = "windows-origin"
const x11 = "x11"
const interval = "interval"
const logcurrent = "logcurrent"
const unlocked = "unlocked"
const verbose = "verbose"

func setCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "set"
	cmd.Usage = "Select a wallpaper for each monitor, combine them into one " +
		"spanning image, and apply it"
	cmd.ArgsUsage = "IMAGE_FILE_OR_DIR..."
	cmd.Before = beforeFunc
	cmd.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    outfile,
			Aliases: []string{"o"},
			Usage: "Pathname of the combined output image, written in the " +
				"format named by its suffix. Silently overwritten unless " +
				"--noclobber is set",
		},
		&cli.BoolFlag{
			Name:    oneimage,
			Aliases: []string{"1"},
			Usage:   "Stretch a single image over all the displays",
		},
		&cli.StringFlag{
			Name:    fitimage,
			Aliases: []string{"f"},
			Usage: "Scale images to fully fit inside their display, padding " +
				"the uncovered area with the \"R,G,B\" color. The default is " +
				"to fill the display completely and crop the excess",
		},
		&cli.StringFlag{
			Name:    colorfill,
			Aliases: []string{"c"},
			Usage: "\"R,G,B\" color for canvas regions not covered by any " +
				"display",
		},
		&cli.Float64Flag{
			Name:    percenterror,
			Aliases: []string{"p"},
			Usage: "Reject images whose scaling error percentage exceeds " +
				"this. Zero demands an exact fit",
		},
		&cli.IntFlag{
			Name:    zoomspline,
			Aliases: []string{"z"},
			Value:   3,
			Usage: "Interpolation order for rescaling, 0-5. Lower orders " +
				"are faster, higher orders look better",
		},
		&cli.BoolFlag{
			Name:    sequential,
			Aliases: []string{"s"},
			Usage: "Assign images to displays in listed order instead of " +
				"randomly",
		},
		&cli.BoolFlag{
			Name:    recursive,
			Aliases: []string{"R"},
			Usage:   "Recursively search image directories",
		},
		&cli.BoolFlag{
			Name:    dontapply,
			Aliases: []string{"d"},
			Usage:   "Write the image file but don't set it as the background",
		},
		&cli.BoolFlag{
			Name:  noclobber,
			Usage: "Never overwrite an existing output file",
		},
		&cli.StringSliceFlag{
			Name:    reslist,
			Aliases: []string{"r"},
			Usage: "WxH+X+Y display specifiers, as in xrandr output, " +
				"replacing the system display lookup",
		},
		&cli.StringFlag{
			Name:    windowsOrigin,
			Aliases: []string{"w"},
			Usage: "\"X,Y\" top left position of the primary display. Only " +
				"needed with --reslist on Windows, where tiling wraps around " +
				"the primary display",
		},
		&cli.BoolFlag{
			Name:    x11,
			Aliases: []string{"x"},
			Usage: "Skip the primary-origin wrap even when the platform " +
				"would apply it",
		},
		&cli.Float64Flag{
			Name:    interval,
			Aliases: []string{"t"},
			Usage: "Minutes to sleep between iterations. Loops forever when " +
				"set, re-detecting displays and re-selecting images each time",
		},
		&cli.StringFlag{
			Name:    logcurrent,
			Aliases: []string{"L"},
			Usage:   "Write the names of the currently displayed images to FILE",
		},
		&cli.BoolFlag{
			Name:    unlocked,
			Aliases: []string{"u"},
			Usage: "Checks to see if the screen is unlocked and skips the " +
				"iteration if it isn't, so nothing changes behind a lock screen",
		},
		&cli.BoolFlag{
			Name:    verbose,
			Aliases: []string{"v"},
			Usage:   "Print more about progress and image selection",
		},
	}

	cmd.Action = setAction

	return cmd
}

func setAction(ctxt *cli.Context) error {
	conf, err := lib.GetConfig()
	checkErr(err)

	sources := ctxt.Args().Slice()
	if len(sources) == 0 {
		sources = conf.Sources
	}
	if len(sources) == 0 {
		checkErr(errors.New("No image files or directories given"))
	}

	outFile := ctxt.String(outfile)
	if outFile == "" {
		outFile = conf.OutputFile
	}
	if outFile == "" {
		checkErr(errors.New("Missing required output file, see --outfile"))
	}
	outFile, err = filepath.Abs(outFile)
	checkErr(err)
	checkErr(lib.ValidateOutputPath(outFile))

	if ctxt.Bool(noclobber) {
		if _, err := os.Stat(outFile); err == nil {
			log.Printf(
				"Output file [%s] already exists, nothing written", outFile)
			return nil
		}
	}

	opts := buildOptions(ctxt, conf)

	pool := lib.NewCandidatePool(
		sources, ctxt.Bool(recursive) || conf.Recursive, conf.ImageFileExtensions)

	if conf.DatabaseDir != "" && opts.Order == lib.OrderRandom {
		picker, err := persistent.NewPicker(conf.DatabaseDir)
		checkErr(err)
		defer picker.Close()

		// Order a freshly loaded pool through the persistent picker so
		// images that haven't been shown recently come out first. Paths the
		// picker remembers but that left the pool are dropped; duplicates
		// in the pool survive ranking.
		pool.SetRanker(func(paths []string) ([]string, error) {
			if err := picker.AddAll(paths); err != nil {
				return nil, err
			}

			ranked, err := picker.TryUniqueN(len(paths))
			if err != nil {
				return nil, err
			}

			counts := make(map[string]int, len(paths))
			for _, p := range paths {
				counts[p]++
			}

			out := make([]string, 0, len(paths))
			for _, p := range ranked {
				if counts[p] > 0 {
					counts[p]--
					out = append(out, p)
				}
			}
			for _, p := range paths {
				if counts[p] > 0 {
					counts[p]--
					out = append(out, p)
				}
			}

			return out, nil
		})
		// The ranked pool order carries the randomness, so drain it in order
		opts.Order = lib.OrderSequential
		if opts.Verbose {
			log.Printf("Drawing images least-recently-used first from [%s]",
				conf.DatabaseDir)
		}
	}

	var fixed *lib.Layout
	if specs := ctxt.StringSlice(reslist); len(specs) > 0 {
		fixed, err = lib.ParseResolutionList(specs)
		checkErr(err)

		if w := ctxt.String(windowsOrigin); w != "" {
			origin, err := lib.ParseXYOffset(w)
			checkErr(err)
			fixed.PrimaryOrigin = origin
			fixed.NeedsOriginWrap = true
		}
	}

	var desktop lib.Desktop
	if fixed == nil || !ctxt.Bool(dontapply) {
		desktop = lib.NewDesktop()
	}

	sleepMinutes := 0.0
	if ctxt.IsSet(interval) {
		sleepMinutes = ctxt.Float64(interval)
	} else if conf.IntervalMinutes != nil {
		sleepMinutes = *conf.IntervalMinutes
	}

	logFile := ctxt.String(logcurrent)
	if logFile == "" {
		logFile = conf.LogCurrent
	}

	for {
		if ctxt.Bool(unlocked) {
			locked, err := lib.CheckIfLocked()
			checkErr(err)
			if locked {
				if sleepMinutes <= 0 {
					// Silently exit, this isn't an error
					return nil
				}
				time.Sleep(time.Duration(sleepMinutes * float64(time.Minute)))
				continue
			}
		}

		layout := fixed
		if layout == nil {
			layout, err = desktop.Displays()
			checkErr(err)
		}
		if len(layout.Displays) == 0 {
			checkErr(lib.ErrNoDisplays)
		}
		if opts.Verbose {
			log.Printf("Detected %d displays", len(layout.Displays))
		}

		names, images := selectImages(pool, layout, opts)

		if logFile != "" {
			checkErr(writeCurrentLog(logFile, names))
		}

		canvas, err := lib.Compose(images, layout, opts)
		checkErr(err)

		checkErr(lib.EncodeImage(outFile, canvas))
		if opts.Verbose {
			log.Printf("Wrote the combined image to [%s]", outFile)
		}

		if !ctxt.Bool(dontapply) {
			checkErr(desktop.Apply(outFile))
		}

		if sleepMinutes <= 0 {
			break
		}
		if opts.Verbose {
			log.Printf("Sleeping for %g minutes", sleepMinutes)
		}
		time.Sleep(time.Duration(sleepMinutes * float64(time.Minute)))
	}

	return nil
}

func buildOptions(ctxt *cli.Context, conf *lib.Config) *lib.Options {
	o := &lib.Options{
		Order:          lib.OrderRandom,
		OneImage:       ctxt.Bool(oneimage) || conf.OneImage,
		ZoomSpline:     3,
		SkipOriginWrap: ctxt.Bool(x11),
		Verbose:        ctxt.Bool(verbose),
	}

	if ctxt.Bool(sequential) || conf.Sequential {
		o.Order = lib.OrderSequential
	}

	fit := ctxt.String(fitimage)
	if fit == "" {
		fit = conf.FitImage
	}
	if fit != "" {
		c, err := lib.ParseRGB(fit)
		checkErr(err)
		o.FitImage = c
	}

	fill := ctxt.String(colorfill)
	if fill == "" {
		fill = conf.ColorFill
	}
	if fill != "" {
		c, err := lib.ParseRGB(fill)
		checkErr(err)
		o.ColorFill = c
	}

	if ctxt.IsSet(percenterror) {
		pct := ctxt.Float64(percenterror)
		if pct < 0 {
			checkErr(fmt.Errorf("Negative error percentage %g", pct))
		}
		o.MaxErrorPercent = &pct
	} else if conf.MaxErrorPercent != nil {
		o.MaxErrorPercent = conf.MaxErrorPercent
	}

	if ctxt.IsSet(zoomspline) {
		o.ZoomSpline = ctxt.Int(zoomspline)
	} else if conf.ZoomSpline != nil {
		o.ZoomSpline = *conf.ZoomSpline
	}
	if o.ZoomSpline < 0 || o.ZoomSpline > 5 {
		checkErr(fmt.Errorf(
			"The spline order %d is not in the range 0-5", o.ZoomSpline))
	}

	return o
}

// selectImages draws one image per display, or a single one spanning the
// whole bounding box in one-image mode. Too few acceptable images is fatal.
func selectImages(
	pool *lib.CandidatePool, layout *lib.Layout, opts *lib.Options) (
	[]string, []*lib.Raster) {

	n := len(layout.Displays)
	var union lib.Rect
	if opts.OneImage {
		h, w, err := lib.BoundingBox(layout.Displays)
		checkErr(err)
		union = lib.Rect{Height: h, Width: w}
		n = 1
	}

	names := make([]string, 0, n)
	images := make([]*lib.Raster, 0, n)
	for i := 0; i < n; i++ {
		disp := layout.Displays[i]
		if opts.OneImage {
			disp = union
		}

		name, img, err := pool.SelectNext(disp, layout.Displays, opts)
		if err != nil {
			checkErr(fmt.Errorf(
				"No suitable image files found for display %d: %s", i, err))
		}
		if opts.Verbose {
			log.Printf("Image selected for display %d is [%s]", i, name)
		}

		names = append(names, name)
		images = append(images, img)
	}

	return names, images
}

func writeCurrentLog(path string, names []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	for i, name := range names {
		if _, err = fmt.Fprintf(f, "Image on display %d is %s\n", i, name); err != nil {
			f.Close()
			return err
		}
	}

	return f.Close()
}
