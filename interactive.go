package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	lib "github.com/abarker/spanbg/lib"
	prompt "github.com/c-bata/go-prompt"
	"github.com/urfave/cli/v2"
)

func interactiveCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "interactive"
	cmd.Usage = "Interactively preview a single image on every display to " +
		"quickly iterate on your settings."
	cmd.ArgsUsage = "FILE"
	cmd.Before = beforeFunc

	cmd.Action = interactiveAction

	return cmd
}

func interactiveAction(ctxt *cli.Context) error {
	if ctxt.NArg() == 0 {
		checkErr(errors.New("Missing input file"))
	}

	w, err := filepath.Abs(ctxt.Args().First())
	checkErr(err)

	// Large buffered channel so it doesn't block signals if it's busy
	sigs := make(chan os.Signal, 100)
	promptChan := make(chan struct{}, 1)
	inputChan := make(chan string)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGHUP)

	go func() {
		promptUntilDone(w, inputChan)
		promptChan <- struct{}{}
	}()

	for {
		select {
		case <-promptChan:
			return nil
		case <-sigs:
			// We need to make sure we clean up, so consume sigint
			inputChan <- "exit"
		}
	}
}

func completer(d prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{
		{Text: "exit", Description: "Exit the program"},
		{Text: "print", Description: "Print the settings to be copied into the" +
			" config file"},
		{Text: "reset", Description: "Reset all settings"},
		{Text: "fit", Description: "Fit images inside their displays, padding" +
			" with the \"R,G,B\" colour"},
		{Text: "cover", Description: "Fill each display completely, cropping" +
			" the excess"},
		{Text: "fill", Description: "Set the \"R,G,B\" colour for canvas" +
			" regions no display covers"},
		{Text: "nofill", Description: "Clear the uncovered-region colour"},
		{Text: "spline", Description: "Set the interpolation order, 0-5"},
		{Text: "oneimage", Description: "Toggle stretching one image over all" +
			" the displays"},
	}
	return prompt.FilterHasPrefix(s, d.TextBeforeCursor(), true)
}

func printOptions(o *lib.Options) {
	if o.FitImage != nil {
		fmt.Printf("FitImage = '%d,%d,%d'\n",
			o.FitImage.R, o.FitImage.G, o.FitImage.B)
	}

	if o.ColorFill != nil {
		fmt.Printf("ColorFill = '%d,%d,%d'\n",
			o.ColorFill.R, o.ColorFill.G, o.ColorFill.B)
	}

	if o.ZoomSpline != 3 {
		fmt.Printf("ZoomSpline = %d\n", o.ZoomSpline)
	}

	if o.OneImage {
		fmt.Printf("OneImage = true\n")
	}
}

func setRGB(toSet **lib.RGB) func(string, string) {
	return func(s, p string) {
		input := strings.TrimPrefix(s, p)
		c, err := lib.ParseRGB(input)
		if err != nil {
			fmt.Printf("Invalid input \"%s\"\n", input)
			return
		}
		*toSet = c
	}
}

func setSpline(toSet *int) func(string, string) {
	return func(s, p string) {
		input := strings.TrimPrefix(s, p)
		n, err := strconv.Atoi(input)
		if err != nil || n < 0 || n > 5 {
			fmt.Printf("Invalid input \"%s\"\n", input)
			return
		}
		*toSet = n
	}
}

func promptUntilDone(wallpaper string, inputChan chan string) {
	opts := &lib.Options{ZoomSpline: 3}
	executors := map[string]func(string, string){
		"fit ":    setRGB(&opts.FitImage),
		"f ":      setRGB(&opts.FitImage),
		"fill ":   setRGB(&opts.ColorFill),
		"c ":      setRGB(&opts.ColorFill),
		"spline ": setSpline(&opts.ZoomSpline),
		"z ":      setSpline(&opts.ZoomSpline),
	}

	exit := prompt.OptionAddKeyBind(prompt.KeyBind{
		Key: prompt.ControlC,
		Fn: func(b *prompt.Buffer) {
			inputChan <- "exit"
		},
	})

	desktop := lib.NewDesktop()
	layout, err := desktop.Displays()
	checkErr(err)

	if len(layout.Displays) == 0 {
		log.Println("No displays detected.")
		return
	}

	img, err := lib.DecodeImage(wallpaper)
	checkErr(err)

	fmt.Println("Previewing...")
	interactivePreview(img, layout, desktop, opts)

PromptLoop:
	for {
		go func() {
			// prompt.Input is blocking, synchronous, and provides no way to abort it
			inputChan <- strings.ToLower(prompt.Input("> ", completer, exit))
		}()
		in := <-inputChan
		if in == "exit" {
			return
		}
		if in == "print" {
			printOptions(opts)
			continue
		}

		switch in {
		case "reset":
			opts = &lib.Options{ZoomSpline: 3}
		case "cover":
			opts.FitImage = nil
		case "nofill":
			opts.ColorFill = nil
		case "oneimage", "1":
			opts.OneImage = !opts.OneImage
		default:
			// Very naive, but adequate
			for s, e := range executors {
				if strings.HasPrefix(in, s) {
					e(in, s)

					interactivePreview(img, layout, desktop, opts)
					continue PromptLoop
				}
			}

			fmt.Println("Unknown command")
			continue
		}

		interactivePreview(img, layout, desktop, opts)
	}
}

func interactivePreview(
	img *lib.Raster, layout *lib.Layout, desktop lib.Desktop, o *lib.Options) {

	defer func() {
		r := recover()
		if r != nil {
			fmt.Println("Unexpected error: ", r)
		}
	}()

	n := len(layout.Displays)
	if o.OneImage {
		n = 1
	}
	images := make([]*lib.Raster, n)
	for i := range images {
		images[i] = img
	}

	canvas, err := lib.Compose(images, layout, o)
	checkErr(err)

	td, err := lib.TempDir()
	checkErr(err)
	out := filepath.Join(td, "preview.png")

	checkErr(lib.EncodeImage(out, canvas))
	checkErr(desktop.Apply(out))
}
