package main

import (
	"fmt"

	lib "github.com/abarker/spanbg/lib"
	"github.com/urfave/cli/v2"
)

func displaysCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "displays"
	cmd.Usage = "Print the detected display layout and the size of the " +
		"spanning image it needs"
	cmd.Before = beforeFunc

	cmd.Action = displaysAction

	return cmd
}

func displaysAction(ctxt *cli.Context) error {
	layout, err := lib.NewDesktop().Displays()
	checkErr(err)

	if len(layout.Displays) == 0 {
		checkErr(lib.ErrNoDisplays)
	}

	for i, d := range layout.Displays {
		fmt.Printf("Display %d: %dx%d+%d+%d\n",
			i, d.Width, d.Height, d.XOffset, d.YOffset)
	}

	height, width, err := lib.BoundingBox(layout.Displays)
	checkErr(err)
	fmt.Printf("Spanning image: %dx%d\n", width, height)

	if layout.NeedsOriginWrap {
		fmt.Printf("Primary display origin: %d,%d\n",
			layout.PrimaryOrigin.X, layout.PrimaryOrigin.Y)
	}

	return nil
}
