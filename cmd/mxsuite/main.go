package main

import (
	"fmt"
	"os"

	"github.com/fossas/mxsuite/cmd/mxsuite/app"
	"github.com/fossas/mxsuite/cmd/mxsuite/display"
	"github.com/fossas/mxsuite/errors"
)

// App is the mxsuite application.
var App = app.New()

func main() {
	err := App.Run(os.Args)
	if err != nil {
		display.ClearProgress()
		fmt.Fprint(os.Stderr, errors.Render(err))
		if errors.TypeOf(err) == errors.Unknown {
			fmt.Fprintf(os.Stderr, "\nDebug log: %s\n", display.File())
		}
		os.Exit(1)
	}
}
