package main

import (
	"fmt"
	"os"

	"github.com/drake/componentgrid/cmd/gridview/app"
)

func main() {
	if err := app.NewCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gridview:", err)
		os.Exit(1)
	}
}
