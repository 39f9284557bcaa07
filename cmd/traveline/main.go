// Command traveline is an interactive terminal client for the Traveline
// travel-planning service.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"traveline/local-app/internal/cli"
)

func main() {
	configPath := flag.String("config", "", "path to the JSON config file (default $TRAVELINE_CONFIG or ./data/config.json)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-config path] [script...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := bootstrap(*configPath, flag.Args()); err != nil && !errors.Is(err, cli.ErrExit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
