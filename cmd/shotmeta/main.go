package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/opencam-utils/shotmeta/internal/app"
)

func main() {
	var opts app.Options

	pflag.StringVarP(&opts.InputPath, "input", "i", "", "Path to an image file, directory, or glob pattern")
	pflag.BoolVarP(&opts.Recursive, "recursive", "r", false, "Scan subdirectories when the input is a folder")
	pflag.StringVarP(&opts.CSVPath, "csv", "c", "", "Optional CSV output path for the aggregated metadata")
	pflag.StringVar(&opts.GPXPath, "gpx", "", "Optional GPX output path built from geotagged records")
	pflag.StringVarP(&opts.LogLevel, "log-level", "l", "info", "Logging level for the log file")
	pflag.StringVar(&opts.LogFile, "log-file", "", "Optional log file path (defaults to a file next to the binary)")
	pflag.BoolVarP(&opts.ShowProgress, "progress", "p", false, "Show a progress bar while reading the batch")

	pflag.Parse()

	opts.PrintSummary = true

	ctx := context.Background()
	if _, err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "shotmeta failed: %v\n", err)
		os.Exit(1)
	}
}
