package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/opencam-utils/shotmeta/internal/app"
	"github.com/opencam-utils/shotmeta/internal/srt"
)

func main() {
	var opts app.SrtOptions
	var policy string

	pflag.StringVarP(&opts.SrtPath, "input", "i", "", "Path to a telemetry .srt file")
	pflag.StringVarP(&opts.CSVPath, "csv", "c", "", "Optional CSV output path for the parsed entries")
	pflag.StringVar(&opts.GPXPath, "gpx", "", "Optional GPX output path built from telemetry entries")
	pflag.StringVar(&policy, "on-malformed", "strict", "Malformed-block policy: strict (fail) or skip (warn and continue)")
	pflag.StringVarP(&opts.LogLevel, "log-level", "l", "info", "Logging level for the log file")
	pflag.StringVar(&opts.LogFile, "log-file", "", "Optional log file path (defaults to a file next to the binary)")

	pflag.Parse()

	opts.Policy = srt.MalformedPolicy(policy)
	opts.PrintSummary = true

	ctx := context.Background()
	summary, err := app.RunSrt(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shotmeta-srt failed: %v\n", err)
		os.Exit(1)
	}
	for _, w := range summary.SkippedBlocks {
		fmt.Fprintf(os.Stderr, "skipped block %d: %s\n", w.Block, w.Reason)
	}
}
