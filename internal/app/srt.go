package app

import (
	"context"
	"fmt"

	"github.com/nir0k/logger"

	"github.com/opencam-utils/shotmeta/internal/export"
	"github.com/opencam-utils/shotmeta/internal/record"
	"github.com/opencam-utils/shotmeta/internal/srt"
)

// RunSrt parses one telemetry .srt file into records and optionally exports
// them to CSV/GPX. Malformed-block handling follows opts.Policy.
func RunSrt(ctx context.Context, opts SrtOptions) (*SrtSummary, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cfg := logger.LogConfig{
		FilePath:       opts.LogFile,
		Format:         "standard",
		FileLevel:      opts.LogLevel,
		ConsoleLevel:   "fatal",
		ConsoleOutput:  false,
		EnableRotation: true,
		RotationConfig: logger.RotationConfig{
			MaxSize:    25,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		},
	}
	logInstance, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	infof := logInstance.Infof
	warnf := logInstance.Warningf

	infof("Starting shotmeta srt with input=%s policy=%s csv=%s gpx=%s", opts.SrtPath, opts.Policy, opts.CSVPath, opts.GPXPath)

	entries, warnings, err := srt.ReadFile(opts.SrtPath, opts.Policy)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		warnf("Skipped malformed block %d: %s", w.Block, w.Reason)
	}

	records := make([]record.Record, 0, len(entries))
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		records = append(records, srt.EntryRecord(entry))
	}

	if opts.CSVPath != "" {
		if err := export.SaveCSV(opts.CSVPath, records); err != nil {
			return nil, err
		}
		infof("CSV saved as %s", opts.CSVPath)
	}
	if opts.GPXPath != "" {
		if err := export.SaveGPX(opts.GPXPath, trackName(opts.SrtPath), records); err != nil {
			return nil, err
		}
		infof("GPX saved as %s", opts.GPXPath)
	}

	line := fmt.Sprintf("Finished. entries=%d skipped_blocks=%d", len(entries), len(warnings))
	if opts.PrintSummary {
		fmt.Println(line)
	}
	infof("%s", line)

	return &SrtSummary{
		Entries:       len(entries),
		SkippedBlocks: warnings,
		Records:       records,
	}, nil
}
