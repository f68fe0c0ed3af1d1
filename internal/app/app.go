package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/nir0k/logger"
	"github.com/schollz/progressbar/v3"

	"github.com/opencam-utils/shotmeta/internal/export"
	"github.com/opencam-utils/shotmeta/internal/media"
)

// Run is the main entry point for the image batch workflow: collect input
// files, read EXIF per file, aggregate records, optionally export CSV/GPX.
// One unreadable file becomes a per-file annotation and never aborts the
// batch; only collection and export failures are fatal.
func Run(ctx context.Context, opts Options) (*Summary, error) {
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

	infof("Starting shotmeta batch with input=%s recursive=%t csv=%s gpx=%s", opts.InputPath, opts.Recursive, opts.CSVPath, opts.GPXPath)

	files, err := media.CollectFiles(opts.InputPath, opts.Recursive)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to process")
	}

	var bar *progressbar.ProgressBar
	if opts.ShowProgress {
		bar = progressbar.Default(int64(len(files)), "reading EXIF")
	}

	sum := &Summary{}

	for _, path := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if bar != nil {
			bar.Add(1)
		}

		if !media.SupportedImage(path) {
			warnf("Skipping non-image file: %s", path)
			sum.Skipped++
			sum.Files = append(sum.Files, FileResult{Path: path, Status: "skipped", Message: "Not a supported image"})
			continue
		}

		rec, err := media.ReadImage(path)
		if err != nil {
			if !errors.Is(err, media.ErrUnreadable) {
				return nil, err
			}
			warnf("Failed to read metadata for %s: %v", path, err)
			sum.Failed++
			sum.Files = append(sum.Files, FileResult{Path: path, Status: "failed", Message: err.Error()})
			continue
		}

		status := "processed"
		if rec.Empty() {
			// Valid image without an EXIF block; keep the row so CSV output
			// stays aligned with the input set.
			status = "empty"
			sum.Empty++
		} else {
			sum.Processed++
		}
		rec.Set("imgname", filepath.Base(path))

		sum.Records = append(sum.Records, rec)
		sum.Files = append(sum.Files, FileResult{Path: path, Status: status})
		infof("Read %s: %d fields", path, rec.Len())
	}

	if opts.CSVPath != "" {
		if err := export.SaveCSV(opts.CSVPath, sum.Records); err != nil {
			return nil, err
		}
		infof("CSV saved as %s", opts.CSVPath)
	}
	if opts.GPXPath != "" {
		if err := export.SaveGPX(opts.GPXPath, trackName(opts.InputPath), sum.Records); err != nil {
			return nil, err
		}
		infof("GPX saved as %s", opts.GPXPath)
	}

	line := fmt.Sprintf("Finished. processed=%d empty=%d skipped=%d failed=%d", sum.Processed, sum.Empty, sum.Skipped, sum.Failed)
	if opts.PrintSummary {
		fmt.Println(line)
	}
	infof("%s", line)
	return sum, nil
}

func trackName(input string) string {
	base := filepath.Base(filepath.Clean(input))
	if base == "." || base == string(filepath.Separator) {
		return "shotmeta"
	}
	return base
}
