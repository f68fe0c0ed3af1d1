package app

import (
	"github.com/opencam-utils/shotmeta/internal/record"
	"github.com/opencam-utils/shotmeta/internal/srt"
)

// FileResult is the per-file outcome of a batch run.
type FileResult struct {
	Path    string
	Status  string // processed, empty, skipped, failed
	Message string
}

// Summary aggregates a batch run: extracted records in input order plus the
// parallel per-file annotations.
type Summary struct {
	Processed int
	Empty     int
	Skipped   int
	Failed    int
	Records   []record.Record
	Files     []FileResult
}

// SrtSummary aggregates an SRT run.
type SrtSummary struct {
	Entries       int
	SkippedBlocks []srt.Warning
	Records       []record.Record
}
