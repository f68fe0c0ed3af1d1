// Package export serializes aggregated metadata records to tabular and
// track formats.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/opencam-utils/shotmeta/internal/record"
)

// ErrWrite signals that the output path could not be created or written.
var ErrWrite = errors.New("output not writable")

// FieldUnion returns the union of field names across records, in first-seen
// order. This is the CSV header and the single place where heterogeneous
// record shapes are reconciled into a fixed-width table.
func FieldUnion(records []record.Record) []string {
	seen := make(map[string]struct{})
	var union []string
	for _, rec := range records {
		for _, name := range rec.Names() {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			union = append(union, name)
		}
	}
	return union
}

// WriteCSV writes a header row of the field union followed by one row per
// record, with empty cells for fields a record does not carry. Output is
// deterministic for a given record sequence.
func WriteCSV(w io.Writer, records []record.Record) error {
	union := FieldUnion(records)

	cw := csv.NewWriter(w)
	if err := cw.Write(union); err != nil {
		return fmt.Errorf("write header (%v): %w", err, ErrWrite)
	}

	row := make([]string, len(union))
	for _, rec := range records {
		for i, name := range union {
			row[i] = rec.Get(name)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row (%v): %w", err, ErrWrite)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv (%v): %w", err, ErrWrite)
	}
	return nil
}

// SaveCSV creates or overwrites the file at path with the CSV rendering of
// records.
func SaveCSV(path string, records []record.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s (%v): %w", path, err, ErrWrite)
	}

	if err := WriteCSV(file, records); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s (%v): %w", path, err, ErrWrite)
	}
	return nil
}
