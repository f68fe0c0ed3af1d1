// Package srt parses SubRip subtitle files, including the telemetry dialect
// that camera apps write as video sidecars (one timestamped block per frame
// interval, payload carrying capture time and GPS data).
package srt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMalformed signals a block that does not follow the SubRip structure
// (index line, timestamp-range line, payload lines, blank separator).
var ErrMalformed = errors.New("malformed srt block")

// MalformedPolicy decides what happens when a block fails to parse.
type MalformedPolicy string

const (
	// PolicyStrict aborts the parse on the first malformed block. Default.
	PolicyStrict MalformedPolicy = "strict"
	// PolicySkip drops malformed blocks and records a warning for each.
	PolicySkip MalformedPolicy = "skip"
)

// Entry is one subtitle block in file order.
type Entry struct {
	Index int
	Start time.Duration
	End   time.Duration
	Lines []string
}

// Warning describes a block skipped under PolicySkip.
type Warning struct {
	Block  int
	Reason string
}

// Reader scans entries one block at a time. It does not load the whole file;
// restart by constructing a new Reader over a fresh input.
type Reader struct {
	sc       *bufio.Scanner
	policy   MalformedPolicy
	warnings []Warning
	block    int
	started  bool
}

// NewReader returns a Reader over r with the given malformed-block policy.
// An empty policy means PolicyStrict.
func NewReader(r io.Reader, policy MalformedPolicy) *Reader {
	if policy == "" {
		policy = PolicyStrict
	}
	return &Reader{
		sc:     bufio.NewScanner(r),
		policy: policy,
	}
}

// Warnings returns blocks skipped so far under PolicySkip.
func (r *Reader) Warnings() []Warning {
	return r.warnings
}

// Next returns the next well-formed entry, io.EOF at end of input, or a
// wrapped ErrMalformed under PolicyStrict.
func (r *Reader) Next() (Entry, error) {
	for {
		line, ok := r.skipBlank()
		if !ok {
			return Entry{}, io.EOF
		}
		r.block++

		entry, err := r.readBlock(line)
		if err == nil {
			return entry, nil
		}
		if r.policy == PolicyStrict {
			return Entry{}, fmt.Errorf("block %d: %v: %w", r.block, err, ErrMalformed)
		}
		r.warnings = append(r.warnings, Warning{Block: r.block, Reason: err.Error()})
	}
}

// readBlock parses one block. On failure it leaves the reader positioned
// after the block's blank separator, so a malformed block never swallows
// lines of the block that follows it.
func (r *Reader) readBlock(indexLine string) (Entry, error) {
	index, err := strconv.Atoi(strings.TrimSpace(indexLine))
	if err != nil {
		r.skipToBlank()
		return Entry{}, fmt.Errorf("index line %q is not a number", strings.TrimSpace(indexLine))
	}

	tsLine, ok := r.nextLine()
	if !ok || strings.TrimSpace(tsLine) == "" {
		// A blank line here already closed the block.
		return Entry{}, fmt.Errorf("entry %d has no timestamp line", index)
	}
	start, end, err := parseRange(tsLine)
	if err != nil {
		r.skipToBlank()
		return Entry{}, fmt.Errorf("entry %d: %v", index, err)
	}

	var lines []string
	for {
		line, ok := r.nextLine()
		if !ok || strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	// The payload loop consumed the separator, valid payload or not.
	if len(lines) == 0 {
		return Entry{}, fmt.Errorf("entry %d has no payload", index)
	}

	return Entry{Index: index, Start: start, End: end, Lines: lines}, nil
}

func (r *Reader) nextLine() (string, bool) {
	if !r.sc.Scan() {
		return "", false
	}
	line := r.sc.Text()
	if !r.started {
		line = strings.TrimPrefix(line, "\uFEFF")
		r.started = true
	}
	return line, true
}

func (r *Reader) skipBlank() (string, bool) {
	for {
		line, ok := r.nextLine()
		if !ok {
			return "", false
		}
		if strings.TrimSpace(line) != "" {
			return line, true
		}
	}
}

func (r *Reader) skipToBlank() {
	for {
		line, ok := r.nextLine()
		if !ok || strings.TrimSpace(line) == "" {
			return
		}
	}
}

// ReadFile parses the whole file into entries in file order. Under
// PolicySkip the second return value lists skipped blocks.
func ReadFile(path string, policy MalformedPolicy) ([]Entry, []Warning, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := NewReader(file, policy)
	var entries []Entry
	for {
		entry, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("parse %s: %w", path, err)
		}
		entries = append(entries, entry)
	}
	return entries, reader.Warnings(), nil
}

func parseRange(line string) (time.Duration, time.Duration, error) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("timestamp line %q has no --> separator", strings.TrimSpace(line))
	}
	start, err := parseClock(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	end, err := parseClock(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// parseClock parses an SRT timestamp of the form HH:MM:SS,mmm.
func parseClock(s string) (time.Duration, error) {
	main, msPart, ok := strings.Cut(s, ",")
	if !ok {
		main, msPart, ok = strings.Cut(s, ".")
	}
	if !ok {
		return 0, fmt.Errorf("timestamp %q has no millisecond separator", s)
	}
	fields := strings.Split(main, ":")
	if len(fields) != 3 {
		return 0, fmt.Errorf("timestamp %q is not HH:MM:SS,mmm", s)
	}
	h, err1 := strconv.Atoi(fields[0])
	m, err2 := strconv.Atoi(fields[1])
	sec, err3 := strconv.Atoi(fields[2])
	ms, err4 := parseMillis(msPart)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return 0, fmt.Errorf("timestamp %q is not numeric", s)
	}
	if m > 59 || sec > 59 {
		return 0, fmt.Errorf("timestamp %q is out of range", s)
	}
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

// parseMillis reads a fractional-second field of 1 to 3 digits,
// interpreting it as a fraction: ",5" is 500ms, not 5ms.
func parseMillis(s string) (int, error) {
	if len(s) == 0 || len(s) > 3 {
		return 0, fmt.Errorf("millisecond field %q must be 1 to 3 digits", s)
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("millisecond field %q must be 1 to 3 digits", s)
		}
	}
	ms, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	for i := len(s); i < 3; i++ {
		ms *= 10
	}
	return ms, nil
}

// FormatClock renders a duration back into SRT HH:MM:SS,mmm form.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
