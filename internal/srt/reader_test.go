package srt

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSrt = `1
00:00:00,000 --> 00:00:01,000
2021-05-20 10:51:50
10°30'0.0"N, 20°15'0.0"W, 12.3m, 247.5°

2
00:00:01,000 --> 00:00:02,000
2021-05-20 10:51:51
10°30'0.0"N, 20°15'0.0"W, 12.4m, 248.0°

3
00:00:02,000 --> 00:00:03,000
2021-05-20 10:51:52
10°30'0.0"N, 20°15'0.0"W, 12.5m, 248.5°
`

const malformedMiddleSrt = `1
00:00:00,000 --> 00:00:01,000
first payload

2
not a timestamp line
second payload

3
00:00:02,000 --> 00:00:03,000
third payload
`

const emptyPayloadMiddleSrt = `1
00:00:00,000 --> 00:00:01,000
first payload

2
00:00:01,000 --> 00:00:02,000

3
00:00:02,000 --> 00:00:03,000
third payload
`

const missingTimestampMiddleSrt = `1
00:00:00,000 --> 00:00:01,000
first payload

2

3
00:00:02,000 --> 00:00:03,000
third payload
`

func writeSrt(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "video.srt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFileValid(t *testing.T) {
	entries, warnings, err := ReadFile(writeSrt(t, validSrt), PolicyStrict)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, entries, 3)

	assert.Equal(t, 1, entries[0].Index)
	assert.Equal(t, time.Duration(0), entries[0].Start)
	assert.Equal(t, time.Second, entries[0].End)
	assert.Equal(t, 2, entries[1].Index)
	assert.Equal(t, 3, entries[2].Index)
	assert.Equal(t, 2*time.Second, entries[2].Start)
	assert.Equal(t, 3*time.Second, entries[2].End)
	require.Len(t, entries[0].Lines, 2)
	assert.Equal(t, "2021-05-20 10:51:50", entries[0].Lines[0])
}

func TestReadFileStrictFailsOnMalformedBlock(t *testing.T) {
	_, _, err := ReadFile(writeSrt(t, malformedMiddleSrt), PolicyStrict)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestReadFileSkipCollectsWarnings(t *testing.T) {
	entries, warnings, err := ReadFile(writeSrt(t, malformedMiddleSrt), PolicySkip)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Index)
	assert.Equal(t, 3, entries[1].Index)

	require.Len(t, warnings, 1)
	assert.Equal(t, 2, warnings[0].Block)
	assert.Contains(t, warnings[0].Reason, "timestamp")
}

func TestReadFileSkipKeepsBlockAfterEmptyPayload(t *testing.T) {
	entries, warnings, err := ReadFile(writeSrt(t, emptyPayloadMiddleSrt), PolicySkip)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Index)
	assert.Equal(t, 3, entries[1].Index)

	require.Len(t, warnings, 1)
	assert.Equal(t, 2, warnings[0].Block)
	assert.Contains(t, warnings[0].Reason, "payload")
}

func TestReadFileSkipKeepsBlockAfterMissingTimestamp(t *testing.T) {
	entries, warnings, err := ReadFile(writeSrt(t, missingTimestampMiddleSrt), PolicySkip)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Index)
	assert.Equal(t, 3, entries[1].Index)

	require.Len(t, warnings, 1)
	assert.Equal(t, 2, warnings[0].Block)
}

func TestReadFileMissingPath(t *testing.T) {
	_, _, err := ReadFile(filepath.Join(t.TempDir(), "missing.srt"), PolicyStrict)
	assert.Error(t, err)
}

func TestReaderIsLazy(t *testing.T) {
	reader := NewReader(strings.NewReader(validSrt), PolicyStrict)

	first, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, first.Index)

	second, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, second.Index)
}

func TestReaderEOF(t *testing.T) {
	reader := NewReader(strings.NewReader(""), PolicyStrict)
	_, err := reader.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderStripsBOM(t *testing.T) {
	reader := NewReader(strings.NewReader("\uFEFF"+validSrt), PolicyStrict)
	entry, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Index)
}

func TestReaderStrictRejectsIndexGarbage(t *testing.T) {
	input := "one\n00:00:00,000 --> 00:00:01,000\npayload\n"
	reader := NewReader(strings.NewReader(input), PolicyStrict)
	_, err := reader.Next()
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestReaderStrictRejectsEmptyPayload(t *testing.T) {
	input := "1\n00:00:00,000 --> 00:00:01,000\n\n"
	reader := NewReader(strings.NewReader(input), PolicyStrict)
	_, err := reader.Next()
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"00:00:00,000", 0, true},
		{"00:00:01,500", 1500 * time.Millisecond, true},
		{"01:02:03,004", time.Hour + 2*time.Minute + 3*time.Second + 4*time.Millisecond, true},
		{"00:00:01.500", 1500 * time.Millisecond, true},
		{"00:00:01,5", 1500 * time.Millisecond, true},
		{"00:00:01,50", 1500 * time.Millisecond, true},
		{"00:00:01", 0, false},
		{"00:00:01,5000", 0, false},
		{"00:00:01,-50", 0, false},
		{"00:00:01,", 0, false},
		{"00:61:00,000", 0, false},
		{"aa:00:00,000", 0, false},
	}

	for _, tt := range tests {
		got, err := parseClock(tt.in)
		if !tt.ok {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00:00,000", "00:00:01,500", "01:02:03,004", "10:59:59,999"} {
		d, err := parseClock(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatClock(d))
	}
}
