package app

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gogpx "github.com/tkrajina/gpxgo/gpx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencam-utils/shotmeta/internal/srt"
)

const telemetrySrt = `1
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

const brokenSrt = `1
00:00:00,000 --> 00:00:01,000
2021-05-20 10:51:50
10°30'0.0"N, 20°15'0.0"W, 12.3m, 247.5°

2
bogus
payload

3
00:00:02,000 --> 00:00:03,000
2021-05-20 10:51:52
10°30'0.0"N, 20°15'0.0"W, 12.5m, 248.5°
`

func writeSrtFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "video.srt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunSrtExportsCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "out.csv")

	summary, err := RunSrt(context.Background(), SrtOptions{
		SrtPath: writeSrtFile(t, telemetrySrt),
		CSVPath: csvPath,
		LogFile: testLogFile(t),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Entries)
	assert.Empty(t, summary.SkippedBlocks)
	require.Len(t, summary.Records, 3)
	assert.Equal(t, "1", summary.Records[0].Get("index"))
	assert.Equal(t, "3", summary.Records[2].Get("index"))

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"index", "start", "end", "datetime", "lat", "lng", "altitude", "heading"}, rows[0])
	assert.Equal(t, "00:00:01,000", rows[2][1])
	assert.Equal(t, "10.500000", rows[1][4])
}

func TestRunSrtStrictFailsOnBrokenBlock(t *testing.T) {
	_, err := RunSrt(context.Background(), SrtOptions{
		SrtPath: writeSrtFile(t, brokenSrt),
		LogFile: testLogFile(t),
	})
	assert.ErrorIs(t, err, srt.ErrMalformed)
}

func TestRunSrtSkipPolicyCollectsWarnings(t *testing.T) {
	summary, err := RunSrt(context.Background(), SrtOptions{
		SrtPath: writeSrtFile(t, brokenSrt),
		Policy:  srt.PolicySkip,
		LogFile: testLogFile(t),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Entries)
	require.Len(t, summary.SkippedBlocks, 1)
	assert.Equal(t, 2, summary.SkippedBlocks[0].Block)
}

func TestRunSrtExportsGPX(t *testing.T) {
	gpxPath := filepath.Join(t.TempDir(), "track.gpx")

	_, err := RunSrt(context.Background(), SrtOptions{
		SrtPath: writeSrtFile(t, telemetrySrt),
		GPXPath: gpxPath,
		LogFile: testLogFile(t),
	})
	require.NoError(t, err)

	parsed, err := gogpx.ParseFile(gpxPath)
	require.NoError(t, err)
	require.Len(t, parsed.Tracks, 1)
	assert.Len(t, parsed.Tracks[0].Segments[0].Points, 3)
}

func TestRunSrtRejectsUnknownPolicy(t *testing.T) {
	_, err := RunSrt(context.Background(), SrtOptions{
		SrtPath: writeSrtFile(t, telemetrySrt),
		Policy:  "lenient",
		LogFile: testLogFile(t),
	})
	assert.Error(t, err)
}

func TestRunSrtMissingFile(t *testing.T) {
	_, err := RunSrt(context.Background(), SrtOptions{
		SrtPath: filepath.Join(t.TempDir(), "missing.srt"),
		LogFile: testLogFile(t),
	})
	assert.Error(t, err)
}
