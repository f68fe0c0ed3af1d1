package srt

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/opencam-utils/shotmeta/internal/record"
)

// OpenCamera telemetry payload: a capture-time line followed by a location
// line like `53°20'15.1"N, 6°15'57.9"W, 12.3m, 247.5°`.
var locationRe = regexp.MustCompile(
	`^(\d{1,3})°(\d{1,2})'([0-9.]+)"([NS])[,\s]+(\d{1,3})°(\d{1,2})'([0-9.]+)"([EW])[,\s]+(-?[0-9.]+)\s*m[,\s]+(-?[0-9.]+)°?$`)

const payloadTimeLayout = "2006-01-02 15:04:05"

// EntryRecord flattens one entry into a metadata record. Every record gets
// index/start/end fields; when the payload matches the telemetry dialect the
// capture time and decoded GPS fields are added, otherwise the raw payload is
// kept as a single text field.
func EntryRecord(e Entry) record.Record {
	rec := record.New()
	rec.Set("index", strconv.Itoa(e.Index))
	rec.Set("start", FormatClock(e.Start))
	rec.Set("end", FormatClock(e.End))

	if tel, ok := parseTelemetry(e.Lines); ok {
		rec.Set("datetime", tel.Datetime)
		rec.Set("lat", formatCoord(tel.Lat))
		rec.Set("lng", formatCoord(tel.Lng))
		rec.Set("altitude", strconv.FormatFloat(tel.Altitude, 'f', 1, 64))
		rec.Set("heading", strconv.FormatFloat(tel.Heading, 'f', 1, 64))
		return rec
	}

	rec.Set("text", strings.Join(e.Lines, "\n"))
	return rec
}

type telemetry struct {
	Datetime string
	Lat      float64
	Lng      float64
	Altitude float64
	Heading  float64
}

func parseTelemetry(lines []string) (telemetry, bool) {
	if len(lines) < 2 {
		return telemetry{}, false
	}

	datetime := strings.TrimSpace(lines[0])
	if _, err := time.Parse(payloadTimeLayout, datetime); err != nil {
		return telemetry{}, false
	}

	m := locationRe.FindStringSubmatch(strings.TrimSpace(lines[1]))
	if m == nil {
		return telemetry{}, false
	}

	lat, err1 := dmsToDecimal(m[1], m[2], m[3], m[4])
	lng, err2 := dmsToDecimal(m[5], m[6], m[7], m[8])
	alt, err3 := strconv.ParseFloat(m[9], 64)
	heading, err4 := strconv.ParseFloat(m[10], 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return telemetry{}, false
	}

	return telemetry{
		Datetime: datetime,
		Lat:      lat,
		Lng:      lng,
		Altitude: alt,
		Heading:  heading,
	}, true
}

// dmsToDecimal converts degree/minute/second strings and a hemisphere
// reference into signed decimal degrees, rounded to 6 places.
func dmsToDecimal(deg, min, sec, ref string) (float64, error) {
	d, err := strconv.ParseFloat(deg, 64)
	if err != nil {
		return 0, err
	}
	m, err := strconv.ParseFloat(min, 64)
	if err != nil {
		return 0, err
	}
	s, err := strconv.ParseFloat(sec, 64)
	if err != nil {
		return 0, err
	}

	val := d + m/60.0 + s/3600.0
	if ref == "S" || ref == "W" {
		val = -val
	}
	return math.Round(val*1e6) / 1e6, nil
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%.6f", v)
}
