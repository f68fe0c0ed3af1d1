package export

import (
	"fmt"
	"os"
	"strconv"
	"time"

	gogpx "github.com/tkrajina/gpxgo/gpx"

	"github.com/opencam-utils/shotmeta/internal/record"
)

const gpxTimeLayout = "2006-01-02 15:04:05"

// BuildTrack assembles a single-segment GPX track from the records that
// carry lat/lng fields, in sequence order. Altitude and capture time are
// attached when present. Returns the document and the number of points used.
func BuildTrack(name string, records []record.Record) (*gogpx.GPX, int) {
	segment := gogpx.GPXTrackSegment{}

	for _, rec := range records {
		latStr, okLat := rec.Lookup("lat")
		lngStr, okLng := rec.Lookup("lng")
		if !okLat || !okLng {
			continue
		}
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			continue
		}
		lng, err := strconv.ParseFloat(lngStr, 64)
		if err != nil {
			continue
		}

		point := gogpx.GPXPoint{
			Point: gogpx.Point{
				Latitude:  lat,
				Longitude: lng,
			},
		}
		if altStr, ok := rec.Lookup("altitude"); ok {
			if alt, err := strconv.ParseFloat(altStr, 64); err == nil {
				point.Elevation = *gogpx.NewNullableFloat64(alt)
			}
		}
		if dtStr, ok := rec.Lookup("datetime"); ok {
			if ts, err := time.Parse(gpxTimeLayout, dtStr); err == nil {
				point.Timestamp = ts.UTC()
			}
		}

		segment.Points = append(segment.Points, point)
	}

	doc := &gogpx.GPX{
		Creator: "shotmeta",
		Tracks: []gogpx.GPXTrack{
			{
				Name:     name,
				Segments: []gogpx.GPXTrackSegment{segment},
			},
		},
	}
	return doc, len(segment.Points)
}

// SaveGPX writes a GPX track built from records to path. Records without
// usable coordinates are ignored; an input with no coordinates at all is an
// error since the resulting track would be empty.
func SaveGPX(path, name string, records []record.Record) error {
	doc, points := BuildTrack(name, records)
	if points == 0 {
		return fmt.Errorf("no records with GPS coordinates to export")
	}

	data, err := doc.ToXml(gogpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return fmt.Errorf("serialize gpx (%v): %w", err, ErrWrite)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s (%v): %w", path, err, ErrWrite)
	}
	return nil
}
