package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanoberholster/imagemeta"
	"github.com/evanoberholster/imagemeta/exif2"

	"github.com/opencam-utils/shotmeta/internal/record"
)

// ErrUnreadable signals that a path does not exist, is not a regular file,
// or is not a supported image container.
var ErrUnreadable = errors.New("unreadable image file")

const timeLayout = "2006-01-02 15:04:05"

var imageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".jpe":  true,
	".tif":  true,
	".tiff": true,
	".heic": true,
	".heif": true,
	".hif":  true,
	".avif": true,
	".png":  true,
	".cr2":  true, // Canon
	".cr3":  true, // Canon
	".nef":  true, // Nikon
	".arw":  true, // Sony
	".raf":  true, // Fujifilm
	".dng":  true, // Adobe DNG
	".orf":  true, // Olympus
	".rw2":  true, // Panasonic
}

// SupportedImage reports whether the provided path has a supported image extension.
func SupportedImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return imageExt[ext]
}

// ReadImage extracts the EXIF metadata of one image into a flat record.
// A valid image that carries no EXIF block yields an empty record, not an
// error; anything that cannot be opened or decoded fails with ErrUnreadable.
func ReadImage(path string) (record.Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return record.Record{}, fmt.Errorf("stat %s (%v): %w", path, err, ErrUnreadable)
	}
	if info.IsDir() {
		return record.Record{}, fmt.Errorf("%s is a directory: %w", path, ErrUnreadable)
	}
	if !SupportedImage(path) {
		return record.Record{}, fmt.Errorf("%s is not a supported image type: %w", path, ErrUnreadable)
	}

	file, err := os.Open(path)
	if err != nil {
		return record.Record{}, fmt.Errorf("open %s (%v): %w", path, err, ErrUnreadable)
	}
	defer file.Close()

	exif, err := decodeExifSafe(file, path)
	if err != nil {
		if errors.Is(err, imagemeta.ErrNoExif) {
			return record.New(), nil
		}
		return record.Record{}, fmt.Errorf("decode %s (%v): %w", path, err, ErrUnreadable)
	}

	return flattenExif(exif), nil
}

// decodeExifSafe protects against panics from the decoder on malformed files.
func decodeExifSafe(r io.ReadSeeker, path string) (ex exif2.Exif, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while decoding %s: %v", path, rec)
		}
	}()

	ex, err = imagemeta.Decode(r)
	return ex, err
}

// flattenExif turns decoded EXIF into ordered name/value fields. Zero values
// are omitted rather than defaulted, so record shape follows what the image
// actually carries.
func flattenExif(exif exif2.Exif) record.Record {
	rec := record.New()

	add := func(name, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		rec.Set(name, value)
	}

	capture := exif.DateTimeOriginal()
	if capture.IsZero() {
		capture = exif.CreateDate()
	}
	if capture.IsZero() {
		capture = exif.ModifyDate()
	}
	if !capture.IsZero() {
		add("datetime", capture.Format(timeLayout))
	}

	add("make", exif.Make)
	add("model", exif.Model)
	add("serial", exif.CameraSerial)
	add("software", exif.Software)
	add("artist", exif.Artist)
	add("copyright", exif.Copyright)

	add("lens", exif.LensModel)
	add("lens_make", exif.LensMake)

	if exif.ExposureTime != 0 {
		add("exposure", exif.ExposureTime.String())
	}
	if exif.FNumber != 0 {
		add("aperture", fmt.Sprintf("f/%.1f", exif.FNumber))
	}
	if exif.ISO != 0 {
		add("iso", fmt.Sprintf("%d", exif.ISO))
	} else if exif.ISOSpeed != 0 {
		add("iso", fmt.Sprintf("%d", exif.ISOSpeed))
	}
	if exif.ExposureBias != 0 {
		add("exposure_bias", exif.ExposureBias.String())
	}
	if exif.ExposureProgram != 0 {
		add("exposure_program", exif.ExposureProgram.String())
	}
	if exif.MeteringMode != 0 {
		add("metering", exif.MeteringMode.String())
	}
	if exif.Flash != 0 {
		add("flash", exif.Flash.String())
	}

	if exif.FocalLength != 0 {
		add("focallength", exif.FocalLength.String())
	}
	if exif.FocalLengthIn35mmFormat != 0 {
		add("focallength_35mm", exif.FocalLengthIn35mmFormat.String())
	}

	if exif.ImageWidth != 0 {
		add("imgwidth", fmt.Sprintf("%d", exif.ImageWidth))
	}
	if exif.ImageHeight != 0 {
		add("imgheight", fmt.Sprintf("%d", exif.ImageHeight))
	}
	if exif.Orientation != 0 {
		add("orientation", exif.Orientation.String())
	}

	lat := exif.GPS.Latitude()
	lon := exif.GPS.Longitude()
	if lat != 0 || lon != 0 {
		add("lat", fmt.Sprintf("%.6f", lat))
		add("lng", fmt.Sprintf("%.6f", lon))
		if alt := exif.GPS.Altitude(); alt != 0 {
			add("altitude", fmt.Sprintf("%.2f", alt))
		}
		if gpsDate := exif.GPS.Date(); !gpsDate.IsZero() {
			add("gps_time", gpsDate.Format(timeLayout))
		}
	}

	addDeviceFields(&rec, exif.Make, exif.Model)

	return rec
}
