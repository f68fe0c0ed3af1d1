package media

import (
	"fmt"
	"strings"

	"github.com/opencam-utils/shotmeta/internal/record"
)

// deviceProfile carries sensor geometry that EXIF does not expose.
type deviceProfile struct {
	SensorWidthMM  float64
	SensorHeightMM float64
	HFovDeg        float64
}

// Known camera phones, keyed by lowercase "make/model". Values measured for
// the portrait-mode horizontal field of view.
var deviceProfiles = map[string]deviceProfile{
	"samsung/sm-a505f": {SensorWidthMM: 5.18, SensorHeightMM: 3.89, HFovDeg: 66.8},
}

func lookupDevice(makeStr, model string) (deviceProfile, bool) {
	key := strings.ToLower(strings.TrimSpace(makeStr)) + "/" + strings.ToLower(strings.TrimSpace(model))
	p, ok := deviceProfiles[key]
	return p, ok
}

func addDeviceFields(rec *record.Record, makeStr, model string) {
	p, ok := lookupDevice(makeStr, model)
	if !ok {
		return
	}
	rec.Set("senwidth", fmt.Sprintf("%.2f", p.SensorWidthMM))
	rec.Set("senheight", fmt.Sprintf("%.2f", p.SensorHeightMM))
	rec.Set("h_fov", fmt.Sprintf("%.1f", p.HFovDeg))
}
