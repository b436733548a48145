package datefmt

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Spreadsheet serial numbering counts days from a fixed historical epoch.
// The numbering inherited Lotus 1-2-3's bug of treating 1900 as a leap year:
// serial 60 is the nonexistent 1900-02-29. Values written by spreadsheets
// assume that day exists, so serials at or above 61 are anchored at
// 1899-12-30 (one day early, absorbing the phantom day), while serials below
// 60 are anchored at 1899-12-31 so that serial 1 is 1900-01-01.
var (
	serialEpochPost = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	serialEpochPre  = time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// maxSerialDay caps decoding at 9999-12-31 to keep output representable in
// four-digit years.
const maxSerialDay = 2958465

// decodeSerial converts a day-count offset into calendar components.
// Fractional day components (time of day) are discarded; only whole days
// are decoded.
func decodeSerial(raw string) (Components, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Components{}, fmt.Errorf("serial %q: %w", raw, err)
	}
	days := int(math.Floor(f))
	if days < 1 || days > maxSerialDay {
		return Components{}, fmt.Errorf("serial %q: day count %d out of range", raw, days)
	}
	if days == 60 {
		// The phantom leap day. time.Time cannot hold it, components can.
		return Components{Year: 1900, Month: 2, Day: 29}, nil
	}
	epoch := serialEpochPost
	if days < 60 {
		epoch = serialEpochPre
	}
	return componentsFromTime(epoch.AddDate(0, 0, days)), nil
}
