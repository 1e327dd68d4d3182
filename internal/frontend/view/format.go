package view

import (
	"fmt"
	"strconv"
	"time"

	"github.com/khoahotran/rentredi/pkg/tzoffset"
)

const mapZoom = 11

// Coordinate prints a latitude or longitude, "-" when absent.
func Coordinate(v *float64) string {
	if v == nil {
		return tzoffset.Absent
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func Timezone(offset *int) string {
	return tzoffset.Label(offset)
}

// LocalTime shows the clock at the user's offset as HH:MM, "-" when the offset is absent.
func LocalTime(offset *int, now time.Time) string {
	t, ok := tzoffset.NowAt(offset, now)
	if !ok {
		return tzoffset.Absent
	}
	return t.Format("15:04")
}

// MapLink points at OpenStreetMap centered on the coordinates. Empty when either is absent.
func MapLink(lat, lon *float64) string {
	if lat == nil || lon == nil {
		return ""
	}
	la, lo := Coordinate(lat), Coordinate(lon)
	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%s&mlon=%s#map=%d/%s/%s", la, lo, mapZoom, la, lo)
}
