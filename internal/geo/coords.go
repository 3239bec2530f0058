package geo

import (
	"regexp"
	"strconv"
)

var coordsPattern = regexp.MustCompile(`^\s*([+-]?\d+(?:\.\d+)?),\s*([+-]?\d+(?:\.\d+)?)\s*$`)

// ParseCoords recognizes a literal "lat,lon" pair. Values outside the valid
// latitude/longitude ranges are treated the same as a non-match.
func ParseCoords(text string) (lat, lon float64, ok bool) {
	m := coordsPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}

	lat, latErr := strconv.ParseFloat(m[1], 64)
	lon, lonErr := strconv.ParseFloat(m[2], 64)
	if latErr != nil || lonErr != nil {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}
