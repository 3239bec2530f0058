package weather

// WMO weather interpretation codes as used by open-meteo.
var wmoText = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snowfall",
	73: "Moderate snowfall",
	75: "Heavy snowfall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

const (
	// TextUnknown is the fallback used for current conditions.
	TextUnknown = "Unknown"
	// IconNotAvailable is returned for codes outside the icon buckets.
	IconNotAvailable = "wi wi-na"
	// CompassUnknown marks a missing wind bearing.
	CompassUnknown = "—"
)

// TextFor returns the human-readable text for a WMO code, or fallback when
// the code is not in the table. Current-conditions callers pass TextUnknown,
// forecast-day callers pass "".
func TextFor(code int, fallback string) string {
	if text, ok := wmoText[code]; ok {
		return text
	}
	return fallback
}

// IconFor maps a WMO code to a Weather Icons CSS class. Only the clear and
// partly-cloudy buckets have distinct night variants.
func IconFor(code int, isDay bool) string {
	switch code {
	case 0:
		if isDay {
			return "wi wi-day-sunny"
		}
		return "wi wi-night-clear"
	case 1, 2:
		if isDay {
			return "wi wi-day-cloudy"
		}
		return "wi wi-night-alt-cloudy"
	case 3:
		return "wi wi-cloudy"
	case 45, 48:
		return "wi wi-fog"
	case 51, 53, 55, 56, 57:
		return "wi wi-sprinkle"
	case 61, 63, 65, 66, 67, 80, 81, 82:
		return "wi wi-rain"
	case 71, 73, 75, 77, 85, 86:
		return "wi wi-snow"
	case 95, 96, 99:
		return "wi wi-thunderstorm"
	default:
		return IconNotAvailable
	}
}

var compassLabels = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CompassFor converts a wind bearing in degrees to a 16-point compass label.
func CompassFor(degrees *float64) string {
	if degrees == nil {
		return CompassUnknown
	}
	idx := int(*degrees/22.5+0.5) % 16
	if idx < 0 {
		idx += 16
	}
	return compassLabels[idx]
}
