package weather

import "strings"

// CurrentWeather is the normalized shape of open-meteo's current block.
// Pointer fields stay null when the provider omits the value.
type CurrentWeather struct {
	Temperature         *float64          `json:"temperature"`
	ApparentTemperature *float64          `json:"apparent_temperature"`
	Humidity            *float64          `json:"humidity"`
	Precipitation       *float64          `json:"precipitation"`
	CloudCover          *float64          `json:"cloud_cover"`
	Pressure            *float64          `json:"pressure"`
	WindSpeed           *float64          `json:"wind_speed"`
	WindDir             *float64          `json:"wind_dir"`
	WindCompass         string            `json:"wind_compass"`
	IsDay               int               `json:"is_day"`
	Code                *int              `json:"code"`
	CodeText            string            `json:"code_text"`
	Icon                string            `json:"icon"`
	Time                string            `json:"time"`
	UnitLabels          map[string]string `json:"unit_labels"`
}

// DailyWeather is one normalized day of the forecast's parallel arrays.
type DailyWeather struct {
	Date              string   `json:"date"`
	TempMax           *float64 `json:"t_max"`
	TempMin           *float64 `json:"t_min"`
	PrecipProbability *float64 `json:"pop"`
	WindMax           *float64 `json:"wind_max"`
	GustMax           *float64 `json:"gust_max"`
	Code              *int     `json:"code"`
	CodeText          string   `json:"code_text"`
	Icon              string   `json:"icon"`
}

type Forecast struct {
	Unit    string         `json:"unit"`
	Current CurrentWeather `json:"current"`
	Daily   []DailyWeather `json:"daily"`
}

const (
	UnitFahrenheit = "fahrenheit"
	UnitCelsius    = "celsius"
)

// NormalizeUnit collapses any spelling of the temperature unit to the
// two-value enum: anything starting with "c" is celsius, everything else
// fahrenheit.
func NormalizeUnit(unit string) string {
	if strings.HasPrefix(strings.ToLower(unit), "c") {
		return UnitCelsius
	}
	return UnitFahrenheit
}
