package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"weatherapp/internal/apperr"
)

const defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// The 7-day series is windowed to days 2 through 6: today and tomorrow are
// dropped, the next five days are shown.
const (
	forecastDays       = 7
	forecastSliceStart = 2
	forecastSliceEnd   = 7
)

var currentFields = strings.Join([]string{
	"temperature_2m",
	"relative_humidity_2m",
	"apparent_temperature",
	"weather_code",
	"wind_speed_10m",
	"wind_direction_10m",
	"is_day",
	"precipitation",
	"cloud_cover",
	"pressure_msl",
}, ",")

var dailyFields = strings.Join([]string{
	"weather_code",
	"temperature_2m_max",
	"temperature_2m_min",
	"precipitation_probability_max",
	"wind_speed_10m_max",
	"wind_gusts_10m_max",
}, ",")

// Client fetches and normalizes open-meteo forecasts.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type forecastResponse struct {
	CurrentUnits map[string]string `json:"current_units"`
	Current      struct {
		Time                string   `json:"time"`
		Temperature         *float64 `json:"temperature_2m"`
		Humidity            *float64 `json:"relative_humidity_2m"`
		ApparentTemperature *float64 `json:"apparent_temperature"`
		WeatherCode         *int     `json:"weather_code"`
		WindSpeed           *float64 `json:"wind_speed_10m"`
		WindDirection       *float64 `json:"wind_direction_10m"`
		IsDay               *int     `json:"is_day"`
		Precipitation       *float64 `json:"precipitation"`
		CloudCover          *float64 `json:"cloud_cover"`
		Pressure            *float64 `json:"pressure_msl"`
	} `json:"current"`
	Daily struct {
		Time              []string   `json:"time"`
		WeatherCode       []*int     `json:"weather_code"`
		TempMax           []*float64 `json:"temperature_2m_max"`
		TempMin           []*float64 `json:"temperature_2m_min"`
		PrecipProbability []*float64 `json:"precipitation_probability_max"`
		WindMax           []*float64 `json:"wind_speed_10m_max"`
		GustMax           []*float64 `json:"wind_gusts_10m_max"`
	} `json:"daily"`
}

// CurrentAndForecast returns current conditions plus the five shown forecast
// days, with wind and precipitation units following the temperature unit.
func (c *Client) CurrentAndForecast(ctx context.Context, lat, lon float64, unit string) (*Forecast, error) {
	unit = NormalizeUnit(unit)

	query := baseQuery(lat, lon, unit)
	query.Set("current", currentFields)
	query.Set("forecast_days", fmt.Sprintf("%d", forecastDays))

	payload, err := c.fetch(ctx, query)
	if err != nil {
		return nil, err
	}

	cur := payload.Current
	isDay := 1
	if cur.IsDay != nil {
		isDay = *cur.IsDay
	}

	codeText := TextUnknown
	iconCode := 0
	if cur.WeatherCode != nil {
		codeText = TextFor(*cur.WeatherCode, TextUnknown)
		iconCode = *cur.WeatherCode
	}

	current := CurrentWeather{
		Temperature:         cur.Temperature,
		ApparentTemperature: cur.ApparentTemperature,
		Humidity:            cur.Humidity,
		Precipitation:       cur.Precipitation,
		CloudCover:          cur.CloudCover,
		Pressure:            cur.Pressure,
		WindSpeed:           cur.WindSpeed,
		WindDir:             cur.WindDirection,
		WindCompass:         CompassFor(cur.WindDirection),
		IsDay:               isDay,
		Code:                cur.WeatherCode,
		CodeText:            codeText,
		Icon:                IconFor(iconCode, isDay != 0),
		Time:                cur.Time,
		UnitLabels:          payload.CurrentUnits,
	}

	days := make([]DailyWeather, 0, forecastSliceEnd-forecastSliceStart)
	for i := forecastSliceStart; i < forecastSliceEnd && i < len(payload.Daily.Time); i++ {
		days = append(days, newDailyWeather(payload, i))
	}

	return &Forecast{Unit: unit, Current: current, Daily: days}, nil
}

// DailyRange returns daily weather for the inclusive [startDate, endDate]
// range. An empty series (dates outside the provider's coverage) is not an
// error.
func (c *Client) DailyRange(ctx context.Context, lat, lon float64, startDate, endDate, unit string) ([]DailyWeather, error) {
	query := baseQuery(lat, lon, NormalizeUnit(unit))
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)

	payload, err := c.fetch(ctx, query)
	if err != nil {
		return nil, err
	}

	days := make([]DailyWeather, 0, len(payload.Daily.Time))
	for i := range payload.Daily.Time {
		days = append(days, newDailyWeather(payload, i))
	}
	return days, nil
}

func baseQuery(lat, lon float64, unit string) url.Values {
	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.6f", lat))
	query.Set("longitude", fmt.Sprintf("%.6f", lon))
	query.Set("daily", dailyFields)
	query.Set("timezone", "auto")
	query.Set("temperature_unit", unit)
	if unit == UnitFahrenheit {
		query.Set("wind_speed_unit", "mph")
		query.Set("precipitation_unit", "inch")
	} else {
		query.Set("wind_speed_unit", "kmh")
		query.Set("precipitation_unit", "mm")
	}
	return query
}

func (c *Client) fetch(ctx context.Context, query url.Values) (*forecastResponse, error) {
	endpoint := c.baseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindProvider, "open-meteo request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "weatherapp/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindProvider, "open-meteo request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperr.Providerf("open-meteo bad status: %s", resp.Status)
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperr.Wrap(apperr.KindProvider, "open-meteo decode", err)
	}
	return &payload, nil
}

func newDailyWeather(payload *forecastResponse, i int) DailyWeather {
	daily := payload.Daily

	code := intAt(daily.WeatherCode, i)
	codeText := ""
	icon := IconNotAvailable
	if code != nil {
		codeText = TextFor(*code, "")
		icon = IconFor(*code, true)
	}

	return DailyWeather{
		Date:              daily.Time[i],
		TempMax:           floatAt(daily.TempMax, i),
		TempMin:           floatAt(daily.TempMin, i),
		PrecipProbability: floatAt(daily.PrecipProbability, i),
		WindMax:           floatAt(daily.WindMax, i),
		GustMax:           floatAt(daily.GustMax, i),
		Code:              code,
		CodeText:          codeText,
		Icon:              icon,
	}
}

func floatAt(values []*float64, i int) *float64 {
	if i < 0 || i >= len(values) {
		return nil
	}
	return values[i]
}

func intAt(values []*int, i int) *int {
	if i < 0 || i >= len(values) {
		return nil
	}
	return values[i]
}
