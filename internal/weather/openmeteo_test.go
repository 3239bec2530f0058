package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"weatherapp/internal/apperr"
)

const forecastPayload = `{
	"current_units": {"temperature_2m": "°F", "wind_speed_10m": "mp/h"},
	"current": {
		"time": "2025-08-20T14:00",
		"temperature_2m": 72.5,
		"relative_humidity_2m": 40,
		"apparent_temperature": 71.0,
		"weather_code": 2,
		"wind_speed_10m": 8.1,
		"wind_direction_10m": 180,
		"is_day": 1,
		"precipitation": 0,
		"cloud_cover": 35,
		"pressure_msl": 1015.2
	},
	"daily": {
		"time": ["2025-08-20","2025-08-21","2025-08-22","2025-08-23","2025-08-24","2025-08-25","2025-08-26"],
		"weather_code": [0, 1, 2, 3, 61, 71, 123],
		"temperature_2m_max": [80, 81, 82, 83, 84, 85, 86],
		"temperature_2m_min": [60, 61, 62, 63, 64, 65, 66],
		"precipitation_probability_max": [0, 5, 10, 15, 20, 25, 30],
		"wind_speed_10m_max": [10, 11, 12, 13, 14, 15, 16],
		"wind_gusts_10m_max": [20, 21, 22, 23, 24, 25, 26]
	}
}`

func TestCurrentAndForecast(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(forecastPayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	forecast, err := client.CurrentAndForecast(context.Background(), 48.8584, 2.2945, "f")
	if err != nil {
		t.Fatalf("CurrentAndForecast returned error: %v", err)
	}

	if gotQuery.Get("temperature_unit") != "fahrenheit" {
		t.Errorf("temperature_unit = %q, want fahrenheit", gotQuery.Get("temperature_unit"))
	}
	if gotQuery.Get("wind_speed_unit") != "mph" {
		t.Errorf("wind_speed_unit = %q, want mph", gotQuery.Get("wind_speed_unit"))
	}
	if gotQuery.Get("precipitation_unit") != "inch" {
		t.Errorf("precipitation_unit = %q, want inch", gotQuery.Get("precipitation_unit"))
	}
	if gotQuery.Get("timezone") != "auto" {
		t.Errorf("timezone = %q, want auto", gotQuery.Get("timezone"))
	}
	if gotQuery.Get("forecast_days") != "7" {
		t.Errorf("forecast_days = %q, want 7", gotQuery.Get("forecast_days"))
	}

	if forecast.Unit != UnitFahrenheit {
		t.Errorf("Unit = %q, want %q", forecast.Unit, UnitFahrenheit)
	}

	// The 7-day series is windowed to days 2 through 6.
	if len(forecast.Daily) != 5 {
		t.Fatalf("len(Daily) = %d, want 5", len(forecast.Daily))
	}
	if forecast.Daily[0].Date != "2025-08-22" {
		t.Errorf("Daily[0].Date = %q, want 2025-08-22", forecast.Daily[0].Date)
	}
	if forecast.Daily[4].Date != "2025-08-26" {
		t.Errorf("Daily[4].Date = %q, want 2025-08-26", forecast.Daily[4].Date)
	}
	if forecast.Daily[0].TempMax == nil || *forecast.Daily[0].TempMax != 82 {
		t.Errorf("Daily[0].TempMax = %v, want 82", forecast.Daily[0].TempMax)
	}
	if forecast.Daily[0].CodeText != "Partly cloudy" {
		t.Errorf("Daily[0].CodeText = %q, want Partly cloudy", forecast.Daily[0].CodeText)
	}

	// Unknown daily codes get the empty-string default and the n/a icon.
	last := forecast.Daily[4]
	if last.CodeText != "" {
		t.Errorf("unknown daily CodeText = %q, want empty", last.CodeText)
	}
	if last.Icon != IconNotAvailable {
		t.Errorf("unknown daily Icon = %q, want %q", last.Icon, IconNotAvailable)
	}

	cur := forecast.Current
	if cur.CodeText != "Partly cloudy" {
		t.Errorf("Current.CodeText = %q, want Partly cloudy", cur.CodeText)
	}
	if cur.Icon != "wi wi-day-cloudy" {
		t.Errorf("Current.Icon = %q, want wi wi-day-cloudy", cur.Icon)
	}
	if cur.WindCompass != "S" {
		t.Errorf("Current.WindCompass = %q, want S", cur.WindCompass)
	}
	if cur.IsDay != 1 {
		t.Errorf("Current.IsDay = %d, want 1", cur.IsDay)
	}
	if cur.UnitLabels["temperature_2m"] != "°F" {
		t.Errorf("UnitLabels[temperature_2m] = %q, want °F", cur.UnitLabels["temperature_2m"])
	}
}

func TestCurrentAndForecastCelsiusUnits(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"current": {"time": "2025-08-20T14:00"}, "daily": {"time": []}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	forecast, err := client.CurrentAndForecast(context.Background(), 0, 0, "Celsius")
	if err != nil {
		t.Fatalf("CurrentAndForecast returned error: %v", err)
	}

	if gotQuery.Get("temperature_unit") != "celsius" {
		t.Errorf("temperature_unit = %q, want celsius", gotQuery.Get("temperature_unit"))
	}
	if gotQuery.Get("wind_speed_unit") != "kmh" {
		t.Errorf("wind_speed_unit = %q, want kmh", gotQuery.Get("wind_speed_unit"))
	}
	if gotQuery.Get("precipitation_unit") != "mm" {
		t.Errorf("precipitation_unit = %q, want mm", gotQuery.Get("precipitation_unit"))
	}

	// Absent current fields stay null, with the current-weather defaults.
	if forecast.Current.CodeText != TextUnknown {
		t.Errorf("CodeText = %q, want %q", forecast.Current.CodeText, TextUnknown)
	}
	if forecast.Current.WindCompass != CompassUnknown {
		t.Errorf("WindCompass = %q, want %q", forecast.Current.WindCompass, CompassUnknown)
	}
	if forecast.Current.Temperature != nil {
		t.Errorf("Temperature = %v, want nil", forecast.Current.Temperature)
	}
	if len(forecast.Daily) != 0 {
		t.Errorf("len(Daily) = %d, want 0", len(forecast.Daily))
	}
}

func TestDailyRange(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{
			"daily": {
				"time": ["2025-08-01","2025-08-02"],
				"weather_code": [61, null],
				"temperature_2m_max": [75, 76],
				"temperature_2m_min": [55, 56],
				"precipitation_probability_max": [40, 50],
				"wind_speed_10m_max": [9, 10],
				"wind_gusts_10m_max": [18, 19]
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	days, err := client.DailyRange(context.Background(), 48.8584, 2.2945, "2025-08-01", "2025-08-02", "fahrenheit")
	if err != nil {
		t.Fatalf("DailyRange returned error: %v", err)
	}

	if gotQuery.Get("start_date") != "2025-08-01" || gotQuery.Get("end_date") != "2025-08-02" {
		t.Errorf("date range = %q..%q, want 2025-08-01..2025-08-02",
			gotQuery.Get("start_date"), gotQuery.Get("end_date"))
	}
	if gotQuery.Get("forecast_days") != "" {
		t.Errorf("forecast_days = %q, want unset for range queries", gotQuery.Get("forecast_days"))
	}

	if len(days) != 2 {
		t.Fatalf("len(days) = %d, want 2", len(days))
	}
	if days[0].CodeText != "Slight rain" {
		t.Errorf("days[0].CodeText = %q, want Slight rain", days[0].CodeText)
	}
	if days[1].Code != nil {
		t.Errorf("days[1].Code = %v, want nil", days[1].Code)
	}
	if days[1].Icon != IconNotAvailable {
		t.Errorf("days[1].Icon = %q, want %q", days[1].Icon, IconNotAvailable)
	}
}

func TestDailyRangeEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"daily": {"time": []}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	days, err := client.DailyRange(context.Background(), 0, 0, "1900-01-01", "1900-01-02", "celsius")
	if err != nil {
		t.Fatalf("DailyRange returned error for empty series: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("len(days) = %d, want 0", len(days))
	}
}

func TestFetchErrorsAreProviderErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	_, err := client.CurrentAndForecast(context.Background(), 0, 0, "f")
	if err == nil {
		t.Fatal("expected error for upstream 500")
	}
	if !apperr.Is(err, apperr.KindProvider) {
		t.Errorf("error kind = %v, want KindProvider", apperr.KindOf(err))
	}
}
