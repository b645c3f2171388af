package source

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-report/internal/weather"
)

// OpenMeteoPrefix marks a source location as "openmeteo:<lat>,<lon>".
const OpenMeteoPrefix = "openmeteo:"

const defaultForecastDays = 7

// OpenMeteoSource builds a weather table from the Open-Meteo daily forecast.
type OpenMeteoSource struct {
	name    string
	baseURL string
	lat     float64
	lon     float64
	days    int
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoSource(name string, lat, lon float64, client *http.Client) *OpenMeteoSource {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo-" + name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenMeteoSource{
		name:    name,
		baseURL: "https://api.open-meteo.com/v1/forecast",
		lat:     lat,
		lon:     lon,
		days:    defaultForecastDays,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: DefaultBackoff,
		},
		circuit: cb,
	}
}

// parseCoordinates reads "<lat>,<lon>".
func parseCoordinates(s string) (float64, float64, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("%w: coordinates %q must be lat,lon", weather.ErrInvalidInput, s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("%w: latitude %q", weather.ErrInvalidInput, latStr)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("%w: longitude %q", weather.ErrInvalidInput, lonStr)
	}
	return lat, lon, nil
}

func (p *OpenMeteoSource) Name() string {
	return p.name
}

func (p *OpenMeteoSource) Load(ctx context.Context) ([]weather.WeatherRecord, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(p.lat, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(p.lon, 'f', -1, 64))
		values.Set("daily", "temperature_2m_min,temperature_2m_max")
		values.Set("temperature_unit", "fahrenheit")
		values.Set("timezone", "auto")
		values.Set("forecast_days", strconv.Itoa(p.days))

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("openmeteo: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Daily struct {
			Time []string   `json:"time"`
			Min  []*float64 `json:"temperature_2m_min"`
			Max  []*float64 `json:"temperature_2m_max"`
		} `json:"daily"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("openmeteo: decode: %w", err)
	}

	d := payload.Daily
	if len(d.Min) != len(d.Time) || len(d.Max) != len(d.Time) {
		return nil, fmt.Errorf("%w: openmeteo returned %d dates, %d lows, %d highs",
			weather.ErrInvalidInput, len(d.Time), len(d.Min), len(d.Max))
	}

	records := make([]weather.WeatherRecord, 0, len(d.Time))
	for i, date := range d.Time {
		// Days past the model horizon come back as null.
		if d.Min[i] == nil || d.Max[i] == nil {
			continue
		}
		records = append(records, weather.WeatherRecord{
			Date:  date,
			LowF:  int(math.Round(*d.Min[i])),
			HighF: int(math.Round(*d.Max[i])),
		})
	}
	return records, nil
}
