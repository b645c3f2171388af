package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-report/internal/weather"
)

// HTTPSource downloads a CSV table from a URL.
type HTTPSource struct {
	name    string
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewHTTPSource creates an HTTPSource with the default backoff and its own
// circuit breaker.
func NewHTTPSource(name, url string, timeout time.Duration) *HTTPSource {
	return NewHTTPSourceWithConfig(name, url, HTTPClientConfig{
		Client:  &http.Client{Timeout: timeout},
		Backoff: DefaultBackoff,
	})
}

func NewHTTPSourceWithConfig(name, url string, cfg HTTPClientConfig) *HTTPSource {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "source-" + name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &HTTPSource{
		name:    name,
		url:     url,
		httpCfg: cfg,
		circuit: cb,
	}
}

func (s *HTTPSource) Name() string {
	return s.name
}

func (s *HTTPSource) Load(ctx context.Context) ([]weather.WeatherRecord, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/csv")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, s.httpCfg, s.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	records, err := ParseCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.url, err)
	}
	return records, nil
}
