package source

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/i474232898/weather-report/internal/weather"
)

// Source yields the full weather table for one named dataset.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]weather.WeatherRecord, error)
}

// FileSource reads a CSV table from disk.
type FileSource struct {
	name string
	path string
}

func NewFileSource(name, path string) *FileSource {
	return &FileSource{name: name, path: path}
}

func (s *FileSource) Name() string {
	return s.name
}

func (s *FileSource) Load(ctx context.Context) ([]weather.WeatherRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(s.path)
}

// LoadFile parses the CSV file at path.
func LoadFile(path string) ([]weather.WeatherRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	records, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// FromLocation picks a source by the shape of location: "openmeteo:<lat>,<lon>"
// for the Open-Meteo daily forecast, an http(s) URL for a remote CSV, and a
// file path otherwise.
func FromLocation(name, location string, timeout time.Duration) (Source, error) {
	switch {
	case strings.HasPrefix(location, OpenMeteoPrefix):
		lat, lon, err := parseCoordinates(strings.TrimPrefix(location, OpenMeteoPrefix))
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", name, err)
		}
		return NewOpenMeteoSource(name, lat, lon, &http.Client{Timeout: timeout}), nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(name, location, timeout), nil
	default:
		return NewFileSource(name, location), nil
	}
}
