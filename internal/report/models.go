package report

import (
	"context"
	"time"

	"github.com/i474232898/weather-report/internal/weather"
)

// Report is the rendered output for one load of a source.
type Report struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generatedAt"` // always UTC
	Days        int       `json:"days"`
	Summary     string    `json:"summary"`
	Daily       string    `json:"daily"`
}

// Text is the summary followed by the daily breakdown, as printed by the CLI.
func (r Report) Text() string {
	return r.Summary + "\n" + r.Daily
}

// Source is the contract report generation needs from a record loader.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]weather.WeatherRecord, error)
}

// Store is the contract the in-memory store (and any future persistent store) must satisfy.
type Store interface {
	SaveReport(r Report)
	GetLatest(source string) (Report, error)
	GetHistory(source string) ([]Report, error)
}
