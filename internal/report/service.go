package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-report/internal/observability"
	"github.com/i474232898/weather-report/internal/weather"
)

// Service loads tables from sources, renders reports and keeps them in a store.
type Service struct {
	store   Store
	sources []Source
	logger  *slog.Logger
	metrics *observability.Metrics
	now     func() time.Time
}

// NewService creates a new Service. metrics may be nil.
func NewService(store Store, sources []Source, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		store:   store,
		sources: sources,
		logger:  logger,
		metrics: metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Sources returns the names of the configured sources.
func (s *Service) Sources() []string {
	names := make([]string, 0, len(s.sources))
	for _, src := range s.sources {
		names = append(names, src.Name())
	}
	return names
}

// Render builds an unsaved report from records.
func Render(name string, records []weather.WeatherRecord, at time.Time) (Report, error) {
	summary, err := weather.GenerateSummary(records)
	if err != nil {
		return Report{}, err
	}
	daily, err := weather.GenerateDailySummary(records)
	if err != nil {
		return Report{}, err
	}

	return Report{
		ID:          uuid.NewString(),
		Source:      name,
		GeneratedAt: at,
		Days:        len(records),
		Summary:     summary,
		Daily:       daily,
	}, nil
}

// Generate loads src, renders its report and stores it.
func (s *Service) Generate(ctx context.Context, src Source) (Report, error) {
	start := time.Now()
	name := src.Name()

	records, err := src.Load(ctx)
	if err != nil {
		s.recordError(name, "load")
		return Report{}, fmt.Errorf("load %s: %w", name, err)
	}
	if s.metrics != nil {
		s.metrics.RecordsLoaded.Observe(float64(len(records)))
	}

	r, err := Render(name, records, s.now())
	if err != nil {
		s.recordError(name, errorKind(err))
		return Report{}, fmt.Errorf("render %s: %w", name, err)
	}

	s.store.SaveReport(r)

	if s.metrics != nil {
		s.metrics.ReportsGenerated.WithLabelValues(name).Inc()
		s.metrics.GenerationDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}
	s.logger.Debug("report generated", "source", name, "id", r.ID, "days", r.Days)
	return r, nil
}

// Refresh regenerates every configured source concurrently. A failing source
// keeps its last good report; all failures are joined into the returned error.
func (s *Service) Refresh(ctx context.Context) error {
	if len(s.sources) == 0 {
		return fmt.Errorf("no report sources configured")
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, src := range s.sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()

			if _, err := s.Generate(ctx, src); err != nil {
				s.logger.Warn("report refresh failed", "source", src.Name(), "error", err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(src)
	}

	wg.Wait()
	return errors.Join(errs...)
}

// Latest delegates to the underlying store.
func (s *Service) Latest(source string) (Report, error) {
	return s.store.GetLatest(source)
}

// History delegates to the underlying store.
func (s *Service) History(source string) ([]Report, error) {
	return s.store.GetHistory(source)
}

func (s *Service) recordError(source, kind string) {
	if s.metrics != nil {
		s.metrics.ReportErrors.WithLabelValues(source, kind).Inc()
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, weather.ErrEmptyInput):
		return "empty"
	case errors.Is(err, weather.ErrInvalidDate):
		return "date"
	case errors.Is(err, weather.ErrInvalidInput):
		return "input"
	default:
		return "other"
	}
}
