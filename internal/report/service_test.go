package report

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-report/internal/observability"
	"github.com/i474232898/weather-report/internal/weather"
)

var errNotFound = errors.New("not found")

type fakeStore struct {
	mu      sync.Mutex
	reports map[string][]Report
}

func newFakeStore() *fakeStore {
	return &fakeStore{reports: make(map[string][]Report)}
}

func (f *fakeStore) SaveReport(r Report) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports[r.Source] = append(f.reports[r.Source], r)
}

func (f *fakeStore) GetLatest(source string) (Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rs := f.reports[source]
	if len(rs) == 0 {
		return Report{}, errNotFound
	}
	return rs[len(rs)-1], nil
}

func (f *fakeStore) GetHistory(source string) ([]Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.reports[source]) == 0 {
		return nil, errNotFound
	}
	return append([]Report(nil), f.reports[source]...), nil
}

type fakeSource struct {
	name    string
	records []weather.WeatherRecord
	err     error
}

func (f fakeSource) Name() string { return f.name }

func (f fakeSource) Load(ctx context.Context) ([]weather.WeatherRecord, error) {
	return f.records, f.err
}

func twoDays() []weather.WeatherRecord {
	return []weather.WeatherRecord{
		{Date: "2021-07-05", LowF: 40, HighF: 80},
		{Date: "2021-07-06", LowF: 45, HighF: 90},
	}
}

func newTestService(sources ...Source) (*Service, *fakeStore, *observability.Metrics) {
	st := newFakeStore()
	m := observability.NewMetrics(prometheus.NewRegistry())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(st, sources, logger, m)
	svc.now = func() time.Time { return time.Date(2021, 7, 7, 12, 0, 0, 0, time.UTC) }
	return svc, st, m
}

func TestRender(t *testing.T) {
	at := time.Date(2021, 7, 7, 0, 0, 0, 0, time.UTC)
	r, err := Render("week", twoDays(), at)
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "week", r.Source)
	assert.Equal(t, at, r.GeneratedAt)
	assert.Equal(t, 2, r.Days)
	assert.Contains(t, r.Summary, "2 Day Overview\n")
	assert.Contains(t, r.Daily, "---- Tuesday 06 July 2021 ----\n")
	assert.Equal(t, r.Summary+"\n"+r.Daily, r.Text())
}

func TestRenderEmpty(t *testing.T) {
	_, err := Render("week", nil, time.Now())
	assert.ErrorIs(t, err, weather.ErrEmptyInput)
}

func TestGenerateStoresReport(t *testing.T) {
	src := fakeSource{name: "week", records: twoDays()}
	svc, st, m := newTestService(src)

	r, err := svc.Generate(context.Background(), src)
	require.NoError(t, err)

	latest, err := st.GetLatest("week")
	require.NoError(t, err)
	assert.Equal(t, r, latest)
	assert.Equal(t, time.Date(2021, 7, 7, 12, 0, 0, 0, time.UTC), latest.GeneratedAt)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportsGenerated.WithLabelValues("week")))
}

func TestGenerateErrorsAreCountedByKind(t *testing.T) {
	tests := []struct {
		src  fakeSource
		kind string
		want error
	}{
		{fakeSource{name: "broken", err: io.ErrUnexpectedEOF}, "load", io.ErrUnexpectedEOF},
		{fakeSource{name: "empty"}, "empty", weather.ErrEmptyInput},
		{fakeSource{name: "dates", records: []weather.WeatherRecord{{Date: "someday", LowF: 1, HighF: 2}}}, "date", weather.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			svc, st, m := newTestService(tt.src)

			_, err := svc.Generate(context.Background(), tt.src)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportErrors.WithLabelValues(tt.src.name, tt.kind)))

			_, err = st.GetLatest(tt.src.name)
			assert.ErrorIs(t, err, errNotFound)
		})
	}
}

func TestRefresh(t *testing.T) {
	good := fakeSource{name: "week", records: twoDays()}
	bad := fakeSource{name: "broken", err: io.ErrUnexpectedEOF}
	svc, _, _ := newTestService(good, bad)

	assert.Equal(t, []string{"week", "broken"}, svc.Sources())

	err := svc.Refresh(context.Background())
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	latest, err := svc.Latest("week")
	require.NoError(t, err)
	assert.Equal(t, 2, latest.Days)

	history, err := svc.History("week")
	require.NoError(t, err)
	assert.Len(t, history, 1)

	_, err = svc.Latest("broken")
	assert.Error(t, err)
}

func TestRefreshWithoutSources(t *testing.T) {
	svc, _, _ := newTestService()
	assert.Error(t, svc.Refresh(context.Background()))
}
