package store

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/i474232898/weather-report/internal/report"
)

var (
	// ErrNotFound is returned when no report is available for a given source.
	ErrNotFound = errors.New("no report for source")
)

// ReportHistory holds a time-ordered list of reports for a source.
type ReportHistory struct {
	Reports []report.Report
}

// MemoryStore is a concurrency-safe in-memory implementation of a report store.
type MemoryStore struct {
	mu    sync.RWMutex
	clock clockwork.Clock

	// key: source name, value: history
	data map[string]*ReportHistory

	// retention configuration
	maxHistory int           // max number of reports per source
	maxAge     time.Duration // optional max age for reports
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return NewMemoryStoreWithClock(maxHistory, maxAge, clockwork.NewRealClock())
}

func NewMemoryStoreWithClock(maxHistory int, maxAge time.Duration, clock clockwork.Clock) *MemoryStore {
	return &MemoryStore{
		clock:      clock,
		data:       make(map[string]*ReportHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveReport appends a report for its source and enforces retention.
func (s *MemoryStore) SaveReport(r report.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[r.Source]
	if !ok {
		history = &ReportHistory{}
		s.data[r.Source] = history
	}

	history.Reports = append(history.Reports, r)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.Reports) > s.maxHistory {
		over := len(history.Reports) - s.maxHistory
		history.Reports = history.Reports[over:]
	}

	// Enforce retention by age. The newest report is always kept.
	if s.maxAge > 0 {
		cutoff := s.clock.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.Reports)-1; i++ {
			if !history.Reports[i].GeneratedAt.Before(cutoff) {
				break
			}
		}
		history.Reports = history.Reports[i:]
	}
}

// GetLatest returns the most recent report for a source.
func (s *MemoryStore) GetLatest(source string) (report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[source]
	if !ok || len(history.Reports) == 0 {
		return report.Report{}, ErrNotFound
	}
	return history.Reports[len(history.Reports)-1], nil
}

// GetHistory returns a copy of all retained reports for a source, oldest first.
func (s *MemoryStore) GetHistory(source string) ([]report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[source]
	if !ok || len(history.Reports) == 0 {
		return nil, ErrNotFound
	}

	out := make([]report.Report, len(history.Reports))
	copy(out, history.Reports)
	return out, nil
}
