package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/i474232898/weather-report/internal/weather"
)

// Column order of a weather table: date, min °F, max °F.
const (
	colDate = iota
	colLow
	colHigh
	minColumns
)

// ParseCSV reads weather records from r. The first row is a header and is
// skipped, as are blank rows.
func ParseCSV(r io.Reader) ([]weather.WeatherRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		records []weather.WeatherRecord
		header  = true
	)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv: %w", weather.ErrInvalidInput, err)
		}
		if header {
			header = false
			continue
		}
		if blank(row) {
			continue
		}

		line, _ := reader.FieldPos(0)
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string) (weather.WeatherRecord, error) {
	if len(row) < minColumns {
		return weather.WeatherRecord{}, fmt.Errorf("%w: expected %d columns, got %d", weather.ErrInvalidInput, minColumns, len(row))
	}

	low, err := parseInt(row[colLow])
	if err != nil {
		return weather.WeatherRecord{}, err
	}
	high, err := parseInt(row[colHigh])
	if err != nil {
		return weather.WeatherRecord{}, err
	}

	return weather.WeatherRecord{
		Date:  strings.TrimSpace(row[colDate]),
		LowF:  low,
		HighF: high,
	}, nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", weather.ErrInvalidInput, s)
	}
	return n, nil
}

func blank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
