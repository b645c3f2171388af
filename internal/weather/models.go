package weather

import "errors"

// DegreeSuffix is appended to every rendered temperature.
const DegreeSuffix = "°C"

var (
	// ErrEmptyInput is returned when an aggregate is requested over no values.
	ErrEmptyInput = errors.New("empty input")
	// ErrInvalidDate is returned when a date string is not an ISO-8601 calendar date.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidInput is returned when a value that must be numeric is not.
	ErrInvalidInput = errors.New("invalid input")
)

// WeatherRecord is a single day of observations as loaded from a table.
// Temperatures are in Fahrenheit.
type WeatherRecord struct {
	Date  string `json:"date"`
	LowF  int    `json:"low"`
	HighF int    `json:"high"`
}

// ExtremeResult is the minimum or maximum of a sequence together with the
// index of its last occurrence.
type ExtremeResult struct {
	Value float64
	Index int
}

// Lows returns the low temperatures of records in order.
func Lows(records []WeatherRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.LowF
	}
	return out
}

// Highs returns the high temperatures of records in order.
func Highs(records []WeatherRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.HighF
	}
	return out
}
