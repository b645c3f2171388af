package weather

import (
	"fmt"
	"strings"
)

// GenerateSummary renders the overview of records: the lowest low and highest
// high with the day they occur on, and the average low and high.
func GenerateSummary(records []WeatherRecord) (string, error) {
	lows, highs := Lows(records), Highs(records)

	avgLow, err := Mean(lows)
	if err != nil {
		return "", fmt.Errorf("average low: %w", err)
	}
	avgHigh, err := Mean(highs)
	if err != nil {
		return "", fmt.Errorf("average high: %w", err)
	}

	lowest, ok := FindMin(lows)
	if !ok {
		return "", fmt.Errorf("lowest temperature: %w", ErrEmptyInput)
	}
	highest, ok := FindMax(highs)
	if !ok {
		return "", fmt.Errorf("highest temperature: %w", ErrEmptyInput)
	}

	lowestDay, err := FormatDate(records[lowest.Index].Date)
	if err != nil {
		return "", err
	}
	highestDay, err := FormatDate(records[highest.Index].Date)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d Day Overview\n", len(records))
	fmt.Fprintf(&b, "  The lowest temperature will be %s, and will occur on %s.\n",
		FormatTemperature(FahrenheitToCelsius(lowest.Value)), lowestDay)
	fmt.Fprintf(&b, "  The highest temperature will be %s, and will occur on %s.\n",
		FormatTemperature(FahrenheitToCelsius(highest.Value)), highestDay)
	fmt.Fprintf(&b, "  The average low this week is %s.\n", FormatTemperature(FahrenheitToCelsius(avgLow)))
	fmt.Fprintf(&b, "  The average high this week is %s.\n", FormatTemperature(FahrenheitToCelsius(avgHigh)))
	return b.String(), nil
}

// GenerateDailySummary renders one block per record, in input order.
// An empty table yields an empty string.
func GenerateDailySummary(records []WeatherRecord) (string, error) {
	var b strings.Builder
	for _, r := range records {
		day, err := FormatDate(r.Date)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "---- %s ----\n", day)
		fmt.Fprintf(&b, "  Minimum Temperature: %s\n", FormatTemperature(FahrenheitToCelsius(float64(r.LowF))))
		fmt.Fprintf(&b, "  Maximum Temperature: %s\n\n", FormatTemperature(FahrenheitToCelsius(float64(r.HighF))))
	}
	return b.String(), nil
}
