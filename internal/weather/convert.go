package weather

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FahrenheitToCelsius converts f to Celsius rounded to one decimal place.
func FahrenheitToCelsius(f float64) float64 {
	return roundTenths((f - 32) * 5 / 9)
}

// roundTenths rounds through the decimal representation so the result is the
// correctly rounded value of the binary input, not of x*10.
func roundTenths(x float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 1, 64), 64)
	if err != nil {
		return x
	}
	return r
}

// ParseFahrenheit parses a textual temperature.
func ParseFahrenheit(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, s)
	}
	return v, nil
}

// FormatTemperature renders c followed by the degree suffix. Whole values keep
// a trailing ".0" (15 -> "15.0°C").
func FormatTemperature(c float64) string {
	s := strconv.FormatFloat(c, 'f', -1, 64)
	if !strings.Contains(s, ".") && !math.IsInf(c, 0) && !math.IsNaN(c) {
		s += ".0"
	}
	return s + DegreeSuffix
}
