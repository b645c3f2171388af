package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoDays() []WeatherRecord {
	return []WeatherRecord{
		{Date: "2021-07-05", LowF: 40, HighF: 80},
		{Date: "2021-07-06", LowF: 45, HighF: 90},
	}
}

func TestGenerateSummary(t *testing.T) {
	got, err := GenerateSummary(twoDays())
	require.NoError(t, err)

	want := "2 Day Overview\n" +
		"  The lowest temperature will be 4.4°C, and will occur on Monday 05 July 2021.\n" +
		"  The highest temperature will be 32.2°C, and will occur on Tuesday 06 July 2021.\n" +
		"  The average low this week is 5.8°C.\n" +
		"  The average high this week is 29.4°C.\n"
	assert.Equal(t, want, got)
}

func TestGenerateSummaryTieUsesLastDay(t *testing.T) {
	records := []WeatherRecord{
		{Date: "2021-07-05", LowF: 40, HighF: 90},
		{Date: "2021-07-06", LowF: 50, HighF: 70},
		{Date: "2021-07-07", LowF: 40, HighF: 90},
	}

	got, err := GenerateSummary(records)
	require.NoError(t, err)
	assert.Contains(t, got, "3 Day Overview\n")
	assert.Contains(t, got, "lowest temperature will be 4.4°C, and will occur on Wednesday 07 July 2021.")
	assert.Contains(t, got, "highest temperature will be 32.2°C, and will occur on Wednesday 07 July 2021.")
}

func TestGenerateSummaryEmpty(t *testing.T) {
	_, err := GenerateSummary(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestGenerateSummaryInvalidDate(t *testing.T) {
	_, err := GenerateSummary([]WeatherRecord{{Date: "yesterday", LowF: 40, HighF: 80}})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestGenerateDailySummary(t *testing.T) {
	got, err := GenerateDailySummary(twoDays())
	require.NoError(t, err)

	want := "---- Monday 05 July 2021 ----\n" +
		"  Minimum Temperature: 4.4°C\n" +
		"  Maximum Temperature: 26.7°C\n\n" +
		"---- Tuesday 06 July 2021 ----\n" +
		"  Minimum Temperature: 7.2°C\n" +
		"  Maximum Temperature: 32.2°C\n\n"
	assert.Equal(t, want, got)
}

func TestGenerateDailySummaryEmpty(t *testing.T) {
	got, err := GenerateDailySummary([]WeatherRecord{})
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestGenerateDailySummaryInvalidDate(t *testing.T) {
	_, err := GenerateDailySummary([]WeatherRecord{{Date: "2021-02-30", LowF: 1, HighF: 2}})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
