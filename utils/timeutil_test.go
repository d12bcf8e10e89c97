package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 3, 1, 23, 59, 59, 0, time.Local)
	assert.Equal(t, "2024-03-01", FormatDate(d))
	assert.Equal(t, "", FormatDate(time.Time{}))
}

func TestCalendarDayMatchesTimestamp(t *testing.T) {
	d := time.Date(2024, 3, 1, 23, 59, 59, 0, time.Local)
	assert.Equal(t, FormatDate(d), CalendarDay(d.UnixMilli()))
}

func TestTimeOfDay(t *testing.T) {
	d := time.Date(2024, 3, 1, 9, 5, 7, 0, time.Local)
	assert.Equal(t, "09:05:07", TimeOfDay(d.UnixMilli()))
}

func TestMonthRange(t *testing.T) {
	start, end, err := MonthRange("2024-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", start)
	assert.Equal(t, "2024-03-31", end)

	// 闰年二月
	start, end, err = MonthRange("2024-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", start)
	assert.Equal(t, "2024-02-29", end)

	_, _, err = MonthRange("2024/03")
	assert.Error(t, err)
}

func TestMonthReportFileName(t *testing.T) {
	assert.Equal(t, "monthly_report_March.csv", MonthReportFileName("2024-03"))
	assert.Equal(t, "monthly_report.csv", MonthReportFileName("bad"))
}
