package utils

import (
	"time"
)

// 常用时间格式常量
const (
	DateFormat     = "2006-01-02"
	MonthFormat    = "2006-01"
	DateTimeFormat = "2006-01-02 15:04:05"
	TimeFormat     = "15:04:05"
)

// FormatTime 格式化时间为字符串
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DateTimeFormat)
}

// FormatDate 格式化时间为日期字符串
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateFormat)
}

// CalendarDay 毫秒时间戳对应的本地日历日（YYYY-MM-DD）
func CalendarDay(millis int64) string {
	return time.UnixMilli(millis).Local().Format(DateFormat)
}

// TimeOfDay 毫秒时间戳对应的本地时刻（HH:MM:SS）
func TimeOfDay(millis int64) string {
	return time.UnixMilli(millis).Local().Format(TimeFormat)
}

// MonthRange 返回某月第一天和最后一天的日期字符串，month 形如 2006-01
func MonthRange(month string) (string, string, error) {
	start, err := time.ParseInLocation(MonthFormat, month, time.Local)
	if err != nil {
		return "", "", err
	}
	end := start.AddDate(0, 1, -1)
	return start.Format(DateFormat), end.Format(DateFormat), nil
}

// MonthReportFileName 月度报表文件名，如 monthly_report_March.csv
func MonthReportFileName(month string) string {
	t, err := time.ParseInLocation(MonthFormat, month, time.Local)
	if err != nil {
		return "monthly_report.csv"
	}
	return "monthly_report_" + t.Month().String() + ".csv"
}
