package app_service

import (
	"strings"
	"testing"
	"time"

	"tip-tracker/model/app_model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportOrder(date string, hour, min, sec int, tipType string, amount string) app_model.DeliveryOrder {
	day, _ := time.ParseInLocation("2006-01-02", date, time.Local)
	ts := time.Date(day.Year(), day.Month(), day.Day(), hour, min, sec, 0, time.Local)
	return app_model.DeliveryOrder{
		Date:      date,
		Timestamp: ts.UnixMilli(),
		TipType:   tipType,
		TipAmount: decimal.RequireFromString(amount),
	}
}

func TestBuildCSV(t *testing.T) {
	orders := []app_model.DeliveryOrder{
		reportOrder("2024-03-01", 9, 15, 0, app_model.TipTypeCash, "5.00"),
		reportOrder("2024-03-01", 12, 30, 45, "", "0"),
		reportOrder("2024-03-02", 18, 5, 9, app_model.TipTypePrepaid, "3.5"),
	}

	csv := BuildCSV(orders)
	lines := strings.Split(csv, "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "Date,Time,Tip Type,Tip Amount", lines[0])
	assert.Equal(t, "2024-03-01,09:15:00,cash,5.00", lines[1])
	// 无小费：类型 N/A，金额 0.00
	assert.Equal(t, "2024-03-01,12:30:45,N/A,0.00", lines[2])
	// 金额固定两位小数
	assert.Equal(t, "2024-03-02,18:05:09,prepaid,3.50", lines[3])
}

func TestBuildCSVEmpty(t *testing.T) {
	csv := BuildCSV(nil)
	assert.Equal(t, "Date,Time,Tip Type,Tip Amount", csv)
}
