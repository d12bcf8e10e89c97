package app_service

import (
	"github.com/shopspring/decimal"

	"tip-tracker/inout"
	"tip-tracker/model/app_model"
)

// BuildDailySummary 汇总某一天的订单：订单数、现金小费合计、预付小费合计。
// 纯函数，不访问数据库；空输入或无匹配日期返回全零汇总。
func BuildDailySummary(orders []app_model.DeliveryOrder, date string) inout.DailySummary {
	summary := inout.DailySummary{
		Date:        date,
		CashTips:    decimal.Zero,
		PrepaidTips: decimal.Zero,
	}

	for _, order := range orders {
		if order.Date != date {
			continue
		}
		summary.OrderCount++
		switch order.TipType {
		case app_model.TipTypeCash:
			summary.CashTips = summary.CashTips.Add(order.TipAmount)
		case app_model.TipTypePrepaid:
			summary.PrepaidTips = summary.PrepaidTips.Add(order.TipAmount)
		}
	}
	return summary
}

// BuildMonthlySummaries 按 YYYY-MM 分组，每个出现过订单的日期生成一条日汇总，
// 月内顺序保持该日期在订单序列中首次出现的先后
func BuildMonthlySummaries(orders []app_model.DeliveryOrder) map[string][]inout.DailySummary {
	summaries := make(map[string][]inout.DailySummary)
	seen := make(map[string]bool)

	for _, order := range orders {
		monthKey := order.MonthKey()
		if monthKey == "" || seen[order.Date] {
			continue
		}
		seen[order.Date] = true
		summaries[monthKey] = append(summaries[monthKey], BuildDailySummary(orders, order.Date))
	}
	return summaries
}

// AverageTipPerOrder 平均每单小费，订单数为零时返回零，避免除零
func AverageTipPerOrder(summary inout.DailySummary) decimal.Decimal {
	if summary.OrderCount == 0 {
		return decimal.Zero
	}
	total := summary.CashTips.Add(summary.PrepaidTips)
	return total.DivRound(decimal.NewFromInt(int64(summary.OrderCount)), 2)
}
