package inout

import (
	"github.com/shopspring/decimal"
)

type AttachTipReq struct {
	Type   string          `form:"type" json:"type" binding:"required,oneof=cash prepaid"`
	Amount decimal.Decimal `form:"amount" json:"amount" binding:"required"`
}

type DailySummaryReq struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

type MonthlyReportReq struct {
	Month string `form:"month" binding:"omitempty,datetime=2006-01"`
}

type OrderItem struct {
	Id         int             `json:"id"`
	No         string          `json:"no"`
	Date       string          `json:"date"`
	Timestamp  int64           `json:"timestamp"`
	TipType    string          `json:"tip_type"`
	TipAmount  decimal.Decimal `json:"tip_amount"`
	CreateTime string          `json:"create_time"`
}

type OrderListResp struct {
	Total int         `json:"total"`
	List  []OrderItem `json:"list"`
}

// AddOrderResp 下单响应，附带下一次可下单的毫秒时间戳
type AddOrderResp struct {
	Order         OrderItem `json:"order"`
	CooldownUntil int64     `json:"cooldown_until"`
}

// DailySummary 某一天的汇总，只做派生计算，不落库
type DailySummary struct {
	Date        string          `json:"date"`
	OrderCount  int             `json:"order_count"`
	CashTips    decimal.Decimal `json:"cash_tips"`
	PrepaidTips decimal.Decimal `json:"prepaid_tips"`
}

type DailySummaryResp struct {
	DailySummary
	AverageTipPerOrder decimal.Decimal `json:"average_tip_per_order"`
}

// MonthlySummariesResp 按 YYYY-MM 分组的日汇总
type MonthlySummariesResp struct {
	Months map[string][]DailySummary `json:"months"`
}
