package app_service

import (
	"fmt"
	"strings"

	"tip-tracker/model/app_model"
	"tip-tracker/pkg/monitoring"
	"tip-tracker/utils"
)

// ReportService 月度 CSV 报表
type ReportService struct{}

// CSV 固定表头。字段内容不含逗号，不做引号转义
var reportHeader = []string{"Date", "Time", "Tip Type", "Tip Amount"}

// BuildCSV 渲染订单序列为报表内容。纯函数，输入应已按时间戳升序。
// 无小费的订单类型输出 N/A，金额输出 0.00
func BuildCSV(orders []app_model.DeliveryOrder) string {
	lines := make([]string, 0, len(orders)+1)
	lines = append(lines, strings.Join(reportHeader, ","))

	for _, order := range orders {
		tipType := "N/A"
		if order.HasTip() {
			tipType = order.TipType
		}
		row := []string{
			order.Date,
			utils.TimeOfDay(order.Timestamp),
			tipType,
			order.TipAmount.StringFixed(2),
		}
		lines = append(lines, strings.Join(row, ","))
	}
	return strings.Join(lines, "\n")
}

// MonthlyCSV 导出用户某月（YYYY-MM）的订单报表，返回内容和文件名
func (s *ReportService) MonthlyCSV(orders *OrderService, uid int, month string) (string, string, error) {
	start, end, err := utils.MonthRange(month)
	if err != nil {
		return "", "", fmt.Errorf("月份格式错误: %w", err)
	}

	records, err := orders.OrdersInRange(uid, start, end)
	if err != nil {
		return "", "", err
	}

	monitoring.RecordReportDownload()
	return BuildCSV(records), utils.MonthReportFileName(month), nil
}
