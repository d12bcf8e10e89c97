package app

import (
	"log"
	"time"

	"tip-tracker/inout"
	"tip-tracker/pkg/response"
	"tip-tracker/services/app_service"
	"tip-tracker/utils"

	"github.com/gin-gonic/gin"
)

// GetDailySummary 某一天的汇总，date 缺省为今天
func GetDailySummary(c *gin.Context) {
	var params inout.DailySummaryReq
	if err := c.ShouldBind(&params); err != nil {
		Resp.Err(c, response.INVALID_PARAMS, err.Error())
		return
	}
	if params.Date == "" {
		params.Date = utils.FormatDate(time.Now())
	}

	uid := c.GetInt("uid")
	orders, err := orderService.LoadOrders(uid)
	if err != nil {
		log.Printf("加载订单失败: uid=%d, error=%v", uid, err)
		Resp.Err(c, response.INTERNAL_ERROR, "查询汇总失败")
		return
	}

	summary := app_service.BuildDailySummary(orders, params.Date)
	Resp.Succ(c, inout.DailySummaryResp{
		DailySummary:       summary,
		AverageTipPerOrder: app_service.AverageTipPerOrder(summary),
	})
}

// GetMonthlySummaries 按月分组的日汇总，日历页用
func GetMonthlySummaries(c *gin.Context) {
	uid := c.GetInt("uid")

	orders, err := orderService.LoadOrders(uid)
	if err != nil {
		log.Printf("加载订单失败: uid=%d, error=%v", uid, err)
		Resp.Err(c, response.INTERNAL_ERROR, "查询汇总失败")
		return
	}

	Resp.Succ(c, inout.MonthlySummariesResp{
		Months: app_service.BuildMonthlySummaries(orders),
	})
}
