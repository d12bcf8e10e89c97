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

var reportService = &app_service.ReportService{}

// DownloadMonthlyReport 下载月度 CSV 报表，month 缺省为当前月份
func DownloadMonthlyReport(c *gin.Context) {
	var params inout.MonthlyReportReq
	if err := c.ShouldBind(&params); err != nil {
		Resp.Err(c, response.INVALID_PARAMS, err.Error())
		return
	}
	if params.Month == "" {
		params.Month = time.Now().Format(utils.MonthFormat)
	}

	uid := c.GetInt("uid")
	content, filename, err := reportService.MonthlyCSV(orderService, uid, params.Month)
	if err != nil {
		log.Printf("报表生成失败: uid=%d, month=%s, error=%v", uid, params.Month, err)
		Resp.Err(c, response.INTERNAL_ERROR, "报表生成失败")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "text/csv; charset=utf-8", []byte(content))
}
