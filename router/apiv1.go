package router

import (
	"tip-tracker/controllers/app"
	"tip-tracker/inout"
	"tip-tracker/middleware"

	"github.com/gin-gonic/gin"
)

// InitApp app接口
func InitApp(r *gin.Engine) {
	r.Use(middleware.Cors())
	appGroup := r.Group("/api/app")

	// 使用通用请求日志中间件的组
	logGroup := appGroup.Group("/")
	logGroup.Use(middleware.RequestLogger("request_app_log"))
	{
		logGroup.POST("/register", middleware.ValidationMiddleware(&inout.AddUserAppReq{}), app.Register)
		//登录
		logGroup.POST("/login", middleware.ValidationMiddleware(&inout.LoginAppReq{}), app.Login)

		// 需要JWT验证的接口组
		authGroup := logGroup.Group("/")
		authGroup.Use(middleware.AppJWTAuth())
		{
			//用户信息
			authGroup.GET("/user/info", app.GetUserInfo)
			//刷新token
			authGroup.GET("/refresh", app.Refresh)
			//注销
			authGroup.POST("/logout", app.Logout)
			//记一单
			authGroup.POST("/order/add", app.AddOrder)
			//给当天最后一单加小费
			authGroup.POST("/order/tip", app.AttachTip)
			//全部订单
			authGroup.GET("/order/list", app.GetOrderList)
			//当天订单
			authGroup.GET("/order/today", app.GetTodayOrders)
			//清空订单
			authGroup.POST("/order/reset", app.ResetData)
			//日汇总
			authGroup.GET("/summary/daily", app.GetDailySummary)
			//月度日历汇总
			authGroup.GET("/summary/monthly", app.GetMonthlySummaries)
			//月度CSV报表下载
			authGroup.GET("/report/monthly", app.DownloadMonthlyReport)
		}
	}
}
