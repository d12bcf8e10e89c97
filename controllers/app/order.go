package app

import (
	"errors"
	"log"

	"tip-tracker/inout"
	"tip-tracker/model/app_model"
	"tip-tracker/pkg/response"
	"tip-tracker/services/app_service"
	"tip-tracker/utils"

	"github.com/gin-gonic/gin"
)

var orderService = app_service.NewOrderService()

// AddOrder 记一单。冷却期内返回 20005，前端据此展示剩余等待时间
func AddOrder(c *gin.Context) {
	uid := c.GetInt("uid")

	order, err := orderService.AddOrder(uid)
	if err != nil {
		if errors.Is(err, app_service.ErrCooldownActive) {
			Resp.Err(c, response.TOO_MANY_REQUESTS, err.Error())
			return
		}
		log.Printf("下单失败: uid=%d, error=%v", uid, err)
		Resp.Err(c, response.INTERNAL_ERROR, err.Error())
		return
	}

	Resp.Succ(c, inout.AddOrderResp{
		Order:         formatOrder(*order),
		CooldownUntil: orderService.CooldownUntil(uid),
	})
}

// AttachTip 给当天最后一单附加小费，重复调用覆盖之前的值
func AttachTip(c *gin.Context) {
	var params inout.AttachTipReq
	if err := c.ShouldBind(&params); err != nil {
		Resp.Err(c, response.INVALID_PARAMS, err.Error())
		return
	}

	uid := c.GetInt("uid")
	order, err := orderService.AttachTip(uid, params)
	if err != nil {
		switch {
		case errors.Is(err, app_service.ErrNoOrderToday):
			Resp.Err(c, response.NOT_FOUND, err.Error())
		case errors.Is(err, app_service.ErrAmbiguousLastOrder),
			errors.Is(err, app_service.ErrInvalidTipAmount):
			Resp.Err(c, response.INVALID_PARAMS, err.Error())
		default:
			log.Printf("小费附加失败: uid=%d, error=%v", uid, err)
			Resp.Err(c, response.INTERNAL_ERROR, err.Error())
		}
		return
	}
	Resp.Succ(c, formatOrder(*order))
}

// GetOrderList 用户全部订单。查询失败时记日志并返回空列表，不中断页面
func GetOrderList(c *gin.Context) {
	uid := c.GetInt("uid")

	orders, err := orderService.LoadOrders(uid)
	if err != nil {
		log.Printf("加载订单失败: uid=%d, error=%v", uid, err)
		utils.Succ(c, inout.OrderListResp{Total: 0, List: []inout.OrderItem{}})
		return
	}
	utils.Succ(c, formatOrderList(orders))
}

// GetTodayOrders 当天订单
func GetTodayOrders(c *gin.Context) {
	uid := c.GetInt("uid")

	orders, err := orderService.TodayOrders(uid)
	if err != nil {
		log.Printf("加载当天订单失败: uid=%d, error=%v", uid, err)
		utils.Succ(c, inout.OrderListResp{Total: 0, List: []inout.OrderItem{}})
		return
	}
	utils.Succ(c, formatOrderList(orders))
}

// ResetData 清空用户全部订单
func ResetData(c *gin.Context) {
	uid := c.GetInt("uid")

	if err := orderService.ResetAll(uid); err != nil {
		log.Printf("清空订单失败: uid=%d, error=%v", uid, err)
		Resp.Err(c, response.INTERNAL_ERROR, err.Error())
		return
	}
	Resp.Succ(c, true)
}

// formatOrder 格式化单条订单
func formatOrder(order app_model.DeliveryOrder) inout.OrderItem {
	return inout.OrderItem{
		Id:         order.Id,
		No:         order.No,
		Date:       order.Date,
		Timestamp:  order.Timestamp,
		TipType:    order.TipType,
		TipAmount:  order.TipAmount,
		CreateTime: order.CreateTime.Format(utils.DateTimeFormat),
	}
}

// formatOrderList 格式化订单列表
func formatOrderList(orders []app_model.DeliveryOrder) inout.OrderListResp {
	formatted := make([]inout.OrderItem, len(orders))
	for i, order := range orders {
		formatted[i] = formatOrder(order)
	}
	return inout.OrderListResp{Total: len(formatted), List: formatted}
}
