package app_service

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"tip-tracker/db"
	"tip-tracker/inout"
	"tip-tracker/model/app_model"
	"tip-tracker/pkg/monitoring"
	"tip-tracker/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderCooldown 两次下单之间的最小间隔。纯时间差判断，跨天不重置。
const OrderCooldown = 60 * time.Second

// 订单核心错误定义
var (
	ErrCooldownActive     = errors.New("下单过于频繁，请稍后再试")
	ErrNoOrderToday       = errors.New("今天还没有订单，无法添加小费")
	ErrAmbiguousLastOrder = errors.New("最后一单时间戳重复，无法确定小费归属")
	ErrInvalidTipAmount   = errors.New("小费金额必须大于零")
)

// OrderService 配送订单核心。冷却基准（每个用户最近一单的毫秒时间戳）
// 保存在内存，只有远端写入成功后才更新，远端失败不改本地状态。
type OrderService struct {
	mu            sync.Mutex
	lastOrderTime map[int]int64
	now           func() time.Time
}

func NewOrderService() *OrderService {
	return &OrderService{
		lastOrderTime: make(map[int]int64),
		now:           time.Now,
	}
}

// LoadOrders 拉取用户全部订单（按时间戳升序），并用最近一单刷新冷却基准
func (s *OrderService) LoadOrders(uid int) ([]app_model.DeliveryOrder, error) {
	var orders []app_model.DeliveryOrder
	err := db.Dao.Where("user_id = ?", uid).Order("timestamp ASC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}

	if len(orders) > 0 {
		last := orders[len(orders)-1].Timestamp
		s.mu.Lock()
		if last > s.lastOrderTime[uid] {
			s.lastOrderTime[uid] = last
		}
		s.mu.Unlock()
	}
	return orders, nil
}

// TodayOrders 当天订单（按时间戳升序）
func (s *OrderService) TodayOrders(uid int) ([]app_model.DeliveryOrder, error) {
	today := utils.FormatDate(s.now())
	var orders []app_model.DeliveryOrder
	err := db.Dao.Where("user_id = ? AND date = ?", uid, today).Order("timestamp ASC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}
	return orders, nil
}

// OrdersInRange 日期范围内的订单（报表用），按时间戳升序
func (s *OrderService) OrdersInRange(uid int, start, end string) ([]app_model.DeliveryOrder, error) {
	var orders []app_model.DeliveryOrder
	err := db.Dao.Where("user_id = ? AND date BETWEEN ? AND ?", uid, start, end).
		Order("timestamp ASC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}
	return orders, nil
}

// CooldownRemaining 距离下一次可下单还需等待的时长，0 表示可以下单
func (s *OrderService) CooldownRemaining(uid int, now time.Time) time.Duration {
	s.mu.Lock()
	last := s.lastOrderTime[uid]
	s.mu.Unlock()

	if last == 0 {
		return 0
	}
	elapsed := now.Sub(time.UnixMilli(last))
	if elapsed >= OrderCooldown {
		return 0
	}
	return OrderCooldown - elapsed
}

// seedLastOrderTime 冷却基准缺失时（进程重启后第一次下单）从数据库补一次
func (s *OrderService) seedLastOrderTime(uid int) {
	s.mu.Lock()
	_, ok := s.lastOrderTime[uid]
	s.mu.Unlock()
	if ok {
		return
	}

	var last app_model.DeliveryOrder
	err := db.Dao.Where("user_id = ?", uid).Order("timestamp DESC").First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("读取冷却基准失败: uid=%d, error=%v", uid, err)
	}

	s.mu.Lock()
	s.lastOrderTime[uid] = last.Timestamp
	s.mu.Unlock()
}

// AddOrder 记一单。冷却期内直接拒绝，不访问数据库；
// 入库成功后才更新冷却基准，远端写失败时本地状态保持不变
func (s *OrderService) AddOrder(uid int) (*app_model.DeliveryOrder, error) {
	s.seedLastOrderTime(uid)

	now := s.now()
	if remaining := s.CooldownRemaining(uid, now); remaining > 0 {
		monitoring.RecordCooldownRejection()
		return nil, fmt.Errorf("%w（剩余 %d 秒）", ErrCooldownActive, int(remaining.Seconds())+1)
	}

	order := app_model.DeliveryOrder{
		No:         uuid.NewString(),
		UserId:     uid,
		Date:       utils.FormatDate(now),
		Timestamp:  now.UnixMilli(),
		TipAmount:  decimal.Zero,
		CreateTime: now,
		UpdateTime: now,
	}
	if err := db.Dao.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("订单入库失败: %w", err)
	}

	s.mu.Lock()
	s.lastOrderTime[uid] = order.Timestamp
	s.mu.Unlock()

	monitoring.RecordOrderCreated()
	return &order, nil
}

// CooldownUntil 下一次可下单的毫秒时间戳
func (s *OrderService) CooldownUntil(uid int) int64 {
	s.mu.Lock()
	last := s.lastOrderTime[uid]
	s.mu.Unlock()
	if last == 0 {
		return 0
	}
	return last + OrderCooldown.Milliseconds()
}

// AttachTip 给当天最后一单附加小费，重复调用会覆盖之前的小费。
// 目标是当天时间戳最大的一单；最大时间戳并列时拒绝，
// 避免把小费记到不确定的一单上
func (s *OrderService) AttachTip(uid int, tip inout.AttachTipReq) (*app_model.DeliveryOrder, error) {
	if !tip.Amount.IsPositive() {
		return nil, ErrInvalidTipAmount
	}

	todays, err := s.TodayOrders(uid)
	if err != nil {
		return nil, err
	}
	if len(todays) == 0 {
		return nil, ErrNoOrderToday
	}

	last := todays[len(todays)-1]
	if len(todays) > 1 && todays[len(todays)-2].Timestamp == last.Timestamp {
		return nil, ErrAmbiguousLastOrder
	}

	updates := map[string]interface{}{
		"tip_type":    tip.Type,
		"tip_amount":  tip.Amount,
		"update_time": s.now(),
	}
	err = db.Dao.Model(&app_model.DeliveryOrder{}).
		Where("id = ? AND user_id = ?", last.Id, uid).
		Updates(updates).Error
	if err != nil {
		return nil, fmt.Errorf("小费写入失败: %w", err)
	}

	last.TipType = tip.Type
	last.TipAmount = tip.Amount
	monitoring.RecordTipAttached(tip.Type)
	return &last, nil
}

// ResetAll 删除用户全部订单并清空冷却基准
func (s *OrderService) ResetAll(uid int) error {
	err := db.Dao.Where("user_id = ?", uid).Delete(&app_model.DeliveryOrder{}).Error
	if err != nil {
		return fmt.Errorf("清空订单失败: %w", err)
	}

	s.mu.Lock()
	s.lastOrderTime[uid] = 0
	s.mu.Unlock()
	return nil
}
