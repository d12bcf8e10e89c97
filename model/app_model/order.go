package app_model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 小费类型常量
const (
	TipTypeCash    = "cash"
	TipTypePrepaid = "prepaid"
)

// DeliveryOrder 配送订单表，每条记录对应一次"记一单"操作
type DeliveryOrder struct {
	Id         int             `json:"id" gorm:"primaryKey;autoIncrement"`
	No         string          `json:"no" gorm:"column:no;type:varchar(64);uniqueIndex"`
	UserId     int             `json:"user_id" gorm:"column:user_id;index:idx_user_date;not null"`
	Date       string          `json:"date" gorm:"column:date;index:idx_user_date;not null;type:date" comment:"下单当天（本地时区）"`
	Timestamp  int64           `json:"timestamp" gorm:"column:timestamp;not null" comment:"毫秒时间戳"`
	TipType    string          `json:"tip_type" gorm:"column:tip_type;type:varchar(16);default:''" comment:"cash/prepaid，空串表示无小费"`
	TipAmount  decimal.Decimal `json:"tip_amount" gorm:"column:tip_amount;type:decimal(12,2);default:0"`
	CreateTime time.Time       `json:"create_time" gorm:"column:create_time"`
	UpdateTime time.Time       `json:"update_time" gorm:"column:update_time"`
}

// HasTip 是否已附加小费
func (o DeliveryOrder) HasTip() bool {
	return o.TipType != ""
}

// MonthKey 订单所属月份（YYYY-MM）
func (o DeliveryOrder) MonthKey() string {
	if len(o.Date) < 7 {
		return ""
	}
	return o.Date[:7]
}

func (DeliveryOrder) TableName() string {
	return "delivery_order"
}
