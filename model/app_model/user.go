package app_model

import (
	"time"
)

// UserApp 应用端用户
type UserApp struct {
	Token      string    `json:"token" gorm:"-"`
	ID         int       `json:"id"`
	Username   string    `json:"username"`
	Password   string    `json:"-" gorm:"column:password"`
	Phone      string    `json:"phone"`
	Enable     bool      `json:"enable"`
	CreateTime time.Time `json:"create_time" gorm:"column:create_time"`
	UpdateTime time.Time `json:"update_time" gorm:"column:update_time"`
}

func (UserApp) TableName() string {
	return "app_user"
}
