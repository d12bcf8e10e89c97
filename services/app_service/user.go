package app_service

import (
	"fmt"
	"strconv"
	"time"

	"tip-tracker/db"
	"tip-tracker/model/app_model"
	"tip-tracker/pkg/jwt"
	"tip-tracker/pkg/monitoring"
	"tip-tracker/pkg/security"
	"tip-tracker/redis"
)

// TokenExpiry 会话 token 有效期
const TokenExpiry = 24 * time.Hour

type UserService struct{}

// CreateUser 注册新用户，密码使用 bcrypt 存储
func (s *UserService) CreateUser(username, password, phone string) (*app_model.UserApp, error) {
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}

	newUser := app_model.UserApp{
		Username:   username,
		Password:   hash,
		Phone:      phone,
		Enable:     true,
		CreateTime: time.Now(),
		UpdateTime: time.Now(),
	}
	if err := db.Dao.Create(&newUser).Error; err != nil {
		return nil, err
	}

	monitoring.RecordUserRegistration()
	return &newUser, nil
}

// UserExists 手机号是否已注册
func (s *UserService) UserExists(phone string) bool {
	var existingUser app_model.UserApp
	if err := db.Dao.Where("phone = ?", phone).First(&existingUser).Error; err == nil {
		return true
	}
	return false
}

// Login 校验密码并签发 token，token 同步存入 Redis
func (s *UserService) Login(phone, password string) (*app_model.UserApp, error) {
	var user app_model.UserApp
	if err := db.Dao.Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, fmt.Errorf("手机号不存在")
	}

	if !security.CheckPasswordHash(password, user.Password) {
		return nil, fmt.Errorf("密码不对")
	}

	token, err := jwt.GenerateAppToken(user.ID, TokenExpiry)
	if err != nil {
		return nil, err
	}
	user.Token = token

	// 存储 token 到 Redis，注销后即刻失效
	if err := redis.StoreToken(strconv.Itoa(user.ID), token, TokenExpiry); err != nil {
		return nil, err
	}

	monitoring.RecordUserLogin()
	return &user, nil
}

// Logout 注销：删除 Redis 中的会话 token，之后所有订单接口均不可达
func (s *UserService) Logout(uid int) error {
	return redis.DeleteToken(strconv.Itoa(uid))
}

// GetUserInfo 查询用户信息
func (s *UserService) GetUserInfo(uid int) (*app_model.UserApp, error) {
	var user app_model.UserApp
	if err := db.Dao.Where("id = ?", uid).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Refresh 重新签发 token 并刷新 Redis 中的会话
func (s *UserService) Refresh(uid int) (string, error) {
	token, err := jwt.GenerateAppToken(uid, TokenExpiry)
	if err != nil {
		return "", err
	}
	if err := redis.StoreToken(strconv.Itoa(uid), token, TokenExpiry); err != nil {
		return "", err
	}
	return token, nil
}
