package app

import (
	"tip-tracker/inout"
	"tip-tracker/pkg/security"
	"tip-tracker/services/app_service"

	"github.com/gin-gonic/gin"
)

var userService = &app_service.UserService{}

func Register(c *gin.Context) {
	var params inout.AddUserAppReq
	if err := c.ShouldBind(&params); err != nil {
		Resp.Err(c, 20001, err.Error())
		return
	}

	// 验证输入安全性
	if err := security.ValidateInput(params.Username); err != nil {
		Resp.Err(c, 20001, "用户名包含非法字符")
		return
	}

	// Check if the phone number already exists
	if userService.UserExists(params.Phone) {
		Resp.Err(c, 20002, "用户已存在")
		return
	}

	// Create new user
	newUserApp, err := userService.CreateUser(params.Username, params.Password, params.Phone)
	if err != nil {
		Resp.Err(c, 20001, err.Error())
		return
	}
	Resp.Succ(c, newUserApp)
}

// Login
func Login(c *gin.Context) {
	var params inout.LoginAppReq
	if err := c.ShouldBind(&params); err != nil {
		Resp.Err(c, 20001, err.Error())
		return
	}

	userApp, err := userService.Login(params.Phone, params.Password)
	if err != nil {
		Resp.Err(c, 20001, err.Error())
		return
	}
	Resp.Succ(c, userApp)
}

// GetUserInfo
func GetUserInfo(c *gin.Context) {
	uid := c.GetInt("uid")
	user, err := userService.GetUserInfo(uid)
	if err != nil {
		Resp.Err(c, 20001, err.Error())
		return
	}
	Resp.Succ(c, user)
}

// Refresh
func Refresh(c *gin.Context) {
	uid := c.GetInt("uid")
	token, err := userService.Refresh(uid)
	if err != nil {
		Resp.Err(c, 20001, err.Error())
		return
	}
	Resp.Succ(c, inout.RefreshRes{AccessToken: token})
}

// Logout 注销当前会话
func Logout(c *gin.Context) {
	uid := c.GetInt("uid")
	if err := userService.Logout(uid); err != nil {
		Resp.Err(c, 20001, err.Error())
		return
	}
	Resp.Succ(c, true)
}
