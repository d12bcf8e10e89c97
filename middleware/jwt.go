package middleware

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"tip-tracker/pkg/jwt"
	"tip-tracker/pkg/response"
	"tip-tracker/redis"

	"github.com/gin-gonic/gin"
	jwtLib "github.com/golang-jwt/jwt/v5"
)

// 简单的令牌缓存，报表下载链接会被分享端反复拉取
var (
	tokenCache = make(map[string]tokenCacheEntry)
	cacheMutex = &sync.RWMutex{}
)

type tokenCacheEntry struct {
	UserID    int
	ExpiresAt time.Time
}

// AppJWTAuth 中间件，检查token。报表下载场景允许通过 query 参数携带
// token（移动端分享组件无法设置请求头）
func AppJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Request.Header.Get("Authorization")

		var uid int
		var err error
		if token == "" {
			// query 参数路径走带缓存的解析
			queryToken := c.Query("token")
			if queryToken == "" {
				response.Abort(c, response.AUTH_ERROR, "请求未携带token，无权限访问")
				return
			}
			uid, err = ParseTokenGetUIDWithCache(queryToken)
			if err != nil {
				response.Abort(c, response.AUTH_ERROR, err.Error())
				return
			}
		} else {
			// 去掉Bearer前缀
			if len(token) > 7 && token[:7] == "Bearer " {
				token = token[7:]
			}
			claims, parseErr := jwt.ParseAppToken(token)
			if parseErr != nil {
				if parseErr == jwt.ErrTokenExpired {
					response.Abort(c, response.AUTH_ERROR, "授权已过期")
					return
				}
				response.Abort(c, response.AUTH_ERROR, parseErr.Error())
				return
			}
			uid = claims.UID
		}

		// Redis 中无会话记录视为已注销
		if _, err := redis.GetToken(strconv.Itoa(uid)); err != nil {
			response.Abort(c, response.AUTH_ERROR, "会话已失效，请重新登录")
			return
		}

		// 继续交由下一个路由处理,并将解析出的信息传递下去
		c.Set("uid", uid)
		c.Next()
	}
}

// ParseTokenGetUIDWithCache 解析JWT令牌并返回用户ID，使用缓存提高性能
func ParseTokenGetUIDWithCache(tokenString string) (int, error) {
	// 检查缓存
	cacheMutex.RLock()
	entry, found := tokenCache[tokenString]
	cacheMutex.RUnlock()

	if found && time.Now().Before(entry.ExpiresAt) {
		return entry.UserID, nil
	}

	signingKey := os.Getenv("JWT_SIGNING_KEY")
	if signingKey == "" {
		signingKey = "default-secret-key"
	}

	token, err := jwtLib.Parse(tokenString, func(token *jwtLib.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwtLib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(signingKey), nil
	})
	if err != nil {
		return 0, fmt.Errorf("无效令牌: %w", err)
	}

	claims, ok := token.Claims.(jwtLib.MapClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("无效令牌")
	}

	uid, ok := claims["uid"].(float64)
	if !ok {
		return 0, fmt.Errorf("令牌中无法找到用户ID")
	}

	// 缓存结果，过期时间不超过令牌本身
	expiresAt := time.Now().Add(30 * time.Minute)
	if exp, ok := claims["exp"].(float64); ok {
		expTime := time.Unix(int64(exp), 0)
		if expTime.Before(expiresAt) {
			expiresAt = expTime
		}
	}

	cacheMutex.Lock()
	tokenCache[tokenString] = tokenCacheEntry{
		UserID:    int(uid),
		ExpiresAt: expiresAt,
	}
	cacheMutex.Unlock()

	return int(uid), nil
}

// 定期清理过期缓存项的协程
func init() {
	go func() {
		for {
			time.Sleep(15 * time.Minute)
			cleanExpiredTokens()
		}
	}()
}

// cleanExpiredTokens 清理过期的令牌
func cleanExpiredTokens() {
	now := time.Now()
	cacheMutex.Lock()
	defer cacheMutex.Unlock()

	for token, entry := range tokenCache {
		if now.After(entry.ExpiresAt) {
			delete(tokenCache, token)
		}
	}
}
