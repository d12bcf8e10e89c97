package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tip-tracker/config"
	"tip-tracker/db"
	"tip-tracker/middleware"
	pkgconfig "tip-tracker/pkg/config"
	"tip-tracker/pkg/monitoring"
	"tip-tracker/redis"
	"tip-tracker/router"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 构建时注入的变量
var (
	Version            = "dev"
	BuildTime          = "unknown"
	GitCommit          = "unknown"
	DefaultServiceName = "tip-tracker"
	DefaultPort        = "8801"
)

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	// 处理命令行参数
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-version", "--version", "-v":
			fmt.Printf("Tip Tracker\n")
			fmt.Printf("Version: %s\n", Version)
			fmt.Printf("Build Time: %s\n", BuildTime)
			fmt.Printf("Git Commit: %s\n", GitCommit)
			return
		case "-help", "--help", "-h":
			fmt.Printf("Tip Tracker - 个人配送记单服务\n\n")
			fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
			fmt.Printf("Options:\n")
			fmt.Printf("  -version, -v     显示版本信息\n")
			fmt.Printf("  -help, -h        显示帮助信息\n\n")
			fmt.Printf("Environment Variables:\n")
			fmt.Printf("  SERVICE_NAME     服务名称 (默认: %s)\n", DefaultServiceName)
			fmt.Printf("  PORT             服务端口 (默认: %s)\n", DefaultPort)
			return
		}
	}

	serviceName := getEnv("SERVICE_NAME", DefaultServiceName)
	port := getEnv("PORT", DefaultPort)

	log.Printf("启动 %s (端口: %s)...", serviceName, port)

	// 初始化 Redis 客户端
	redisConfig := config.LoadConfig()
	redis.InitRedis(redisConfig)

	// 初始化配置
	pkgconfig.InitConfig()

	// 设置时区，订单日期按本地日历日归档
	tz := pkgconfig.GetConfig().Server.Timezone
	loc, err := time.LoadLocation(tz)
	if err != nil {
		panic("无法加载时区: " + err.Error())
	}
	time.Local = loc

	// 初始化数据库和路由
	db.Init()

	// 设置Gin模式
	gin.SetMode(gin.ReleaseMode)
	app := gin.New()

	// 添加全局中间件
	app.Use(middleware.Recovery())
	app.Use(middleware.RequestID())

	// 添加CORS中间件 - 解决跨域问题
	app.Use(middleware.Cors())

	// 添加 Prometheus 监控中间件
	app.Use(monitoring.PrometheusMiddleware())

	// 添加监控指标端点
	app.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 健康检查端点
	app.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":   serviceName,
			"status":    "healthy",
			"timestamp": time.Now(),
			"redis":     redis.IsConnected(),
		})
	})

	// 初始化App端路由
	router.InitApp(app)

	// 创建HTTP服务器
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      app,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 启动服务器
	go func() {
		log.Printf("服务器启动在端口 :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 关闭HTTP服务器
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("服务器强制关闭: %v", err)
	}

	// 关闭Redis连接
	redis.CloseRedis()

	log.Printf("服务器已安全关闭")
}
