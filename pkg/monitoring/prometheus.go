package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus 指标定义
var (
	// HTTP 请求相关指标
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时分布",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// 数据库相关指标
	dbConnectionsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_in_use",
			Help: "当前使用中的数据库连接数",
		},
	)

	// 业务相关指标
	ordersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "delivery_orders_created_total",
			Help: "配送订单创建总数",
		},
	)

	cooldownRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "delivery_order_cooldown_rejections_total",
			Help: "因冷却期被拒绝的下单总数",
		},
	)

	tipsAttached = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_tips_attached_total",
			Help: "附加小费总数",
		},
		[]string{"tip_type"},
	)

	reportDownloads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "monthly_report_downloads_total",
			Help: "月度报表下载总数",
		},
	)

	userRegistrations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "user_registrations_total",
			Help: "用户注册总数",
		},
	)

	userLogins = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "user_logins_total",
			Help: "用户登录总数",
		},
	)
)

// PrometheusMiddleware Gin中间件，用于收集HTTP指标
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			statusCode,
		).Inc()

		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

// UpdateDBConnections 更新数据库连接数指标
func UpdateDBConnections(inUse int) {
	dbConnectionsInUse.Set(float64(inUse))
}

// RecordOrderCreated 记录一次成功下单
func RecordOrderCreated() {
	ordersCreated.Inc()
}

// RecordCooldownRejection 记录一次冷却期拒单
func RecordCooldownRejection() {
	cooldownRejections.Inc()
}

// RecordTipAttached 记录一次小费附加
func RecordTipAttached(tipType string) {
	tipsAttached.WithLabelValues(tipType).Inc()
}

// RecordReportDownload 记录一次报表下载
func RecordReportDownload() {
	reportDownloads.Inc()
}

// RecordUserRegistration 记录一次用户注册
func RecordUserRegistration() {
	userRegistrations.Inc()
}

// RecordUserLogin 记录一次用户登录
func RecordUserLogin() {
	userLogins.Inc()
}
