package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// unmatchedRoute 未匹配路由时使用的 path 标签，避免任意路径撑大标签基数
const unmatchedRoute = "unmatched"

var (
	apiMetricsOnce sync.Once

	apiRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blockverify",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "blockverify",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "API request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "path"},
	)

	apiRequestSize = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace:  "blockverify",
			Subsystem:  "api",
			Name:       "request_size_bytes",
			Help:       "API request size in bytes",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"method", "path"},
	)
)

// Metrics 指标收集中间件
type Metrics struct{}

// NewMetrics 创建指标中间件，指标在首次创建时注册到默认 Registry
func NewMetrics() *Metrics {
	apiMetricsOnce.Do(func() {
		prometheus.MustRegister(apiRequestCounter, apiRequestDuration, apiRequestSize)
	})
	return &Metrics{}
}

// Middleware 返回Gin中间件
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}
		if size := c.Request.ContentLength; size > 0 {
			apiRequestSize.WithLabelValues(method, path).Observe(float64(size))
		}
		apiRequestCounter.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		apiRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
