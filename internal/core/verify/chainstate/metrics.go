package chainstate

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	chainMetricsOnce sync.Once

	chainHeightGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "blockverify",
		Subsystem: "chain",
		Name:      "height",
		Help:      "Height of the current chain tip.",
	})
)

// initChainMetrics 在首次使用时注册链状态指标
func initChainMetrics() {
	chainMetricsOnce.Do(func() {
		prometheus.MustRegister(chainHeightGauge)
	})
}
