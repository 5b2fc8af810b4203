package clock

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// fetchFn 返回 (ok, offset, lastSync, lastError)
type fetchFn func() (bool, time.Duration, time.Time, error)

type clockCollector struct {
	fetch fetchFn

	offsetSeconds   *prometheus.Desc
	lastSyncSeconds *prometheus.Desc
	healthy         *prometheus.Desc
}

func (c *clockCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.offsetSeconds
	ch <- c.lastSyncSeconds
	ch <- c.healthy
}

func (c *clockCollector) Collect(ch chan<- prometheus.Metric) {
	ok, offset, lastSync, _ := c.fetch()
	ch <- prometheus.MustNewConstMetric(c.offsetSeconds, prometheus.GaugeValue, offset.Seconds())
	ch <- prometheus.MustNewConstMetric(c.lastSyncSeconds, prometheus.GaugeValue, float64(lastSync.Unix()))
	var healthy float64
	if ok {
		healthy = 1
	}
	ch <- prometheus.MustNewConstMetric(c.healthy, prometheus.GaugeValue, healthy)
}

// RegisterClockMetrics 在注册表中注册时钟指标采集器，重复注册视为成功
func RegisterClockMetrics(registerer prometheus.Registerer, fetch fetchFn) error {
	collector := &clockCollector{
		fetch: fetch,
		offsetSeconds: prometheus.NewDesc(
			"blockverify_clock_offset_seconds",
			"Positive means local time is behind NTP time",
			nil, nil,
		),
		lastSyncSeconds: prometheus.NewDesc(
			"blockverify_clock_last_sync_unix",
			"Last successful sync Unix timestamp",
			nil, nil,
		),
		healthy: prometheus.NewDesc(
			"blockverify_clock_healthy",
			"1 if clock is healthy, otherwise 0",
			nil, nil,
		),
	}
	err := registerer.Register(collector)
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		return nil
	}
	return err
}
