package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"

	metricsutil "github.com/weisyn/blockverify/pkg/utils/metrics"
)

// ModuleCollector 将各模块上报的内存统计导出为 Prometheus 指标
//
// 每次抓取时调用 metricsutil.CollectAllModuleStats，不做周期采样。
type ModuleCollector struct {
	objects     *prometheus.Desc
	approxBytes *prometheus.Desc
	cacheItems  *prometheus.Desc
	heapAlloc   *prometheus.Desc
	goroutines  *prometheus.Desc
}

var _ prometheus.Collector = (*ModuleCollector)(nil)

// NewModuleCollector 创建模块内存收集器
func NewModuleCollector() *ModuleCollector {
	return &ModuleCollector{
		objects: prometheus.NewDesc(
			"blockverify_module_objects",
			"Main object count reported by each module",
			[]string{"module"}, nil,
		),
		approxBytes: prometheus.NewDesc(
			"blockverify_module_approx_bytes",
			"Approximate memory usage reported by each module",
			[]string{"module"}, nil,
		),
		cacheItems: prometheus.NewDesc(
			"blockverify_module_cache_items",
			"Cache entries reported by each module",
			[]string{"module"}, nil,
		),
		heapAlloc: prometheus.NewDesc(
			"blockverify_runtime_heap_alloc_bytes",
			"Go runtime heap allocation",
			nil, nil,
		),
		goroutines: prometheus.NewDesc(
			"blockverify_runtime_goroutines",
			"Number of goroutines",
			nil, nil,
		),
	}
}

// Describe 实现 prometheus.Collector
func (c *ModuleCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.objects
	ch <- c.approxBytes
	ch <- c.cacheItems
	ch <- c.heapAlloc
	ch <- c.goroutines
}

// Collect 实现 prometheus.Collector
func (c *ModuleCollector) Collect(ch chan<- prometheus.Metric) {
	for _, s := range metricsutil.CollectAllModuleStats() {
		ch <- prometheus.MustNewConstMetric(c.objects, prometheus.GaugeValue, float64(s.Objects), s.Module)
		ch <- prometheus.MustNewConstMetric(c.approxBytes, prometheus.GaugeValue, float64(s.ApproxBytes), s.Module)
		ch <- prometheus.MustNewConstMetric(c.cacheItems, prometheus.GaugeValue, float64(s.CacheItems), s.Module)
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	ch <- prometheus.MustNewConstMetric(c.heapAlloc, prometheus.GaugeValue, float64(ms.HeapAlloc))
	ch <- prometheus.MustNewConstMetric(c.goroutines, prometheus.GaugeValue, float64(runtime.NumGoroutine()))
}
