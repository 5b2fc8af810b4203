package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	metricsiface "github.com/weisyn/blockverify/pkg/interfaces/infrastructure/metrics"
	metricsutil "github.com/weisyn/blockverify/pkg/utils/metrics"
)

type fixedReporter struct {
	stats metricsiface.ModuleMemoryStats
}

func (r fixedReporter) ModuleName() string { return r.stats.Module }
func (r fixedReporter) CollectMemoryStats() metricsiface.ModuleMemoryStats {
	return r.stats
}

func TestModuleCollector_ExportsRegisteredReporters(t *testing.T) {
	// Arrange
	metricsutil.ClearAllMemoryReporters()
	t.Cleanup(metricsutil.ClearAllMemoryReporters)
	metricsutil.RegisterMemoryReporter(fixedReporter{metricsiface.ModuleMemoryStats{
		Module: "verify.chainstate", Objects: 3, ApproxBytes: 300, CacheItems: 0,
	}})

	registry := prometheus.NewRegistry()
	require.NoError(t, RegisterModuleCollector(ModuleInput{Registerer: registry}))

	// Act
	families, err := registry.Gather()
	require.NoError(t, err)

	// Assert
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["blockverify_module_objects"])
	assert.True(t, names["blockverify_runtime_goroutines"])

	collector := NewModuleCollector()
	assert.Equal(t, 5, testutil.CollectAndCount(collector, "blockverify_module_objects",
		"blockverify_module_approx_bytes", "blockverify_module_cache_items",
		"blockverify_runtime_heap_alloc_bytes", "blockverify_runtime_goroutines"))
}

func TestRegisterModuleCollector_Twice_NoError(t *testing.T) {
	registry := prometheus.NewRegistry()

	require.NoError(t, RegisterModuleCollector(ModuleInput{Registerer: registry}))
	assert.NoError(t, RegisterModuleCollector(ModuleInput{Registerer: registry}))
}
