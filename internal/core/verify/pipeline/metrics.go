package pipeline

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/weisyn/blockverify/pkg/interfaces/verify"
)

// 流水线 Prometheus 指标，注册在默认 Registry 上，由 /metrics 统一抓取

// stateCancelled 非终态结束（上下文取消）时使用的 state 标签
const stateCancelled = "cancelled"

var (
	pipelineMetricsOnce sync.Once

	submissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blockverify",
			Subsystem: "pipeline",
			Name:      "submissions_total",
			Help:      "Submissions that left the pipeline, by intent and final state.",
		},
		[]string{"intent", "state"},
	)

	rejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blockverify",
			Subsystem: "pipeline",
			Name:      "rejections_total",
			Help:      "Rejected submissions by intent and error kind.",
		},
		[]string{"intent", "kind"},
	)

	stageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "blockverify",
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Time spent in each pipeline stage.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
		[]string{"stage"},
	)
)

// initPipelineMetrics 在首次使用时注册流水线指标
func initPipelineMetrics() {
	pipelineMetricsOnce.Do(func() {
		prometheus.MustRegister(submissionsTotal, rejectionsTotal, stageDuration)
	})
}

func observeStage(stage verify.Stage, start time.Time) {
	stageDuration.WithLabelValues(string(stage)).Observe(time.Since(start).Seconds())
}

func recordOutcome(out *verify.Outcome) {
	state := string(out.State)
	if !out.State.IsTerminal() {
		state = stateCancelled
	}
	submissionsTotal.WithLabelValues(out.Intent, state).Inc()
	if out.State == verify.StateRejected {
		rejectionsTotal.WithLabelValues(out.Intent, string(out.Kind)).Inc()
	}
}
