package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	httptypes "github.com/weisyn/blockverify/internal/api/http/types"
	"github.com/weisyn/blockverify/internal/core/verify/policy"
	"github.com/weisyn/blockverify/internal/core/verify/request"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/writegate"
	"github.com/weisyn/blockverify/pkg/interfaces/verify"
	metricsutil "github.com/weisyn/blockverify/pkg/utils/metrics"
)

// HealthHandler 健康检查处理器
//
// 🏥 写门闸处于只读模式时服务降级：查询可用，提交会被拒绝。
type HealthHandler struct {
	startTime time.Time
	chain     verify.ChainReader
	gate      writegate.WriteGate
}

// NewHealthHandler 创建健康检查处理器，gate 可为空
func NewHealthHandler(chain verify.ChainReader, gate writegate.WriteGate) *HealthHandler {
	return &HealthHandler{startTime: time.Now(), chain: chain, gate: gate}
}

// GetHealth GET /healthz
func (h *HealthHandler) GetHealth(c *gin.Context) {
	resp := httptypes.HealthResponse{
		Status:    "healthy",
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Modules:   metricsutil.CollectAllModuleStats(),
		Components: map[string]interface{}{
			"proposal_enabled": request.ProposalEnabled,
		},
	}
	if hash, height, ok := h.chain.Tip(c.Request.Context()); ok {
		resp.Chain = &httptypes.TipResponse{Hash: hash.String(), Height: height}
	}

	status := http.StatusOK
	if h.gate != nil && h.gate.IsReadOnly() {
		resp.Status = "degraded"
		resp.ReadOnly = true
		resp.Reason = h.gate.ReadOnlyReason()
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

// GetIntents GET /v1/intents
func GetIntents(c *gin.Context) {
	intents := request.AvailableIntents()
	infos := make([]httptypes.IntentInfo, len(intents))
	for i, intent := range intents {
		plan := policy.ForIntent(intent)
		infos[i] = httptypes.IntentInfo{
			Name:               intent.String(),
			CheckProofOfWork:   plan.CheckProofOfWork,
			CommitOnSuccess:    plan.CommitOnSuccess,
			FullSemanticChecks: plan.FullSemanticChecks,
		}
	}
	respondOK(c, infos)
}
