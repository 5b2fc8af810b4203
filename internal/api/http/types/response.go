// Package types provides HTTP response type definitions.
package types

import (
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/metrics"
	verifyiface "github.com/weisyn/blockverify/pkg/interfaces/verify"
	blocktypes "github.com/weisyn/blockverify/pkg/types"
)

// SuccessResponse 统一成功响应格式
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"requestId,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Data: data,
	}
}

// WithRequestID 添加请求ID
func (r *SuccessResponse) WithRequestID(requestID string) *SuccessResponse {
	r.RequestID = requestID
	return r
}

// WithTimestamp 添加时间戳
func (r *SuccessResponse) WithTimestamp(timestamp string) *SuccessResponse {
	r.Timestamp = timestamp
	return r
}

// BatchRequest 批量验证请求体
type BatchRequest struct {
	Intent string              `json:"intent" binding:"required"`
	Blocks []*blocktypes.Block `json:"blocks" binding:"required,min=1"`
}

// BatchItem 批量验证中单个提交的结果
type BatchItem struct {
	Outcome *verifyiface.Outcome `json:"outcome"`
	Error   string               `json:"error,omitempty"`
}

// TipResponse 链尖查询响应
type TipResponse struct {
	Hash   string `json:"hash"`
	Height uint64 `json:"height"`
}

// IntentInfo 当前构建支持的意图及其验证计划
type IntentInfo struct {
	Name               string `json:"name"`
	CheckProofOfWork   bool   `json:"check_proof_of_work"`
	CommitOnSuccess    bool   `json:"commit_on_success"`
	FullSemanticChecks bool   `json:"full_semantic_checks"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status     string                      `json:"status"` // healthy, degraded
	Uptime     string                      `json:"uptime"`
	Timestamp  string                      `json:"timestamp"`
	ReadOnly   bool                        `json:"read_only"`
	Reason     string                      `json:"read_only_reason,omitempty"`
	Chain      *TipResponse                `json:"chain,omitempty"`
	Modules    []metrics.ModuleMemoryStats `json:"modules"`
	Components map[string]interface{}      `json:"components,omitempty"`
}
