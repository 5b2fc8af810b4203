// Package types 定义 API 层共享的错误响应类型
package types

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ProblemDetails 错误响应结构（基于 RFC7807 扩展）
type ProblemDetails struct {
	// RFC7807 标准字段
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	Status   int    `json:"status,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// 扩展字段
	Code        string                 `json:"code"`
	Layer       string                 `json:"layer"`
	UserMessage string                 `json:"userMessage"`
	Details     map[string]interface{} `json:"details,omitempty"`
	TraceID     string                 `json:"traceId"`
	Timestamp   string                 `json:"timestamp"`
}

// Error 实现 error 接口
func (p *ProblemDetails) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.UserMessage
}

// WriteJSON 将 Problem Details 写入 HTTP 响应
func (p *ProblemDetails) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// NewProblemDetails 创建新的 Problem Details
func NewProblemDetails(
	code string,
	layer string,
	userMessage string,
	detail string,
	status int,
	details map[string]interface{},
) *ProblemDetails {
	if details == nil {
		details = make(map[string]interface{})
	}
	return &ProblemDetails{
		Title:       http.StatusText(status),
		Code:        code,
		Layer:       layer,
		UserMessage: userMessage,
		Detail:      detail,
		Status:      status,
		Details:     details,
		TraceID:     uuid.New().String(),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

// IsProblemDetails 检查错误链中是否有 Problem Details
func IsProblemDetails(err error) (*ProblemDetails, bool) {
	var pd *ProblemDetails
	if errors.As(err, &pd) {
		return pd, true
	}
	return nil, false
}

// 错误码常量
const (
	// 验证结果
	CodeVerifySemanticInvalid     = "VERIFY_SEMANTIC_INVALID"
	CodeVerifyContextuallyInvalid = "VERIFY_CONTEXTUALLY_INVALID"
	CodeVerifyCommitFailed        = "VERIFY_COMMIT_FAILED"
	CodeVerifyIntentUnavailable   = "VERIFY_INTENT_UNAVAILABLE"

	// 链查询
	CodeChainBlockNotFound = "CHAIN_BLOCK_NOT_FOUND"
	CodeChainEmpty         = "CHAIN_EMPTY"

	// 通用错误
	CodeCommonValidationError    = "COMMON_VALIDATION_ERROR"
	CodeCommonRequestTooLarge    = "COMMON_REQUEST_TOO_LARGE"
	CodeCommonInternalError      = "COMMON_INTERNAL_ERROR"
	CodeCommonTimeout            = "COMMON_TIMEOUT"
	CodeCommonServiceUnavailable = "COMMON_SERVICE_UNAVAILABLE"
)

// Layer 常量
const (
	LayerVerifyService = "verify-service"
)
