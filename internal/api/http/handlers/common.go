// Package handlers 提供区块验证服务的 HTTP 处理器
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weisyn/blockverify/internal/api/http/middleware"
	httptypes "github.com/weisyn/blockverify/internal/api/http/types"
	apitypes "github.com/weisyn/blockverify/internal/api/types"
	"github.com/weisyn/blockverify/pkg/interfaces/verify"
)

// respondOK 写入统一成功响应
func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, httptypes.NewSuccessResponse(data).WithRequestID(middleware.GetRequestID(c)))
}

// badRequest 写入 400 响应
func badRequest(c *gin.Context, userMessage string, err error) {
	status := http.StatusBadRequest
	code := apitypes.CodeCommonValidationError
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		status = http.StatusRequestEntityTooLarge
		code = apitypes.CodeCommonRequestTooLarge
	}
	middleware.WriteError(c, code, userMessage, err.Error(), status, nil)
}

// statusForKind 拒绝类别对应的 HTTP 状态码
//
//	SemanticInvalid / ContextuallyInvalid → 422
//	CommitFailed                          → 409
func statusForKind(kind verify.ErrorKind) (int, string) {
	switch kind {
	case verify.KindSemanticInvalid:
		return http.StatusUnprocessableEntity, apitypes.CodeVerifySemanticInvalid
	case verify.KindContextuallyInvalid:
		return http.StatusUnprocessableEntity, apitypes.CodeVerifyContextuallyInvalid
	case verify.KindCommitFailed:
		return http.StatusConflict, apitypes.CodeVerifyCommitFailed
	}
	return http.StatusInternalServerError, apitypes.CodeCommonInternalError
}

// writeVerifyError 把流水线错误写成 Problem Details
//
// 未分类的错误只可能来自上下文取消或超时。
func writeVerifyError(c *gin.Context, out *verify.Outcome, err error) {
	details := map[string]interface{}{}
	if out != nil {
		details["outcome"] = out
	}
	kind, ok := verify.KindOf(err)
	if !ok {
		middleware.WriteError(c, apitypes.CodeCommonTimeout, "验证未完成，请求已取消或超时。",
			err.Error(), http.StatusServiceUnavailable, details)
		return
	}
	status, code := statusForKind(kind)
	middleware.WriteError(c, code, "区块验证未通过。", err.Error(), status, details)
}
