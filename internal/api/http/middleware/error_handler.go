package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apitypes "github.com/weisyn/blockverify/internal/api/types"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/log"
)

// ErrorHandler 错误处理中间件
//
// 处理器通过 c.Error 记录的错误统一转换为 Problem Details 响应；
// 已经写出响应的请求不再改写。
func ErrorHandler(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		problem, ok := apitypes.IsProblemDetails(err)
		if !ok {
			logger.Errorf("处理器返回了非 ProblemDetails 错误: path=%s err=%v", c.Request.URL.Path, err)
			problem = apitypes.NewProblemDetails(
				apitypes.CodeCommonInternalError,
				apitypes.LayerVerifyService,
				"服务器内部错误，请稍后重试。",
				fmt.Sprintf("Internal error: %v", err),
				http.StatusInternalServerError,
				map[string]interface{}{"path": c.Request.URL.Path},
			)
		}
		WriteProblemDetails(c, problem)
	}
}

// WriteProblemDetails 写入 Problem Details 响应
func WriteProblemDetails(c *gin.Context, problem *apitypes.ProblemDetails) {
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	if requestID := GetRequestID(c); requestID != "" {
		problem.TraceID = requestID
	}
	c.Header("Content-Type", "application/problem+json")
	c.AbortWithStatusJSON(problem.Status, problem)
}

// WriteError 写入错误响应（自动转换为 Problem Details）
func WriteError(c *gin.Context, code string, userMessage string, detail string, status int, details map[string]interface{}) {
	problem := apitypes.NewProblemDetails(
		code,
		apitypes.LayerVerifyService,
		userMessage,
		detail,
		status,
		details,
	)
	WriteProblemDetails(c, problem)
}
