// Package api 组装对外 API 层
package api

import (
	"go.uber.org/fx"

	"github.com/weisyn/blockverify/internal/api/http"
)

// Module 返回API模块选项
//
// 当前仅包含 HTTP 服务（区块提交、链查询、验证结果推送）。
func Module() fx.Option {
	return fx.Module("api",
		http.Module(),
	)
}
