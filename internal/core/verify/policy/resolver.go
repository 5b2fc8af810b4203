// Package policy 把提交意图解析为验证计划
//
// 解析是纯函数：同一个提交无论解析多少次都得到相同的计划，
// 计划只依赖意图，不依赖区块内容。
package policy

import (
	"fmt"

	"github.com/weisyn/blockverify/internal/core/verify/request"
)

// Plan 验证计划
type Plan struct {
	// CheckProofOfWork 语义验证是否检查工作量证明
	CheckProofOfWork bool `json:"check_proof_of_work"`
	// CommitOnSuccess 全部验证通过后是否提交到链状态
	CommitOnSuccess bool `json:"commit_on_success"`
	// FullSemanticChecks 是否执行完整语义检查
	FullSemanticChecks bool `json:"full_semantic_checks"`
}

// String 返回计划的紧凑描述
func (p Plan) String() string {
	return fmt.Sprintf("Plan{pow=%t, commit=%t, full=%t}", p.CheckProofOfWork, p.CommitOnSuccess, p.FullSemanticChecks)
}

// Resolve 解析提交的验证计划
func Resolve(req *request.Request) Plan {
	return ForIntent(req.Intent())
}

// ForIntent 解析意图的验证计划
func ForIntent(intent request.Intent) Plan {
	return request.Match[Plan](intent, resolver{})
}

// ShouldCommit 验证通过后是否提交
func ShouldCommit(req *request.Request) bool { return Resolve(req).CommitOnSuccess }

// ShouldCheckProofOfWork 是否检查工作量证明
func ShouldCheckProofOfWork(req *request.Request) bool { return Resolve(req).CheckProofOfWork }

// ShouldRunFullSemanticChecks 是否执行完整语义检查
func ShouldRunFullSemanticChecks(req *request.Request) bool { return Resolve(req).FullSemanticChecks }

// resolver 意图到计划的映射
type resolver struct{}

func (resolver) VisitCommit() Plan {
	return Plan{CheckProofOfWork: true, CommitOnSuccess: true, FullSemanticChecks: true}
}

func (resolver) VisitReducedValidation() Plan {
	return Plan{CheckProofOfWork: false, CommitOnSuccess: true, FullSemanticChecks: false}
}
