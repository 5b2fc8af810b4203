package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weisyn/blockverify/internal/api/http/middleware"
	httptypes "github.com/weisyn/blockverify/internal/api/http/types"
	apitypes "github.com/weisyn/blockverify/internal/api/types"
	"github.com/weisyn/blockverify/internal/core/verify/request"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/blockverify/pkg/interfaces/verify"
	"github.com/weisyn/blockverify/pkg/types"
)

// BatchVerifier 支持批量验证的验证器
type BatchVerifier interface {
	verify.Verifier
	VerifyAll(ctx context.Context, reqs []*request.Request) []verify.Result
}

// SubmissionHandlers 区块提交处理器
//
// 每个端点对应一个固定意图：传输层只负责构造提交，验证策略由意图决定。
type SubmissionHandlers struct {
	verifier       BatchVerifier
	maxRequestSize int64
	logger         log.Logger
}

// NewSubmissionHandlers 创建区块提交处理器，maxRequestSize<=0 表示不限制请求体大小
func NewSubmissionHandlers(verifier BatchVerifier, maxRequestSize int64, logger log.Logger) *SubmissionHandlers {
	return &SubmissionHandlers{verifier: verifier, maxRequestSize: maxRequestSize, logger: logger}
}

// SubmitCommit POST /v1/blocks
func (h *SubmissionHandlers) SubmitCommit(c *gin.Context) {
	h.submit(c, request.Commit{})
}

// SubmitReduced POST /v1/blocks/reduced
func (h *SubmissionHandlers) SubmitReduced(c *gin.Context) {
	h.submit(c, request.ReducedValidation{})
}

// SubmitBatch POST /v1/blocks/batch
//
// 请求体 {"intent": "...", "blocks": [...]}，结果顺序与 blocks 一致。
// 单个区块被拒绝不影响整体状态码。
func (h *SubmissionHandlers) SubmitBatch(c *gin.Context) {
	h.limitBody(c)
	var body httptypes.BatchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "请求体格式错误", err)
		return
	}
	intent, err := request.ParseIntent(body.Intent)
	if err != nil {
		code := apitypes.CodeCommonValidationError
		if errors.Is(err, request.ErrIntentUnavailable) {
			code = apitypes.CodeVerifyIntentUnavailable
		}
		middleware.WriteError(c, code, "不支持的意图", err.Error(), http.StatusBadRequest, nil)
		return
	}

	reqs := make([]*request.Request, len(body.Blocks))
	for i, block := range body.Blocks {
		req, err := request.New(block, intent)
		if err != nil {
			badRequest(c, "区块不能为空", err)
			return
		}
		reqs[i] = req
	}

	results := h.verifier.VerifyAll(c.Request.Context(), reqs)
	items := make([]httptypes.BatchItem, len(results))
	for i, r := range results {
		items[i] = httptypes.BatchItem{Outcome: r.Outcome}
		if r.Err != nil {
			items[i].Error = r.Err.Error()
		}
	}
	respondOK(c, items)
}

func (h *SubmissionHandlers) submit(c *gin.Context, intent request.Intent) {
	h.limitBody(c)
	var block types.Block
	if err := c.ShouldBindJSON(&block); err != nil {
		badRequest(c, "区块JSON格式错误", err)
		return
	}
	if block.Header == nil {
		badRequest(c, "区块缺少区块头", errors.New("header is required"))
		return
	}
	req, err := request.New(&block, intent)
	if err != nil {
		badRequest(c, "无法构造提交", err)
		return
	}

	out, err := h.verifier.Verify(c.Request.Context(), req)
	if err != nil {
		writeVerifyError(c, out, err)
		return
	}
	respondOK(c, out)
}

func (h *SubmissionHandlers) limitBody(c *gin.Context) {
	if h.maxRequestSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxRequestSize)
	}
}
