package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weisyn/blockverify/internal/api/http/middleware"
	httptypes "github.com/weisyn/blockverify/internal/api/http/types"
	apitypes "github.com/weisyn/blockverify/internal/api/types"
	"github.com/weisyn/blockverify/internal/core/verify/chainstate"
	"github.com/weisyn/blockverify/pkg/interfaces/verify"
	"github.com/weisyn/blockverify/pkg/types"
)

// ChainHandlers 链状态查询处理器
type ChainHandlers struct {
	chain verify.ChainReader
}

// NewChainHandlers 创建链状态查询处理器
func NewChainHandlers(chain verify.ChainReader) *ChainHandlers {
	return &ChainHandlers{chain: chain}
}

// GetTip GET /v1/chain/tip
func (h *ChainHandlers) GetTip(c *gin.Context) {
	hash, height, ok := h.chain.Tip(c.Request.Context())
	if !ok {
		middleware.WriteError(c, apitypes.CodeChainEmpty, "链上还没有区块", "", http.StatusNotFound, nil)
		return
	}
	respondOK(c, httptypes.TipResponse{Hash: hash.String(), Height: height})
}

// GetBlock GET /v1/chain/blocks/:hash
func (h *ChainHandlers) GetBlock(c *gin.Context) {
	hash, err := types.ParseHash(c.Param("hash"))
	if err != nil {
		badRequest(c, "区块哈希格式错误", err)
		return
	}
	block, err := h.chain.GetBlock(c.Request.Context(), hash)
	if errors.Is(err, chainstate.ErrBlockNotFound) || (err == nil && block == nil) {
		middleware.WriteError(c, apitypes.CodeChainBlockNotFound, "区块不存在", hash.String(), http.StatusNotFound, nil)
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	respondOK(c, block)
}
