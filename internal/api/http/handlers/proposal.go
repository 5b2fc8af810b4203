//go:build getblocktemplate

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/weisyn/blockverify/internal/core/verify/request"
)

// SubmitProposal POST /v1/blocks/proposal
func (h *SubmissionHandlers) SubmitProposal(c *gin.Context) {
	h.submit(c, request.CheckProposal{})
}

// RegisterProposalRoute 注册提案检查路由
func (h *SubmissionHandlers) RegisterProposalRoute(g *gin.RouterGroup) {
	g.POST("/blocks/proposal", h.SubmitProposal)
}
