//go:build !getblocktemplate

package handlers

import "github.com/gin-gonic/gin"

// RegisterProposalRoute 未启用 getblocktemplate 时不注册提案检查路由
func (h *SubmissionHandlers) RegisterProposalRoute(g *gin.RouterGroup) {}
