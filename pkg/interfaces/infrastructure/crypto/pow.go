package crypto

import (
	"context"

	"github.com/weisyn/blockverify/pkg/types"
)

// POWEngine 工作量证明引擎
//
// 难度以哈希前导零位数表示。VerifyBlockHeader 对“哈希不满足难度”返回 (false, nil)，
// 只有参数或计算错误才返回 error。
type POWEngine interface {
	// VerifyBlockHeader 验证区块头的 POW
	VerifyBlockHeader(header *types.BlockHeader) (bool, error)

	// MineBlockHeader 搜索满足难度的 nonce，返回填好 nonce 的新区块头
	MineBlockHeader(ctx context.Context, header *types.BlockHeader) (*types.BlockHeader, error)
}
