package verify

import "time"

// 区块验证默认配置值
const (
	// defaultMaxConcurrency 批量验证最多 8 个并发
	defaultMaxConcurrency = 8

	// defaultMaxFutureDrift 区块时间最多超前 2 小时
	defaultMaxFutureDrift = 2 * time.Hour

	// defaultMaxBlockVersion 当前只定义了版本 1
	defaultMaxBlockVersion uint32 = 1

	// defaultMaxBlockTransactions 单区块最多 10000 笔交易
	defaultMaxBlockTransactions = 10000

	// defaultMaxDifficulty 难度以前导零位数计，SHA-256 输出共 256 位
	defaultMaxDifficulty uint64 = 256
)
