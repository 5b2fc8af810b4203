package semantic

import "errors"

// 语义验证失败原因
var (
	ErrNilBlock            = errors.New("区块为空")
	ErrNilHeader           = errors.New("区块头为空")
	ErrNoTransactions      = errors.New("区块交易列表为空")
	ErrMissingCoinbase     = errors.New("首个交易应该是Coinbase交易（没有输入）")
	ErrExtraCoinbase       = errors.New("Coinbase交易只能出现在首位")
	ErrMalformedTx         = errors.New("交易结构无效")
	ErrDuplicateInput      = errors.New("区块内存在重复引用的输出")
	ErrUnsupportedVersion  = errors.New("区块版本不受支持")
	ErrMerkleRoot          = errors.New("Merkle根不匹配")
	ErrFutureTimestamp     = errors.New("区块时间戳超前过多")
	ErrTooManyTransactions = errors.New("区块交易数超过上限")
	ErrZeroValueOutput     = errors.New("交易输出金额必须大于0")
	ErrProofOfWork         = errors.New("工作量证明无效")
)
