package chainstate

import "errors"

var (
	// ErrNilBlock 区块或区块头为空
	ErrNilBlock = errors.New("区块或区块头为空")
	// ErrAlreadyKnown 区块已在链上
	ErrAlreadyKnown = errors.New("区块已存在")
	// ErrUnknownParent 父区块未知
	ErrUnknownParent = errors.New("父区块未知")
	// ErrConflictingBlock 父区块已知但不是当前链尖，或与已有创世区块竞争
	ErrConflictingBlock = errors.New("区块与当前链冲突")
	// ErrInvalidHeight 高度不等于父区块高度加一
	ErrInvalidHeight = errors.New("区块高度错误")
	// ErrTimestampNotIncreasing 区块时间不晚于父区块
	ErrTimestampNotIncreasing = errors.New("区块时间未递增")
	// ErrDoubleSpend 输入引用的输出已被花费
	ErrDoubleSpend = errors.New("双花")
	// ErrMissingInput 输入引用的输出不存在
	ErrMissingInput = errors.New("输入引用的输出不存在")
	// ErrCommitConflict 提交时重新检查失败（与并发写入冲突）
	ErrCommitConflict = errors.New("提交冲突")
	// ErrBlockNotFound 区块不存在
	ErrBlockNotFound = errors.New("区块不存在")
	// ErrGenesisMismatch 存储中的创世区块与配置不一致
	ErrGenesisMismatch = errors.New("创世区块与配置不一致")
	// ErrCorruptIndex 存储中的链索引不完整或不一致
	ErrCorruptIndex = errors.New("链索引损坏")
)
