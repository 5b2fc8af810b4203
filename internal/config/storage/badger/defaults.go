package badger

// BadgerDB存储默认配置值
const (
	// defaultDataDir 未配置数据目录时的根目录
	defaultDataDir = "./data"

	// defaultSyncWrites 默认启用同步写入
	// 已提交区块不可丢失，宁可牺牲写入吞吐
	defaultSyncWrites = true

	// defaultInMemory 默认落盘
	defaultInMemory = false

	// defaultMemTableSize 默认内存表大小为64MB
	defaultMemTableSize = 64 << 20
)
