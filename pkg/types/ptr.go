package types

// StringPtr 返回字符串指针（构造用户配置时使用）
func StringPtr(v string) *string { return &v }

// BoolPtr 返回布尔指针
func BoolPtr(v bool) *bool { return &v }

// IntPtr 返回整数指针
func IntPtr(v int) *int { return &v }

// Int64Ptr 返回 int64 指针
func Int64Ptr(v int64) *int64 { return &v }

// Uint32Ptr 返回 uint32 指针
func Uint32Ptr(v uint32) *uint32 { return &v }

// Uint64Ptr 返回 uint64 指针
func Uint64Ptr(v uint64) *uint64 { return &v }
