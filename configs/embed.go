// Package configs 内置的示例配置
package configs

import _ "embed"

// ExampleConfig 带全部可配置字段的示例配置（blockverify config 命令输出）
//
//go:embed blockverify.json
var ExampleConfig []byte
