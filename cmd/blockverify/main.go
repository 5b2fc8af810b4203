// blockverify 区块验证服务入口
package main

import "github.com/weisyn/blockverify/internal/cli"

func main() {
	cli.Execute()
}
