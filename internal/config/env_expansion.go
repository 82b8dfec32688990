package config

import (
	"os"
	"regexp"
)

// 环境变量模式匹配
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars 展开配置内容中的 ${VAR} 形式的环境变量引用
// 未定义的环境变量保留原样，便于发现配置错误
func expandEnvVars(data []byte) []byte {
	return envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := string(envVarPattern.FindSubmatch(match)[1])
		if value, ok := os.LookupEnv(name); ok {
			return []byte(value)
		}
		return match
	})
}
