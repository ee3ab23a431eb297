package service

import (
	"regexp"
	"strings"
)

var backtickSpanRe = regexp.MustCompile("`([^`]+)`")

// 可识别的可执行程序前缀
var commandPrefixes = []string{
	"python", "torchrun", "bash", "sh", "node", "npm", "pnpm",
	"uv", "poetry", "ruby", "rails",
}

// extractCommand 从提示词中找显式的训练/脚本命令。
// 优先取第一个反引号片段（内容需以已知可执行前缀开头），
// 否则逐行扫描取第一行以这些前缀开头的文本。不做语法校验。
func extractCommand(prompt string) (string, bool) {
	for _, m := range backtickSpanRe.FindAllStringSubmatch(prompt, -1) {
		candidate := strings.TrimSpace(m[1])
		if hasCommandPrefix(candidate) {
			return candidate, true
		}
		// 规范只认第一个反引号片段
		break
	}

	for _, line := range strings.Split(prompt, "\n") {
		line = strings.TrimSpace(line)
		if hasCommandPrefix(line) {
			return line, true
		}
	}
	return "", false
}

func hasCommandPrefix(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range commandPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
