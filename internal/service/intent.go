package service

import (
	"regexp"
	"strings"
)

// 固定的扫参意图关键词表（小写匹配）
var sweepIntentKeywords = []string{
	"sweep",
	"grid search",
	"hyperparameter",
	"hyper parameter",
	"ablation",
	"tune",
	"search over",
	"parameter search",
	"experiment matrix",
}

// 数值区间短语："from <数值> to <数值>" 或 "between <数值> and <数值>"
var numericRangePhraseRe = regexp.MustCompile(`(?i)\b(?:from[ \t]+` + numTokenPattern + `[ \t]+to[ \t]+` + numTokenPattern + `|between[ \t]+` + numTokenPattern + `[ \t]+and[ \t]+` + numTokenPattern + `)`)

// IsLikelySweepPrompt 判断一段提示词是否像扫参描述。
// 命中任一意图关键词即为真；否则要求同时出现数值区间短语和已知参数别名。
// 纯函数，永不报错。
func IsLikelySweepPrompt(prompt string) bool {
	lower := strings.ToLower(prompt)
	for _, kw := range sweepIntentKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return numericRangePhraseRe.MatchString(prompt) && hasParamAlias(prompt)
}
