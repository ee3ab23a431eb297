package service

import (
	"fmt"
	"regexp"
	"strings"
)

// 超参数规格类型
const (
	HyperparamTypeRange  = "range"
	HyperparamTypeChoice = "choice"
	HyperparamTypeFixed  = "fixed"
)

// 数值 token 的词法形态：可选符号、千分位逗号、小数、科学计数法、%、k/m 后缀。
// 语义解析统一交给 parseNumericToken，这里只负责切词。
const numTokenPattern = `[+-]?\d[\d,]*(?:\.\d+)?(?:[eE][+-]?\d+)?(?:%|[kKmM])?`

// 参数短语：最多 3 个词 token，必须从词边界开始，避免从 "1e-3" 中间切出 "e-3"
const paramPhrasePattern = `(?:[a-zA-Z][a-zA-Z0-9_.\-]*[ \t]+){0,2}[a-zA-Z][a-zA-Z0-9_.\-]*`

var (
	// 区间式：<短语> from|between <数值> to|and <数值> [step|increment(s)( of) <数值>]
	rangeSpecRe = regexp.MustCompile(`(?i)(?:^|[^a-zA-Z0-9_.\-])(` + paramPhrasePattern + `)[ \t]+(?:from|between)[ \t]+(` + numTokenPattern + `)[ \t]+(?:to|and)[ \t]+(` + numTokenPattern + `)(?:[ \t]+(?:steps?(?:[ \t]+of)?|increments?(?:[ \t]+of)?)[ \t]+(` + numTokenPattern + `))?`)

	// 列表式锚点：<短语> [分隔符: = : [ in values over across try]
	// 值列表本身不进正则：先定位锚点，再按句子边界截取原文，保持"切词"与"解释"分离
	listAnchorRe = regexp.MustCompile(`(?i)(?:^|[^a-zA-Z0-9_.\-])(` + paramPhrasePattern + `)[ \t]*(=|:|\[|\bin\b|\bvalues\b|\bover\b|\bacross\b|\btry\b)?[ \t]*`)

	listValueSplitRe = regexp.MustCompile(`(?i)[ \t]*(?:,|/|\bor\b|\band\b)[ \t]*`)
	nonAlnumRunRe    = regexp.MustCompile(`[^a-z0-9]+`)
)

// 参数别名表（有序，先命中先得）
var paramAliases = []struct {
	re   *regexp.Regexp
	name string
}{
	{regexp.MustCompile(`(?i)learning[ _\-]?rate|\blr\b`), "learning_rate"},
	{regexp.MustCompile(`(?i)batch[ _\-]?size|\bbs\b`), "batch_size"},
	{regexp.MustCompile(`(?i)\bdropout\b`), "dropout"},
	{regexp.MustCompile(`(?i)weight[ _\-]?decay|\bwd\b`), "weight_decay"},
	{regexp.MustCompile(`(?i)\bnum[ _\-]?epochs?\b|\bepochs?\b`), "epochs"},
	{regexp.MustCompile(`(?i)warmup[ _\-]?steps?|\bwarmup\b`), "warmup_steps"},
	{regexp.MustCompile(`(?i)\boptimizer\b`), "optimizer"},
	{regexp.MustCompile(`(?i)\bscheduler\b`), "scheduler"},
	{regexp.MustCompile(`(?i)\btemperature\b|\btemp\b`), "temperature"},
}

// 短语两端的填充词（"sweep the learning rate" -> "learning rate"）
var paramFillerWords = map[string]bool{
	"sweep": true, "sweeping": true, "try": true, "tune": true, "tuning": true,
	"vary": true, "varying": true, "search": true, "grid": true, "over": true,
	"across": true, "set": true, "use": true, "using": true, "with": true,
	"for": true, "the": true, "a": true, "an": true, "and": true, "or": true,
	"of": true, "to": true, "in": true, "from": true, "between": true,
	"it": true, "values": true, "value": true,
}

// canonicalParamName 把原始参数短语归一化为 snake_case 标识。
// 别名表优先；未命中别名时去掉两端填充词后做字符级归一化。
func canonicalParamName(raw string) string {
	for _, a := range paramAliases {
		if a.re.MatchString(raw) {
			return a.name
		}
	}

	tokens := strings.Fields(strings.ToLower(raw))
	for len(tokens) > 0 && paramFillerWords[tokens[0]] {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && paramFillerWords[tokens[len(tokens)-1]] {
		tokens = tokens[:len(tokens)-1]
	}

	s := strings.Join(tokens, " ")
	s = nonAlnumRunRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// hasParamAlias 判断文本中是否出现任一已知参数别名（供意图识别使用）
func hasParamAlias(text string) bool {
	for _, a := range paramAliases {
		if a.re.MatchString(text) {
			return true
		}
	}
	return false
}

// extractHyperparameters 从提示词中提取超参数规格。
// 两趟独立扫描：先区间式，后列表式；每个候选经 mergeHyperparameter 折叠进累积结果。
func extractHyperparameters(prompt string) []Hyperparameter {
	var out []Hyperparameter
	for _, hp := range extractRangeSpecs(prompt) {
		out = mergeHyperparameter(out, hp)
	}
	for _, hp := range extractListSpecs(prompt) {
		out = mergeHyperparameter(out, hp)
	}
	return out
}

func extractRangeSpecs(prompt string) []Hyperparameter {
	var out []Hyperparameter
	for _, m := range rangeSpecRe.FindAllStringSubmatch(prompt, -1) {
		name := canonicalParamName(m[1])
		if name == "" {
			continue
		}
		min, okMin := parseNumericToken(m[2])
		max, okMax := parseNumericToken(m[3])
		if !okMin || !okMax {
			continue
		}
		hp := Hyperparameter{
			Name: name,
			Type: HyperparamTypeRange,
			Min:  &min,
			Max:  &max,
		}
		if m[4] != "" {
			if step, ok := parseNumericToken(m[4]); ok {
				hp.Step = &step
			}
		}
		out = append(out, hp)
	}
	return out
}

func extractListSpecs(prompt string) []Hyperparameter {
	anchors := listAnchorRe.FindAllStringSubmatchIndex(prompt, -1)

	// 带显式分隔符的锚点更可信，用来截断前一个锚点的值域
	explicitStarts := make([]int, 0, len(anchors))
	for _, a := range anchors {
		if a[4] >= 0 {
			explicitStarts = append(explicitStarts, a[0])
		}
	}

	var out []Hyperparameter
	consumedEnd := -1
	for _, a := range anchors {
		if a[0] < consumedEnd {
			continue
		}
		phrase := prompt[a[2]:a[3]]
		explicitSep := a[4] >= 0
		valueStart := a[1]

		// 贪婪短语可能把分隔词吞进末尾（"try optimizer in" 全进了短语）
		if !explicitSep {
			if trimmed, ok := stripTrailingSeparatorWord(phrase); ok {
				phrase = trimmed
				explicitSep = true
			}
		}

		valueEnd := listValueSpanEnd(prompt, valueStart, explicitStarts)
		if valueEnd <= valueStart {
			continue
		}
		valueText := strings.TrimLeft(prompt[valueStart:valueEnd], "[ \t")

		hp, ok := buildChoiceSpec(phrase, valueText, explicitSep)
		if !ok {
			continue
		}
		out = append(out, hp)
		consumedEnd = valueEnd
	}
	return out
}

var listSeparatorWords = map[string]bool{
	"in": true, "values": true, "over": true, "across": true, "try": true,
}

func stripTrailingSeparatorWord(phrase string) (string, bool) {
	tokens := strings.Fields(phrase)
	if len(tokens) < 2 {
		return phrase, false
	}
	if !listSeparatorWords[strings.ToLower(tokens[len(tokens)-1])] {
		return phrase, false
	}
	return strings.Join(tokens[:len(tokens)-1], " "), true
}

// listValueSpanEnd 计算值列表原文的右边界：
// 行尾、右方括号、句末标点（小数点后接数字的不算），以及下一个显式锚点。
func listValueSpanEnd(prompt string, start int, explicitStarts []int) int {
	end := len(prompt)
	for i := start; i < len(prompt); i++ {
		c := prompt[i]
		if c == '\n' || c == ']' || c == '!' || c == '?' || c == ';' {
			end = i
			break
		}
		if c == '.' {
			// "0.1" 的小数点不终结句子
			if i+1 < len(prompt) && prompt[i+1] >= '0' && prompt[i+1] <= '9' {
				continue
			}
			end = i
			break
		}
	}
	for _, es := range explicitStarts {
		if es > start && es < end {
			end = es
		}
	}
	return end
}

// buildChoiceSpec 把值列表原文解释为一个 choice 超参数。
// 丢弃规则：值域含 from/between（已被区间趟消费）、去重后不足 2 个值、
// 字符串值超过 3 个词；无显式分隔符时还要求所有值都是单 token 且首值为数值。
func buildChoiceSpec(phrase, valueText string, explicitSep bool) (Hyperparameter, bool) {
	lowerValues := strings.ToLower(valueText)
	if strings.Contains(lowerValues, "from") || strings.Contains(lowerValues, "between") {
		return Hyperparameter{}, false
	}

	name := canonicalParamName(phrase)
	if name == "" {
		return Hyperparameter{}, false
	}

	var values []interface{}
	seen := map[string]bool{}
	firstNumeric := false
	sawToken := false
	for _, tok := range listValueSplitRe.Split(valueText, -1) {
		tok = strings.TrimSpace(tok)
		tok = strings.Trim(tok, `"'`)
		if tok == "" {
			continue
		}
		var v interface{}
		if n, ok := parseNumericToken(tok); ok {
			v = n
			if !sawToken {
				firstNumeric = true
			}
		} else {
			if len(strings.Fields(tok)) > 3 {
				// 多半是误捕获的句子片段，整个候选作废
				return Hyperparameter{}, false
			}
			if !explicitSep && strings.ContainsAny(tok, " \t") {
				return Hyperparameter{}, false
			}
			v = tok
		}
		sawToken = true
		key := fmt.Sprintf("%T:%v", v, v)
		if seen[key] {
			continue
		}
		seen[key] = true
		values = append(values, v)
	}

	if len(values) < 2 {
		return Hyperparameter{}, false
	}
	if !explicitSep && !firstNumeric {
		return Hyperparameter{}, false
	}

	return Hyperparameter{
		Name:   name,
		Type:   HyperparamTypeChoice,
		Values: values,
	}, true
}

// mergeHyperparameter 按规范名合并候选：
// 不存在则追加；range 覆盖非 range；choice+choice 取值并集（保序去重）；
// 同类非 choice 后者覆盖前者；已是 range 时丢弃降级候选。
func mergeHyperparameter(list []Hyperparameter, next Hyperparameter) []Hyperparameter {
	for i, cur := range list {
		if cur.Name != next.Name {
			continue
		}
		switch {
		case cur.Type != HyperparamTypeRange && next.Type == HyperparamTypeRange:
			list[i] = next
		case cur.Type == HyperparamTypeChoice && next.Type == HyperparamTypeChoice:
			list[i].Values = unionValues(cur.Values, next.Values)
		case cur.Type == next.Type:
			list[i] = next
		case cur.Type == HyperparamTypeRange:
			// range 永不降级为 choice/fixed
		}
		return list
	}
	return append(list, next)
}

func unionValues(existing, incoming []interface{}) []interface{} {
	seen := map[string]bool{}
	out := make([]interface{}, 0, len(existing)+len(incoming))
	for _, v := range existing {
		key := fmt.Sprintf("%T:%v", v, v)
		if !seen[key] {
			seen[key] = true
			out = append(out, v)
		}
	}
	for _, v := range incoming {
		key := fmt.Sprintf("%T:%v", v, v)
		if !seen[key] {
			seen[key] = true
			out = append(out, v)
		}
	}
	return out
}
