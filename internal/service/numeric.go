package service

import (
	"math"
	"strconv"
	"strings"
)

// parseNumericToken 把文本数值 token 归一化为 float64。
// 支持科学计数法（1e-4）、百分号（50% -> 0.5）、k/m 量级后缀（2k -> 2000）。
// 解析失败返回 (0, false)，调用方据此丢弃所在匹配。
func parseNumericToken(text string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return 0, false
	}
	// 千分位逗号直接去掉（"2,000" -> "2000"）
	s = strings.ReplaceAll(s, ",", "")

	isPercent := false
	if strings.HasSuffix(s, "%") {
		isPercent = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}

	// 量级后缀与百分号互斥（输入要么 "5%" 要么 "5k"，不会两者都有）
	multiplier := 1.0
	if !isPercent {
		if strings.HasSuffix(s, "k") {
			multiplier = 1000
			s = strings.TrimSpace(strings.TrimSuffix(s, "k"))
		} else if strings.HasSuffix(s, "m") {
			multiplier = 1000000
			s = strings.TrimSpace(strings.TrimSuffix(s, "m"))
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	v *= multiplier
	if isPercent {
		v /= 100
	}
	return v, true
}
