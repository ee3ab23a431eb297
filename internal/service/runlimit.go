package service

import (
	"regexp"
	"strconv"
)

// RunLimits 运行数量约束（0 表示未出现）
type RunLimits struct {
	MaxRuns      int
	ParallelRuns int
}

var (
	maxRunsRe = regexp.MustCompile(`(?i)(?:(?:max(?:imum)?|up[ \t]+to|limit(?:ed)?[ \t]+to)[ \t]+)?(\d{1,4})[ \t]*(?:runs?|trials?|experiments?)\b`)

	// 两种词序都接受："parallelism of 4" 和 "4 parallel" / "4 at a time"
	parallelAfterRe  = regexp.MustCompile(`(?i)(?:parallel(?:ism)?|concurren(?:t|tly|cy))[ \t]*(?:of|to|=)?[ \t]*(\d{1,3})\b`)
	parallelBeforeRe = regexp.MustCompile(`(?i)(\d{1,3})[ \t]+(?:parallel\b|concurrent(?:ly)?\b|at[ \t]+a[ \t]+time)`)
)

// extractRunLimits 提取最大运行数与并行度提示
func extractRunLimits(prompt string) RunLimits {
	var limits RunLimits

	if m := maxRunsRe.FindStringSubmatch(prompt); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v > 0 {
			limits.MaxRuns = v
		}
	}

	if m := parallelAfterRe.FindStringSubmatch(prompt); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v > 0 {
			limits.ParallelRuns = v
		}
	} else if m := parallelBeforeRe.FindStringSubmatch(prompt); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v > 0 {
			limits.ParallelRuns = v
		}
	}

	return limits
}
