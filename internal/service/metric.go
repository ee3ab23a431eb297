package service

import (
	"regexp"
	"strings"
)

// 指标关键词表（按优先级排序，先命中先得）
var metricTable = []struct {
	keyword string
	path    string
	goal    string
}{
	{"accuracy", "val/accuracy", GoalMaximize},
	{"f1", "val/f1", GoalMaximize},
	{"auc", "val/auc", GoalMaximize},
	{"bleu", "val/bleu", GoalMaximize},
	{"reward", "train/reward", GoalMaximize},
	{"loss", "val/loss", GoalMinimize},
	{"perplexity", "val/perplexity", GoalMinimize},
	{"error", "val/error", GoalMinimize},
}

var (
	maximizeHintRe = regexp.MustCompile(`(?i)maximize|highest|improve|increase|best`)
	minimizeHintRe = regexp.MustCompile(`(?i)minimize|lowest|reduce|decrease`)
)

// extractMetrics 把提示词映射为一个主指标（永远恰好返回一条）。
// 未命中任何关键词时默认验证集 loss；方向词（maximize/minimize 等）可覆盖表内默认目标。
func extractMetrics(prompt string) []Metric {
	lower := strings.ToLower(prompt)

	metric := Metric{Name: "Validation Loss", Path: "val/loss", Goal: GoalMinimize, IsPrimary: true}
	for _, row := range metricTable {
		if !strings.Contains(lower, row.keyword) {
			continue
		}
		metric = Metric{
			Name:      metricDisplayName(row.keyword),
			Path:      row.path,
			Goal:      row.goal,
			IsPrimary: true,
		}
		break
	}

	if maximizeHintRe.MatchString(prompt) {
		metric.Goal = GoalMaximize
	} else if minimizeHintRe.MatchString(prompt) {
		metric.Goal = GoalMinimize
	}

	return []Metric{metric}
}

func metricDisplayName(keyword string) string {
	switch keyword {
	case "loss":
		return "Validation Loss"
	case "f1":
		return "F1 Score"
	default:
		return strings.ToUpper(keyword)
	}
}
