package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"sweep-lab/internal/model"
)

// RenderSweepMarkdown 把扫参任务渲染为 Markdown 摘要（供 UI 预览）
func RenderSweepMarkdown(sweep *model.Sweep, runs []model.SweepRun) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# %s\n\n", sweep.Name))
	b.WriteString(fmt.Sprintf("- sweep_id: %d\n", sweep.ID))
	if sweep.Goal != "" {
		b.WriteString(fmt.Sprintf("- goal: %s\n", sweep.Goal))
	}
	b.WriteString(fmt.Sprintf("- command: `%s`\n", sweep.Command))
	b.WriteString(fmt.Sprintf("- max_runs: %d, parallel_runs: %d\n", sweep.MaxRuns, sweep.ParallelRuns))
	if sweep.EarlyStoppingEnabled {
		b.WriteString(fmt.Sprintf("- early_stopping: patience=%d\n", sweep.EarlyStoppingPatience))
	}
	b.WriteString(fmt.Sprintf("- created_at: %s\n\n", sweep.CreatedAt.Format(time.RFC3339)))

	var hyperparams []Hyperparameter
	if err := json.Unmarshal([]byte(sweep.HyperparamsJSON), &hyperparams); err == nil && len(hyperparams) > 0 {
		b.WriteString("## 超参数网格\n\n")
		b.WriteString("| 参数 | 类型 | 取值 |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, hp := range hyperparams {
			b.WriteString(fmt.Sprintf("| %s | %s | %s |\n", hp.Name, hp.Type, describeHyperparam(hp)))
		}
		b.WriteString("\n")
	}

	var metrics []Metric
	if err := json.Unmarshal([]byte(sweep.MetricsJSON), &metrics); err == nil && len(metrics) > 0 {
		b.WriteString("## 优化指标\n\n")
		for _, m := range metrics {
			primary := ""
			if m.IsPrimary {
				primary = "（主指标）"
			}
			b.WriteString(fmt.Sprintf("- %s `%s` %s%s\n", m.Name, m.Path, m.Goal, primary))
		}
		b.WriteString("\n")
	}

	if len(runs) > 0 {
		b.WriteString(fmt.Sprintf("## 运行（%d 条）\n\n", len(runs)))
		max := len(runs)
		if max > 20 {
			max = 20
		}
		for i := 0; i < max; i++ {
			b.WriteString(fmt.Sprintf("- [%d] %s — `%s`\n", runs[i].Seq, runs[i].Status, runs[i].Command))
		}
		if len(runs) > max {
			b.WriteString(fmt.Sprintf("- ...(剩余 %d 条省略)\n", len(runs)-max))
		}
	}
	return b.String()
}

func describeHyperparam(hp Hyperparameter) string {
	switch hp.Type {
	case HyperparamTypeRange:
		if hp.Min == nil || hp.Max == nil {
			return "-"
		}
		if hp.Step != nil {
			return fmt.Sprintf("%g → %g, step %g", *hp.Min, *hp.Max, *hp.Step)
		}
		return fmt.Sprintf("%g → %g", *hp.Min, *hp.Max)
	case HyperparamTypeChoice:
		parts := make([]string, 0, len(hp.Values))
		for _, v := range hp.Values {
			parts = append(parts, formatParamValue(v))
		}
		return strings.Join(parts, ", ")
	case HyperparamTypeFixed:
		return formatParamValue(hp.FixedValue)
	default:
		return "-"
	}
}
