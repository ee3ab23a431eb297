package service

import "testing"

func TestExtractMetrics(t *testing.T) {
	scenarios := []struct {
		name   string
		prompt string
		mname  string
		path   string
		goal   string
	}{
		{"验证集loss", "minimize the validation loss", "Validation Loss", "val/loss", GoalMinimize},
		{"accuracy默认最大化", "optimize for accuracy", "ACCURACY", "val/accuracy", GoalMaximize},
		{"f1展示名", "track f1 on the dev set", "F1 Score", "val/f1", GoalMaximize},
		{"bleu", "get the best bleu", "BLEU", "val/bleu", GoalMaximize},
		{"reward走训练集路径", "tune for reward", "REWARD", "train/reward", GoalMaximize},
		{"perplexity默认最小化", "reduce perplexity", "PERPLEXITY", "val/perplexity", GoalMinimize},
		{"无关键词时默认val/loss", "sweep lr from 1e-5 to 1e-3", "Validation Loss", "val/loss", GoalMinimize},
		{"方向词覆盖表内默认-最小化accuracy", "minimize accuracy drop", "ACCURACY", "val/accuracy", GoalMinimize},
		{"方向词覆盖表内默认-最大化loss", "improve the loss curve", "Validation Loss", "val/loss", GoalMaximize},
		{"表优先级-accuracy先于loss", "accuracy matters more than loss here", "ACCURACY", "val/accuracy", GoalMaximize},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			metrics := extractMetrics(s.prompt)
			if len(metrics) != 1 {
				t.Fatalf("期望恰好 1 个指标, 实际 %d", len(metrics))
			}
			m := metrics[0]
			if !m.IsPrimary {
				t.Error("主指标 IsPrimary 必须为 true")
			}
			if m.Name != s.mname || m.Path != s.path || m.Goal != s.goal {
				t.Errorf("期望 %s/%s/%s, 实际 %s/%s/%s", s.mname, s.path, s.goal, m.Name, m.Path, m.Goal)
			}
		})
	}
}
