package service

import "testing"

func TestIsLikelySweepPrompt(t *testing.T) {
	scenarios := []struct {
		name   string
		prompt string
		want   bool
	}{
		{"显式sweep关键词", "Can you sweep the learning rate?", true},
		{"grid search关键词", "run a grid search on my model", true},
		{"hyperparameter关键词", "I want to do hyperparameter optimization", true},
		{"tune关键词", "tune the dropout please", true},
		{"无关提问", "What's the weather today?", false},
		{"区间短语+参数别名", "vary dropout between 0.1 and 0.5", true},
		{"区间短语+lr别名", "increase the lr from 1e-5 to 1e-3", true},
		{"区间短语但无参数别名", "I work from 9 to 5 every day", false},
		{"参数别名但无区间短语", "the batch size matters a lot", false},
		{"空串", "", false},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			if got := IsLikelySweepPrompt(s.prompt); got != s.want {
				t.Errorf("IsLikelySweepPrompt(%q)=%v, 期望 %v", s.prompt, got, s.want)
			}
		})
	}
}
