package service

import "testing"

func TestExtractRunLimits(t *testing.T) {
	scenarios := []struct {
		name     string
		prompt   string
		maxRuns  int
		parallel int
	}{
		{"limit-to形式", "Limit to 20 runs.", 20, 0},
		{"up-to形式", "up to 50 trials should be enough", 50, 0},
		{"max形式", "max 100 experiments", 100, 0},
		{"裸数字+runs", "30 runs across the grid", 30, 0},
		{"parallelism-of形式", "with a parallelism of 4", 0, 4},
		{"数字在前的parallel", "run 8 parallel workers", 0, 8},
		{"at-a-time形式", "execute 6 at a time", 0, 6},
		{"concurrency等号形式", "concurrency = 3", 0, 3},
		{"两者同时出现", "Limit to 20 runs, 4 parallel.", 20, 4},
		{"均未出现", "sweep the learning rate please", 0, 0},
		{"空串", "", 0, 0},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			limits := extractRunLimits(s.prompt)
			if limits.MaxRuns != s.maxRuns {
				t.Errorf("MaxRuns=%d, 期望 %d", limits.MaxRuns, s.maxRuns)
			}
			if limits.ParallelRuns != s.parallel {
				t.Errorf("ParallelRuns=%d, 期望 %d", limits.ParallelRuns, s.parallel)
			}
		})
	}
}
