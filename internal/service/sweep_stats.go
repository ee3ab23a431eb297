package service

import (
	"encoding/json"
	"fmt"

	"sweep-lab/internal/db"
	"sweep-lab/internal/model"
)

type SweepStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Running  int `json:"running"`
	Finished int `json:"finished"`
	Failed   int `json:"failed"`
	// 截断前的完整网格大小与生成覆盖率
	GridSize int     `json:"grid_size"`
	Coverage float64 `json:"coverage"`
}

// ComputeSweepStats 统计某个扫参任务的运行状态分布与网格覆盖率
func ComputeSweepStats(sweepID uint, rangeSamplePoints int) (SweepStats, error) {
	var stats SweepStats

	var sweep model.Sweep
	if err := db.DB.First(&sweep, sweepID).Error; err != nil {
		return stats, fmt.Errorf("查询扫参任务失败: %w", err)
	}

	var runs []model.SweepRun
	if err := db.DB.Where("sweep_id = ?", sweepID).Find(&runs).Error; err != nil {
		return stats, fmt.Errorf("查询运行记录失败: %w", err)
	}

	stats.Total = len(runs)
	for _, run := range runs {
		switch run.Status {
		case "running":
			stats.Running++
		case "finished":
			stats.Finished++
		case "failed":
			stats.Failed++
		default:
			stats.Pending++
		}
	}

	var hyperparams []Hyperparameter
	if err := json.Unmarshal([]byte(sweep.HyperparamsJSON), &hyperparams); err == nil {
		_, axes := buildGridAxes(hyperparams, rangeSamplePoints)
		stats.GridSize = gridProductSize(axes)
	}
	if stats.GridSize > 0 {
		stats.Coverage = float64(stats.Total) / float64(stats.GridSize)
		if stats.Coverage > 1 {
			stats.Coverage = 1
		}
	}

	return stats, nil
}
