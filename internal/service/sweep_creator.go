package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"sweep-lab/internal/config"
	"sweep-lab/internal/db"
	"sweep-lab/internal/model"
)

// range 展开的安全上限：step 过小时不至于撑爆网格
const maxRangeAxisPoints = 1000

type SweepCreator struct {
	defaults config.SweepConfig
}

func NewSweepCreator(defaults config.SweepConfig) *SweepCreator {
	return &SweepCreator{defaults: defaults}
}

type SweepCreateResult struct {
	Sweep *model.Sweep     `json:"sweep"`
	Runs  []model.SweepRun `json:"runs"`
	// 截断前的完整网格大小
	GridSize int `json:"grid_size"`
}

// Create 把草稿展开为具体运行并落库：
// choice 取其值集，range 按 step（或均匀采样）展开，fixed 单值；
// 笛卡尔积按 MaxRuns 截断，每次运行的命令由 {参数名} 占位符代入。
func (c *SweepCreator) Create(ctx context.Context, draft SweepDraft) (*SweepCreateResult, error) {
	if strings.TrimSpace(draft.Name) == "" {
		draft.Name = "Experiment Sweep"
	}
	if draft.MaxRuns <= 0 {
		draft.MaxRuns = c.defaults.DefaultMaxRuns
	}
	if draft.ParallelRuns <= 0 {
		draft.ParallelRuns = c.defaults.DefaultParallelRuns
	}

	hyperparamsJSON, _ := json.Marshal(draft.Hyperparameters)
	metricsJSON, _ := json.Marshal(draft.Metrics)

	sweep := &model.Sweep{
		DraftID:               draft.ID,
		Name:                  draft.Name,
		Description:           draft.Description,
		Goal:                  draft.Goal,
		Command:               draft.Command,
		HyperparamsJSON:       string(hyperparamsJSON),
		MetricsJSON:           string(metricsJSON),
		MaxRuns:               draft.MaxRuns,
		ParallelRuns:          draft.ParallelRuns,
		EarlyStoppingEnabled:  draft.EarlyStoppingEnabled,
		EarlyStoppingPatience: draft.EarlyStoppingPatience,
		SourcePrompt:          draft.Description,
		Status:                "pending",
	}
	if err := db.DB.WithContext(ctx).Create(sweep).Error; err != nil {
		return nil, fmt.Errorf("创建扫参任务失败: %w", err)
	}

	names, axes := buildGridAxes(draft.Hyperparameters, c.defaults.RangeSamplePoints)
	gridSize := gridProductSize(axes)
	combos := enumerateGrid(axes, draft.MaxRuns)

	runs := make([]model.SweepRun, 0, len(combos))
	for seq, combo := range combos {
		params := make(map[string]interface{}, len(names))
		for i, name := range names {
			params[name] = combo[i]
		}
		paramsJSON, _ := json.Marshal(params)
		runs = append(runs, model.SweepRun{
			SweepID:    sweep.ID,
			Seq:        seq,
			ParamsJSON: string(paramsJSON),
			Command:    renderRunCommand(draft.Command, names, combo),
			Status:     "pending",
		})
	}
	if len(runs) > 0 {
		if err := db.DB.WithContext(ctx).CreateInBatches(runs, 100).Error; err != nil {
			return nil, fmt.Errorf("创建运行记录失败: %w", err)
		}
	}

	return &SweepCreateResult{Sweep: sweep, Runs: runs, GridSize: gridSize}, nil
}

// buildGridAxes 把超参数列表展开为网格坐标轴（保持声明顺序）
func buildGridAxes(hyperparams []Hyperparameter, samplePoints int) ([]string, [][]interface{}) {
	if samplePoints <= 1 {
		samplePoints = 4
	}
	var names []string
	var axes [][]interface{}
	for _, hp := range hyperparams {
		axis := expandHyperparameter(hp, samplePoints)
		if len(axis) == 0 {
			continue
		}
		names = append(names, hp.Name)
		axes = append(axes, axis)
	}
	return names, axes
}

// expandHyperparameter 单个参数的取值序列
func expandHyperparameter(hp Hyperparameter, samplePoints int) []interface{} {
	switch hp.Type {
	case HyperparamTypeChoice:
		return append([]interface{}(nil), hp.Values...)
	case HyperparamTypeFixed:
		if hp.FixedValue == nil {
			return nil
		}
		return []interface{}{hp.FixedValue}
	case HyperparamTypeRange:
		if hp.Min == nil || hp.Max == nil {
			return nil
		}
		min, max := *hp.Min, *hp.Max
		if min == max {
			return []interface{}{min}
		}
		if hp.Step != nil && *hp.Step > 0 {
			var out []interface{}
			for v := min; v <= max && len(out) < maxRangeAxisPoints; v += *hp.Step {
				out = append(out, v)
			}
			return out
		}
		// 未给 step：均匀采样
		out := make([]interface{}, 0, samplePoints)
		for i := 0; i < samplePoints; i++ {
			out = append(out, min+(max-min)*float64(i)/float64(samplePoints-1))
		}
		return out
	default:
		return nil
	}
}

func gridProductSize(axes [][]interface{}) int {
	if len(axes) == 0 {
		return 0
	}
	size := 1
	for _, axis := range axes {
		size *= len(axis)
		if size > 1<<20 {
			return 1 << 20
		}
	}
	return size
}

// enumerateGrid 按笛卡尔积顺序枚举组合，最多 limit 个（里程表式递增，末轴最快）
func enumerateGrid(axes [][]interface{}, limit int) [][]interface{} {
	if len(axes) == 0 || limit <= 0 {
		return nil
	}
	idx := make([]int, len(axes))
	var out [][]interface{}
	for len(out) < limit {
		combo := make([]interface{}, len(axes))
		for i, axis := range axes {
			combo[i] = axis[idx[i]]
		}
		out = append(out, combo)

		pos := len(axes) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(axes[pos]) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}
	return out
}

// renderRunCommand 把参数代入命令模板：
// 有 {name} 占位符的直接替换，没有的以 --name value 形式追加
func renderRunCommand(command string, names []string, combo []interface{}) string {
	if strings.TrimSpace(command) == "" {
		command = "python train.py"
	}
	var appended strings.Builder
	for i, name := range names {
		placeholder := "{" + name + "}"
		value := formatParamValue(combo[i])
		if strings.Contains(command, placeholder) {
			command = strings.ReplaceAll(command, placeholder, value)
		} else {
			fmt.Fprintf(&appended, " --%s %s", name, value)
		}
	}
	return command + appended.String()
}

func formatParamValue(v interface{}) string {
	switch vv := v.(type) {
	case float64:
		return strconv.FormatFloat(vv, 'g', -1, 64)
	case string:
		return vv
	default:
		return fmt.Sprintf("%v", vv)
	}
}
