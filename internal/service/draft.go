package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// 指标优化方向
const (
	GoalMinimize = "minimize"
	GoalMaximize = "maximize"
)

// Hyperparameter 一条超参数规格。
// range 用 Min/Max/Step；choice 用 Values（保序去重，元素为 float64 或 string）；
// fixed 用 FixedValue。
type Hyperparameter struct {
	Name       string        `json:"name"`
	Type       string        `json:"type"`
	Min        *float64      `json:"min,omitempty"`
	Max        *float64      `json:"max,omitempty"`
	Step       *float64      `json:"step,omitempty"`
	Values     []interface{} `json:"values,omitempty"`
	FixedValue interface{}   `json:"fixed_value,omitempty"`
}

// Metric 优化指标；合成后的草稿中恰好一条 IsPrimary
type Metric struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Goal      string `json:"goal"`
	IsPrimary bool   `json:"is_primary"`
}

// SweepDraft 部分填充的扫参配置草稿。
// 不变式：Hyperparameters 中不存在两条同名条目。
type SweepDraft struct {
	ID                    string           `json:"id"`
	Name                  string           `json:"name"`
	Description           string           `json:"description"`
	Goal                  string           `json:"goal"`
	Command               string           `json:"command"`
	Hyperparameters       []Hyperparameter `json:"hyperparameters"`
	Metrics               []Metric         `json:"metrics"`
	MaxRuns               int              `json:"max_runs,omitempty"`
	ParallelRuns          int              `json:"parallel_runs,omitempty"`
	EarlyStoppingEnabled  bool             `json:"early_stopping_enabled"`
	EarlyStoppingPatience int              `json:"early_stopping_patience"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

// ExtractionResult 一次提取调用的产出
type ExtractionResult struct {
	Config     SweepDraft `json:"config"`
	Extracted  []string   `json:"extracted"`
	Confidence float64    `json:"confidence"`
}

var (
	sentenceSplitRe = regexp.MustCompile(`[\n.!?]`)
	explicitNameRe  = regexp.MustCompile(`(?i)(?:\bname[ \t]*:[ \t]*|\bcall[ \t]+it[ \t]+)([^\n.,!?]+)`)
)

// 占位命令最多带几个参数
const maxPlaceholderParams = 5

// NewBlankDraft 返回空白草稿：默认主指标为验证集 loss，
// maxRuns=10、parallelRuns=2、早停开启且 patience=3。
func NewBlankDraft() SweepDraft {
	now := time.Now()
	return SweepDraft{
		ID: fmt.Sprintf("sweep-%d", now.UnixNano()),
		Metrics: []Metric{
			{Name: "Validation Loss", Path: "val/loss", Goal: GoalMinimize, IsPrimary: true},
		},
		MaxRuns:               10,
		ParallelRuns:          2,
		EarlyStoppingEnabled:  true,
		EarlyStoppingPatience: 3,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// cloneDraft 浅拷贝 + 切片复制：提取过程绝不原地修改调用方的种子草稿
func cloneDraft(d SweepDraft) SweepDraft {
	out := d
	if d.Hyperparameters != nil {
		out.Hyperparameters = append([]Hyperparameter(nil), d.Hyperparameters...)
	}
	if d.Metrics != nil {
		out.Metrics = append([]Metric(nil), d.Metrics...)
	}
	return out
}

// BuildSweepDraftFromPrompt 把自由文本描述合并进已有或空白的扫参草稿。
// seed 为 nil 时从空白草稿开始。纯函数：只依赖入参，永不报错。
func BuildSweepDraftFromPrompt(prompt string, seed *SweepDraft) ExtractionResult {
	var config SweepDraft
	if seed != nil {
		config = cloneDraft(*seed)
	} else {
		config = NewBlankDraft()
	}
	config.UpdatedAt = time.Now()

	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return ExtractionResult{Config: config, Extracted: []string{}, Confidence: 0}
	}

	command, commandFound := extractCommand(trimmed)
	hyperparams := extractHyperparameters(trimmed)
	metrics := extractMetrics(trimmed)
	limits := extractRunLimits(trimmed)

	extracted := []string{}

	if config.Goal == "" {
		config.Goal = firstSentence(trimmed)
	}
	if config.Description == "" {
		config.Description = trimmed
	}

	if commandFound {
		config.Command = command
		extracted = append(extracted, "command")
	}

	if len(hyperparams) > 0 {
		config.Hyperparameters = hyperparams
		if len(hyperparams) == 1 {
			extracted = append(extracted, "1 hyperparameter")
		} else {
			extracted = append(extracted, fmt.Sprintf("%d hyperparameters", len(hyperparams)))
		}
	}

	if config.Name == "" {
		config.Name = synthesizeName(trimmed, config.Hyperparameters)
	}

	// 没有任何命令来源时合成占位命令，保证草稿始终可提交
	if config.Command == "" {
		config.Command = fallbackCommand(config.Hyperparameters)
	}

	config.Metrics = metrics
	extracted = append(extracted, "primary metric")

	if limits.MaxRuns > 0 {
		config.MaxRuns = limits.MaxRuns
		extracted = append(extracted, "max runs")
	}
	if limits.ParallelRuns > 0 {
		config.ParallelRuns = limits.ParallelRuns
		extracted = append(extracted, "parallel runs")
	}

	confidence := 0.15
	if IsLikelySweepPrompt(trimmed) {
		confidence = 0.35
	}
	if commandFound {
		confidence += 0.2
	}
	if len(hyperparams) > 0 {
		confidence += 0.25
	}
	if limits.MaxRuns > 0 {
		confidence += 0.1
	}
	if limits.ParallelRuns > 0 {
		confidence += 0.05
	}
	if len(metrics) > 0 {
		confidence += 0.1
	}
	if confidence > 0.95 {
		confidence = 0.95
	}

	return ExtractionResult{Config: config, Extracted: extracted, Confidence: confidence}
}

// firstSentence 取第一个非空句子（按换行和 . ! ? 切分）
func firstSentence(text string) string {
	for _, part := range sentenceSplitRe.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			return part
		}
	}
	return ""
}

// synthesizeName 合成草稿名：
// 显式 "name: ..."/"call it ..." 优先；其次前两个超参数名拼接；兜底 "Experiment Sweep"。
func synthesizeName(prompt string, hyperparams []Hyperparameter) string {
	if m := explicitNameRe.FindStringSubmatch(prompt); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			return name
		}
	}

	if len(hyperparams) > 0 {
		parts := make([]string, 0, 2)
		for _, hp := range hyperparams {
			parts = append(parts, titleCaseParam(hp.Name))
			if len(parts) == 2 {
				break
			}
		}
		return strings.Join(parts, " + ") + " Sweep"
	}

	return "Experiment Sweep"
}

func titleCaseParam(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// fallbackCommand 用前几个超参数名合成占位训练命令
func fallbackCommand(hyperparams []Hyperparameter) string {
	if len(hyperparams) == 0 {
		return "python train.py --learning_rate {learning_rate}"
	}
	var b strings.Builder
	b.WriteString("python train.py")
	for i, hp := range hyperparams {
		if i >= maxPlaceholderParams {
			break
		}
		fmt.Fprintf(&b, " --%s {%s}", hp.Name, hp.Name)
	}
	return b.String()
}
