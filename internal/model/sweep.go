package model

import (
	"time"

	"gorm.io/gorm"
)

// Sweep 已创建的扫参任务（由草稿展开而来）
type Sweep struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 草稿侧的不透明 ID（提取器生成，用于 UI 端对齐）
	DraftID string `gorm:"type:varchar(64);index" json:"draft_id"`

	Name        string `gorm:"type:varchar(200);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Goal        string `gorm:"type:text" json:"goal"`
	Command     string `gorm:"type:text" json:"command"`

	// 超参数网格与指标以 JSON 文本落库
	HyperparamsJSON string `gorm:"type:text" json:"hyperparams_json"`
	MetricsJSON     string `gorm:"type:text" json:"metrics_json"`

	MaxRuns               int  `json:"max_runs"`
	ParallelRuns          int  `json:"parallel_runs"`
	EarlyStoppingEnabled  bool `json:"early_stopping_enabled"`
	EarlyStoppingPatience int  `json:"early_stopping_patience"`

	// 来源提示词与提取置信度（直接创建时为空/0）
	SourcePrompt string  `gorm:"type:text" json:"source_prompt"`
	Confidence   float64 `gorm:"type:decimal(3,2)" json:"confidence"`

	// pending/running/finished/cancelled
	Status string `gorm:"type:varchar(20);index;default:pending" json:"status"`
}

// SweepRun 网格展开出的单次运行
type SweepRun struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	SweepID uint `gorm:"not null;index" json:"sweep_id"`
	// 在网格中的序号（从 0 开始，截断前的笛卡尔积顺序）
	Seq int `gorm:"index" json:"seq"`

	// 本次运行的具体参数取值
	ParamsJSON string `gorm:"type:text" json:"params_json"`
	// 参数代入后的完整命令
	Command string `gorm:"type:text" json:"command"`

	// pending/running/finished/failed
	Status string `gorm:"type:varchar(20);index;default:pending" json:"status"`
}
