package model

import (
	"time"

	"gorm.io/gorm"
)

// ExtractionLog 每次提取调用的审计记录（供调试/可解释性：原始提示词、产出草稿与置信度）
type ExtractionLog struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Prompt        string  `gorm:"type:longtext" json:"prompt"`
	DraftJSON     string  `gorm:"type:longtext" json:"draft_json"`
	ExtractedJSON string  `gorm:"type:varchar(500)" json:"extracted_json"`
	Confidence    float64 `gorm:"type:decimal(3,2)" json:"confidence"`
	LikelySweep   bool    `json:"likely_sweep"`
}
