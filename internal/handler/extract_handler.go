package handler

import (
	"encoding/json"
	"net/http"

	"sweep-lab/internal/db"
	"sweep-lab/internal/model"
	"sweep-lab/internal/service"

	"github.com/gin-gonic/gin"
)

type ExtractHandler struct {
}

func NewExtractHandler() *ExtractHandler {
	return &ExtractHandler{}
}

// Extract 把自由文本提取/合并为扫参草稿
func (h *ExtractHandler) Extract(c *gin.Context) {
	var req struct {
		Prompt string              `json:"prompt" binding:"required"`
		Seed   *service.SweepDraft `json:"seed"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := service.BuildSweepDraftFromPrompt(req.Prompt, req.Seed)

	// 审计记录（数据库未初始化时跳过，不影响提取本身）
	if db.DB != nil {
		draftJSON, _ := json.Marshal(result.Config)
		extractedJSON, _ := json.Marshal(result.Extracted)
		_ = db.DB.WithContext(c.Request.Context()).Create(&model.ExtractionLog{
			Prompt:        req.Prompt,
			DraftJSON:     string(draftJSON),
			ExtractedJSON: string(extractedJSON),
			Confidence:    result.Confidence,
			LikelySweep:   service.IsLikelySweepPrompt(req.Prompt),
		}).Error
	}

	c.JSON(http.StatusOK, gin.H{
		"config":     result.Config,
		"extracted":  result.Extracted,
		"confidence": result.Confidence,
	})
}

// CheckIntent 判断提示词是否像扫参描述（供 UI 决定是否触发完整提取）
func (h *ExtractHandler) CheckIntent(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"likely_sweep": service.IsLikelySweepPrompt(req.Prompt),
	})
}
