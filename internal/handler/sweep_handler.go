package handler

import (
	"net/http"
	"strconv"

	"sweep-lab/internal/db"
	"sweep-lab/internal/model"
	"sweep-lab/internal/service"

	"github.com/gin-gonic/gin"
)

type SweepHandler struct {
	creator      *service.SweepCreator
	samplePoints int
}

func NewSweepHandler(svcCtx *service.ServiceContext) *SweepHandler {
	return &SweepHandler{
		creator:      svcCtx.Creator,
		samplePoints: svcCtx.Config.Sweep.RangeSamplePoints,
	}
}

// CreateSweep 用完整草稿创建扫参任务（展开网格并落库）
func (h *SweepHandler) CreateSweep(c *gin.Context) {
	var draft service.SweepDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.creator.Create(c.Request.Context(), draft)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sweep":     result.Sweep,
		"runs":      result.Runs,
		"grid_size": result.GridSize,
	})
}

// CreateSweepFromPrompt 一步到位：先提取草稿再创建
func (h *SweepHandler) CreateSweepFromPrompt(c *gin.Context) {
	var req struct {
		Prompt string              `json:"prompt" binding:"required"`
		Seed   *service.SweepDraft `json:"seed"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	extraction := service.BuildSweepDraftFromPrompt(req.Prompt, req.Seed)
	result, err := h.creator.Create(c.Request.Context(), extraction.Config)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// 落库后补写来源与置信度
	result.Sweep.SourcePrompt = req.Prompt
	result.Sweep.Confidence = extraction.Confidence
	_ = db.DB.WithContext(c.Request.Context()).Save(result.Sweep).Error

	c.JSON(http.StatusOK, gin.H{
		"sweep":      result.Sweep,
		"runs":       result.Runs,
		"grid_size":  result.GridSize,
		"extracted":  extraction.Extracted,
		"confidence": extraction.Confidence,
	})
}

// ListSweeps 列出扫参任务
func (h *SweepHandler) ListSweeps(c *gin.Context) {
	var sweeps []model.Sweep

	query := db.DB.Order("created_at DESC")

	if limit := c.Query("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			query = query.Limit(l)
		}
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&sweeps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sweeps": sweeps,
	})
}

// GetSweep 获取单个扫参任务
func (h *SweepHandler) GetSweep(c *gin.Context) {
	id := c.Param("id")

	var sweep model.Sweep
	if err := db.DB.First(&sweep, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "扫参任务不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sweep": sweep,
	})
}

// DeleteSweep 删除扫参任务及其运行
func (h *SweepHandler) DeleteSweep(c *gin.Context) {
	id := c.Param("id")

	var sweep model.Sweep
	if err := db.DB.First(&sweep, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "扫参任务不存在"})
		return
	}

	if err := db.DB.Where("sweep_id = ?", sweep.ID).Delete(&model.SweepRun{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := db.DB.Delete(&sweep).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "删除成功",
	})
}

// ListSweepRuns 列出某个扫参任务的运行
func (h *SweepHandler) ListSweepRuns(c *gin.Context) {
	id := c.Param("id")

	var runs []model.SweepRun
	if err := db.DB.Where("sweep_id = ?", id).Order("seq ASC").Find(&runs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs": runs,
	})
}

// GetSweepStats 获取某个扫参任务的运行统计
func (h *SweepHandler) GetSweepStats(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法的任务ID"})
		return
	}

	stats, err := service.ComputeSweepStats(uint(id), h.samplePoints)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
	})
}

// GetSweepSummary 获取 Markdown 摘要
func (h *SweepHandler) GetSweepSummary(c *gin.Context) {
	id := c.Param("id")

	var sweep model.Sweep
	if err := db.DB.First(&sweep, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "扫参任务不存在"})
		return
	}

	var runs []model.SweepRun
	_ = db.DB.Where("sweep_id = ?", sweep.ID).Order("seq ASC").Find(&runs).Error

	c.JSON(http.StatusOK, gin.H{
		"markdown": service.RenderSweepMarkdown(&sweep, runs),
	})
}
