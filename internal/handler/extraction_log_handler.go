package handler

import (
	"net/http"
	"strconv"

	"sweep-lab/internal/db"
	"sweep-lab/internal/model"

	"github.com/gin-gonic/gin"
)

type ExtractionLogHandler struct {
}

func NewExtractionLogHandler() *ExtractionLogHandler {
	return &ExtractionLogHandler{}
}

// ListExtractions 列出提取审计记录
func (h *ExtractionLogHandler) ListExtractions(c *gin.Context) {
	var logs []model.ExtractionLog

	query := db.DB.Order("created_at DESC")

	if limit := c.Query("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			query = query.Limit(l)
		}
	}

	if err := query.Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"extractions": logs,
	})
}

// GetExtraction 获取单条提取记录
func (h *ExtractionLogHandler) GetExtraction(c *gin.Context) {
	id := c.Param("id")

	var log model.ExtractionLog
	if err := db.DB.First(&log, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "提取记录不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"extraction": log,
	})
}

// DeleteExtraction 删除提取记录
func (h *ExtractionLogHandler) DeleteExtraction(c *gin.Context) {
	id := c.Param("id")

	if err := db.DB.Delete(&model.ExtractionLog{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "删除成功",
	})
}
