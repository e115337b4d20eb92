package main

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vshulcz/Telemetra/internal/domain"
)

type Handler struct {
	log   *zap.Logger
	key   string
	total atomic.Int64
}

func NewHandler(logger *zap.Logger, key string) *Handler {
	return &Handler{log: logger, key: key}
}

func (h *Handler) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

// Series accepts one payload of the agent's wire format and replies
// with the number of series it contained.
func (h *Handler) Series(c *gin.Context) {
	if h.key != "" && c.GetHeader("DD-API-KEY") != h.key {
		c.JSON(http.StatusForbidden, gin.H{"error": "bad api key"})
		return
	}

	var batch domain.SeriesBatch
	if err := c.ShouldBindJSON(&batch); err != nil {
		h.log.Warn("bad payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	total := h.total.Add(int64(len(batch.Series)))
	h.log.Info("payload accepted",
		zap.Int("series", len(batch.Series)),
		zap.Int64("total", total),
		zap.String("encoding", c.GetHeader("Content-Encoding")),
	)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "accepted": len(batch.Series)})
}
