package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vshulcz/Telemetra/cmd/sink/middlewares"
)

func NewRouter(h *Handler, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middlewares.ZapLogger(logger))
	r.Use(middlewares.GunzipRequest())

	r.RedirectTrailingSlash = false
	r.RemoveExtraSlash = true

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.String(http.StatusMethodNotAllowed, "method not allowed")
	})

	r.GET("/ping", h.Ping)
	r.POST("/series", h.Series)
	r.POST("/api/v1/series", h.Series)

	return r
}
