// Package server exposes the renderers over HTTP as file downloads.
package server

import (
	"github.com/gin-gonic/gin"

	"github.com/gorewood/folio/internal/logger"
)

type RouterConfig struct {
	ExportHandler *ExportHandler
	HealthHandler *HealthHandler
	Log           *logger.Logger
	MaxBodyBytes  int64
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(cfg.Log))
	r.NoRoute(NoRoute)

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	api.Use(LimitBody(cfg.MaxBodyBytes))
	{
		if cfg.ExportHandler != nil {
			api.POST("/export/:format", cfg.ExportHandler.Export)
			api.POST("/slug", cfg.ExportHandler.Slug)

			if cfg.ExportHandler.store != nil {
				api.GET("/stories", cfg.ExportHandler.ListStories)
				api.GET("/stories/:slug/:format", cfg.ExportHandler.ExportStored)
			}
		}
	}

	return r
}
