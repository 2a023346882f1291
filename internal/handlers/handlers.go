package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"telegram-report-bot/internal/exporter"
	"telegram-report-bot/internal/repository"
	"telegram-report-bot/internal/scheduler"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	db        *gorm.DB
	store     *repository.Store
	scheduler *scheduler.Scheduler
	pipeline  *exporter.Pipeline
}

// NewHandlers creates new HTTP handlers
func NewHandlers(db *gorm.DB, store *repository.Store, s *scheduler.Scheduler, p *exporter.Pipeline) *Handlers {
	return &Handlers{db: db, store: store, scheduler: s, pipeline: p}
}

// SetupRoutes registers all routes on the router
func (h *Handlers) SetupRoutes(router *gin.Engine) {
	router.GET("/health", h.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.POST("/export/run", h.RunExport)
		api.GET("/scheduler/status", h.SchedulerStatus)
		api.GET("/links", h.ListLinks)
		api.GET("/messages", h.ListMessages)
	}
}
