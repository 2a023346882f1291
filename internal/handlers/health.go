package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"telegram-report-bot/internal/models"
)

// HealthCheck handles health check requests
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := models.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Database:  "ok",
		Scheduler: make(map[string]string),
	}

	if err := h.db.Exec("SELECT 1").Error; err != nil {
		response.Status = "error"
		response.Database = "error"
		logrus.Errorf("Database health check failed: %v", err)
	} else {
		links, msgs, err := h.store.PendingCounts()
		if err != nil {
			logrus.Errorf("Failed to count pending records: %v", err)
		} else {
			response.PendingLinks = links
			response.PendingMessages = msgs
		}
	}

	if h.scheduler.IsRunning() {
		response.Scheduler["status"] = "running"
		response.Scheduler["next_run"] = h.scheduler.GetNextRun().Format(time.RFC3339)
		response.Scheduler["last_run"] = h.scheduler.GetLastRun().Format(time.RFC3339)
	} else {
		response.Scheduler["status"] = "stopped"
	}

	statusCode := http.StatusOK
	if response.Status == "error" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}
