package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RunExport triggers one export pass immediately
func (h *Handlers) RunExport(c *gin.Context) {
	if err := h.pipeline.Run(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusOK)
}

// SchedulerStatus returns scheduler status
func (h *Handlers) SchedulerStatus(c *gin.Context) {
	status := "stopped"
	if h.scheduler.IsRunning() {
		status = "running"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"next_run": h.scheduler.GetNextRun(),
		"last_run": h.scheduler.GetLastRun(),
	})
}
