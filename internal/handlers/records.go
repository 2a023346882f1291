package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListLinks returns stored links; pending ones only unless ?all=true
func (h *Handlers) ListLinks(c *gin.Context) {
	pendingOnly := c.Query("all") != "true"
	links, err := h.store.Links(pendingOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"links": links, "count": len(links)})
}

// ListMessages returns stored messages; pending ones only unless ?all=true
func (h *Handlers) ListMessages(c *gin.Context) {
	pendingOnly := c.Query("all") != "true"
	msgs, err := h.store.Messages(pendingOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs, "count": len(msgs)})
}
