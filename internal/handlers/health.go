package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// SchedulerStatus reports the state of the scheduled report export.
type SchedulerStatus interface {
	GetStatus() map[string]interface{}
}

type HealthHandler struct {
	ping      func(ctx context.Context) error
	feed      *OrderFeed
	scheduler SchedulerStatus
}

// NewHealthHandler builds the health check. feed and scheduler may be nil.
func NewHealthHandler(ping func(ctx context.Context) error, feed *OrderFeed, scheduler SchedulerStatus) *HealthHandler {
	return &HealthHandler{ping: ping, feed: feed, scheduler: scheduler}
}

func (h *HealthHandler) Check(c *gin.Context) {
	status, database := http.StatusOK, "up"

	if err := h.ping(c.Request.Context()); err != nil {
		log.WithError(err).Warn("Health check: database unreachable")
		status, database = http.StatusServiceUnavailable, "down"
	}

	body := gin.H{
		"status":    http.StatusText(status),
		"message":   "Lojinha is running",
		"database":  database,
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if h.feed != nil {
		body["subscribers"] = h.feed.Subscribers()
	}

	if h.scheduler != nil {
		body["scheduler"] = h.scheduler.GetStatus()
	}

	c.JSON(status, body)
}
