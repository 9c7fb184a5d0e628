package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	Service string
	DB      Pinger
	Logger  *logrus.Logger
}

func NewHealthHandler(service string, db Pinger, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{Service: service, DB: db, Logger: logger}
}

func (h *HealthHandler) Health(c *gin.Context) {
	body := gin.H{"status": "ok", "service": h.Service, "time": time.Now().UTC()}
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.Ping(ctx); err != nil {
			if h.Logger != nil {
				h.Logger.WithError(err).Warn("health: database ping failed")
			}
			body["status"] = "degraded"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
	}
	c.JSON(http.StatusOK, body)
}
