package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Health(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		if err := d.Store.Ping(c.Request.Context()); err != nil {
			d.Logger.Error("health check: store unreachable", zap.Error(err))
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": d.now().Format(time.RFC3339),
		})
	}
}
