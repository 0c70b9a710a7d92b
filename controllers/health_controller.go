package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

var healthCheck func(ctx context.Context) error

// SetHealthCheck installs the dependency probe used by Health.
func SetHealthCheck(check func(ctx context.Context) error) {
	healthCheck = check
}

func Health(c *gin.Context) {
	if healthCheck != nil {
		if err := healthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
