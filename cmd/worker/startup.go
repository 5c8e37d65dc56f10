package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-backend/pkg/container"
	"storefront-backend/pkg/logger"
)

// startServices runs the startup checks and exposes the health endpoints.
func startServices(c *container.Container) error {
	checks := []struct {
		name string
		fn   func(ctx context.Context) error
	}{
		{"Redis Connection", c.Cache.Ping},
		{"Database Connection", c.DB.HealthCheck},
	}

	for _, check := range checks {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := check.fn(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		logger.Info("Startup check passed", map[string]interface{}{"check": check.name})
	}

	go startHealthCheckServer(c.Config.Queue.HealthCheckAddress)
	return nil
}

func startHealthCheckServer(addr string) {
	router := gin.New()
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "UP", "service": "storefront-worker"})
	})
	router.GET("/ready", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "READY"})
	})

	logger.Info("[Health] Starting health check server", map[string]interface{}{"addr": addr})
	if err := router.Run(addr); err != nil {
		logger.Error("[Health] Failed to start", err)
	}
}
