package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omvsuite/omvadmin/internal/cache"
)

// Health reports adapter availability from the prober. The process is
// serving as long as it is up; a degraded cache only changes the payload.
func (s *Server) Health(c *gin.Context) {
	health := s.facade.Probe(c.Request.Context())

	status := "ok"
	if !health.StoreHealthy {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"cache":  health.CacheHealthy,
		"store":  health.StoreHealthy,
		"mode":   string(health.Classify()),
	})
}

func (s *Server) FlushCache(c *gin.Context) {
	if err := s.facade.FlushAll(c.Request.Context()); err != nil {
		if errors.Is(err, cache.ErrFlushUnsupported) {
			c.JSON(http.StatusOK, gin.H{"data": gin.H{
				"flushed": false,
				"warning": "flush is not supported by the active cache backend",
			}})
			return
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"flushed": true}})
}
