package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	webhookdomain "github.com/omvsuite/omvadmin/internal/webhooklog/domain"
)

func (s *Server) RecordWebhookLog(c *gin.Context) {
	var req webhookdomain.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.webhookSvc.Record(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListWebhookLogs(c *gin.Context) {
	endpoint := strings.TrimSpace(c.Query("endpoint"))

	resp, err := s.webhookSvc.ListByEndpoint(c.Request.Context(), endpoint)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
