package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	analyticsdomain "github.com/omvsuite/omvadmin/internal/analytics/domain"
)

const defaultReportDays = 30

func (s *Server) TrackActivity(c *gin.Context) {
	var req analyticsdomain.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.analyticsSvc.Track(c.Request.Context(), req); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"tracked": true}})
}

func (s *Server) GetUserDailyStats(c *gin.Context) {
	days, err := parseDays(c.Query("days"))
	if err != nil {
		AbortWithError(c, newValidationError("days", "invalid_days", "invalid days"))
		return
	}

	resp, err := s.analyticsSvc.UserDailyStats(c.Request.Context(), strings.TrimSpace(c.Param("id")), days)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetGlobalActivity(c *gin.Context) {
	days, err := parseDays(c.Query("days"))
	if err != nil {
		AbortWithError(c, newValidationError("days", "invalid_days", "invalid days"))
		return
	}

	resp, err := s.analyticsSvc.GlobalActivity(c.Request.Context(), days)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSystemReport(c *gin.Context) {
	resp, err := s.analyticsSvc.SystemMetrics(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func parseDays(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultReportDays, nil
	}
	return strconv.Atoi(raw)
}
