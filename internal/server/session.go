package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type createSessionRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

func (s *Server) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.sessionSvc.Create(c.Request.Context(), strings.TrimSpace(req.UserID), strings.TrimSpace(req.Role))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSession(c *gin.Context) {
	resp, err := s.sessionSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("token")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteSession(c *gin.Context) {
	if err := s.sessionSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("token"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) DeleteUserSessions(c *gin.Context) {
	if err := s.sessionSvc.DeleteAllForUser(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
