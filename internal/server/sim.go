package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	simdomain "github.com/omvsuite/omvadmin/internal/sim/domain"
	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

func (s *Server) CreateSim(c *gin.Context) {
	var req simdomain.CreateSimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.CreatedBy = strings.TrimSpace(c.GetHeader(headerUserID))

	resp, err := s.simSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListSims(c *gin.Context) {
	var query struct {
		pagination.Pagination
		simdomain.ListSimFilter
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.simSvc.List(c.Request.Context(), query.ListSimFilter, query.Pagination)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSimByID(c *gin.Context) {
	resp, err := s.simSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateSim(c *gin.Context) {
	var req simdomain.UpdateSimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.simSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteSim(c *gin.Context) {
	if err := s.simSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) ListWarehouseSims(c *gin.Context) {
	resp, err := s.simSvc.ListByWarehouse(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
