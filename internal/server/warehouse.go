package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	warehousedomain "github.com/omvsuite/omvadmin/internal/warehouse/domain"
	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

func (s *Server) CreateWarehouse(c *gin.Context) {
	var req warehousedomain.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.warehouseSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListWarehouses(c *gin.Context) {
	var query struct {
		pagination.Pagination
		warehousedomain.ListWarehouseFilter
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.warehouseSvc.List(c.Request.Context(), query.ListWarehouseFilter, query.Pagination)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetWarehouseByID(c *gin.Context) {
	resp, err := s.warehouseSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateWarehouse(c *gin.Context) {
	var req warehousedomain.UpdateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.warehouseSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
