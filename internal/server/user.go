package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	userdomain "github.com/omvsuite/omvadmin/internal/user/domain"
	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type createUserRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Department  string   `json:"department"`
	Supervisor  string   `json:"supervisor"`
}

func (s *Server) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.userSvc.Create(c.Request.Context(), userdomain.CreateUserRequest{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Role:        userdomain.Role(req.Role),
		Permissions: req.Permissions,
		Department:  strings.TrimSpace(req.Department),
		Supervisor:  strings.TrimSpace(req.Supervisor),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListUsers(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Role     string `form:"role"`
		Email    string `form:"email"`
		IsActive *bool  `form:"isActive"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.userSvc.List(c.Request.Context(), userdomain.ListUserRequest{
		Pagination: query.Pagination,
		Role:       userdomain.Role(query.Role),
		Email:      strings.TrimSpace(query.Email),
		IsActive:   query.IsActive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetUserByID(c *gin.Context) {
	resp, err := s.userSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetUserPermissions(c *gin.Context) {
	resp, err := s.userSvc.Permissions(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateUserRequest struct {
	Name        *string  `json:"name"`
	Role        *string  `json:"role"`
	Permissions []string `json:"permissions"`
	Department  *string  `json:"department"`
	Supervisor  *string  `json:"supervisor"`
	IsActive    *bool    `json:"isActive"`
}

func (s *Server) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	params := userdomain.UpdateUserParams{
		Name:        req.Name,
		Permissions: req.Permissions,
		Department:  req.Department,
		Supervisor:  req.Supervisor,
		IsActive:    req.IsActive,
	}
	if req.Role != nil {
		role := userdomain.Role(*req.Role)
		params.Role = &role
	}

	resp, err := s.userSvc.Update(c.Request.Context(), userdomain.UpdateUserRequest{
		ID:               strings.TrimSpace(c.Param("id")),
		UpdateUserParams: params,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteUser(c *gin.Context) {
	if err := s.userSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
