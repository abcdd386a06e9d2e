package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	txndomain "github.com/omvsuite/omvadmin/internal/transaction/domain"
	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

func (s *Server) ListTransactions(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Type       string `form:"type"`
		Status     string `form:"status"`
		CustomerID string `form:"customerId"`
		OperatorID string `form:"operatorId"`
		From       string `form:"from"`
		To         string `form:"to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	from, err := parseOptionalTime(query.From)
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_from", "invalid from"))
		return
	}
	to, err := parseOptionalTime(query.To)
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_to", "invalid to"))
		return
	}

	resp, err := s.txnSvc.List(c.Request.Context(), txndomain.ListTransactionFilter{
		Type:       txndomain.Type(query.Type),
		Status:     txndomain.Status(query.Status),
		CustomerID: strings.TrimSpace(query.CustomerID),
		OperatorID: strings.TrimSpace(query.OperatorID),
		From:       from,
		To:         to,
	}, query.Pagination)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTransactionByID(c *gin.Context) {
	resp, err := s.txnSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTransactionHistory(c *gin.Context) {
	resp, err := s.txnSvc.History(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) Activate(c *gin.Context) {
	var req txndomain.ActivationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.OperatorID == "" {
		req.OperatorID = strings.TrimSpace(c.GetHeader(headerUserID))
	}

	resp, err := s.txnSvc.Activate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) Recharge(c *gin.Context) {
	var req txndomain.RechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.OperatorID == "" {
		req.OperatorID = strings.TrimSpace(c.GetHeader(headerUserID))
	}

	resp, err := s.txnSvc.Recharge(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) Transfer(c *gin.Context) {
	var req txndomain.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.OperatorID == "" {
		req.OperatorID = strings.TrimSpace(c.GetHeader(headerUserID))
	}

	resp, err := s.txnSvc.Transfer(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) Suspend(c *gin.Context) {
	var req txndomain.SuspendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.OperatorID == "" {
		req.OperatorID = strings.TrimSpace(c.GetHeader(headerUserID))
	}

	resp, err := s.txnSvc.Suspend(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func parseOptionalTime(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
