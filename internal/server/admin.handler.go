package server

import (
	"net/http"

	"sparkles-laundry/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) handleAdminStats(c *gin.Context) {
	stats, err := s.admin.Stats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"stats": stats})
}

func (s *Server) handleAdminListOrders(c *gin.Context) {
	orders, err := s.admin.ListOrders(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

func (s *Server) handleAdminGetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, domain.NotFound("Order not found"))
		return
	}

	order, err := s.admin.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"order": order})
}

func (s *Server) handleAdminUpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, domain.NotFound("Order not found"))
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domain.Validation("Invalid status. Valid options: pending, processing, completed, delivered, cancelled"))
		return
	}

	order, err := s.orders.AdminUpdateStatus(c.Request.Context(), orderID, domain.OrderStatus(req.Status))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}

func (s *Server) handleAdminListUsers(c *gin.Context) {
	users, err := s.admin.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"count": len(users), "users": users})
}
