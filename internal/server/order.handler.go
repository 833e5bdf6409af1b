package server

import (
	"net/http"

	"sparkles-laundry/internal/domain"
	"sparkles-laundry/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) handleCreateOrder(c *gin.Context) {
	var input service.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, domain.Validation("Items, service type and both addresses are required"))
		return
	}

	order, err := s.orders.Create(c.Request.Context(), userID(c), input)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}

func (s *Server) handleListOrders(c *gin.Context) {
	orders, err := s.orders.ListForUser(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

func (s *Server) handleGetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, domain.NotFound("Order not found"))
		return
	}

	order, err := s.orders.GetForUser(c.Request.Context(), orderID, userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"order": order})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) handleUpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, domain.NotFound("Order not found"))
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domain.Validation("Invalid status"))
		return
	}

	order, err := s.orders.UpdateStatusForUser(c.Request.Context(), orderID, userID(c), domain.OrderStatus(req.Status))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}
