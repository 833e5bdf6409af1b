package server

import (
	"io"
	"log"
	"net/http"

	"sparkles-laundry/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createPaymentRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

func (s *Server) handleCreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domain.Validation("Order ID is required"))
		return
	}
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		fail(c, domain.NotFound("Order not found"))
		return
	}

	descriptor, err := s.payments.CreateStablecoinPayment(c.Request.Context(), orderID, userID(c))
	if err != nil {
		fail(c, err)
		return
	}

	payload := gin.H{"paymentData": descriptor}
	if descriptor.Manual {
		payload["message"] = "Testnet Mode - Manual Transfer"
		payload["demoMode"] = true
	}
	respond(c, http.StatusOK, payload)
}

// handleWebhook acknowledges with the provider's envelope codes. The
// provider keys its retry policy off returnCode, so this endpoint never
// answers with an HTTP error status.
func (s *Server) handleWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"returnCode": "FAIL", "returnMessage": "Processing error"})
		return
	}

	if err := s.payments.ProcessWebhook(c.Request.Context(), c.Request.Header, body); err != nil {
		log.Printf("webhook error: %v", err)
		c.JSON(http.StatusOK, gin.H{"returnCode": "FAIL", "returnMessage": "Processing error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"returnCode": "SUCCESS", "returnMessage": nil})
}

func (s *Server) handlePaymentStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		fail(c, domain.NotFound("Order not found"))
		return
	}

	status, err := s.payments.Status(c.Request.Context(), orderID, userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"paymentStatus": status.PaymentStatus,
		"paidAmount":    status.PaidAmount,
		"paidCurrency":  status.PaidCurrency,
	})
}

func (s *Server) handleSimulatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domain.Validation("Order ID is required"))
		return
	}
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		fail(c, domain.NotFound("Order not found"))
		return
	}

	order, err := s.payments.SimulatePayment(c.Request.Context(), orderID, userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Payment simulated successfully", "order": order})
}

func (s *Server) handleInitializeCard(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domain.Validation("Order ID is required"))
		return
	}
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		fail(c, domain.NotFound("Order not found"))
		return
	}

	descriptor, err := s.payments.CreateCardPayment(c.Request.Context(), orderID, userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"authorization_url": descriptor.AuthorizationURL,
		"access_code":       descriptor.AccessCode,
		"reference":         descriptor.Reference,
	})
}

func (s *Server) handleVerifyCard(c *gin.Context) {
	order, err := s.payments.VerifyCardPayment(c.Request.Context(), c.Param("reference"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Payment verified successfully", "order": order})
}
