package server

import (
	"net/http"

	"sparkles-laundry/internal/catalog"
	"sparkles-laundry/internal/database"
	"sparkles-laundry/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, database.Health(s.db))
}

func (s *Server) handleConfig(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{
		"paystackPublicKey": s.cfg.CardPublicKey,
	})
}

func (s *Server) handleListServices(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"services": catalog.All()})
}

func (s *Server) handleGetService(c *gin.Context) {
	svc, ok := catalog.Get(domain.ServiceType(c.Param("type")))
	if !ok {
		fail(c, domain.NotFound("Service type not found"))
		return
	}
	respond(c, http.StatusOK, gin.H{"service": svc})
}

type calculateRequest struct {
	Items []domain.OrderItem `json:"items" binding:"required,min=1"`
}

func (s *Server) handleCalculate(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domain.Validation("Items array is required"))
		return
	}

	lines := make([]gin.H, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, gin.H{
			"name":     it.Name,
			"quantity": it.Quantity,
			"price":    it.Price,
			"total":    it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))),
		})
	}
	respond(c, http.StatusOK, gin.H{
		"items":      lines,
		"totalPrice": domain.TotalPrice(req.Items),
	})
}

func (s *Server) handleGetRate(c *gin.Context) {
	rate, err := s.rates.Get(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"rate": rate.Rate, "lastUpdated": rate.LastUpdated})
}

type updateRateRequest struct {
	Rate decimal.Decimal `json:"rate" binding:"required"`
}

func (s *Server) handleUpdateRate(c *gin.Context) {
	var req updateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domain.Validation("Valid rate is required"))
		return
	}

	rate, err := s.rates.Update(c.Request.Context(), req.Rate, userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"message":     "Exchange rate updated successfully",
		"rate":        rate.Rate,
		"lastUpdated": rate.LastUpdated,
	})
}

func (s *Server) handleConvert(c *gin.Context) {
	amount, err := decimal.NewFromString(c.Param("amount"))
	if err != nil {
		fail(c, domain.Validation("Valid amount is required"))
		return
	}

	conv, err := s.rates.Convert(c.Request.Context(), amount)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"local": conv.Local,
		"usdt":  conv.USDT,
		"rate":  conv.Rate,
	})
}
