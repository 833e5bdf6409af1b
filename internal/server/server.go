package server

import (
	"database/sql"

	"sparkles-laundry/internal/config"
	"sparkles-laundry/internal/metrics"
	"sparkles-laundry/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	cfg      config.Config
	db       *sql.DB
	auth     service.AuthService
	orders   service.OrderService
	payments service.PaymentService
	admin    service.AdminService
	rates    service.RateService
	metrics  *metrics.ServerMetrics
}

func New(
	cfg config.Config,
	db *sql.DB,
	auth service.AuthService,
	orders service.OrderService,
	payments service.PaymentService,
	admin service.AdminService,
	rates service.RateService,
	m *metrics.ServerMetrics,
) *Server {
	return &Server{
		cfg:      cfg,
		db:       db,
		auth:     auth,
		orders:   orders,
		payments: payments,
		admin:    admin,
		rates:    rates,
		metrics:  m,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())
	if s.metrics != nil {
		r.Use(s.measured())
	}

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", s.handleRegister)
	auth.POST("/login", s.handleLogin)
	auth.GET("/verify", s.handleVerifyToken)

	services := api.Group("/services")
	services.GET("", s.handleListServices)
	services.GET("/:type", s.handleGetService)
	services.POST("/calculate", s.handleCalculate)

	orders := api.Group("/orders", s.authRequired())
	orders.POST("", s.handleCreateOrder)
	orders.GET("", s.handleListOrders)
	orders.GET("/:id", s.handleGetOrder)
	orders.PATCH("/:id", s.handleUpdateOrderStatus)

	payments := api.Group("/payments")
	payments.POST("/create", s.authRequired(), s.handleCreatePayment)
	payments.POST("/webhook", s.handleWebhook)
	payments.GET("/status/:orderId", s.authRequired(), s.handlePaymentStatus)
	payments.POST("/simulate-payment", s.authRequired(), s.handleSimulatePayment)

	card := api.Group("/card", s.authRequired())
	card.POST("/initialize", s.handleInitializeCard)
	card.GET("/verify/:reference", s.handleVerifyCard)

	rates := api.Group("/exchange-rate")
	rates.GET("", s.handleGetRate)
	rates.PUT("", s.adminRequired(), s.handleUpdateRate)
	rates.GET("/convert/:amount", s.handleConvert)

	api.GET("/config", s.handleConfig)

	admin := api.Group("/admin", s.adminRequired())
	admin.GET("/stats", s.handleAdminStats)
	admin.GET("/orders", s.handleAdminListOrders)
	admin.GET("/orders/:id", s.handleAdminGetOrder)
	admin.PATCH("/orders/:id/status", s.handleAdminUpdateStatus)
	admin.GET("/users", s.handleAdminListUsers)

	return r
}
