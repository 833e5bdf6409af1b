package main

import (
	"context"
	"log"

	"sparkles-laundry/internal/config"
	"sparkles-laundry/internal/database"
	"sparkles-laundry/internal/infrastructure/payment"
	"sparkles-laundry/internal/metrics"
	"sparkles-laundry/internal/repo"
	"sparkles-laundry/internal/server"
	"sparkles-laundry/internal/service"
	"sparkles-laundry/internal/worker"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	db := database.NewPostgres(cfg)
	defer db.Close()

	orderRepo := repo.NewOrderRepo(db)
	userRepo := repo.NewUserRepo(db)
	rateRepo := repo.NewRateRepo(db)

	cardGateway := payment.NewPaystackGateway(cfg.CardSecretKey, cfg.CardBaseURL, cfg.AppURL+"/dashboard")
	cryptoGateway := payment.NewBinancePayGateway(
		cfg.PayAPIKey, cfg.PaySecret, cfg.PayMerchantID,
		cfg.PayBaseURL, cfg.AppURL, cfg.ManualWallet, cfg.ManualNetwork,
	)
	if !cryptoGateway.VerificationEnabled() {
		log.Println("stablecoin rail running in manual/testnet mode (no credentials configured)")
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	orderService := service.NewOrderService(orderRepo)
	paymentService := service.NewPaymentService(orderRepo, userRepo, rateRepo, cardGateway, cryptoGateway, cfg.Currency)
	adminService := service.NewAdminService(orderRepo, userRepo)
	rateService := service.NewRateService(rateRepo)

	if cfg.ReconcileInterval > 0 {
		w := worker.NewReconciliationWorker(orderRepo, paymentService, cfg.ReconcileInterval)
		go w.Run(context.Background())
	}

	m := metrics.NewServerMetrics("api")
	srv := server.New(cfg, db, authService, orderService, paymentService, adminService, rateService, m)

	log.Printf("listening on :%s", cfg.Port)
	if err := srv.Router().Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
