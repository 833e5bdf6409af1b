package config

import (
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// Config carries everything the process reads from the environment,
// loaded once at startup and injected where needed.
type Config struct {
	Port     string
	AppURL   string
	Currency string

	DBUsername string
	DBPassword string
	DBHost     string
	DBPort     string
	DBDatabase string
	DBSchema   string

	JWTSecret  string
	AdminEmail string

	// Card rail (Paystack-style REST API).
	CardSecretKey string
	CardPublicKey string
	CardBaseURL   string

	// Stablecoin rail (Binance Pay-style signed API). When APIKey and
	// Secret are both empty the adapter runs in manual/testnet mode.
	PayAPIKey     string
	PaySecret     string
	PayMerchantID string
	PayBaseURL    string
	ManualWallet  string
	ManualNetwork string

	// Zero disables the background payment reconciliation sweep.
	ReconcileInterval time.Duration
}

func Load() Config {
	interval, _ := time.ParseDuration(os.Getenv("RECONCILE_INTERVAL"))
	return Config{
		Port:     getenv("PORT", "3000"),
		AppURL:   getenv("APP_URL", "http://localhost:3000"),
		Currency: getenv("CURRENCY", "NGN"),

		DBUsername: os.Getenv("DB_USERNAME"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBDatabase: getenv("DB_DATABASE", "sparkles"),
		DBSchema:   getenv("DB_SCHEMA", "public"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		AdminEmail: getenv("ADMIN_EMAIL", "admin@sparkles.com"),

		CardSecretKey: os.Getenv("PAYSTACK_SECRET_KEY"),
		CardPublicKey: os.Getenv("PAYSTACK_PUBLIC_KEY"),
		CardBaseURL:   getenv("PAYSTACK_BASE_URL", "https://api.paystack.co"),

		PayAPIKey:     os.Getenv("BINANCE_PAY_API_KEY"),
		PaySecret:     os.Getenv("BINANCE_PAY_SECRET"),
		PayMerchantID: os.Getenv("BINANCE_MERCHANT_ID"),
		PayBaseURL:    getenv("BINANCE_PAY_BASE_URL", "https://bpay.binanceapi.com"),
		ManualWallet:  getenv("MANUAL_USDT_WALLET", "TYDzsYUEpvnYmQk4zGP9sWWcTEd2MiAtW7"),
		ManualNetwork: getenv("MANUAL_USDT_NETWORK", "TRC20"),

		ReconcileInterval: interval,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
