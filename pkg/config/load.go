package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/piolcm/piol/pkg/domain/transaction"
	"github.com/shopspring/decimal"
)

func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()
	logger.Info("Loading environment variables")

	if len(envFilePath) == 0 {
		logger.Debug("No environment file specified, trying default .env")
		if err := godotenv.Load(); err != nil {
			logger.Warn("No .env file found in current directory")
		}
		return loadFromEnv()
	}

	// Try each provided path until we find a valid one
	for _, path := range envFilePath {
		logger.Debug("Looking for environment file", "path", path)
		foundPath, err := FindEnvFile(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}

		logger.Info("Loading environment from file", "path", foundPath)
		if err := godotenv.Load(foundPath); err != nil {
			logger.Error("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		return loadFromEnv()
	}

	logger.Info("No valid environment files found, using default .env")
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found in current directory")
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	mtn := cfg.PaymentProviders.MTN
	orange := cfg.PaymentProviders.Orange
	logger := slog.Default()
	logger.Info("App config loaded",
		"env", cfg.Env,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"db", maskValue(cfg.DB.Url),
		"auth_strategy", cfg.Auth.Strategy,
		"auth_jwt_expiry", cfg.Auth.Jwt.Expiry,
		"event_bus", cfg.EventBus.Driver,
		"mtn_base_url", mtn.BaseURL,
		"mtn_collection_key", maskValue(mtn.CollectionSubscriptionKey),
		"orange_base_url", orange.BaseURL,
		"orange_client_id", maskValue(orange.ClientID),
		"mock_payments", cfg.PaymentProviders.Mock.Enabled,
		"escrow_commission_rate", cfg.Escrow.CommissionRate.String(),
		"escrow_disbursement_method", cfg.Escrow.DisbursementMethod,
	)
	return &cfg, nil
}

func (c *App) validate() error {
	rate := c.Escrow.CommissionRate
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("ESCROW_COMMISSION_RATE must be in [0, 1), got %s", rate)
	}
	if m := transaction.Method(c.Escrow.DisbursementMethod); !m.MobileMoney() {
		return fmt.Errorf("ESCROW_DISBURSEMENT_METHOD must be a mobile money method, got %q", m)
	}
	switch c.EventBus.Driver {
	case "memory", "redis", "kafka":
	default:
		return fmt.Errorf("EVENT_BUS_DRIVER must be one of memory, redis, kafka, got %q", c.EventBus.Driver)
	}
	return nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}

// FindEnvFile walks up from the working directory looking for filename (".env" when empty).
func FindEnvFile(filename string) (string, error) {
	if filename == "" {
		filename = ".env"
	}
	curr, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(curr, filename)
		if _, err = os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(curr)
		if parent == curr {
			return "", os.ErrNotExist
		}
		curr = parent
	}
}
