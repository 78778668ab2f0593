package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/amirhossein-jamali/imagify/internal/infrastructure/config"
)

// validateConfig ensures all required configuration values are present
// Every missing value is reported at once
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port (or PORT)")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// a URL replaces the discrete connection fields
	if cfg.Database.URL == "" {
		if cfg.Database.Host == "" {
			missingConfigs = append(missingConfigs, "database.host (or DATABASE_URL)")
		}
		if cfg.Database.Username == "" {
			missingConfigs = append(missingConfigs, "database.username (or DATABASE_URL)")
		}
		if cfg.Database.Database == "" {
			missingConfigs = append(missingConfigs, "database.database (or DATABASE_URL)")
		}
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	if cfg.Auth.JWTSecret == "" {
		missingConfigs = append(missingConfigs, "auth.jwtSecret (or JWT_SECRET)")
	}
	if cfg.ImageProvider.APIKey == "" {
		missingConfigs = append(missingConfigs, "imageProvider.apiKey (or CLIPDROP_API)")
	}
	if cfg.Payment.KeyID == "" {
		missingConfigs = append(missingConfigs, "payment.keyID (or RAZORPAY_KEY_ID)")
	}
	if cfg.Payment.KeySecret == "" {
		missingConfigs = append(missingConfigs, "payment.keySecret (or RAZORPAY_KEY_SECRET)")
	}
	if cfg.Payment.Currency == "" {
		missingConfigs = append(missingConfigs, "payment.currency (or CURRENCY)")
	}

	if cfg.Transaction.QueueSize == 0 {
		missingConfigs = append(missingConfigs, "transaction.queueSize")
	}
	if cfg.Transaction.LockTimeoutMs == 0 {
		missingConfigs = append(missingConfigs, "transaction.lockTimeoutMs")
	}
	if cfg.Transaction.MaxRetries == 0 {
		missingConfigs = append(missingConfigs, "transaction.maxRetries")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if cfg.RateLimit.Enabled && cfg.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rateLimit.requestsPerSecond must be positive when rate limiting is enabled")
	}
	if cfg.Credits.SignupGrant < 0 {
		return fmt.Errorf("credits.signupGrant must not be negative, got %d", cfg.Credits.SignupGrant)
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	if cfg.Environment == config.Production {
		if warnings := productionWarnings(cfg); len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}

func productionWarnings(cfg *config.Config) []string {
	var warnings []string

	if cfg.Database.URL == "" {
		switch strings.ToLower(cfg.Database.SSLMode) {
		case "require", "verify-ca", "verify-full":
		default:
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}
	}
	if len(cfg.Auth.JWTSecret) < 32 {
		warnings = append(warnings, "auth.jwtSecret is shorter than 32 bytes")
	}
	if cfg.Server.ReadTimeout < 5*time.Second {
		warnings = append(warnings, "server.readTimeout is too low for production")
	}
	if cfg.Server.WriteTimeout <= cfg.ImageProvider.Timeout {
		warnings = append(warnings, "server.writeTimeout should exceed imageProvider.timeout")
	}

	return warnings
}
