package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultBaseURL = "https://galaxycinema-a6eeaze9afbagaft.southeastasia-01.azurewebsites.net"

type Config struct {
	// BaseURL is the cinema API address.
	BaseURL     string
	HTTPTimeout time.Duration
	// PageSize is the default page size for ticket listings.
	PageSize int
	// PaymentPollAttempts/-Interval drive the checkout status poll.
	PaymentPollAttempts int
	PaymentPollInterval time.Duration
}

// Load reads configuration from the environment, with a .env file as an
// optional source. Every value has a working default.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		BaseURL:             getEnv("GALAXY_API_URL", defaultBaseURL),
		HTTPTimeout:         getDuration("GALAXY_HTTP_TIMEOUT", 12*time.Second),
		PageSize:            getInt("GALAXY_PAGE_SIZE", 10),
		PaymentPollAttempts: getInt("GALAXY_PAYMENT_POLL_ATTEMPTS", 10),
		PaymentPollInterval: getDuration("GALAXY_PAYMENT_POLL_INTERVAL", 3*time.Second),
	}
}

func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
