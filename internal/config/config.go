package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string

	OTelServiceName string
	OTelEndpoint    string

	HourlyRateSmall  int64
	HourlyRateMedium int64
	HourlyRateLarge  int64
	MinimumCharge    int64
}

func Load() *Config {
	return &Config{
		Port:             envOr("APP_PORT", "8080"),
		Environment:      envOr("ENVIRONMENT", "development"),
		OTelServiceName:  envOr("OTEL_SERVICE_NAME", "parking-engine"),
		OTelEndpoint:     envOr("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
		HourlyRateSmall:  envOrInt64("HOURLY_RATE_SMALL", 20),
		HourlyRateMedium: envOrInt64("HOURLY_RATE_MEDIUM", 40),
		HourlyRateLarge:  envOrInt64("HOURLY_RATE_LARGE", 60),
		MinimumCharge:    envOrInt64("MINIMUM_CHARGE", 20),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envOrInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}
