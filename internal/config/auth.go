package config

import (
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type AuthConfig struct {
	TokenTTL         time.Duration
	OTPCooldown      time.Duration
	OTPTTL           time.Duration
	OTPMaxAttempts   int
	DeletionGrace    time.Duration
	SessionTTL       time.Duration
	RateLimit        int
	RateLimitWindow  time.Duration
	ConfirmURLPrefix string
	ResetURLPrefix   string
}

func LoadAuthConfig() *AuthConfig {
	return &AuthConfig{
		TokenTTL:         getEnvAsDuration("AUTH_TOKEN_TTL", 10*time.Minute),
		OTPCooldown:      getEnvAsDuration("AUTH_OTP_COOLDOWN", 10*time.Minute),
		OTPTTL:           getEnvAsDuration("AUTH_OTP_TTL", 10*time.Minute),
		OTPMaxAttempts:   getEnvAsInt("AUTH_OTP_MAX_ATTEMPTS", 3),
		DeletionGrace:    getEnvAsDuration("AUTH_DELETION_GRACE", 30*24*time.Hour),
		SessionTTL:       getEnvAsDuration("AUTH_SESSION_TTL", 24*time.Hour),
		RateLimit:        getEnvAsInt("RATE_LIMIT_MAX", 200),
		RateLimitWindow:  getEnvAsDuration("RATE_LIMIT_WINDOW", time.Hour),
		ConfirmURLPrefix: getEnv("AUTH_CONFIRM_URL", "http://localhost:8080/api/v1/users/verifyEmail/"),
		ResetURLPrefix:   getEnv("AUTH_RESET_URL", "http://localhost:8080/api/v1/users/resetPassword/"),
	}
}

// lookup prefers the process environment and falls back to keys read from
// the .env file by Load.
func lookup(key string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return viper.GetString(key)
}

func getEnv(key, defaultVal string) string {
	if val := lookup(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvAsInt ignores values that are not positive integers.
func getEnvAsInt(key string, defaultVal int) int {
	if val := lookup(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil && intVal > 0 {
			return intVal
		}
	}
	return defaultVal
}

// getEnvAsDuration ignores values that are not positive durations.
func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := lookup(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultVal
}
