// Package config binds environment variables and the optional .env file into viper.
package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

var bindings = map[string]string{
	"app.env":          "APP_ENV",
	"app.port":         "PORT",
	"app.phone_region": "PHONE_DEFAULT_REGION",

	"database.url":      "DATABASE_URL",
	"database.host":     "DATABASE_HOST",
	"database.port":     "DATABASE_PORT",
	"database.user":     "DATABASE_USER",
	"database.password": "DATABASE_PASSWORD",
	"database.name":     "DATABASE_NAME",
	"database.ssl_mode": "DATABASE_SSL_MODE",

	"redis.host":     "REDIS_HOST",
	"redis.port":     "REDIS_PORT",
	"redis.password": "REDIS_PASSWORD",
	"redis.db":       "REDIS_DB",

	"jwt.secret_key": "JWT_SECRET_KEY",

	"argon2.time":        "ARGON2_TIME",
	"argon2.memory":      "ARGON2_MEMORY",
	"argon2.threads":     "ARGON2_THREADS",
	"argon2.key_length":  "ARGON2_KEY_LENGTH",
	"argon2.salt_length": "ARGON2_SALT_LENGTH",

	"vault.master_key": "VAULT_MASTER_KEY",
	"vault.salt":       "VAULT_SALT",

	"twilio.account_sid":   "TWILIO_ACCOUNT_SID",
	"twilio.auth_token":    "TWILIO_AUTH_TOKEN",
	"twilio.friendly_name": "TWILIO_FRIENDLY_NAME",

	"smtp.host":     "SMTP_HOST",
	"smtp.port":     "SMTP_PORT",
	"smtp.username": "SMTP_USERNAME",
	"smtp.password": "SMTP_PASSWORD",
	"smtp.from":     "SMTP_FROM",
}

// Load reads .env (if present) and binds the known keys to their environment variables.
func Load(path string) {
	viper.SetConfigFile(path)
	viper.AutomaticEnv()

	for key, env := range bindings {
		viper.BindEnv(key, env)
	}

	viper.SetDefault("app.env", "production")
	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.phone_region", "NG")
	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("smtp.from", "Shopwise <noreply@shopwise.local>")
	viper.SetDefault("twilio.friendly_name", "Shopwise")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
		return
	}

	// .env entries are read under their variable names; expose them under the
	// dotted keys too. Real environment variables still win.
	for key, env := range bindings {
		if name := strings.ToLower(env); viper.InConfig(name) {
			viper.SetDefault(key, viper.Get(name))
		}
	}
}

// IsDevelopment reports whether full error detail may be exposed to clients.
func IsDevelopment() bool {
	env := strings.ToLower(viper.GetString("app.env"))
	return env == "development" || env == "dev"
}
