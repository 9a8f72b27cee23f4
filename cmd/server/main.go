package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopwise/backend/docs"
	"github.com/shopwise/backend/internal/audit"
	"github.com/shopwise/backend/internal/config"
	"github.com/shopwise/backend/internal/database"
	"github.com/shopwise/backend/internal/handlers"
	"github.com/shopwise/backend/internal/mailer"
	mW "github.com/shopwise/backend/internal/middleware"
	"github.com/shopwise/backend/internal/otp"
	"github.com/shopwise/backend/internal/services"
	"github.com/shopwise/backend/internal/vault"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Shopwise Backend API
// @version 1.0
// @description Accounts, two-factor authentication and product catalogue
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	config.Load(".env")
	cfg := config.LoadAuthConfig()

	// Initialize Swagger docs
	docs.SwaggerInfo.Title = "Shopwise Backend API"
	docs.SwaggerInfo.Description = "Accounts, two-factor authentication and product catalogue"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:" + viper.GetString("app.port")
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	db := database.InitDatabase(startCtx)
	defer db.Close()

	redisClient := database.InitRedis(startCtx)
	if redisClient != nil {
		defer redisClient.Close()
	}
	cancelStart()

	auditLogger := audit.NewLogger()

	sealer, err := vault.New(vault.Config{
		MasterKey:   viper.GetString("vault.master_key"),
		Salt:        []byte(viper.GetString("vault.salt")),
		AuditLogger: auditLogger,
	})
	if err != nil {
		log.Fatalf("Failed to initialize vault: %v", err)
	}

	secret := viper.GetString("jwt.secret_key")
	if secret == "" {
		log.Fatal("JWT_SECRET_KEY is required")
	}

	// Initialize services
	users := database.NewUserRepository(db)
	products := database.NewProductRepository(db)

	otpService := services.NewOTPService(users, newOTPProvider(cfg), sealer, auditLogger, cfg.OTPCooldown)
	sessions := services.NewSessionManager(secret, cfg.SessionTTL, redisClient)
	authService := services.NewAuthService(users, otpService, sessions, newMailer(), auditLogger, cfg)
	productService := services.NewProductService(products)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	authenticate := mW.Authenticate(authService)
	limiter := mW.NewRateLimiter(redisClient, cfg.RateLimit, cfg.RateLimitWindow)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(mW.Metrics)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Product and profile images
	r.Handle("/static/images/*", http.StripPrefix("/static/images/",
		mW.StaticFileServer("./static/images")))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(limiter.Handler)

		r.Route("/v1", func(r chi.Router) {
			r.Mount("/users", handlers.UserRoutes(authHandler, userHandler, authenticate))
			r.Mount("/products", handlers.ProductRoutes(productHandler, authenticate))
		})
	})

	port := viper.GetString("app.port")

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}

// newOTPProvider uses Twilio Verify when credentials are configured and logs
// codes to the console otherwise.
func newOTPProvider(cfg *config.AuthConfig) otp.Provider {
	sid := viper.GetString("twilio.account_sid")
	if sid == "" {
		log.Println("[OTP] TWILIO_ACCOUNT_SID not set, codes will be written to the log")
		return otp.NewConsoleProvider(cfg.OTPTTL, cfg.OTPMaxAttempts)
	}
	return otp.NewTwilioProvider(otp.TwilioConfig{
		AccountSID:   sid,
		AuthToken:    viper.GetString("twilio.auth_token"),
		FriendlyName: viper.GetString("twilio.friendly_name"),
	})
}

func newMailer() mailer.Mailer {
	host := viper.GetString("smtp.host")
	if host == "" {
		log.Println("[MAIL] SMTP_HOST not set, emails will be written to the log")
		return mailer.LogMailer{}
	}

	m, err := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     host,
		Port:     viper.GetInt("smtp.port"),
		Username: viper.GetString("smtp.username"),
		Password: viper.GetString("smtp.password"),
		From:     viper.GetString("smtp.from"),
	})
	if err != nil {
		log.Fatalf("Failed to initialize mailer: %v", err)
	}
	return m
}
