package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"affiliatenest/internal/config"
	"affiliatenest/internal/handlers"
	"affiliatenest/internal/middleware"
	"affiliatenest/internal/repositories/mongodb"
	"affiliatenest/internal/services"
	"affiliatenest/internal/utils"
	"affiliatenest/pkg/cache"
	"affiliatenest/pkg/database"
	"affiliatenest/pkg/logger"
	"affiliatenest/pkg/mailer"
	"affiliatenest/pkg/payment"
	"affiliatenest/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Security.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not defined")
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
		Colors: cfg.App.Debug,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	appLogger.WithFields(map[string]interface{}{
		"environment": cfg.App.Environment,
		"version":     cfg.App.Version,
	}).Info("Server starting")

	// Storage, under a bounded startup retry policy.
	db, err := database.NewMongoDBWithRetry(&database.DatabaseConfig{
		URI:                    cfg.Database.URI,
		Database:               cfg.Database.Database,
		MaxPoolSize:            cfg.Database.MaxPoolSize,
		MinPoolSize:            cfg.Database.MinPoolSize,
		ConnectTimeout:         cfg.Database.ConnectTimeout,
		SocketTimeout:          cfg.Database.SocketTimeout,
		ServerSelectionTimeout: cfg.Database.ServerSelectionTimeout,
	}, database.RetryPolicy{
		MaxAttempts: cfg.Database.ConnectMaxAttempts,
		Backoff:     database.ExponentialBackoff(time.Second, 30*time.Second),
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	if err := database.EnsureIndexes(context.Background(), db.Database); err != nil {
		appLogger.WithError(err).Fatal("Failed to create indexes")
	}
	appLogger.Info("Connected to MongoDB")

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisCache.Close()

	smtpMailer, err := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromEmail: cfg.SMTP.FromEmail,
		FromName:  cfg.SMTP.FromName,
		Timeout:   cfg.SMTP.Timeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to configure mailer")
	}

	stripeProvider := payment.NewStripeProvider(cfg.Payment.StripeSecretKey)

	// Repositories
	userRepo := mongodb.NewUserRepository(db.Database)
	programRepo := mongodb.NewProgramRepository(db.Database)
	linkRepo := mongodb.NewLinkRepository(db.Database)
	referralRepo := mongodb.NewReferralRepository(db.Database)

	// Services
	cacheService := services.NewRedisCacheService(redisCache)
	referralService := services.NewReferralService(linkRepo, referralRepo, appLogger)
	authService := services.NewAuthService(
		userRepo,
		referralService,
		smtpMailer,
		cfg.Security.JWTSecret,
		cfg.App.BaseURL,
		cfg.App.FrontendURL,
		appLogger,
	)
	affiliateService := services.NewAffiliateService(programRepo, linkRepo, cfg.App.LinkBaseURL, cfg.App.BaseURL, appLogger)
	widgetSignupBase := cfg.App.FrontendURL
	if widgetSignupBase == "" {
		widgetSignupBase = cfg.App.LinkBaseURL
	}
	widgetService := services.NewWidgetService(linkRepo, programRepo, cacheService, widgetSignupBase, appLogger)
	payoutService := services.NewPayoutService(userRepo, stripeProvider, cfg.Payment.Currency, appLogger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, smtpMailer, cfg.App.FrontendURL)
	affiliateHandler := handlers.NewAffiliateHandler(affiliateService, referralService, payoutService, widgetSignupBase+"/signup")
	widgetHandler := handlers.NewWidgetHandler(widgetService)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.VersionHeaderMiddleware())

	registerLimiter := middleware.RateLimitMiddleware(cacheService, "register", utils.RegisterRateLimit, utils.RegisterRateWindow, appLogger)
	loginLimiter := middleware.RateLimitMiddleware(cacheService, "login", utils.LoginRateLimit, utils.LoginRateWindow, appLogger)

	api := router.Group("/api")
	{
		routes.SetupAuthRoutes(api, authHandler, registerLimiter, loginLimiter)
		routes.SetupAffiliateRoutes(api, affiliateHandler, middleware.AuthRequired(cfg.Security.JWTSecret))
		routes.SetupWidgetRoutes(api, widgetHandler)
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "Server is running",
			"version": cfg.App.Version,
		})
	})
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "API is running",
			"version": cfg.App.Version,
		})
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Listening on port %d", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}
}
