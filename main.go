package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kariqs/amexan-commerce/controllers"
	"github.com/Kariqs/amexan-commerce/initializers"
	"github.com/Kariqs/amexan-commerce/metrics"
	"github.com/Kariqs/amexan-commerce/middlewares"
	"github.com/Kariqs/amexan-commerce/routes"
	"github.com/Kariqs/amexan-commerce/services"
	"github.com/Kariqs/amexan-commerce/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	if err := initializers.LoadEnv(); err != nil {
		log.Fatalf("loading .env: %v", err)
	}
	cfg, err := initializers.LoadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := initializers.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer logger.Sync()

	db, err := initializers.ConnectToDB(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := initializers.SyncDatabase(db, logger); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	serverMetrics := metrics.NewServerMetrics(registry)
	shopMetrics := metrics.NewShopMetrics(registry)

	svc := services.New(db, buildNotifier(cfg, logger), buildImageStore(cfg, logger), shopMetrics, logger, services.Options{
		JWTSecret:        cfg.JWTSecret,
		TokenTTL:         cfg.JWTTTL,
		CheckoutAttempts: cfg.CheckoutMaxAttempts,
	})

	created, err := svc.Auth.EnsureDefaultAdmin(context.Background(), cfg.AdminEmail, cfg.AdminUsername, cfg.AdminPassword)
	switch {
	case err != nil:
		logger.Warn("No admin account available", zap.Error(err))
	case created:
		logger.Info("Default admin account created", zap.String("username", cfg.AdminUsername))
	}

	server := gin.New()
	server.Use(gin.Recovery())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	server.Use(middlewares.RequestID(), middlewares.RequestLogger(logger), middlewares.Metrics(serverMetrics))
	server.GET("/metrics", gin.WrapH(metrics.Handler(registry)))

	routes.Register(server, controllers.NewHandler(svc, logger.Named("http")), routes.Deps{
		DB:            db,
		Authenticator: svc.Auth,
		Limiter:       middlewares.NewRateLimiter(cfg.CheckoutRateLimit, cfg.CheckoutBurst),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func buildNotifier(cfg *initializers.Config, logger *zap.Logger) services.Notifier {
	var notifiers utils.MultiNotifier
	if cfg.MailEnabled() {
		notifiers = append(notifiers, utils.NewMailer(utils.MailConfig{
			From:        cfg.FromEmail,
			Password:    cfg.FromEmailPassword,
			Host:        cfg.FromEmailSMTP,
			Address:     cfg.SMTPAddress,
			FrontendURL: cfg.FrontendURL,
		}))
	} else {
		logger.Warn("SMTP settings missing, emails are disabled")
	}
	if cfg.NotifyWebhookURL != "" {
		notifiers = append(notifiers, utils.NewWebhookNotifier(cfg.NotifyWebhookURL, 10*time.Second))
	}
	if len(notifiers) == 0 {
		return services.NopNotifier{}
	}
	return notifiers
}

func buildImageStore(cfg *initializers.Config, logger *zap.Logger) services.ImageStore {
	store, err := utils.NewS3Store(context.Background(), cfg.S3Bucket)
	if err != nil {
		logger.Warn("Failed to configure AWS, image uploads are disabled", zap.Error(err))
		return nil
	}
	return store
}
