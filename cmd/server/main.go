package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grantapp "github.com/community/backend/internal/application/accessgrant"
	billingapp "github.com/community/backend/internal/application/billing"
	communityapp "github.com/community/backend/internal/application/community"
	leaseapp "github.com/community/backend/internal/application/lease"
	"github.com/community/backend/internal/infrastructure/auth"
	"github.com/community/backend/internal/infrastructure/cache"
	"github.com/community/backend/internal/infrastructure/config"
	"github.com/community/backend/internal/infrastructure/event"
	"github.com/community/backend/internal/infrastructure/logger"
	"github.com/community/backend/internal/infrastructure/persistence"
	"github.com/community/backend/internal/infrastructure/scheduler"
	"github.com/community/backend/internal/interfaces/http/handler"
	"github.com/community/backend/internal/interfaces/http/middleware"
	"github.com/community/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting community backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with GORM logging backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis is optional; verification falls back to the store when absent
	var redisClient *redis.Client
	redisClient, err = cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, verification cache disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer func() {
			_ = redisClient.Close()
		}()
		log.Info("Redis connected successfully")
	}

	// Repositories
	buildingRepo := persistence.NewGormBuildingRepository(db.DB)
	flatRepo := persistence.NewGormFlatRepository(db.DB)
	txRepo := persistence.NewGormLeaseTransactionRepository(db.DB)
	cabRepo := persistence.NewGormCabPreapprovalRepository(db.DB)
	deliveryRepo := persistence.NewGormDeliveryPassRepository(db.DB)
	guestRepo := persistence.NewGormGuestInviteRepository(db.DB)
	childRepo := persistence.NewGormChildExitPermissionRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	maintenanceRepo := persistence.NewGormMaintenanceRepository(db.DB)
	corpusFundRepo := persistence.NewGormCorpusFundRepository(db.DB)

	// Event bus with the audit trail subscriber
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Application services
	communityService := communityapp.NewService(buildingRepo, flatRepo, log)
	leaseTxScope := persistence.NewGormLeaseTransactionScope(db.DB)
	leaseService := leaseapp.NewService(txRepo, flatRepo, leaseTxScope, eventBus, log)
	leaseInvoicing := leaseapp.NewInvoicingService(txRepo, invoiceRepo, log)
	leaseExpiration := leaseapp.NewExpirationService(txRepo, leaseTxScope, eventBus, log)
	cabService := grantapp.NewCabService(cabRepo, eventBus, log)
	deliveryService := grantapp.NewDeliveryService(deliveryRepo, eventBus, log)
	guestService := grantapp.NewGuestService(guestRepo, eventBus, log)
	childExitService := grantapp.NewChildExitService(childRepo, eventBus, log)
	verifyService := grantapp.NewVerifyService(cabRepo, deliveryRepo, guestRepo, childRepo, redisClient, log)
	grantExpiration := grantapp.NewExpirationService(cabRepo, deliveryRepo, guestRepo, childRepo, eventBus, log)
	maintenanceService := billingapp.NewMaintenanceService(maintenanceRepo, invoiceRepo, flatRepo, log)
	corpusFundService := billingapp.NewCorpusFundService(corpusFundRepo, invoiceRepo, log)

	// Background expiry sweeps
	sweepRunner := scheduler.NewSweepRunner(
		scheduler.SweepRunnerConfig{
			Enabled:      cfg.Sweep.Enabled,
			Interval:     cfg.Sweep.Interval,
			SweepTimeout: cfg.Sweep.Timeout,
		},
		log,
		leaseExpiration,
		scheduler.NewSweeper("cab-expiry", grantExpiration.SweepCabs),
		scheduler.NewSweeper("delivery-expiry", grantExpiration.SweepDeliveries),
		scheduler.NewSweeper("invite-expiry", grantExpiration.SweepInvites),
		scheduler.NewSweeper("child-exit-expiry", grantExpiration.SweepChildExits),
	)
	if err := sweepRunner.Start(context.Background()); err != nil {
		log.Fatal("Failed to start sweep runner", zap.Error(err))
	}

	// JWT service for API authentication
	jwtService := auth.NewJWTService(cfg.JWT)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Handlers
	communityHandler := handler.NewCommunityHandler(communityService)
	leaseHandler := handler.NewLeaseHandler(leaseService, leaseInvoicing)
	cabHandler := handler.NewCabPreapprovalHandler(cabService)
	deliveryHandler := handler.NewDeliveryPassHandler(deliveryService)
	guestHandler := handler.NewGuestInviteHandler(guestService)
	childExitHandler := handler.NewChildExitHandler(childExitService)
	verifyHandler := handler.NewVerifyHandler(verifyService)
	billingHandler := handler.NewBillingHandler(maintenanceService, corpusFundService)
	systemHandler := handler.NewSystemHandler(sweepRunner)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths:  []string{"/api/v1/ping", "/api/v1/auth/token"},
		Logger:     log,
	}))

	r.Register(router.NewDomainGroup("community", "/community").Mount(communityHandler))
	r.Register(router.NewDomainGroup("lease", "/lease").Mount(leaseHandler))
	r.Register(router.NewDomainGroup("grants", "/grants").
		Mount(cabHandler, deliveryHandler, guestHandler, childExitHandler))
	r.Register(router.NewDomainGroup("gate", "/gate").
		Use(middleware.RequireRoles(auth.RoleGuard, auth.RoleAdmin)).
		Mount(verifyHandler))
	r.Register(router.NewDomainGroup("billing", "/billing").Mount(billingHandler))
	r.Register(router.NewDomainGroup("admin", "/admin").
		Use(middleware.RequireRoles(auth.RoleAdmin)).
		Mount(systemHandler))

	// Development token issuer; production tokens come from the identity provider
	if cfg.App.Env != "production" {
		authHandler := handler.NewAuthHandler(jwtService)
		r.Register(router.NewDomainGroup("auth", "/auth").Mount(authHandler))
	}

	r.Setup()

	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if err := sweepRunner.Stop(ctx); err != nil {
		log.Warn("Sweep runner did not stop cleanly", zap.Error(err))
	}
	if err := eventBus.Stop(ctx); err != nil {
		log.Warn("Event bus did not stop cleanly", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports process and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
