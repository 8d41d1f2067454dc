package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookingadmin/config"
	"bookingadmin/database"
	bookingRepo "bookingadmin/database/repository/booking"
	categoryRepo "bookingadmin/database/repository/category"
	clientRepo "bookingadmin/database/repository/client"
	employeeRepo "bookingadmin/database/repository/employee"
	serviceRepo "bookingadmin/database/repository/service"
	settingsRepo "bookingadmin/database/repository/settings"
	"bookingadmin/handlers"
	"bookingadmin/i18n"
	"bookingadmin/middleware"
	"bookingadmin/realtime"
	"bookingadmin/routes"
	"bookingadmin/services/auth"
	"bookingadmin/services/booking"
	"bookingadmin/services/calendar"
	"bookingadmin/services/catalog"
	"bookingadmin/services/seed"
	"bookingadmin/services/settings"
	"bookingadmin/services/staff"
	"bookingadmin/tasks"
	"bookingadmin/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}
	utils.InitializeLogger(cfg.IsProduction(), cfg.LogLevel)
	logger := utils.GetLogger()
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := utils.RegisterValidators(); err != nil {
		logger.Fatal("main: failed to register validators", zap.Error(err))
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, err := database.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("main: failed to open document store", zap.Error(err))
	}

	messages, err := i18n.Load()
	if err != nil {
		logger.Fatal("main: failed to load translations", zap.Error(err))
	}

	// Sessions live in Redis; outside production a missing Redis falls back to memory.
	var tokens auth.TokenStore
	var redisClients []*redis.Client
	authCache, err := utils.NewAuthCache(cfg)
	switch {
	case err == nil:
		tokens = auth.NewRedisTokenStore(authCache)
		redisClients = append(redisClients, authCache)
	case cfg.IsProduction():
		logger.Fatal("main: auth cache unavailable", zap.Error(err))
	default:
		logger.Warn("main: auth cache unavailable, keeping sessions in memory", zap.Error(err))
		tokens = auth.NewMemoryTokenStore()
	}
	if queueCache, err := utils.NewQueueCache(cfg); err == nil {
		redisClients = append(redisClients, queueCache)
	} else {
		logger.Warn("main: queue database unavailable, calendar invitations cannot be sent", zap.Error(err))
	}

	enqueuer := tasks.NewEnqueuer(cfg)
	defer enqueuer.Close()
	worker := tasks.InitMailWorker(cfg, tasks.NewSMTPMailer(cfg), logger)

	// repositories.
	categories := categoryRepo.NewCategoryRepo(store)
	services := serviceRepo.NewServiceRepo(store)
	employees := employeeRepo.NewEmployeeRepo(store)
	bookings := bookingRepo.NewBookingRepo(store)
	clients := clientRepo.NewClientRepo(store)
	settingsStore := settingsRepo.NewSettingsRepo(store)

	// services.
	bookingService := &booking.DefaultBookingService{
		Bookings:  bookings,
		Services:  services,
		Employees: employees,
		Clients:   clients,
	}
	hub := realtime.NewHub(bookingService, logger)
	go hub.Run(ctx)

	health := utils.NewHealthMonitor(store, redisClients, 30*time.Second)
	health.Start(ctx)

	bundle := handlers.NewHandlerBundle(handlers.Services{
		Auth: &auth.DefaultAuthService{
			AdminEmail:        cfg.AdminEmail,
			AdminPasswordHash: cfg.AdminPasswordHash,
			JWT:               utils.NewJWTManager(cfg.JWTSecret),
			Tokens:            tokens,
		},
		Catalog:  &catalog.DefaultCatalogService{Categories: categories, Services: services},
		Staff:    &staff.DefaultStaffService{Employees: employees, Services: services},
		Bookings: bookingService,
		Settings: &settings.DefaultSettingsService{Repo: settingsStore},
		Calendar: &calendar.DefaultCalendarService{
			Settings:  settingsStore,
			Employees: employees,
			Tasks:     enqueuer,
			Messages:  messages,
		},
		Seeder:   seed.NewSeeder(store, logger),
		Health:   health,
		Hub:      hub,
		Upgrader: realtime.NewUpgrader(cfg.Origins()),
	}, messages, logger)

	// Create the Gin router.
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Proxies()); err != nil {
		logger.Fatal("main: invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, bundle, cfg)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	// Stops the hub, its watch and the health monitor.
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	worker.Shutdown()
	if err := store.Close(shutdownCtx); err != nil {
		logger.Warn("main: failed to close document store", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
