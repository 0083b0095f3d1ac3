package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-portal/config"
	deliveryHttp "clinic-portal/internal/delivery/http"
	"clinic-portal/internal/delivery/http/handler"
	"clinic-portal/internal/delivery/http/middleware"
	"clinic-portal/internal/domain/repository"
	"clinic-portal/internal/infrastructure/apiclient"
	"clinic-portal/internal/infrastructure/cache"
	repositoryImpl "clinic-portal/internal/repository"
	"clinic-portal/internal/service"
	"clinic-portal/internal/usecase"
	"clinic-portal/internal/viewmodel"
	"clinic-portal/pkg/jwt"
	"clinic-portal/pkg/metrics"
	"clinic-portal/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	metricsNamespace = "clinic_portal"
	auditRetention   = 1000
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	RedisClient *redis.Client
	Server      *http.Server
	Registry    *viewmodel.Registry
	Sync        *service.ReferenceSyncService
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	log := setupLogger(cfg.App)
	app.Log = log
	log.Info("Configuration loaded successfully")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(metricsNamespace, reg)

	// Redis is optional, reference data falls back to process memory
	var store cache.Store
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		store = cache.NewRedisStore(redisClient, metricsNamespace+":")
	} else {
		store = cache.NewMemoryStore(cfg.Cache.ReferenceTTL, cfg.Cache.ReferenceTTL)
	}
	store = cache.NewInstrumented(store, m)
	log.Infof("Reference cache backend: %s", store.Backend())

	app.Server = app.initializeServer(cfg, log, store, m, reg)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(cfg *config.Config, log *logrus.Logger, store cache.Store, m *metrics.Metrics, reg *prometheus.Registry) *http.Server {
	customValidator := validator.NewValidator()
	parser := jwt.NewSessionParser(cfg.Session)

	loc := cfg.App.Location()
	now := func() time.Time { return time.Now().In(loc) }

	api := apiclient.NewClient(cfg.API, cfg.Session.CookieName, log, customValidator, m)
	ttl := cfg.Cache.ReferenceTTL

	// Initialize repositories
	accountRepo := repositoryImpl.NewAccountRepository(api, cfg.Session.CookieName)
	adminRepo := repositoryImpl.NewAdminRepository(api, store, ttl, log)
	appointmentRepo := repositoryImpl.NewAppointmentRepository(api)
	auditLogRepo := repositoryImpl.NewAuditLogRepository(log, auditRetention)
	catalogRepo := repositoryImpl.NewCatalogRepository(api, store, ttl, log)
	doctorRepo := repositoryImpl.NewDoctorRepository(api, store, ttl, log)
	patientRepo := repositoryImpl.NewPatientRepository(api)
	profileRepo := repositoryImpl.NewProfileRepository(api)
	scheduleRepo := repositoryImpl.NewScheduleRepository(api)
	statisticsRepo := repositoryImpl.NewStatisticsRepository(api)
	visitRepo := repositoryImpl.NewVisitRepository(api)

	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	accountUsecase := usecase.NewAccountUsecase(log, accountRepo, parser, store, ttl, auditService)
	deps := &viewmodel.Deps{
		Log:         log,
		Validator:   customValidator,
		Now:         now,
		Account:     accountUsecase,
		Schedule:    usecase.NewScheduleUsecase(log, scheduleRepo, auditService, now),
		Catalog:     usecase.NewCatalogUsecase(log, catalogRepo, auditService),
		Doctors:     usecase.NewDoctorUsecase(log, doctorRepo, auditService),
		Admins:      usecase.NewAdminUsecase(log, adminRepo, auditService),
		Patients:    usecase.NewPatientUsecase(log, patientRepo, auditService, now),
		Appointment: usecase.NewAppointmentUsecase(log, appointmentRepo, auditService, now),
		Visits:      usecase.NewVisitUsecase(log, visitRepo, auditService),
		Profiles:    usecase.NewProfileUsecase(log, profileRepo, auditService),
		Statistics:  usecase.NewStatisticsUsecase(log, statisticsRepo),
	}
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)

	app.Sync = service.NewReferenceSyncService(store, repositoryImpl.ReferenceKeys, referenceWarmers(doctorRepo, catalogRepo, adminRepo), cfg.Cache.SyncInterval, log)
	app.Sync.SyncOnStartup(context.Background())

	app.Registry = viewmodel.NewRegistry(deps, cfg.Cache.PageTTL, log, m)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(accountUsecase, customValidator)
	pageHandler := handler.NewPageHandler(app.Registry, customValidator, log)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(parser, accountUsecase, cfg.Session.CookieName, log)
	corsMiddleware := middleware.NewCORSMiddleware()
	requestMiddleware := middleware.NewRequestMiddleware(log, m)
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  rate.Limit(cfg.Limit.Rate),
		Burst: cfg.Limit.Burst,
	})

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, pageHandler, auditLogHandler, authMiddleware, corsMiddleware, requestMiddleware, rateLimiter, reg, app.Registry.Len)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// referenceWarmers reload the dictionaries every page draws from.
func referenceWarmers(doctors repository.DoctorRepository, catalog repository.CatalogRepository, admins repository.AdminRepository) []service.Warmer {
	return []service.Warmer{
		{Name: "specialties", Load: func(ctx context.Context) error {
			_, err := doctors.FindSpecialties(ctx)
			return err
		}},
		{Name: "service categories", Load: func(ctx context.Context) error {
			_, err := catalog.FindCategories(ctx)
			return err
		}},
		{Name: "icd codes", Load: func(ctx context.Context) error {
			_, err := catalog.FindICDCodes(ctx)
			return err
		}},
		{Name: "roles", Load: func(ctx context.Context) error {
			_, err := admins.FindRoles(ctx)
			return err
		}},
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		app.Log.Infof("Clinic API: %s", app.Config.API.BaseURL)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close stops background work and releases connections
func (app *App) Close() {
	if app.Sync != nil {
		app.Sync.Stop()
	}

	// Mounted pages are dropped, nothing outlives the process
	if app.Registry != nil {
		app.Registry.Close()
	}

	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			app.Log.Warnf("Failed to close Redis: %v", err)
		}
	}
}
