package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"contrib.go.opencensus.io/integrations/ocsql"
	"github.com/redis/go-redis/v9"

	"github.com/taylorconnect/hub/config"
	"github.com/taylorconnect/hub/internal/database"
	"github.com/taylorconnect/hub/internal/domain"
	httpHandler "github.com/taylorconnect/hub/internal/http"
	"github.com/taylorconnect/hub/internal/http/middleware"
	"github.com/taylorconnect/hub/internal/repository"
	"github.com/taylorconnect/hub/internal/service"
	"github.com/taylorconnect/hub/pkg/dedup"
	"github.com/taylorconnect/hub/pkg/logger"
	"github.com/taylorconnect/hub/pkg/mailer"
	"github.com/taylorconnect/hub/pkg/ratelimiter"
	"github.com/taylorconnect/hub/pkg/retry"
	"github.com/taylorconnect/hub/pkg/templates"
	"github.com/taylorconnect/hub/pkg/tracing"
)

// AppInterface defines the interface for the App
type AppInterface interface {
	// Initialize sets up every component including the HTTP routes
	Initialize() error
	// Bootstrap sets up everything the scripts need, without HTTP routes
	Bootstrap() error
	Start() error
	Shutdown(ctx context.Context) error
	// Close releases resources when no server was started
	Close() error

	// Handler returns the mux wrapped in the middleware chain
	Handler() http.Handler

	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetDB() *sql.DB
	GetMailer() mailer.Mailer

	GetContentService() domain.ContentService
	GetStatisticsService() domain.StatisticsService
	GetDispatchService() domain.DispatchService

	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	InitTracing() error
	InitDB() error
	InitMailer() error
	InitRepositories() error
	InitServices() error
	InitHandlers() error

	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
	GetShutdownContext() context.Context
}

// App encapsulates the application dependencies and configuration
type App struct {
	config      *config.Config
	logger      logger.Logger
	db          *sql.DB
	mailer      mailer.Mailer
	redis       *redis.Client
	claimer     dedup.Claimer
	rateLimiter *ratelimiter.RateLimiter
	renderer    *templates.Renderer
	stopDBStats func()

	// Repositories
	contentRepo      domain.ContentRepository
	siteStatsRepo    domain.SiteStatsRepository
	impactSource     domain.ImpactSource
	profileRepo      domain.ProfileRepository
	notificationRepo domain.NotificationRepository
	preferenceRepo   domain.NotificationPreferenceRepository

	// Services
	contentService    *service.ContentService
	statisticsService *service.StatisticsService
	messagingService  *service.MessagingService
	accountService    *service.AccountService
	dispatchService   *service.DispatchService

	mux    *http.ServeMux
	server *http.Server

	serverMu      sync.RWMutex
	serverStarted chan struct{}

	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	activeRequests  int64
	requestWg       sync.WaitGroup
	shutdownTimeout time.Duration
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use a mock database
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithMockMailer configures the app to use a mock mailer
func WithMockMailer(m mailer.Mailer) AppOption {
	return func(a *App) {
		a.mailer = m
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// WithClaimer replaces the dispatch claimer built from the Redis settings
func WithClaimer(c dedup.Claimer) AppOption {
	return func(a *App) {
		a.claimer = c
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:             http.NewServeMux(),
		serverStarted:   make(chan struct{}),
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
		shutdownTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// retryPolicy builds the shared backoff from the Retry settings
func (a *App) retryPolicy() retry.Policy {
	return retry.Policy{
		Attempts:   a.config.Retry.Attempts,
		BaseDelay:  a.config.Retry.BaseDelay,
		Multiplier: a.config.Retry.Multiplier,
		MaxDelay:   a.config.Retry.MaxDelay,
	}
}

// InitTracing initializes OpenCensus tracing
func (a *App) InitTracing() error {
	tracingConfig := &a.config.Tracing

	if err := tracing.InitTracing(tracingConfig, a.config.Environment); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if tracingConfig.Enabled {
		a.logger.WithField("trace_exporter", tracingConfig.TraceExporter).
			WithField("metrics_exporter", tracingConfig.MetricsExporter).
			WithField("sampling_rate", tracingConfig.SamplingProbability).
			Info("Tracing initialized successfully")
	}

	return nil
}

// InitDB connects to PostgreSQL and makes sure the schema exists
func (a *App) InitDB() error {
	if a.db != nil {
		return nil
	}

	driverName := "postgres"
	if a.config.Tracing.Enabled {
		var err error
		driverName, err = ocsql.Register(driverName, ocsql.WithAllTraceOptions())
		if err != nil {
			return fmt.Errorf("failed to register opencensus sql driver: %w", err)
		}
		a.logger.Info("Database driver wrapped with OpenCensus tracing")
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, driverName, &a.config.Database, a.retryPolicy(), a.logger)
	if err != nil {
		return err
	}

	if err := database.InitializeDatabase(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	if a.config.Tracing.Enabled {
		a.stopDBStats = ocsql.RecordStats(db, 5*time.Second)
	}

	a.db = db
	return nil
}

// InitMailer builds the provider mailer and wraps it in the retry policy
func (a *App) InitMailer() error {
	if a.mailer != nil {
		return nil
	}

	email := a.config.Email
	provider, err := mailer.New(&mailer.Config{
		Provider:      email.Provider,
		FromName:      email.FromName,
		FromAddress:   email.FromAddress,
		ResendAPIKey:  email.ResendAPIKey,
		ResendBaseURL: email.ResendBaseURL,
		SMTPHost:      email.SMTPHost,
		SMTPPort:      email.SMTPPort,
		SMTPUsername:  email.SMTPUsername,
		SMTPPassword:  email.SMTPPassword,
		SESRegion:     email.SESRegion,
		SESAccessKey:  email.SESAccessKey,
		SESSecretKey:  email.SESSecretKey,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize mailer: %w", err)
	}

	a.mailer = mailer.NewRetryingMailer(provider, a.retryPolicy(), a.logger)
	a.logger.WithField("provider", provider.Provider()).Info("Mailer initialized")
	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	if a.db == nil {
		return fmt.Errorf("database must be initialized before repositories")
	}

	a.contentRepo = repository.NewContentRepository(a.db)
	a.siteStatsRepo = repository.NewSiteStatsRepository(a.db)
	a.impactSource = repository.NewImpactRepository(a.db)
	a.profileRepo = repository.NewProfileRepository(a.db)
	a.notificationRepo = repository.NewNotificationRepository(a.db)
	a.preferenceRepo = repository.NewNotificationPreferenceRepository(a.db)

	return nil
}

// InitServices initializes all application services
func (a *App) InitServices() error {
	if a.contentRepo == nil {
		return fmt.Errorf("repositories must be initialized before services")
	}
	if a.mailer == nil {
		return fmt.Errorf("mailer must be initialized before services")
	}

	security := a.config.Security
	a.rateLimiter = ratelimiter.NewRateLimiter()
	for _, namespace := range []string{
		ratelimiter.NamespaceVerification,
		ratelimiter.NamespacePasswordReset,
		ratelimiter.NamespaceContact,
	} {
		a.rateLimiter.SetPolicy(namespace, security.EmailRateLimit, security.EmailRateLimitWindow)
	}
	a.rateLimiter.SetPolicy(ratelimiter.NamespaceCodeCheck, security.CodeCheckRateLimit, security.EmailRateLimitWindow)

	a.renderer = templates.NewRenderer(a.config.Email.FromName, a.config.Email.SiteURL)

	if a.claimer == nil {
		if a.config.Redis.Enabled() {
			a.redis = dedup.NewRedisClient(a.config.Redis.Addr, a.config.Redis.Password, a.config.Redis.DB)
			a.claimer = dedup.NewRedisClaimer(a.redis, a.config.Dispatch.ClaimTTL, a.logger)
			a.logger.WithField("addr", a.config.Redis.Addr).Info("Dispatch claims stored in Redis")
		} else {
			a.claimer = dedup.NoopClaimer{}
		}
	}

	a.contentService = service.NewContentService(a.contentRepo, a.logger)

	a.statisticsService = service.NewStatisticsService(service.StatisticsServiceConfig{
		Stats:   a.siteStatsRepo,
		Source:  a.impactSource,
		Content: a.contentService,
		Defaults: domain.StatDefaults{
			ActiveVolunteers:     int64(a.config.Statistics.DefaultVolunteers),
			HoursContributed:     int64(a.config.Statistics.DefaultHours),
			PartnerOrganizations: int64(a.config.Statistics.DefaultOrganizations),
		},
		Logger: a.logger,
	})

	a.messagingService = service.NewMessagingService(service.MessagingServiceConfig{
		Mailer:      a.mailer,
		Renderer:    a.renderer,
		RateLimiter: a.rateLimiter,
		ContactTo:   a.config.Email.ContactTo,
		ContactFrom: a.config.Email.ContactFrom,
		SiteURL:     a.config.Email.SiteURL,
		Logger:      a.logger,
	})

	a.accountService = service.NewAccountService(service.AccountServiceConfig{
		Profiles:    a.profileRepo,
		Mailer:      a.mailer,
		Renderer:    a.renderer,
		RateLimiter: a.rateLimiter,
		SiteName:    a.config.Email.FromName,
		Logger:      a.logger,
	})

	a.dispatchService = service.NewDispatchService(service.DispatchServiceConfig{
		Notifications:     a.notificationRepo,
		Preferences:       a.preferenceRepo,
		Messaging:         a.messagingService,
		Claimer:           a.claimer,
		BatchSize:         a.config.Dispatch.BatchSize,
		SendDelay:         a.config.Dispatch.SendDelay,
		BatchDelay:        a.config.Dispatch.BatchDelay,
		SuppressionWindow: a.config.Dispatch.SuppressionWindow,
		Logger:            a.logger,
	})

	return nil
}

// InitHandlers registers every route on a fresh mux
func (a *App) InitHandlers() error {
	if a.contentService == nil {
		return fmt.Errorf("services must be initialized before handlers")
	}

	a.mux = http.NewServeMux()
	admin := middleware.NewAdminAuth(a.config.Security.AdminJWTSecret)
	if !admin.Enabled() {
		a.logger.Warn("ADMIN_JWT_SECRET is not set, write routes are not protected")
	}

	httpHandler.NewContentHandler(a.contentService, admin, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewStatisticsHandler(a.statisticsService, admin, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewMessagingHandler(a.messagingService, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewAccountHandler(a.accountService, a.logger).RegisterRoutes(a.mux)

	var pinger httpHandler.Pinger
	if a.db != nil {
		pinger = a.db
	}
	httpHandler.NewHealthHandler(httpHandler.HealthInfo{
		Environment:    a.config.Environment,
		Version:        a.config.Version,
		EmailProvider:  a.config.Email.Provider,
		HasEmailKey:    a.config.Email.ResendAPIKey != "" || a.config.Email.SMTPHost != "" || a.config.Email.SESRegion != "",
		HasAdminSecret: admin.Enabled(),
		HasRedis:       a.config.Redis.Enabled(),
	}, pinger).RegisterRoutes(a.mux)

	return nil
}

// Handler wraps the mux with graceful shutdown, tracing and CORS
func (a *App) Handler() http.Handler {
	var handler http.Handler = a.mux

	handler = a.gracefulShutdownMiddleware(handler)

	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
	}

	return middleware.CORSMiddleware(handler)
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).Info(fmt.Sprintf("Server starting on %s", addr))

	a.serverMu.Lock()
	if a.serverStarted != nil {
		select {
		case <-a.serverStarted:
		default:
			close(a.serverStarted)
		}
	}
	a.serverStarted = make(chan struct{})

	a.server = &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverStarted := a.serverStarted
	a.serverMu.Unlock()

	close(serverStarted)

	if a.config.Server.SSL.Enabled {
		a.logger.WithField("cert_file", a.config.Server.SSL.CertFile).Info("SSL enabled")
		return a.server.ListenAndServeTLS(a.config.Server.SSL.CertFile, a.config.Server.SSL.KeyFile)
	}

	return a.server.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones and releases resources
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")

	a.shutdownCancel()

	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	if server == nil {
		return a.cleanupResources()
	}

	a.logger.WithField("active_requests", a.getActiveRequestCount()).Info("Active requests at shutdown start")

	shutdownTimeout := a.shutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < shutdownTimeout {
			shutdownTimeout = remaining
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	shutdownErr := server.Shutdown(shutdownCtx)

	requestsDone := make(chan struct{})
	go func() {
		a.requestWg.Wait()
		close(requestsDone)
	}()

	select {
	case <-requestsDone:
	case <-shutdownCtx.Done():
		a.logger.WithField("active_requests", a.getActiveRequestCount()).Warn("Shutdown timeout reached, forcing shutdown")
		if shutdownErr == nil {
			shutdownErr = fmt.Errorf("shutdown timeout exceeded")
		}
	}

	if err := a.cleanupResources(); err != nil && shutdownErr == nil {
		shutdownErr = err
	}

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr.Error()).Error("Graceful shutdown completed with errors")
	} else {
		a.logger.Info("Graceful shutdown completed successfully")
	}
	return shutdownErr
}

// Close releases resources without a running server. Used by the scripts.
func (a *App) Close() error {
	a.shutdownCancel()
	return a.cleanupResources()
}

func (a *App) cleanupResources() error {
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.WithField("error", err.Error()).Warn("Error closing Redis client")
		}
	}

	if a.stopDBStats != nil {
		a.stopDBStats()
	}

	if a.db != nil {
		a.logger.Info("Closing database connection")
		if err := a.db.Close(); err != nil {
			a.logger.WithField("error", err.Error()).Error("Error closing database connection")
			return err
		}
	}

	return nil
}

// IsServerCreated safely checks if the server has been created
func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart waits for the server to be created.
// Returns false if the context expires first.
func (a *App) WaitForServerStart(ctx context.Context) bool {
	a.serverMu.RLock()
	started := a.serverStarted
	a.serverMu.RUnlock()

	if started == nil {
		<-ctx.Done()
		return false
	}

	select {
	case <-started:
		return a.IsServerCreated()
	case <-ctx.Done():
		return false
	}
}

// Bootstrap sets up tracing, storage, mail and services
func (a *App) Bootstrap() error {
	if err := a.InitTracing(); err != nil {
		return err
	}
	if err := a.InitDB(); err != nil {
		return err
	}
	if err := a.InitMailer(); err != nil {
		return err
	}
	if err := a.InitRepositories(); err != nil {
		return err
	}
	return a.InitServices()
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting hub API")

	if err := a.Bootstrap(); err != nil {
		return err
	}
	if err := a.InitHandlers(); err != nil {
		return err
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

func (a *App) GetConfig() *config.Config {
	return a.config
}

func (a *App) GetLogger() logger.Logger {
	return a.logger
}

func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

func (a *App) GetDB() *sql.DB {
	return a.db
}

func (a *App) GetMailer() mailer.Mailer {
	return a.mailer
}

func (a *App) GetContentService() domain.ContentService {
	return a.contentService
}

func (a *App) GetStatisticsService() domain.StatisticsService {
	return a.statisticsService
}

func (a *App) GetDispatchService() domain.DispatchService {
	return a.dispatchService
}

func (a *App) getActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

// GetActiveRequestCount returns the current number of active requests
func (a *App) GetActiveRequestCount() int64 {
	return a.getActiveRequestCount()
}

// SetShutdownTimeout sets the timeout for graceful shutdown
func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
}

// GetShutdownContext is cancelled when shutdown starts
func (a *App) GetShutdownContext() context.Context {
	return a.shutdownCtx
}

func (a *App) isShuttingDown() bool {
	select {
	case <-a.shutdownCtx.Done():
		return true
	default:
		return false
	}
}

// gracefulShutdownMiddleware rejects new requests once shutdown starts and tracks
// the ones in flight
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isShuttingDown() {
			httpHandler.WriteJSONError(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		atomic.AddInt64(&a.activeRequests, 1)
		a.requestWg.Add(1)
		defer func() {
			atomic.AddInt64(&a.activeRequests, -1)
			a.requestWg.Done()
		}()

		next.ServeHTTP(w, r)
	})
}

var _ AppInterface = (*App)(nil)
