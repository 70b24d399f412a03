package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/urocareerz/urocareerz-api/config"
	"github.com/urocareerz/urocareerz-api/internal/cache"
	"github.com/urocareerz/urocareerz-api/internal/handlers"
	"github.com/urocareerz/urocareerz-api/internal/middleware"
	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/repository"
	"github.com/urocareerz/urocareerz-api/internal/services"
	"github.com/urocareerz/urocareerz-api/pkg/db"
	"github.com/urocareerz/urocareerz-api/pkg/logger"
	"github.com/urocareerz/urocareerz-api/pkg/mailer"
	"github.com/urocareerz/urocareerz-api/pkg/metrics"
	"github.com/urocareerz/urocareerz-api/pkg/profiling"
	"github.com/urocareerz/urocareerz-api/pkg/storage"
	"github.com/urocareerz/urocareerz-api/pkg/tracing"
)

type routeHandlers struct {
	health           *handlers.HealthHandler
	auth             *handlers.AuthHandler
	profile          *handlers.ProfileHandler
	files            *handlers.FileHandler
	opportunityTypes *handlers.OpportunityTypeHandler
	opportunities    *handlers.OpportunityHandler
	moderation       *handlers.ModerationHandler
	applications     *handlers.ApplicationHandler
	discussions      *handlers.DiscussionHandler
	adminUsers       *handlers.AdminUserHandler
	announcements    *handlers.AnnouncementHandler
	audit            *handlers.AuditHandler
	logs             *handlers.LogsHandler
}

// registerRoutes wires every /api route. Session-only groups reject anonymous
// callers; the admin group additionally requires the ADMIN role.
func registerRoutes(
	router *gin.Engine,
	h routeHandlers,
	requireSession, optionalSession gin.HandlerFunc,
	generalRateLimiter, authRateLimiter *middleware.RateLimiter,
) {
	api := router.Group("/api")
	api.Use(generalRateLimiter.Middleware())

	// Operational endpoints
	api.GET("/healthcheck", h.health.Healthcheck)
	api.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	api.POST("/logs", optionalSession, h.logs.ReceiveFrontendLogs)

	// Authentication (public)
	auth := api.Group("/auth")
	auth.POST("/register", authRateLimiter.Middleware(), h.auth.Register)
	auth.POST("/login", authRateLimiter.Middleware(), h.auth.Login)
	auth.POST("/resend-otp", authRateLimiter.Middleware(), h.auth.ResendOTP)
	auth.POST("/verify-otp", authRateLimiter.Middleware(), h.auth.VerifyOTP)
	auth.POST("/logout", h.auth.Logout)
	auth.GET("/session", requireSession, h.auth.Session)

	// Public catalogue
	api.GET("/opportunity-types", h.opportunityTypes.ListActive)
	api.GET("/opportunities", h.opportunities.List)
	api.GET("/discussions", h.discussions.List)
	api.GET("/discussions/:id", h.discussions.Get)

	// Optional session: approved listings are public, others need their creator or an admin
	api.GET("/opportunities/:id", optionalSession, h.opportunities.Get)

	// Self-service
	authed := api.Group("")
	authed.Use(requireSession)

	authed.GET("/profile", h.profile.GetProfile)
	authed.PUT("/profile", h.profile.UpdateProfile)
	authed.POST("/profile/terms", h.profile.AcceptTerms)

	authed.POST("/files/upload-url", h.files.UploadURL)
	authed.GET("/files/download-url", h.files.DownloadURL)

	authed.GET("/opportunities/mine", h.opportunities.ListMine)
	authed.POST("/opportunities", middleware.RequireRoles(models.RoleMentor, models.RoleMentee), h.opportunities.Create)
	authed.PUT("/opportunities/:id", h.opportunities.Update)
	authed.DELETE("/opportunities/:id", h.opportunities.Delete)
	authed.POST("/opportunities/:id/close", h.opportunities.Close)
	authed.POST("/opportunities/:id/save", h.opportunities.Save)
	authed.DELETE("/opportunities/:id/save", h.opportunities.Unsave)
	authed.GET("/saved-opportunities", h.opportunities.ListSaved)

	authed.POST("/opportunities/:id/applications", middleware.RequireRoles(models.RoleMentee), h.applications.Apply)
	authed.GET("/applications", h.applications.List)
	authed.GET("/applications/:id", h.applications.Get)
	authed.POST("/applications/:id/withdraw", h.applications.Withdraw)
	authed.PUT("/applications/:id/status", h.applications.UpdateStatus)
	authed.GET("/applications/:id/resume-url", h.applications.ResumeURL)

	authed.POST("/discussions", h.discussions.Create)
	authed.PUT("/discussions/:id/status", h.discussions.UpdateStatus)
	authed.DELETE("/discussions/:id", h.discussions.Delete)
	authed.POST("/discussions/:id/comments", h.discussions.AddComment)
	authed.DELETE("/discussions/:id/comments/:commentId", h.discussions.DeleteComment)
	authed.POST("/discussions/:id/view", h.discussions.RecordView)

	// Administration
	admin := api.Group("/admin")
	admin.Use(requireSession, middleware.RequireRoles(models.RoleAdmin))

	admin.GET("/users", h.adminUsers.List)
	admin.GET("/users/:id", h.adminUsers.Get)
	admin.POST("/users/:id/approve", h.adminUsers.Approve)
	admin.POST("/users/:id/reject", h.adminUsers.Reject)
	admin.PUT("/users/:id/role", h.adminUsers.UpdateRole)
	admin.PUT("/users/:id/status", h.adminUsers.UpdateStatus)

	admin.GET("/opportunities", h.moderation.List)
	admin.POST("/opportunities", h.opportunities.Create)
	admin.PUT("/opportunities/:id", h.opportunities.Update)
	admin.DELETE("/opportunities/:id", h.opportunities.Delete)
	admin.POST("/opportunities/:id/approve", h.moderation.Approve)
	admin.POST("/opportunities/:id/reject", h.moderation.Reject)

	admin.GET("/opportunity-types", h.opportunityTypes.ListAll)
	admin.POST("/opportunity-types", h.opportunityTypes.Create)
	admin.PUT("/opportunity-types/:id", h.opportunityTypes.Update)
	admin.DELETE("/opportunity-types/:id", h.opportunityTypes.Delete)

	admin.GET("/audit-logs", h.audit.List)
	admin.GET("/announcements", h.announcements.List)
	admin.POST("/announcements", h.announcements.Send)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
		MaxAgeDays:  cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting UroCareerz API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Background work (metrics sampling, rate limiter cleanup) stops with this context
	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Continuous profiling is off unless O11Y_PROFILING_ENABLED is set
	stopProfiler, err := profiling.InitProfiler(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Error("Failed to start profiler", zap.Error(err))
		stopProfiler = func() {}
	}
	defer stopProfiler()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics(appCtx)

	if cfg.Database.AutoMigrate {
		if err := db.RunMigrations(cfg.Database.URL, cfg.Database.CACertPath, cfg.Database.MigrationsPath); err != nil {
			logger.Fatal("Failed to run database migrations", zap.Error(err))
		}
	}

	// Initialize PostgreSQL connection pool
	pool, err := db.NewPool(appCtx, db.PoolConfig{
		URL:        cfg.Database.URL,
		MaxConns:   cfg.Database.MaxConns,
		MinConns:   cfg.Database.MinConns,
		CACertPath: cfg.Database.CACertPath,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer db.Close(pool)

	// Outbound email: Mailgun when configured, otherwise messages are logged
	var sender mailer.Sender = mailer.LogSender{ShowBody: cfg.IsDevelopment()}
	if cfg.MailEnabled() {
		sender = mailer.NewMailgunSender(cfg.Mail.MailgunDomain, cfg.Mail.MailgunAPIKey, cfg.Mail.Sender)
	} else {
		logger.Warn("Mailgun not configured: outbound email is logged only")
	}

	// Object storage is optional; file endpoints answer 500 without it.
	// objectStorage stays an untyped nil so FileService sees a nil interface.
	var objectStorage services.ObjectStorage
	if cfg.StorageEnabled() {
		storageClient, storageErr := storage.NewClient(storage.Config{
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			BucketName:      cfg.Storage.BucketName,
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			PresignTTL:      time.Duration(cfg.Storage.PresignTTLMinutes) * time.Minute,
		})
		if storageErr != nil {
			logger.Fatal("Failed to initialize object storage client", zap.Error(storageErr))
		}
		objectStorage = storageClient
	} else {
		logger.Warn("Object storage not configured: file endpoints disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	typeRepo := repository.NewOpportunityTypeRepository(pool)
	opportunityRepo := repository.NewOpportunityRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool)
	discussionRepo := repository.NewDiscussionRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)

	typesCache := cache.NewOpportunityTypesCache(
		typeRepo.ListActive,
		time.Duration(cfg.Cache.OpportunityTypesTTLSeconds)*time.Second,
	)

	// Services
	notifier := services.NewNotificationService(sender, cfg.Frontend.BaseURL)
	auditService := services.NewAuditService(auditRepo)
	authService := services.NewAuthService(userRepo, notifier, cfg)
	profileService := services.NewProfileService(userRepo, profileRepo)
	fileService := services.NewFileService(objectStorage, cfg)
	opportunityTypeService := services.NewOpportunityTypeService(typeRepo, typesCache, auditService)
	opportunityService := services.NewOpportunityService(opportunityRepo, typeRepo, auditService)
	moderationService := services.NewModerationService(opportunityRepo, userRepo, notifier, auditService, cfg)
	applicationService := services.NewApplicationService(applicationRepo, opportunityRepo, userRepo, profileRepo, fileService, notifier)
	discussionService := services.NewDiscussionService(discussionRepo, auditService)
	adminUserService := services.NewAdminUserService(userRepo, profileRepo, notifier, auditService)
	announcementService := services.NewAnnouncementService(announcementRepo, userRepo, notifier, auditService)

	// Browser logs go to their own rotating file next to app.log
	var frontendLog io.Writer
	if cfg.Logging.Dir != "" {
		frontendLog = &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Logging.Dir, "frontend.log"),
			MaxSize:    cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAge:     cfg.Logging.MaxAgeDays,
			Compress:   true,
		}
	}

	// Handlers
	h := routeHandlers{
		health:           handlers.NewHealthHandler(pool),
		auth:             handlers.NewAuthHandler(authService),
		profile:          handlers.NewProfileHandler(profileService),
		files:            handlers.NewFileHandler(fileService),
		opportunityTypes: handlers.NewOpportunityTypeHandler(opportunityTypeService),
		opportunities:    handlers.NewOpportunityHandler(opportunityService),
		moderation:       handlers.NewModerationHandler(moderationService),
		applications:     handlers.NewApplicationHandler(applicationService),
		discussions:      handlers.NewDiscussionHandler(discussionService),
		adminUsers:       handlers.NewAdminUserHandler(adminUserService),
		announcements:    handlers.NewAnnouncementHandler(announcementService),
		audit:            handlers.NewAuditHandler(auditService),
		logs:             handlers.NewLogsHandler(frontendLog),
	}

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware(cfg.Session.CookieSecure))
	router.Use(middleware.BodySizeLimitMiddleware(cfg.Server.MaxBodyBytes))

	// CORS configuration - SECURITY: Only allow specific origins
	allowedOrigins := cfg.Server.AllowedOrigins
	// Allow localhost in development
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-CSRF-Token", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true, // Required for session cookies
		MaxAge:           12 * time.Hour,
	}))

	// SECURITY: Rate limiters to prevent abuse; auth endpoints send email so they are stricter
	generalRateLimiter := middleware.NewRateLimiter(appCtx, rate.Limit(cfg.RateLimit.GeneralRPS), cfg.RateLimit.GeneralBurst)
	authRateLimiter := middleware.NewRateLimiter(appCtx, rate.Limit(cfg.RateLimit.AuthRPS), cfg.RateLimit.AuthBurst)

	tokenManager := authService.GetTokenManager()
	cookie := middleware.CookieSettings{
		Name:   cfg.Session.CookieName,
		Domain: cfg.Session.CookieDomain,
		Secure: cfg.Session.CookieSecure,
	}

	// Sessions are rechecked against the user row so demotion and deactivation apply immediately
	registerRoutes(router, h,
		middleware.SessionMiddleware(tokenManager, cookie, userRepo),
		middleware.OptionalSessionMiddleware(tokenManager, cookie, userRepo),
		generalRateLimiter, authRateLimiter,
	)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Announcements are sent inline and may take a while for large audiences
		WriteTimeout:   120 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // SECURITY: 1 MB max header size
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
