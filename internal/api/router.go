// Package api wires together all HTTP routes for the church site backend.
//
// Route grouping philosophy:
//   - Public site routes (/api/v1/...) are unauthenticated reads plus the
//     contact form. The frontend renders every page from these.
//   - Auth routes (/api/v1/auth/...) issue and introspect admin sessions and
//     carry a stricter rate limit to slow credential stuffing.
//   - Admin routes (/api/v1/admin/...) require a valid JWT for an active
//     admin account. Every successful write publishes a change event, which
//     is how audit records and image provenance entries get written without
//     each handler knowing about either concern.
package api

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/churchsite/church-backend/internal/api/admin"
	"github.com/churchsite/church-backend/internal/api/public"
	"github.com/churchsite/church-backend/internal/audit"
	"github.com/churchsite/church-backend/internal/config"
	"github.com/churchsite/church-backend/internal/db/repositories"
	"github.com/churchsite/church-backend/internal/events"
	"github.com/churchsite/church-backend/internal/images"
	"github.com/churchsite/church-backend/internal/jobs"
	"github.com/churchsite/church-backend/internal/middleware"
	"github.com/churchsite/church-backend/internal/rates"
	"github.com/churchsite/church-backend/internal/storage"

	// Import storage backends to register them
	_ "github.com/churchsite/church-backend/internal/storage/local"
)

// BackgroundServices holds references to background jobs and resources that
// must be stopped during graceful shutdown. The caller (cmd/server) is
// responsible for calling Shutdown() when the process receives a termination
// signal.
type BackgroundServices struct {
	scheduler    *jobs.Scheduler
	rateLimiters []*middleware.RateLimiter
	redisClient  *redis.Client
	auditShipper *audit.MultiShipper
}

// Scheduler exposes the job scheduler, mainly so tests and the server command
// can check job state.
func (bg *BackgroundServices) Scheduler() *jobs.Scheduler {
	return bg.scheduler
}

// Shutdown stops all background goroutines. It should be called after the
// HTTP server has been shut down so that in-flight requests are drained first.
func (bg *BackgroundServices) Shutdown() {
	slog.Info("stopping background services")
	if bg.scheduler != nil {
		bg.scheduler.Shutdown()
	}
	for _, rl := range bg.rateLimiters {
		rl.Stop()
	}
	if bg.auditShipper != nil {
		_ = bg.auditShipper.Close()
	}
	if bg.redisClient != nil {
		_ = bg.redisClient.Close()
	}
	slog.Info("all background services stopped")
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, database *sql.DB) (*gin.Engine, *BackgroundServices) {
	router := gin.New()
	bg := &BackgroundServices{scheduler: jobs.NewScheduler()}

	// Initialize storage backend
	storageBackend, err := storage.NewStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage backend: %v", err)
	}
	log.Printf("Initialized storage backend: %s", cfg.Storage.DefaultBackend)

	// Repositories on the raw handle
	auditRepo := repositories.NewAuditRepository(database)
	imageLogRepo := repositories.NewImageLogRepository(database)

	// Wrap *sql.DB with sqlx for the content repositories
	sqlxDB := sqlx.NewDb(database, "postgres")
	userRepo := repositories.NewUserRepository(sqlxDB)
	rateRepo := repositories.NewExchangeRateRepository(sqlxDB)

	// Change bus with its two standing subscribers: the audit recorder and
	// the image tracker. Handlers publish; neither subscriber can fail a
	// request.
	bus := events.NewBus()

	recorder := audit.NewRecorder(auditRepo, cfg.Audit.Enabled)
	shipper, err := audit.NewMultiShipper([]audit.ShipperConfig{
		{
			Enabled: cfg.Audit.File.Enabled,
			Type:    "file",
			File: &audit.FileConfig{
				Path:       cfg.Audit.File.Path,
				MaxSizeMB:  cfg.Audit.File.MaxSizeMB,
				MaxBackups: cfg.Audit.File.MaxBackups,
			},
		},
		{
			Enabled: cfg.Audit.Webhook.Enabled,
			Type:    "webhook",
			Webhook: &audit.WebhookConfig{
				URL:           cfg.Audit.Webhook.URL,
				Timeout:       cfg.Audit.Webhook.Timeout,
				BatchSize:     cfg.Audit.Webhook.BatchSize,
				FlushInterval: cfg.Audit.Webhook.FlushInterval,
			},
		},
	})
	if err != nil {
		log.Fatalf("Failed to initialize audit shippers: %v", err)
	}
	if !shipper.Empty() {
		recorder.ShipTo(shipper)
		bg.auditShipper = shipper
	}
	recorder.Register(bus)

	tracker := images.NewTracker(imageLogRepo)
	tracker.Register(bus)

	reconciler := NewImageReconciler(imageLogRepo, sqlxDB)

	// Exchange-rate cache and its daily refresh job
	rateService := rates.NewService(rateRepo, cfg.Rates.APIURL, cfg.Rates.RequestTimeout)
	if cfg.Rates.Enabled {
		job, err := jobs.NewRateRefreshJob(rateService, cfg.Rates.RefreshAt, cfg.Rates.MisfireGraceMinutes)
		if err != nil {
			// A bad schedule disables the background refresh rather than
			// failing startup; manual refresh still works.
			slog.Error("invalid rate refresh schedule, daily refresh disabled",
				"refresh_at", cfg.Rates.RefreshAt,
				"error", err)
		} else {
			bg.scheduler.Register(context.Background(), jobs.RateRefreshJobID, job)
			log.Printf("Exchange rate refresh scheduled daily at %s", cfg.Rates.RefreshAt)
		}
	}

	// Rate limiting: Redis-backed sliding window when configured, otherwise
	// per-process token buckets that must be stopped on shutdown.
	if cfg.Security.RateLimiting.Enabled && cfg.Security.RateLimiting.RedisAddr != "" {
		bg.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Security.RateLimiting.RedisAddr,
			Password: cfg.Security.RateLimiting.RedisPassword,
			DB:       cfg.Security.RateLimiting.RedisDB,
		})
		log.Printf("Rate limiting via Redis at %s", cfg.Security.RateLimiting.RedisAddr)
	}
	limit := func(limits middleware.RateLimitConfig) gin.HandlerFunc {
		if !cfg.Security.RateLimiting.Enabled {
			return func(c *gin.Context) { c.Next() }
		}
		if bg.redisClient != nil {
			return middleware.RedisRateLimitMiddleware(bg.redisClient, limits)
		}
		rl := middleware.NewRateLimiter(limits)
		bg.rateLimiters = append(bg.rateLimiters, rl)
		return middleware.RateLimitMiddleware(rl)
	}

	generalLimits := middleware.DefaultRateLimitConfig()
	if cfg.Security.RateLimiting.RequestsPerMinute > 0 {
		generalLimits.RequestsPerMinute = cfg.Security.RateLimiting.RequestsPerMinute
	}
	if cfg.Security.RateLimiting.Burst > 0 {
		generalLimits.BurstSize = cfg.Security.RateLimiting.Burst
	}

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(LoggerMiddleware(cfg))
	router.Use(CORSMiddleware(cfg))
	router.Use(middleware.SecurityHeadersMiddleware(middleware.APISecurityHeadersConfig()))
	router.Use(middleware.ClientInfoMiddleware())

	// Health check endpoint
	router.GET("/health", healthCheckHandler(database))

	// Readiness check endpoint (includes storage backend probe)
	router.GET("/ready", readinessHandler(database, storageBackend))

	// API version
	router.GET("/version", versionHandler())

	// Serve uploaded media straight from the local backend. Media gets the
	// browser-facing header set so the frontend origin can embed the files.
	if cfg.Storage.DefaultBackend == "local" && cfg.Storage.Local.ServeDirectly {
		media := router.Group("/media",
			middleware.SecurityHeadersMiddleware(middleware.DefaultSecurityHeadersConfig()))
		media.Static("/", cfg.Storage.Local.BasePath)
	}

	// Handlers
	publicContent := public.NewContentHandlers(sqlxDB)
	publicMedia := public.NewMediaHandlers(sqlxDB)
	publicStore := public.NewStoreHandlers(sqlxDB, rateService)
	publicContact := public.NewContactHandlers(sqlxDB)

	authHandlers := admin.NewAuthHandlers(sqlxDB, recorder, cfg.Auth.TokenTTL)
	contentHandlers := admin.NewContentHandlers(sqlxDB, bus)
	leaderHandlers := admin.NewLeaderHandlers(sqlxDB, bus)
	sermonHandlers := admin.NewSermonHandlers(sqlxDB, bus)
	eventHandlers := admin.NewEventHandlers(sqlxDB, bus)
	givingHandlers := admin.NewGivingHandlers(sqlxDB, bus)
	contactHandlers := admin.NewContactAdminHandlers(sqlxDB, bus)
	storeHandlers := admin.NewStoreAdminHandlers(sqlxDB, bus)
	userHandlers := admin.NewUserHandlers(sqlxDB, bus)
	auditHandlers := admin.NewAuditHandlers(database)
	imageHandlers := admin.NewImageLogHandlers(database, reconciler)
	rateHandlers := admin.NewRateHandlers(rateService)
	mediaHandlers := admin.NewMediaHandlers(storageBackend, cfg.Server.BaseURL)

	apiV1 := router.Group("/api/v1")

	// Public authentication endpoints (no auth required, strict rate limit)
	authGroup := apiV1.Group("/auth")
	authGroup.Use(limit(middleware.AuthRateLimitConfig()))
	{
		authGroup.POST("/login", authHandlers.LoginHandler())
	}

	// Authenticated session endpoints
	sessionGroup := apiV1.Group("/auth")
	sessionGroup.Use(middleware.AuthMiddleware(userRepo))
	{
		sessionGroup.POST("/logout", authHandlers.LogoutHandler())
		sessionGroup.GET("/me", authHandlers.MeHandler())
		sessionGroup.POST("/change-password", authHandlers.ChangePasswordHandler())
	}

	// Public site endpoints
	publicGroup := apiV1.Group("")
	publicGroup.Use(limit(generalLimits))
	{
		publicGroup.GET("/banners", publicContent.ListBanners)
		publicGroup.GET("/church", publicContent.GetChurchInfo)
		publicGroup.GET("/head-pastor", publicContent.GetHeadPastor)
		publicGroup.GET("/service-times", publicContent.ListServiceTimes)
		publicGroup.GET("/leaders", publicContent.ListLeaders)
		publicGroup.GET("/leaders/:id", publicContent.GetLeader)
		publicGroup.GET("/gallery", publicContent.ListGalleryPhotos)
		publicGroup.GET("/giving", publicContent.GetGivingPage)

		publicGroup.GET("/sermons", publicMedia.ListSermons)
		publicGroup.GET("/sermons/:id", publicMedia.GetSermon)
		publicGroup.GET("/events", publicMedia.ListEvents)
		publicGroup.GET("/events/:id", publicMedia.GetEvent)
		publicGroup.GET("/branches", publicMedia.ListBranches)
		publicGroup.GET("/branches/:id", publicMedia.GetBranch)

		publicGroup.GET("/store/books", publicStore.ListBooks)
		publicGroup.GET("/store/books/:id", publicStore.GetBook)
		publicGroup.GET("/store/books/:id/price", publicStore.GetBookPrice)
		publicGroup.GET("/store/merchandise", publicStore.ListMerchandise)
		publicGroup.GET("/store/merchandise/:id", publicStore.GetMerchandiseItem)
		publicGroup.GET("/store/merchandise/:id/price", publicStore.GetMerchandisePrice)
		publicGroup.GET("/currencies", publicStore.ListCurrencies)

		publicGroup.POST("/contact", publicContact.SubmitContactMessage)
		publicGroup.GET("/testimonies", publicContact.ListTestimonies)
	}

	// Admin endpoints: authenticated admin accounts only
	adminGroup := apiV1.Group("/admin")
	adminGroup.Use(limit(generalLimits))
	adminGroup.Use(middleware.AuthMiddleware(userRepo))
	adminGroup.Use(middleware.RequireAdmin())
	{
		adminGroup.GET("/banners", contentHandlers.ListBanners)
		adminGroup.POST("/banners", contentHandlers.CreateBanner)
		adminGroup.PUT("/banners/:id", contentHandlers.UpdateBanner)
		adminGroup.DELETE("/banners/:id", contentHandlers.DeleteBanner)

		adminGroup.GET("/church", contentHandlers.GetChurchInfo)
		adminGroup.POST("/church", contentHandlers.CreateChurchInfo)
		adminGroup.PUT("/church", contentHandlers.UpdateChurchInfo)

		adminGroup.GET("/head-pastor", contentHandlers.GetHeadPastor)
		adminGroup.POST("/head-pastor", contentHandlers.CreateHeadPastor)
		adminGroup.PUT("/head-pastor", contentHandlers.UpdateHeadPastor)
		adminGroup.DELETE("/head-pastor", contentHandlers.DeleteHeadPastor)

		adminGroup.GET("/service-times", contentHandlers.ListServiceTimes)
		adminGroup.POST("/service-times", contentHandlers.CreateServiceTime)
		adminGroup.PUT("/service-times/:id", contentHandlers.UpdateServiceTime)
		adminGroup.DELETE("/service-times/:id", contentHandlers.DeleteServiceTime)

		adminGroup.GET("/leaders", leaderHandlers.ListLeaders)
		adminGroup.POST("/leaders", leaderHandlers.CreateLeader)
		adminGroup.PUT("/leaders/:id", leaderHandlers.UpdateLeader)
		adminGroup.DELETE("/leaders/:id", leaderHandlers.DeleteLeader)

		adminGroup.GET("/gallery", leaderHandlers.ListGalleryPhotos)
		adminGroup.POST("/gallery", leaderHandlers.CreateGalleryPhoto)
		adminGroup.PUT("/gallery/:id", leaderHandlers.UpdateGalleryPhoto)
		adminGroup.DELETE("/gallery/:id", leaderHandlers.DeleteGalleryPhoto)

		adminGroup.GET("/sermons", sermonHandlers.ListSermons)
		adminGroup.POST("/sermons", sermonHandlers.CreateSermon)
		adminGroup.PUT("/sermons/:id", sermonHandlers.UpdateSermon)
		adminGroup.DELETE("/sermons/:id", sermonHandlers.DeleteSermon)

		adminGroup.GET("/events", eventHandlers.ListEvents)
		adminGroup.POST("/events", eventHandlers.CreateEvent)
		adminGroup.PUT("/events/:id", eventHandlers.UpdateEvent)
		adminGroup.DELETE("/events/:id", eventHandlers.DeleteEvent)

		adminGroup.GET("/branches", eventHandlers.ListBranches)
		adminGroup.POST("/branches", eventHandlers.CreateBranch)
		adminGroup.PUT("/branches/:id", eventHandlers.UpdateBranch)
		adminGroup.DELETE("/branches/:id", eventHandlers.DeleteBranch)

		adminGroup.GET("/giving", givingHandlers.GetGivingInfo)
		adminGroup.POST("/giving", givingHandlers.CreateGivingInfo)
		adminGroup.PUT("/giving", givingHandlers.UpdateGivingInfo)
		adminGroup.GET("/giving/images", givingHandlers.ListGivingImages)
		adminGroup.POST("/giving/images", givingHandlers.CreateGivingImage)
		adminGroup.DELETE("/giving/images/:id", givingHandlers.DeleteGivingImage)

		adminGroup.GET("/contact-messages", contactHandlers.ListContactMessages)
		adminGroup.POST("/contact-messages/:id/read", contactHandlers.MarkContactMessageRead)
		adminGroup.DELETE("/contact-messages/:id", contactHandlers.DeleteContactMessage)

		adminGroup.GET("/testimonies", contactHandlers.ListTestimonies)
		adminGroup.POST("/testimonies", contactHandlers.CreateTestimony)
		adminGroup.PUT("/testimonies/:id", contactHandlers.UpdateTestimony)
		adminGroup.DELETE("/testimonies/:id", contactHandlers.DeleteTestimony)

		adminGroup.GET("/store/books", storeHandlers.ListBooks)
		adminGroup.POST("/store/books", storeHandlers.CreateBook)
		adminGroup.PUT("/store/books/:id", storeHandlers.UpdateBook)
		adminGroup.DELETE("/store/books/:id", storeHandlers.DeleteBook)

		adminGroup.GET("/store/merchandise", storeHandlers.ListMerchandise)
		adminGroup.POST("/store/merchandise", storeHandlers.CreateMerchandise)
		adminGroup.PUT("/store/merchandise/:id", storeHandlers.UpdateMerchandise)
		adminGroup.DELETE("/store/merchandise/:id", storeHandlers.DeleteMerchandise)

		adminGroup.GET("/users", userHandlers.ListUsers)
		adminGroup.POST("/users", userHandlers.CreateUser)

		adminGroup.GET("/audit-logs", auditHandlers.ListAuditLogs)
		adminGroup.GET("/audit-logs/:id", auditHandlers.GetAuditLog)

		adminGroup.GET("/image-logs", imageHandlers.ListImageLogs)
		adminGroup.POST("/image-logs/reconcile", imageHandlers.Reconcile)

		adminGroup.GET("/rates", rateHandlers.ListRates)
		adminGroup.POST("/rates/refresh", rateHandlers.RefreshRates)

		adminGroup.POST("/media",
			limit(middleware.UploadRateLimitConfig()), // Stricter rate limit for uploads
			mediaHandlers.UploadImage)
	}

	return router, bg
}

// NewImageReconciler builds the orphan sweep with an existence checker for
// every entity kind that carries an image. Exported because the
// cleanup-images subcommand runs the same sweep without a router.
func NewImageReconciler(imageLogRepo *repositories.ImageLogRepository, sqlxDB *sqlx.DB) *images.Reconciler {
	reconciler := images.NewReconciler(imageLogRepo)

	banners := repositories.NewHomeBannerRepository(sqlxDB)
	pastors := repositories.NewHeadPastorRepository(sqlxDB)
	leaders := repositories.NewLeaderRepository(sqlxDB)
	gallery := repositories.NewPhotoGalleryRepository(sqlxDB)
	sermons := repositories.NewSermonRepository(sqlxDB)
	churchEvents := repositories.NewEventRepository(sqlxDB)
	branches := repositories.NewBranchRepository(sqlxDB)
	givingImages := repositories.NewGivingImageRepository(sqlxDB)
	books := repositories.NewBookRepository(sqlxDB)
	merch := repositories.NewMerchandiseRepository(sqlxDB)

	reconciler.RegisterChecker(events.KindHomeBanner, banners.Exists)
	reconciler.RegisterChecker(events.KindHeadPastor, pastors.Exists)
	reconciler.RegisterChecker(events.KindLeader, leaders.Exists)
	reconciler.RegisterChecker(events.KindPhotoGallery, gallery.Exists)
	reconciler.RegisterChecker(events.KindSermon, sermons.Exists)
	reconciler.RegisterChecker(events.KindEvent, churchEvents.Exists)
	reconciler.RegisterChecker(events.KindBranch, branches.Exists)
	reconciler.RegisterChecker(events.KindGivingImage, givingImages.Exists)
	reconciler.RegisterChecker(events.KindBook, books.Exists)
	reconciler.RegisterChecker(events.KindMerchandise, merch.Exists)

	return reconciler
}

// healthCheckHandler returns the health status of the service
func healthCheckHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check database connection
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// readinessHandler returns the readiness status of the service.
// Unlike the liveness probe (/health), this also checks the storage backend
// so that a readiness gate fails when media uploads would error.
func readinessHandler(db *sql.DB, storageBackend storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := gin.H{}

		// Check database connection
		if err := db.Ping(); err != nil {
			checks["database"] = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"ready":  false,
				"checks": checks,
				"error":  "database not ready",
			})
			return
		}
		checks["database"] = "healthy"

		// Check storage backend — probe with a known-absent sentinel path.
		// Exists() exercises the backend without creating any state.
		if _, err := storageBackend.Exists(c.Request.Context(), ".readiness-probe"); err != nil {
			checks["storage"] = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"ready":  false,
				"checks": checks,
				"error":  "storage backend not ready",
			})
			return
		}
		checks["storage"] = "healthy"

		c.JSON(http.StatusOK, gin.H{
			"ready":  true,
			"checks": checks,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// versionHandler returns the API version
func versionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":     "0.1.0",
			"api_version": "v1",
		})
	}
}

// LoggerMiddleware provides structured logging
func LoggerMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		requestID, _ := c.Get(middleware.RequestIDKey)
		slog.LogAttrs(
			c.Request.Context(),
			slog.LevelInfo,
			"http request",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("query", query),
			slog.Int("status", c.Writer.Status()),
			slog.Int("size", c.Writer.Size()),
			slog.Duration("latency", latency),
			slog.String("ip", c.ClientIP()),
			slog.String("request_id", fmt.Sprintf("%v", requestID)),
			slog.String("user_agent", c.Request.UserAgent()),
		)
	}
}

// CORSMiddleware handles CORS
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Check if origin is allowed
		allowed := false
		for _, allowedOrigin := range cfg.Security.CORS.AllowedOrigins {
			if allowedOrigin == "*" || allowedOrigin == origin {
				allowed = true
				break
			}
		}

		if allowed {
			if origin == "" {
				c.Header("Access-Control-Allow-Origin", "*")
			} else {
				c.Header("Access-Control-Allow-Origin", origin)
			}
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Requested-With")
			c.Header("Access-Control-Max-Age", "3600")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
