// Package server
//
// @title Meddesk API
// @version 1.0
// @description Healthcare-commerce admin API
// @host localhost:8080
// @BasePath /
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/meddesk-dev/meddesk/internal/auth"
	"github.com/meddesk-dev/meddesk/internal/config"
	"github.com/meddesk-dev/meddesk/internal/models"
)

// Server represents the HTTP server
type Server struct {
	router      *gin.Engine
	db          *gorm.DB
	config      *config.Config
	logger      zerolog.Logger
	validator   *validator.Validate
	asynqClient *asynq.Client
	version     string
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// New creates a new server instance
func New(cfg *config.Config, zlog zerolog.Logger, version string) (*Server, error) {
	// Initialize database with production settings
	db, err := initDatabase(cfg, zlog)
	if err != nil {
		return nil, err
	}

	// Run database migrations
	if err := models.AutoMigrate(db); err != nil {
		return nil, err
	}

	// Initialize JWT authentication
	// Load JWT secret from database (auto-generated during first setup)
	var appConfig models.Config
	if err := db.First(&appConfig).Error; err == nil {
		// Config exists, use persisted JWT secret
		auth.InitializeJWT(appConfig.JWTSecret)
		zlog.Debug().Msg("Loaded JWT secret from database")
	} else {
		// No config yet - first setup hasn't happened
		// JWT will be initialized during setupFirstAdmin
		zlog.Info().Msg("No config found - JWT will be initialized during first setup")
	}

	// Ensure the uploads directory exists before any multipart handler runs
	if err := os.MkdirAll(cfg.Uploads.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	// Initialize validator
	validate := validator.New()

	// Register custom validators
	validate.RegisterValidation("slugfield", func(fl validator.FieldLevel) bool {
		// Lowercase alphanumeric with single hyphens (safe for URLs and filenames)
		return slugPattern.MatchString(fl.Field().String())
	})

	// Initialize Asynq client for enqueueing tasks
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr: cfg.Redis.Address,
	})

	// Create server
	server := &Server{
		db:          db,
		config:      cfg,
		logger:      zlog,
		validator:   validate,
		asynqClient: asynqClient,
		version:     version,
	}

	// Setup router
	server.setupRouter()

	return server, nil
}

// initDatabase initializes the database connection with production settings
func initDatabase(cfg *config.Config, zlog zerolog.Logger) (*gorm.DB, error) {
	const (
		maxOpenConns      = 8         // Reduced for SQLite efficiency
		maxIdleConns      = 4         // Reduced proportionally
		connMaxLifetime   = 300       // 5 minutes
		busyTimeout       = 5000      // 5 seconds
		cacheSize         = 10000     // 10MB
		mmapSize          = 134217728 // 128MB
		walAutocheckpoint = 1000      // WAL auto-checkpoint pages
	)

	// Open database connection
	db, err := gorm.Open(sqlite.Open(cfg.Database.URL), &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				LogLevel:                  logger.Error,
				IgnoreRecordNotFoundError: true,
				SlowThreshold:             200 * time.Millisecond,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Get underlying sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool settings
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(connMaxLifetime) * time.Second)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Apply SQLite pragmas directly (connection string pragmas may not work with all drivers)
	// WAL mode must be set first for optimal concurrency
	pragmas := []string{
		"PRAGMA journal_mode=WAL",                                      // Enable WAL mode for better concurrency
		"PRAGMA synchronous=NORMAL",                                    // Faster than FULL, still safe with WAL
		fmt.Sprintf("PRAGMA wal_autocheckpoint=%d", walAutocheckpoint), // Auto-checkpoint WAL file
		fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeout),
		fmt.Sprintf("PRAGMA cache_size=-%d", cacheSize),
		"PRAGMA foreign_keys=1",
		"PRAGMA temp_store=2",
		fmt.Sprintf("PRAGMA mmap_size=%d", mmapSize),
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			zlog.Warn().Str("pragma", pragma).Err(err).Msg("Failed to apply pragma")
		}
	}

	return db, nil
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() {
	// Set Gin mode based on environment
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()

	// Add middleware
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	// CORS middleware
	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint (no auth required)
	s.router.GET("/health", s.healthCheck)

	// Uploaded media (no auth required; paths are unguessable ULIDs)
	s.router.Static("/uploads", s.config.Uploads.Dir)

	// Public auth endpoints (no auth required)
	s.router.POST("/auth/setup", s.setupFirstAdmin)
	s.router.POST("/auth/login/admin", s.loginAdmin)

	// Authenticated API routes (JWT required)
	api := s.router.Group("/api")
	api.Use(JWTAuthMiddleware(s.db, s.logger))
	{
		// Auth endpoints
		api.GET("/auth/me", s.getCurrentUser)

		// Everything else is the admin surface
		admin := api.Group("")
		admin.Use(AdminOnlyMiddleware(s.logger))
		{
			// System information
			admin.GET("/system/info", s.getSystemInfo)

			// Global configuration
			admin.GET("/config", s.getConfig)
			admin.PATCH("/config", s.updateConfig)

			// Carousel ads
			admin.GET("/carousels", s.listCarousels)
			admin.POST("/carousels", s.createCarousel)
			admin.DELETE("/carousels/:id", s.deleteCarousel)

			// Blog posts
			admin.GET("/blogs", s.listBlogs)
			admin.POST("/blogs", s.createBlog)
			admin.PUT("/blogs/:id", s.updateBlog)
			admin.DELETE("/blogs/:id", s.deleteBlog)

			// Aligner offering
			admin.GET("/aligners", s.listAligners)
			admin.POST("/aligners", s.createAligner)
			admin.PATCH("/aligners/:id", s.updateAligner)
			admin.DELETE("/aligners/:id", s.deleteAligner)

			// Before/after showcase posts
			admin.GET("/transformations", s.listTransformations)
			admin.POST("/transformations", s.createTransformation)
			admin.PUT("/transformations/:id", s.updateTransformation)
			admin.DELETE("/transformations/:id", s.deleteTransformation)

			// Bite types
			admin.GET("/bite-types", s.listBiteTypes)
			admin.POST("/bite-types", s.createBiteType)
			admin.PATCH("/bite-types/:id", s.renameBiteType)
			admin.DELETE("/bite-types/:id", s.deleteBiteType)

			// Contact page videos
			admin.GET("/contact-videos", s.listContactVideos)
			admin.POST("/contact-videos", s.uploadContactVideos)
			admin.DELETE("/contact-videos/:id", s.deleteContactVideo)

			// Clinic centers and their doctor teams
			admin.GET("/centers", s.listCenters)
			admin.POST("/centers", s.createCenter)
			admin.PUT("/centers/:id", s.updateCenter)
			admin.DELETE("/centers/:id", s.deleteCenter)
			admin.POST("/centers/:id/team", s.assignDoctor)
			admin.DELETE("/centers/:id/team/:doctorId", s.unassignDoctor)

			// Products
			admin.GET("/products", s.listProducts)
			admin.POST("/products", s.createProduct)
			admin.PUT("/products/:id", s.updateProduct)
			admin.DELETE("/products/:id", s.deleteProduct)

			// Doctors
			admin.GET("/doctors", s.listDoctors)
			admin.POST("/doctors", s.createDoctor)
			admin.PUT("/doctors/:id", s.updateDoctor)
			admin.DELETE("/doctors/:id", s.deleteDoctor)

			// User management
			admin.GET("/users", s.listUsers)
			admin.GET("/users/:id", s.getUser)
			admin.DELETE("/users/:id", s.deleteUser)

			// Coin ledger
			admin.GET("/users/:id/coins", s.listCoinTransactions)
			admin.POST("/users/:id/coins", s.grantCoins)

			// Support tickets
			admin.GET("/tickets", s.listTickets)
			admin.PATCH("/tickets/:id", s.updateTicket)

			// Meet links
			admin.GET("/meets", s.listMeets)
			admin.POST("/meets", s.assignMeet)
			admin.DELETE("/meets/:id", s.deleteMeet)
		}
	}
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start)

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

// @Router /health [get]
// @Success 200 {object} map[string]interface{}
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "meddesk-api",
	})
}

// GetDB returns the database connection for use by workers
func (s *Server) GetDB() *gorm.DB {
	return s.db
}

// Start starts the HTTP server
func (s *Server) Start() error {
	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Create HTTP server with production timeouts
	srv := &http.Server{
		Addr:    s.config.Server.ListenAddr,
		Handler: s.router,
		// Generous write timeout for large multipart uploads
		ReadTimeout:       120 * time.Second,
		WriteTimeout:      120 * time.Second,
		ReadHeaderTimeout: 30 * time.Second,
		IdleTimeout:       300 * time.Second,
	}

	// Start server in goroutine
	go func() {
		s.logger.Info().Str("addr", s.config.Server.ListenAddr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")

	// Close Asynq client
	if err := s.asynqClient.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("Error closing Asynq client")
	}

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	s.logger.Info().Msg("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		return err
	}

	s.logger.Info().Msg("Server shutdown complete")

	// Close database connection to flush WAL writes
	if sqlDB, err := s.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			s.logger.Error().Err(err).Msg("Error closing database")
		}
	}

	return nil
}
