package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/learnhub/internal/app/controllers"
	appMigrations "github.com/yigit/learnhub/internal/app/migrations"
	appRepos "github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/app/repositories/memory"
	appRoutes "github.com/yigit/learnhub/internal/app/routes"
	appServices "github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/config"
	"github.com/yigit/learnhub/internal/db"
	appMiddleware "github.com/yigit/learnhub/internal/middleware"
	"github.com/yigit/learnhub/internal/pkg/cache"
	"github.com/yigit/learnhub/internal/pkg/helpers"
	"github.com/yigit/learnhub/internal/pkg/logger"
	"github.com/yigit/learnhub/internal/pkg/media"
	"github.com/yigit/learnhub/internal/seed"
)

// Storage is the repository set the services run on, backed by either
// postgres or the in-process store.
type Storage struct {
	Categories    appServices.CategoryRepository
	SubCategories appServices.SubCategoryRepository
	Courses       appServices.CourseRepository
	MyCourses     appServices.MyCourseRepository
	Reports       appServices.ReportRepository

	// Pool is nil for the memory driver.
	Pool *pgxpool.Pool
}

// Close releases the database pool, if any
func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	CategoryService    appServices.CategoryService
	SubCategoryService appServices.SubCategoryService
	CourseService      appServices.CourseService
	MyCourseService    appServices.MyCourseService
	ReportService      appServices.ReportService
	Controllers        appRoutes.Controllers
	Storage            *Storage
	ReportCache        cache.ReportCache
	Uploader           media.Uploader
	Logger             zerolog.Logger
}

// Close releases the cache connection and the database pool
func (d *Dependencies) Close() {
	if r, ok := d.ReportCache.(*cache.Redis); ok {
		if err := r.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Failed to close report cache")
		}
	}
	if d.Storage != nil {
		d.Storage.Close()
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		dbPool.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// SetupStorage selects the repositories for the configured driver and seeds
// the default catalog when enabled.
func SetupStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	var storage *Storage

	if cfg.UsesMemoryStore() {
		lgr.Warn().Msg("Using in-memory store; data is lost on restart")
		repos := memory.NewRepositories(memory.NewStore())
		storage = &Storage{
			Categories:    repos.CategoryRepository,
			SubCategories: repos.SubCategoryRepository,
			Courses:       repos.CourseRepository,
			MyCourses:     repos.MyCourseRepository,
			Reports:       repos.ReportRepository,
		}
	} else {
		dbPool, err := SetupDatabase(ctx, cfg, lgr)
		if err != nil {
			return nil, err
		}
		repos := appRepos.NewRepositories(dbPool)
		storage = &Storage{
			Categories:    repos.CategoryRepository,
			SubCategories: repos.SubCategoryRepository,
			Courses:       repos.CourseRepository,
			MyCourses:     repos.MyCourseRepository,
			Reports:       repos.ReportRepository,
			Pool:          dbPool,
		}
	}

	if cfg.Database.Seed {
		if err := seed.CreateDefaultData(ctx, storage.Categories, storage.SubCategories, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return storage, nil
}

// SetupReportCache connects to redis when an address is configured. A redis
// that cannot be reached disables caching instead of failing startup.
func SetupReportCache(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) cache.ReportCache {
	if cfg.Cache.RedisAddr == "" {
		lgr.Info().Msg("Report cache disabled")
		return cache.Noop{}
	}

	ttl := helpers.ParseDuration(cfg.Cache.ReportTTL, 5*time.Minute)
	if ttl == 0 {
		lgr.Info().Msg("Report cache disabled by zero TTL")
		return cache.Noop{}
	}

	rc, err := cache.NewRedis(ctx, cache.RedisOptions{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
		TTL:      ttl,
	})
	if err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("Redis unavailable, report cache disabled")
		return cache.Noop{}
	}

	lgr.Info().Str("addr", cfg.Cache.RedisAddr).Dur("ttl", ttl).Msg("Report cache connected")
	return rc
}

// SetupUploader returns the media host client, or a passthrough when media is disabled.
func SetupUploader(cfg *config.Config, lgr zerolog.Logger) media.Uploader {
	if !cfg.Media.Enabled {
		lgr.Info().Msg("Media upload disabled, images are stored as given")
		return media.Passthrough{}
	}

	return media.NewClient(media.Config{
		BaseURL:   cfg.Media.BaseURL,
		CloudName: cfg.Media.CloudName,
		APIKey:    cfg.Media.APIKey,
		APISecret: cfg.Media.APISecret,
		Timeout:   helpers.ParseDuration(cfg.Media.Timeout, 15*time.Second),
	}, logger.Component("media"))
}

// BuildDependencies initializes services and controllers over storage.
func BuildDependencies(cfg *config.Config, storage *Storage, reportCache cache.ReportCache, uploader media.Uploader, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{
		Storage:     storage,
		ReportCache: reportCache,
		Uploader:    uploader,
		Logger:      lgr,
	}

	deps.CategoryService = appServices.NewCategoryService(storage.Categories, storage.SubCategories, lgr)
	deps.SubCategoryService = appServices.NewSubCategoryService(storage.SubCategories, storage.Categories, lgr)
	deps.CourseService = appServices.NewCourseService(storage.Courses, storage.SubCategories, uploader, cfg.Media.CourseUploadPreset, lgr)
	deps.MyCourseService = appServices.NewMyCourseService(storage.MyCourses, storage.Courses, lgr)
	deps.ReportService = appServices.NewReportService(storage.Reports, storage.Courses, storage.SubCategories, reportCache, logger.Component("reports"))

	var pinger appControllers.Pinger
	if storage.Pool != nil {
		pinger = storage.Pool
	}

	deps.Controllers = appRoutes.Controllers{
		Category:    appControllers.NewCategoryController(deps.CategoryService),
		SubCategory: appControllers.NewSubCategoryController(deps.SubCategoryService),
		Course:      appControllers.NewCourseController(deps.CourseService),
		MyCourse:    appControllers.NewMyCourseController(deps.MyCourseService),
		Report:      appControllers.NewReportController(deps.ReportService),
		Health:      appControllers.NewHealthController(pinger, strings.ToLower(cfg.Database.Driver)),
	}

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(logger.Component("http")),
		appMiddleware.CORS(cfg.Server.CORSOrigins),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
