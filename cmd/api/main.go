package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lumeo/admin-backend/internal/config"
	"github.com/lumeo/admin-backend/internal/handler"
	"github.com/lumeo/admin-backend/internal/middleware"
	"github.com/lumeo/admin-backend/internal/migration"
	"github.com/lumeo/admin-backend/internal/repository"
	"github.com/lumeo/admin-backend/internal/routes"
	"github.com/lumeo/admin-backend/internal/service"
	pkgcache "github.com/lumeo/admin-backend/pkg/cache"
	pkglogger "github.com/lumeo/admin-backend/pkg/logger"
	pkgredis "github.com/lumeo/admin-backend/pkg/redis"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL at %s:%d", cfg.Database.Host, cfg.Database.Port)

	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	var cacheService pkgcache.Service
	if cfg.Redis.Enabled {
		redisClient, err := pkgredis.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
		)
		if err != nil {
			pkglogger.Warn("Redis unavailable, running without cache: %v", err)
		} else {
			cacheService = pkgcache.NewService(redisClient)
			pkglogger.Info("Connected to Redis at %s:%d", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Repositories
	productRepo := repository.NewProductRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	// Services
	workflowSvc := service.NewWorkflowService()
	versioningSvc := service.NewVersioningService(versionRepo)
	lifecycleSvc := service.NewLifecycleService(db, workflowSvc, versioningSvc, productRepo, articleRepo, catalogRepo, cacheService)
	productSvc := service.NewProductService(productRepo, catalogRepo, cacheService)
	articleSvc := service.NewArticleService(articleRepo, catalogRepo, cacheService)

	// Handlers
	productHandler := handler.NewProductHandler(productSvc)
	articleHandler := handler.NewArticleHandler(articleSvc)
	workflowHandler := handler.NewWorkflowHandler(lifecycleSvc)
	versionHandler := handler.NewVersionHandler(lifecycleSvc)

	if env != "local" && env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.Setup(router, productHandler, articleHandler, workflowHandler, versionHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	pkglogger.Info("Listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.App.Env == "local" || cfg.App.Env == "development" {
		logLevel = gormlogger.Info
	}

	return gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
}
