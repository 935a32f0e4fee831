// Package http - Router configuration for the static file server.
//
// Router собирает middleware и handlers в единую точку входа.
//
// Pattern: Composition Root
// - Все зависимости собираются здесь
// - Служебные маршруты (health, metrics) регистрируются явно
// - Всё остальное уходит в NoRoute -> StaticHandler
package http

import (
	"log/slog"

	"github.com/Haleralex/filebridge/internal/adapters/http/handlers"
	"github.com/Haleralex/filebridge/internal/adapters/http/middleware"
	"github.com/Haleralex/filebridge/internal/config"
	"github.com/Haleralex/filebridge/internal/fileserver"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"
)

// ============================================
// Router Configuration
// ============================================

// RouterConfig - конфигурация роутера.
type RouterConfig struct {
	// Logger для middleware
	Logger *slog.Logger
	// FS - файловая система (OsFs в production, MemMapFs в тестах)
	FS afero.Fs
	// Root - абсолютный путь корневой директории
	Root string
	// IndexFile - имя index файла
	IndexFile string
	// DirectoryListing - отдавать листинг директорий без index файла
	DirectoryListing bool
	// CORS - заголовки, добавляемые к каждому ответу
	CORS *middleware.CORSConfig
	// Version приложения
	Version string
	// Environment (development, production, test)
	Environment string
}

// DefaultRouterConfig - конфигурация по умолчанию для development.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		Logger:           slog.Default(),
		FS:               afero.NewOsFs(),
		Root:             ".",
		IndexFile:        "index.html",
		DirectoryListing: true,
		CORS:             middleware.DefaultCORSConfig(),
		Version:          "dev",
		Environment:      "development",
	}
}

// FromConfig строит RouterConfig из конфигурации приложения.
func FromConfig(cfg *config.Config, logger *slog.Logger) *RouterConfig {
	return &RouterConfig{
		Logger:           logger,
		FS:               afero.NewOsFs(),
		Root:             cfg.Static.Root,
		IndexFile:        cfg.Static.IndexFile,
		DirectoryListing: cfg.Static.DirectoryListing,
		CORS: &middleware.CORSConfig{
			AllowOrigin:  cfg.CORS.AllowedOrigin,
			AllowMethods: cfg.CORS.AllowedMethods,
			AllowHeaders: cfg.CORS.AllowedHeaders,
		},
		Version:     cfg.App.Version,
		Environment: cfg.App.Environment,
	}
}

// ============================================
// Router
// ============================================

// NewRouter создаёт сконфигурированный Gin Engine.
func NewRouter(cfg *RouterConfig) *gin.Engine {
	if cfg == nil {
		cfg = DefaultRouterConfig()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.FS == nil {
		cfg.FS = afero.NewOsFs()
	}

	// Настраиваем режим Gin
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Создаём router без default middleware
	router := gin.New()

	// ============================================
	// Global Middleware
	// ============================================

	// 1. Recovery - должен быть первым
	router.Use(middleware.Recovery(&middleware.RecoveryConfig{
		Logger:           cfg.Logger,
		EnableStackTrace: cfg.Environment != "production",
	}))

	// 2. Request ID
	router.Use(middleware.RequestID())

	// 3. CORS - ставит заголовки на каждый ответ и гасит preflight
	router.Use(middleware.CORS(cfg.CORS))

	// 4. Logging
	router.Use(middleware.Logging(&middleware.LoggingConfig{
		Logger:    cfg.Logger,
		SkipPaths: []string{"/health", "/live", "/ready", "/metrics"},
	}))

	// 5. Metrics (Prometheus)
	router.Use(middleware.Metrics())

	// ============================================
	// Metrics Endpoint
	// ============================================

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ============================================
	// Health Check Routes
	// ============================================

	resolver := fileserver.NewResolver(cfg.FS, cfg.Root, fileserver.Options{
		IndexFile:        cfg.IndexFile,
		DirectoryListing: cfg.DirectoryListing,
	})

	healthHandler := handlers.NewHealthHandler(resolver, cfg.Version)
	healthHandler.RegisterRoutes(router)

	// ============================================
	// Static File Serving (catch-all)
	// ============================================

	// NoRoute вместо wildcard route: служебные маршруты выше имеют
	// приоритет, всё остальное попадает в файловый handler.
	staticHandler := handlers.NewStaticHandler(resolver, cfg.Logger)
	router.NoRoute(staticHandler.Serve)

	return router
}

// NewDevelopmentRouter создаёт роутер для development окружения.
func NewDevelopmentRouter() *gin.Engine {
	return NewRouter(DefaultRouterConfig())
}
