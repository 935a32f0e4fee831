package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	adapterhttp "github.com/Haleralex/filebridge/internal/adapters/http"
	"github.com/Haleralex/filebridge/internal/config"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

func main() {
	// 1. Environment (.env опционален)
	_ = godotenv.Load()

	// 2. Configuration
	cfg, err := config.Load("configs", "config")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	// 3. Logger
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	logger.Info("🚀 Starting FileBridge static file server...",
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Root directory: резолвим в абсолютный путь один раз при старте
	root, err := filepath.Abs(cfg.Static.Root)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to resolve root directory:", err)
		os.Exit(1)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Root directory is not servable: %s\n", root)
		os.Exit(1)
	}
	cfg.Static.Root = root

	// 5. Router
	router := adapterhttp.NewRouter(adapterhttp.FromConfig(cfg, logger))
	logger.Info("✅ HTTP router configured")

	// 6. HTTP Server
	serverConfig := &adapterhttp.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            strconv.Itoa(cfg.Server.Port),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Logger:          logger,
	}

	server := adapterhttp.NewServer(serverConfig, router)

	// 7. Startup banner
	printBanner(cfg)

	// 8. Run (блокирует до SIGINT/SIGTERM)
	if err := server.Run(); err != nil {
		logger.Error("Server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println("🛑 Server stopped")
}

// newLogger строит slog.Logger согласно конфигурации:
// json handler для машинных логов, tint для читаемых.
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	out := os.Stdout
	if cfg.Log.Output == "stderr" {
		out = os.Stderr
	}

	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	}

	return slog.New(tint.NewHandler(out, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

// printBanner выводит стартовую сводку: порт, директория, URL.
func printBanner(cfg *config.Config) {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Printf("🌍 %s running on port %s\n", bold(cfg.App.Name), bold(cfg.Server.Port))
	fmt.Printf("📁 Serving files from: %s\n", cfg.Static.Root)
	fmt.Printf("🌐 Open your browser and go to: %s\n", cyan(cfg.Server.BrowseURL()))
	fmt.Println("⏹  Press Ctrl+C to stop the server")
	fmt.Println()
}
