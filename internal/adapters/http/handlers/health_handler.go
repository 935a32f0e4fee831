// Package handlers - Health check handlers.
//
// Health checks позволяют оркестраторам (Kubernetes, Docker Swarm)
// проверять состояние приложения.
//
// Два типа health checks:
// - Liveness: Приложение работает? (если нет - restart)
// - Readiness: Приложение готово принимать трафик? (если нет - no traffic)
package handlers

import (
	"net/http"
	"time"

	"github.com/Haleralex/filebridge/internal/fileserver"
	"github.com/gin-gonic/gin"
)

// ============================================
// Health Check Handler
// ============================================

// HealthHandler обрабатывает health check запросы.
type HealthHandler struct {
	resolver  *fileserver.Resolver
	version   string
	startTime time.Time
}

// NewHealthHandler создаёт новый HealthHandler.
func NewHealthHandler(resolver *fileserver.Resolver, version string) *HealthHandler {
	return &HealthHandler{
		resolver:  resolver,
		version:   version,
		startTime: time.Now(),
	}
}

// ============================================
// Response Types
// ============================================

// HealthResponse - ответ health check.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	Root      string    `json:"root"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadinessResponse - ответ readiness check.
type ReadinessResponse struct {
	Ready     bool              `json:"ready"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

// ============================================
// HTTP Handlers
// ============================================

// Health возвращает базовый health статус.
func (h *HealthHandler) Health(c *gin.Context) {
	uptime := time.Since(h.startTime).Round(time.Second).String()

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Uptime:    uptime,
		Root:      h.resolver.Root(),
		Timestamp: time.Now().UTC(),
	})
}

// Ready проверяет готовность приложения.
//
// Единственная зависимость сервера - корневая директория:
// если она исчезла или нечитаема, трафик принимать бессмысленно.
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := make(map[string]string)
	allReady := true

	if err := h.resolver.CheckRoot(); err != nil {
		checks["root_directory"] = "unhealthy: " + err.Error()
		allReady = false
	} else {
		checks["root_directory"] = "healthy"
	}

	statusCode := http.StatusOK
	if !allReady {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, ReadinessResponse{
		Ready:     allReady,
		Checks:    checks,
		Timestamp: time.Now().UTC(),
	})
}

// Live возвращает статус "живости" приложения.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

// RegisterRoutes регистрирует health check маршруты.
//
// Routes:
// - GET /health - Basic health check
// - GET /ready  - Readiness probe
// - GET /live   - Liveness probe
func (h *HealthHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	router.GET("/live", h.Live)
}
