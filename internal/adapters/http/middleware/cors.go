// Package middleware - CORS middleware.
//
// Cross-Origin Resource Sharing (CORS) позволяет браузерам
// делать запросы к серверу с других доменов.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig - конфигурация CORS.
type CORSConfig struct {
	// AllowOrigin - разрешённый origin; "*" разрешает все
	AllowOrigin string
	// AllowMethods - разрешённые HTTP методы
	AllowMethods []string
	// AllowHeaders - разрешённые заголовки запроса
	AllowHeaders []string
}

// DefaultCORSConfig - конфигурация по умолчанию.
//
// Значения фиксированы контрактом сервера: каждый ответ, независимо от
// метода и статуса, несёт ровно эти три заголовка.
func DefaultCORSConfig() *CORSConfig {
	return &CORSConfig{
		AllowOrigin: "*",
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowHeaders: []string{"Content-Type"},
	}
}

// CORS middleware для обработки Cross-Origin запросов.
//
// В отличие от API с per-origin проверками, статический сервер
// безусловно разрешает все origins:
//  1. Заголовки ставятся на КАЖДЫЙ ответ, даже без Origin в запросе
//  2. OPTIONS (preflight) подтверждается сразу: 200 OK без тела
//
// Заголовки:
// - Access-Control-Allow-Origin
// - Access-Control-Allow-Methods
// - Access-Control-Allow-Headers
func CORS(config *CORSConfig) gin.HandlerFunc {
	if config == nil {
		config = DefaultCORSConfig()
	}

	// Предварительно формируем строки для заголовков
	allowMethods := strings.Join(config.AllowMethods, ", ")
	allowHeaders := strings.Join(config.AllowHeaders, ", ")

	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", config.AllowOrigin)
		c.Header("Access-Control-Allow-Methods", allowMethods)
		c.Header("Access-Control-Allow-Headers", allowHeaders)

		// Preflight acknowledgment: 200 без тела, путь не важен
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
