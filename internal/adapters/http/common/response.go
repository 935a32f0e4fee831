// Package common содержит общие типы для HTTP слоя.
//
// Вынесен в отдельный пакет чтобы избежать циклических импортов
// между handlers и основным http пакетом.
package common

import (
	"net/http"
	"time"

	domainerrors "github.com/Haleralex/filebridge/internal/domain/errors"
	"github.com/gin-gonic/gin"
)

// ============================================
// Error Response Format
// ============================================

// APIResponse - стандартный формат JSON ответа для ошибок и служебных
// endpoint'ов. Файловые ответы идут мимо него - голыми байтами.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	RequestID string      `json:"request_id"`
	Timestamp time.Time   `json:"timestamp"`
}

// APIError - структура ошибки API.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ============================================
// Error Codes
// ============================================

const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// ============================================
// Request ID
// ============================================

const RequestIDKey = "X-Request-ID"

// GetRequestID возвращает Request ID из контекста.
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// ============================================
// Response Helpers
// ============================================

// Success отправляет успешный JSON ответ.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success:   true,
		Data:      data,
		RequestID: GetRequestID(c),
		Timestamp: time.Now().UTC(),
	})
}

// Error отправляет ответ с ошибкой.
func Error(c *gin.Context, statusCode int, apiError *APIError) {
	c.JSON(statusCode, APIResponse{
		Success:   false,
		Error:     apiError,
		RequestID: GetRequestID(c),
		Timestamp: time.Now().UTC(),
	})
}

// NotFoundResponse создаёт ответ для 404.
func NotFoundResponse(c *gin.Context, path string) {
	Error(c, http.StatusNotFound, &APIError{
		Code:    ErrCodeNotFound,
		Message: "File not found",
		Details: map[string]interface{}{"path": path},
	})
}

// ForbiddenResponse создаёт ответ для 403.
func ForbiddenResponse(c *gin.Context, path string) {
	Error(c, http.StatusForbidden, &APIError{
		Code:    ErrCodeForbidden,
		Message: "Path is outside the served directory",
		Details: map[string]interface{}{"path": path},
	})
}

// BadRequestResponse создаёт ответ для некорректного запроса.
func BadRequestResponse(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, &APIError{
		Code:    ErrCodeBadRequest,
		Message: message,
	})
}

// MethodNotAllowedResponse создаёт ответ для неподдерживаемого метода.
func MethodNotAllowedResponse(c *gin.Context, method string) {
	Error(c, http.StatusMethodNotAllowed, &APIError{
		Code:    ErrCodeMethodNotAllowed,
		Message: "Method not allowed",
		Details: map[string]interface{}{"method": method},
	})
}

// InternalErrorResponse создаёт ответ для внутренней ошибки.
func InternalErrorResponse(c *gin.Context) {
	Error(c, http.StatusInternalServerError, &APIError{
		Code:    ErrCodeInternal,
		Message: "An unexpected error occurred",
	})
}

// ============================================
// Domain Error to HTTP Error Mapper
// ============================================

// HandleResolveError преобразует ошибку разрешения пути в HTTP response.
//
// Таксономия:
// - malformed path  -> 400
// - root escape     -> 403
// - missing file    -> 404
// - всё остальное   -> 500
func HandleResolveError(c *gin.Context, requestPath string, err error) {
	switch {
	case domainerrors.IsBadRequest(err):
		BadRequestResponse(c, "Malformed request path")
	case domainerrors.IsForbidden(err):
		ForbiddenResponse(c, requestPath)
	case domainerrors.IsNotFound(err):
		NotFoundResponse(c, requestPath)
	default:
		InternalErrorResponse(c)
	}
}
