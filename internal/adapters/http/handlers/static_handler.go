// Package handlers - HTTP handlers поверх fileserver.Resolver.
package handlers

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/Haleralex/filebridge/internal/adapters/http/common"
	"github.com/Haleralex/filebridge/internal/adapters/http/middleware"
	domainerrors "github.com/Haleralex/filebridge/internal/domain/errors"
	"github.com/Haleralex/filebridge/internal/fileserver"
	"github.com/gin-gonic/gin"
)

// ============================================
// Static Handler
// ============================================

// StaticHandler обслуживает файловые запросы.
//
// Регистрируется как NoRoute handler: все пути, не занятые служебными
// маршрутами, проходят через него.
type StaticHandler struct {
	resolver *fileserver.Resolver
	logger   *slog.Logger
}

// NewStaticHandler создаёт новый StaticHandler.
func NewStaticHandler(resolver *fileserver.Resolver, logger *slog.Logger) *StaticHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StaticHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// Serve - единая точка входа для файловых запросов.
//
// Method switch по закрытому множеству {GET, HEAD, Other}.
// OPTIONS сюда не доходит: preflight подтверждает CORS middleware.
func (h *StaticHandler) Serve(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet, http.MethodHead:
		h.serveFile(c)
	default:
		common.MethodNotAllowedResponse(c, c.Request.Method)
	}
}

// serveFile разрешает путь и стримит файл либо рендерит листинг.
func (h *StaticHandler) serveFile(c *gin.Context) {
	requestPath := c.Request.URL.Path

	entry, err := h.resolver.Resolve(requestPath)
	if err != nil {
		middleware.RecordFileServed(outcomeFor(err), 0)
		h.logResolveError(c, requestPath, err)
		common.HandleResolveError(c, requestPath, err)
		return
	}
	defer entry.Close()

	if entry.RedirectTo != "" {
		middleware.RecordFileServed("redirect", 0)
		c.Redirect(http.StatusMovedPermanently, entry.RedirectTo)
		return
	}

	if entry.IsDir {
		middleware.RecordFileServed("listing", 0)
		h.renderListing(c, requestPath, entry)
		return
	}

	middleware.RecordFileServed("served", entry.Size)

	// ServeContent сам выставляет Content-Type по расширению,
	// Content-Length и корректно обрабатывает HEAD и Range.
	http.ServeContent(c.Writer, c.Request, entry.Name, entry.ModTime, entry.Content())
}

// renderListing рендерит HTML листинг директории.
func (h *StaticHandler) renderListing(c *gin.Context, requestPath string, entry *fileserver.Entry) {
	base := path.Clean("/" + requestPath)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head><title>Index of ")
	b.WriteString(html.EscapeString(base))
	b.WriteString("</title></head>\n<body>\n<h1>Index of ")
	b.WriteString(html.EscapeString(base))
	b.WriteString("</h1>\n<ul>\n")

	if base != "/" {
		b.WriteString("<li><a href=\"../\">../</a></li>\n")
	}

	for _, child := range entry.Children {
		name := child.Name
		if child.IsDir {
			name += "/"
		}
		href := (&url.URL{Path: name}).String()
		fmt.Fprintf(&b, "<li><a href=%q>%s</a></li>\n", href, html.EscapeString(name))
	}

	b.WriteString("</ul>\n</body>\n</html>\n")

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(b.String()))
}

// logResolveError логирует отказ; 404 на debug уровне, чтобы не шуметь.
func (h *StaticHandler) logResolveError(c *gin.Context, requestPath string, err error) {
	level := slog.LevelWarn
	if domainerrors.IsNotFound(err) {
		level = slog.LevelDebug
	}

	h.logger.LogAttrs(c.Request.Context(), level, "File request rejected",
		slog.String("path", requestPath),
		slog.String("code", domainerrors.Code(err)),
		slog.String("request_id", middleware.GetRequestID(c)),
	)
}

// outcomeFor переводит код ошибки в метку метрики.
func outcomeFor(err error) string {
	switch domainerrors.Code(err) {
	case domainerrors.CodeBadRequest:
		return "bad_request"
	case domainerrors.CodeForbidden:
		return "forbidden"
	case domainerrors.CodeNotFound:
		return "not_found"
	default:
		return "error"
	}
}
