// Package sse serves the MCP server over HTTP for remote clients: the SSE
// transport at /sse, the streamable HTTP transport at /mcp, and info
// endpoints for deployment health checks.
package sse

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Handler struct {
	server         *mcp.Server
	allowedOrigins []string
	apiConfigured  bool
}

func New(server *mcp.Server, allowedOrigins []string, apiConfigured bool) *Handler {
	return &Handler{
		server:         server,
		allowedOrigins: allowedOrigins,
		apiConfigured:  apiConfigured,
	}
}

// Router assembles the HTTP surface: origin validation, CORS with the MCP
// session header exposed, transports, and info endpoints.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(h.validateOrigin)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Mcp-Session-Id"},
		AllowCredentials: true,
	}))

	r.Get("/", h.handleRoot)
	r.Get("/health", h.handleHealth)

	getServer := func(*http.Request) *mcp.Server { return h.server }
	r.Mount("/sse", mcp.NewSSEHandler(getServer, nil))
	r.Mount("/mcp", mcp.NewStreamableHTTPHandler(getServer, nil))

	return r
}

// validateOrigin guards the MCP endpoints against DNS rebinding: loopback
// hosts are always allowed, any other Origin must prefix-match the
// configured allow list. Info endpoints stay open for platform health
// checks.
func (h *Handler) validateOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" || r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		host := r.Host
		if i := strings.LastIndex(host, ":"); i >= 0 {
			host = host[:i]
		}
		if host == "localhost" || host == "127.0.0.1" || host == "[::1]" {
			next.ServeHTTP(w, r)
			return
		}

		if origin := r.Header.Get("Origin"); origin != "" && !h.originAllowed(origin) {
			log.Warn("rejected request from unauthorized origin", "origin", origin)
			http.Error(w, "Unauthorized origin", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) originAllowed(origin string) bool {
	for _, allowed := range h.allowedOrigins {
		if allowed != "" && strings.HasPrefix(origin, allowed) {
			return true
		}
	}
	return false
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJson(w, map[string]any{
		"name":      "ElevenLabs MCP SSE Server",
		"version":   "1.0.0",
		"status":    "running",
		"transport": "sse",
		"endpoints": map[string]string{
			"health": "/health",
			"sse":    "/sse",
			"mcp":    "/mcp",
		},
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJson(w, map[string]any{
		"status":         "healthy",
		"api_configured": h.apiConfigured,
	})
}
