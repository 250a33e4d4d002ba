// Package api serves the REST surface: JSON endpoints for synthesis, voice
// management, agents and transcription, with audio returned base64-encoded
// for mobile and web clients.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/voxtool/mcp-elevenlabs/internal/adapter"
	"github.com/voxtool/mcp-elevenlabs/internal/config"
	"github.com/voxtool/mcp-elevenlabs/internal/elevenlabs"
	"github.com/voxtool/mcp-elevenlabs/internal/registry"
	"github.com/voxtool/mcp-elevenlabs/internal/resolver"
)

type Handler struct {
	adapter *adapter.Adapter
	client  *elevenlabs.Client
	cfg     *config.Config
}

func New(ad *adapter.Adapter, client *elevenlabs.Client, cfg *config.Config) *Handler {
	return &Handler{
		adapter: ad,
		client:  client,
		cfg:     cfg,
	}
}

// Router assembles the full REST router: CORS, request logging, API-key auth
// on the /api subtree.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))
	r.Use(requestLogger)

	r.Get("/", h.handleRoot)
	r.Get("/health", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(h.requireAPIKey)
		h.Attach(r)
	})

	return r
}

func (h *Handler) Attach(r chi.Router) {
	r.Post("/tts", h.handleTTS)
	r.Post("/sfx", h.handleSoundEffect)
	r.Post("/stt", h.handleSTT)

	r.Get("/voices", h.handleListVoices)
	r.Get("/voices/{voiceID}", h.handleGetVoice)
	r.Post("/voices/clone", h.handleCloneVoice)

	r.Get("/agents", h.handleListAgents)
	r.Post("/agents", h.handleCreateAgent)
	r.Get("/agents/{agentID}", h.handleGetAgent)
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	text := http.StatusText(code)
	if err != nil {
		text = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"detail":  text,
	})
}

// writeInvokeError maps pipeline errors to HTTP codes: validation failures
// are the client's fault, vendor failures are upstream, everything else is
// internal.
func writeInvokeError(w http.ResponseWriter, err error) {
	var (
		paramErr  *registry.InvalidParameterError
		vendorErr *elevenlabs.VendorError
		shapeErr  *adapter.ShapeMismatchError
		storeErr  *resolver.StorageError
	)
	switch {
	case errors.Is(err, registry.ErrUnknownOperation), errors.As(err, &paramErr):
		writeError(w, http.StatusBadRequest, err)
	case errors.As(err, &vendorErr):
		if vendorErr.StatusCode == http.StatusNotFound {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusBadGateway, err)
	case errors.As(err, &shapeErr), errors.As(err, &storeErr):
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
