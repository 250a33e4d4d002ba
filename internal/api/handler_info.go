package api

import (
	"errors"
	"net/http"
)

var errInvalidAPIKey = errors.New("invalid API key")

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJson(w, map[string]any{
		"service": "ElevenLabs Mobile API",
		"version": "1.0.0",
		"status":  "running",
		"health":  "/health",
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJson(w, map[string]any{
		"status":         "healthy",
		"api_configured": h.cfg.APIKey != "",
		"endpoints": map[string]string{
			"text_to_speech": "/api/tts",
			"voices":         "/api/voices",
			"voice_clone":    "/api/voices/clone",
			"agents":         "/api/agents",
			"sound_effects":  "/api/sfx",
			"speech_to_text": "/api/stt",
		},
	})
}
