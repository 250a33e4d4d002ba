package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voxtool/mcp-elevenlabs/internal/elevenlabs"
)

var (
	errMissingName  = errors.New("name is required")
	errMissingFiles = errors.New("at least one audio file is required")
)

func (h *Handler) handleListAgents(w http.ResponseWriter, r *http.Request) {
	envs, err := h.adapter.Invoke(r.Context(), "list_agents", nil)
	if err != nil {
		writeInvokeError(w, err)
		return
	}

	writeJson(w, map[string]any{
		"success": true,
		"agents":  envs[0].Payload,
	})
}

type agentCreateRequest struct {
	Name         string   `json:"name"`
	FirstMessage string   `json:"first_message"`
	SystemPrompt string   `json:"system_prompt"`
	VoiceID      string   `json:"voice_id,omitempty"`
	Language     string   `json:"language,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
}

func (h *Handler) handleCreateAgent(w http.ResponseWriter, r *http.Request) {
	var req agentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	args := map[string]any{}
	if req.Name != "" {
		args["name"] = req.Name
	}
	if req.SystemPrompt != "" {
		args["system_prompt"] = req.SystemPrompt
	}
	if req.FirstMessage != "" {
		args["first_message"] = req.FirstMessage
	}
	if req.VoiceID != "" {
		args["voice_id"] = req.VoiceID
	}
	if req.Language != "" {
		args["language"] = req.Language
	}
	if req.Temperature != nil {
		args["temperature"] = *req.Temperature
	}

	envs, err := h.adapter.Invoke(r.Context(), "create_agent", args)
	if err != nil {
		writeInvokeError(w, err)
		return
	}

	var agentID string
	if agent, ok := envs[0].Payload.(*elevenlabs.Agent); ok {
		agentID = agent.AgentID
	}
	writeJson(w, map[string]any{
		"success":  true,
		"agent_id": agentID,
		"name":     req.Name,
		"message":  "Agent created successfully",
	})
}

func (h *Handler) handleGetAgent(w http.ResponseWriter, r *http.Request) {
	envs, err := h.adapter.Invoke(r.Context(), "get_agent", map[string]any{
		"agent_id": chi.URLParam(r, "agentID"),
	})
	if err != nil {
		writeInvokeError(w, err)
		return
	}

	writeJson(w, map[string]any{
		"success": true,
		"agent":   envs[0].Payload,
	})
}
