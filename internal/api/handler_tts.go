package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

type ttsRequest struct {
	Text            string   `json:"text"`
	VoiceID         string   `json:"voice_id,omitempty"`
	ModelID         string   `json:"model_id,omitempty"`
	Stability       *float64 `json:"stability,omitempty"`
	SimilarityBoost *float64 `json:"similarity_boost,omitempty"`
	Style           *float64 `json:"style,omitempty"`
	UseSpeakerBoost *bool    `json:"use_speaker_boost,omitempty"`
}

func (h *Handler) handleTTS(w http.ResponseWriter, r *http.Request) {
	var req ttsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	args := map[string]any{}
	if req.Text != "" {
		args["text"] = req.Text
	}
	if req.VoiceID != "" {
		args["voice_id"] = req.VoiceID
	}
	if req.ModelID != "" {
		args["model_id"] = req.ModelID
	}
	if req.Stability != nil {
		args["stability"] = *req.Stability
	}
	if req.SimilarityBoost != nil {
		args["similarity_boost"] = *req.SimilarityBoost
	}
	if req.Style != nil {
		args["style"] = *req.Style
	}
	if req.UseSpeakerBoost != nil {
		args["use_speaker_boost"] = *req.UseSpeakerBoost
	}

	envs, err := h.adapter.Invoke(r.Context(), "text_to_speech", args)
	if err != nil {
		writeInvokeError(w, err)
		return
	}

	voiceID := req.VoiceID
	if voiceID == "" {
		voiceID = h.cfg.DefaultVoiceID
	}
	audio, _ := envs[0].Payload.([]byte)

	writeJson(w, map[string]any{
		"success":     true,
		"audio":       base64.StdEncoding.EncodeToString(audio),
		"format":      "mp3",
		"voice_id":    voiceID,
		"text_length": len(req.Text),
	})
}

type soundEffectRequest struct {
	Text            string   `json:"text"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
}

func (h *Handler) handleSoundEffect(w http.ResponseWriter, r *http.Request) {
	var req soundEffectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	args := map[string]any{}
	if req.Text != "" {
		args["text"] = req.Text
	}
	duration := 2.0
	if req.DurationSeconds != nil {
		duration = *req.DurationSeconds
		args["duration_seconds"] = duration
	}

	envs, err := h.adapter.Invoke(r.Context(), "text_to_sound_effects", args)
	if err != nil {
		writeInvokeError(w, err)
		return
	}
	audio, _ := envs[0].Payload.([]byte)

	writeJson(w, map[string]any{
		"success":     true,
		"audio":       base64.StdEncoding.EncodeToString(audio),
		"format":      "mp3",
		"duration":    duration,
		"description": req.Text,
	})
}
