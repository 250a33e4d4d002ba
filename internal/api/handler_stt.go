package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
)

// handleSTT transcribes an uploaded audio file. Like voice cloning, the
// upload bypasses the JSON parameter pipeline and goes to the vendor client
// directly.
func (h *Handler) handleSTT(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("audio file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	language := r.FormValue("language")
	diarize, _ := strconv.ParseBool(r.FormValue("diarize"))

	result, err := h.client.SpeechToText(r.Context(), header.Filename, data, language, diarize)
	if err != nil {
		writeInvokeError(w, err)
		return
	}

	if language == "" {
		language = "auto-detected"
	}
	writeJson(w, map[string]any{
		"success":     true,
		"transcript":  result.Text,
		"language":    language,
		"diarization": diarize,
	})
}
