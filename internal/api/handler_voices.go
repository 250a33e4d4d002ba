package api

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voxtool/mcp-elevenlabs/internal/elevenlabs"
)

func (h *Handler) handleListVoices(w http.ResponseWriter, r *http.Request) {
	envs, err := h.adapter.Invoke(r.Context(), "search_voices", nil)
	if err != nil {
		writeInvokeError(w, err)
		return
	}

	page, ok := envs[0].Payload.(*elevenlabs.VoicesPage)
	if !ok {
		writeError(w, http.StatusInternalServerError, nil)
		return
	}

	writeJson(w, map[string]any{
		"success": true,
		"count":   len(page.Voices),
		"voices":  page.Voices,
	})
}

func (h *Handler) handleGetVoice(w http.ResponseWriter, r *http.Request) {
	envs, err := h.adapter.Invoke(r.Context(), "get_voice", map[string]any{
		"voice_id": chi.URLParam(r, "voiceID"),
	})
	if err != nil {
		writeInvokeError(w, err)
		return
	}

	writeJson(w, map[string]any{
		"success": true,
		"voice":   envs[0].Payload,
	})
}

// handleCloneVoice accepts multipart sample uploads directly, since file
// contents cannot travel through JSON parameters.
func (h *Handler) handleCloneVoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, errMissingName)
		return
	}
	description := r.FormValue("description")
	if description == "" {
		description = "Cloned voice: " + name
	}

	files, err := readUploads(r.MultipartForm.File["files"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, errMissingFiles)
		return
	}

	voice, err := h.client.CloneVoice(r.Context(), name, description, files)
	if err != nil {
		writeInvokeError(w, err)
		return
	}

	writeJson(w, map[string]any{
		"success":  true,
		"voice_id": voice["voice_id"],
		"name":     name,
		"message":  "Voice cloned successfully",
	})
}

func readUploads(headers []*multipart.FileHeader) ([]elevenlabs.UploadFile, error) {
	var files []elevenlabs.UploadFile
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, elevenlabs.UploadFile{Name: header.Filename, Data: data})
	}
	return files, nil
}
