package elevenlabs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// TextToSpeech converts text to audio with the given voice. outputFormat is
// the vendor codec_sample_rate_bitrate string, e.g. "mp3_44100_128".
func (c *Client) TextToSpeech(ctx context.Context, voiceID, outputFormat string, req TTSRequest) ([]byte, error) {
	path := "/v1/text-to-speech/" + url.PathEscape(voiceID)
	query := url.Values{}
	if outputFormat != "" {
		query.Set("output_format", outputFormat)
	}

	data, err := marshalBody(path, req)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, path, query, data, "application/json")
}

// SoundEffects generates a sound effect from a text description.
// durationSeconds of zero lets the vendor choose a duration.
func (c *Client) SoundEffects(ctx context.Context, text string, durationSeconds float64, loop bool, outputFormat string) ([]byte, error) {
	path := "/v1/sound-generation"
	query := url.Values{}
	if outputFormat != "" {
		query.Set("output_format", outputFormat)
	}

	body := map[string]any{"text": text, "loop": loop}
	if durationSeconds > 0 {
		body["duration_seconds"] = durationSeconds
	}
	data, err := marshalBody(path, body)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, path, query, data, "application/json")
}

// SpeechToSpeech re-voices the given audio with another voice.
func (c *Client) SpeechToSpeech(ctx context.Context, voiceID, filename string, audio []byte) ([]byte, error) {
	path := "/v1/speech-to-speech/" + url.PathEscape(voiceID)
	return c.postMultipart(ctx, path, "audio",
		[]UploadFile{{Name: filename, Data: audio}},
		map[string]string{"model_id": "eleven_multilingual_sts_v2"})
}

// AudioIsolation strips background noise, returning the isolated speech.
func (c *Client) AudioIsolation(ctx context.Context, filename string, audio []byte) ([]byte, error) {
	return c.postMultipart(ctx, "/v1/audio-isolation", "audio",
		[]UploadFile{{Name: filename, Data: audio}}, nil)
}

// ComposeMusic generates a music track from a prompt.
func (c *Client) ComposeMusic(ctx context.Context, prompt string, lengthMs int) ([]byte, error) {
	body := map[string]any{"prompt": prompt}
	if lengthMs > 0 {
		body["music_length_ms"] = lengthMs
	}
	data, err := marshalBody("/v1/music", body)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/v1/music", nil, data, "application/json")
}

// SpeechToText transcribes an audio file with the scribe model.
func (c *Client) SpeechToText(ctx context.Context, filename string, audio []byte, languageCode string, diarize bool) (*Transcription, error) {
	fields := map[string]string{
		"model_id":         "scribe_v1",
		"diarize":          strconv.FormatBool(diarize),
		"tag_audio_events": "true",
	}
	if languageCode != "" {
		fields["language_code"] = languageCode
	}

	data, err := c.postMultipart(ctx, "/v1/speech-to-text", "file",
		[]UploadFile{{Name: filename, Data: audio}}, fields)
	if err != nil {
		return nil, err
	}

	var out Transcription
	if err := decodeJSON("/v1/speech-to-text", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HistoryItemAudio downloads the audio of one history record.
func (c *Client) HistoryItemAudio(ctx context.Context, historyItemID string) ([]byte, error) {
	path := fmt.Sprintf("/v1/history/%s/audio", url.PathEscape(historyItemID))
	return c.do(ctx, http.MethodGet, path, nil, nil, "")
}

// ConversationAudio downloads the recording of an agent conversation.
func (c *Client) ConversationAudio(ctx context.Context, conversationID string) ([]byte, error) {
	path := fmt.Sprintf("/v1/convai/conversations/%s/audio", url.PathEscape(conversationID))
	return c.do(ctx, http.MethodGet, path, nil, nil, "")
}
