package elevenlabs

// VoiceSettings tune synthesis behavior per request.
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
	Speed           float64 `json:"speed,omitempty"`
}

// TTSRequest is the body of a text-to-speech conversion.
type TTSRequest struct {
	Text          string         `json:"text"`
	ModelID       string         `json:"model_id,omitempty"`
	LanguageCode  string         `json:"language_code,omitempty"`
	VoiceSettings *VoiceSettings `json:"voice_settings,omitempty"`
}

// Word is one token of a transcription, carrying speaker attribution when
// diarization was requested.
type Word struct {
	Text      string `json:"text"`
	Type      string `json:"type"`
	SpeakerID string `json:"speaker_id"`
}

// Transcription is the result of a speech-to-text conversion.
type Transcription struct {
	Text         string `json:"text"`
	LanguageCode string `json:"language_code"`
	Words        []Word `json:"words"`
}

// Voice is the subset of voice metadata the transports surface.
type Voice struct {
	VoiceID     string            `json:"voice_id"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Description string            `json:"description"`
	Labels      map[string]string `json:"labels"`
}

// VoicesPage is a page of voice search results.
type VoicesPage struct {
	Voices []Voice `json:"voices"`
}

// VoicePreview is one generated voice preview from a text-to-voice design.
type VoicePreview struct {
	AudioBase64      string `json:"audio_base_64"`
	GeneratedVoiceID string `json:"generated_voice_id"`
	MediaType        string `json:"media_type"`
}

// VoicePreviews is the full text-to-voice design response.
type VoicePreviews struct {
	Previews []VoicePreview `json:"previews"`
	Text     string         `json:"text"`
}

// HistoryItem is one generated-audio record.
type HistoryItem struct {
	HistoryItemID string `json:"history_item_id"`
	VoiceName     string `json:"voice_name"`
	Text          string `json:"text"`
	DateUnix      int64  `json:"date_unix"`
	ContentType   string `json:"content_type"`
}

// HistoryPage is a page of history records.
type HistoryPage struct {
	History           []HistoryItem `json:"history"`
	HasMore           bool          `json:"has_more"`
	LastHistoryItemID string        `json:"last_history_item_id"`
}

// TranscriptEntry is one turn of an agent conversation.
type TranscriptEntry struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

// Conversation is an agent conversation with its transcript.
type Conversation struct {
	ConversationID string            `json:"conversation_id"`
	AgentID        string            `json:"agent_id"`
	Status         string            `json:"status"`
	Transcript     []TranscriptEntry `json:"transcript"`
}

// Agent is the subset of agent metadata the transports surface.
type Agent struct {
	AgentID string `json:"agent_id"`
	Name    string `json:"name"`
}
