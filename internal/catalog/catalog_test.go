package catalog

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxtool/mcp-elevenlabs/internal/elevenlabs"
	"github.com/voxtool/mcp-elevenlabs/internal/registry"
)

const testDefaultVoice = "cgSgspJ2msm6clMCkdW9"

func newTestCatalog(t *testing.T, handler http.Handler) *registry.Registry {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(elevenlabs.New("test-key", srv.URL), testDefaultVoice)
}

// call validates raw args and runs the operation's thunk, the way the
// adapter does.
func call(t *testing.T, reg *registry.Registry, id string, raw map[string]any) (any, error) {
	t.Helper()
	d, err := reg.Lookup(id)
	require.NoError(t, err)
	args, err := reg.Validate(id, raw)
	if err != nil {
		return nil, err
	}
	return d.Call(context.Background(), args)
}

func TestAllOperationsRegistered(t *testing.T) {
	reg := New(elevenlabs.New("k", "http://unused"), testDefaultVoice)

	want := map[string]registry.Shape{
		"text_to_speech":              registry.ShapeBinaryAudio,
		"text_to_sound_effects":       registry.ShapeBinaryAudio,
		"speech_to_speech":            registry.ShapeBinaryAudio,
		"isolate_audio":               registry.ShapeBinaryAudio,
		"compose_music":               registry.ShapeBinaryAudio,
		"speech_to_text":              registry.ShapeText,
		"get_conversation":            registry.ShapeText,
		"text_to_voice":               registry.ShapeResourceList,
		"download_history_items":      registry.ShapeResourceList,
		"get_history_item_audio":      registry.ShapeBinaryAudio,
		"get_conversation_audio":      registry.ShapeBinaryAudio,
		"voice_clone":                 registry.ShapeStructured,
		"create_voice_from_preview":   registry.ShapeStructured,
		"search_voices":               registry.ShapeStructured,
		"search_voice_library":        registry.ShapeStructured,
		"get_voice":                   registry.ShapeStructured,
		"delete_voice":                registry.ShapeStructured,
		"get_voice_settings":          registry.ShapeStructured,
		"get_default_voice_settings":  registry.ShapeStructured,
		"list_models":                 registry.ShapeStructured,
		"check_subscription":          registry.ShapeStructured,
		"get_user_info":               registry.ShapeStructured,
		"create_agent":                registry.ShapeStructured,
		"list_agents":                 registry.ShapeStructured,
		"get_agent":                   registry.ShapeStructured,
		"duplicate_agent":             registry.ShapeStructured,
		"get_agent_link":              registry.ShapeStructured,
		"list_conversations":          registry.ShapeStructured,
		"delete_conversation":         registry.ShapeStructured,
		"list_phone_numbers":          registry.ShapeStructured,
		"make_outbound_call":          registry.ShapeStructured,
		"get_history":                 registry.ShapeStructured,
		"get_history_item":            registry.ShapeStructured,
		"delete_history_item":         registry.ShapeStructured,

		"list_knowledge_base_documents":   registry.ShapeStructured,
		"get_knowledge_base_document":     registry.ShapeStructured,
		"create_knowledge_base_from_url":  registry.ShapeStructured,
		"create_knowledge_base_from_text": registry.ShapeStructured,
		"create_knowledge_base_from_file": registry.ShapeStructured,
		"update_knowledge_base_document":  registry.ShapeStructured,
		"delete_knowledge_base_document":  registry.ShapeStructured,
		"get_document_content":            registry.ShapeText,
		"get_document_chunk":              registry.ShapeStructured,
		"get_document_dependent_agents":   registry.ShapeStructured,
		"get_knowledge_base_size":         registry.ShapeStructured,
		"compute_rag_index":               registry.ShapeStructured,
		"get_rag_index":                   registry.ShapeStructured,
		"get_rag_index_overview":          registry.ShapeStructured,
		"delete_rag_index":                registry.ShapeStructured,

		"list_pronunciation_dictionaries":            registry.ShapeStructured,
		"get_pronunciation_dictionary":               registry.ShapeStructured,
		"create_pronunciation_dictionary_from_rules": registry.ShapeStructured,
		"add_pronunciation_rules":                    registry.ShapeStructured,
		"remove_pronunciation_rules":                 registry.ShapeStructured,
	}
	assert.Equal(t, len(want), reg.Len())

	for id, shape := range want {
		d, err := reg.Lookup(id)
		require.NoError(t, err, id)
		assert.Equal(t, shape, d.ResultShape, id)
		assert.NotEmpty(t, d.Description, id)
		assert.NotEmpty(t, d.CostClass, id)
		assert.NotNil(t, d.Call, id)
	}
}

func TestFileShapedOperationsCarryPrefixes(t *testing.T) {
	reg := New(elevenlabs.New("k", "http://unused"), testDefaultVoice)

	for _, d := range reg.Descriptors() {
		switch d.ResultShape {
		case registry.ShapeBinaryAudio, registry.ShapeText, registry.ShapeResourceList:
			assert.NotEmpty(t, d.FilePrefix, d.ID)
			assert.NotEmpty(t, d.FileExt, d.ID)
		case registry.ShapeStructured:
			assert.Empty(t, d.FilePrefix, d.ID)
		}
	}
}

func TestTextToSpeechDefaults(t *testing.T) {
	var gotPath, gotFormat string
	var gotBody elevenlabs.TTSRequest

	reg := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFormat = r.URL.Query().Get("output_format")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte("audio-bytes"))
	}))

	result, err := call(t, reg, "text_to_speech", map[string]any{"text": "hello"})

	require.NoError(t, err)
	assert.Equal(t, []byte("audio-bytes"), result)
	assert.Equal(t, "/v1/text-to-speech/"+testDefaultVoice, gotPath)
	assert.Equal(t, "mp3_44100_128", gotFormat)
	assert.Equal(t, "hello", gotBody.Text)
	assert.Equal(t, "eleven_multilingual_v2", gotBody.ModelID)
	require.NotNil(t, gotBody.VoiceSettings)
	assert.Equal(t, 0.5, gotBody.VoiceSettings.Stability)
	assert.Equal(t, 0.75, gotBody.VoiceSettings.SimilarityBoost)
	assert.True(t, gotBody.VoiceSettings.UseSpeakerBoost)
	assert.Equal(t, 1.0, gotBody.VoiceSettings.Speed)
}

func TestTextToSpeechVoiceNameLookup(t *testing.T) {
	reg := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/voices":
			assert.Equal(t, "Brian", r.URL.Query().Get("search"))
			json.NewEncoder(w).Encode(map[string]any{"voices": []map[string]any{
				{"voice_id": "brian-id", "name": "Brian"},
			}})
		case "/v1/text-to-speech/brian-id":
			w.Write([]byte("audio"))
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
		}
	}))

	result, err := call(t, reg, "text_to_speech", map[string]any{
		"text": "hi", "voice_name": "Brian",
	})

	require.NoError(t, err)
	assert.Equal(t, []byte("audio"), result)
}

func TestTextToSpeechRejectsVoiceIDAndName(t *testing.T) {
	reg := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no vendor call may happen")
	}))

	_, err := call(t, reg, "text_to_speech", map[string]any{
		"text": "hi", "voice_id": "a", "voice_name": "b",
	})

	var perr *registry.InvalidParameterError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "voice_name", perr.Field)
}

func TestTextToSpeechUnknownVoiceName(t *testing.T) {
	reg := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"voices": []map[string]any{}})
	}))

	_, err := call(t, reg, "text_to_speech", map[string]any{
		"text": "hi", "voice_name": "Nobody",
	})

	var perr *registry.InvalidParameterError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "Nobody")
}

func TestSpeedOutOfRangeRejected(t *testing.T) {
	reg := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no vendor call may happen")
	}))

	_, err := call(t, reg, "text_to_speech", map[string]any{
		"text": "hi", "speed": 2.0,
	})

	var perr *registry.InvalidParameterError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "speed", perr.Field)
}

func TestInputFileMustBeAbsolute(t *testing.T) {
	reg := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no vendor call may happen")
	}))

	_, err := call(t, reg, "isolate_audio", map[string]any{
		"input_file_path": "relative/clip.mp3",
	})

	var perr *registry.InvalidParameterError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "input_file_path", perr.Field)
}

func TestInputFileMissing(t *testing.T) {
	reg := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no vendor call may happen")
	}))

	_, err := call(t, reg, "speech_to_text", map[string]any{
		"input_file_path": filepath.Join(t.TempDir(), "absent.mp3"),
	})

	var perr *registry.InvalidParameterError
	require.ErrorAs(t, err, &perr)
}

func TestSpeechToTextPlain(t *testing.T) {
	clip := filepath.Join(t.TempDir(), "clip.mp3")
	require.NoError(t, os.WriteFile(clip, []byte("fake-audio"), 0o644))

	reg := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/speech-to-text", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"text": "hello world"})
	}))

	result, err := call(t, reg, "speech_to_text", map[string]any{"input_file_path": clip})

	require.NoError(t, err)
	assert.Equal(t, "hello world", result)
}

func TestDiarizedTranscript(t *testing.T) {
	tr := &elevenlabs.Transcription{Words: []elevenlabs.Word{
		{Text: "hello", Type: "word", SpeakerID: "speaker_0"},
		{Text: " ", Type: "spacing"},
		{Text: "there", Type: "word", SpeakerID: "speaker_0"},
		{Text: "hi", Type: "word", SpeakerID: "speaker_1"},
	}}

	got := diarizedTranscript(tr)

	assert.Equal(t, "[speaker_0] hello there\n[speaker_1] hi", got)
}

func TestTextToVoicePreviewOrder(t *testing.T) {
	reg := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-voice/create-previews", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"previews": []map[string]any{
			{"audio_base_64": base64.StdEncoding.EncodeToString([]byte("first")), "generated_voice_id": "gv1", "media_type": "audio/mpeg"},
			{"audio_base_64": base64.StdEncoding.EncodeToString([]byte("second")), "generated_voice_id": "gv2"},
		}})
	}))

	result, err := call(t, reg, "text_to_voice", map[string]any{"voice_description": "warm narrator"})

	require.NoError(t, err)
	items, ok := result.([]registry.ListItem)
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.Equal(t, "gv1", items[0].Name)
	assert.Equal(t, []byte("first"), items[0].Data)
	assert.Equal(t, "gv2", items[1].Name)
	assert.Equal(t, "audio/mpeg", items[1].Mime, "media type defaults to mpeg")
}

func TestDownloadHistoryItems(t *testing.T) {
	reg := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/history":
			json.NewEncoder(w).Encode(map[string]any{"history": []map[string]any{
				{"history_item_id": "h1", "content_type": "audio/mpeg"},
				{"history_item_id": "h2"},
			}})
		case "/v1/history/h1/audio":
			w.Write([]byte("one"))
		case "/v1/history/h2/audio":
			w.Write([]byte("two"))
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
		}
	}))

	result, err := call(t, reg, "download_history_items", map[string]any{"page_size": 2})

	require.NoError(t, err)
	items, ok := result.([]registry.ListItem)
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.Equal(t, []byte("one"), items[0].Data)
	assert.Equal(t, []byte("two"), items[1].Data)
}

func TestDeleteOperationsReturnStatus(t *testing.T) {
	reg := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.Write([]byte("{}"))
	}))

	tests := []struct {
		op   string
		args map[string]any
		key  string
	}{
		{"delete_voice", map[string]any{"voice_id": "v1"}, "voice_id"},
		{"delete_history_item", map[string]any{"history_item_id": "h1"}, "history_item_id"},
		{"delete_conversation", map[string]any{"conversation_id": "c1"}, "conversation_id"},
	}
	for _, tt := range tests {
		result, err := call(t, reg, tt.op, tt.args)
		require.NoError(t, err, tt.op)
		m, ok := result.(map[string]any)
		require.True(t, ok, tt.op)
		assert.Equal(t, "deleted", m["status"], tt.op)
		assert.NotEmpty(t, m[tt.key], tt.op)
	}
}

func TestGetConversationTranscript(t *testing.T) {
	reg := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"conversation_id": "c1",
			"agent_id":        "a1",
			"status":          "done",
			"transcript": []map[string]any{
				{"role": "agent", "message": "hello"},
				{"role": "user", "message": "hi"},
			},
		})
	}))

	result, err := call(t, reg, "get_conversation", map[string]any{"conversation_id": "c1"})

	require.NoError(t, err)
	text, ok := result.(string)
	require.True(t, ok)
	assert.Contains(t, text, "Conversation c1 (agent a1, status done)")
	assert.Contains(t, text, "agent: hello")
	assert.Contains(t, text, "user: hi")
}

func TestVendorErrorPropagates(t *testing.T) {
	reg := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "invalid api key"}`))
	}))

	_, err := call(t, reg, "list_models", nil)

	var verr *elevenlabs.VendorError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, http.StatusUnauthorized, verr.StatusCode)
}

func TestComposeMusicLengthBounds(t *testing.T) {
	reg := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no vendor call may happen")
	}))

	_, err := call(t, reg, "compose_music", map[string]any{
		"prompt": "calm piano", "music_length_ms": 5000,
	})

	var perr *registry.InvalidParameterError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "music_length_ms", perr.Field)
}

func TestCreateKnowledgeBaseFromText(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	reg := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{"id": "doc1", "name": "Notes"})
	}))

	result, err := call(t, reg, "create_knowledge_base_from_text", map[string]any{
		"name": "Notes", "text": "some facts",
	})

	require.NoError(t, err)
	assert.Equal(t, "/v1/convai/knowledge-base/text", gotPath)
	assert.Equal(t, "some facts", gotBody["text"])
	m, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "doc1", m["id"])
}

func TestCreateKnowledgeBaseFromFileUploads(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "guide.txt")
	require.NoError(t, os.WriteFile(doc, []byte("contents"), 0o644))

	var gotPath string
	reg := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		f.Close()
		assert.Equal(t, "guide.txt", hdr.Filename)
		json.NewEncoder(w).Encode(map[string]any{"id": "doc2"})
	}))

	_, err := call(t, reg, "create_knowledge_base_from_file", map[string]any{
		"input_file_path": doc,
	})

	require.NoError(t, err)
	assert.Equal(t, "/v1/convai/knowledge-base/file", gotPath)
}

func TestDocumentContentIsText(t *testing.T) {
	reg := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/convai/knowledge-base/doc1/content", r.URL.Path)
		w.Write([]byte("extracted text"))
	}))

	result, err := call(t, reg, "get_document_content", map[string]any{"document_id": "doc1"})

	require.NoError(t, err)
	assert.Equal(t, "extracted text", result)
}

func TestComputeRAGIndexRejectsUnknownModel(t *testing.T) {
	reg := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no vendor call may happen")
	}))

	_, err := call(t, reg, "compute_rag_index", map[string]any{
		"document_id": "doc1", "model": "word2vec",
	})

	var perr *registry.InvalidParameterError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "model", perr.Field)
}

func TestPronunciationRulesRoundTrip(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	reg := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{"id": "dict1", "name": "Names"})
	}))

	_, err := call(t, reg, "create_pronunciation_dictionary_from_rules", map[string]any{
		"name":  "Names",
		"rules": `[{"string_to_replace":"eleven","type":"alias","alias":"11"}]`,
	})

	require.NoError(t, err)
	assert.Equal(t, "/v1/pronunciation-dictionaries/add-from-rules", gotPath)
	rules, ok := gotBody["rules"].([]any)
	require.True(t, ok)
	require.Len(t, rules, 1)
}

func TestPronunciationRulesMalformedJSON(t *testing.T) {
	reg := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no vendor call may happen")
	}))

	_, err := call(t, reg, "add_pronunciation_rules", map[string]any{
		"dictionary_id": "dict1", "rules": "not json",
	})

	var perr *registry.InvalidParameterError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "rules", perr.Field)
}
