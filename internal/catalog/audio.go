package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/voxtool/mcp-elevenlabs/internal/elevenlabs"
	"github.com/voxtool/mcp-elevenlabs/internal/registry"
)

func outputFormatParam() registry.ParamSpec {
	return registry.ParamSpec{
		Name:        "output_format",
		Description: "Audio encoding and bitrate",
		Type:        registry.TypeString,
		Default:     "mp3_44100_128",
		Enum:        outputFormats,
	}
}

func outputDirectoryParam() registry.ParamSpec {
	return registry.ParamSpec{
		Name:        "output_directory",
		Description: "Directory to save output in, relative to the base path",
		Type:        registry.TypeString,
	}
}

func (c *Catalog) registerAudio(r *registry.Registry) {
	min0, max1 := unit()

	r.Register(&registry.Descriptor{
		ID:          "text_to_speech",
		Description: "Convert text to speech with a given voice",
		ResultShape: registry.ShapeBinaryAudio,
		CostClass:   registry.CostMetered,
		FilePrefix:  "tts",
		FileExt:     "mp3",
		Params: []registry.ParamSpec{
			{Name: "text", Description: "The text to convert to speech", Type: registry.TypeString, Required: true},
			{Name: "voice_id", Description: "Voice ID to use", Type: registry.TypeString},
			{Name: "voice_name", Description: "Voice name to use, resolved via search", Type: registry.TypeString},
			{Name: "model_id", Description: "Synthesis model", Type: registry.TypeString, Default: "eleven_multilingual_v2"},
			{Name: "language", Description: "ISO 639-1 language code", Type: registry.TypeString},
			{Name: "stability", Description: "Voice stability", Type: registry.TypeNumber, Default: 0.5, Minimum: min0, Maximum: max1},
			{Name: "similarity_boost", Description: "Similarity to the original voice", Type: registry.TypeNumber, Default: 0.75, Minimum: min0, Maximum: max1},
			{Name: "style", Description: "Style exaggeration", Type: registry.TypeNumber, Default: 0.0, Minimum: min0, Maximum: max1},
			{Name: "use_speaker_boost", Description: "Boost speaker similarity", Type: registry.TypeBoolean, Default: true},
			{Name: "speed", Description: "Speech speed multiplier", Type: registry.TypeNumber, Default: 1.0, Minimum: registry.Ptr(0.7), Maximum: registry.Ptr(1.2)},
			outputFormatParam(),
			outputDirectoryParam(),
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			voiceID, err := c.resolveVoiceID(ctx, "text_to_speech", args)
			if err != nil {
				return nil, err
			}
			req := elevenlabs.TTSRequest{
				Text:         args.String("text"),
				ModelID:      args.String("model_id"),
				LanguageCode: args.String("language"),
				VoiceSettings: &elevenlabs.VoiceSettings{
					Stability:       args.Float("stability"),
					SimilarityBoost: args.Float("similarity_boost"),
					Style:           args.Float("style"),
					UseSpeakerBoost: args.Bool("use_speaker_boost"),
					Speed:           args.Float("speed"),
				},
			}
			return c.client.TextToSpeech(ctx, voiceID, args.String("output_format"), req)
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "text_to_sound_effects",
		Description: "Generate a sound effect from a text description",
		ResultShape: registry.ShapeBinaryAudio,
		CostClass:   registry.CostMetered,
		FilePrefix:  "sfx",
		FileExt:     "mp3",
		Params: []registry.ParamSpec{
			{Name: "text", Description: "Description of the sound effect", Type: registry.TypeString, Required: true},
			{Name: "duration_seconds", Description: "Length of the effect", Type: registry.TypeNumber, Default: 2.0, Minimum: registry.Ptr(0.5), Maximum: registry.Ptr(22)},
			{Name: "loop", Description: "Generate a seamless loop", Type: registry.TypeBoolean, Default: false},
			outputFormatParam(),
			outputDirectoryParam(),
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.SoundEffects(ctx,
				args.String("text"), args.Float("duration_seconds"),
				args.Bool("loop"), args.String("output_format"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "speech_to_speech",
		Description: "Transform audio from one voice to another",
		ResultShape: registry.ShapeBinaryAudio,
		CostClass:   registry.CostMetered,
		FilePrefix:  "sts",
		FileExt:     "mp3",
		Params: []registry.ParamSpec{
			{Name: "input_file_path", Description: "Absolute path of the source audio file", Type: registry.TypeString, Required: true},
			{Name: "voice_id", Description: "Target voice ID", Type: registry.TypeString},
			{Name: "voice_name", Description: "Target voice name", Type: registry.TypeString},
			outputDirectoryParam(),
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			voiceID, err := c.resolveVoiceID(ctx, "speech_to_speech", args)
			if err != nil {
				return nil, err
			}
			name, data, err := readInputFile("speech_to_speech", args.String("input_file_path"))
			if err != nil {
				return nil, err
			}
			return c.client.SpeechToSpeech(ctx, voiceID, name, data)
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "isolate_audio",
		Description: "Remove background noise, keeping only speech",
		ResultShape: registry.ShapeBinaryAudio,
		CostClass:   registry.CostMetered,
		FilePrefix:  "iso",
		FileExt:     "mp3",
		Params: []registry.ParamSpec{
			{Name: "input_file_path", Description: "Absolute path of the source audio file", Type: registry.TypeString, Required: true},
			outputDirectoryParam(),
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			name, data, err := readInputFile("isolate_audio", args.String("input_file_path"))
			if err != nil {
				return nil, err
			}
			return c.client.AudioIsolation(ctx, name, data)
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "compose_music",
		Description: "Compose a music track from a text prompt",
		ResultShape: registry.ShapeBinaryAudio,
		CostClass:   registry.CostMetered,
		FilePrefix:  "music",
		FileExt:     "mp3",
		Params: []registry.ParamSpec{
			{Name: "prompt", Description: "Description of the music to compose", Type: registry.TypeString, Required: true},
			{Name: "music_length_ms", Description: "Track length in milliseconds", Type: registry.TypeInteger, Default: 10000, Minimum: registry.Ptr(10000), Maximum: registry.Ptr(300000)},
			outputDirectoryParam(),
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.ComposeMusic(ctx, args.String("prompt"), args.Int("music_length_ms"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "speech_to_text",
		Description: "Transcribe speech from an audio file",
		ResultShape: registry.ShapeText,
		CostClass:   registry.CostMetered,
		FilePrefix:  "stt",
		FileExt:     "txt",
		Params: []registry.ParamSpec{
			{Name: "input_file_path", Description: "Absolute path of the audio file to transcribe", Type: registry.TypeString, Required: true},
			{Name: "language_code", Description: "ISO 639-3 language code", Type: registry.TypeString, Default: "eng"},
			{Name: "diarize", Description: "Annotate the transcript with speaker turns", Type: registry.TypeBoolean, Default: false},
			outputDirectoryParam(),
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			name, data, err := readInputFile("speech_to_text", args.String("input_file_path"))
			if err != nil {
				return nil, err
			}
			diarize := args.Bool("diarize")
			tr, err := c.client.SpeechToText(ctx, name, data, args.String("language_code"), diarize)
			if err != nil {
				return nil, err
			}
			if diarize {
				return diarizedTranscript(tr), nil
			}
			return tr.Text, nil
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "get_history_item_audio",
		Description: "Download the audio of a generation history item",
		ResultShape: registry.ShapeBinaryAudio,
		CostClass:   registry.CostFree,
		FilePrefix:  "history",
		FileExt:     "mp3",
		Params: []registry.ParamSpec{
			{Name: "history_item_id", Description: "History item ID", Type: registry.TypeString, Required: true},
			outputDirectoryParam(),
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.HistoryItemAudio(ctx, args.String("history_item_id"))
		},
	})

	r.Register(&registry.Descriptor{
		ID:          "get_conversation_audio",
		Description: "Download the audio recording of an agent conversation",
		ResultShape: registry.ShapeBinaryAudio,
		CostClass:   registry.CostFree,
		FilePrefix:  "conversation",
		FileExt:     "mp3",
		Params: []registry.ParamSpec{
			{Name: "conversation_id", Description: "Conversation ID", Type: registry.TypeString, Required: true},
			outputDirectoryParam(),
		},
		Call: func(ctx context.Context, args registry.Args) (any, error) {
			return c.client.ConversationAudio(ctx, args.String("conversation_id"))
		},
	})
}

// diarizedTranscript groups consecutive words by speaker into labelled lines.
func diarizedTranscript(tr *elevenlabs.Transcription) string {
	var (
		b       strings.Builder
		speaker string
	)
	for _, w := range tr.Words {
		if w.Type != "word" && w.Type != "spacing" {
			continue
		}
		if w.Type == "word" && w.SpeakerID != speaker {
			if speaker != "" {
				b.WriteString("\n")
			}
			speaker = w.SpeakerID
			fmt.Fprintf(&b, "[%s] ", speaker)
		}
		b.WriteString(w.Text)
	}
	return b.String()
}
