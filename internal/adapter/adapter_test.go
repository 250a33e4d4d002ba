package adapter

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxtool/mcp-elevenlabs/internal/registry"
)

// stubVendor records calls and returns a canned result.
type stubVendor struct {
	calls  int
	result any
	err    error
}

func (s *stubVendor) call(ctx context.Context, args registry.Args) (any, error) {
	s.calls++
	return s.result, s.err
}

func newTestAdapter(t *testing.T, shape registry.Shape, vendor *stubVendor) *Adapter {
	t.Helper()

	r := registry.New()
	r.Register(&registry.Descriptor{
		ID:          "test_op",
		ResultShape: shape,
		FilePrefix:  "tts",
		FileExt:     "mp3",
		Params: []registry.ParamSpec{
			{Name: "text", Type: registry.TypeString, Required: true},
			{Name: "output_format", Type: registry.TypeString, Default: "mp3_44100_128"},
		},
		Call: vendor.call,
	})
	return New(r)
}

func TestUnknownOperationSkipsVendorCall(t *testing.T) {
	vendor := &stubVendor{result: []byte("audio")}
	a := newTestAdapter(t, registry.ShapeBinaryAudio, vendor)

	_, err := a.Invoke(context.Background(), "nonexistent_op", map[string]any{})

	require.ErrorIs(t, err, registry.ErrUnknownOperation)
	assert.Zero(t, vendor.calls, "vendor must not be called for unknown operations")
}

func TestInvalidParameterSkipsVendorCall(t *testing.T) {
	vendor := &stubVendor{result: []byte("audio")}
	a := newTestAdapter(t, registry.ShapeBinaryAudio, vendor)

	_, err := a.Invoke(context.Background(), "test_op", map[string]any{})

	var perr *registry.InvalidParameterError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "text", perr.Field)
	assert.Zero(t, vendor.calls)
}

func TestBinaryAudioEnvelope(t *testing.T) {
	vendor := &stubVendor{result: []byte("nine-byte")}
	a := newTestAdapter(t, registry.ShapeBinaryAudio, vendor)

	envs, err := a.Invoke(context.Background(), "test_op", map[string]any{"text": "Hello"})

	require.NoError(t, err)
	require.Len(t, envs, 1)
	assert.Equal(t, 1, vendor.calls)
	assert.Equal(t, []byte("nine-byte"), envs[0].Payload)
	assert.Equal(t, "audio/mpeg", envs[0].Mime)
	assert.True(t, strings.HasPrefix(envs[0].Filename, "tts_"))
	assert.True(t, strings.HasSuffix(envs[0].Filename, ".mp3"))
	assert.True(t, envs[0].Binary())
}

func TestTextEnvelope(t *testing.T) {
	vendor := &stubVendor{result: "a transcript"}
	a := newTestAdapter(t, registry.ShapeText, vendor)

	envs, err := a.Invoke(context.Background(), "test_op", map[string]any{"text": "x"})

	require.NoError(t, err)
	require.Len(t, envs, 1)
	assert.Equal(t, "a transcript", envs[0].Payload)
	assert.Equal(t, "text/plain", envs[0].Mime)
	assert.True(t, strings.HasSuffix(envs[0].Filename, ".txt"))
	assert.False(t, envs[0].Binary())
}

func TestStructuredEnvelope(t *testing.T) {
	vendor := &stubVendor{result: map[string]any{"voice_id": "v1"}}
	a := newTestAdapter(t, registry.ShapeStructured, vendor)

	envs, err := a.Invoke(context.Background(), "test_op", map[string]any{"text": "x"})

	require.NoError(t, err)
	require.Len(t, envs, 1)
	assert.Equal(t, registry.ShapeStructured, envs[0].Shape)
	assert.Empty(t, envs[0].Filename)
	assert.Empty(t, envs[0].Mime)
}

func TestResourceListPreservesOrder(t *testing.T) {
	vendor := &stubVendor{result: []registry.ListItem{
		{Name: "first.mp3", Data: []byte("one"), Mime: "audio/mpeg"},
		{Name: "second.mp3", Data: []byte("two"), Mime: "audio/mpeg"},
		{Name: "third.txt", Data: []byte("three"), Mime: "text/plain"},
	}}
	a := newTestAdapter(t, registry.ShapeResourceList, vendor)

	envs, err := a.Invoke(context.Background(), "test_op", map[string]any{"text": "x"})

	require.NoError(t, err)
	require.Len(t, envs, 3)
	assert.Equal(t, []byte("one"), envs[0].Payload)
	assert.Equal(t, []byte("two"), envs[1].Payload)
	assert.Equal(t, "three", envs[2].Payload, "text items stay UTF-8 strings")
	assert.True(t, strings.HasPrefix(envs[0].Filename, "first_"))
	assert.True(t, strings.HasSuffix(envs[2].Filename, ".txt"))
}

func TestShapeMismatch(t *testing.T) {
	tests := []struct {
		name   string
		shape  registry.Shape
		result any
	}{
		{"json instead of binary", registry.ShapeBinaryAudio, map[string]any{"oops": true}},
		{"binary instead of structured", registry.ShapeStructured, []byte("raw")},
		{"nil structured", registry.ShapeStructured, nil},
		{"binary instead of text", registry.ShapeText, []byte("raw")},
		{"single item instead of list", registry.ShapeResourceList, []byte("raw")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vendor := &stubVendor{result: tt.result}
			a := newTestAdapter(t, tt.shape, vendor)

			_, err := a.Invoke(context.Background(), "test_op", map[string]any{"text": "x"})

			var serr *ShapeMismatchError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, "test_op", serr.Op)
			assert.Equal(t, tt.shape, serr.Shape)
		})
	}
}

func TestVendorErrorPropagates(t *testing.T) {
	vendor := &stubVendor{err: assert.AnError}
	a := newTestAdapter(t, registry.ShapeBinaryAudio, vendor)

	_, err := a.Invoke(context.Background(), "test_op", map[string]any{"text": "x"})
	require.ErrorIs(t, err, assert.AnError)
}

func TestGenerateFilenameFormat(t *testing.T) {
	name := generateFilename("sfx", "mp3", []byte("audio"))

	parts := strings.Split(strings.TrimSuffix(name, ".mp3"), "_")
	require.Len(t, parts, 3)
	assert.Equal(t, "sfx", parts[0])
	assert.Len(t, parts[2], 8)
}

func TestGenerateFilenameNeverCollides(t *testing.T) {
	// Back-to-back calls land in the same millisecond with identical
	// payloads; filenames must still be distinct.
	seen := make(map[string]bool)
	for range 100 {
		name := generateFilename("tts", "mp3", []byte("same bytes"))
		assert.False(t, seen[name], name)
		seen[name] = true
	}
}

func TestRepeatedInvocationsGetDistinctFilenames(t *testing.T) {
	vendor := &stubVendor{result: []byte("identical audio")}
	a := newTestAdapter(t, registry.ShapeBinaryAudio, vendor)

	first, err := a.Invoke(context.Background(), "test_op", map[string]any{"text": "x"})
	require.NoError(t, err)
	second, err := a.Invoke(context.Background(), "test_op", map[string]any{"text": "x"})
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.NotEqual(t, first[0].Filename, second[0].Filename)
}

func TestFileTypeFromFormat(t *testing.T) {
	d := &registry.Descriptor{ResultShape: registry.ShapeBinaryAudio, FileExt: "mp3"}

	tests := []struct {
		format string
		ext    string
		mime   string
	}{
		{"", "mp3", "audio/mpeg"},
		{"mp3_22050_32", "mp3", "audio/mpeg"},
		{"pcm_44100", "wav", "audio/wav"},
		{"opus_48000_64", "opus", "audio/ogg"},
		{"ulaw_8000", "wav", "audio/basic"},
	}

	for _, tt := range tests {
		args := registry.Args{}
		if tt.format != "" {
			args["output_format"] = tt.format
		}
		ext, mime := fileType(d, args)
		assert.Equal(t, tt.ext, ext, tt.format)
		assert.Equal(t, tt.mime, mime, tt.format)
	}
}
