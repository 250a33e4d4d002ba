package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopCall(ctx context.Context, args Args) (any, error) {
	return "ok", nil
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()

	r := New()
	r.Register(&Descriptor{
		ID:          "text_to_speech",
		ResultShape: ShapeBinaryAudio,
		CostClass:   CostMetered,
		FilePrefix:  "tts",
		FileExt:     "mp3",
		Params: []ParamSpec{
			{Name: "text", Type: TypeString, Required: true},
			{Name: "stability", Type: TypeNumber, Default: 0.5, Minimum: Ptr(0), Maximum: Ptr(1)},
			{Name: "speed", Type: TypeNumber, Default: 1.0, Minimum: Ptr(0.7), Maximum: Ptr(1.2)},
			{Name: "output_format", Type: TypeString, Default: "mp3_44100_128",
				Enum: []string{"mp3_44100_128", "pcm_44100", "ulaw_8000"}},
			{Name: "page_size", Type: TypeInteger, Minimum: Ptr(1), Maximum: Ptr(100)},
			{Name: "diarize", Type: TypeBoolean, Default: false},
		},
		Call: noopCall,
	})
	return r
}

func TestLookupUnknownOperation(t *testing.T) {
	r := testRegistry(t)

	_, err := r.Lookup("nonexistent_op")
	require.ErrorIs(t, err, ErrUnknownOperation)
	assert.Contains(t, err.Error(), "nonexistent_op")
}

func TestValidateAppliesDefaults(t *testing.T) {
	r := testRegistry(t)

	args, err := r.Validate("text_to_speech", map[string]any{"text": "Hello"})
	require.NoError(t, err)

	assert.Equal(t, "Hello", args.String("text"))
	assert.Equal(t, 0.5, args.Float("stability"))
	assert.Equal(t, 1.0, args.Float("speed"))
	assert.Equal(t, "mp3_44100_128", args.String("output_format"))
	assert.False(t, args.Bool("diarize"))
	assert.False(t, args.Has("page_size"))
}

func TestValidateErrors(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		name       string
		raw        map[string]any
		field      string
		constraint string
	}{
		{"missing required", map[string]any{}, "text", "required parameter is missing"},
		{"wrong type", map[string]any{"text": 42}, "text", "must be a string"},
		{"below minimum", map[string]any{"text": "x", "stability": -0.1}, "stability", "must be >= 0"},
		{"above maximum", map[string]any{"text": "x", "speed": 2.0}, "speed", "must be <= 1.2"},
		{"outside enum", map[string]any{"text": "x", "output_format": "ogg_vorbis"}, "output_format", "must be one of"},
		{"non-integer", map[string]any{"text": "x", "page_size": 1.5}, "page_size", "must be an integer"},
		{"bad boolean", map[string]any{"text": "x", "diarize": "yes"}, "diarize", "must be a boolean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Validate("text_to_speech", tt.raw)

			var perr *InvalidParameterError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.field, perr.Field)
			assert.Contains(t, perr.Constraint, tt.constraint)
		})
	}
}

func TestValidateIgnoresUnknownFields(t *testing.T) {
	r := testRegistry(t)

	args, err := r.Validate("text_to_speech", map[string]any{"text": "hi", "bogus": true})
	require.NoError(t, err)
	assert.False(t, args.Has("bogus"))
}

func TestValidateUnknownOperation(t *testing.T) {
	r := testRegistry(t)

	_, err := r.Validate("nope", map[string]any{})
	require.ErrorIs(t, err, ErrUnknownOperation)
}

func TestDescriptorsPreserveRegistrationOrder(t *testing.T) {
	r := New()
	for _, id := range []string{"c_op", "a_op", "b_op"} {
		r.Register(&Descriptor{ID: id, ResultShape: ShapeStructured, Call: noopCall})
	}

	var ids []string
	for _, d := range r.Descriptors() {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"c_op", "a_op", "b_op"}, ids)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := New()
	r.Register(&Descriptor{ID: "dup", ResultShape: ShapeStructured, Call: noopCall})
	assert.Panics(t, func() {
		r.Register(&Descriptor{ID: "dup", ResultShape: ShapeStructured, Call: noopCall})
	})
}

func TestSchemaGeneration(t *testing.T) {
	r := testRegistry(t)
	d, err := r.Lookup("text_to_speech")
	require.NoError(t, err)

	s := Schema(d)
	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{"text"}, s.Required)

	stability := s.Properties["stability"]
	require.NotNil(t, stability)
	assert.Equal(t, "number", stability.Type)
	assert.Equal(t, 0.0, *stability.Minimum)
	assert.Equal(t, 1.0, *stability.Maximum)

	format := s.Properties["output_format"]
	require.NotNil(t, format)
	assert.Len(t, format.Enum, 3)
}
