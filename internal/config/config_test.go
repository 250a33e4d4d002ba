package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutputMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    OutputMode
		wantErr bool
	}{
		{"empty defaults to files", "", ModeFiles, false},
		{"files", "files", ModeFiles, false},
		{"resources", "resources", ModeResources, false},
		{"both", "both", ModeBoth, false},
		{"mixed case and spaces", "  Resources ", ModeResources, false},
		{"invalid", "stream", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOutputMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResidencyURL(t *testing.T) {
	tests := []struct {
		location string
		want     string
		wantErr  bool
	}{
		{"", "https://api.elevenlabs.io", false},
		{"us", "https://api.elevenlabs.io", false},
		{"eu-residency", "https://api.eu.residency.elevenlabs.io", false},
		{"in-residency", "https://api.in.residency.elevenlabs.io", false},
		{"mars", "", true},
	}

	for _, tt := range tests {
		t.Run("location "+tt.location, func(t *testing.T) {
			got, err := ResidencyURL(tt.location)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("ELEVENLABS_API_KEY", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ELEVENLABS_API_KEY")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ELEVENLABS_API_KEY", "test-key")
	t.Setenv("ELEVENLABS_MCP_OUTPUT_MODE", "")
	t.Setenv("ELEVENLABS_MCP_BASE_PATH", t.TempDir())
	t.Setenv("ELEVENLABS_DEFAULT_VOICE_ID", "")
	t.Setenv("ELEVENLABS_API_RESIDENCY", "")
	t.Setenv("HOST", "")
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ModeFiles, cfg.OutputMode)
	assert.Equal(t, defaultVoiceID, cfg.DefaultVoiceID)
	assert.Equal(t, "https://api.elevenlabs.io", cfg.BaseURL)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, []string{"http://localhost", "http://localhost:3000", "http://127.0.0.1"}, cfg.AllowedOrigins)
}

func TestLoadCustomOrigins(t *testing.T) {
	t.Setenv("ELEVENLABS_API_KEY", "test-key")
	t.Setenv("ELEVENLABS_MCP_BASE_PATH", t.TempDir())
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
}
