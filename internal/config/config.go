// Package config loads process configuration from the environment.
//
// All values are read once at startup and passed explicitly into the
// pipeline. Nothing below this package reads environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// OutputMode selects how binary and text results are returned to callers.
type OutputMode string

const (
	// ModeFiles writes payloads under the base path and returns file paths.
	ModeFiles OutputMode = "files"
	// ModeResources returns payloads inline as elevenlabs:// resources.
	ModeResources OutputMode = "resources"
	// ModeBoth writes files and returns inline resources.
	ModeBoth OutputMode = "both"
)

// ParseOutputMode validates a mode string, defaulting empty input to files.
func ParseOutputMode(s string) (OutputMode, error) {
	switch OutputMode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return ModeFiles, nil
	case ModeFiles:
		return ModeFiles, nil
	case ModeResources:
		return ModeResources, nil
	case ModeBoth:
		return ModeBoth, nil
	default:
		return "", fmt.Errorf("output mode must be one of 'files', 'resources', 'both', got %q", s)
	}
}

// Config holds all settings consumed by the server processes.
type Config struct {
	// APIKey authenticates against the ElevenLabs API.
	APIKey string
	// BaseURL is the vendor endpoint, switched by data residency.
	BaseURL string
	// OutputMode is the process-wide output policy.
	OutputMode OutputMode
	// BasePath is the default directory for generated files.
	BasePath string
	// DefaultVoiceID is used when a call names no voice.
	DefaultVoiceID string

	// ServerKey guards the REST API (X-API-Key header). Empty disables auth.
	ServerKey string
	// Host and Port configure the HTTP listeners.
	Host string
	Port string
	// AllowedOrigins are Origin prefixes accepted by the SSE transport.
	AllowedOrigins []string
}

const (
	defaultVoiceID = "cgSgspJ2msm6clMCkdW9"
	defaultOrigins = "http://localhost,http://localhost:3000,http://127.0.0.1"
)

// Load builds a Config from the environment. A .env file in the working
// directory is merged in first, matching the original deployment setup.
func Load() (*Config, error) {
	godotenv.Load()

	apiKey := os.Getenv("ELEVENLABS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ELEVENLABS_API_KEY environment variable is required")
	}

	mode, err := ParseOutputMode(os.Getenv("ELEVENLABS_MCP_OUTPUT_MODE"))
	if err != nil {
		return nil, err
	}

	basePath := os.Getenv("ELEVENLABS_MCP_BASE_PATH")
	if basePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory for base path: %w", err)
		}
		basePath = filepath.Join(home, "Desktop")
	}

	voiceID := os.Getenv("ELEVENLABS_DEFAULT_VOICE_ID")
	if voiceID == "" {
		voiceID = defaultVoiceID
	}

	baseURL, err := ResidencyURL(os.Getenv("ELEVENLABS_API_RESIDENCY"))
	if err != nil {
		return nil, err
	}

	host := os.Getenv("HOST")
	if host == "" {
		host = "0.0.0.0"
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		origins = defaultOrigins
	}

	return &Config{
		APIKey:         apiKey,
		BaseURL:        baseURL,
		OutputMode:     mode,
		BasePath:       basePath,
		DefaultVoiceID: voiceID,
		ServerKey:      os.Getenv("API_KEY"),
		Host:           host,
		Port:           port,
		AllowedOrigins: splitOrigins(origins),
	}, nil
}

// ResidencyURL maps a data-residency location to the vendor base URL.
func ResidencyURL(location string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(location)) {
	case "", "us":
		return "https://api.elevenlabs.io", nil
	case "eu-residency":
		return "https://api.eu.residency.elevenlabs.io", nil
	case "in-residency":
		return "https://api.in.residency.elevenlabs.io", nil
	default:
		return "", fmt.Errorf("unknown API residency %q (expected us, eu-residency or in-residency)", location)
	}
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
