// Package catalog declares every vendor operation as a registry descriptor:
// its parameters, result shape, cost class, and the thunk that performs the
// vendor call. Construction happens once at process start.
package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/voxtool/mcp-elevenlabs/internal/elevenlabs"
	"github.com/voxtool/mcp-elevenlabs/internal/registry"
)

// outputFormats are the encodings the vendor can render audio in.
var outputFormats = []string{
	"mp3_22050_32",
	"mp3_44100_32",
	"mp3_44100_64",
	"mp3_44100_96",
	"mp3_44100_128",
	"mp3_44100_192",
	"pcm_8000",
	"pcm_16000",
	"pcm_22050",
	"pcm_24000",
	"pcm_44100",
	"ulaw_8000",
	"alaw_8000",
	"opus_48000_32",
	"opus_48000_64",
	"opus_48000_96",
	"opus_48000_128",
	"opus_48000_192",
}

// Catalog binds operation descriptors to a vendor client.
type Catalog struct {
	client         *elevenlabs.Client
	defaultVoiceID string
}

// New builds the full operation registry against client. defaultVoiceID is
// used by synthesis operations when the caller names no voice.
func New(client *elevenlabs.Client, defaultVoiceID string) *registry.Registry {
	c := &Catalog{client: client, defaultVoiceID: defaultVoiceID}
	r := registry.New()

	c.registerAudio(r)
	c.registerVoices(r)
	c.registerAgents(r)
	c.registerHistory(r)
	c.registerKnowledge(r)
	c.registerPronunciation(r)

	return r
}

// resolveVoiceID picks the effective voice for a synthesis call. voice_id
// wins over voice_name; naming both is rejected. A voice_name is resolved
// through voice search and must match exactly one result by name.
func (c *Catalog) resolveVoiceID(ctx context.Context, op string, args registry.Args) (string, error) {
	hasID := args.Has("voice_id")
	hasName := args.Has("voice_name")
	if hasID && hasName {
		return "", &registry.InvalidParameterError{
			Op: op, Field: "voice_name",
			Constraint: "provide voice_id or voice_name, not both",
		}
	}
	if hasID {
		return args.String("voice_id"), nil
	}
	if !hasName {
		return c.defaultVoiceID, nil
	}

	name := args.String("voice_name")
	page, err := c.client.SearchVoices(ctx, name, "name")
	if err != nil {
		return "", err
	}
	for _, v := range page.Voices {
		if v.Name == name {
			return v.VoiceID, nil
		}
	}
	return "", &registry.InvalidParameterError{
		Op: op, Field: "voice_name",
		Constraint: fmt.Sprintf("no voice named %q", name),
	}
}

// readInputFile loads a caller-supplied audio file. The path must be
// absolute so relative lookups never depend on the server's working
// directory.
func readInputFile(op, path string) (string, []byte, error) {
	if !filepath.IsAbs(path) {
		return "", nil, &registry.InvalidParameterError{
			Op: op, Field: "input_file_path",
			Constraint: "must be an absolute path",
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, &registry.InvalidParameterError{
			Op: op, Field: "input_file_path",
			Constraint: fmt.Sprintf("unreadable: %v", err),
		}
	}
	return filepath.Base(path), data, nil
}

func unit() (*float64, *float64) {
	return registry.Ptr(0), registry.Ptr(1)
}
