// Package resolver turns Output Envelopes into caller-visible responses.
//
// The Resolver applies the process-wide output mode: write payloads under a
// base directory, inline them as elevenlabs:// resources, or both. All
// filesystem and resource-registry mutations of the pipeline happen here and
// nowhere else.
package resolver

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/voxtool/mcp-elevenlabs/internal/adapter"
	"github.com/voxtool/mcp-elevenlabs/internal/config"
	"github.com/voxtool/mcp-elevenlabs/internal/registry"
)

// Scheme is the URI scheme under which inline resources are addressable.
const Scheme = "elevenlabs://"

// Result is the mode-resolved response for one envelope.
type Result struct {
	Shape registry.Shape
	// Path is the absolute file path, set in files and both modes.
	Path string
	// URI is the resource address, set in resources and both modes.
	URI string
	// Mime is the payload MIME type for file-like results.
	Mime string
	// InlinePayload carries the payload in resources and both modes:
	// base64 for binary payloads, plain UTF-8 for text.
	InlinePayload string
	// Structured is the pass-through value for structured results.
	Structured any
}

// Resolver applies output-mode policy to envelopes.
type Resolver struct {
	basePath  string
	resources *ResourceRegistry
}

// New creates a Resolver rooted at basePath. resources may be nil when the
// process never runs in resources or both mode.
func New(basePath string, resources *ResourceRegistry) *Resolver {
	return &Resolver{basePath: basePath, resources: resources}
}

// Resources returns the resolver's resource registry.
func (r *Resolver) Resources() *ResourceRegistry {
	return r.resources
}

// Resolve applies the output mode to each envelope in order. destHint
// overrides the base directory for file writes; empty means the base path.
func (r *Resolver) Resolve(ctx context.Context, envs []adapter.Envelope, mode config.OutputMode, destHint string) ([]Result, error) {
	out := make([]Result, 0, len(envs))
	for i := range envs {
		res, err := r.resolveOne(ctx, &envs[i], mode, destHint)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

func (r *Resolver) resolveOne(ctx context.Context, env *adapter.Envelope, mode config.OutputMode, destHint string) (Result, error) {
	if env.Shape == registry.ShapeStructured {
		return Result{Shape: env.Shape, Structured: env.Payload}, nil
	}

	data := payloadBytes(env)
	res := Result{Shape: env.Shape, Mime: env.Mime}

	if mode == config.ModeFiles || mode == config.ModeBoth {
		path, err := r.write(ctx, destHint, env.Filename, data)
		if err != nil {
			return Result{}, err
		}
		res.Path = path
		log.Debug("saved output file", "path", path, "bytes", len(data))
	}

	if mode == config.ModeResources || mode == config.ModeBoth {
		uri := Scheme + env.Filename
		if r.resources == nil {
			return Result{}, fmt.Errorf("output mode %q requires a resource registry", mode)
		}
		r.resources.Add(uri, Entry{Data: data, Mime: env.Mime, Text: !env.Binary()})

		res.URI = uri
		if env.Binary() {
			res.InlinePayload = base64.StdEncoding.EncodeToString(data)
		} else {
			res.InlinePayload = string(data)
		}
	}

	return res, nil
}

// payloadBytes returns the envelope payload as bytes. Text payloads are
// UTF-8 encoded; the binary/text distinction is preserved in Entry.Text and
// the inline encoding.
func payloadBytes(env *adapter.Envelope) []byte {
	switch v := env.Payload.(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	}
	return nil
}
