// Package adapter dispatches operation calls and normalizes their results.
//
// Invoke runs the full pre-storage pipeline for one operation: validate
// arguments against the registry, execute the vendor thunk, and classify the
// raw result into Output Envelopes strictly by the operation's declared
// result shape. The adapter performs no storage writes and no retries.
package adapter

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/voxtool/mcp-elevenlabs/internal/registry"
)

// Envelope is the normalized in-memory form of one operation result, ready
// for mode-specific resolution.
type Envelope struct {
	// Shape is the structural category of Payload.
	Shape registry.Shape
	// Payload holds []byte for binary shapes, string for text, and any
	// JSON-marshalable value for structured results. Never nil.
	Payload any
	// Filename is the suggested filename for file-like payloads.
	Filename string
	// Mime is the payload's MIME type; empty for structured results.
	Mime string
}

// Binary reports whether the payload is raw bytes (as opposed to text).
func (e *Envelope) Binary() bool {
	_, ok := e.Payload.([]byte)
	return ok
}

// ShapeMismatchError reports a vendor result inconsistent with the declared
// result shape. This is an internal defect, not a vendor failure.
type ShapeMismatchError struct {
	Op    string
	Shape registry.Shape
	Got   string
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("operation %s declared shape %s but produced %s", e.Op, e.Shape, e.Got)
}

// Adapter invokes operations against the registry.
type Adapter struct {
	reg *registry.Registry
}

// New creates an Adapter over the given registry.
func New(reg *registry.Registry) *Adapter {
	return &Adapter{reg: reg}
}

// Registry exposes the underlying operation table to transport shells.
func (a *Adapter) Registry() *registry.Registry {
	return a.reg
}

// Invoke validates raw arguments, executes the operation's vendor call, and
// returns one envelope per result item. Single-result shapes yield exactly
// one envelope; resource_list yields one per item in vendor order.
func (a *Adapter) Invoke(ctx context.Context, id string, raw map[string]any) ([]Envelope, error) {
	d, err := a.reg.Lookup(id)
	if err != nil {
		return nil, err
	}

	args, err := a.reg.Validate(id, raw)
	if err != nil {
		return nil, err
	}

	result, err := d.Call(ctx, args)
	if err != nil {
		return nil, err
	}

	envs, err := classify(d, args, result)
	if err != nil {
		log.Error("result shape mismatch", "operation", id, "error", err)
		return nil, err
	}
	return envs, nil
}

// classify checks the raw vendor result against the declared shape; no
// coercion is attempted on mismatch.
func classify(d *registry.Descriptor, args registry.Args, result any) ([]Envelope, error) {
	switch d.ResultShape {
	case registry.ShapeBinaryAudio, registry.ShapeBinaryImage:
		data, ok := result.([]byte)
		if !ok || data == nil {
			return nil, mismatch(d, result)
		}
		ext, mime := fileType(d, args)
		return []Envelope{{
			Shape:    d.ResultShape,
			Payload:  data,
			Filename: generateFilename(d.FilePrefix, ext, data),
			Mime:     mime,
		}}, nil

	case registry.ShapeText:
		text, ok := result.(string)
		if !ok {
			return nil, mismatch(d, result)
		}
		return []Envelope{{
			Shape:    registry.ShapeText,
			Payload:  text,
			Filename: generateFilename(d.FilePrefix, "txt", []byte(text)),
			Mime:     "text/plain",
		}}, nil

	case registry.ShapeStructured:
		if result == nil {
			return nil, mismatch(d, result)
		}
		if _, isBytes := result.([]byte); isBytes {
			return nil, mismatch(d, result)
		}
		return []Envelope{{Shape: registry.ShapeStructured, Payload: result}}, nil

	case registry.ShapeResourceList:
		items, ok := result.([]registry.ListItem)
		if !ok {
			return nil, mismatch(d, result)
		}
		envs := make([]Envelope, 0, len(items))
		for _, item := range items {
			envs = append(envs, itemEnvelope(d, item))
		}
		return envs, nil
	}

	return nil, mismatch(d, result)
}

// itemEnvelope wraps one resource_list item. Text items stay UTF-8 strings;
// everything else is carried as bytes.
func itemEnvelope(d *registry.Descriptor, item registry.ListItem) Envelope {
	mime := item.Mime
	if mime == "" {
		mime = "application/octet-stream"
	}

	stem, ext := splitName(item.Name, d.FileExt)
	env := Envelope{
		Filename: generateFilename(stem, ext, item.Data),
		Mime:     mime,
	}

	if isTextMime(mime) {
		env.Shape = registry.ShapeText
		env.Payload = string(item.Data)
	} else {
		env.Shape = registry.ShapeBinaryAudio
		env.Payload = item.Data
	}
	return env
}

func mismatch(d *registry.Descriptor, result any) error {
	return &ShapeMismatchError{Op: d.ID, Shape: d.ResultShape, Got: fmt.Sprintf("%T", result)}
}
