// Package registry holds the static table of vendor-backed operations.
//
// Each operation is described once by a Descriptor: its parameter spec, the
// shape of its result, and the thunk that performs the vendor call. The
// registry validates caller-supplied arguments against the declared
// parameters before any network activity happens.
package registry

import (
	"context"
	"errors"
	"fmt"
)

// Shape is the structural category of an operation's result.
type Shape string

const (
	ShapeBinaryAudio  Shape = "binary_audio"
	ShapeBinaryImage  Shape = "binary_image"
	ShapeText         Shape = "text"
	ShapeStructured   Shape = "structured"
	ShapeResourceList Shape = "resource_list"
)

// Cost is an advisory tag describing whether an operation bills API credits.
// It is surfaced in tool descriptions and never enforced.
type Cost string

const (
	CostFree    Cost = "free"
	CostMetered Cost = "metered"
)

// CallFunc performs the vendor call for one operation. The returned value
// must match the operation's declared result shape: []byte for binary shapes,
// string for text, []ListItem for resource lists, and any JSON-marshalable
// value for structured results.
type CallFunc func(ctx context.Context, args Args) (any, error)

// ListItem is one element of a resource_list result.
type ListItem struct {
	// Name is the vendor-suggested filename stem for this item.
	Name string
	// Data is the raw payload.
	Data []byte
	// Mime is the payload's MIME type.
	Mime string
}

// Descriptor describes one operation. Descriptors are constructed at process
// start and never mutated afterwards.
type Descriptor struct {
	ID          string
	Description string
	Params      []ParamSpec
	ResultShape Shape
	CostClass   Cost
	// FilePrefix is the filename stem for file-like results, e.g. "tts".
	FilePrefix string
	// FileExt is the default filename extension for file-like results.
	// Thunks may override it per call via the output format parameter.
	FileExt string
	Call    CallFunc
}

// Registry maps operation IDs to their descriptors.
type Registry struct {
	ops   map[string]*Descriptor
	order []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{ops: make(map[string]*Descriptor)}
}

// Register adds a descriptor. Registering a duplicate or malformed descriptor
// is a programming error and panics during process start.
func (r *Registry) Register(d *Descriptor) {
	if d.ID == "" {
		panic("registry: descriptor with empty ID")
	}
	if d.Call == nil {
		panic("registry: descriptor " + d.ID + " has no call thunk")
	}
	if _, ok := r.ops[d.ID]; ok {
		panic("registry: duplicate operation " + d.ID)
	}
	r.ops[d.ID] = d
	r.order = append(r.order, d.ID)
}

// ErrUnknownOperation is returned when a caller names an operation that is
// not registered.
var ErrUnknownOperation = errors.New("unknown operation")

// Lookup returns the descriptor for id.
func (r *Registry) Lookup(id string) (*Descriptor, error) {
	d, ok := r.ops[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, id)
	}
	return d, nil
}

// Descriptors returns all descriptors in registration order.
func (r *Registry) Descriptors() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.ops[id])
	}
	return out
}

// Len returns the number of registered operations.
func (r *Registry) Len() int {
	return len(r.ops)
}
