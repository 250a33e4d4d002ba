package registry

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// Schema renders a descriptor's parameter spec as a JSON schema for MCP tool
// declaration. AdditionalProperties is left nil for client compatibility.
func Schema(d *Descriptor) *jsonschema.Schema {
	props := make(map[string]*jsonschema.Schema, len(d.Params))
	var required []string

	for i := range d.Params {
		p := &d.Params[i]

		s := &jsonschema.Schema{
			Type:        string(p.Type),
			Description: p.Description,
			Minimum:     p.Minimum,
			Maximum:     p.Maximum,
		}
		for _, e := range p.Enum {
			s.Enum = append(s.Enum, e)
		}

		props[p.Name] = s
		if p.Required {
			required = append(required, p.Name)
		}
	}

	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: nil,
	}
}
