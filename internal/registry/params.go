package registry

import (
	"encoding/json"
	"fmt"
	"math"
)

// ParamType is the JSON type of a parameter.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeNumber  ParamType = "number"
	TypeInteger ParamType = "integer"
	TypeBoolean ParamType = "boolean"
)

// ParamSpec declares one parameter of an operation.
type ParamSpec struct {
	Name        string
	Description string
	Type        ParamType
	Required    bool
	// Default is applied during validation when the parameter is absent.
	Default any
	// Minimum/Maximum bound numeric parameters (inclusive).
	Minimum *float64
	Maximum *float64
	// Enum restricts string parameters to a fixed value set.
	Enum []string
}

// Args is a validated parameter set with defaults applied.
type Args map[string]any

// String returns the named string argument, or "" if absent.
func (a Args) String(name string) string {
	v, _ := a[name].(string)
	return v
}

// Float returns the named numeric argument, or 0 if absent.
func (a Args) Float(name string) float64 {
	switch v := a[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Int returns the named integer argument, or 0 if absent.
func (a Args) Int(name string) int {
	return int(a.Float(name))
}

// Bool returns the named boolean argument, or false if absent.
func (a Args) Bool(name string) bool {
	v, _ := a[name].(bool)
	return v
}

// Has reports whether the argument was supplied or defaulted.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// InvalidParameterError reports a structural validation failure, naming the
// offending field and the violated constraint.
type InvalidParameterError struct {
	Op         string
	Field      string
	Constraint string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q for %s: %s", e.Field, e.Op, e.Constraint)
}

// Validate checks raw arguments against the operation's parameter spec and
// returns the validated set with defaults applied. Validation is purely
// structural; cross-field rules live in the operation thunks.
func (r *Registry) Validate(id string, raw map[string]any) (Args, error) {
	d, err := r.Lookup(id)
	if err != nil {
		return nil, err
	}

	args := make(Args, len(d.Params))
	for i := range d.Params {
		p := &d.Params[i]

		v, ok := raw[p.Name]
		if !ok || v == nil {
			if p.Required {
				return nil, &InvalidParameterError{Op: id, Field: p.Name, Constraint: "required parameter is missing"}
			}
			if p.Default != nil {
				args[p.Name] = p.Default
			}
			continue
		}

		checked, err := checkType(id, p, v)
		if err != nil {
			return nil, err
		}
		args[p.Name] = checked
	}
	return args, nil
}

func checkType(op string, p *ParamSpec, v any) (any, error) {
	switch p.Type {
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return nil, &InvalidParameterError{Op: op, Field: p.Name, Constraint: "must be a string"}
		}
		if len(p.Enum) > 0 && !contains(p.Enum, s) {
			return nil, &InvalidParameterError{Op: op, Field: p.Name,
				Constraint: fmt.Sprintf("must be one of %v", p.Enum)}
		}
		return s, nil

	case TypeNumber, TypeInteger:
		f, ok := toFloat(v)
		if !ok {
			return nil, &InvalidParameterError{Op: op, Field: p.Name, Constraint: "must be a number"}
		}
		if p.Type == TypeInteger && f != math.Trunc(f) {
			return nil, &InvalidParameterError{Op: op, Field: p.Name, Constraint: "must be an integer"}
		}
		if p.Minimum != nil && f < *p.Minimum {
			return nil, &InvalidParameterError{Op: op, Field: p.Name,
				Constraint: fmt.Sprintf("must be >= %v", *p.Minimum)}
		}
		if p.Maximum != nil && f > *p.Maximum {
			return nil, &InvalidParameterError{Op: op, Field: p.Name,
				Constraint: fmt.Sprintf("must be <= %v", *p.Maximum)}
		}
		return f, nil

	case TypeBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, &InvalidParameterError{Op: op, Field: p.Name, Constraint: "must be a boolean"}
		}
		return b, nil
	}
	return nil, &InvalidParameterError{Op: op, Field: p.Name,
		Constraint: fmt.Sprintf("unsupported parameter type %q", p.Type)}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// Ptr returns a pointer to v; convenience for Minimum/Maximum literals.
func Ptr(v float64) *float64 {
	return &v
}
