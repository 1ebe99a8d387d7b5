package module

import (
	"fmt"

	"phasegen/internal/pool"
)

// Params carries the configuration of one module instance: its name plus
// the raw parameter values parsed from the run file. Getters are typed;
// a missing or mistyped key yields a sentinel-wrapped error naming it.
type Params struct {
	name   string
	values map[string]any
}

// NewParams builds a parameter set for the named module instance.
// A nil values map is treated as empty.
func NewParams(name string, values map[string]any) *Params {
	if values == nil {
		values = make(map[string]any)
	}
	return &Params{name: name, values: values}
}

// ModuleName returns the instance name the parameters belong to.
func (p *Params) ModuleName() string { return p.name }

// Has reports whether a key is present.
func (p *Params) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Tag returns a parsed slot reference. The value may be a pool.Tag or a
// "module::output" string.
func (p *Params) Tag(key string) (pool.Tag, error) {
	raw, ok := p.values[key]
	if !ok {
		return pool.Tag{}, fmt.Errorf("%w: %s (module %s)", ErrParamMissing, key, p.name)
	}
	switch v := raw.(type) {
	case pool.Tag:
		return v, nil
	case string:
		tag, err := pool.ParseTag(v)
		if err != nil {
			return pool.Tag{}, fmt.Errorf("parameter %s of module %s: %w", key, p.name, err)
		}
		return tag, nil
	default:
		return pool.Tag{}, fmt.Errorf("%w: %s is %T, want input tag", ErrParamType, key, raw)
	}
}

// String returns a string parameter.
func (p *Params) String(key string) (string, error) {
	raw, ok := p.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s (module %s)", ErrParamMissing, key, p.name)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T, want string", ErrParamType, key, raw)
	}
	return s, nil
}

// Float returns a float64 parameter. Integer values convert.
func (p *Params) Float(key string) (float64, error) {
	raw, ok := p.values[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s (module %s)", ErrParamMissing, key, p.name)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: %s is %T, want float", ErrParamType, key, raw)
	}
}

// Int returns an int parameter.
func (p *Params) Int(key string) (int, error) {
	raw, ok := p.values[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s (module %s)", ErrParamMissing, key, p.name)
	}
	v, ok := raw.(int)
	if !ok {
		return 0, fmt.Errorf("%w: %s is %T, want int", ErrParamType, key, raw)
	}
	return v, nil
}
