package module

import (
	"errors"
	"testing"

	"phasegen/internal/pool"
)

func TestParamsTag(t *testing.T) {
	p := NewParams("tf_theta", map[string]any{
		"ps_point":      "sampler::0",
		"reco_particle": pool.Tag{Module: "inputs", Output: "muon"},
		"bad":           "not-a-tag",
		"wrong_type":    42,
	})

	tag, err := p.Tag("ps_point")
	if err != nil {
		t.Fatalf("Tag(ps_point) failed: %v", err)
	}
	if tag != (pool.Tag{Module: "sampler", Output: "0"}) {
		t.Errorf("Tag(ps_point) = %+v", tag)
	}

	tag, err = p.Tag("reco_particle")
	if err != nil {
		t.Fatalf("Tag(reco_particle) failed: %v", err)
	}
	if tag.Module != "inputs" || tag.Output != "muon" {
		t.Errorf("Tag(reco_particle) = %+v", tag)
	}

	if _, err := p.Tag("absent"); !errors.Is(err, ErrParamMissing) {
		t.Errorf("Tag(absent) error = %v, want ErrParamMissing", err)
	}
	if _, err := p.Tag("bad"); !errors.Is(err, pool.ErrBadTag) {
		t.Errorf("Tag(bad) error = %v, want ErrBadTag", err)
	}
	if _, err := p.Tag("wrong_type"); !errors.Is(err, ErrParamType) {
		t.Errorf("Tag(wrong_type) error = %v, want ErrParamType", err)
	}
}

func TestParamsScalars(t *testing.T) {
	p := NewParams("m", map[string]any{
		"f":    1.5,
		"i":    3,
		"s":    "hello",
		"notf": "x",
	})

	if v, err := p.Float("f"); err != nil || v != 1.5 {
		t.Errorf("Float(f) = %g, %v", v, err)
	}
	// Integers convert to float.
	if v, err := p.Float("i"); err != nil || v != 3 {
		t.Errorf("Float(i) = %g, %v", v, err)
	}
	if v, err := p.Int("i"); err != nil || v != 3 {
		t.Errorf("Int(i) = %d, %v", v, err)
	}
	if v, err := p.String("s"); err != nil || v != "hello" {
		t.Errorf("String(s) = %q, %v", v, err)
	}

	if _, err := p.Float("notf"); !errors.Is(err, ErrParamType) {
		t.Errorf("Float(notf) error = %v, want ErrParamType", err)
	}
	if _, err := p.Int("f"); !errors.Is(err, ErrParamType) {
		t.Errorf("Int(f) error = %v, want ErrParamType", err)
	}
	if _, err := p.String("absent"); !errors.Is(err, ErrParamMissing) {
		t.Errorf("String(absent) error = %v, want ErrParamMissing", err)
	}
}

func TestParamsNilValues(t *testing.T) {
	p := NewParams("m", nil)
	if p.Has("anything") {
		t.Error("Has on empty params = true")
	}
	if p.ModuleName() != "m" {
		t.Errorf("ModuleName() = %q", p.ModuleName())
	}
}
