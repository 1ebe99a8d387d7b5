package module

import (
	"errors"
	"testing"

	"phasegen/internal/pool"
)

// fakeModule is a minimal Module for registry tests.
type fakeModule struct {
	name string
	dims int
}

func (m *fakeModule) Name() string    { return m.name }
func (m *fakeModule) Work() Status    { return StatusOK }
func (m *fakeModule) Dimensions() int { return m.dims }

func fakeFactory(p *pool.Pool, params *Params) (Module, error) {
	return &fakeModule{name: params.ModuleName(), dims: 1}, nil
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if reg.Count() != 0 {
		t.Errorf("new registry should be empty, got %d types", reg.Count())
	}
}

func TestRegisterAndBuild(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("fake", fakeFactory); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if !reg.Has("fake") {
		t.Error("Has(fake) = false after registration")
	}

	m, err := reg.Build("fake", pool.New(), NewParams("tf_theta", nil))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if m.Name() != "tf_theta" {
		t.Errorf("got name %q, want %q", m.Name(), "tf_theta")
	}
	if m.Dimensions() != 1 {
		t.Errorf("Dimensions() = %d, want 1", m.Dimensions())
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		factory Factory
		wantErr error
	}{
		{"empty type", "", fakeFactory, ErrTypeEmpty},
		{"nil factory", "fake", nil, ErrFactoryNil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			err := reg.Register(tt.typ, tt.factory)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("dupe", fakeFactory); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if err := reg.Register("dupe", fakeFactory); !errors.Is(err, ErrTypeAlreadyRegistered) {
		t.Errorf("error = %v, want ErrTypeAlreadyRegistered", err)
	}
}

func TestBuildUnknownType(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Build("nope", pool.New(), NewParams("m", nil))
	if !errors.Is(err, ErrTypeNotFound) {
		t.Errorf("error = %v, want ErrTypeNotFound", err)
	}
}

func TestBuildPropagatesBindingError(t *testing.T) {
	bindErr := errors.New("unresolved input")
	reg := NewRegistry()
	reg.MustRegister("failing", func(p *pool.Pool, params *Params) (Module, error) {
		return nil, bindErr
	})

	_, err := reg.Build("failing", pool.New(), NewParams("m", nil))
	if !errors.Is(err, bindErr) {
		t.Errorf("error = %v, want wrapped binding error", err)
	}
}

func TestTypesSorted(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("b", fakeFactory)
	reg.MustRegister("a", fakeFactory)

	types := reg.Types()
	if len(types) != 2 || types[0] != "a" || types[1] != "b" {
		t.Errorf("Types() = %v, want [a b]", types)
	}
}

func TestStatusString(t *testing.T) {
	if StatusOK.String() != "ok" {
		t.Errorf("StatusOK.String() = %q", StatusOK.String())
	}
	if StatusAbort.String() != "abort" {
		t.Errorf("StatusAbort.String() = %q", StatusAbort.String())
	}
	if Status(99).String() != "unknown" {
		t.Errorf("Status(99).String() = %q", Status(99).String())
	}
}
