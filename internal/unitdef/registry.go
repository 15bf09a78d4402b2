// Package unitdef holds the registry of unit-type policies and loads static
// definitions from YAML.
package unitdef

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/eykd/unitree-go/internal/unit"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrEmptyType is returned when a definition has no type name.
var ErrEmptyType = errors.New("unit definition has empty type")

// ErrDuplicateType is returned when a definitions file names a type twice.
var ErrDuplicateType = errors.New("unit type defined more than once")

// Definition is the YAML form of a unit policy. An omitted capability is
// true.
type Definition struct {
	Type          string `yaml:"type"`
	Nested        *bool  `yaml:"nested,omitempty"`
	Multiple      *bool  `yaml:"multiple,omitempty"`
	Duplicate     *bool  `yaml:"duplicate,omitempty"`
	MoveHierarchy *bool  `yaml:"moveHierarchy,omitempty"`
}

// File is the top-level shape of a definitions document.
type File struct {
	Units []Definition `yaml:"units"`
}

// Policy converts d to a unit.Policy with static capabilities.
func (d Definition) Policy() unit.Policy {
	return unit.Policy{
		Type:          d.Type,
		Nested:        capability(d.Nested),
		Multiple:      capability(d.Multiple),
		Duplicate:     capability(d.Duplicate),
		MoveHierarchy: capability(d.MoveHierarchy),
	}
}

func capability(v *bool) unit.Capability {
	if v == nil {
		return unit.Static(true)
	}
	return unit.Static(*v)
}

// Registry maps unit types to policies. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	defs  map[string]unit.Policy
	order []string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{defs: make(map[string]unit.Policy)}
}

// Default returns a registry populated with the built-in unit types.
func Default() *Registry {
	r, err := Parse(bytes.NewReader(defaultsYAML))
	if err != nil {
		panic(fmt.Sprintf("unitdef: built-in definitions: %v", err))
	}
	return r
}

// Parse decodes a definitions document. Unknown keys, empty type names and
// repeated types are errors.
func Parse(rd io.Reader) (*Registry, error) {
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse unit definitions: %w", err)
	}
	r := New()
	for i, d := range f.Units {
		if d.Type == "" {
			return nil, fmt.Errorf("unit definition %d: %w", i, ErrEmptyType)
		}
		if _, dup := r.defs[d.Type]; dup {
			return nil, fmt.Errorf("unit definition %q: %w", d.Type, ErrDuplicateType)
		}
		r.set(d.Policy())
	}
	return r, nil
}

// Load reads a definitions file from path.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read unit definitions: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Register adds p, replacing any existing policy for the same type. Use it
// to attach dynamic capabilities that cannot be written in YAML.
func (r *Registry) Register(p unit.Policy) error {
	if p.Type == "" {
		return ErrEmptyType
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(p)
	return nil
}

func (r *Registry) set(p unit.Policy) {
	if _, ok := r.defs[p.Type]; !ok {
		r.order = append(r.order, p.Type)
	}
	r.defs[p.Type] = p
}

// Lookup returns the policy for unitType.
func (r *Registry) Lookup(unitType string) (unit.Policy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.defs[unitType]
	return p, ok
}

// Types returns the registered type names in registration order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}
