package environment

import (
	"sort"
	"strings"

	"github.com/railwayapp/stackgen/internal/detection"
)

const envPrefix = "env:"

// Variable is one environment variable the project declares or reads.
// Values are only used for classification and are never kept.
type Variable struct {
	Name       string   `json:"name" yaml:"name"`
	Kind       Kind     `json:"kind" yaml:"kind"`
	Sensitive  bool     `json:"sensitive" yaml:"sensitive"`
	Declared   bool     `json:"declared" yaml:"declared"`
	References []string `json:"references,omitempty" yaml:"references,omitempty"`
}

// Inventory accumulates variables from declarations and code references.
type Inventory struct {
	vars map[string]*Variable
}

func NewInventory() *Inventory {
	return &Inventory{vars: make(map[string]*Variable)}
}

// FromBundle seeds an inventory with the env: fields collected from
// Dockerfiles, compose files and .env files.
func FromBundle(bundle *detection.EvidenceBundle) *Inventory {
	inv := NewInventory()
	for _, key := range bundle.ManifestWithPrefix(envPrefix) {
		value, _ := bundle.Manifest(key)
		inv.Declare(strings.TrimPrefix(key, envPrefix), value)
	}
	return inv
}

// Declare records a variable with a known value.
func (inv *Inventory) Declare(name, value string) {
	if name == "" || IsSystem(name) {
		return
	}
	kind, sensitive := Classify(name, value)

	v, ok := inv.vars[name]
	if !ok {
		inv.vars[name] = &Variable{Name: name, Kind: kind, Sensitive: sensitive, Declared: true}
		return
	}
	v.Declared = true
	// a value refines a classification made from the name alone
	if v.Kind == KindConfig || v.Kind == KindUnknown {
		v.Kind = kind
	}
	v.Sensitive = v.Sensitive || sensitive
}

// Reference records that file reads name.
func (inv *Inventory) Reference(name, file string) {
	if name == "" || IsSystem(name) {
		return
	}
	v, ok := inv.vars[name]
	if !ok {
		kind, sensitive := Classify(name, "")
		v = &Variable{Name: name, Kind: kind, Sensitive: sensitive}
		inv.vars[name] = v
	}
	for _, ref := range v.References {
		if ref == file {
			return
		}
	}
	v.References = append(v.References, file)
	sort.Strings(v.References)
}

// Variables returns every variable sorted by name.
func (inv *Inventory) Variables() []Variable {
	out := make([]Variable, 0, len(inv.vars))
	for _, v := range inv.vars {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Undeclared returns variables read by code that no env file or image
// declares.
func (inv *Inventory) Undeclared() []Variable {
	var out []Variable
	for _, v := range inv.Variables() {
		if !v.Declared {
			out = append(out, v)
		}
	}
	return out
}

func (inv *Inventory) Len() int {
	return len(inv.vars)
}
