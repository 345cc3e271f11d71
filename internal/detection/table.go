package detection

import "fmt"

// Category groups candidates; the table is declared frontend first so that
// equal scores favour frontend over backend.
type Category string

const (
	CategoryFrontend Category = "frontend"
	CategoryMobile   Category = "mobile"
	CategoryDesktop  Category = "desktop"
	CategoryBackend  Category = "backend"
)

// Rule is one weighted piece of evidence for a candidate. A Required rule
// that fails disqualifies the candidate.
type Rule struct {
	ID        string
	Predicate Predicate
	Weight    int
	Required  bool
}

// Variant is a named sub-classification picked by its own predicate.
type Variant struct {
	ID        string
	Predicate Predicate
}

// Target is one declared build target of a multi-target candidate.
type Target struct {
	Platform  string
	Family    TargetFamily
	Predicate Predicate
}

type TargetFamily string

const (
	FamilyMobile  TargetFamily = "mobile"
	FamilyDesktop TargetFamily = "desktop"
	FamilyWeb     TargetFamily = "web"
	FamilyWasm    TargetFamily = "wasm"
)

// Candidate is a framework the detector can recognise.
//
// Base names the framework a meta-framework wraps; when Marker holds the
// base is dropped from the results. Targets makes the candidate
// platform-bearing.
type Candidate struct {
	ID       string
	Category Category
	Rules    []Rule
	Variants []Variant
	Base     string
	Marker   Predicate
	Targets  []Target
}

// Table is the ordered, immutable set of candidates.
type Table struct {
	candidates []Candidate
	index      map[string]int
}

// NewTable validates and builds a table. Ids must be unique and every Base
// must name another candidate of the same table.
func NewTable(candidates ...Candidate) (*Table, error) {
	t := &Table{
		candidates: make([]Candidate, len(candidates)),
		index:      make(map[string]int, len(candidates)),
	}
	copy(t.candidates, candidates)

	for i, c := range t.candidates {
		if c.ID == "" {
			return nil, fmt.Errorf("candidate %d has no id", i)
		}
		if _, dup := t.index[c.ID]; dup {
			return nil, fmt.Errorf("duplicate candidate %q", c.ID)
		}
		for _, r := range c.Rules {
			if r.Weight <= 0 {
				return nil, fmt.Errorf("candidate %q rule %q: weight must be positive", c.ID, r.ID)
			}
		}
		t.index[c.ID] = i
	}
	for _, c := range t.candidates {
		if c.Base == "" {
			continue
		}
		if _, ok := t.index[c.Base]; !ok {
			return nil, fmt.Errorf("candidate %q wraps unknown base %q", c.ID, c.Base)
		}
		if c.Marker == nil {
			return nil, fmt.Errorf("candidate %q wraps %q without a marker", c.ID, c.Base)
		}
	}
	return t, nil
}

// MustTable is NewTable that panics on a malformed table.
func MustTable(candidates ...Candidate) *Table {
	t, err := NewTable(candidates...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Candidates() []Candidate {
	out := make([]Candidate, len(t.candidates))
	copy(out, t.candidates)
	return out
}

func (t *Table) Lookup(id string) (Candidate, bool) {
	i, ok := t.index[id]
	if !ok {
		return Candidate{}, false
	}
	return t.candidates[i], true
}

// Priority is the declaration index used to break score ties.
func (t *Table) Priority(id string) int {
	if i, ok := t.index[id]; ok {
		return i
	}
	return len(t.candidates)
}

func (t *Table) Len() int {
	return len(t.candidates)
}
