package detection

import "sort"

// DefaultThreshold is the minimum score for a primary result.
const DefaultThreshold = 50

// Detected is one framework in a detection result.
type Detected struct {
	Framework  string   `json:"framework" yaml:"framework"`
	Category   Category `json:"category" yaml:"category"`
	Variant    string   `json:"variant,omitempty" yaml:"variant,omitempty"`
	Confidence int      `json:"confidence" yaml:"confidence"`
	Platforms  []string `json:"platforms,omitempty" yaml:"platforms,omitempty"`
	Signals    []string `json:"signals,omitempty" yaml:"signals,omitempty"`
}

// Result is the outcome of one detection. A nil Primary means detection was
// inconclusive, which is not an error.
type Result struct {
	Primary     *Detected  `json:"primary,omitempty" yaml:"primary,omitempty"`
	AllDetected []Detected `json:"allDetected" yaml:"allDetected"`
}

// Rank aggregates scored candidates into a Result. scored and resolved are
// indexed like the table's candidates.
func Rank(table *Table, scored []ScoredCandidate, resolved []Resolution, threshold int) *Result {
	suppressed := make(map[string]bool)
	for i, s := range scored {
		if s.Score > 0 && resolved[i].Suppresses != "" {
			suppressed[resolved[i].Suppresses] = true
		}
	}

	type ranked struct {
		detected Detected
		priority int
	}

	var entries []ranked
	for i, s := range scored {
		if s.Score <= 0 || suppressed[s.CandidateID] {
			continue
		}
		c, _ := table.Lookup(s.CandidateID)
		entries = append(entries, ranked{
			detected: Detected{
				Framework:  s.CandidateID,
				Category:   c.Category,
				Variant:    resolved[i].Variant,
				Confidence: s.Score,
				Platforms:  resolved[i].Platforms,
				Signals:    s.MatchedRules,
			},
			priority: table.Priority(s.CandidateID),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].detected.Confidence != entries[j].detected.Confidence {
			return entries[i].detected.Confidence > entries[j].detected.Confidence
		}
		return entries[i].priority < entries[j].priority
	})

	result := &Result{AllDetected: make([]Detected, 0, len(entries))}
	for _, e := range entries {
		result.AllDetected = append(result.AllDetected, e.detected)
	}
	if len(result.AllDetected) > 0 && result.AllDetected[0].Confidence >= threshold {
		primary := result.AllDetected[0]
		result.Primary = &primary
	}
	return result
}

// Frameworks returns the detected framework ids in rank order.
func (r *Result) Frameworks() []string {
	ids := make([]string, 0, len(r.AllDetected))
	for _, d := range r.AllDetected {
		ids = append(ids, d.Framework)
	}
	return ids
}

// Find returns the entry for framework, if detected.
func (r *Result) Find(framework string) (Detected, bool) {
	for _, d := range r.AllDetected {
		if d.Framework == framework {
			return d, true
		}
	}
	return Detected{}, false
}
