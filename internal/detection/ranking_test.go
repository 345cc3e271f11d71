package detection

import (
	"reflect"
	"testing"
)

func weightedTable(weight int) *Table {
	return MustTable(
		Candidate{ID: "front", Category: CategoryFrontend, Rules: []Rule{
			{ID: "marker", Predicate: FileExists("front.marker"), Weight: weight},
		}},
		Candidate{ID: "back", Category: CategoryBackend, Rules: []Rule{
			{ID: "marker", Predicate: FileExists("back.marker"), Weight: weight},
		}},
	)
}

func evaluate(table *Table, bundle *EvidenceBundle) *Result {
	candidates := table.Candidates()
	scored := make([]ScoredCandidate, len(candidates))
	resolved := make([]Resolution, len(candidates))
	for i, c := range candidates {
		scored[i] = Score(bundle, c)
		resolved[i] = Resolve(bundle, c, scored[i])
	}
	return Rank(table, scored, resolved, DefaultThreshold)
}

func TestRank_ThresholdGating(t *testing.T) {
	tests := []struct {
		weight      int
		wantPrimary bool
	}{
		{DefaultThreshold - 1, false},
		{DefaultThreshold, true},
		{DefaultThreshold + 1, true},
	}

	for _, tt := range tests {
		result := evaluate(weightedTable(tt.weight), bundleWith("back.marker"))

		if len(result.AllDetected) != 1 {
			t.Fatalf("weight %d: expected one detected entry, got %v", tt.weight, result.AllDetected)
		}
		if got := result.Primary != nil; got != tt.wantPrimary {
			t.Errorf("weight %d: expected primary present = %v, got %v", tt.weight, tt.wantPrimary, got)
		}
	}
}

func TestRank_TieBreakByDeclarationOrder(t *testing.T) {
	result := evaluate(weightedTable(60), bundleWith("back.marker", "front.marker"))

	if got := result.Frameworks(); !reflect.DeepEqual(got, []string{"front", "back"}) {
		t.Fatalf("expected frontend before backend on a tie, got %v", got)
	}
	if result.Primary == nil || result.Primary.Framework != "front" {
		t.Errorf("expected primary front, got %+v", result.Primary)
	}
	if result.Primary.Category != CategoryFrontend {
		t.Errorf("expected frontend category, got %s", result.Primary.Category)
	}
}

func TestRank_DescendingScore(t *testing.T) {
	table := MustTable(
		Candidate{ID: "weak", Rules: []Rule{{ID: "a", Predicate: FileExists("a"), Weight: 20}}},
		Candidate{ID: "strong", Rules: []Rule{{ID: "a", Predicate: FileExists("a"), Weight: 80}}},
		Candidate{ID: "absent", Rules: []Rule{{ID: "b", Predicate: FileExists("b"), Weight: 80}}},
	)

	result := evaluate(table, bundleWith("a"))
	if got := result.Frameworks(); !reflect.DeepEqual(got, []string{"strong", "weak"}) {
		t.Fatalf("expected [strong weak], got %v", got)
	}
	if _, ok := result.Find("absent"); ok {
		t.Errorf("expected zero scores to be filtered")
	}
}

func TestRank_SuppressionChain(t *testing.T) {
	table := DefaultTable()
	bundle := NewEvidenceBundle()
	for _, key := range []string{"npm:expo", "npm:react-native", "npm:react", "npm:react-dom"} {
		bundle.ManifestFields.set(key, "")
	}

	result := evaluate(table, bundle)
	for _, id := range []string{"react", "react-native"} {
		if _, ok := result.Find(id); ok {
			t.Errorf("expected %s to be suppressed by expo, got %v", id, result.Frameworks())
		}
	}
	if result.Primary == nil || result.Primary.Framework != "expo" || result.Primary.Variant != "expo" {
		t.Errorf("expected expo primary with expo variant, got %+v", result.Primary)
	}
}

func TestRank_Empty(t *testing.T) {
	result := evaluate(DefaultTable(), NewEvidenceBundle())
	if result.Primary != nil {
		t.Errorf("expected no primary, got %+v", result.Primary)
	}
	if result.AllDetected == nil || len(result.AllDetected) != 0 {
		t.Errorf("expected an empty, non-nil list, got %#v", result.AllDetected)
	}
}
