package detection

const maxScore = 100

// ScoredCandidate is the outcome of evaluating one candidate's rules.
type ScoredCandidate struct {
	CandidateID  string
	Score        int
	MatchedRules []string
}

// Score evaluates every rule of c against the bundle. A failed required
// rule disqualifies the candidate outright: the score is 0 and no rules are
// reported as matched.
func Score(bundle *EvidenceBundle, c Candidate) ScoredCandidate {
	scored := ScoredCandidate{CandidateID: c.ID}

	total := 0
	var matched []string
	for _, rule := range c.Rules {
		if rule.Predicate != nil && rule.Predicate(bundle) {
			total += rule.Weight
			matched = append(matched, rule.ID)
			continue
		}
		if rule.Required {
			return scored
		}
	}

	scored.Score = clamp(total, 0, maxScore)
	scored.MatchedRules = matched
	return scored
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
