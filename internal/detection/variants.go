package detection

// platformOrder is the normalized order of reported platforms.
var platformOrder = []string{"android", "ios", "desktop", "web", "wasm"}

// Resolution is the variant decision for one scored candidate.
type Resolution struct {
	Variant   string
	Platforms []string

	// Suppresses names the base candidate implied by this meta-framework.
	Suppresses string
}

// Resolve picks the variant for a candidate that scored above zero.
//
// Platform-bearing candidates take their variant from the declared target
// set. A meta-framework whose marker holds suppresses its base and, unless a
// platform variant was found, reports its own id as the variant. Otherwise
// the first sub-variant whose predicate holds wins.
func Resolve(bundle *EvidenceBundle, c Candidate, scored ScoredCandidate) Resolution {
	var res Resolution
	if scored.Score <= 0 {
		return res
	}

	if len(c.Targets) > 0 {
		res.Platforms, res.Variant = resolvePlatforms(bundle, c.Targets)
	}

	if c.Base != "" && c.Marker != nil && c.Marker(bundle) {
		res.Suppresses = c.Base
		if res.Variant == "" {
			res.Variant = c.ID
		}
	}

	if res.Variant == "" {
		for _, v := range c.Variants {
			if v.Predicate != nil && v.Predicate(bundle) {
				res.Variant = v.ID
				break
			}
		}
	}
	return res
}

func resolvePlatforms(bundle *EvidenceBundle, targets []Target) ([]string, string) {
	found := make(map[string]bool)
	families := make(map[TargetFamily]bool)
	for _, t := range targets {
		if t.Predicate != nil && t.Predicate(bundle) {
			found[t.Platform] = true
			families[t.Family] = true
		}
	}

	var platforms []string
	for _, p := range platformOrder {
		if found[p] {
			platforms = append(platforms, p)
			delete(found, p)
		}
	}
	// platforms outside the known order keep declaration order
	for _, t := range targets {
		if found[t.Platform] {
			platforms = append(platforms, t.Platform)
			delete(found, t.Platform)
		}
	}

	return platforms, PlatformVariant(families)
}

// PlatformVariant classifies a set of target families. Mobile outranks web
// when both are present without the full set.
func PlatformVariant(families map[TargetFamily]bool) string {
	mobile := families[FamilyMobile]
	desktop := families[FamilyDesktop]
	web := families[FamilyWeb]
	wasm := families[FamilyWasm]

	switch {
	case mobile && desktop && web && wasm:
		return VariantFullMultiplatform
	case mobile:
		return VariantMobileFocused
	case web || wasm:
		return VariantWebEnabled
	case desktop:
		return VariantDesktopOnly
	default:
		return ""
	}
}
