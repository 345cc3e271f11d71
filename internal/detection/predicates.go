package detection

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Predicate is a pure test over collected evidence.
type Predicate func(e *EvidenceBundle) bool

// FileExists holds when any of the exact relative paths is present.
func FileExists(paths ...string) Predicate {
	return func(e *EvidenceBundle) bool {
		for _, p := range paths {
			if e.HasFile(p) {
				return true
			}
		}
		return false
	}
}

// FileNamed holds when a file with one of the base names exists at any depth.
func FileNamed(names ...string) Predicate {
	return func(e *EvidenceBundle) bool {
		for f := range e.FilesPresent {
			base := path.Base(f)
			for _, name := range names {
				if base == name {
					return true
				}
			}
		}
		return false
	}
}

// FileGlob holds when any present file matches one of the doublestar patterns.
func FileGlob(patterns ...string) Predicate {
	return func(e *EvidenceBundle) bool {
		for f := range e.FilesPresent {
			if matchAny(patterns, f) {
				return true
			}
		}
		return false
	}
}

// DirExists holds when any of the exact relative directories is present.
func DirExists(dirs ...string) Predicate {
	return func(e *EvidenceBundle) bool {
		for _, d := range dirs {
			if e.HasDir(d) {
				return true
			}
		}
		return false
	}
}

// DirNamed holds when a directory with one of the base names exists at any depth.
func DirNamed(names ...string) Predicate {
	return func(e *EvidenceBundle) bool {
		for d := range e.DirsPresent {
			base := path.Base(d)
			for _, name := range names {
				if base == name {
					return true
				}
			}
		}
		return false
	}
}

// HasManifest holds when any of the manifest keys was declared.
func HasManifest(keys ...string) Predicate {
	return func(e *EvidenceBundle) bool {
		for _, k := range keys {
			if _, ok := e.ManifestFields[k]; ok {
				return true
			}
		}
		return false
	}
}

// HasManifestPrefix holds when some manifest key starts with one of the prefixes.
func HasManifestPrefix(prefixes ...string) Predicate {
	return func(e *EvidenceBundle) bool {
		for k := range e.ManifestFields {
			for _, p := range prefixes {
				if strings.HasPrefix(k, p) {
					return true
				}
			}
		}
		return false
	}
}

// ContentMatches holds when any of the content patterns matched somewhere.
func ContentMatches(patternIDs ...string) Predicate {
	return func(e *EvidenceBundle) bool {
		for _, id := range patternIDs {
			if e.Matched(id) {
				return true
			}
		}
		return false
	}
}

func AnyOf(preds ...Predicate) Predicate {
	return func(e *EvidenceBundle) bool {
		for _, p := range preds {
			if p(e) {
				return true
			}
		}
		return false
	}
}

func AllOf(preds ...Predicate) Predicate {
	return func(e *EvidenceBundle) bool {
		for _, p := range preds {
			if !p(e) {
				return false
			}
		}
		return true
	}
}

// Not inverts p. Only variant selection uses it; scoring rules stay
// monotonic in the evidence.
func Not(p Predicate) Predicate {
	return func(e *EvidenceBundle) bool {
		return !p(e)
	}
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// DirGlob holds when any present directory matches one of the patterns.
func DirGlob(patterns ...string) Predicate {
	return func(e *EvidenceBundle) bool {
		for d := range e.DirsPresent {
			if matchAny(patterns, d) {
				return true
			}
		}
		return false
	}
}

// ManifestValueContains holds when a manifest key with prefix has a value
// containing substr, e.g. an npm script invoking a framework CLI.
func ManifestValueContains(prefix, substr string) Predicate {
	return func(e *EvidenceBundle) bool {
		for k, v := range e.ManifestFields {
			if strings.HasPrefix(k, prefix) && strings.Contains(v, substr) {
				return true
			}
		}
		return false
	}
}
