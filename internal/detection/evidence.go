package detection

import (
	"path"
	"sort"
	"strings"
)

// ContentKey identifies a single (file, pattern) content match.
type ContentKey struct {
	File    string
	Pattern string
}

// EvidenceBundle is everything the scanner observed about one project tree.
// Paths are slash separated and relative to the scanned root.
type EvidenceBundle struct {
	FilesPresent   map[string]struct{}
	DirsPresent    map[string]struct{}
	ManifestFields ManifestFields
	ContentMatches map[ContentKey]bool
}

// ManifestFields maps normalized manifest keys such as "npm:react" or
// "gradle-plugin:org.jetbrains.compose" to their declared value.
type ManifestFields map[string]string

// set records key unless an earlier manifest already declared it.
func (f ManifestFields) set(key, value string) {
	if key == "" {
		return
	}
	if _, ok := f[key]; !ok {
		f[key] = value
	}
}

func NewEvidenceBundle() *EvidenceBundle {
	return &EvidenceBundle{
		FilesPresent:   make(map[string]struct{}),
		DirsPresent:    make(map[string]struct{}),
		ManifestFields: make(ManifestFields),
		ContentMatches: make(map[ContentKey]bool),
	}
}

func (e *EvidenceBundle) HasFile(rel string) bool {
	_, ok := e.FilesPresent[rel]
	return ok
}

func (e *EvidenceBundle) HasDir(rel string) bool {
	_, ok := e.DirsPresent[rel]
	return ok
}

// Manifest returns the value recorded for key.
func (e *EvidenceBundle) Manifest(key string) (string, bool) {
	v, ok := e.ManifestFields[key]
	return v, ok
}

// ManifestWithPrefix returns the sorted keys starting with prefix.
func (e *EvidenceBundle) ManifestWithPrefix(prefix string) []string {
	var keys []string
	for k := range e.ManifestFields {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Matched reports whether patternID matched in any scanned file.
func (e *EvidenceBundle) Matched(patternID string) bool {
	for k, ok := range e.ContentMatches {
		if ok && k.Pattern == patternID {
			return true
		}
	}
	return false
}

// Files returns the present files in lexical order.
func (e *EvidenceBundle) Files() []string {
	return sortedKeys(e.FilesPresent)
}

// Dirs returns the present directories in lexical order.
func (e *EvidenceBundle) Dirs() []string {
	return sortedKeys(e.DirsPresent)
}

func (e *EvidenceBundle) addFile(rel string) {
	e.FilesPresent[rel] = struct{}{}
}

func (e *EvidenceBundle) addDir(rel string) {
	e.DirsPresent[rel] = struct{}{}
}

// sortedKeys gives map-backed manifests a stable iteration order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// depth counts the separators in a relative path; root level files are 0.
func depth(rel string) int {
	if rel == "." || rel == "" {
		return 0
	}
	return strings.Count(path.Clean(rel), "/")
}
