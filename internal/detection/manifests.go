package detection

import (
	"context"
	"path"
	"strings"
)

// ManifestParser turns one manifest file into normalized manifest fields.
// Parse errors are reported to the scanner, which logs and ignores them.
type ManifestParser interface {
	Name() string
	Matches(rel string) bool
	Parse(ctx context.Context, rel string, content []byte, fields ManifestFields) error
}

// DefaultParsers returns the manifest parsers in evaluation order. The
// version catalog parser precedes the Gradle script parser so plugin
// aliases can be resolved.
func DefaultParsers() []ManifestParser {
	return []ManifestParser{
		&packageJSONParser{},
		&composerParser{},
		&requirementsParser{},
		&pyprojectParser{},
		&pipfileParser{},
		&goModParser{},
		&cargoParser{},
		&gemfileParser{},
		&pubspecParser{},
		&versionCatalogParser{},
		&gradleParser{},
		&pomParser{},
		&csprojParser{},
		&mixParser{},
		&dockerfileParser{},
		&composeParser{},
		&dotenvParser{},
	}
}

type baseNameMatcher []string

func (m baseNameMatcher) match(rel string) bool {
	base := path.Base(rel)
	for _, name := range m {
		if base == name {
			return true
		}
	}
	return false
}

// stripVersionSuffix drops a trailing "/vN" major version from a module path.
func stripVersionSuffix(modPath string) string {
	i := strings.LastIndex(modPath, "/v")
	if i < 0 {
		return modPath
	}
	suffix := modPath[i+2:]
	if suffix == "" {
		return modPath
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return modPath
		}
	}
	return modPath[:i]
}
