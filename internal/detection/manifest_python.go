package detection

import (
	"bufio"
	"bytes"
	"context"
	"path"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

var requirementNameRegex = regexp.MustCompile(`^\s*([A-Za-z0-9][A-Za-z0-9._\-]*)(\[[^\]]*\])?\s*(.*)$`)

// parseRequirement splits a PEP 508 style requirement into name and specifier.
func parseRequirement(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if i := strings.Index(line, "#"); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	if i := strings.Index(line, ";"); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	if line == "" || strings.HasPrefix(line, "-") {
		return "", "", false
	}

	m := requirementNameRegex.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return normalizePythonName(m[1]), strings.TrimSpace(m[3]), true
}

func normalizePythonName(name string) string {
	name = strings.ToLower(name)
	return strings.NewReplacer("_", "-", ".", "-").Replace(name)
}

type requirementsParser struct{}

func (p *requirementsParser) Name() string { return "requirements.txt" }

func (p *requirementsParser) Matches(rel string) bool {
	base := path.Base(rel)
	return strings.HasPrefix(base, "requirements") && strings.HasSuffix(base, ".txt")
}

func (p *requirementsParser) Parse(_ context.Context, _ string, content []byte, fields ManifestFields) error {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		if name, spec, ok := parseRequirement(scanner.Text()); ok {
			fields.set("pypi:"+name, spec)
		}
	}
	return scanner.Err()
}

type pyprojectParser struct{}

func (p *pyprojectParser) Name() string { return "pyproject.toml" }

func (p *pyprojectParser) Matches(rel string) bool {
	return baseNameMatcher{"pyproject.toml"}.match(rel)
}

func (p *pyprojectParser) Parse(_ context.Context, _ string, content []byte, fields ManifestFields) error {
	var pyproject struct {
		Project struct {
			Dependencies         []string            `toml:"dependencies"`
			OptionalDependencies map[string][]string `toml:"optional-dependencies"`
		} `toml:"project"`
		Tool struct {
			Poetry struct {
				Dependencies    map[string]any `toml:"dependencies"`
				DevDependencies map[string]any `toml:"dev-dependencies"`
			} `toml:"poetry"`
		} `toml:"tool"`
	}
	if _, err := toml.Decode(string(content), &pyproject); err != nil {
		return err
	}

	for _, req := range pyproject.Project.Dependencies {
		if name, spec, ok := parseRequirement(req); ok {
			fields.set("pypi:"+name, spec)
		}
	}
	for _, group := range sortedKeys(pyproject.Project.OptionalDependencies) {
		for _, req := range pyproject.Project.OptionalDependencies[group] {
			if name, spec, ok := parseRequirement(req); ok {
				fields.set("pypi:"+name, spec)
			}
		}
	}
	for _, deps := range []map[string]any{pyproject.Tool.Poetry.Dependencies, pyproject.Tool.Poetry.DevDependencies} {
		for _, name := range sortedKeys(deps) {
			if strings.EqualFold(name, "python") {
				continue
			}
			fields.set("pypi:"+normalizePythonName(name), tomlVersion(deps[name]))
		}
	}
	return nil
}

type pipfileParser struct{}

func (p *pipfileParser) Name() string { return "Pipfile" }

func (p *pipfileParser) Matches(rel string) bool {
	return baseNameMatcher{"Pipfile"}.match(rel)
}

func (p *pipfileParser) Parse(_ context.Context, _ string, content []byte, fields ManifestFields) error {
	var pipfile struct {
		Packages    map[string]any `toml:"packages"`
		DevPackages map[string]any `toml:"dev-packages"`
	}
	if _, err := toml.Decode(string(content), &pipfile); err != nil {
		return err
	}

	for _, deps := range []map[string]any{pipfile.Packages, pipfile.DevPackages} {
		for _, name := range sortedKeys(deps) {
			fields.set("pypi:"+normalizePythonName(name), tomlVersion(deps[name]))
		}
	}
	return nil
}

// tomlVersion flattens the string-or-table dependency forms used by Poetry,
// Pipfile and Cargo.
func tomlVersion(spec any) string {
	switch v := spec.(type) {
	case string:
		return v
	case map[string]any:
		if version, ok := v["version"].(string); ok {
			return version
		}
	}
	return ""
}
