package detection

import (
	"context"
	"encoding/xml"
	"path"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	catalogPluginPrefix  = "gradle-catalog:plugin:"
	catalogLibraryPrefix = "gradle-catalog:library:"
)

// catalogAccessor normalizes a version catalog alias the way Gradle builds
// the type-safe accessor, so "compose-multiplatform" matches
// libs.plugins.compose.multiplatform.
func catalogAccessor(alias string) string {
	alias = strings.ToLower(alias)
	return strings.NewReplacer("-", ".", "_", ".").Replace(alias)
}

type versionCatalogParser struct{}

func (p *versionCatalogParser) Name() string { return "libs.versions.toml" }

func (p *versionCatalogParser) Matches(rel string) bool {
	return strings.HasSuffix(path.Base(rel), ".versions.toml")
}

func (p *versionCatalogParser) Parse(_ context.Context, _ string, content []byte, fields ManifestFields) error {
	var catalog struct {
		Libraries map[string]any `toml:"libraries"`
		Plugins   map[string]any `toml:"plugins"`
	}
	if _, err := toml.Decode(string(content), &catalog); err != nil {
		return err
	}

	for _, alias := range sortedKeys(catalog.Plugins) {
		var id string
		switch v := catalog.Plugins[alias].(type) {
		case string:
			id, _, _ = strings.Cut(v, ":")
		case map[string]any:
			id, _ = v["id"].(string)
		}
		if id != "" {
			fields.set(catalogPluginPrefix+catalogAccessor(alias), id)
		}
	}

	for _, alias := range sortedKeys(catalog.Libraries) {
		var coordinates string
		switch v := catalog.Libraries[alias].(type) {
		case string:
			parts := strings.SplitN(v, ":", 3)
			if len(parts) >= 2 {
				coordinates = parts[0] + ":" + parts[1]
			}
		case map[string]any:
			if module, ok := v["module"].(string); ok {
				coordinates = module
			} else {
				group, _ := v["group"].(string)
				name, _ := v["name"].(string)
				if group != "" && name != "" {
					coordinates = group + ":" + name
				}
			}
		}
		if coordinates != "" {
			fields.set(catalogLibraryPrefix+catalogAccessor(alias), coordinates)
			fields.set("maven:"+coordinates, "")
		}
	}
	return nil
}

var (
	gradlePluginIDRegex   = regexp.MustCompile(`\bid\s*\(?\s*["']([\w.\-]+)["']`)
	gradleKotlinRegex     = regexp.MustCompile(`\bkotlin\s*\(\s*["']([\w.\-]+)["']\s*\)`)
	gradleAliasRegex      = regexp.MustCompile(`\balias\s*\(\s*libs\.plugins\.([\w.]+)\s*\)`)
	gradleApplyRegex      = regexp.MustCompile(`\bapply\s+plugin\s*:\s*['"]([\w.\-]+)['"]`)
	gradleDependencyRegex = regexp.MustCompile(`\b(?:implementation|api|compileOnly|runtimeOnly|developmentOnly|testImplementation|annotationProcessor|kapt|ksp|classpath)\s*\(?\s*["']([\w.\-]+):([\w.\-]+)(?::([^"']+))?["']`)
	gradleCatalogDepRegex = regexp.MustCompile(`\b(?:implementation|api|compileOnly|runtimeOnly|developmentOnly|testImplementation|kapt|ksp)\s*\(\s*libs\.([\w.]+)\s*\)`)
)

type gradleParser struct{}

func (p *gradleParser) Name() string { return "gradle" }

func (p *gradleParser) Matches(rel string) bool {
	base := path.Base(rel)
	return base == "build.gradle" || base == "build.gradle.kts"
}

func (p *gradleParser) Parse(_ context.Context, _ string, content []byte, fields ManifestFields) error {
	text := string(content)

	for _, m := range gradlePluginIDRegex.FindAllStringSubmatch(text, -1) {
		fields.set("gradle-plugin:"+m[1], "")
	}
	for _, m := range gradleKotlinRegex.FindAllStringSubmatch(text, -1) {
		fields.set("gradle-plugin:org.jetbrains.kotlin."+m[1], "")
	}
	for _, m := range gradleApplyRegex.FindAllStringSubmatch(text, -1) {
		fields.set("gradle-plugin:"+m[1], "")
	}
	for _, m := range gradleAliasRegex.FindAllStringSubmatch(text, -1) {
		if id, ok := fields[catalogPluginPrefix+catalogAccessor(m[1])]; ok {
			fields.set("gradle-plugin:"+id, "")
		}
	}
	for _, m := range gradleDependencyRegex.FindAllStringSubmatch(text, -1) {
		fields.set("maven:"+m[1]+":"+m[2], m[3])
	}
	for _, m := range gradleCatalogDepRegex.FindAllStringSubmatch(text, -1) {
		if coordinates, ok := fields[catalogLibraryPrefix+catalogAccessor(m[1])]; ok {
			fields.set("maven:"+coordinates, "")
		}
	}
	return nil
}

type pomCoordinate struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

func (c pomCoordinate) key() string {
	if c.GroupID == "" || c.ArtifactID == "" {
		return ""
	}
	return "maven:" + c.GroupID + ":" + c.ArtifactID
}

type pomParser struct{}

func (p *pomParser) Name() string { return "pom.xml" }

func (p *pomParser) Matches(rel string) bool {
	return baseNameMatcher{"pom.xml"}.match(rel)
}

func (p *pomParser) Parse(_ context.Context, _ string, content []byte, fields ManifestFields) error {
	var pom struct {
		Parent       pomCoordinate   `xml:"parent"`
		Dependencies []pomCoordinate `xml:"dependencies>dependency"`
		Managed      []pomCoordinate `xml:"dependencyManagement>dependencies>dependency"`
		Plugins      []pomCoordinate `xml:"build>plugins>plugin"`
	}
	if err := xml.Unmarshal(content, &pom); err != nil {
		return err
	}

	fields.set(pom.Parent.key(), pom.Parent.Version)
	for _, group := range [][]pomCoordinate{pom.Dependencies, pom.Managed, pom.Plugins} {
		for _, c := range group {
			fields.set(c.key(), c.Version)
		}
	}
	return nil
}
