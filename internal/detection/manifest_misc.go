package detection

import (
	"context"
	"encoding/xml"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

type goModParser struct{}

func (p *goModParser) Name() string { return "go.mod" }

func (p *goModParser) Matches(rel string) bool {
	return baseNameMatcher{"go.mod"}.match(rel)
}

func (p *goModParser) Parse(_ context.Context, rel string, content []byte, fields ManifestFields) error {
	f, err := modfile.ParseLax(rel, content, nil)
	if err != nil {
		return err
	}

	if f.Module != nil {
		fields.set("go-module:"+f.Module.Mod.Path, "")
	}
	for _, req := range f.Require {
		fields.set("go:"+req.Mod.Path, req.Mod.Version)
		fields.set("go:"+stripVersionSuffix(req.Mod.Path), req.Mod.Version)
	}
	return nil
}

type cargoParser struct{}

func (p *cargoParser) Name() string { return "Cargo.toml" }

func (p *cargoParser) Matches(rel string) bool {
	return baseNameMatcher{"Cargo.toml"}.match(rel)
}

func (p *cargoParser) Parse(_ context.Context, _ string, content []byte, fields ManifestFields) error {
	var cargo struct {
		Dependencies      map[string]any `toml:"dependencies"`
		DevDependencies   map[string]any `toml:"dev-dependencies"`
		BuildDependencies map[string]any `toml:"build-dependencies"`
		Workspace         struct {
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"workspace"`
	}
	if _, err := toml.Decode(string(content), &cargo); err != nil {
		return err
	}

	for _, deps := range []map[string]any{cargo.Dependencies, cargo.DevDependencies, cargo.BuildDependencies, cargo.Workspace.Dependencies} {
		for _, name := range sortedKeys(deps) {
			fields.set("cargo:"+name, tomlVersion(deps[name]))
		}
	}
	return nil
}

var gemRegex = regexp.MustCompile(`(?m)^\s*gem\s+['"]([^'"]+)['"](?:\s*,\s*['"]([^'"]+)['"])?`)

type gemfileParser struct{}

func (p *gemfileParser) Name() string { return "Gemfile" }

func (p *gemfileParser) Matches(rel string) bool {
	return baseNameMatcher{"Gemfile"}.match(rel)
}

func (p *gemfileParser) Parse(_ context.Context, _ string, content []byte, fields ManifestFields) error {
	for _, m := range gemRegex.FindAllStringSubmatch(string(content), -1) {
		fields.set("gem:"+m[1], m[2])
	}
	return nil
}

type pubspecParser struct{}

func (p *pubspecParser) Name() string { return "pubspec.yaml" }

func (p *pubspecParser) Matches(rel string) bool {
	return baseNameMatcher{"pubspec.yaml"}.match(rel)
}

func (p *pubspecParser) Parse(_ context.Context, _ string, content []byte, fields ManifestFields) error {
	var pubspec struct {
		Dependencies    map[string]any `yaml:"dependencies"`
		DevDependencies map[string]any `yaml:"dev_dependencies"`
	}
	if err := yaml.Unmarshal(content, &pubspec); err != nil {
		return err
	}

	for _, deps := range []map[string]any{pubspec.Dependencies, pubspec.DevDependencies} {
		for _, name := range sortedKeys(deps) {
			switch v := deps[name].(type) {
			case string:
				fields.set("pub:"+name, v)
			case map[string]any:
				if sdk, ok := v["sdk"].(string); ok {
					fields.set("pub:"+name, "sdk:"+sdk)
				} else {
					fields.set("pub:"+name, "")
				}
			default:
				fields.set("pub:"+name, "")
			}
		}
	}
	return nil
}

type csprojParser struct{}

func (p *csprojParser) Name() string { return "csproj" }

func (p *csprojParser) Matches(rel string) bool {
	return strings.HasSuffix(rel, ".csproj") || strings.HasSuffix(rel, ".fsproj")
}

func (p *csprojParser) Parse(_ context.Context, _ string, content []byte, fields ManifestFields) error {
	var project struct {
		Sdk        string `xml:"Sdk,attr"`
		ItemGroups []struct {
			PackageReferences []struct {
				Include string `xml:"Include,attr"`
				Version string `xml:"Version,attr"`
			} `xml:"PackageReference"`
		} `xml:"ItemGroup"`
	}
	if err := xml.Unmarshal(content, &project); err != nil {
		return err
	}

	if project.Sdk != "" {
		fields.set("dotnet-sdk:"+project.Sdk, "")
	}
	for _, group := range project.ItemGroups {
		for _, ref := range group.PackageReferences {
			fields.set("nuget:"+ref.Include, ref.Version)
		}
	}
	return nil
}

var mixDepRegex = regexp.MustCompile(`\{\s*:(\w+)\s*,\s*"([^"]*)"`)

type mixParser struct{}

func (p *mixParser) Name() string { return "mix.exs" }

func (p *mixParser) Matches(rel string) bool {
	return path.Base(rel) == "mix.exs"
}

func (p *mixParser) Parse(_ context.Context, rel string, content []byte, fields ManifestFields) error {
	text := string(content)
	if !strings.Contains(text, "defmodule") {
		return fmt.Errorf("%s: not a mix project", rel)
	}
	for _, m := range mixDepRegex.FindAllStringSubmatch(text, -1) {
		fields.set("hex:"+m[1], m[2])
	}
	return nil
}
