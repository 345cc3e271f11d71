package detection

import (
	"context"
	"encoding/json"
)

type packageJSONParser struct{}

func (p *packageJSONParser) Name() string { return "package.json" }

func (p *packageJSONParser) Matches(rel string) bool {
	return baseNameMatcher{"package.json"}.match(rel)
}

func (p *packageJSONParser) Parse(_ context.Context, _ string, content []byte, fields ManifestFields) error {
	var pkg struct {
		Name             string            `json:"name"`
		Dependencies     map[string]string `json:"dependencies"`
		DevDependencies  map[string]string `json:"devDependencies"`
		PeerDependencies map[string]string `json:"peerDependencies"`
		Scripts          map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(content, &pkg); err != nil {
		return err
	}

	for _, deps := range []map[string]string{pkg.Dependencies, pkg.DevDependencies, pkg.PeerDependencies} {
		for _, name := range sortedKeys(deps) {
			fields.set("npm:"+name, deps[name])
		}
	}
	for _, name := range sortedKeys(pkg.Scripts) {
		fields.set("npm-script:"+name, pkg.Scripts[name])
	}
	if pkg.Name != "" {
		fields.set("npm-package:name", pkg.Name)
	}
	return nil
}

type composerParser struct{}

func (p *composerParser) Name() string { return "composer.json" }

func (p *composerParser) Matches(rel string) bool {
	return baseNameMatcher{"composer.json"}.match(rel)
}

func (p *composerParser) Parse(_ context.Context, _ string, content []byte, fields ManifestFields) error {
	var composer struct {
		Require    map[string]string `json:"require"`
		RequireDev map[string]string `json:"require-dev"`
	}
	if err := json.Unmarshal(content, &composer); err != nil {
		return err
	}

	for _, deps := range []map[string]string{composer.Require, composer.RequireDev} {
		for _, name := range sortedKeys(deps) {
			fields.set("composer:"+name, deps[name])
		}
	}
	return nil
}
