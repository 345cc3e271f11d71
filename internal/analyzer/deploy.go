package analyzer

import (
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/railwayapp/stackgen/internal/detection"
	"gopkg.in/yaml.v3"
)

// DeployTarget is a deployment platform the project is configured for.
type DeployTarget struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Path    string   `json:"path" yaml:"path"`
	Details []string `json:"details,omitempty" yaml:"details,omitempty"`
}

type deployPlatform struct {
	id       string
	name     string
	patterns []string
	details  func(a *Analyzer, root, rel string, bundle *detection.EvidenceBundle) []string
}

var deployPlatforms = []deployPlatform{
	{id: "docker", name: "Docker", patterns: []string{"**/Dockerfile", "**/Dockerfile.*", "**/*.Dockerfile"}, details: dockerDetails},
	{id: "compose", name: "Docker Compose", patterns: []string{"**/{docker-compose,compose}.{yml,yaml}", "**/docker-compose.*.{yml,yaml}"}, details: composeDetails},
	{id: "fly", name: "Fly.io", patterns: []string{"**/fly.toml"}, details: flyDetails},
	{id: "railway", name: "Railway", patterns: []string{"**/railway.{json,toml}"}},
	{id: "vercel", name: "Vercel", patterns: []string{"vercel.json", ".vercel/project.json"}},
	{id: "netlify", name: "Netlify", patterns: []string{"**/netlify.toml"}},
	{id: "render", name: "Render", patterns: []string{"render.yaml"}, details: renderDetails},
	{id: "heroku", name: "Heroku", patterns: []string{"Procfile"}},
	{id: "digitalocean", name: "DigitalOcean App Platform", patterns: []string{".do/app.yaml", ".do/deploy.template.yaml"}},
	{id: "serverless", name: "Serverless Framework", patterns: []string{"**/serverless.{yml,yaml,ts,js}"}},
	{id: "helm", name: "Helm", patterns: []string{"**/Chart.yaml"}, details: helmDetails},
	{id: "skaffold", name: "Skaffold", patterns: []string{"**/skaffold.yaml"}, details: skaffoldDetails},
}

// deployTargets reports each configured platform once, using the first
// matching file in lexical order.
func (a *Analyzer) deployTargets(root string, bundle *detection.EvidenceBundle) []DeployTarget {
	files := bundle.Files()
	targets := make([]DeployTarget, 0)
	for _, platform := range deployPlatforms {
		rel, ok := firstMatch(files, platform.patterns)
		if !ok {
			continue
		}
		target := DeployTarget{ID: platform.id, Name: platform.name, Path: rel}
		if platform.details != nil {
			target.Details = platform.details(a, root, rel, bundle)
		}
		targets = append(targets, target)
	}
	return targets
}

func firstMatch(files, patterns []string) (string, bool) {
	for _, rel := range files {
		for _, pattern := range patterns {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				return rel, true
			}
		}
	}
	return "", false
}

func (a *Analyzer) read(root, rel string) ([]byte, error) {
	return a.filesystem.ReadFile(a.filesystem.Join(root, path.Clean(rel)))
}

func dockerDetails(_ *Analyzer, _, _ string, bundle *detection.EvidenceBundle) []string {
	var details []string
	for _, key := range bundle.ManifestWithPrefix("docker:image:") {
		image := strings.TrimPrefix(key, "docker:image:")
		if tag, _ := bundle.Manifest(key); tag != "" {
			image += ":" + tag
		}
		details = append(details, "base image "+image)
	}
	return details
}

func composeDetails(_ *Analyzer, _, _ string, bundle *detection.EvidenceBundle) []string {
	var details []string
	for _, key := range bundle.ManifestWithPrefix("compose:service:") {
		details = append(details, "service "+strings.TrimPrefix(key, "compose:service:"))
	}
	return details
}

type flyConfig struct {
	App           string `toml:"app"`
	PrimaryRegion string `toml:"primary_region"`
}

func flyDetails(a *Analyzer, root, rel string, _ *detection.EvidenceBundle) []string {
	content, err := a.read(root, rel)
	if err != nil {
		return nil
	}
	var config flyConfig
	if _, err := toml.Decode(string(content), &config); err != nil {
		a.logger.Debug().Err(err).Str("file", rel).Msg("skipping malformed fly.toml")
		return nil
	}

	var details []string
	if config.App != "" {
		details = append(details, "app "+config.App)
	}
	if config.PrimaryRegion != "" {
		details = append(details, "region "+config.PrimaryRegion)
	}
	return details
}

type renderBlueprint struct {
	Services []struct {
		Name string `yaml:"name"`
		Type string `yaml:"type"`
	} `yaml:"services"`
}

func renderDetails(a *Analyzer, root, rel string, _ *detection.EvidenceBundle) []string {
	var blueprint renderBlueprint
	if !a.decodeYAML(root, rel, &blueprint) {
		return nil
	}
	var details []string
	for _, s := range blueprint.Services {
		if s.Name == "" {
			continue
		}
		if s.Type != "" {
			details = append(details, s.Type+" service "+s.Name)
		} else {
			details = append(details, "service "+s.Name)
		}
	}
	return details
}

type helmChart struct {
	Name       string `yaml:"name"`
	Version    string `yaml:"version"`
	AppVersion string `yaml:"appVersion"`
}

func helmDetails(a *Analyzer, root, rel string, _ *detection.EvidenceBundle) []string {
	var chart helmChart
	if !a.decodeYAML(root, rel, &chart) || chart.Name == "" {
		return nil
	}
	detail := "chart " + chart.Name
	if chart.Version != "" {
		detail += " " + chart.Version
	}
	return []string{detail}
}

type skaffoldConfig struct {
	Build struct {
		Artifacts []struct {
			Image   string `yaml:"image"`
			Context string `yaml:"context"`
		} `yaml:"artifacts"`
	} `yaml:"build"`
}

func skaffoldDetails(a *Analyzer, root, rel string, _ *detection.EvidenceBundle) []string {
	var config skaffoldConfig
	if !a.decodeYAML(root, rel, &config) {
		return nil
	}
	var details []string
	for _, artifact := range config.Build.Artifacts {
		if artifact.Image != "" {
			details = append(details, "artifact "+artifact.Image)
		}
	}
	return details
}

func (a *Analyzer) decodeYAML(root, rel string, v any) bool {
	content, err := a.read(root, rel)
	if err != nil {
		return false
	}
	if err := yaml.Unmarshal(content, v); err != nil {
		a.logger.Debug().Err(err).Str("file", rel).Msg("skipping malformed deploy config")
		return false
	}
	return true
}
