package stack

import (
	"errors"
	"fmt"
	"slices"

	"github.com/railwayapp/stackgen/internal/detection"
)

var (
	ErrUnknownFramework = errors.New("unknown framework")
	ErrUnknownVariant   = errors.New("unknown variant")
)

// Source records whether a stack was detected or declared by the user.
type Source string

const (
	SourceDetected Source = "detected"
	SourceDeclared Source = "declared"
)

// TechStack is the resolved description of a project that templates render.
type TechStack struct {
	ProjectName      string     `json:"projectName" yaml:"projectName"`
	Framework        string     `json:"framework" yaml:"framework"`
	Variant          string     `json:"variant,omitempty" yaml:"variant,omitempty"`
	Platforms        []string   `json:"platforms,omitempty" yaml:"platforms,omitempty"`
	Confidence       int        `json:"confidence" yaml:"confidence"`
	Language         string     `json:"language,omitempty" yaml:"language,omitempty"`
	PackageManager   string     `json:"packageManager,omitempty" yaml:"packageManager,omitempty"`
	FrameworkVersion string     `json:"frameworkVersion,omitempty" yaml:"frameworkVersion,omitempty"`
	Additional       []string   `json:"additional,omitempty" yaml:"additional,omitempty"`
	Commands         CommandSet `json:"commands" yaml:"commands"`
	Source           Source     `json:"source" yaml:"source"`
}

// Detected reports whether the stack names a framework at all.
func (s TechStack) Detected() bool {
	return s.Framework != ""
}

// FromDetection builds a stack from a detection result. The bundle supplies
// the declared framework version; managers are the package managers found
// in the tree, in preference order.
func FromDetection(result *detection.Result, bundle *detection.EvidenceBundle, managers []string) TechStack {
	s := TechStack{Source: SourceDetected}
	if result == nil || result.Primary == nil {
		return s
	}

	primary := result.Primary
	s.Framework = primary.Framework
	s.Variant = primary.Variant
	s.Platforms = slices.Clone(primary.Platforms)
	s.Confidence = primary.Confidence
	s.Language = LanguageOf(primary.Framework)
	s.PackageManager = ManagerFor(primary.Framework, managers)
	s.Commands = Commands(s.Framework, s.PackageManager)

	if bundle != nil {
		s.FrameworkVersion = frameworkVersion(primary.Framework, bundle)
		if name, ok := bundle.Manifest("npm-package:name"); ok {
			s.ProjectName = name
		}
	}

	for _, d := range result.AllDetected {
		if d.Framework != primary.Framework {
			s.Additional = append(s.Additional, d.Framework)
		}
	}
	return s
}

func frameworkVersion(framework string, bundle *detection.EvidenceBundle) string {
	for _, key := range frameworks[framework].packages {
		if raw, ok := bundle.Manifest(key); ok {
			if v := NormalizeVersion(raw); v != "" {
				return v
			}
		}
	}
	return ""
}

// Declared builds a stack from user input. The variant must be one the
// framework can resolve to, or empty.
func Declared(framework, variant string) (TechStack, error) {
	if !Known(framework) {
		return TechStack{}, fmt.Errorf("%w: %q", ErrUnknownFramework, framework)
	}
	if variant != "" && !slices.Contains(Variants(framework), variant) {
		return TechStack{}, fmt.Errorf("%w %q for %s", ErrUnknownVariant, variant, framework)
	}

	s := TechStack{
		Framework:  framework,
		Variant:    variant,
		Confidence: 100,
		Language:   LanguageOf(framework),
		Source:     SourceDeclared,
	}
	s.PackageManager = ManagerFor(framework, nil)
	s.Commands = Commands(framework, s.PackageManager)
	return s, nil
}

// WithPackageManager returns a copy of s using manager for its commands.
func (s TechStack) WithPackageManager(manager string) TechStack {
	s.PackageManager = ManagerFor(s.Framework, []string{manager})
	s.Commands = Commands(s.Framework, s.PackageManager)
	return s
}
