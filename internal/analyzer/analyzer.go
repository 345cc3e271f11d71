package analyzer

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"github.com/railwayapp/stackgen/internal/detection"
	"github.com/railwayapp/stackgen/internal/environment"
	"github.com/railwayapp/stackgen/internal/filesystems"
	"github.com/railwayapp/stackgen/internal/stack"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMaxReferenceFiles = 200
	maxReferenceFileSize     = 256 * 1024
)

// Report is everything the analyzer learned about a project.
type Report struct {
	Root            string                 `json:"root" yaml:"root"`
	Detection       *detection.Result      `json:"detection" yaml:"detection"`
	Stack           stack.TechStack        `json:"stack" yaml:"stack"`
	PackageManagers []string               `json:"packageManagers" yaml:"packageManagers"`
	Languages       []LanguageShare        `json:"languages" yaml:"languages"`
	DeployTargets   []DeployTarget         `json:"deployTargets" yaml:"deployTargets"`
	Env             []environment.Variable `json:"env" yaml:"env"`
	UndeclaredEnv   []string               `json:"undeclaredEnv,omitempty" yaml:"undeclaredEnv,omitempty"`
}

// Analyzer wraps a detector with the project facts templates need beyond
// the framework itself.
type Analyzer struct {
	filesystem        filesystems.FileSystem
	detectorOptions   []detection.Option
	maxReferenceFiles int
	logger            zerolog.Logger

	detector *detection.Detector
}

type Option func(*Analyzer)

// WithDetectionOptions forwards options to the underlying detector.
func WithDetectionOptions(opts ...detection.Option) Option {
	return func(a *Analyzer) { a.detectorOptions = append(a.detectorOptions, opts...) }
}

// WithMaxReferenceFiles caps how many source files are read when looking
// for environment variable references. Zero disables the pass.
func WithMaxReferenceFiles(n int) Option {
	return func(a *Analyzer) { a.maxReferenceFiles = n }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

func New(filesystem filesystems.FileSystem, opts ...Option) *Analyzer {
	a := &Analyzer{
		filesystem:        filesystem,
		maxReferenceFiles: defaultMaxReferenceFiles,
		logger:            zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	detectorOptions := append([]detection.Option{detection.WithLogger(a.logger)}, a.detectorOptions...)
	a.detector = detection.NewDetector(filesystem, detectorOptions...)
	return a
}

// Analyze is shorthand for New(filesystem).Analyze(ctx, root).
func Analyze(ctx context.Context, filesystem filesystems.FileSystem, root string) (*Report, error) {
	return New(filesystem).Analyze(ctx, root)
}

// Analyze scans root once and derives the report from the evidence bundle.
func (a *Analyzer) Analyze(ctx context.Context, root string) (*Report, error) {
	log := a.logger.With().Str("component", "analyzer").Str("root", root).Logger()

	bundle, err := a.detector.Scan(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", root, err)
	}
	result := a.detector.Evaluate(ctx, bundle)

	report := &Report{
		Root:            root,
		Detection:       result,
		PackageManagers: PackageManagers(bundle),
		Languages:       Languages(bundle),
		DeployTargets:   a.deployTargets(root, bundle),
	}

	inv := environment.FromBundle(bundle)
	if err := a.collectReferences(ctx, root, bundle, inv); err != nil {
		return nil, fmt.Errorf("analyze %s: %w", root, err)
	}
	report.Env = inv.Variables()
	for _, v := range inv.Undeclared() {
		report.UndeclaredEnv = append(report.UndeclaredEnv, v.Name)
	}

	report.Stack = stack.FromDetection(result, bundle, report.PackageManagers)
	if report.Stack.ProjectName == "" {
		report.Stack.ProjectName = a.projectName(root, bundle)
	}

	log.Debug().
		Str("framework", report.Stack.Framework).
		Strs("managers", report.PackageManagers).
		Int("deployTargets", len(report.DeployTargets)).
		Int("env", len(report.Env)).
		Msg("analysis complete")

	return report, nil
}

// collectReferences reads source files and records the environment
// variables they read. Results merge in file order so the inventory is
// the same on every run.
func (a *Analyzer) collectReferences(ctx context.Context, root string, bundle *detection.EvidenceBundle, inv *environment.Inventory) error {
	if a.maxReferenceFiles <= 0 {
		return nil
	}

	var files []string
	for _, rel := range bundle.Files() {
		if environment.IsSource(rel) {
			files = append(files, rel)
			if len(files) == a.maxReferenceFiles {
				break
			}
		}
	}

	refs := make([][]string, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, rel := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			refs[i] = a.readReferences(root, rel)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, names := range refs {
		for _, name := range names {
			inv.Reference(name, files[i])
		}
	}
	return nil
}

func (a *Analyzer) readReferences(root, rel string) []string {
	p := a.filesystem.Join(root, path.Clean(rel))
	if info, err := a.filesystem.Stat(p); err != nil || info.Size() > maxReferenceFileSize {
		return nil
	}
	content, err := a.filesystem.ReadFile(p)
	if err != nil || enry.IsBinary(content) {
		return nil
	}
	return environment.References(content)
}

func (a *Analyzer) projectName(root string, bundle *detection.EvidenceBundle) string {
	if modules := bundle.ManifestWithPrefix("go-module:"); len(modules) > 0 {
		return path.Base(strings.TrimPrefix(modules[0], "go-module:"))
	}
	return a.filesystem.Base(root)
}
