package detection

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
	"github.com/go-enry/go-enry/v2"
	"github.com/railwayapp/stackgen/internal/filesystems"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrUnreadableRoot is returned when the scan root cannot be listed.
var ErrUnreadableRoot = errors.New("unreadable project root")

const maxManifestSize = 1 << 20

// ScanOptions bounds the cost of a scan.
type ScanOptions struct {
	MaxDepth         int
	MaxContentFiles  int
	MaxFileSize      int64
	Ignore           []string
	RespectGitignore bool
	Concurrency      int
}

func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		MaxDepth:         6,
		MaxContentFiles:  200,
		MaxFileSize:      256 * 1024,
		RespectGitignore: true,
		Concurrency:      8,
	}
}

var excludeDirs = []string{
	// Dependencies
	"node_modules", "vendor", "bower_components", "jspm_packages",
	"venv", "env", "target", "deps", "_build", "__pycache__", "Pods",

	// Build outputs
	"dist", "build", "out", "bin", "obj", "DerivedData",

	// Temporary
	"tmp", "temp", "cache", "logs", "coverage",

	// Samples rarely describe the project itself
	"examples",
}

var includeHidden = []string{
	".github", ".storybook", ".devcontainer", ".do", ".vercel",
	".gitignore", ".nvmrc", ".python-version", ".tool-versions",
}

// Scanner walks a project tree and collects an EvidenceBundle.
type Scanner struct {
	filesystem filesystems.FileSystem
	options    ScanOptions
	parsers    []ManifestParser
	patterns   []ContentPattern
	globs      []string
	logger     zerolog.Logger
}

type ScannerOption func(*Scanner)

func WithScanOptions(options ScanOptions) ScannerOption {
	return func(s *Scanner) { s.options = options }
}

func WithParsers(parsers ...ManifestParser) ScannerOption {
	return func(s *Scanner) { s.parsers = parsers }
}

func WithPatterns(patterns ...ContentPattern) ScannerOption {
	return func(s *Scanner) { s.patterns = patterns }
}

func WithScannerLogger(logger zerolog.Logger) ScannerOption {
	return func(s *Scanner) { s.logger = logger }
}

func NewScanner(filesystem filesystems.FileSystem, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		filesystem: filesystem,
		options:    DefaultScanOptions(),
		parsers:    DefaultParsers(),
		patterns:   DefaultPatterns(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, p := range s.patterns {
		if !slices.Contains(s.globs, p.Glob) {
			s.globs = append(s.globs, p.Glob)
		}
	}
	s.logger = s.logger.With().Str("component", "scanner").Logger()
	return s
}

type walkItem struct {
	path  string
	rel   string
	depth int
}

type manifestFile struct {
	rel    string
	parser int
	size   int64
}

type sourceFile struct {
	rel  string
	size int64
}

// Scan collects evidence below root. Only a root that cannot be listed is
// an error; every other read failure just contributes no evidence.
func (s *Scanner) Scan(ctx context.Context, root string) (*EvidenceBundle, error) {
	info, err := s.filesystem.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrUnreadableRoot, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w %s: not a directory", ErrUnreadableRoot, root)
	}

	ignore := s.loadGitignore(root)
	bundle := NewEvidenceBundle()

	var manifests []manifestFile
	var sources []sourceFile

	stack := []walkItem{{path: root, rel: ".", depth: 0}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := s.readDir(current.path)
		if err != nil {
			if current.rel == "." {
				return nil, fmt.Errorf("%w %s: %w", ErrUnreadableRoot, root, err)
			}
			s.logger.Debug().Err(err).Str("dir", current.rel).Msg("skipping unreadable directory")
			continue
		}

		var subdirs []walkItem
		for _, entry := range entries {
			name := entry.Name()
			rel := name
			if current.rel != "." {
				rel = current.rel + "/" + name
			}

			if entry.IsDir() {
				if s.skipDir(name, rel, ignore) {
					continue
				}
				bundle.addDir(rel)
				if current.depth+1 <= s.options.MaxDepth {
					subdirs = append(subdirs, walkItem{
						path:  s.filesystem.Join(current.path, name),
						rel:   rel,
						depth: current.depth + 1,
					})
				}
				continue
			}

			if s.skipFile(name, rel, ignore) {
				continue
			}
			bundle.addFile(rel)

			size := int64(-1)
			if fi, err := entry.Info(); err == nil {
				size = fi.Size()
			}
			if idx := s.parserFor(rel); idx >= 0 {
				manifests = append(manifests, manifestFile{rel: rel, parser: idx, size: size})
			}
			if s.isContentCandidate(rel) {
				sources = append(sources, sourceFile{rel: rel, size: size})
			}
		}

		// reversed so the lexically first directory is popped first
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	s.parseManifests(ctx, root, manifests, bundle)
	if err := s.scanContent(ctx, root, sources, bundle); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int("files", len(bundle.FilesPresent)).
		Int("dirs", len(bundle.DirsPresent)).
		Int("manifest_fields", len(bundle.ManifestFields)).
		Int("content_matches", len(bundle.ContentMatches)).
		Msg("scan complete")

	return bundle, nil
}

func (s *Scanner) readDir(dir string) ([]filesystems.DirEntry, error) {
	var entries []filesystems.DirEntry
	for entry, err := range s.filesystem.ReadDir(dir) {
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

func (s *Scanner) loadGitignore(root string) gitignore.GitIgnore {
	if !s.options.RespectGitignore {
		return nil
	}
	content, err := s.filesystem.ReadFile(s.filesystem.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gitignore.New(bytes.NewReader(content), root, func(e gitignore.Error) bool {
		s.logger.Debug().Err(e).Msg("ignoring malformed .gitignore line")
		return true
	})
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && len(name) > 1
}

func (s *Scanner) ignored(rel string, isDir bool, ignore gitignore.GitIgnore) bool {
	if matchAny(s.options.Ignore, rel) {
		return true
	}
	if ignore != nil {
		if match := ignore.Relative(rel, isDir); match != nil && match.Ignore() {
			return true
		}
	}
	return false
}

func (s *Scanner) skipDir(name, rel string, ignore gitignore.GitIgnore) bool {
	for _, pattern := range excludeDirs {
		if strings.EqualFold(name, pattern) {
			return true
		}
	}
	if isHidden(name) && !slices.Contains(includeHidden, name) {
		return true
	}
	return s.ignored(rel, true, ignore)
}

func (s *Scanner) skipFile(name, rel string, ignore gitignore.GitIgnore) bool {
	if isHidden(name) && !slices.Contains(includeHidden, name) && !strings.HasPrefix(name, ".env") {
		return true
	}
	return s.ignored(rel, false, ignore)
}

func (s *Scanner) parserFor(rel string) int {
	for i, p := range s.parsers {
		if p.Matches(rel) {
			return i
		}
	}
	return -1
}

func (s *Scanner) isContentCandidate(rel string) bool {
	if enry.IsVendor(rel) {
		return false
	}
	return matchAny(s.globs, rel)
}

func (s *Scanner) parseManifests(ctx context.Context, root string, manifests []manifestFile, bundle *EvidenceBundle) {
	// Parser order first, then shallow before deep so the root manifest wins.
	sort.SliceStable(manifests, func(i, j int) bool {
		a, b := manifests[i], manifests[j]
		if a.parser != b.parser {
			return a.parser < b.parser
		}
		if depth(a.rel) != depth(b.rel) {
			return depth(a.rel) < depth(b.rel)
		}
		return a.rel < b.rel
	})

	for _, m := range manifests {
		parser := s.parsers[m.parser]
		log := s.logger.Debug().Str("file", m.rel).Str("parser", parser.Name())

		if m.size > maxManifestSize {
			log.Msg("skipping oversized manifest")
			continue
		}
		content, err := s.filesystem.ReadFile(s.pathOf(root, m.rel))
		if err != nil {
			log.Err(err).Msg("skipping unreadable manifest")
			continue
		}

		// parse into a scratch map so a failing parser leaves no partial fields
		scratch := make(ManifestFields, len(bundle.ManifestFields))
		for k, v := range bundle.ManifestFields {
			scratch[k] = v
		}
		if err := parser.Parse(ctx, m.rel, content, scratch); err != nil {
			log.Err(err).Msg("skipping malformed manifest")
			continue
		}
		bundle.ManifestFields = scratch
	}
}

func (s *Scanner) scanContent(ctx context.Context, root string, sources []sourceFile, bundle *EvidenceBundle) error {
	sort.SliceStable(sources, func(i, j int) bool {
		if depth(sources[i].rel) != depth(sources[j].rel) {
			return depth(sources[i].rel) < depth(sources[j].rel)
		}
		return sources[i].rel < sources[j].rel
	})

	candidates := s.selectContent(sources)

	results := make([][]string, len(candidates))
	var g errgroup.Group
	if s.options.Concurrency > 0 {
		g.SetLimit(s.options.Concurrency)
	}

	for i, src := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.matchFile(root, src.rel)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, src := range candidates {
		for _, id := range results[i] {
			bundle.ContentMatches[ContentKey{File: src.rel, Pattern: id}] = true
		}
	}
	return nil
}

// selectContent spends the read budget round-robin across the pattern
// globs, each glob taking its files shallow first. A tree full of one
// language cannot crowd another language's files out of the budget.
func (s *Scanner) selectContent(sources []sourceFile) []sourceFile {
	queues := make([][]sourceFile, len(s.globs))
	for _, src := range sources {
		if src.size > s.options.MaxFileSize {
			continue
		}
		for i, glob := range s.globs {
			if ok, err := doublestar.Match(glob, src.rel); err == nil && ok {
				queues[i] = append(queues[i], src)
			}
		}
	}

	selected := make(map[string]bool)
	var candidates []sourceFile
	for progress := true; progress; {
		progress = false
		for i := range queues {
			if len(candidates) >= s.options.MaxContentFiles {
				return candidates
			}
			for len(queues[i]) > 0 && selected[queues[i][0].rel] {
				queues[i] = queues[i][1:]
			}
			if len(queues[i]) == 0 {
				continue
			}
			src := queues[i][0]
			queues[i] = queues[i][1:]
			selected[src.rel] = true
			candidates = append(candidates, src)
			progress = true
		}
	}
	return candidates
}

// matchFile returns the ids of the patterns that match rel.
func (s *Scanner) matchFile(root, rel string) []string {
	content, err := s.filesystem.ReadFile(s.pathOf(root, rel))
	if err != nil {
		s.logger.Debug().Err(err).Str("file", rel).Msg("skipping unreadable source")
		return nil
	}
	if int64(len(content)) > s.options.MaxFileSize || enry.IsBinary(content) {
		return nil
	}

	var matched []string
	for _, p := range s.patterns {
		if ok, err := doublestar.Match(p.Glob, rel); err != nil || !ok {
			continue
		}
		if p.Regexp.Match(content) {
			matched = append(matched, p.ID)
		}
	}
	return matched
}

func (s *Scanner) pathOf(root, rel string) string {
	return s.filesystem.Join(root, path.Clean(rel))
}
