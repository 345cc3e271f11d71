package scaffold

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Status is what the writer did with one file.
type Status string

const (
	StatusCreated     Status = "created"
	StatusOverwritten Status = "overwritten"
	StatusSkipped     Status = "skipped"
	StatusPlanned     Status = "planned"
)

type WriteResult struct {
	Path   string `json:"path" yaml:"path"`
	Status Status `json:"status" yaml:"status"`
}

// Writer places rendered files under a project root. Existing files are
// left alone unless the writer is forced.
type Writer struct {
	fs     afero.Fs
	root   string
	force  bool
	dryRun bool
	logger zerolog.Logger
}

type WriterOption func(*Writer)

func WithForce(force bool) WriterOption {
	return func(w *Writer) { w.force = force }
}

// WithDryRun reports what would be written without touching the filesystem.
func WithDryRun(dryRun bool) WriterOption {
	return func(w *Writer) { w.dryRun = dryRun }
}

func WithWriterLogger(logger zerolog.Logger) WriterOption {
	return func(w *Writer) { w.logger = logger }
}

func NewWriter(fs afero.Fs, root string, opts ...WriterOption) *Writer {
	w := &Writer{fs: fs, root: root, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Writer) Write(files []File) ([]WriteResult, error) {
	log := w.logger.With().Str("component", "writer").Logger()

	results := make([]WriteResult, 0, len(files))
	for _, f := range files {
		dest := filepath.Join(w.root, filepath.FromSlash(f.Path))
		exists, err := afero.Exists(w.fs, dest)
		if err != nil {
			return results, fmt.Errorf("checking %s: %w", f.Path, err)
		}

		status := StatusCreated
		switch {
		case exists && !w.force:
			status = StatusSkipped
		case w.dryRun:
			status = StatusPlanned
		case exists:
			status = StatusOverwritten
		}

		if status == StatusCreated || status == StatusOverwritten {
			if err := w.fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return results, fmt.Errorf("creating directory for %s: %w", f.Path, err)
			}
			if err := afero.WriteFile(w.fs, dest, f.Content, 0o644); err != nil {
				return results, fmt.Errorf("writing %s: %w", f.Path, err)
			}
		}

		log.Debug().Str("path", f.Path).Str("status", string(status)).Msg("scaffold file")
		results = append(results, WriteResult{Path: f.Path, Status: status})
	}
	return results, nil
}
