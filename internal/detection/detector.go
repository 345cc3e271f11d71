package detection

import (
	"context"

	"github.com/railwayapp/stackgen/internal/filesystems"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Detector runs the scan, score, resolve and rank pipeline over one filesystem.
type Detector struct {
	filesystem  filesystems.FileSystem
	table       *Table
	threshold   int
	scanOptions ScanOptions
	logger      zerolog.Logger
}

type Option func(*Detector)

func WithTable(table *Table) Option {
	return func(d *Detector) { d.table = table }
}

// WithThreshold sets the minimum score for a primary result.
func WithThreshold(threshold int) Option {
	return func(d *Detector) { d.threshold = threshold }
}

func WithDetectorScanOptions(options ScanOptions) Option {
	return func(d *Detector) { d.scanOptions = options }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(d *Detector) { d.logger = logger }
}

func NewDetector(filesystem filesystems.FileSystem, opts ...Option) *Detector {
	d := &Detector{
		filesystem:  filesystem,
		table:       DefaultTable(),
		threshold:   DefaultThreshold,
		scanOptions: DefaultScanOptions(),
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect is shorthand for NewDetector(filesystem).Detect(ctx, root).
func Detect(ctx context.Context, filesystem filesystems.FileSystem, root string) (*Result, error) {
	return NewDetector(filesystem).Detect(ctx, root)
}

// Detect scans root and classifies it. Only an unreadable root is an error.
func (d *Detector) Detect(ctx context.Context, root string) (*Result, error) {
	bundle, err := d.Scan(ctx, root)
	if err != nil {
		return nil, err
	}
	return d.Evaluate(ctx, bundle), nil
}

// Scan collects the evidence bundle for root without scoring it.
func (d *Detector) Scan(ctx context.Context, root string) (*EvidenceBundle, error) {
	scanner := NewScanner(d.filesystem,
		WithScanOptions(d.scanOptions),
		WithScannerLogger(d.logger),
	)
	return scanner.Scan(ctx, root)
}

// Evaluate scores every candidate of the table against bundle and ranks them.
func (d *Detector) Evaluate(_ context.Context, bundle *EvidenceBundle) *Result {
	candidates := d.table.Candidates()
	scored := make([]ScoredCandidate, len(candidates))
	resolved := make([]Resolution, len(candidates))

	// Predicates only read the bundle, so candidates score independently.
	var g errgroup.Group
	for i, c := range candidates {
		g.Go(func() error {
			scored[i] = Score(bundle, c)
			resolved[i] = Resolve(bundle, c, scored[i])
			return nil
		})
	}
	g.Wait()

	result := Rank(d.table, scored, resolved, d.threshold)

	log := d.logger.With().Str("component", "detector").Logger()
	event := log.Debug().Int("detected", len(result.AllDetected))
	if result.Primary != nil {
		event = event.Str("primary", result.Primary.Framework).Int("confidence", result.Primary.Confidence)
	}
	event.Msg("detection complete")

	return result
}
