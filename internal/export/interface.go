package export

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Exporter defines the interface for exporting results to various formats
type Exporter interface {
	// Export serialises v, a detection result, report or stack
	Export(v any) ([]byte, error)

	// Name returns the exporter name (e.g., "json", "yaml")
	Name() string
}

// New returns the exporter for format.
func New(format string) (Exporter, error) {
	switch strings.ToLower(format) {
	case "json":
		return NewJSONExporter(), nil
	case "yaml", "yml":
		return NewYAMLExporter(), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
}
