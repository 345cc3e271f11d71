package export

import (
	"encoding/json"
)

type JSONExporter struct{}

func (e *JSONExporter) Name() string {
	return "json"
}

// Export indents with two spaces and ends with a newline so output can be
// written straight to a terminal or file.
func (e *JSONExporter) Export(v any) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func NewJSONExporter() Exporter {
	return &JSONExporter{}
}
