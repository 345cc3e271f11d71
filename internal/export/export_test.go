package export

import (
	"errors"
	"strings"
	"testing"

	"github.com/railwayapp/stackgen/internal/detection"
)

func sampleResult() *detection.Result {
	primary := detection.Detected{
		Framework:  "compose-multiplatform",
		Category:   detection.CategoryMobile,
		Variant:    detection.VariantMobileFocused,
		Confidence: 100,
		Platforms:  []string{"android", "ios"},
	}
	return &detection.Result{Primary: &primary, AllDetected: []detection.Detected{primary}}
}

func TestNew(t *testing.T) {
	for format, name := range map[string]string{"json": "json", "JSON": "json", "yaml": "yaml", "yml": "yaml"} {
		e, err := New(format)
		if err != nil {
			t.Fatalf("New(%q): unexpected error %v", format, err)
		}
		if e.Name() != name {
			t.Errorf("New(%q): expected %s exporter, got %s", format, name, e.Name())
		}
	}
	if _, err := New("toml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestJSONExporter(t *testing.T) {
	out, err := NewJSONExporter().Export(sampleResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(out)
	for _, want := range []string{
		`"primary": {`,
		`"framework": "compose-multiplatform"`,
		`"variant": "mobile-focused"`,
		`"allDetected": [`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %s in\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, "}\n") {
		t.Errorf("expected a trailing newline")
	}
}

func TestJSONExporter_EmptyResult(t *testing.T) {
	out, err := NewJSONExporter().Export(&detection.Result{AllDetected: []detection.Detected{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := string(out); got != "{\n  \"allDetected\": []\n}\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestYAMLExporter(t *testing.T) {
	out, err := NewYAMLExporter().Export(sampleResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(out)
	for _, want := range []string{
		"primary:\n  framework: compose-multiplatform\n",
		"  platforms:\n    - android\n    - ios\n",
		"allDetected:\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in\n%s", want, got)
		}
	}
}
