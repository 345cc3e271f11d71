package stackgen

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/railwayapp/stackgen/internal/detection"
	"github.com/railwayapp/stackgen/internal/scaffold"
)

func init() {
	color.NoColor = true
}

func TestEmit_Text(t *testing.T) {
	result := &detection.Result{
		Primary: &detection.Detected{Framework: "expo", Category: detection.CategoryMobile, Variant: "expo", Confidence: 92, Platforms: []string{"ios", "android"}},
		AllDetected: []detection.Detected{
			{Framework: "expo", Category: detection.CategoryMobile, Variant: "expo", Confidence: 92, Platforms: []string{"ios", "android"}},
			{Framework: "express", Category: detection.CategoryBackend, Confidence: 55},
		},
	}

	var buf bytes.Buffer
	if err := emit(&buf, formatText, result, func(w io.Writer) { printDetection(w, result) }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"* Expo", "92%", "platforms: ios, android", "  Express", "55%"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "variant:") {
		t.Errorf("a variant equal to its framework should not be printed:\n%s", out)
	}
}

func TestEmit_Structured(t *testing.T) {
	result := &detection.Result{AllDetected: []detection.Detected{}}

	var buf bytes.Buffer
	if err := emit(&buf, "json", result, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "{\n  \"allDetected\": []\n}\n" {
		t.Errorf("unexpected json %q", buf.String())
	}

	if err := emit(&buf, "toml", result, nil); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestPrintDetection_NoPrimary(t *testing.T) {
	var buf bytes.Buffer
	printDetection(&buf, &detection.Result{AllDetected: []detection.Detected{}})
	if !strings.Contains(buf.String(), "No framework detected") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestPrintWriteResults(t *testing.T) {
	var buf bytes.Buffer
	printWriteResults(&buf, []scaffold.WriteResult{
		{Path: "AGENTS.md", Status: scaffold.StatusCreated},
		{Path: "CLAUDE.md", Status: scaffold.StatusSkipped},
	})
	want := "created     AGENTS.md\nskipped     CLAUDE.md\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
