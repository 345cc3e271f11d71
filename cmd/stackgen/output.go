package stackgen

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/railwayapp/stackgen/internal/analyzer"
	"github.com/railwayapp/stackgen/internal/detection"
	"github.com/railwayapp/stackgen/internal/export"
	"github.com/railwayapp/stackgen/internal/scaffold"
	"github.com/railwayapp/stackgen/internal/stack"
)

const formatText = "text"

var (
	heading = color.New(color.Bold)
	faint   = color.New(color.Faint)
	good    = color.New(color.FgGreen)
	fair    = color.New(color.FgYellow)
	poor    = color.New(color.FgRed)
)

// emit writes v in a structured format, or calls text for the
// human-readable one.
func emit(w io.Writer, format string, v any, text func(io.Writer)) error {
	if format == "" || format == formatText {
		text(w)
		return nil
	}
	exporter, err := export.New(format)
	if err != nil {
		return err
	}
	out, err := exporter.Export(v)
	if err != nil {
		return fmt.Errorf("failed to export %s: %w", exporter.Name(), err)
	}
	_, err = w.Write(out)
	return err
}

func confidenceColor(confidence int) *color.Color {
	switch {
	case confidence >= 80:
		return good
	case confidence >= detection.DefaultThreshold:
		return fair
	default:
		return poor
	}
}

func printDetection(w io.Writer, result *detection.Result) {
	if result.Primary == nil {
		fair.Fprintln(w, "No framework detected with enough confidence.")
	}
	if len(result.AllDetected) == 0 {
		return
	}

	heading.Fprintln(w, "Detected frameworks")
	for _, d := range result.AllDetected {
		marker := " "
		if result.Primary != nil && d.Framework == result.Primary.Framework {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-24s ", marker, stack.DisplayName(d.Framework))
		confidenceColor(d.Confidence).Fprintf(w, "%3d%%", d.Confidence)
		faint.Fprintf(w, "  %s", d.Category)
		fmt.Fprintln(w)

		if d.Variant != "" && d.Variant != d.Framework {
			fmt.Fprintf(w, "    variant:   %s\n", stack.VariantDisplayName(d.Variant))
		}
		if len(d.Platforms) > 0 {
			fmt.Fprintf(w, "    platforms: %s\n", strings.Join(d.Platforms, ", "))
		}
		if len(d.Signals) > 0 {
			faint.Fprintf(w, "    signals:   %s\n", strings.Join(d.Signals, ", "))
		}
	}
}

func printStack(w io.Writer, s stack.TechStack) {
	heading.Fprintln(w, "Stack")
	if !s.Detected() {
		fair.Fprintln(w, "  no framework")
	} else {
		name := stack.DisplayName(s.Framework)
		if s.Variant != "" && s.Variant != s.Framework {
			name += " (" + stack.VariantDisplayName(s.Variant) + ")"
		}
		if s.FrameworkVersion != "" {
			name += " " + s.FrameworkVersion
		}
		fmt.Fprintf(w, "  framework:       %s\n", name)
	}
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "  %-16s %s\n", label+":", value)
		}
	}
	field("project", s.ProjectName)
	field("language", stack.LanguageDisplayName(s.Language))
	field("package manager", s.PackageManager)
	field("platforms", strings.Join(s.Platforms, ", "))
	field("also uses", strings.Join(displayNames(s.Additional), ", "))
	field("dev", s.Commands.Dev)
	field("build", s.Commands.Build)
	field("test", s.Commands.Test)
	field("lint", s.Commands.Lint)
}

func displayNames(ids []string) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = stack.DisplayName(id)
	}
	return names
}

func printReport(w io.Writer, report *analyzer.Report) {
	printStack(w, report.Stack)

	if len(report.Languages) > 0 {
		fmt.Fprintln(w)
		heading.Fprintln(w, "Languages")
		for _, l := range report.Languages {
			fmt.Fprintf(w, "  %-16s %5.1f%%  ", l.Name, l.Percent)
			faint.Fprintf(w, "%d files\n", l.Files)
		}
	}

	if len(report.DeployTargets) > 0 {
		fmt.Fprintln(w)
		heading.Fprintln(w, "Deploy targets")
		for _, t := range report.DeployTargets {
			fmt.Fprintf(w, "  %-16s %s\n", t.Name, t.Path)
			for _, detail := range t.Details {
				faint.Fprintf(w, "    %s\n", detail)
			}
		}
	}

	if len(report.Env) > 0 {
		fmt.Fprintln(w)
		heading.Fprintln(w, "Environment")
		for _, v := range report.Env {
			fmt.Fprintf(w, "  %-28s %-10s", v.Name, v.Kind)
			if v.Sensitive {
				poor.Fprint(w, " sensitive")
			}
			if !v.Declared {
				fair.Fprint(w, " undeclared")
			}
			fmt.Fprintln(w)
		}
	}
}

func printWriteResults(w io.Writer, results []scaffold.WriteResult) {
	for _, r := range results {
		c := faint
		switch r.Status {
		case scaffold.StatusCreated:
			c = good
		case scaffold.StatusOverwritten:
			c = fair
		}
		c.Fprintf(w, "%-12s", r.Status)
		fmt.Fprintln(w, r.Path)
	}
}
