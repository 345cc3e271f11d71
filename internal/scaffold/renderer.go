package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/railwayapp/stackgen/internal/analyzer"
	"github.com/railwayapp/stackgen/internal/environment"
	"github.com/railwayapp/stackgen/internal/stack"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Data is what every template renders from.
type Data struct {
	Stack         stack.TechStack
	Languages     []analyzer.LanguageShare
	DeployTargets []analyzer.DeployTarget
	Env           []environment.Variable
}

// NewData combines a stack with the optional analyzer report it came from.
// A declared stack has no report.
func NewData(s stack.TechStack, report *analyzer.Report) Data {
	data := Data{Stack: s}
	if report != nil {
		data.Languages = report.Languages
		data.DeployTargets = report.DeployTargets
		data.Env = report.Env
	}
	return data
}

// File is a rendered document and where it belongs.
type File struct {
	Path    string
	Content []byte
}

type Renderer struct {
	templates *template.Template
}

func NewRenderer(registry *Registry) (*Renderer, error) {
	t, err := template.New("scaffold").
		Option("missingkey=error").
		Funcs(registry.Funcs()).
		ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render executes the template for target.
func (r *Renderer) Render(target Target, data Data) (File, error) {
	if target.Path() == "" {
		return File{}, fmt.Errorf("%w %q", ErrUnknownTarget, target)
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, target.templateName(), data); err != nil {
		return File{}, fmt.Errorf("rendering %s: %w", target, err)
	}
	return File{Path: target.Path(), Content: buf.Bytes()}, nil
}

func (r *Renderer) RenderAll(targets []Target, data Data) ([]File, error) {
	files := make([]File, 0, len(targets))
	for _, target := range targets {
		f, err := r.Render(target, data)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}
