package scaffold

import (
	"maps"
	"strings"
	"text/template"
	"unicode"

	"github.com/railwayapp/stackgen/internal/stack"
)

// Registry holds the helper functions templates may call. The CLI builds
// one and hands it to NewRenderer.
type Registry struct {
	funcs template.FuncMap
}

func NewRegistry() *Registry {
	r := &Registry{funcs: make(template.FuncMap)}
	r.Register("displayName", stack.DisplayName)
	r.Register("variantName", stack.VariantDisplayName)
	r.Register("languageName", stack.LanguageDisplayName)
	r.Register("join", join)
	r.Register("bullet", bullet)
	r.Register("commands", commands)
	r.Register("upper", strings.ToUpper)
	r.Register("title", title)
	return r
}

// Register adds or replaces a helper.
func (r *Registry) Register(name string, fn any) {
	r.funcs[name] = fn
}

// Funcs returns a copy of the registered helpers.
func (r *Registry) Funcs() template.FuncMap {
	return maps.Clone(r.funcs)
}

// join takes the separator first so it reads well in a pipeline:
// {{ .Platforms | join ", " }}
func join(sep string, items []string) string {
	return strings.Join(items, sep)
}

func bullet(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(item)
	}
	return b.String()
}

type command struct {
	Label string
	Run   string
}

// commands lists the non-empty entries of a command set in workflow order.
func commands(cs stack.CommandSet) []command {
	var out []command
	for _, c := range []command{
		{"Install", cs.Install},
		{"Dev", cs.Dev},
		{"Build", cs.Build},
		{"Test", cs.Test},
		{"Lint", cs.Lint},
	} {
		if c.Run != "" {
			out = append(out, c)
		}
	}
	return out
}

// title upper-cases the first letter of each space or dash separated word.
func title(s string) string {
	runes := []rune(s)
	start := true
	for i, r := range runes {
		if start {
			runes[i] = unicode.ToUpper(r)
		}
		start = r == ' ' || r == '-'
	}
	return string(runes)
}
