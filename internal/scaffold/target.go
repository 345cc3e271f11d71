package scaffold

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrUnknownTarget = errors.New("unknown target")

// Target is an assistant whose instruction file the scaffolder can write.
type Target string

const (
	TargetAgents  Target = "agents"
	TargetClaude  Target = "claude"
	TargetCopilot Target = "copilot"
	TargetCursor  Target = "cursor"
)

var targets = []Target{TargetAgents, TargetClaude, TargetCopilot, TargetCursor}

var targetPaths = map[Target]string{
	TargetAgents:  "AGENTS.md",
	TargetClaude:  "CLAUDE.md",
	TargetCopilot: ".github/copilot-instructions.md",
	TargetCursor:  ".cursor/rules/project.mdc",
}

// Targets returns every supported target.
func Targets() []Target {
	return slices.Clone(targets)
}

// LookupTarget resolves a target by name, ignoring case.
func LookupTarget(name string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(name)))
	if !slices.Contains(targets, t) {
		return "", fmt.Errorf("%w %q (supported: %s)", ErrUnknownTarget, name, strings.Join(TargetNames(), ", "))
	}
	return t, nil
}

// ParseTargets resolves names in order, dropping duplicates.
func ParseTargets(names []string) ([]Target, error) {
	var out []Target
	for _, name := range names {
		t, err := LookupTarget(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func TargetNames() []string {
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = string(t)
	}
	return names
}

// Path is where the target's file lives, relative to the project root.
func (t Target) Path() string {
	return targetPaths[t]
}

func (t Target) templateName() string {
	return string(t) + ".md.tmpl"
}
