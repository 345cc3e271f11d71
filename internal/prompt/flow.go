package prompt

import (
	"fmt"
	"slices"

	"github.com/railwayapp/stackgen/internal/stack"
)

const noVariant = "None"

// Flow walks the user through confirming or declaring a stack.
type Flow struct {
	asker Asker
}

func NewFlow(asker Asker) *Flow {
	return &Flow{asker: asker}
}

// Run starts from the detected stack, which may be empty. Accepting the
// detection keeps it as is apart from the project name; anything else
// yields a declared stack. managers are the package managers found in the
// project.
func (f *Flow) Run(detected stack.TechStack, managers []string) (stack.TechStack, error) {
	if detected.Detected() {
		ok, err := f.asker.Confirm(describe(detected), true)
		if err != nil {
			return stack.TechStack{}, fmt.Errorf("confirming detection: %w", err)
		}
		if ok {
			return f.askName(detected)
		}
	}

	framework, err := f.selectFramework(detected.Framework)
	if err != nil {
		return stack.TechStack{}, err
	}
	variant, err := f.selectVariant(framework, detected)
	if err != nil {
		return stack.TechStack{}, err
	}

	s, err := stack.Declared(framework, variant)
	if err != nil {
		return stack.TechStack{}, err
	}
	s = s.WithPackageManager(stack.ManagerFor(framework, managers))
	s.ProjectName = detected.ProjectName
	if framework == detected.Framework {
		s.FrameworkVersion = detected.FrameworkVersion
		if variant == detected.Variant {
			s.Platforms = slices.Clone(detected.Platforms)
		}
	}
	return f.askName(s)
}

func describe(s stack.TechStack) string {
	name := stack.DisplayName(s.Framework)
	if s.Variant != "" && s.Variant != s.Framework {
		name += " (" + stack.VariantDisplayName(s.Variant) + ")"
	}
	return fmt.Sprintf("Detected %s with %d%% confidence. Use it?", name, s.Confidence)
}

func (f *Flow) selectFramework(current string) (string, error) {
	ids := stack.Frameworks()
	labels := make([]string, len(ids))
	def := ""
	for i, id := range ids {
		labels[i] = stack.DisplayName(id)
		if id == current {
			def = labels[i]
		}
	}

	label, err := f.asker.Select("Framework", labels, def)
	if err != nil {
		return "", fmt.Errorf("selecting framework: %w", err)
	}
	i := slices.Index(labels, label)
	if i < 0 {
		return "", fmt.Errorf("%w: %q", stack.ErrUnknownFramework, label)
	}
	return ids[i], nil
}

// selectVariant only asks when the framework has variants beyond its own
// meta-framework id.
func (f *Flow) selectVariant(framework string, detected stack.TechStack) (string, error) {
	all := stack.Variants(framework)
	var choices []string
	for _, v := range all {
		if v != framework {
			choices = append(choices, v)
		}
	}
	if len(choices) == 0 {
		if slices.Contains(all, framework) {
			return framework, nil
		}
		return "", nil
	}

	labels := []string{noVariant}
	def := noVariant
	for _, v := range choices {
		labels = append(labels, stack.VariantDisplayName(v))
		if framework == detected.Framework && v == detected.Variant {
			def = labels[len(labels)-1]
		}
	}

	label, err := f.asker.Select("Variant", labels, def)
	if err != nil {
		return "", fmt.Errorf("selecting variant: %w", err)
	}
	i := slices.Index(labels, label)
	switch {
	case i < 0:
		return "", fmt.Errorf("%w %q for %s", stack.ErrUnknownVariant, label, framework)
	case i == 0:
		// a wrapper with no platform variant still resolves to itself
		if slices.Contains(all, framework) {
			return framework, nil
		}
		return "", nil
	}
	return choices[i-1], nil
}

func (f *Flow) askName(s stack.TechStack) (stack.TechStack, error) {
	name, err := f.asker.Input("Project name", s.ProjectName)
	if err != nil {
		return stack.TechStack{}, fmt.Errorf("asking project name: %w", err)
	}
	s.ProjectName = name
	return s, nil
}
