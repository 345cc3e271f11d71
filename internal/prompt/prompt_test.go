package prompt

import (
	"errors"
	"reflect"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/railwayapp/stackgen/internal/detection"
	"github.com/railwayapp/stackgen/internal/stack"
)

type question struct {
	kind    string
	message string
	options []string
	def     any
}

// scriptedAsker answers from a queue. An empty string answer takes the
// default.
type scriptedAsker struct {
	answers []any
	asked   []question
	err     error
}

func (a *scriptedAsker) next(q question) (any, error) {
	a.asked = append(a.asked, q)
	if a.err != nil {
		return nil, a.err
	}
	if len(a.answers) == 0 {
		return nil, errors.New("unexpected question: " + q.message)
	}
	answer := a.answers[0]
	a.answers = a.answers[1:]
	return answer, nil
}

func (a *scriptedAsker) Select(message string, options []string, def string) (string, error) {
	answer, err := a.next(question{"select", message, options, def})
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer.(string), nil
}

func (a *scriptedAsker) Confirm(message string, def bool) (bool, error) {
	answer, err := a.next(question{"confirm", message, nil, def})
	if err != nil {
		return false, err
	}
	return answer.(bool), nil
}

func (a *scriptedAsker) Input(message, def string) (string, error) {
	answer, err := a.next(question{"input", message, nil, def})
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer.(string), nil
}

func detectedNext() stack.TechStack {
	return stack.TechStack{
		ProjectName:      "storefront",
		Framework:        "nextjs",
		Variant:          "nextjs",
		Confidence:       95,
		Language:         "typescript",
		PackageManager:   stack.ManagerPNPM,
		FrameworkVersion: "14.2",
		Commands:         stack.Commands("nextjs", stack.ManagerPNPM),
		Source:           stack.SourceDetected,
	}
}

func TestFlow_AcceptDetection(t *testing.T) {
	asker := &scriptedAsker{answers: []any{true, "shop"}}

	s, err := NewFlow(asker).Run(detectedNext(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := detectedNext()
	want.ProjectName = "shop"
	if !reflect.DeepEqual(s, want) {
		t.Errorf("expected %+v, got %+v", want, s)
	}
	if asker.asked[0].message != "Detected Next.js with 95% confidence. Use it?" {
		t.Errorf("unexpected confirmation %q", asker.asked[0].message)
	}
}

func TestFlow_OverrideDetection(t *testing.T) {
	detected := stack.TechStack{Framework: "react", Variant: "vite", Confidence: 80, ProjectName: "dashboard"}
	asker := &scriptedAsker{answers: []any{false, "Compose Multiplatform", "Desktop only", ""}}

	s, err := NewFlow(asker).Run(detected, []string{stack.ManagerYarn})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Framework != "compose-multiplatform" || s.Variant != detection.VariantDesktopOnly {
		t.Errorf("unexpected stack %+v", s)
	}
	if s.Source != stack.SourceDeclared || s.PackageManager != stack.ManagerGradle {
		t.Errorf("expected a declared gradle stack, got %+v", s)
	}
	if s.ProjectName != "dashboard" {
		t.Errorf("expected the detected project name as default, got %q", s.ProjectName)
	}

	frameworkQ := asker.asked[1]
	if frameworkQ.def != "React" {
		t.Errorf("expected React as the default framework, got %v", frameworkQ.def)
	}
	if len(frameworkQ.options) != len(stack.Frameworks()) {
		t.Errorf("expected every framework as an option, got %d", len(frameworkQ.options))
	}

	variantQ := asker.asked[2]
	wantOptions := []string{"None", "Mobile-focused", "Full multiplatform", "Web-enabled", "Desktop only"}
	if !reflect.DeepEqual(variantQ.options, wantOptions) {
		t.Errorf("expected variant options %v, got %v", wantOptions, variantQ.options)
	}
}

func TestFlow_NoDetection(t *testing.T) {
	asker := &scriptedAsker{answers: []any{"Express", "api"}}

	s, err := NewFlow(asker).Run(stack.TechStack{}, []string{stack.ManagerYarn})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want, _ := stack.Declared("express", "")
	want = want.WithPackageManager(stack.ManagerYarn)
	want.ProjectName = "api"
	if !reflect.DeepEqual(s, want) {
		t.Errorf("expected %+v, got %+v", want, s)
	}
	// no confirmation without a detection, and express has no variants
	if len(asker.asked) != 2 {
		t.Errorf("expected 2 questions, got %+v", asker.asked)
	}
}

func TestFlow_KeepsVersionForSameFramework(t *testing.T) {
	asker := &scriptedAsker{answers: []any{false, "Next.js", ""}}

	s, err := NewFlow(asker).Run(detectedNext(), []string{stack.ManagerPNPM})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Variant != "nextjs" || s.FrameworkVersion != "14.2" || s.Source != stack.SourceDeclared {
		t.Errorf("unexpected stack %+v", s)
	}
}

func TestFlow_VariantNoneOnWrapper(t *testing.T) {
	asker := &scriptedAsker{answers: []any{"Compose Multiplatform", "None", "app"}}

	s, err := NewFlow(asker).Run(stack.TechStack{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Variant != "compose-multiplatform" {
		t.Errorf("expected the wrapper's own variant, got %q", s.Variant)
	}
}

func TestFlow_Interrupted(t *testing.T) {
	asker := &scriptedAsker{err: terminal.InterruptErr}

	_, err := NewFlow(asker).Run(detectedNext(), nil)
	if !errors.Is(err, terminal.InterruptErr) {
		t.Fatalf("expected interrupt, got %v", err)
	}
}

func TestSurveyAsker(t *testing.T) {
	var prompts []survey.Prompt
	a := &SurveyAsker{ask: func(p survey.Prompt, response any, _ ...survey.AskOpt) error {
		prompts = append(prompts, p)
		switch r := response.(type) {
		case *string:
			*r = "Vue"
		case *bool:
			*r = true
		}
		return nil
	}}

	got, err := a.Select("Framework", []string{"React", "Vue"}, "React")
	if err != nil || got != "Vue" {
		t.Fatalf("Select: got %q, %v", got, err)
	}
	sel, ok := prompts[0].(*survey.Select)
	if !ok || sel.Default != "React" || !reflect.DeepEqual(sel.Options, []string{"React", "Vue"}) {
		t.Errorf("unexpected select prompt %+v", prompts[0])
	}

	if ok, err := a.Confirm("Use it?", true); err != nil || !ok {
		t.Errorf("Confirm: got %v, %v", ok, err)
	}
	if _, ok := prompts[1].(*survey.Confirm); !ok {
		t.Errorf("expected a confirm prompt, got %T", prompts[1])
	}

	if _, err := a.Select("Empty", nil, ""); err == nil {
		t.Errorf("expected an error for a select without options")
	}
}
