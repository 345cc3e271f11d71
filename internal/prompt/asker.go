package prompt

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// Asker asks the user one question at a time.
type Asker interface {
	Select(message string, options []string, def string) (string, error)
	Confirm(message string, def bool) (bool, error)
	Input(message, def string) (string, error)
}

// AskFunc has the signature of survey.AskOne.
type AskFunc func(p survey.Prompt, response any, opts ...survey.AskOpt) error

// SurveyAsker asks questions on the terminal with survey.
type SurveyAsker struct {
	ask  AskFunc
	opts []survey.AskOpt
}

func NewSurveyAsker(opts ...survey.AskOpt) *SurveyAsker {
	opts = append([]survey.AskOpt{
		survey.WithIcons(func(icons *survey.IconSet) {
			icons.Question.Format = "blue+b"
			icons.SelectFocus.Format = "blue+b"
		}),
	}, opts...)
	return &SurveyAsker{ask: survey.AskOne, opts: opts}
}

func (a *SurveyAsker) Select(message string, options []string, def string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options for %q", message)
	}
	p := &survey.Select{Message: message, Options: options}
	if def != "" {
		p.Default = def
	}

	var response string
	if err := a.ask(p, &response, a.opts...); err != nil {
		return "", err
	}
	return response, nil
}

func (a *SurveyAsker) Confirm(message string, def bool) (bool, error) {
	var response bool
	if err := a.ask(&survey.Confirm{Message: message, Default: def}, &response, a.opts...); err != nil {
		return false, err
	}
	return response, nil
}

func (a *SurveyAsker) Input(message, def string) (string, error) {
	var response string
	if err := a.ask(&survey.Input{Message: message, Default: def}, &response, a.opts...); err != nil {
		return "", err
	}
	return response, nil
}
