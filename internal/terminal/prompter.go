package terminal

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/2beens/prtracker/internal/render"
)

// Prompter supplies what a user would type or pick on a page.
// An empty choice means no selection.
type Prompter interface {
	Fill(formID string, fields []Field) (map[string]string, error)
	Choose(selectID string, options []render.Option) (string, error)
	Retry(formID string) bool
}

// Presets are values given up front, for instance from command line flags.
type Presets struct {
	Fields  map[string]string
	Choices map[string]string
}

func (p Presets) field(name string) (string, bool) {
	v, ok := p.Fields[name]
	return v, ok
}

// choice matches a preset against the option values first, then the labels.
func (p Presets) choice(selectID string, options []render.Option) (string, bool, error) {
	want, ok := p.Choices[selectID]
	if !ok {
		return "", false, nil
	}
	for _, o := range options {
		if o.Value == want {
			return o.Value, true, nil
		}
	}
	for _, o := range options {
		if o.Label == want {
			return o.Value, true, nil
		}
	}
	return "", true, fmt.Errorf("%s: no option %q", selectID, want)
}

// PresetPrompter never asks anything: it is used when stdin is not a terminal.
type PresetPrompter struct {
	Presets Presets
}

func (p PresetPrompter) Fill(_ string, fields []Field) (map[string]string, error) {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f.Name], _ = p.Presets.field(f.Name)
	}
	return values, nil
}

func (p PresetPrompter) Choose(selectID string, options []render.Option) (string, error) {
	value, _, err := p.Presets.choice(selectID, options)
	return value, err
}

func (p PresetPrompter) Retry(string) bool {
	return false
}

// HuhPrompter asks interactively for everything not preset.
type HuhPrompter struct {
	Presets Presets
}

func (p HuhPrompter) Fill(formID string, fields []Field) (map[string]string, error) {
	values := make(map[string]string, len(fields))
	answers := make([]string, len(fields))
	inputs := make([]huh.Field, 0, len(fields))
	for i, f := range fields {
		if v, ok := p.Presets.field(f.Name); ok {
			values[f.Name] = v
			continue
		}
		input := huh.NewInput().
			Title(f.Label).
			Value(&answers[i])
		if f.Secret {
			input = input.EchoMode(huh.EchoModePassword)
		}
		inputs = append(inputs, input)
	}

	if len(inputs) > 0 {
		err := huh.NewForm(huh.NewGroup(inputs...)).
			WithTheme(huhTheme()).
			WithShowHelp(false).
			Run()
		if err != nil {
			return nil, fmt.Errorf("fill %s: %w", formID, err)
		}
	}

	for i, f := range fields {
		if _, preset := values[f.Name]; !preset {
			values[f.Name] = answers[i]
		}
	}
	return values, nil
}

func (p HuhPrompter) Choose(selectID string, options []render.Option) (string, error) {
	if value, ok, err := p.Presets.choice(selectID, options); ok {
		return value, err
	}
	if len(options) == 0 {
		return "", nil
	}

	huhOptions := make([]huh.Option[string], 0, len(options)+1)
	huhOptions = append(huhOptions, huh.NewOption("(aucun)", ""))
	for _, o := range options {
		huhOptions = append(huhOptions, huh.NewOption(o.Label, o.Value))
	}

	var value string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(selectTitle(selectID)).
				Options(huhOptions...).
				Value(&value),
		),
	).WithTheme(huhTheme()).WithShowHelp(false).Run()
	if err != nil {
		return "", fmt.Errorf("choose %s: %w", selectID, err)
	}
	return value, nil
}

func (p HuhPrompter) Retry(string) bool {
	retry := false
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Réessayer ?").
				Value(&retry),
		),
	).WithTheme(huhTheme()).WithShowHelp(false).Run()
	if err != nil {
		return false
	}
	return retry
}

func huhTheme() *huh.Theme {
	t := huh.ThemeBase()
	t.Focused.Title = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(colorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(colorGreen)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorHeader)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(colorDim)
	return t
}

func selectTitle(selectID string) string {
	switch selectID {
	case "prSelect":
		return "Type de PR"
	case "prSelectActivity":
		return "Activité"
	case "exoSelect":
		return "Exercice"
	default:
		return selectID
	}
}
