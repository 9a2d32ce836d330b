package ui

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

var ErrNoOptions = errors.New("nothing to choose from")

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

type SelectOption[T comparable] struct {
	Label string
	Value T
}

// Select asks the user to pick one option. The first option is preselected.
func Select[T comparable](title, description string, options []SelectOption[T]) (T, error) {
	var result T
	if len(options) == 0 {
		return result, ErrNoOptions
	}
	if err := newSelectForm(title, description, options, &result).Run(); err != nil {
		return result, err
	}
	return result, nil
}

func newSelectForm[T comparable](title, description string, options []SelectOption[T], value *T) *huh.Form {
	if len(options) > 0 {
		*value = options[0].Value
	}

	huhOpts := make([]huh.Option[T], len(options))
	for i, opt := range options {
		huhOpts[i] = huh.NewOption(opt.Label, opt.Value)
	}

	sel := huh.NewSelect[T]().
		Title(title).
		Options(huhOpts...).
		Value(value)
	if description != "" {
		sel = sel.Description(description)
	}
	return huh.NewForm(huh.NewGroup(sel)).WithTheme(DevcatTheme())
}
