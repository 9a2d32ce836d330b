package ui

import "github.com/charmbracelet/huh"

// DevcatTheme styles the collection picker. Only select fields are used, so
// only their styles are set.
func DevcatTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(colorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(colorPrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(colorMuted)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(colorPrimary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(colorSoft)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(colorMuted)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderForeground(colorFaint)
	t.Blurred.Title = t.Blurred.Title.Foreground(colorMuted).Bold(false)

	return t
}
