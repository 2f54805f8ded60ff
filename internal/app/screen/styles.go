package screen

import (
	"dummy-data/internal/domain/model"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary     = lipgloss.Color("#1999dd")
	colorDestructive = lipgloss.Color("#e53935")
	colorSuccess     = lipgloss.Color("#8BC34A")
	colorInfo        = lipgloss.Color("#2196F3")
	colorMuted       = lipgloss.Color("#8a8f98")
)

type Styles struct {
	Header       lipgloss.Style
	Card         lipgloss.Style
	CardTitle    lipgloss.Style
	Label        lipgloss.Style
	InputError   lipgloss.Style
	Button       lipgloss.Style
	ButtonFocus  lipgloss.Style
	Danger       lipgloss.Style
	DangerFocus  lipgloss.Style
	Muted        lipgloss.Style
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
}

func DefaultStyles() Styles {
	button := lipgloss.NewStyle().
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Foreground(colorPrimary)
	toast := lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true).
		Foreground(lipgloss.Color("#ffffff"))

	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1).
			Width(48),
		CardTitle:   lipgloss.NewStyle().Bold(true),
		Label:       lipgloss.NewStyle().Foreground(colorMuted),
		InputError:  lipgloss.NewStyle().Foreground(colorDestructive),
		Button:      button,
		ButtonFocus: button.Bold(true).Reverse(true),
		Danger: button.
			BorderForeground(colorDestructive).
			Foreground(colorDestructive),
		DangerFocus: button.
			BorderForeground(colorDestructive).
			Foreground(colorDestructive).
			Bold(true).
			Reverse(true),
		Muted:        lipgloss.NewStyle().Foreground(colorMuted),
		ToastInfo:    toast.Background(colorInfo),
		ToastSuccess: toast.Background(colorSuccess),
		ToastError:   toast.Background(colorDestructive),
	}
}

func (s Styles) toast(severity model.Severity) lipgloss.Style {
	switch severity {
	case model.SeveritySuccess:
		return s.ToastSuccess
	case model.SeverityError:
		return s.ToastError
	}
	return s.ToastInfo
}
