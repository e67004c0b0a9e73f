package report

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	label      lipgloss.Style
	value      lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	buy        lipgloss.Style
	hold       lipgloss.Style
	sell       lipgloss.Style
	riskLow    lipgloss.Style
	riskMedium lipgloss.Style
	riskHigh   lipgloss.Style
	bullet     lipgloss.Style
	faint      lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		label:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		value:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		buy:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		hold:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		sell:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		riskLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		riskMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		riskHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		bullet:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		faint:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func (s styles) action(action string) lipgloss.Style {
	switch action {
	case "Buy":
		return s.buy
	case "Sell":
		return s.sell
	default:
		return s.hold
	}
}

func (s styles) risk(level string) lipgloss.Style {
	switch level {
	case "low":
		return s.riskLow
	case "high":
		return s.riskHigh
	default:
		return s.riskMedium
	}
}
