package tui

import "github.com/charmbracelet/lipgloss"

var (
	brand  = lipgloss.Color("#E3000B")
	yellow = lipgloss.Color("#FFD500")
	muted  = lipgloss.Color("#7A7A7A")
	ink    = lipgloss.Color("#1B1B1B")
)

// Styles groups the lipgloss styles used by the storefront page.
type Styles struct {
	Logo         lipgloss.Style
	CartButton   lipgloss.Style
	NavItem      lipgloss.Style
	NavActive    lipgloss.Style
	Title        lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardCategory lipgloss.Style
	CardTitle    lipgloss.Style
	CardPrice    lipgloss.Style
	CardImage    lipgloss.Style
	Cart         lipgloss.Style
	Empty        lipgloss.Style
	Status       lipgloss.Style
	Error        lipgloss.Style
}

func DefaultStyles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(0, 1).
		Width(cardWidth)

	return Styles{
		Logo:         lipgloss.NewStyle().Bold(true).Foreground(yellow).Background(brand).Padding(0, 1),
		CartButton:   lipgloss.NewStyle().Bold(true).Foreground(ink).Background(yellow).Padding(0, 1),
		NavItem:      lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		NavActive:    lipgloss.NewStyle().Bold(true).Underline(true).Foreground(brand).Padding(0, 1),
		Title:        lipgloss.NewStyle().Bold(true).MarginTop(1),
		Card:         card,
		CardSelected: card.BorderForeground(brand),
		CardCategory: lipgloss.NewStyle().Foreground(muted),
		CardTitle:    lipgloss.NewStyle().Bold(true),
		CardPrice:    lipgloss.NewStyle().Foreground(brand),
		CardImage:    lipgloss.NewStyle().Faint(true),
		Cart:         lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(brand).Padding(0, 1),
		Empty:        lipgloss.NewStyle().Italic(true).Foreground(muted),
		Status:       lipgloss.NewStyle().Foreground(muted),
		Error:        lipgloss.NewStyle().Foreground(brand).Bold(true),
	}
}
