package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles of the seat grid. Colors are ANSI 256 codes.
type Theme struct {
	Title      lipgloss.Style
	FreeSeat   lipgloss.Style
	TakenSeat  lipgloss.Style
	Cursor     lipgloss.Color
	Dialog     lipgloss.Style
	Label      lipgloss.Style
	TableHead  lipgloss.Style
	Info       lipgloss.Style
	Error      lipgloss.Style
	Help       lipgloss.Style
	FocusLabel lipgloss.Style
}

const (
	cellWidth  = 12
	cellHeight = 3
)

func DefaultTheme() Theme {
	cell := lipgloss.NewStyle().
		Width(cellWidth).
		Height(cellHeight).
		Align(lipgloss.Center).
		Bold(true).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))

	return Theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		FreeSeat:   cell.Background(lipgloss.Color("114")).Foreground(lipgloss.Color("16")),
		TakenSeat:  cell.Background(lipgloss.Color("160")).Foreground(lipgloss.Color("231")),
		Cursor:     lipgloss.Color("226"),
		Dialog:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39")).Padding(0, 1),
		Label:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		FocusLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		TableHead:  lipgloss.NewStyle().Bold(true),
		Info:       lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
