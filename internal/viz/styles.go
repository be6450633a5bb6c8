package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/raytracer/internal/canvas"
	"github.com/san-kum/raytracer/internal/color"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888899")).
		Width(12)

	Value = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00ccff")).
		Bold(true)

	StatusOK = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusWarn = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	Hint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)
)

// Preview renders c as a bordered braille panel tinted with its dominant
// color.
func Preview(c *canvas.Canvas, cols, rows int, title string) string {
	ink := lipgloss.NewStyle().Foreground(lipgloss.Color(DominantColor(c).Hex()))
	body := ink.Render(FromCanvas(c, cols, rows).String())
	return Panel.Render(lipgloss.JoinVertical(lipgloss.Left, Title.Render(title), body))
}

// Swatch renders a small block in col.
func Swatch(col color.Color) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(col.Hex())).Render("  ")
}

// Field renders one "label value" line.
func Field(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, Label.Render(label), Value.Render(value))
}
