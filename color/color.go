// Package color names the terminal colors used in CLI output.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps a color value for lipgloss.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI base colors.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
	White  = New("7")
	Black  = New("8")
)

var (
	HiRed    = New("9")
	HiPurple = New("13")
	HiCyan   = New("14")
)

// Accents.
var (
	Orange = New("#ffb703")
	Gray   = New("#808080")
	Pink   = New("#ff5f87")
)
