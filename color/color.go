// Package color names the terminal colors used across the CLI output.
package color

import "github.com/charmbracelet/lipgloss"

// New initializes a lipgloss.Color from a string value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI colors, left to the terminal theme so plain command output
// blends with whatever scheme the user runs.
var (
	Red      = New("1")
	Green    = New("2")
	Yellow   = New("3")
	Purple   = New("5")
	HiRed    = New("9")
	HiPurple = New("13")
)

// Orange highlights the watch action in key hints; it has no ANSI slot.
var Orange = New("#f6a33c")
