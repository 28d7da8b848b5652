package style

import "github.com/charmbracelet/lipgloss"

// Dusk theme. Warm yellow accent over a dark violet base, tuned for
// story captions and progress bars on 256-color terminals.
var (
	Base    = lipgloss.Color("#191724")
	Text    = lipgloss.Color("#e0def4")
	Subtext = lipgloss.Color("#908caa")

	Gold  = lipgloss.Color("#f6c177")
	Iris  = lipgloss.Color("#c4a7e7")
	Green = lipgloss.Color("#9ccfd8")
	HiRed = lipgloss.Color("#eb6f92")

	AccentColor = Gold
	FaintColor  = Subtext
)
