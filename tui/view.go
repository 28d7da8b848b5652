// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
	"github.com/storyline-cli/storyline/color"
	"github.com/storyline-cli/storyline/icon"
	"github.com/storyline-cli/storyline/key"
	"github.com/storyline-cli/storyline/story"
	"github.com/storyline-cli/storyline/style"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	switch b.state {
	case loadingState:
		return b.viewLoading()
	case feedState:
		return b.viewFeed()
	case viewingState:
		return b.viewViewing()
	case errorState:
		return b.viewError()
	default:
		return "Unknown state"
	}
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewFeed() string {
	return listExtraPaddingStyle.Render(b.feedC.View())
}

func (b *statefulBubble) viewViewing() string {
	session := b.session
	if session == nil {
		return b.viewFeed()
	}

	item := session.Item()
	counter := fmt.Sprintf("%d/%d", session.Index()+1, len(session.Items()))

	header := fmt.Sprintf("%s %s %s %s",
		icon.Get(kindIcon(item.Kind)),
		style.Bold(item.OwnerName),
		style.Faint(counter),
		style.Faint(item.Age()),
	)

	var stateLine string
	if session.Paused() {
		stateLine = style.Fg(color.Yellow)("paused")
	} else if item.Kind == story.KindVideo {
		stateLine = style.Faint("playing in " + viper.GetString(key.PlayerVideoBackend))
	}

	lines := []string{
		style.Title("Stories"),
		"",
		style.Truncate(b.width)(header),
		"",
		b.progressC.ViewAs(session.Progress() / 100),
	}

	if caption, ok := item.Caption.Get(); ok {
		lines = append(lines, "", wordwrap.String(style.Italic(caption), b.width))
	}

	if viper.GetBool(key.TUIShowURLs) {
		lines = append(lines, "", style.Faint(style.Truncate(b.width)(item.MediaURI)))
	}

	if stateLine != "" {
		lines = append(lines, "", stateLine)
	}

	// Keymap hints behave like tap-to-reveal controls: visible after any
	// tap, hidden again a few seconds later.
	return b.renderLines(session.ControlsVisible(), lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("Critical Failure: %v", b.lastError))
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			errorMsg,
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
