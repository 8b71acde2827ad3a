package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/cardforge/oracle-engine/internal/httpapi"
)

var (
	primaryColor = lipgloss.Color("#7C3AED")
	accentColor  = lipgloss.Color("#10B981")
	warnColor    = lipgloss.Color("#F59E0B")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#94A3B8")
	textColor    = lipgloss.Color("#F8FAFC")

	baseStyle = lipgloss.NewStyle().Foreground(textColor)

	panelStyle = baseStyle.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1).
			Margin(0, 1, 1, 0)

	headerStyle = baseStyle.Foreground(primaryColor).Bold(true)
	appliedTag  = baseStyle.Foreground(accentColor).Bold(true)
	skippedTag  = baseStyle.Foreground(warnColor).Bold(true)
	errorStyle  = baseStyle.Foreground(errorColor)
	mutedStyle  = baseStyle.Foreground(mutedColor)
)

// UI renders game-state panels and apply ledgers to the terminal, sized to
// whatever width the current session reports.
type UI struct {
	width int
}

func NewUI() *UI {
	ui := &UI{width: 80}
	ui.refreshWidth()
	return ui
}

func (ui *UI) refreshWidth() {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		ui.width = w
		return
	}
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if w, err := strconv.Atoi(cols); err == nil {
			ui.width = w
		}
	}
}

// RenderState lays out one panel per player side by side, falling back to a
// vertical stack on narrow terminals.
func (ui *UI) RenderState(state httpapi.GameState) string {
	ui.refreshWidth()
	var panels []string
	for _, p := range state.Players {
		panels = append(panels, ui.renderPlayerPanel(p, state.TurnPlayer))
	}
	header := headerStyle.Render(fmt.Sprintf("turn %d", state.TurnNumber))
	if ui.width < 80 || len(panels) == 0 {
		return strings.Join(append([]string{header}, panels...), "\n")
	}
	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}

func (ui *UI) renderPlayerPanel(p httpapi.Player, turnPlayer string) string {
	style := panelStyle
	lines := []string{
		headerStyle.Render(p.ID),
		fmt.Sprintf("life: %d", p.Life),
		mutedStyle.Render(fmt.Sprintf("library %d  hand %d  graveyard %d  exile %d",
			len(p.Library), len(p.Hand), len(p.Graveyard), len(p.Exile))),
	}
	if p.ID == turnPlayer {
		lines = append(lines, baseStyle.Foreground(accentColor).Render("(active)"))
	}
	return style.Render(strings.Join(lines, "\n"))
}

// RenderLedger prints every applied and skipped step from one apply call.
func (ui *UI) RenderLedger(resp httpapi.ApplyResponse) string {
	var b strings.Builder
	for _, a := range resp.Applied {
		fmt.Fprintf(&b, "%s %-20s %s\n", appliedTag.Render("[applied]"), a.Kind, a.Note)
	}
	for _, s := range resp.Skipped {
		fmt.Fprintf(&b, "%s %-20s %s (%s)\n", skippedTag.Render("[skipped]"), s.Kind, s.Detail, s.Reason)
	}
	if len(resp.Applied) == 0 && len(resp.Skipped) == 0 {
		b.WriteString(mutedStyle.Render("no steps parsed from that text\n"))
	}
	return b.String()
}

func (ui *UI) RenderError(err error) string {
	return errorStyle.Render("error: " + err.Error())
}
