package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/medintel/cmd/medintel/tui/help"
	"github.com/mrsinham/medintel/internal/locale"
)

// HelpPanel displays contextual help for the focused field
type HelpPanel struct {
	l            *locale.Localizer
	currentField string
	width        int
	height       int
}

// NewHelpPanel creates a new help panel rendering its texts through l
func NewHelpPanel(l *locale.Localizer) *HelpPanel {
	return &HelpPanel{
		l:      l,
		width:  60,
		height: 10,
	}
}

// SetField updates which field's help to display
func (h *HelpPanel) SetField(field string) {
	h.currentField = field
}

// Field returns the field whose help is shown
func (h *HelpPanel) Field() string { return h.currentField }

// SetSize updates panel dimensions
func (h *HelpPanel) SetSize(width, height int) {
	if width < 24 {
		width = 24
	}
	h.width = width
	h.height = height
}

// View renders the help panel, or nothing for fields without help
func (h *HelpPanel) View() string {
	text, ok := help.Texts[h.currentField]
	if !ok {
		return ""
	}

	t := Current()
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(h.width - 4)

	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render(h.l.T(text.Title)))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(t.Text).Render(h.l.T(text.Description)))
	if text.Details != "" {
		sb.WriteString("\n\n")
		sb.WriteString(lipgloss.NewStyle().Foreground(t.Muted).Render(h.l.T(text.Details)))
	}

	return style.Render(sb.String())
}
