package form

import (
	"fmt"
	"strings"

	"github.com/abelbrown/factguard/internal/ui/claims"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.Color("214") // amber
	colorMuted  = lipgloss.Color("240")
	colorText   = lipgloss.Color("252")
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("232")).
			Background(colorAccent).
			Bold(true).
			Padding(0, 2)

	buttonDisabled = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Background(lipgloss.Color("237")).
			Padding(0, 2)

	progressBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("94")).
			Background(lipgloss.Color("229")).
			Bold(true).
			Padding(0, 1)

	previewBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(1, 2)

	echoStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("203")).
			Foreground(lipgloss.Color("255")).
			Bold(true).
			Padding(1, 3)
)

// View renders the form.
func (m Model) View() string {
	if m.alert != "" {
		return m.alertView()
	}

	var sections []string
	sections = append(sections, m.inputView())

	if m.loading {
		sections = append(sections, m.progressView())
	}
	if m.preview {
		sections = append(sections, m.previewView())
	}

	return strings.Join(sections, "\n\n")
}

func (m Model) inputView() string {
	var b strings.Builder

	b.WriteString(labelStyle.Render("Text to check"))
	b.WriteByte('\n')
	b.WriteString(m.text.View())
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Or a URL"))
	b.WriteByte('\n')
	b.WriteString(m.url.View())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(buttonDisabled.Render(m.spinner.View() + " Analyzing..."))
	} else {
		b.WriteString(buttonStyle.Render("ctrl+s  Analyze"))
		b.WriteString(hintStyle.Render("   tab switch field · esc clear"))
	}
	return b.String()
}

func (m Model) progressView() string {
	pct := fmt.Sprintf("%d%%", m.progress)
	header := progressBadge.Render("PROGRESS") + "  " +
		hintStyle.Render(m.step.label()) + "  " +
		lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(pct)

	return header + "\n" + m.bar.ViewAs(float64(m.progress)/100)
}

func (m Model) previewView() string {
	width := m.width - 4
	if width < 40 {
		width = 40
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("Claims to verify"))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("Original input:"))
	b.WriteByte('\n')
	b.WriteString(echoStyle.Width(width - 6).Render(m.original))
	b.WriteString("\n\n")
	b.WriteString(claims.List(m.claims, m.pager, m.cursor, width-6))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("enter confirm · d remove · j/k move · h/l page · esc cancel"))

	return previewBox.Width(width).Render(b.String())
}

func (m Model) alertView() string {
	box := alertStyle.Render(m.alert + "\n\n" + hintStyle.Render("press any key"))
	if m.width <= 0 {
		return box
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box)
}
