package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/moyenne/internal/grade"
	"github.com/verte-zerg/moyenne/internal/report"
)

const (
	maxLabelWidth = 38
	coefWidth     = 4
	markWidth     = 10
	columnGap     = "  "
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	subStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	coefStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	markStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	missingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	badStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	averageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	focusRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	modalStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		"",
		m.renderTable(),
		"",
		m.renderSummary(),
	}
	if m.confirmReset {
		sections = append(sections, "", modalStyle.Render("Reset all marks and settings? (y/n)"))
	} else {
		if m.status != "" {
			sections = append(sections, "", statusStyle.Render(m.status))
		}
		sections = append(sections, "", m.renderHelp())
	}
	content := strings.Join(sections, "\n")
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderTitle() string {
	return titleStyle.Render(fmt.Sprintf("Weighted average · TD %s%% / Exam %s%% · scale %s",
		grade.FormatMark(m.grading.TDWeight),
		grade.FormatMark(m.grading.ExamWeight()),
		grade.FormatMark(m.grading.Scale),
	))
}

func (m *Model) labelWidth() int {
	width := runewidth.StringWidth("Module")
	for _, mod := range m.modules {
		if w := runewidth.StringWidth(mod.Name); w > width {
			width = w
		}
	}
	if width > maxLabelWidth {
		width = maxLabelWidth
	}
	return width
}

func (m *Model) renderTable() string {
	labelW := m.labelWidth()
	lines := make([]string, 0, len(m.report.Rows)*2+1)
	lines = append(lines, headerStyle.Render(strings.Join([]string{
		padRight("Module", labelW),
		padLeft("Coef", coefWidth),
		padRight("TD", inputWidth+1),
		padRight("Exam", inputWidth+1),
		padLeft("Mark", markWidth),
	}, columnGap)))

	for i, row := range m.report.Rows {
		name := padRight(runewidth.Truncate(row.Module.Name, labelW, "…"), labelW)
		if m.focus/fieldsPerRow == i {
			name = focusRowStyle.Render(name)
		}
		cells := []string{
			name,
			coefStyle.Render(padLeft(strconv.Itoa(row.Module.Coef), coefWidth)),
			fitCell(m.inputs[i*fieldsPerRow].View(), inputWidth+1),
			fitCell(m.inputs[i*fieldsPerRow+1].View(), inputWidth+1),
			m.renderMark(row),
		}
		lines = append(lines, strings.Join(cells, columnGap))
		if row.Module.Short != "" {
			lines = append(lines, subStyle.Render(row.Module.Short))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderMark(row report.Row) string {
	text := padLeft(m.report.MarkText(row), markWidth)
	switch {
	case !row.Mark.HasValue():
		return missingStyle.Render(text)
	case row.Bad:
		return badStyle.Render(text)
	default:
		return markStyle.Render(text)
	}
}

func (m *Model) renderSummary() string {
	avg := averageStyle.Render("Average " + m.report.AverageText())
	segments := []string{
		avg,
		footerStyle.Render(fmt.Sprintf("Coefficients %d", m.report.Overall.CoefficientSum)),
		footerStyle.Render(m.report.MetaText()),
	}
	return strings.Join(segments, "   ")
}

func (m *Model) renderHelp() string {
	return footerStyle.Render("tab/shift+tab field · ↑/↓ row · ctrl+r reset · esc quit")
}

func padRight(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

// fitCell pads a pre-styled cell, measuring it without escape sequences.
func fitCell(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
