package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/moyenne/internal/model"
)

const (
	gaugeFull  = "█"
	gaugeEmpty = "░"
)

var badStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))

// Options control text rendering.
type Options struct {
	// Color styles out-of-scale rows.
	Color bool
	// GaugeWidth adds a bar column of that many cells when > 0.
	GaugeWidth int
}

// Render prints the module table followed by the average summary.
func Render(w io.Writer, r Report, opts Options) error {
	headers := []string{"Module", "Coef", "TD", "Exam", "Mark", "Mode"}
	if opts.GaugeWidth > 0 {
		headers = append(headers, "")
	}
	tableRows := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		mode := string(row.Mark.Mode)
		if row.Bad {
			mode += " (out of scale)"
		}
		cells := []string{
			row.Module.Label(),
			strconv.Itoa(row.Module.Coef),
			cellValue(row.Entry.TD),
			cellValue(row.Entry.Exam),
			r.MarkText(row),
			mode,
		}
		if opts.GaugeWidth > 0 {
			cells = append(cells, Gauge(row.Mark.Value, r.Grading.Scale, opts.GaugeWidth, row.Mark.HasValue() && !row.Bad))
		}
		tableRows = append(tableRows, cells)
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	lines := formatTable(headers, tableRows, rightAlign)
	for i, line := range lines {
		if i > 0 && opts.Color && r.Rows[i-1].Bad {
			line = badStyle.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return RenderSummary(w, r)
}

// RenderSummary prints the average, counted coefficients and meta line.
func RenderSummary(w io.Writer, r Report) error {
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Average: %s\n", r.AverageText()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Coefficients counted: %d\n", r.Overall.CoefficientSum); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, r.MetaText()); err != nil {
		return err
	}
	return nil
}

// Gauge renders value/scale as a fixed-width bar. Invalid values render empty.
func Gauge(value, scale float64, width int, valid bool) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if valid && scale > 0 {
		filled = int(math.Round(value / scale * float64(width)))
		if filled < 0 {
			filled = 0
		}
		if filled > width {
			filled = width
		}
	}
	return strings.Repeat(gaugeFull, filled) + strings.Repeat(gaugeEmpty, width-filled)
}

func cellValue(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Placeholder
	}
	return raw
}

// RenderCatalog prints the fixed module list.
func RenderCatalog(w io.Writer, modules []model.Module) error {
	headers := []string{"ID", "Module", "Short", "Coef"}
	rows := make([][]string, 0, len(modules))
	for _, mod := range modules {
		rows = append(rows, []string{mod.ID, mod.Name, mod.Short, strconv.Itoa(mod.Coef)})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
