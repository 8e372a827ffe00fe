package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/moyenne/internal/catalog"
	"github.com/verte-zerg/moyenne/internal/model"
)

func TestBuildEmptyState(t *testing.T) {
	r := Build(model.NewState(), catalog.Modules(), model.DefaultGrading())
	if len(r.Rows) != 11 {
		t.Fatalf("expected 11 rows, got %d", len(r.Rows))
	}
	for _, row := range r.Rows {
		if row.Mark.Mode != model.ModeMissing {
			t.Fatalf("expected missing mark for %s", row.Module.ID)
		}
		if r.MarkText(row) != Placeholder {
			t.Fatalf("expected placeholder for %s", row.Module.ID)
		}
	}
	if r.AverageText() != Placeholder {
		t.Fatalf("expected placeholder average, got %q", r.AverageText())
	}
	if r.MetaText() != "Fill at least one module." {
		t.Fatalf("unexpected meta: %q", r.MetaText())
	}
}

func TestBuildComputesRowsAndAverage(t *testing.T) {
	state := model.NewState()
	state.Set("oral-tech-1", model.KindTD, "10")
	state.Set("oral-tech-1", model.KindExam, "14")
	state.Set("esp", model.KindExam, "8")
	state.Set("ethics", model.KindTD, "13,333")

	r := Build(state, catalog.Modules(), model.DefaultGrading())
	row, ok := r.Row("oral-tech-1")
	if !ok || row.Mark.Mode != model.ModeBoth || r.MarkText(row) != "12 / 20" {
		t.Fatalf("unexpected oral row: %+v %q", row, r.MarkText(row))
	}
	row, _ = r.Row("ethics")
	if r.MarkText(row) != "13.33 / 20" {
		t.Fatalf("expected display rounding, got %q", r.MarkText(row))
	}
	if row.Mark.Value != 13.333 {
		t.Fatalf("stored value must not be rounded, got %v", row.Mark.Value)
	}
	// (12*3 + 8*1 + 13.333*1) / 5
	if r.Overall.CoefficientSum != 5 || r.Overall.ModuleCount != 3 {
		t.Fatalf("unexpected overall: %+v", r.Overall)
	}
	if r.AverageText() != "11.47 / 20" {
		t.Fatalf("unexpected average text: %q", r.AverageText())
	}
	if r.MetaText() != "Calculated from 3 module(s)." {
		t.Fatalf("unexpected meta: %q", r.MetaText())
	}
}

func TestBuildFlagsOutOfScaleMarks(t *testing.T) {
	state := model.NewState()
	state.Set("esp", model.KindTD, "20")
	state.Set("esp", model.KindExam, "0")
	r := Build(state, catalog.Modules(), model.Grading{TDWeight: 150, Scale: 20})

	row, _ := r.Row("esp")
	if !row.Bad {
		t.Fatalf("expected out-of-scale mark to be flagged, got %+v", row)
	}
	if r.MarkText(row) != "30 / 20" {
		t.Fatalf("expected flagged mark to still display, got %q", r.MarkText(row))
	}
	if r.Overall.HasAverage {
		t.Fatalf("flagged mark must not count toward the average")
	}
}

func TestRender(t *testing.T) {
	state := model.NewState()
	state.Set("library-research", model.KindExam, "15")
	r := Build(state, catalog.Modules(), model.DefaultGrading())

	var buf bytes.Buffer
	if err := Render(&buf, r, Options{GaugeWidth: 4}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Library research",
		"15 / 20",
		"exam-only",
		"███░",
		"Average: 15 / 20",
		"Coefficients counted: 2",
		"Calculated from 1 module(s).",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 1+11+1+3 {
		t.Fatalf("unexpected line count %d:\n%s", len(lines), out)
	}
}

func TestGauge(t *testing.T) {
	if got := Gauge(10, 20, 10, true); got != "█████░░░░░" {
		t.Fatalf("unexpected half gauge: %q", got)
	}
	if got := Gauge(25, 20, 4, true); got != "████" {
		t.Fatalf("expected clamped gauge, got %q", got)
	}
	if got := Gauge(10, 20, 3, false); got != "░░░" {
		t.Fatalf("expected empty gauge for invalid mark, got %q", got)
	}
	if got := Gauge(10, 20, 0, true); got != "" {
		t.Fatalf("expected no gauge, got %q", got)
	}
}
