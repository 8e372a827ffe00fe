// Package report turns persisted marks into a render model and text output.
package report

import (
	"fmt"

	"github.com/verte-zerg/moyenne/internal/grade"
	"github.com/verte-zerg/moyenne/internal/model"
)

// Placeholder is shown where no mark is available.
const Placeholder = "—"

// Row is the render model for one module.
type Row struct {
	Module model.Module
	Entry  model.MarkEntry
	Mark   model.ComputedMark
	// Bad is set when a computed mark falls outside [0, scale].
	Bad bool
}

// Report is a full recomputation of the catalog for display.
type Report struct {
	Rows    []Row
	Overall grade.Overall
	Grading model.Grading
}

// Build computes a report from state. It has no side effects.
func Build(state model.PersistedState, modules []model.Module, g model.Grading) Report {
	rows := make([]Row, 0, len(modules))
	for _, mod := range modules {
		entry := state.Entry(mod.ID)
		mark := grade.ComputeModuleMark(entry, g)
		rows = append(rows, Row{
			Module: mod,
			Entry:  entry,
			Mark:   mark,
			Bad:    mark.HasValue() && !grade.WithinScale(mark.Value, g.Scale),
		})
	}
	return Report{
		Rows:    rows,
		Overall: grade.ComputeOverallAverage(modules, state.Marks, g),
		Grading: g,
	}
}

// MarkText renders a row's mark as "x / scale" or the placeholder.
func (r Report) MarkText(row Row) string {
	if !row.Mark.HasValue() {
		return Placeholder
	}
	return fmt.Sprintf("%s / %s", grade.FormatMark(row.Mark.Value), grade.FormatMark(r.Grading.Scale))
}

// AverageText renders the overall average or the placeholder.
func (r Report) AverageText() string {
	if !r.Overall.HasAverage {
		return Placeholder
	}
	return fmt.Sprintf("%s / %s", grade.FormatMark(r.Overall.Average), grade.FormatMark(r.Grading.Scale))
}

// MetaText describes how the average was obtained.
func (r Report) MetaText() string {
	if r.Overall.CoefficientSum == 0 {
		return "Fill at least one module."
	}
	return fmt.Sprintf("Calculated from %d module(s).", r.Overall.ModuleCount)
}

// Row returns the row for a module id.
func (r Report) Row(id string) (Row, bool) {
	for _, row := range r.Rows {
		if row.Module.ID == id {
			return row, true
		}
	}
	return Row{}, false
}
