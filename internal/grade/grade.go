// Package grade computes module marks and the weighted overall average.
package grade

import (
	"math"
	"strconv"
	"strings"

	"github.com/verte-zerg/moyenne/internal/model"
)

// Overall is the aggregate over the catalog.
type Overall struct {
	Average        float64
	HasAverage     bool
	CoefficientSum int
	ModuleCount    int
}

// ParseMark parses a raw mark, accepting a comma as decimal separator.
// Empty or unparseable input reports ok=false.
func ParseMark(raw string) (value float64, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// WithinScale reports whether v lies in [0, scale].
func WithinScale(v, scale float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= 0 && v <= scale
}

// IsValid reports whether a computed mark counts toward the average.
func IsValid(mark model.ComputedMark, scale float64) bool {
	return mark.HasValue() && WithinScale(mark.Value, scale)
}

// ComputeModuleMark derives the effective mark of a module from its raw inputs.
func ComputeModuleMark(entry model.MarkEntry, g model.Grading) model.ComputedMark {
	td, hasTD := ParseMark(entry.TD)
	exam, hasExam := ParseMark(entry.Exam)
	hasTD = hasTD && WithinScale(td, g.Scale)
	hasExam = hasExam && WithinScale(exam, g.Scale)

	switch {
	case hasTD && hasExam:
		mark := (td*g.TDWeight + exam*g.ExamWeight()) / 100
		return model.ComputedMark{Value: mark, Mode: model.ModeBoth}
	case hasExam:
		return model.ComputedMark{Value: exam, Mode: model.ModeExamOnly}
	case hasTD:
		return model.ComputedMark{Value: td, Mode: model.ModeTDOnly}
	default:
		return model.ComputedMark{Mode: model.ModeMissing}
	}
}

// ComputeOverallAverage aggregates valid module marks weighted by coefficient.
// Modules without a valid mark are left out; with none, HasAverage is false.
func ComputeOverallAverage(modules []model.Module, marks map[string]model.MarkEntry, g model.Grading) Overall {
	var sum float64
	var out Overall
	for _, mod := range modules {
		mark := ComputeModuleMark(marks[mod.ID], g)
		if !IsValid(mark, g.Scale) {
			continue
		}
		sum += mark.Value * float64(mod.Coef)
		out.CoefficientSum += mod.Coef
		out.ModuleCount++
	}
	if out.CoefficientSum == 0 {
		return out
	}
	out.Average = sum / float64(out.CoefficientSum)
	out.HasAverage = true
	return out
}

// Round2 rounds to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatMark renders v rounded to two decimals without trailing zeros.
func FormatMark(v float64) string {
	r := Round2(v)
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
