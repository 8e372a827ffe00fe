// Package model defines shared data structures.
package model

// Default grading settings.
const (
	DefaultTDWeight = 50.0
	DefaultScale    = 20.0
)

// Module is one entry of the fixed curriculum.
type Module struct {
	ID    string
	Name  string
	Short string
	Coef  int
}

// Label returns the short label when present, otherwise the full name.
func (m Module) Label() string {
	if m.Short != "" {
		return m.Short
	}
	return m.Name
}

// MarkKind selects one of the two raw inputs of a module.
type MarkKind string

const (
	KindTD   MarkKind = "td"
	KindExam MarkKind = "exam"
)

// MarkEntry holds the raw, unparsed inputs of a module. Empty means absent.
type MarkEntry struct {
	TD   string
	Exam string
}

// Get returns the raw value for kind.
func (e MarkEntry) Get(kind MarkKind) string {
	if kind == KindExam {
		return e.Exam
	}
	return e.TD
}

// With returns a copy of e with kind set to value.
func (e MarkEntry) With(kind MarkKind, value string) MarkEntry {
	if kind == KindExam {
		e.Exam = value
	} else {
		e.TD = value
	}
	return e
}

// PersistedState is the record kept in the storage slot.
type PersistedState struct {
	Marks map[string]MarkEntry
}

// NewState returns an empty state.
func NewState() PersistedState {
	return PersistedState{Marks: map[string]MarkEntry{}}
}

// Entry returns the entry for a module id, or a zero entry.
func (s PersistedState) Entry(id string) MarkEntry {
	return s.Marks[id]
}

// Set stores a raw value for a module id, allocating the map if needed.
func (s *PersistedState) Set(id string, kind MarkKind, value string) {
	if s.Marks == nil {
		s.Marks = map[string]MarkEntry{}
	}
	s.Marks[id] = s.Marks[id].With(kind, value)
}

// Mode describes which inputs contributed to a computed mark.
type Mode string

const (
	ModeBoth     Mode = "td+exam"
	ModeExamOnly Mode = "exam-only"
	ModeTDOnly   Mode = "td-only"
	ModeMissing  Mode = "missing"
)

// ComputedMark is a derived module mark. Value is meaningless when Mode is ModeMissing.
type ComputedMark struct {
	Value float64
	Mode  Mode
}

// HasValue reports whether a mark could be computed.
func (c ComputedMark) HasValue() bool {
	return c.Mode != ModeMissing && c.Mode != ""
}

// Grading holds the weighting split and scale used for computation.
type Grading struct {
	TDWeight float64
	Scale    float64
}

// DefaultGrading returns the compiled-in grading settings.
func DefaultGrading() Grading {
	return Grading{TDWeight: DefaultTDWeight, Scale: DefaultScale}
}

// ExamWeight is the exam share in percent.
func (g Grading) ExamWeight() float64 {
	return 100 - g.TDWeight
}
