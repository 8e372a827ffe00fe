// Package tui provides the Bubble Tea marks table.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/moyenne/internal/model"
	"github.com/verte-zerg/moyenne/internal/report"
)

const (
	fieldsPerRow = 2
	inputWidth   = 7
)

// StateStore persists the marks record.
type StateStore interface {
	Load(ctx context.Context) model.PersistedState
	Save(ctx context.Context, state model.PersistedState) error
	Clear(ctx context.Context) error
}

// Model implements the Bubble Tea marks UI.
type Model struct {
	store   StateStore
	log     zerolog.Logger
	grading model.Grading
	modules []model.Module

	state  model.PersistedState
	report report.Report

	inputs []textinput.Model
	focus  int

	confirmReset bool
	status       string

	width  int
	height int
}

// NewModel loads the persisted state and builds one input pair per module.
func NewModel(st StateStore, modules []model.Module, g model.Grading, log zerolog.Logger) *Model {
	m := &Model{
		store:   st,
		log:     log,
		grading: g,
		modules: modules,
	}
	m.state = st.Load(context.Background())
	m.initInputs()
	m.recompute()
	return m
}

func (m *Model) initInputs() {
	m.inputs = make([]textinput.Model, 0, len(m.modules)*fieldsPerRow)
	for _, mod := range m.modules {
		entry := m.state.Entry(mod.ID)
		for _, kind := range []model.MarkKind{model.KindTD, model.KindExam} {
			input := textinput.New()
			input.Prompt = ""
			input.Placeholder = report.Placeholder
			input.CharLimit = 0
			input.Width = inputWidth
			input.SetValue(entry.Get(kind))
			m.inputs = append(m.inputs, input)
		}
	}
	m.setFocus(0)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.confirmReset {
			return m.updateConfirm(msg)
		}
		switch msg.String() {
		case "esc":
			return m, tea.Quit
		case "ctrl+r":
			m.confirmReset = true
			m.status = ""
			return m, nil
		case "tab":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab":
			return m, m.setFocus(m.focus - 1)
		case "down", "enter":
			return m, m.setFocus(m.focus + fieldsPerRow)
		case "up":
			return m, m.setFocus(m.focus - fieldsPerRow)
		}
	}
	return m.updateFocused(msg)
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirmReset = false
		m.reset()
	case "n", "N", "esc":
		m.confirmReset = false
	}
	return m, nil
}

func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	input := m.inputs[m.focus]
	before := input.Value()
	var cmd tea.Cmd
	input, cmd = input.Update(msg)
	m.inputs[m.focus] = input
	if input.Value() != before {
		m.applyInput(m.focus, input.Value())
	}
	return m, cmd
}

// applyInput runs parse, persist and recompute for one edited field.
func (m *Model) applyInput(idx int, value string) {
	mod, kind := m.fieldAt(idx)
	m.state.Set(mod.ID, kind, value)
	if err := m.store.Save(context.Background(), m.state); err != nil {
		m.log.Error().Err(err).Str("module", mod.ID).Msg("failed to save marks")
		m.status = "Failed to save marks."
	} else {
		m.status = ""
	}
	m.recompute()
}

func (m *Model) reset() {
	if err := m.store.Clear(context.Background()); err != nil {
		m.log.Error().Err(err).Msg("failed to clear marks")
		m.status = "Failed to clear marks."
		return
	}
	m.state = m.store.Load(context.Background())
	for i := range m.inputs {
		mod, kind := m.fieldAt(i)
		m.inputs[i].SetValue(m.state.Entry(mod.ID).Get(kind))
	}
	m.setFocus(0)
	m.recompute()
	m.status = "All marks cleared."
	m.log.Info().Msg("marks reset")
}

func (m *Model) recompute() {
	m.report = report.Build(m.state, m.modules, m.grading)
}

func (m *Model) fieldAt(idx int) (model.Module, model.MarkKind) {
	mod := m.modules[idx/fieldsPerRow]
	if idx%fieldsPerRow == 0 {
		return mod, model.KindTD
	}
	return mod, model.KindExam
}

func (m *Model) setFocus(idx int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	n := len(m.inputs)
	idx = ((idx % n) + n) % n
	m.inputs[m.focus].Blur()
	m.focus = idx
	return m.inputs[m.focus].Focus()
}
