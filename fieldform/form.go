// Package fieldform provides a data-driven forms.Unit: a titled list of text,
// select and toggle fields, each bound to part of the wizard value through a
// getter and a setter. The same form renders in the Bubble Tea host and can
// be filled headlessly through SetValue.
package fieldform

import (
	"fmt"
	"strings"

	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"

	"github.com/BrianJOC/ndx-builder/forms"
)

var validate = validator.New()

// RegisterRule makes tag usable in Field.Rule. ok reports whether a field
// value satisfies the rule.
func RegisterRule(tag string, ok func(value string) bool) error {
	return validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return ok(fl.Field().String())
	})
}

type fieldState struct {
	input    textinput.Model
	options  []Option
	selected int
}

// Form is a forms.Unit built from fields.
type Form[T any] struct {
	id     string
	title  string
	fields []Field[T]
	state  []fieldState

	focus    int
	visible  bool
	progress *forms.Progress
}

var _ forms.Unit[struct{}] = (*Form[struct{}])(nil)

// New builds a form. It panics when a field has no id, getter or setter, or
// when two fields share an id.
func New[T any](id, title string, fields ...Field[T]) *Form[T] {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.ID == "" || f.Get == nil || f.Set == nil {
			panic(fmt.Sprintf("fieldform: form %s has a field without id, getter or setter", id))
		}
		if _, dup := seen[f.ID]; dup {
			panic(fmt.Sprintf("fieldform: form %s declares field %s twice", id, f.ID))
		}
		seen[f.ID] = struct{}{}
	}
	form := &Form[T]{
		id:     id,
		title:  title,
		fields: append([]Field[T]{}, fields...),
		state:  make([]fieldState, len(fields)),
	}
	for i, f := range form.fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = f.Label
		ti.Blur()
		form.state[i].input = ti
		form.state[i].options = f.options()
	}
	form.Clear()
	return form
}

// Step wraps the form in a forms.Step using the form id.
func (f *Form[T]) Step() *forms.Step[T] {
	return forms.NewStep[T](f.id, f)
}

// ID returns the form id.
func (f *Form[T]) ID() string {
	return f.id
}

// Title returns the form heading.
func (f *Form[T]) Title() string {
	return f.title
}

// Progress returns the progress passed to the last Fill.
func (f *Form[T]) Progress() *forms.Progress {
	return f.progress
}

// Fill implements forms.Unit. Fields whose getter returns "" keep their
// current input.
func (f *Form[T]) Fill(value T, progress *forms.Progress) {
	f.progress = progress
	for i, field := range f.fields {
		st := &f.state[i]
		if field.choice() {
			st.options = field.options()
			if st.selected >= len(st.options) {
				st.selected = 0
			}
		}
		v := field.Get(value)
		if v == "" {
			continue
		}
		if field.choice() {
			if idx := optionIndex(st.options, v); idx >= 0 {
				st.selected = idx
			}
			continue
		}
		st.input.SetValue(v)
	}
}

// Transform implements forms.Unit. It returns value unchanged unless every
// field passes its rule.
func (f *Form[T]) Transform(value T) T {
	if !f.Valid() {
		return value
	}
	for i, field := range f.fields {
		value = field.Set(value, f.current(i))
	}
	return value
}

// Clear implements forms.Unit.
func (f *Form[T]) Clear() {
	for i, field := range f.fields {
		st := &f.state[i]
		st.input.SetValue(field.Default)
		st.selected = 0
		if field.choice() {
			st.options = field.options()
			if idx := optionIndex(st.options, field.Default); idx >= 0 {
				st.selected = idx
			}
		}
	}
}

// ShowAndFocus implements forms.Unit.
func (f *Form[T]) ShowAndFocus(visible bool) {
	f.visible = visible
	if !visible {
		for i := range f.state {
			f.state[i].input.Blur()
		}
		return
	}
	f.setFocus(0)
}

// Visible reports whether the form is shown.
func (f *Form[T]) Visible() bool {
	return f.visible
}

// Focused returns the id of the focused field.
func (f *Form[T]) Focused() string {
	if len(f.fields) == 0 {
		return ""
	}
	return f.fields[f.focus].ID
}

// Value returns the current value of field id.
func (f *Form[T]) Value(id string) (string, error) {
	i, err := f.index(id)
	if err != nil {
		return "", err
	}
	return f.current(i), nil
}

// SetValue sets field id to value. Select and toggle values must be one of
// the field's options.
func (f *Form[T]) SetValue(id, value string) error {
	i, err := f.index(id)
	if err != nil {
		return err
	}
	field := f.fields[i]
	st := &f.state[i]
	if field.choice() {
		idx := optionIndex(st.options, value)
		if idx < 0 {
			return OptionError{Field: id, Value: value}
		}
		st.selected = idx
		return nil
	}
	st.input.SetValue(value)
	return nil
}

// Validate returns the first rule failure, or nil.
func (f *Form[T]) Validate() error {
	for i, field := range f.fields {
		if field.choice() && len(f.state[i].options) == 0 && strings.Contains(field.Rule, "required") {
			return RuleError{Field: field.ID, Rule: field.Rule, Err: fmt.Errorf("no options available")}
		}
		if field.Rule == "" {
			continue
		}
		if err := validate.Var(f.current(i), field.Rule); err != nil {
			return RuleError{Field: field.ID, Rule: field.Rule, Err: err}
		}
	}
	return nil
}

// Valid reports whether every field passes its rule.
func (f *Form[T]) Valid() bool {
	return f.Validate() == nil
}

// Update handles focus movement and edits of the focused field.
func (f *Form[T]) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(f.fields) == 0 {
		return nil
	}
	switch key.Type {
	case tea.KeyTab, tea.KeyDown:
		return f.setFocus((f.focus + 1) % len(f.fields))
	case tea.KeyShiftTab, tea.KeyUp:
		return f.setFocus((f.focus - 1 + len(f.fields)) % len(f.fields))
	}
	st := &f.state[f.focus]
	if f.fields[f.focus].choice() {
		n := len(st.options)
		if n == 0 {
			return nil
		}
		switch {
		case key.Type == tea.KeyRight || (key.Type == tea.KeyRunes && string(key.Runes) == "l"):
			st.selected = (st.selected + 1) % n
		case key.Type == tea.KeyLeft || (key.Type == tea.KeyRunes && string(key.Runes) == "h"):
			st.selected = (st.selected - 1 + n) % n
		case key.Type == tea.KeySpace:
			st.selected = (st.selected + 1) % n
		}
		return nil
	}
	var cmd tea.Cmd
	st.input, cmd = st.input.Update(msg)
	return cmd
}

// View renders the form.
func (f *Form[T]) View() string {
	var b strings.Builder
	if bar := RenderProgress(f.progress); bar != "" {
		b.WriteString(bar)
		b.WriteString("\n\n")
	}
	b.WriteString(titleStyle.Render(f.title))
	b.WriteString("\n")
	for i, field := range f.fields {
		focused := i == f.focus
		label := field.Label
		if strings.Contains(field.Rule, "required") {
			label += " *"
		}
		labelStyle := fieldLabelStyle
		if focused {
			labelStyle = focusedLabelStyle
		}
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(label))
		b.WriteString("\n")
		if field.choice() {
			b.WriteString(renderOptions(f.state[i], focused))
		} else {
			b.WriteString("> " + f.state[i].input.View())
		}
		if field.Description != "" {
			b.WriteString("\n")
			b.WriteString(hintStyle.Render(field.Description))
		}
		b.WriteString("\n")
	}
	if err := f.Validate(); err != nil {
		b.WriteString("\n")
		b.WriteString(hintStyle.Render(err.Error()))
	}
	return b.String()
}

func (f *Form[T]) setFocus(idx int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.focus = idx
	var cmd tea.Cmd
	for i := range f.state {
		if i == idx && !f.fields[i].choice() {
			cmd = f.state[i].input.Focus()
			continue
		}
		f.state[i].input.Blur()
	}
	return cmd
}

func (f *Form[T]) current(i int) string {
	st := f.state[i]
	if f.fields[i].choice() {
		if st.selected < 0 || st.selected >= len(st.options) {
			return ""
		}
		return st.options[st.selected].Value
	}
	return strings.TrimSpace(st.input.Value())
}

func (f *Form[T]) index(id string) (int, error) {
	for i, field := range f.fields {
		if field.ID == id {
			return i, nil
		}
	}
	return -1, UnknownFieldError{Form: f.id, Field: id}
}

func optionIndex(options []Option, value string) int {
	for i, opt := range options {
		if opt.Value == value {
			return i
		}
	}
	return -1
}

func renderOptions(st fieldState, focused bool) string {
	if len(st.options) == 0 {
		return hintStyle.Render("no options available")
	}
	parts := make([]string, 0, len(st.options))
	for i, opt := range st.options {
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		switch {
		case i == st.selected && focused:
			parts = append(parts, selectedOptionStyle.Render("["+label+"]"))
		case i == st.selected:
			parts = append(parts, "["+label+"]")
		default:
			parts = append(parts, optionStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}

var (
	titleStyle          = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FDE047"))
	fieldLabelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#CBD5F5"))
	focusedLabelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))
	hintStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	optionStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#475569"))
	selectedOptionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#34D399"))
	errorStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
)
