package fieldform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BrianJOC/ndx-builder/forms"
)

// ListConfig configures a List.
type ListConfig[T, E any] struct {
	ID    string
	Title string
	// Get and Set bind the list to the part of T it owns.
	Get func(T) []E
	Set func(T, []E) T
	// Key identifies an item. Two items may not share a key.
	Key func(E) string
	// Label renders one item line. Key is used when nil.
	Label func(E) string
	// Seed returns the value a new item editor starts from.
	Seed func() E
	// Editor runs a nested wizard over one item.
	Editor forms.Launcher[E]
	// Guard may veto removing items[i].
	Guard func(items []E, i int) error
	// Min is the number of items required before the list is valid.
	Min int
}

// List is a forms.Unit that collects items of type E, each built by a nested
// wizard launched from the list.
type List[T, E any] struct {
	cfg      ListConfig[T, E]
	items    []E
	selected int
	visible  bool
	busy     bool
	err      error
	progress *forms.Progress
}

var _ forms.Unit[struct{}] = (*List[struct{}, int])(nil)

// NewList builds a list. It panics when a binding is missing.
func NewList[T, E any](cfg ListConfig[T, E]) *List[T, E] {
	if cfg.ID == "" || cfg.Get == nil || cfg.Set == nil || cfg.Key == nil || cfg.Seed == nil || cfg.Editor == nil {
		panic(fmt.Sprintf("fieldform: list %q requires id, get, set, key, seed and editor", cfg.ID))
	}
	if cfg.Label == nil {
		cfg.Label = cfg.Key
	}
	return &List[T, E]{cfg: cfg}
}

// Step wraps the list in a forms.Step using the list id.
func (l *List[T, E]) Step() *forms.Step[T] {
	return forms.NewStep[T](l.cfg.ID, l)
}

// ID returns the list id.
func (l *List[T, E]) ID() string {
	return l.cfg.ID
}

// Title returns the list heading.
func (l *List[T, E]) Title() string {
	return l.cfg.Title
}

// Items returns a copy of the collected items.
func (l *List[T, E]) Items() []E {
	return append([]E(nil), l.items...)
}

// Fill implements forms.Unit. An empty list in value keeps the current items.
func (l *List[T, E]) Fill(value T, progress *forms.Progress) {
	l.progress = progress
	if items := l.cfg.Get(value); len(items) > 0 {
		l.items = append([]E(nil), items...)
		l.clampSelection()
	}
}

// Transform implements forms.Unit.
func (l *List[T, E]) Transform(value T) T {
	if !l.Valid() {
		return value
	}
	return l.cfg.Set(value, l.Items())
}

// Clear implements forms.Unit.
func (l *List[T, E]) Clear() {
	l.items = nil
	l.selected = 0
	l.busy = false
}

// ShowAndFocus implements forms.Unit.
func (l *List[T, E]) ShowAndFocus(visible bool) {
	l.visible = visible
}

// Visible reports whether the list is shown.
func (l *List[T, E]) Visible() bool {
	return l.visible
}

// Valid reports whether enough items were collected and no editor is open.
func (l *List[T, E]) Valid() bool {
	return !l.busy && len(l.items) >= l.cfg.Min
}

// Busy reports whether an item editor is open.
func (l *List[T, E]) Busy() bool {
	return l.busy
}

// Err returns why the last completed edit was rejected, or nil.
func (l *List[T, E]) Err() error {
	return l.err
}

// Add opens the editor on a new item. The item is kept when the editor
// completes and dropped when it is abandoned or its key is taken.
func (l *List[T, E]) Add() error {
	return l.edit(l.cfg.Seed(), -1)
}

// Edit opens the editor on item i. A completed edit replaces it unless the
// new key belongs to another item.
func (l *List[T, E]) Edit(i int) error {
	if i < 0 || i >= len(l.items) {
		return IndexError{List: l.cfg.ID, Index: i}
	}
	return l.edit(l.items[i], i)
}

// Remove deletes item i unless the guard refuses.
func (l *List[T, E]) Remove(i int) error {
	if l.busy {
		return BusyError{List: l.cfg.ID}
	}
	if i < 0 || i >= len(l.items) {
		return IndexError{List: l.cfg.ID, Index: i}
	}
	if l.cfg.Guard != nil {
		if err := l.cfg.Guard(l.Items(), i); err != nil {
			return err
		}
	}
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	l.err = nil
	l.clampSelection()
	return nil
}

func (l *List[T, E]) edit(seed E, index int) error {
	if l.busy {
		return BusyError{List: l.cfg.ID}
	}
	l.busy = true
	l.err = nil
	l.cfg.Editor(seed, func() {
		l.busy = false
	}, func(item E) {
		l.busy = false
		l.err = l.upsert(item, index)
	})
	return nil
}

func (l *List[T, E]) upsert(item E, index int) error {
	key := l.cfg.Key(item)
	for i, other := range l.items {
		if i != index && l.cfg.Key(other) == key {
			return DuplicateError{List: l.cfg.ID, Key: key}
		}
	}
	items := l.Items()
	if index >= 0 && index < len(items) {
		items[index] = item
	} else {
		items = append(items, item)
		index = len(items) - 1
	}
	l.items = items
	l.selected = index
	return nil
}

func (l *List[T, E]) clampSelection() {
	if l.selected >= len(l.items) {
		l.selected = len(l.items) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Update handles list keys: a adds, e edits, d deletes, arrows move.
func (l *List[T, E]) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || l.busy {
		return nil
	}
	switch key.String() {
	case "a":
		_ = l.Add()
	case "e":
		_ = l.Edit(l.selected)
	case "d", "delete":
		_ = l.Remove(l.selected)
	case "up", "k":
		if l.selected > 0 {
			l.selected--
		}
	case "down", "j":
		if l.selected < len(l.items)-1 {
			l.selected++
		}
	}
	return nil
}

// View renders the list.
func (l *List[T, E]) View() string {
	var b strings.Builder
	if bar := RenderProgress(l.progress); bar != "" {
		b.WriteString(bar)
		b.WriteString("\n\n")
	}
	b.WriteString(titleStyle.Render(l.cfg.Title))
	b.WriteString("\n\n")
	if len(l.items) == 0 {
		b.WriteString(hintStyle.Render("nothing added yet"))
		b.WriteString("\n")
	}
	for i, item := range l.items {
		line := "  " + l.cfg.Label(item)
		if i == l.selected {
			line = selectedOptionStyle.Render("› " + l.cfg.Label(item))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if l.err != nil {
		b.WriteString(errorStyle.Render(l.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("a add • e edit • d delete"))
	if l.cfg.Min > 0 && len(l.items) < l.cfg.Min {
		b.WriteString("\n")
		b.WriteString(hintStyle.Render(fmt.Sprintf("add at least %d to continue", l.cfg.Min)))
	}
	return b.String()
}
