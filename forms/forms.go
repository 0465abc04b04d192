// Package forms composes independent form units into backtrackable wizard
// pipelines. A Step wraps a Unit and speaks the Trigger protocol; operators
// combine triggers; a Chain accumulates both the composed trigger and the set
// of steps it owns so that WithParent can mount, drive and unmount them
// against a Host.
package forms

// Unit is a single interactive wizard step over values of type T.
//
// Transform must be idempotent and must commute with the Transform of every
// other unit in the same chain: f(f(x)) == f(x) and f(g(x)) == g(f(x)).
type Unit[T any] interface {
	// Fill populates the unit's fields from value. Fields value has no data
	// for keep their defaults. progress is nil when no step bar is shown.
	Fill(value T, progress *Progress)
	// Transform returns value updated from the unit's fields, or value
	// unchanged when the fields are invalid.
	Transform(value T) T
	// Clear resets every field to its default.
	Clear()
	// ShowAndFocus shows or hides the unit, focusing its first field when shown.
	ShowAndFocus(visible bool)
}

// Progress describes the step indicator shown above a unit.
type Progress struct {
	States  []string
	Current int
}

// At builds a Progress pointing at index within states.
func At(index int, states ...string) Progress {
	return Progress{States: append([]string{}, states...), Current: index}
}

// Valid reports whether Current is -1 or a valid index into States.
func (p Progress) Valid() bool {
	return p.Current == -1 || (p.Current >= 0 && p.Current < len(p.States))
}

// Label returns the current state label, or "" when no step is selected.
func (p Progress) Label() string {
	if p.Current < 0 || p.Current >= len(p.States) {
		return ""
	}
	return p.States[p.Current]
}

// Element is the type-erased view of a Step that hosts mount and drive.
type Element interface {
	ID() string
	Unit() any
	Visible() bool
	ShowAndFocus(visible bool)
	ClearAndHide()
	Next()
	Back()
	Quit()

	bindQuit(fn func())
	bindSession(s *session)
	release()
}

// Host is the display tree a chain mounts its steps into.
type Host interface {
	Mount(el Element)
	Unmount(el Element)
	// AfterSettled calls fn once every mounted element finished its pending
	// initial render work.
	AfterSettled(fn func())
}
