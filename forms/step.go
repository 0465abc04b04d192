package forms

import "sync"

// handlers holds the continuations installed by one display of a step.
type handlers struct {
	back func()
	next func()
}

// Step binds a Unit to an identity and implements the run/next/back/quit
// protocol on top of it. A Step is long-lived: it is reused across runs and
// backtracks, and only its per-display handlers change.
type Step[T any] struct {
	id   string
	unit Unit[T]

	mu      sync.Mutex
	current *handlers
	quit    func()
	sess    *session
	visible bool
}

// NewStep wraps unit. It panics when id is empty or unit is nil.
func NewStep[T any](id string, unit Unit[T]) *Step[T] {
	if id == "" {
		panic(ValidationError{Reason: "step id must not be empty"})
	}
	if unit == nil {
		panic(ValidationError{Reason: "step " + id + " requires a unit"})
	}
	return &Step[T]{id: id, unit: unit}
}

// ID returns the step identity.
func (s *Step[T]) ID() string {
	return s.id
}

// Unit returns the wrapped unit.
func (s *Step[T]) Unit() any {
	return s.unit
}

// Form returns the wrapped unit with its static type.
func (s *Step[T]) Form() Unit[T] {
	return s.unit
}

// Visible reports whether the step is currently shown.
func (s *Step[T]) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// ShowAndFocus shows or hides the wrapped unit.
func (s *Step[T]) ShowAndFocus(visible bool) {
	s.mu.Lock()
	s.visible = visible
	s.mu.Unlock()
	s.unit.ShowAndFocus(visible)
}

// ClearAndHide resets the unit and hides it.
func (s *Step[T]) ClearAndHide() {
	s.unit.Clear()
	s.ShowAndFocus(false)
}

// Run returns a trigger that displays this step. progress is passed to Fill
// on every display; nil means no step bar. The resume thunk handed forward
// redisplays the step with the value it produced, so an operator's edits
// survive a Back.
func (s *Step[T]) Run(progress *Progress) Trigger[T] {
	var p *Progress
	if progress != nil && progress.Current != -1 {
		cp := *progress
		cp.States = append([]string{}, progress.States...)
		p = &cp
	}
	var trigger Trigger[T]
	trigger = func(value T, back func(), forward func(T, func())) {
		s.unit.Fill(value, p)
		s.ShowAndFocus(true)
		s.install(&handlers{
			back: func() {
				s.ShowAndFocus(false)
				s.session().backed(s.id)
				back()
			},
			next: func() {
				s.ShowAndFocus(false)
				out := s.unit.Transform(value)
				s.session().advanced(s.id, out)
				forward(out, func() { trigger(out, back, forward) })
			},
		})
		s.session().shown(s.id, value, p)
	}
	return trigger
}

// Next advances to the following step with the transformed value.
func (s *Step[T]) Next() {
	h := s.take("next")
	h.next()
}

// Back returns to the previous step.
func (s *Step[T]) Back() {
	h := s.take("back")
	h.back()
}

// Quit abandons the whole chain this step is mounted by.
func (s *Step[T]) Quit() {
	s.mu.Lock()
	quit := s.quit
	s.mu.Unlock()
	if quit == nil {
		panic(&HandlerError{Step: s.id, Handler: "quit"})
	}
	quit()
}

func (s *Step[T]) install(h *handlers) {
	s.mu.Lock()
	s.current = h
	s.mu.Unlock()
}

// take consumes the handlers of the current display.
func (s *Step[T]) take(name string) *handlers {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.current
	if h == nil {
		panic(&HandlerError{Step: s.id, Handler: name})
	}
	s.current = nil
	return h
}

func (s *Step[T]) bindQuit(fn func()) {
	s.mu.Lock()
	s.quit = fn
	s.mu.Unlock()
}

// release drops the handlers of the last display.
func (s *Step[T]) release() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

func (s *Step[T]) bindSession(sess *session) {
	s.mu.Lock()
	s.sess = sess
	s.mu.Unlock()
}

func (s *Step[T]) session() *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess
}
