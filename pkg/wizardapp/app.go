// Package wizardapp hosts a forms wizard in a Bubble Tea program. The model
// is the forms.Host the wizard mounts into: it shows the visible step, routes
// keys to it and drains AfterSettled callbacks once a frame has rendered.
package wizardapp

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BrianJOC/ndx-builder/forms"
)

var (
	// ErrNoWizard indicates no wizard was supplied when constructing an App.
	ErrNoWizard = errors.New("wizardapp: a wizard must be registered")
	// ErrProgramRunning reports that Start was invoked while the program is already running.
	ErrProgramRunning = errors.New("wizardapp: program already running")
	// ErrAbandoned reports that the operator left the wizard without finishing it.
	ErrAbandoned = errors.New("wizardapp: wizard abandoned")
)

// BuildFunc assembles a wizard on host. The launcher must pass opts to every
// chain it runs so the app can follow nested runs.
type BuildFunc[T any] func(host forms.Host, opts ...forms.RunOption) forms.Launcher[T]

// Config controls how an App should be assembled.
type Config[T any] struct {
	Title          string
	Build          BuildFunc[T]
	Seed           T
	RunOptions     []forms.RunOption
	ProgramOptions []tea.ProgramOption
}

// Option mutates Config during construction.
type Option[T any] func(*Config[T])

// WithWizard sets the wizard to run and the value it starts from.
func WithWizard[T any](build BuildFunc[T], seed T) Option[T] {
	return func(cfg *Config[T]) {
		if cfg == nil {
			return
		}
		cfg.Build = build
		cfg.Seed = seed
	}
}

// WithTitle sets the header title.
func WithTitle[T any](title string) Option[T] {
	return func(cfg *Config[T]) {
		if cfg == nil {
			return
		}
		cfg.Title = title
	}
}

// WithRunOptions appends options for every chain run, e.g. loggers.
func WithRunOptions[T any](opts ...forms.RunOption) Option[T] {
	return func(cfg *Config[T]) {
		if cfg == nil {
			return
		}
		cfg.RunOptions = append(cfg.RunOptions, opts...)
	}
}

// WithProgramOptions appends tea.Program options.
func WithProgramOptions[T any](opts ...tea.ProgramOption) Option[T] {
	return func(cfg *Config[T]) {
		if cfg == nil {
			return
		}
		cfg.ProgramOptions = append(cfg.ProgramOptions, opts...)
	}
}

// App hosts a wizard in a Bubble Tea program.
type App[T any] struct {
	cfg      Config[T]
	mu       sync.Mutex
	program  *tea.Program
	inFlight bool
}

// New constructs an App from the provided options.
func New[T any](opts ...Option[T]) (*App[T], error) {
	cfg := Config[T]{Title: "NWB Extension Builder"}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.Build == nil {
		return nil, ErrNoWizard
	}
	return &App[T]{cfg: cfg}, nil
}

// Start runs the wizard until it completes, is abandoned or ctx is done. It
// returns the completed value, or ErrAbandoned.
func (a *App[T]) Start(ctx context.Context) (T, error) {
	var zero T
	if ctx == nil {
		ctx = context.Background()
	}
	m := newModel(a.cfg)
	programOpts := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.cfg.ProgramOptions...)
	program := tea.NewProgram(m, programOpts...)

	a.mu.Lock()
	if a.inFlight {
		a.mu.Unlock()
		return zero, ErrProgramRunning
	}
	a.program = program
	a.inFlight = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.program = nil
		a.inFlight = false
		a.mu.Unlock()
	}()

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return zero, ctx.Err()
		}
		return zero, err
	}
	value, done := m.outcome()
	if !done {
		return zero, ErrAbandoned
	}
	return value, nil
}

// Stop signals the running program (if any) to exit.
func (a *App[T]) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.program == nil {
		return nil
	}
	a.program.Quit()
	return nil
}

// Send delivers msg to the running program, if any.
func (a *App[T]) Send(msg tea.Msg) {
	a.mu.Lock()
	program := a.program
	a.mu.Unlock()
	if program != nil {
		program.Send(msg)
	}
}
