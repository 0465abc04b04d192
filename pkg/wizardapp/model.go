package wizardapp

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/BrianJOC/ndx-builder/forms"
)

// viewer is implemented by units that render themselves.
type viewer interface {
	View() string
}

// updater is implemented by units that handle their own keys.
type updater interface {
	Update(msg tea.Msg) tea.Cmd
}

type validity interface {
	Valid() bool
}

type checker interface {
	Validate() error
}

type settledMsg struct{}

// run tracks one chain run for the breadcrumb.
type run struct {
	id    string
	trail []string
}

type model[T any] struct {
	title    string
	launcher forms.Launcher[T]
	seed     T

	mounted []forms.Element
	pending []func()

	spinner spinner.Model
	runs    []run

	statusMsg   string
	helpVisible bool

	mu        sync.Mutex
	result    T
	done      bool
	abandoned bool

	width  int
	height int
}

var (
	_ forms.Host     = (*model[struct{}])(nil)
	_ forms.Observer = (*model[struct{}])(nil)
)

func newModel[T any](cfg Config[T]) *model[T] {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &model[T]{
		title:     cfg.Title,
		seed:      cfg.Seed,
		spinner:   sp,
		statusMsg: "Preparing wizard…",
	}
	opts := append([]forms.RunOption{forms.WithObserver(m)}, cfg.RunOptions...)
	m.launcher = cfg.Build(m, opts...)
	return m
}

// ---- forms.Host ----

func (m *model[T]) Mount(el forms.Element) {
	m.mounted = append(m.mounted, el)
}

func (m *model[T]) Unmount(el forms.Element) {
	for i, have := range m.mounted {
		if have == el {
			m.mounted = append(m.mounted[:i], m.mounted[i+1:]...)
			return
		}
	}
}

func (m *model[T]) AfterSettled(fn func()) {
	m.pending = append(m.pending, fn)
}

// ---- forms.Observer ----

func (m *model[T]) StepShown(info forms.RunInfo, frame forms.Frame) {
	trail := make([]string, 0, len(info.Trail))
	for _, f := range info.Trail {
		trail = append(trail, f.StepID)
	}
	for i := range m.runs {
		if m.runs[i].id == info.ID {
			m.runs[i].trail = trail
			return
		}
	}
	m.runs = append(m.runs, run{id: info.ID, trail: trail})
}

func (m *model[T]) StepAdvanced(forms.RunInfo, string, any) {}

func (m *model[T]) StepBacked(forms.RunInfo, string) {}

func (m *model[T]) ChainQuit(info forms.RunInfo) {
	m.dropRun(info.ID)
	if len(m.runs) > 0 {
		m.setStatus("Discarded changes")
	}
}

func (m *model[T]) ChainCompleted(info forms.RunInfo, _ any) {
	m.dropRun(info.ID)
	if len(m.runs) > 0 {
		m.setStatus("Saved")
	}
}

func (m *model[T]) dropRun(id string) {
	for i := range m.runs {
		if m.runs[i].id == id {
			m.runs = append(m.runs[:i], m.runs[i+1:]...)
			return
		}
	}
}

// ---- tea.Model ----

func (m *model[T]) Init() tea.Cmd {
	m.launcher(m.seed, func() {
		m.mu.Lock()
		m.abandoned = true
		m.mu.Unlock()
	}, func(v T) {
		m.mu.Lock()
		m.result = v
		m.done = true
		m.mu.Unlock()
	})
	return tea.Batch(settleCmd(), m.spinner.Tick)
}

func settleCmd() tea.Cmd {
	return func() tea.Msg {
		return settledMsg{}
	}
}

func (m *model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if m.finished() {
		return m, tea.Quit
	}
	if len(m.pending) > 0 {
		return m, tea.Batch(cmd, settleCmd())
	}
	return m, cmd
}

func (m *model[T]) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		prevWidth := m.width
		prevHeight := m.height
		m.width = msg.Width
		m.height = msg.Height
		if (prevWidth > 0 && msg.Width < prevWidth) || (prevHeight > 0 && msg.Height < prevHeight) {
			return tea.ClearScreen
		}
		return nil

	case settledMsg:
		pending := m.pending
		m.pending = nil
		for _, fn := range pending {
			fn()
		}
		if m.active() != nil {
			m.setStatus("")
		}
		return nil

	case spinner.TickMsg:
		if len(m.pending) == 0 && m.active() != nil {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil
}

func (m *model[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		m.mu.Lock()
		m.abandoned = true
		m.mu.Unlock()
		return nil
	}
	el := m.active()
	if el == nil || len(m.pending) > 0 {
		return nil
	}
	switch msg.Type {
	case tea.KeyCtrlX:
		el.Quit()
		return nil
	case tea.KeyEsc:
		el.Back()
		return nil
	case tea.KeyEnter, tea.KeyCtrlN:
		if err := stepError(el); err != nil {
			m.setStatus(err.Error())
			return nil
		}
		el.Next()
		return nil
	case tea.KeyF1:
		m.helpVisible = !m.helpVisible
		return nil
	}
	if u, ok := el.Unit().(updater); ok {
		return u.Update(msg)
	}
	return nil
}

func stepError(el forms.Element) error {
	unit := el.Unit()
	if c, ok := unit.(checker); ok {
		return c.Validate()
	}
	if v, ok := unit.(validity); ok && !v.Valid() {
		return fmt.Errorf("%s is not complete yet", el.ID())
	}
	return nil
}

// active returns the visible step mounted last, so nested wizards shadow
// their parents.
func (m *model[T]) active() forms.Element {
	for i := len(m.mounted) - 1; i >= 0; i-- {
		if m.mounted[i].Visible() {
			return m.mounted[i]
		}
	}
	return nil
}

func (m *model[T]) finished() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done || m.abandoned
}

func (m *model[T]) outcome() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.result, m.done
}

func (m *model[T]) setStatus(msg string) {
	m.statusMsg = msg
}

// ---- View ----

var titleCase = cases.Title(language.English)

func (m *model[T]) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render(m.title), "  ", subtitleStyle.Render(m.breadcrumb()))

	var body string
	if el := m.active(); el != nil && len(m.pending) == 0 {
		if v, ok := el.Unit().(viewer); ok {
			body = v.View()
		} else {
			body = titleCase.String(el.ID())
		}
	} else {
		body = m.spinner.View() + " Loading…"
	}
	panel := styleForWidth(panelStyle, m.viewportWidth()).Render(body)

	sections := []string{header, panel}
	if m.statusMsg != "" {
		sections = append(sections, statusBarStyle.Render(m.statusMsg))
	}
	if m.helpVisible {
		sections = append(sections, renderHelp())
	} else {
		sections = append(sections, footerStyle.Render("Enter next • Esc back • Ctrl+X quit wizard • Tab move • F1 help • Ctrl+C exit"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// breadcrumb renders the trail of every open run, outermost first.
func (m *model[T]) breadcrumb() string {
	parts := make([]string, 0, len(m.runs))
	for _, r := range m.runs {
		if len(r.trail) == 0 {
			continue
		}
		labels := make([]string, 0, len(r.trail))
		for _, id := range r.trail {
			labels = append(labels, titleCase.String(strings.ReplaceAll(id, "-", " ")))
		}
		parts = append(parts, strings.Join(labels, " › "))
	}
	return strings.Join(parts, "  ⟩  ")
}

func renderHelp() string {
	help := []string{
		"Key Bindings:",
		"  Enter / Ctrl+N  Continue to the next step",
		"  Esc             Go back one step",
		"  Ctrl+X          Quit the current wizard",
		"  Tab / Shift+Tab Move between fields",
		"  ←/→             Change a selection",
		"  a / e / d       Add, edit or delete list items",
		"  c               Copy the generated script",
		"  Ctrl+C          Exit without saving",
	}
	return helpStyle.Render(strings.Join(help, "\n"))
}

func (m *model[T]) viewportWidth() int {
	if m.width > 0 {
		if m.width < 40 {
			return 40
		}
		return m.width
	}
	return 100
}

func styleForWidth(base lipgloss.Style, totalWidth int) lipgloss.Style {
	style := base.Copy()
	if totalWidth <= 0 {
		return style.Width(0)
	}
	frameWidth, _ := base.GetFrameSize()
	contentWidth := totalWidth - frameWidth
	if contentWidth < 0 {
		contentWidth = 0
	}
	return style.Width(contentWidth)
}

// ---- Styling helpers ----

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E0AAFF"))
	subtitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#4C566A")).Padding(0, 1).MarginTop(1)
	statusBarStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(lipgloss.Color("#312E81")).Foreground(lipgloss.Color("#E0E7FF"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")).Padding(0, 1).MarginTop(1)
	helpStyle      = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#7C3AED")).Padding(1, 2).MarginTop(1)
)
