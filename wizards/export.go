package wizards

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/BrianJOC/ndx-builder/codegen"
	"github.com/BrianJOC/ndx-builder/fieldform"
	"github.com/BrianJOC/ndx-builder/forms"
	"github.com/BrianJOC/ndx-builder/schema"
)

var (
	exportTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FDE047"))
	exportHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	exportErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
	exportCodeStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#334155")).Padding(0, 1)
)

const previewLines = 12

// Export is the last namespace step: it renders the generator script for the
// finished namespace and can copy it to the clipboard.
type Export struct {
	copyFn   func(string) error
	ns       schema.Namespace
	script   string
	err      error
	status   string
	visible  bool
	progress *forms.Progress
}

var _ forms.Unit[schema.Namespace] = (*Export)(nil)

func newExport(copyFn func(string) error) *Export {
	return &Export{copyFn: copyFn}
}

// Step wraps the export unit.
func (e *Export) Step() *forms.Step[schema.Namespace] {
	return forms.NewStep[schema.Namespace]("export", e)
}

// Fill implements forms.Unit.
func (e *Export) Fill(ns schema.Namespace, progress *forms.Progress) {
	e.progress = progress
	e.ns = ns.Clone()
	e.script, e.err = codegen.Script(ns)
	e.status = ""
}

// Transform implements forms.Unit.
func (e *Export) Transform(ns schema.Namespace) schema.Namespace {
	return ns
}

// Clear implements forms.Unit.
func (e *Export) Clear() {
	e.ns = schema.Namespace{}
	e.script = ""
	e.err = nil
	e.status = ""
}

// ShowAndFocus implements forms.Unit.
func (e *Export) ShowAndFocus(visible bool) {
	e.visible = visible
}

// Script returns the rendered generator script.
func (e *Export) Script() string {
	return e.script
}

// Valid reports whether the script rendered.
func (e *Export) Valid() bool {
	return e.err == nil && e.script != ""
}

// Copy writes the script to the clipboard.
func (e *Export) Copy() error {
	if !e.Valid() {
		return fmt.Errorf("export: nothing to copy")
	}
	if err := e.copyFn(e.script); err != nil {
		e.status = "clipboard unavailable: " + err.Error()
		return fmt.Errorf("copy script: %w", err)
	}
	e.status = "Script copied to clipboard"
	return nil
}

// Update copies the script on c.
func (e *Export) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "c" {
		_ = e.Copy()
	}
	return nil
}

// View renders a summary and the head of the script.
func (e *Export) View() string {
	var b strings.Builder
	if bar := fieldform.RenderProgress(e.progress); bar != "" {
		b.WriteString(bar)
		b.WriteString("\n\n")
	}
	b.WriteString(exportTitleStyle.Render("Export " + e.ns.Name))
	b.WriteString("\n")
	if e.err != nil {
		b.WriteString(exportErrStyle.Render(e.err.Error()))
		return b.String()
	}
	b.WriteString(exportHintStyle.Render(fmt.Sprintf("%d types, version %s", len(e.ns.Types), e.ns.Version)))
	b.WriteString("\n")
	lines := strings.Split(e.script, "\n")
	if len(lines) > previewLines {
		lines = append(lines[:previewLines], "…")
	}
	b.WriteString(exportCodeStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")
	hint := "c copy • enter finish"
	if e.status != "" {
		hint = e.status
	}
	b.WriteString(exportHintStyle.Render(hint))
	return b.String()
}
