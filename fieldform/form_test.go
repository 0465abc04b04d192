package fieldform

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/BrianJOC/ndx-builder/forms"
	"github.com/BrianJOC/ndx-builder/forms/memhost"
)

type person struct {
	Name   string
	Doc    string
	Kind   string
	Active bool
}

func nameForm() *Form[person] {
	return New("name", "Name",
		Text("name", "Name",
			func(p person) string { return p.Name },
			func(p person, v string) person { p.Name = v; return p },
			Required[person](), WithRule[person]("alphanum")),
		Text("doc", "Description",
			func(p person) string { return p.Doc },
			func(p person, v string) person { p.Doc = v; return p }),
	)
}

func kindForm() *Form[person] {
	return New("kind", "Kind",
		Select("kind", "Kind", []Option{{Value: "group", Label: "Group"}, {Value: "dataset", Label: "Dataset"}},
			func(p person) string { return p.Kind },
			func(p person, v string) person { p.Kind = v; return p }),
		Toggle("active", "Active",
			func(p person) bool { return p.Active },
			func(p person, v bool) person { p.Active = v; return p }),
	)
}

func TestTransformIsIdempotent(t *testing.T) {
	t.Parallel()

	form := nameForm()
	require.NoError(t, form.SetValue("name", "Electrode"))
	require.NoError(t, form.SetValue("doc", "a electrode"))

	v := person{Kind: "group"}
	once := form.Transform(v)
	require.Equal(t, person{Name: "Electrode", Doc: "a electrode", Kind: "group"}, once)
	require.Equal(t, once, form.Transform(once))
}

func TestTransformsCommute(t *testing.T) {
	t.Parallel()

	a, b := nameForm(), kindForm()
	require.NoError(t, a.SetValue("name", "Electrode"))
	require.NoError(t, b.SetValue("kind", "dataset"))
	require.NoError(t, b.SetValue("active", "true"))

	v := person{Doc: "seed"}
	require.Equal(t, a.Transform(b.Transform(v)), b.Transform(a.Transform(v)))
}

func TestTransformReturnsInputWhenInvalid(t *testing.T) {
	t.Parallel()

	form := nameForm()
	v := person{Doc: "kept"}
	require.Equal(t, v, form.Transform(v))

	require.NoError(t, form.SetValue("name", "not valid!"))
	require.False(t, form.Valid())
	require.Equal(t, v, form.Transform(v))

	var ruleErr RuleError
	require.ErrorAs(t, form.Validate(), &ruleErr)
	require.Equal(t, "name", ruleErr.Field)
}

func TestFillKeepsInputsForEmptyValues(t *testing.T) {
	t.Parallel()

	form := nameForm()
	require.NoError(t, form.SetValue("name", "Typed"))
	form.Fill(person{Doc: "from value"}, nil)

	name, err := form.Value("name")
	require.NoError(t, err)
	require.Equal(t, "Typed", name)
	doc, err := form.Value("doc")
	require.NoError(t, err)
	require.Equal(t, "from value", doc)
	require.Nil(t, form.Progress())
}

func TestClearRestoresDefaults(t *testing.T) {
	t.Parallel()

	form := New("ns", "Namespace",
		Text("version", "Version",
			func(p person) string { return p.Doc },
			func(p person, v string) person { p.Doc = v; return p },
			WithDefault[person]("0.1.0")),
	)
	require.NoError(t, form.SetValue("version", "2.0.0"))
	form.Clear()
	v, err := form.Value("version")
	require.NoError(t, err)
	require.Equal(t, "0.1.0", v)
}

func TestSetValueErrors(t *testing.T) {
	t.Parallel()

	form := kindForm()
	var unknown UnknownFieldError
	require.ErrorAs(t, form.SetValue("missing", "x"), &unknown)
	var optErr OptionError
	require.ErrorAs(t, form.SetValue("kind", "link"), &optErr)
	require.Equal(t, "link", optErr.Value)
}

func TestDynamicSelectRefreshesOnFill(t *testing.T) {
	t.Parallel()

	options := []Option{{Value: "A"}}
	form := New("inc", "Base type",
		DynamicSelect("inc", "Base type", func() []Option { return options },
			func(p person) string { return p.Kind },
			func(p person, v string) person { p.Kind = v; return p },
			Required[person]()),
	)
	require.Error(t, form.SetValue("inc", "B"))

	options = append(options, Option{Value: "B"})
	form.Fill(person{}, nil)
	require.NoError(t, form.SetValue("inc", "B"))
	require.Equal(t, person{Kind: "B"}, form.Transform(person{}))

	options = nil
	form.Fill(person{}, nil)
	require.False(t, form.Valid())
}

func TestShowAndFocusAndKeys(t *testing.T) {
	t.Parallel()

	form := nameForm()
	form.ShowAndFocus(true)
	require.True(t, form.Visible())
	require.Equal(t, "name", form.Focused())

	form.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Ab")})
	v, _ := form.Value("name")
	require.Equal(t, "Ab", v)

	form.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, "doc", form.Focused())
	form.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, "name", form.Focused())

	kinds := kindForm()
	kinds.ShowAndFocus(true)
	kinds.Update(tea.KeyMsg{Type: tea.KeyRight})
	v, _ = kinds.Value("kind")
	require.Equal(t, "dataset", v)

	form.ShowAndFocus(false)
	require.False(t, form.Visible())
}

func TestViewRendersProgressAndFields(t *testing.T) {
	t.Parallel()

	form := nameForm()
	p := forms.At(1, "kind", "name", "base type")
	form.Fill(person{}, &p)
	view := form.View()
	require.True(t, strings.Contains(view, "Name *"))
	require.True(t, strings.Contains(view, "Base Type"))
	require.Empty(t, RenderProgress(nil))
}

func TestFormRunsInsideChain(t *testing.T) {
	t.Parallel()

	name, kind := nameForm(), kindForm()
	nameStep, kindStep := name.Step(), kind.Step()
	host := memhost.New()

	var out []person
	forms.From(kindStep).Then(nameStep).WithParent(host)(person{}, func() {}, func(p person) { out = append(out, p) })

	require.Equal(t, "kind", host.Active().ID())
	require.NoError(t, kind.SetValue("kind", "dataset"))
	kindStep.Next()

	require.Equal(t, "name", host.Active().ID())
	require.NoError(t, name.SetValue("name", "Trace"))
	nameStep.Back()

	v, _ := kind.Value("kind")
	require.Equal(t, "dataset", v)
	kindStep.Next()
	nameStep.Next()

	require.Equal(t, []person{{Kind: "dataset", Name: "Trace"}}, out)
}

func TestNewRejectsBadFields(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		New[person]("bad", "Bad", Field[person]{ID: "x"})
	})
	get := func(p person) string { return p.Name }
	set := func(p person, v string) person { p.Name = v; return p }
	require.Panics(t, func() {
		New("dup", "Dup", Text("x", "X", get, set), Text("x", "X", get, set))
	})
}
