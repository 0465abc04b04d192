package fieldform

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/BrianJOC/ndx-builder/forms"
	"github.com/BrianJOC/ndx-builder/forms/memhost"
)

type roster struct {
	Title   string
	Members []person
}

// pendingEditor records launches so tests can finish them by hand.
type pendingEditor struct {
	seeds    []person
	abandon  func()
	complete func(person)
}

func (p *pendingEditor) launch(v person, onAbandon func(), onComplete func(person)) {
	p.seeds = append(p.seeds, v)
	p.abandon = onAbandon
	p.complete = onComplete
}

func rosterList(editor forms.Launcher[person], guard func([]person, int) error) *List[roster, person] {
	return NewList(ListConfig[roster, person]{
		ID:     "members",
		Title:  "Members",
		Get:    func(r roster) []person { return r.Members },
		Set:    func(r roster, m []person) roster { r.Members = m; return r },
		Key:    func(p person) string { return p.Name },
		Seed:   func() person { return person{Kind: "group"} },
		Editor: editor,
		Guard:  guard,
		Min:    1,
	})
}

func TestListAddKeepsCompletedItems(t *testing.T) {
	t.Parallel()

	editor := &pendingEditor{}
	list := rosterList(editor.launch, nil)
	require.False(t, list.Valid())

	require.NoError(t, list.Add())
	require.True(t, list.Busy())
	require.Equal(t, []person{{Kind: "group"}}, editor.seeds)
	var busy BusyError
	require.ErrorAs(t, list.Add(), &busy)

	editor.complete(person{Name: "Ada", Kind: "group"})
	require.False(t, list.Busy())
	require.True(t, list.Valid())

	require.NoError(t, list.Add())
	editor.abandon()
	require.Len(t, list.Items(), 1)

	require.Equal(t, roster{Title: "t", Members: []person{{Name: "Ada", Kind: "group"}}}, list.Transform(roster{Title: "t"}))
}

func TestListEditReplacesItem(t *testing.T) {
	t.Parallel()

	editor := &pendingEditor{}
	list := rosterList(editor.launch, nil)
	list.Fill(roster{Members: []person{{Name: "Ada"}, {Name: "Bo"}}}, nil)

	require.NoError(t, list.Edit(1))
	require.Equal(t, person{Name: "Bo"}, editor.seeds[0])
	editor.complete(person{Name: "Bo", Doc: "edited"})
	require.Equal(t, []person{{Name: "Ada"}, {Name: "Bo", Doc: "edited"}}, list.Items())

	var idx IndexError
	require.ErrorAs(t, list.Edit(5), &idx)
}

func TestListRejectsDuplicateKeys(t *testing.T) {
	t.Parallel()

	editor := &pendingEditor{}
	list := rosterList(editor.launch, nil)
	list.Fill(roster{Members: []person{{Name: "Ada", Doc: "first"}, {Name: "Bo"}}}, nil)

	require.NoError(t, list.Add())
	editor.complete(person{Name: "Ada", Doc: "second"})
	var dup DuplicateError
	require.ErrorAs(t, list.Err(), &dup)
	require.Equal(t, "Ada", dup.Key)
	require.Equal(t, []person{{Name: "Ada", Doc: "first"}, {Name: "Bo"}}, list.Items())
	require.True(t, strings.Contains(list.View(), `already has an item named "Ada"`))

	require.NoError(t, list.Edit(1))
	require.NoError(t, list.Err())
	editor.complete(person{Name: "Ada"})
	require.ErrorAs(t, list.Err(), &dup)
	require.Equal(t, []person{{Name: "Ada", Doc: "first"}, {Name: "Bo"}}, list.Items())

	require.NoError(t, list.Edit(0))
	editor.complete(person{Name: "Ada", Doc: "kept name"})
	require.NoError(t, list.Err())
	require.Equal(t, []person{{Name: "Ada", Doc: "kept name"}, {Name: "Bo"}}, list.Items())
}

func TestListRemoveHonoursGuard(t *testing.T) {
	t.Parallel()

	refused := errors.New("still referenced")
	list := rosterList((&pendingEditor{}).launch, func(items []person, i int) error {
		if items[i].Name == "Ada" {
			return refused
		}
		return nil
	})
	list.Fill(roster{Members: []person{{Name: "Ada"}, {Name: "Bo"}}}, nil)

	require.ErrorIs(t, list.Remove(0), refused)
	require.NoError(t, list.Remove(1))
	require.Equal(t, []person{{Name: "Ada"}}, list.Items())
	var idx IndexError
	require.ErrorAs(t, list.Remove(3), &idx)
}

func TestListFillKeepsItemsForEmptyValue(t *testing.T) {
	t.Parallel()

	list := rosterList((&pendingEditor{}).launch, nil)
	list.Fill(roster{Members: []person{{Name: "Ada"}}}, nil)
	list.Fill(roster{}, nil)
	require.Len(t, list.Items(), 1)

	list.Clear()
	require.Empty(t, list.Items())
	require.Equal(t, roster{Title: "x"}, list.Transform(roster{Title: "x"}))
}

func TestListKeysAndView(t *testing.T) {
	t.Parallel()

	editor := &pendingEditor{}
	list := rosterList(editor.launch, nil)
	require.True(t, strings.Contains(list.View(), "add at least 1"))

	list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	require.True(t, list.Busy())
	editor.complete(person{Name: "Ada"})
	list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	editor.complete(person{Name: "Bo"})

	list.Update(tea.KeyMsg{Type: tea.KeyUp})
	list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	require.Equal(t, []person{{Name: "Bo"}}, list.Items())
	require.True(t, strings.Contains(list.View(), "Bo"))
}

func TestListRunsNestedChain(t *testing.T) {
	t.Parallel()

	host := memhost.New()
	name := nameForm()
	editor := forms.From(name.Step()).WithParent(host)
	list := rosterList(editor, nil)
	listStep := list.Step()

	var out []roster
	forms.From(listStep).WithParent(host)(roster{}, func() {}, func(r roster) { out = append(out, r) })
	require.Equal(t, "members", host.Active().ID())

	require.NoError(t, list.Add())
	require.Equal(t, "name", host.Active().ID())
	require.NoError(t, name.SetValue("name", "Ada"))
	host.Active().Next()

	require.Equal(t, "members", host.Active().ID())
	require.Equal(t, []string{"members"}, host.Mounted())
	listStep.Next()
	require.Equal(t, []roster{{Members: []person{{Name: "Ada", Kind: "group"}}}}, out)
}
