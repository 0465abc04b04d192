package memhost

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BrianJOC/ndx-builder/forms"
)

type note struct {
	Text string
}

type noteUnit struct {
	text string
}

func (u *noteUnit) Fill(v note, _ *forms.Progress) { u.text = v.Text }
func (u *noteUnit) Transform(v note) note        { v.Text = u.text; return v }
func (u *noteUnit) Clear()                       { u.text = "" }
func (u *noteUnit) ShowAndFocus(bool)            {}

func TestHostCountsMountsAndTracksActive(t *testing.T) {
	t.Parallel()

	host := New()
	outer := forms.NewStep[note]("outer", &noteUnit{})
	inner := forms.NewStep[note]("inner", &noteUnit{})

	var done []note
	forms.From(outer).WithParent(host)(note{Text: "a"}, func() {}, func(n note) { done = append(done, n) })
	require.Equal(t, []string{"outer"}, host.Mounted())
	require.Equal(t, "outer", host.Active().ID())

	forms.From(inner).WithParent(host)(note{}, func() {}, func(note) {})
	require.Equal(t, "inner", host.Active().ID())

	inner.Quit()
	require.Equal(t, "outer", host.Active().ID())
	require.Equal(t, 1, host.Unmounts("inner"))

	el, ok := host.Element("outer")
	require.True(t, ok)
	el.Next()
	require.Equal(t, []note{{Text: "a"}}, done)
	require.Nil(t, host.Active())
	require.Equal(t, 1, host.Mounts("outer"))
	require.Empty(t, host.Mounted())
}

func TestDeferredHostWaitsForSettle(t *testing.T) {
	t.Parallel()

	host := Deferred()
	step := forms.NewStep[note]("only", &noteUnit{})
	forms.From(step).WithParent(host)(note{}, func() {}, func(note) {})

	require.False(t, step.Visible())
	require.Nil(t, host.Active())

	host.Settle()
	require.True(t, step.Visible())
}

func TestHostRejectsDoubleMountAndStrayUnmount(t *testing.T) {
	t.Parallel()

	host := New()
	step := forms.NewStep[note]("only", &noteUnit{})
	host.Mount(step)
	require.Panics(t, func() { host.Mount(step) })

	host.Unmount(step)
	require.Panics(t, func() { host.Unmount(step) })
}
