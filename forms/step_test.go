package forms

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStepActionsPanicBeforeRun(t *testing.T) {
	t.Parallel()

	step := NewStep[record]("name", nameUnit(nil))

	for handler, action := range map[string]func(){
		"next": step.Next,
		"back": step.Back,
		"quit": step.Quit,
	} {
		v := recoverPanic(action)
		require.NotNil(t, v, handler)
		var handlerErr *HandlerError
		require.ErrorAs(t, v.(error), &handlerErr)
		require.Equal(t, "name", handlerErr.Step)
		require.Equal(t, handler, handlerErr.Handler)
	}
}

func TestNewStepValidatesArguments(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { NewStep[record]("", nameUnit(nil)) })
	require.Panics(t, func() { NewStep[record]("name", nil) })
}

func TestStepRunFillsShowsAndForwardsTransform(t *testing.T) {
	t.Parallel()

	var events []string
	unit := nameUnit(&events)
	step := NewStep[record]("name", unit)

	var got []record
	var resumes []func()
	step.Run(nil)(record{Doc: "kept"}, func() { t.Fatal("unexpected back") }, func(v record, resume func()) {
		got = append(got, v)
		resumes = append(resumes, resume)
	})

	require.True(t, unit.visible)
	require.True(t, step.Visible())
	require.Equal(t, record{Doc: "kept"}, unit.lastFilled())
	require.Nil(t, unit.progress[0])

	unit.field = "Foo"
	step.Next()

	require.False(t, unit.visible)
	require.Equal(t, []record{{Name: "Foo", Doc: "kept"}}, got)
	require.Equal(t, []string{"show:name", "hide:name"}, events)

	resumes[0]()
	require.True(t, unit.visible)
	require.Equal(t, record{Name: "Foo", Doc: "kept"}, unit.lastFilled())
	require.Equal(t, "Foo", unit.field)

	step.Next()
	require.Equal(t, got[0], got[1])
}

func TestStepHandlersAreOneShot(t *testing.T) {
	t.Parallel()

	step := NewStep[record]("name", nameUnit(nil))
	backs := 0
	step.Run(nil)(record{}, func() { backs++ }, func(record, func()) {})

	step.Back()
	require.Equal(t, 1, backs)

	v := recoverPanic(step.Back)
	require.IsType(t, &HandlerError{}, v)
	v = recoverPanic(step.Next)
	require.IsType(t, &HandlerError{}, v)
}

func TestStepBackHidesBeforeCallingBack(t *testing.T) {
	t.Parallel()

	unit := nameUnit(nil)
	step := NewStep[record]("name", unit)

	var visibleAtBack bool
	step.Run(nil)(record{}, func() { visibleAtBack = unit.visible }, func(record, func()) {})
	step.Back()

	require.False(t, visibleAtBack)
}

func TestStepProgressIsPassedOnlyWithIndex(t *testing.T) {
	t.Parallel()

	unit := nameUnit(nil)
	step := NewStep[record]("name", unit)

	step.Run(&Progress{States: []string{"a", "b"}, Current: -1})(record{}, func() {}, func(record, func()) {})
	require.Nil(t, unit.progress[0])

	p := At(1, "a", "b")
	step.Run(&p)(record{}, func() {}, func(record, func()) {})
	require.NotNil(t, unit.progress[1])
	require.Equal(t, "b", unit.progress[1].Label())

	p.States[1] = "mutated"
	require.Equal(t, "b", unit.progress[1].Label())
}

func TestStepClearAndHide(t *testing.T) {
	t.Parallel()

	unit := nameUnit(nil)
	unit.field = "Foo"
	unit.visible = true
	step := NewStep[record]("name", unit)

	step.ClearAndHide()
	require.Empty(t, unit.field)
	require.False(t, unit.visible)
}

func TestProgressValid(t *testing.T) {
	t.Parallel()

	require.True(t, Progress{Current: -1}.Valid())
	require.True(t, At(0, "one").Valid())
	require.False(t, At(1, "one").Valid())
	require.False(t, Progress{Current: -2}.Valid())
	require.Equal(t, "", Progress{Current: -1}.Label())
}
