package forms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentityForwardsInput(t *testing.T) {
	t.Parallel()

	var got []record
	Launch(Identity[record]())(record{Name: "x"}, func() { t.Fatal("abandoned") }, func(r record) {
		got = append(got, r)
	})
	require.Equal(t, []record{{Name: "x"}}, got)
}

func TestThenIsAssociative(t *testing.T) {
	t.Parallel()

	run := func(group func(a, b, c Trigger[record]) Trigger[record]) ([]string, record) {
		var events []string
		a, b, c := nameUnit(&events), docUnit(&events), kindUnit(&events)
		sa := NewStep[record]("a", a)
		sb := NewStep[record]("b", b)
		sc := NewStep[record]("c", c)

		var out record
		Launch(group(sa.Run(nil), sb.Run(nil), sc.Run(nil)))(record{}, func() {}, func(r record) { out = r })

		a.field = "n"
		sa.Next()
		b.field = "d"
		sb.Next()
		sc.Back()
		sb.Next()
		c.field = "k"
		sc.Next()
		return events, out
	}

	leftEvents, left := run(func(a, b, c Trigger[record]) Trigger[record] {
		return Then(Then(a, b), c)
	})
	rightEvents, right := run(func(a, b, c Trigger[record]) Trigger[record] {
		return Then(a, Then(b, c))
	})

	require.Equal(t, leftEvents, rightEvents)
	require.Equal(t, left, right)
	require.Equal(t, record{Name: "n", Doc: "d", Kind: "k"}, left)
}

func TestBranchShowsOnlySelectedSide(t *testing.T) {
	t.Parallel()

	yes, no := nameUnit(nil), docUnit(nil)
	sy := NewStep[record]("yes", yes)
	sn := NewStep[record]("no", no)

	trigger := Branch(func(r record) bool { return r.Kind == "group" }, sy.Run(nil), sn.Run(nil))
	trigger(record{Kind: "group"}, func() {}, func(record, func()) {})

	require.Equal(t, 1, yes.shows)
	require.Zero(t, no.shows)
}

func TestBranchReevaluatesOnEveryPass(t *testing.T) {
	t.Parallel()

	var events []string
	kind := kindUnit(&events)
	yes, no := nameUnit(&events), docUnit(&events)
	sk := NewStep[record]("kind", kind)
	sy := NewStep[record]("yes", yes)
	sn := NewStep[record]("no", no)

	calls := 0
	pred := func(r record) bool {
		calls++
		return r.Kind == "group"
	}
	Launch(Then(sk.Run(nil), Branch(pred, sy.Run(nil), sn.Run(nil))))(record{}, func() {}, func(record) {})

	kind.field = "group"
	sk.Next()
	require.True(t, yes.visible)

	sy.Back()
	require.True(t, kind.visible)

	kind.field = "dataset"
	sk.Next()
	require.True(t, no.visible)
	require.False(t, yes.visible)
	require.Equal(t, 2, calls)
}

func TestChooseRoutesByKey(t *testing.T) {
	t.Parallel()

	group, dataset, fallback := nameUnit(nil), docUnit(nil), kindUnit(nil)
	sg := NewStep[record]("group", group)
	sd := NewStep[record]("dataset", dataset)
	sf := NewStep[record]("fallback", fallback)

	key := func(r record) string { return r.Kind }
	trigger := Choose(key, []Case[string, record]{
		{Key: "group", Trigger: sg.Run(nil)},
		{Key: "dataset", Trigger: sd.Run(nil)},
	}, sf.Run(nil))

	trigger(record{Kind: "dataset"}, func() {}, func(record, func()) {})
	require.Equal(t, 1, dataset.shows)
	require.Zero(t, group.shows)

	trigger(record{Kind: "link"}, func() {}, func(record, func()) {})
	require.Equal(t, 1, fallback.shows)
}

func TestChooseWithoutDefaultPanicsWithKey(t *testing.T) {
	t.Parallel()

	key := func(r record) string { return r.Kind }
	trigger := Choose(key, []Case[string, record]{
		{Key: "group", Trigger: Identity[record]()},
	}, nil)

	v := recoverPanic(func() {
		trigger(record{Kind: "link"}, func() {}, func(record, func()) {})
	})
	var noBranch *NoBranchError
	require.ErrorAs(t, v.(error), &noBranch)
	require.Equal(t, "link", noBranch.Key)
	require.Contains(t, noBranch.Error(), "link")
}

func TestConvertTriggerAppliesFromAndTo(t *testing.T) {
	t.Parallel()

	unit := nameUnit(nil)
	step := NewStep[record]("name", unit)

	from := func(s string) record {
		parts := strings.SplitN(s, "|", 2)
		return record{Name: parts[0], Doc: parts[1]}
	}
	to := func(r record) string { return r.Name + "|" + r.Doc }

	var out []string
	Launch(ConvertTrigger(step.Run(nil), to, from))("|about", func() {}, func(s string) {
		out = append(out, s)
	})

	require.Equal(t, record{Doc: "about"}, unit.lastFilled())
	unit.field = "Foo"
	step.Next()
	require.Equal(t, []string{"Foo|about"}, out)
	require.Equal(t, "Foo|about", to(from(out[0])))
}

func TestNestResumesWithCompletedValue(t *testing.T) {
	t.Parallel()

	inner := docUnit(nil)
	innerStep := NewStep[record]("inner", inner)
	outer := kindUnit(nil)
	outerStep := NewStep[record]("outer", outer)

	var launches []record
	launcher := func(v record, onAbandon func(), onComplete func(record)) {
		launches = append(launches, v)
		Launch(innerStep.Run(nil))(v, onAbandon, onComplete)
	}

	var out record
	Launch(Then(Nest(Launcher[record](launcher)), outerStep.Run(nil)))(record{Name: "n"}, func() {}, func(r record) { out = r })

	inner.field = "d"
	innerStep.Next()
	require.True(t, outer.visible)

	outerStep.Back()
	require.True(t, inner.visible)
	require.Equal(t, []record{{Name: "n"}, {Name: "n", Doc: "d"}}, launches)

	innerStep.Next()
	outer.field = "k"
	outerStep.Next()
	require.Equal(t, record{Name: "n", Doc: "d", Kind: "k"}, out)
}
