package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCloneDoesNotShareSlices(t *testing.T) {
	t.Parallel()

	g := GroupTypeDef{Name: "Electrode", Attributes: []Attribute{{Name: "rate"}}}
	ns := Namespace{Name: "ndx-electrode", Types: []TypeDef{FromGroup(g)}}

	clone := ns.Clone()
	clone.Types[0].Group.Attributes[0].Name = "changed"
	clone.Types[0].Group.Name = "Other"

	require.Equal(t, "rate", ns.Types[0].Group.Attributes[0].Name)
	require.Equal(t, "Electrode", ns.Types[0].Name())
}

func TestGroupRoundTrip(t *testing.T) {
	t.Parallel()

	g := GroupTypeDef{
		Name:  "Electrode",
		Inc:   TypeRef{Source: SourceCore, Name: "Device"},
		Doc:   "a electrode",
		Links: []Link{{Name: "device", Target: "Device"}},
	}
	td := FromGroup(g)
	require.Equal(t, KindGroup, td.Kind)
	if diff := cmp.Diff(g, GroupOf(td)); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(td, FromGroup(GroupOf(td))); diff != "" {
		t.Fatalf("typedef round trip mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, DatasetTypeDef{}, DatasetOf(td))
}

func TestWithTypeReplacesByName(t *testing.T) {
	t.Parallel()

	ns := Namespace{}
	ns = ns.WithType(FromGroup(GroupTypeDef{Name: "A", Doc: "one"}))
	ns = ns.WithType(FromDataset(DatasetTypeDef{Name: "B"}))
	ns = ns.WithType(FromGroup(GroupTypeDef{Name: "A", Doc: "two"}))

	require.Len(t, ns.Types, 2)
	require.Equal(t, "two", ns.Types[0].Group.Doc)
	require.Equal(t, []TypeRef{{Source: SourceTypedef, Name: "A"}}, ns.TypeRefs(KindGroup))
	require.Equal(t, []TypeRef{{Source: SourceTypedef, Name: "B"}}, ns.TypeRefs(KindDataset))
}

func TestWithAttributeIsIdempotent(t *testing.T) {
	t.Parallel()

	a := Attribute{Name: "rate", Dtype: Float64}
	once := WithAttribute(nil, a)
	twice := WithAttribute(once, a)
	require.Equal(t, once, twice)

	other := WithLink(WithLink(nil, Link{Name: "x"}), Link{Name: "x", Doc: "d"})
	require.Equal(t, []Link{{Name: "x", Doc: "d"}}, other)
}

func TestParseShape(t *testing.T) {
	t.Parallel()

	dims, ok := ParseShape("3 x, none time")
	require.True(t, ok)
	require.Equal(t, []Dim{{Size: 3, Name: "x"}, {Size: 0, Name: "time"}}, dims)
	require.Equal(t, "3 x, none time", FormatShape(dims))

	dims, ok = ParseShape("  ")
	require.True(t, ok)
	require.Nil(t, dims)

	_, ok = ParseShape("x")
	require.False(t, ok)
	_, ok = ParseShape("-1 x")
	require.False(t, ok)
}

func TestCoreTypes(t *testing.T) {
	t.Parallel()

	require.True(t, IsCore(KindGroup, "TimeSeries"))
	require.False(t, IsCore(KindDataset, "TimeSeries"))
	require.Nil(t, CoreTypes(Kind("link")))
}

func TestDeclarationsWrapAndKey(t *testing.T) {
	t.Parallel()

	inc := IncDec{Inc: TypeRef{Source: SourceCore, Name: "Device"}, Doc: "rigs", Quantity: QuantityAny}
	g := IncGroup(inc)
	require.Equal(t, DecInc, g.Kind)
	require.Equal(t, inc, g.IncOf())
	require.Equal(t, AnonymousGroupDec{}, g.AnonymousOf())
	require.Equal(t, "Device", g.Key())

	inc.Name = "main_rig"
	require.Equal(t, "main_rig", IncGroup(inc).Key())

	d := AnonymousDataset(AnonymousDatasetDec{Name: "trace", Dtype: Float32, Shape: []Dim{{Name: "time"}}})
	require.Equal(t, DecAnonymous, d.Kind)
	require.Equal(t, "trace", d.Key())
	require.Equal(t, IncDec{}, d.IncOf())
}

func TestCloneCopiesDeclarations(t *testing.T) {
	t.Parallel()

	g := GroupTypeDef{
		Name:     "Electrode",
		Groups:   []GroupDec{AnonymousGroup(AnonymousGroupDec{Name: "meta", Attributes: []Attribute{{Name: "rate"}}})},
		Datasets: []DatasetDec{IncDataset(IncDec{Inc: TypeRef{Source: SourceCore, Name: "VectorData"}})},
	}
	clone := g.Clone()
	clone.Groups[0].Anonymous.Attributes[0].Name = "changed"
	clone.Datasets[0].Inc.Doc = "changed"

	require.Equal(t, "rate", g.Groups[0].Anonymous.Attributes[0].Name)
	require.Empty(t, g.Datasets[0].Inc.Doc)
	if diff := cmp.Diff(g, GroupOf(FromGroup(g))); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
