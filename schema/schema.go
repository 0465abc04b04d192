// Package schema models the extension schema the wizard assembles: a
// namespace holding new group and dataset types with their attributes and
// links. Values are treated as immutable; use Clone before changing slices.
package schema

import (
	"strconv"
	"strings"
)

// Kind distinguishes group types from dataset types.
type Kind string

const (
	KindGroup   Kind = "group"
	KindDataset Kind = "dataset"
)

// Source tells whether a referenced base type is a core type or one defined
// in the namespace being built.
type Source string

const (
	SourceCore    Source = "core"
	SourceTypedef Source = "typedef"
)

// Dtype is a primitive data type name.
type Dtype string

const (
	Int8        Dtype = "int8"
	Int16       Dtype = "int16"
	Int32       Dtype = "int32"
	Int64       Dtype = "int64"
	Uint8       Dtype = "uint8"
	Uint16      Dtype = "uint16"
	Uint32      Dtype = "uint32"
	Uint64      Dtype = "uint64"
	Float32     Dtype = "float32"
	Float64     Dtype = "float64"
	Text        Dtype = "text"
	IsoDatetime Dtype = "isodatetime"
)

// Dtypes lists every primitive data type in display order.
var Dtypes = []Dtype{Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64, Float32, Float64, Text, IsoDatetime}

// Quantity values accepted for links and included types.
const (
	QuantityOptional   = "?"
	QuantityAny        = "*"
	QuantityOneOrMore  = "+"
	QuantityExactlyOne = "1"
)

// Namespace is the document the wizard produces.
type Namespace struct {
	Name     string    `json:"name" yaml:"name"`
	FullName string    `json:"full_name,omitempty" yaml:"full_name,omitempty"`
	Doc      string    `json:"doc" yaml:"doc"`
	Version  string    `json:"version" yaml:"version"`
	Authors  []Author  `json:"authors,omitempty" yaml:"authors,omitempty"`
	Types    []TypeDef `json:"types,omitempty" yaml:"types,omitempty"`
}

// Author is a namespace author and contact.
type Author struct {
	Name    string `json:"name" yaml:"name"`
	Contact string `json:"contact" yaml:"contact"`
}

// TypeRef names a base type.
type TypeRef struct {
	Source Source `json:"source" yaml:"source"`
	Name   string `json:"name" yaml:"name"`
}

// IsZero reports whether no base type was chosen.
func (r TypeRef) IsZero() bool {
	return r.Name == ""
}

// Attribute is a named scalar or array attached to a type.
type Attribute struct {
	Name     string `json:"name" yaml:"name"`
	Doc      string `json:"doc" yaml:"doc"`
	Dtype    Dtype  `json:"dtype" yaml:"dtype"`
	Required bool   `json:"required" yaml:"required"`
}

// Link references another type instance from a group.
type Link struct {
	Name     string `json:"name" yaml:"name"`
	Doc      string `json:"doc" yaml:"doc"`
	Target   string `json:"target_type" yaml:"target_type"`
	Quantity string `json:"quantity,omitempty" yaml:"quantity,omitempty"`
}

// GroupTypeDef defines a new group type.
type GroupTypeDef struct {
	Name        string       `json:"neurodata_type_def" yaml:"neurodata_type_def"`
	Inc         TypeRef      `json:"neurodata_type_inc" yaml:"neurodata_type_inc"`
	Doc         string       `json:"doc" yaml:"doc"`
	DefaultName string       `json:"default_name,omitempty" yaml:"default_name,omitempty"`
	Attributes  []Attribute  `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Links       []Link       `json:"links,omitempty" yaml:"links,omitempty"`
	Groups      []GroupDec   `json:"groups,omitempty" yaml:"groups,omitempty"`
	Datasets    []DatasetDec `json:"datasets,omitempty" yaml:"datasets,omitempty"`
}

// DatasetTypeDef defines a new dataset type.
type DatasetTypeDef struct {
	Name        string      `json:"neurodata_type_def" yaml:"neurodata_type_def"`
	Inc         TypeRef     `json:"neurodata_type_inc" yaml:"neurodata_type_inc"`
	Doc         string      `json:"doc" yaml:"doc"`
	DefaultName string      `json:"default_name,omitempty" yaml:"default_name,omitempty"`
	Dtype       Dtype       `json:"dtype" yaml:"dtype"`
	Shape       []Dim       `json:"shape,omitempty" yaml:"shape,omitempty"`
	Attributes  []Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Dim is one axis of a dataset shape. Size 0 means unbounded.
type Dim struct {
	Size int    `json:"size" yaml:"size"`
	Name string `json:"name" yaml:"name"`
}

// DecKind tells whether a member declaration includes an existing type or
// defines an anonymous one inline.
type DecKind string

const (
	DecInc       DecKind = "inc"
	DecAnonymous DecKind = "anonymous"
)

// IncDec declares a member of an existing type. A named member occurs
// exactly once; an unnamed one occurs Quantity times.
type IncDec struct {
	Inc      TypeRef `json:"neurodata_type_inc" yaml:"neurodata_type_inc"`
	Doc      string  `json:"doc" yaml:"doc"`
	Name     string  `json:"name,omitempty" yaml:"name,omitempty"`
	Quantity string  `json:"quantity,omitempty" yaml:"quantity,omitempty"`
}

// Key returns the member name, or the included type when unnamed.
func (d IncDec) Key() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Inc.Name
}

// AnonymousGroupDec is an inline group that no other type can reference.
type AnonymousGroupDec struct {
	Name       string      `json:"name" yaml:"name"`
	Doc        string      `json:"doc" yaml:"doc"`
	Attributes []Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// AnonymousDatasetDec is an inline dataset that no other type can reference.
type AnonymousDatasetDec struct {
	Name       string      `json:"name" yaml:"name"`
	Doc        string      `json:"doc" yaml:"doc"`
	Dtype      Dtype       `json:"dtype" yaml:"dtype"`
	Shape      []Dim       `json:"shape,omitempty" yaml:"shape,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// GroupDec declares a subgroup of a group type, selected by Kind.
type GroupDec struct {
	Kind      DecKind            `json:"kind" yaml:"kind"`
	Inc       *IncDec            `json:"inc,omitempty" yaml:"inc,omitempty"`
	Anonymous *AnonymousGroupDec `json:"anonymous,omitempty" yaml:"anonymous,omitempty"`
}

// DatasetDec declares a dataset member of a group type, selected by Kind.
type DatasetDec struct {
	Kind      DecKind              `json:"kind" yaml:"kind"`
	Inc       *IncDec              `json:"inc,omitempty" yaml:"inc,omitempty"`
	Anonymous *AnonymousDatasetDec `json:"anonymous,omitempty" yaml:"anonymous,omitempty"`
}

// IncGroup wraps d as an included subgroup.
func IncGroup(d IncDec) GroupDec {
	return GroupDec{Kind: DecInc, Inc: &d}
}

// AnonymousGroup wraps d as an inline subgroup.
func AnonymousGroup(d AnonymousGroupDec) GroupDec {
	d.Attributes = append([]Attribute(nil), d.Attributes...)
	return GroupDec{Kind: DecAnonymous, Anonymous: &d}
}

// IncOf returns the include declaration of g, or an empty one.
func (g GroupDec) IncOf() IncDec {
	if g.Kind != DecInc || g.Inc == nil {
		return IncDec{}
	}
	return *g.Inc
}

// AnonymousOf returns the inline declaration of g, or an empty one.
func (g GroupDec) AnonymousOf() AnonymousGroupDec {
	if g.Kind != DecAnonymous || g.Anonymous == nil {
		return AnonymousGroupDec{}
	}
	out := *g.Anonymous
	out.Attributes = append([]Attribute(nil), out.Attributes...)
	return out
}

// Key names the declared member.
func (g GroupDec) Key() string {
	if g.Kind == DecInc {
		return g.IncOf().Key()
	}
	return g.AnonymousOf().Name
}

// Clone returns a deep copy of g.
func (g GroupDec) Clone() GroupDec {
	switch {
	case g.Inc != nil:
		return GroupDec{Kind: g.Kind, Inc: ptr(*g.Inc)}
	case g.Anonymous != nil:
		a := *g.Anonymous
		a.Attributes = append([]Attribute(nil), a.Attributes...)
		return GroupDec{Kind: g.Kind, Anonymous: &a}
	}
	return GroupDec{Kind: g.Kind}
}

// IncDataset wraps d as an included dataset.
func IncDataset(d IncDec) DatasetDec {
	return DatasetDec{Kind: DecInc, Inc: &d}
}

// AnonymousDataset wraps d as an inline dataset.
func AnonymousDataset(d AnonymousDatasetDec) DatasetDec {
	d.Shape = append([]Dim(nil), d.Shape...)
	d.Attributes = append([]Attribute(nil), d.Attributes...)
	return DatasetDec{Kind: DecAnonymous, Anonymous: &d}
}

// IncOf returns the include declaration of d, or an empty one.
func (d DatasetDec) IncOf() IncDec {
	if d.Kind != DecInc || d.Inc == nil {
		return IncDec{}
	}
	return *d.Inc
}

// AnonymousOf returns the inline declaration of d, or an empty one.
func (d DatasetDec) AnonymousOf() AnonymousDatasetDec {
	if d.Kind != DecAnonymous || d.Anonymous == nil {
		return AnonymousDatasetDec{}
	}
	out := *d.Anonymous
	out.Shape = append([]Dim(nil), out.Shape...)
	out.Attributes = append([]Attribute(nil), out.Attributes...)
	return out
}

// Key names the declared member.
func (d DatasetDec) Key() string {
	if d.Kind == DecInc {
		return d.IncOf().Key()
	}
	return d.AnonymousOf().Name
}

// Clone returns a deep copy of d.
func (d DatasetDec) Clone() DatasetDec {
	switch {
	case d.Inc != nil:
		return DatasetDec{Kind: d.Kind, Inc: ptr(*d.Inc)}
	case d.Anonymous != nil:
		a := *d.Anonymous
		a.Shape = append([]Dim(nil), a.Shape...)
		a.Attributes = append([]Attribute(nil), a.Attributes...)
		return DatasetDec{Kind: d.Kind, Anonymous: &a}
	}
	return DatasetDec{Kind: d.Kind}
}

func ptr[T any](v T) *T {
	return &v
}

// TypeDef is either a group or a dataset type definition, selected by Kind.
type TypeDef struct {
	Kind    Kind            `json:"kind" yaml:"kind"`
	Group   *GroupTypeDef   `json:"group,omitempty" yaml:"group,omitempty"`
	Dataset *DatasetTypeDef `json:"dataset,omitempty" yaml:"dataset,omitempty"`
}

// Name returns the defined type name.
func (t TypeDef) Name() string {
	switch {
	case t.Kind == KindGroup && t.Group != nil:
		return t.Group.Name
	case t.Kind == KindDataset && t.Dataset != nil:
		return t.Dataset.Name
	}
	return ""
}

// Ref returns a reference to t usable as a base type.
func (t TypeDef) Ref() TypeRef {
	return TypeRef{Source: SourceTypedef, Name: t.Name()}
}

// GroupOf returns the group definition of t, or an empty one.
func GroupOf(t TypeDef) GroupTypeDef {
	if t.Kind != KindGroup || t.Group == nil {
		return GroupTypeDef{}
	}
	return t.Group.Clone()
}

// DatasetOf returns the dataset definition of t, or an empty one.
func DatasetOf(t TypeDef) DatasetTypeDef {
	if t.Kind != KindDataset || t.Dataset == nil {
		return DatasetTypeDef{}
	}
	return t.Dataset.Clone()
}

// FromGroup wraps g as a TypeDef.
func FromGroup(g GroupTypeDef) TypeDef {
	g = g.Clone()
	return TypeDef{Kind: KindGroup, Group: &g}
}

// FromDataset wraps d as a TypeDef.
func FromDataset(d DatasetTypeDef) TypeDef {
	d = d.Clone()
	return TypeDef{Kind: KindDataset, Dataset: &d}
}

// Clone returns a deep copy of n.
func (n Namespace) Clone() Namespace {
	out := n
	out.Authors = append([]Author(nil), n.Authors...)
	if n.Types != nil {
		out.Types = make([]TypeDef, len(n.Types))
		for i, t := range n.Types {
			out.Types[i] = t.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of t.
func (t TypeDef) Clone() TypeDef {
	out := TypeDef{Kind: t.Kind}
	if t.Group != nil {
		g := t.Group.Clone()
		out.Group = &g
	}
	if t.Dataset != nil {
		d := t.Dataset.Clone()
		out.Dataset = &d
	}
	return out
}

// Clone returns a deep copy of g.
func (g GroupTypeDef) Clone() GroupTypeDef {
	out := g
	out.Attributes = append([]Attribute(nil), g.Attributes...)
	out.Links = append([]Link(nil), g.Links...)
	out.Groups = nil
	for _, d := range g.Groups {
		out.Groups = append(out.Groups, d.Clone())
	}
	out.Datasets = nil
	for _, d := range g.Datasets {
		out.Datasets = append(out.Datasets, d.Clone())
	}
	return out
}

// Clone returns a deep copy of d.
func (d DatasetTypeDef) Clone() DatasetTypeDef {
	out := d
	out.Shape = append([]Dim(nil), d.Shape...)
	out.Attributes = append([]Attribute(nil), d.Attributes...)
	return out
}

// WithAttribute returns attrs with a replacing the attribute of the same name,
// or appended when there is none.
func WithAttribute(attrs []Attribute, a Attribute) []Attribute {
	out := append([]Attribute(nil), attrs...)
	for i := range out {
		if out[i].Name == a.Name {
			out[i] = a
			return out
		}
	}
	return append(out, a)
}

// WithLink returns links with l replacing the link of the same name, or
// appended when there is none.
func WithLink(links []Link, l Link) []Link {
	out := append([]Link(nil), links...)
	for i := range out {
		if out[i].Name == l.Name {
			out[i] = l
			return out
		}
	}
	return append(out, l)
}

// WithType returns n with t replacing the type of the same name, or appended.
func (n Namespace) WithType(t TypeDef) Namespace {
	out := n.Clone()
	for i := range out.Types {
		if out.Types[i].Name() == t.Name() {
			out.Types[i] = t.Clone()
			return out
		}
	}
	out.Types = append(out.Types, t.Clone())
	return out
}

// TypeRefs lists references to every type of kind defined in n.
func (n Namespace) TypeRefs(kind Kind) []TypeRef {
	var refs []TypeRef
	for _, t := range n.Types {
		if t.Kind == kind && t.Name() != "" {
			refs = append(refs, t.Ref())
		}
	}
	return refs
}

// ParseShape parses "3 x, 0 y" style shapes: comma separated "size name"
// pairs where a size of 0 or "none" is unbounded.
func ParseShape(s string) ([]Dim, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	var dims []Dim
	for _, part := range strings.Split(s, ",") {
		fields := strings.Fields(part)
		if len(fields) != 2 {
			return nil, false
		}
		size := 0
		if !strings.EqualFold(fields[0], "none") {
			n, err := strconv.Atoi(fields[0])
			if err != nil || n < 0 {
				return nil, false
			}
			size = n
		}
		dims = append(dims, Dim{Size: size, Name: fields[1]})
	}
	return dims, true
}

// FormatShape is the inverse of ParseShape.
func FormatShape(dims []Dim) string {
	parts := make([]string, 0, len(dims))
	for _, d := range dims {
		size := "none"
		if d.Size > 0 {
			size = strconv.Itoa(d.Size)
		}
		parts = append(parts, size+" "+d.Name)
	}
	return strings.Join(parts, ", ")
}
