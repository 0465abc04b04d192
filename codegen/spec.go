package codegen

import (
	"sort"

	"github.com/goccy/go-json"

	"github.com/BrianJOC/ndx-builder/schema"
)

// Spec documents mirror the layout the generator script and the YAML spec
// files expect. Field order here is the output order.

type attributeSpec struct {
	Name     string `json:"name" yaml:"name"`
	Doc      string `json:"doc" yaml:"doc"`
	Dtype    string `json:"dtype" yaml:"dtype"`
	Required bool   `json:"required" yaml:"required"`
}

type linkSpec struct {
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Doc        string `json:"doc" yaml:"doc"`
	TargetType string `json:"target_type" yaml:"target_type"`
	Quantity   string `json:"quantity,omitempty" yaml:"quantity,omitempty"`
}

type groupSpec struct {
	TypeDef     string          `json:"neurodata_type_def" yaml:"neurodata_type_def"`
	TypeInc     string          `json:"neurodata_type_inc,omitempty" yaml:"neurodata_type_inc,omitempty"`
	Doc         string          `json:"doc" yaml:"doc"`
	DefaultName string          `json:"default_name,omitempty" yaml:"default_name,omitempty"`
	Attributes  []attributeSpec `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Links       []linkSpec      `json:"links,omitempty" yaml:"links,omitempty"`
	Groups      []memberSpec    `json:"groups,omitempty" yaml:"groups,omitempty"`
	Datasets    []memberSpec    `json:"datasets,omitempty" yaml:"datasets,omitempty"`
}

// memberSpec is a group or dataset declared inside a group type, either by
// including a type or inline.
type memberSpec struct {
	TypeInc    string          `json:"neurodata_type_inc,omitempty" yaml:"neurodata_type_inc,omitempty"`
	Name       string          `json:"name,omitempty" yaml:"name,omitempty"`
	Doc        string          `json:"doc" yaml:"doc"`
	Quantity   string          `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Dtype      string          `json:"dtype,omitempty" yaml:"dtype,omitempty"`
	Shape      []*int          `json:"shape,omitempty" yaml:"shape,omitempty"`
	Dims       []string        `json:"dims,omitempty" yaml:"dims,omitempty"`
	Attributes []attributeSpec `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

type datasetSpec struct {
	TypeDef     string          `json:"neurodata_type_def" yaml:"neurodata_type_def"`
	TypeInc     string          `json:"neurodata_type_inc,omitempty" yaml:"neurodata_type_inc,omitempty"`
	Doc         string          `json:"doc" yaml:"doc"`
	DefaultName string          `json:"default_name,omitempty" yaml:"default_name,omitempty"`
	Dtype       string          `json:"dtype,omitempty" yaml:"dtype,omitempty"`
	Shape       []*int          `json:"shape,omitempty" yaml:"shape,omitempty"`
	Dims        []string        `json:"dims,omitempty" yaml:"dims,omitempty"`
	Attributes  []attributeSpec `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// typeSpec is a tagged spec the script dispatches on: ["GROUP", {...}].
type typeSpec struct {
	Kind    string
	Group   *groupSpec
	Dataset *datasetSpec
}

func (t typeSpec) MarshalJSON() ([]byte, error) {
	if t.Group != nil {
		return json.Marshal([]any{t.Kind, t.Group})
	}
	return json.Marshal([]any{t.Kind, t.Dataset})
}

type includeSpec struct {
	Namespace     string   `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Source        string   `json:"source,omitempty" yaml:"source,omitempty"`
	NeurodataType []string `json:"neurodata_types,omitempty" yaml:"neurodata_types,omitempty"`
}

type namespaceSpec struct {
	Name     string        `json:"name" yaml:"name"`
	Doc      string        `json:"doc" yaml:"doc"`
	Author   []string      `json:"author" yaml:"author"`
	Contact  []string      `json:"contact" yaml:"contact"`
	Version  string        `json:"version" yaml:"version"`
	FullName string        `json:"full_name,omitempty" yaml:"full_name,omitempty"`
	Schema   []includeSpec `json:"schema,omitempty" yaml:"schema,omitempty"`
}

func convertNamespace(ns schema.Namespace) namespaceSpec {
	out := namespaceSpec{
		Name:     ns.Name,
		Doc:      ns.Doc,
		Version:  ns.Version,
		FullName: ns.FullName,
		Author:   []string{},
		Contact:  []string{},
	}
	for _, a := range ns.Authors {
		out.Author = append(out.Author, a.Name)
		out.Contact = append(out.Contact, a.Contact)
	}
	if core := coreIncludes(ns); len(core) > 0 {
		out.Schema = append(out.Schema, includeSpec{Namespace: "core", NeurodataType: core})
	}
	out.Schema = append(out.Schema, includeSpec{Source: extensionsFile(ns)})
	return out
}

func convertTypeDef(t schema.TypeDef) typeSpec {
	switch t.Kind {
	case schema.KindGroup:
		g := schema.GroupOf(t)
		return typeSpec{Kind: "GROUP", Group: &groupSpec{
			TypeDef:     g.Name,
			TypeInc:     g.Inc.Name,
			Doc:         g.Doc,
			DefaultName: g.DefaultName,
			Attributes:  convertAttributes(g.Attributes),
			Links:       convertLinks(g.Links),
			Groups:      convertGroupDecs(g.Groups),
			Datasets:    convertDatasetDecs(g.Datasets),
		}}
	default:
		d := schema.DatasetOf(t)
		spec := &datasetSpec{
			TypeDef:     d.Name,
			TypeInc:     d.Inc.Name,
			Doc:         d.Doc,
			DefaultName: d.DefaultName,
			Dtype:       string(d.Dtype),
			Attributes:  convertAttributes(d.Attributes),
		}
		spec.Shape, spec.Dims = convertShape(d.Shape)
		return typeSpec{Kind: "DATASET", Dataset: spec}
	}
}

func convertShape(dims []schema.Dim) ([]*int, []string) {
	var shape []*int
	var names []string
	for _, dim := range dims {
		var size *int
		if dim.Size > 0 {
			n := dim.Size
			size = &n
		}
		shape = append(shape, size)
		names = append(names, dim.Name)
	}
	return shape, names
}

func convertIncDec(d schema.IncDec) memberSpec {
	out := memberSpec{TypeInc: d.Inc.Name, Doc: d.Doc, Name: d.Name}
	if d.Name == "" {
		out.Quantity = quantity(d.Quantity)
	}
	return out
}

func convertGroupDecs(decs []schema.GroupDec) []memberSpec {
	var out []memberSpec
	for _, d := range decs {
		if d.Kind == schema.DecInc {
			out = append(out, convertIncDec(d.IncOf()))
			continue
		}
		a := d.AnonymousOf()
		out = append(out, memberSpec{Name: a.Name, Doc: a.Doc, Attributes: convertAttributes(a.Attributes)})
	}
	return out
}

func convertDatasetDecs(decs []schema.DatasetDec) []memberSpec {
	var out []memberSpec
	for _, d := range decs {
		if d.Kind == schema.DecInc {
			out = append(out, convertIncDec(d.IncOf()))
			continue
		}
		a := d.AnonymousOf()
		spec := memberSpec{Name: a.Name, Doc: a.Doc, Dtype: string(a.Dtype), Attributes: convertAttributes(a.Attributes)}
		spec.Shape, spec.Dims = convertShape(a.Shape)
		out = append(out, spec)
	}
	return out
}

// quantity drops the default of exactly one.
func quantity(q string) string {
	if q == schema.QuantityExactlyOne {
		return ""
	}
	return q
}

func convertAttributes(attrs []schema.Attribute) []attributeSpec {
	var out []attributeSpec
	for _, a := range attrs {
		out = append(out, attributeSpec{Name: a.Name, Doc: a.Doc, Dtype: string(a.Dtype), Required: a.Required})
	}
	return out
}

func convertLinks(links []schema.Link) []linkSpec {
	var out []linkSpec
	for _, l := range links {
		out = append(out, linkSpec{Name: l.Name, Doc: l.Doc, TargetType: l.Target, Quantity: quantity(l.Quantity)})
	}
	return out
}

// coreIncludes lists the core types referenced by ns, sorted.
func coreIncludes(ns schema.Namespace) []string {
	seen := make(map[string]struct{})
	add := func(ref schema.TypeRef) {
		if ref.Source == schema.SourceCore && ref.Name != "" {
			seen[ref.Name] = struct{}{}
		}
	}
	for _, t := range ns.Types {
		switch t.Kind {
		case schema.KindGroup:
			g := schema.GroupOf(t)
			add(g.Inc)
			for _, l := range g.Links {
				if schema.IsCore(schema.KindGroup, l.Target) || schema.IsCore(schema.KindDataset, l.Target) {
					seen[l.Target] = struct{}{}
				}
			}
			for _, d := range g.Groups {
				add(d.IncOf().Inc)
			}
			for _, d := range g.Datasets {
				add(d.IncOf().Inc)
			}
		case schema.KindDataset:
			add(schema.DatasetOf(t).Inc)
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func extensionsFile(ns schema.Namespace) string {
	return ns.Name + ".extensions.yaml"
}
