package wizards

import (
	"github.com/BrianJOC/ndx-builder/fieldform"
	"github.com/BrianJOC/ndx-builder/forms"
	"github.com/BrianJOC/ndx-builder/schema"
)

var (
	groupStates   = []string{"kind", "name", "base type", "attributes", "links", "groups", "datasets"}
	datasetStates = []string{"kind", "name", "base type", "data", "attributes"}
)

// Catalog lists the names of types already defined in the namespace being
// built, for kind. The type under edit is left out.
type Catalog func(kind schema.Kind) []string

// TypeWizard builds one group or dataset type definition.
type TypeWizard struct {
	chain    *forms.Chain[schema.TypeDef]
	launcher forms.Launcher[schema.TypeDef]
}

// NewTypeWizard assembles the type wizard on host. catalog may be nil when no
// other types exist.
func NewTypeWizard(host forms.Host, catalog Catalog, opts ...Option) *TypeWizard {
	cfg := newConfig(opts...)
	if catalog == nil {
		catalog = func(schema.Kind) []string { return nil }
	}
	attributes := attributeEditor(host, cfg)
	groupDecs := groupDecEditor(host, cfg, catalog)
	datasetDecs := datasetDecEditor(host, cfg, catalog)
	links := linkEditor(host, cfg, func() []fieldform.Option {
		var out []fieldform.Option
		for _, kind := range []schema.Kind{schema.KindGroup, schema.KindDataset} {
			out = append(out, names(catalog(kind))...)
			out = append(out, names(schema.CoreTypes(kind))...)
		}
		return out
	})

	kind := fieldform.New("kind", "What kind of type?",
		fieldform.Select("kind", "Kind", []fieldform.Option{
			{Value: string(schema.KindGroup), Label: "group", Description: "a container of attributes, datasets and links"},
			{Value: string(schema.KindDataset), Label: "dataset", Description: "an n-dimensional array"},
		},
			func(t schema.TypeDef) string { return string(t.Kind) },
			func(t schema.TypeDef, v string) schema.TypeDef { t.Kind = schema.Kind(v); return t }),
	)

	chain := forms.From(kind.Step(), forms.At(0, groupStates...)).
		Choose(func(t schema.TypeDef) any { return t.Kind }, []forms.ChainCase[schema.TypeDef]{
			forms.On(schema.KindGroup, forms.Convert(groupChain(catalog, attributes, links, groupDecs, datasetDecs), schema.FromGroup, schema.GroupOf)),
			forms.On(schema.KindDataset, forms.Convert(datasetChain(catalog, attributes), schema.FromDataset, schema.DatasetOf)),
		}, nil)

	return &TypeWizard{
		chain:    chain,
		launcher: chain.WithParent(host, cfg.RunOptions...),
	}
}

// Launcher returns the launcher that runs the wizard.
func (w *TypeWizard) Launcher() forms.Launcher[schema.TypeDef] {
	return w.launcher
}

// Chain returns the composed chain.
func (w *TypeWizard) Chain() *forms.Chain[schema.TypeDef] {
	return w.chain
}

func groupChain(
	catalog Catalog,
	attributes forms.Launcher[schema.Attribute],
	links forms.Launcher[schema.Link],
	groupDecs forms.Launcher[schema.GroupDec],
	datasetDecs forms.Launcher[schema.DatasetDec],
) *forms.Chain[schema.GroupTypeDef] {
	name := fieldform.New("group-name", "Name your new group type",
		fieldform.Text("name", "Type name",
			func(g schema.GroupTypeDef) string { return g.Name },
			func(g schema.GroupTypeDef, v string) schema.GroupTypeDef { g.Name = v; return g },
			fieldform.WithRule[schema.GroupTypeDef]("identifier"), fieldform.Required[schema.GroupTypeDef]()),
		fieldform.Text("doc", "Description",
			func(g schema.GroupTypeDef) string { return g.Doc },
			func(g schema.GroupTypeDef, v string) schema.GroupTypeDef { g.Doc = v; return g },
			fieldform.Required[schema.GroupTypeDef]()),
		fieldform.Text("default_name", "Default instance name",
			func(g schema.GroupTypeDef) string { return g.DefaultName },
			func(g schema.GroupTypeDef, v string) schema.GroupTypeDef { g.DefaultName = v; return g }),
	)
	source := sourceForm("group-source",
		func(g schema.GroupTypeDef) schema.Source { return g.Inc.Source },
		func(g schema.GroupTypeDef, s schema.Source) schema.GroupTypeDef { g.Inc.Source = s; return g })
	core := incForm("group-core", "Pick a core base type", func() []fieldform.Option { return names(schema.CoreGroupTypes) },
		func(g schema.GroupTypeDef) string { return g.Inc.Name },
		func(g schema.GroupTypeDef, v string) schema.GroupTypeDef { g.Inc.Name = v; return g })
	mine := incForm("group-mine", "Pick one of your types", func() []fieldform.Option { return names(catalog(schema.KindGroup)) },
		func(g schema.GroupTypeDef) string { return g.Inc.Name },
		func(g schema.GroupTypeDef, v string) schema.GroupTypeDef { g.Inc.Name = v; return g })

	attrList := fieldform.NewList(fieldform.ListConfig[schema.GroupTypeDef, schema.Attribute]{
		ID:     "group-attributes",
		Title:  "Attributes",
		Get:    func(g schema.GroupTypeDef) []schema.Attribute { return g.Attributes },
		Set:    func(g schema.GroupTypeDef, a []schema.Attribute) schema.GroupTypeDef { g.Attributes = a; return g },
		Key:    func(a schema.Attribute) string { return a.Name },
		Label:  attributeLabel,
		Seed:   func() schema.Attribute { return schema.Attribute{Dtype: schema.Text} },
		Editor: attributes,
	})
	linkList := fieldform.NewList(fieldform.ListConfig[schema.GroupTypeDef, schema.Link]{
		ID:     "group-links",
		Title:  "Links",
		Get:    func(g schema.GroupTypeDef) []schema.Link { return g.Links },
		Set:    func(g schema.GroupTypeDef, l []schema.Link) schema.GroupTypeDef { g.Links = l; return g },
		Key:    func(l schema.Link) string { return l.Name },
		Label:  linkLabel,
		Seed:   func() schema.Link { return schema.Link{Quantity: schema.QuantityExactlyOne} },
		Editor: links,
	})
	groupList := fieldform.NewList(fieldform.ListConfig[schema.GroupTypeDef, schema.GroupDec]{
		ID:     "group-groups",
		Title:  "Subgroups",
		Get:    func(g schema.GroupTypeDef) []schema.GroupDec { return g.Groups },
		Set:    func(g schema.GroupTypeDef, d []schema.GroupDec) schema.GroupTypeDef { g.Groups = d; return g },
		Key:    schema.GroupDec.Key,
		Label:  groupDecLabel,
		Seed:   func() schema.GroupDec { return schema.IncGroup(schema.IncDec{Quantity: schema.QuantityExactlyOne}) },
		Editor: groupDecs,
	})
	datasetList := fieldform.NewList(fieldform.ListConfig[schema.GroupTypeDef, schema.DatasetDec]{
		ID:     "group-datasets",
		Title:  "Datasets",
		Get:    func(g schema.GroupTypeDef) []schema.DatasetDec { return g.Datasets },
		Set:    func(g schema.GroupTypeDef, d []schema.DatasetDec) schema.GroupTypeDef { g.Datasets = d; return g },
		Key:    schema.DatasetDec.Key,
		Label:  datasetDecLabel,
		Seed:   func() schema.DatasetDec { return schema.IncDataset(schema.IncDec{Quantity: schema.QuantityExactlyOne}) },
		Editor: datasetDecs,
	})

	return forms.From(name.Step(), forms.At(1, groupStates...)).
		Then(source.Step(), forms.At(2, groupStates...)).
		Branch(func(g schema.GroupTypeDef) bool { return g.Inc.Source == schema.SourceCore },
			forms.From(core.Step(), forms.At(2, groupStates...)),
			forms.From(mine.Step(), forms.At(2, groupStates...))).
		Then(attrList.Step(), forms.At(3, groupStates...)).
		Then(linkList.Step(), forms.At(4, groupStates...)).
		Then(groupList.Step(), forms.At(5, groupStates...)).
		Then(datasetList.Step(), forms.At(6, groupStates...))
}

func datasetChain(catalog Catalog, attributes forms.Launcher[schema.Attribute]) *forms.Chain[schema.DatasetTypeDef] {
	name := fieldform.New("dataset-name", "Name your new dataset type",
		fieldform.Text("name", "Type name",
			func(d schema.DatasetTypeDef) string { return d.Name },
			func(d schema.DatasetTypeDef, v string) schema.DatasetTypeDef { d.Name = v; return d },
			fieldform.WithRule[schema.DatasetTypeDef]("identifier"), fieldform.Required[schema.DatasetTypeDef]()),
		fieldform.Text("doc", "Description",
			func(d schema.DatasetTypeDef) string { return d.Doc },
			func(d schema.DatasetTypeDef, v string) schema.DatasetTypeDef { d.Doc = v; return d },
			fieldform.Required[schema.DatasetTypeDef]()),
		fieldform.Text("default_name", "Default instance name",
			func(d schema.DatasetTypeDef) string { return d.DefaultName },
			func(d schema.DatasetTypeDef, v string) schema.DatasetTypeDef { d.DefaultName = v; return d }),
	)
	source := sourceForm("dataset-source",
		func(d schema.DatasetTypeDef) schema.Source { return d.Inc.Source },
		func(d schema.DatasetTypeDef, s schema.Source) schema.DatasetTypeDef { d.Inc.Source = s; return d })
	core := incForm("dataset-core", "Pick a core base type", func() []fieldform.Option { return names(schema.CoreDatasetTypes) },
		func(d schema.DatasetTypeDef) string { return d.Inc.Name },
		func(d schema.DatasetTypeDef, v string) schema.DatasetTypeDef { d.Inc.Name = v; return d })
	mine := incForm("dataset-mine", "Pick one of your types", func() []fieldform.Option { return names(catalog(schema.KindDataset)) },
		func(d schema.DatasetTypeDef) string { return d.Inc.Name },
		func(d schema.DatasetTypeDef, v string) schema.DatasetTypeDef { d.Inc.Name = v; return d })

	data := fieldform.New("dataset-data", "Describe the data",
		fieldform.Select("dtype", "Data type", dtypeOptions(),
			func(d schema.DatasetTypeDef) string { return string(d.Dtype) },
			func(d schema.DatasetTypeDef, v string) schema.DatasetTypeDef { d.Dtype = schema.Dtype(v); return d },
			fieldform.WithDefault[schema.DatasetTypeDef](string(schema.Float64))),
		fieldform.Text("shape", "Shape",
			func(d schema.DatasetTypeDef) string { return schema.FormatShape(d.Shape) },
			func(d schema.DatasetTypeDef, v string) schema.DatasetTypeDef {
				d.Shape, _ = schema.ParseShape(v)
				return d
			},
			fieldform.WithRule[schema.DatasetTypeDef]("shape"),
			fieldform.WithDescription[schema.DatasetTypeDef]("comma separated \"size name\" pairs, size none for unbounded")),
	)
	attrList := fieldform.NewList(fieldform.ListConfig[schema.DatasetTypeDef, schema.Attribute]{
		ID:     "dataset-attributes",
		Title:  "Attributes",
		Get:    func(d schema.DatasetTypeDef) []schema.Attribute { return d.Attributes },
		Set:    func(d schema.DatasetTypeDef, a []schema.Attribute) schema.DatasetTypeDef { d.Attributes = a; return d },
		Key:    func(a schema.Attribute) string { return a.Name },
		Label:  attributeLabel,
		Seed:   func() schema.Attribute { return schema.Attribute{Dtype: schema.Text} },
		Editor: attributes,
	})

	return forms.From(name.Step(), forms.At(1, datasetStates...)).
		Then(source.Step(), forms.At(2, datasetStates...)).
		Branch(func(d schema.DatasetTypeDef) bool { return d.Inc.Source == schema.SourceCore },
			forms.From(core.Step(), forms.At(2, datasetStates...)),
			forms.From(mine.Step(), forms.At(2, datasetStates...))).
		Then(data.Step(), forms.At(3, datasetStates...)).
		Then(attrList.Step(), forms.At(4, datasetStates...))
}

func sourceForm[T any](id string, get func(T) schema.Source, set func(T, schema.Source) T) *fieldform.Form[T] {
	return fieldform.New(id, "Where does the base type come from?",
		fieldform.Select("source", "Base type source", []fieldform.Option{
			{Value: string(schema.SourceCore), Label: "core", Description: "extend a type of the core schema"},
			{Value: string(schema.SourceTypedef), Label: "my types", Description: "extend a type defined in this namespace"},
		},
			func(v T) string { return string(get(v)) },
			func(v T, s string) T { return set(v, schema.Source(s)) }),
	)
}

func incForm[T any](id, title string, options func() []fieldform.Option, get func(T) string, set func(T, string) T) *fieldform.Form[T] {
	return fieldform.New(id, title,
		fieldform.DynamicSelect("inc", "Base type", options, get, set, fieldform.Required[T]()),
	)
}

func names(list []string) []fieldform.Option {
	opts := make([]fieldform.Option, 0, len(list))
	for _, n := range list {
		opts = append(opts, fieldform.Option{Value: n})
	}
	return opts
}
