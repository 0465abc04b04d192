package wizards

import (
	"github.com/BrianJOC/ndx-builder/fieldform"
	"github.com/BrianJOC/ndx-builder/forms"
	"github.com/BrianJOC/ndx-builder/schema"
)

func decKindForm[D any](id, title string, get func(D) schema.DecKind, set func(D, schema.DecKind) D) *fieldform.Form[D] {
	return fieldform.New(id, title,
		fieldform.Select("kind", "Declaration", []fieldform.Option{
			{Value: string(schema.DecInc), Label: "include a type", Description: "a member of an existing core or namespace type"},
			{Value: string(schema.DecAnonymous), Label: "define inline", Description: "a member only this type holds"},
		},
			func(d D) string { return string(get(d)) },
			func(d D, v string) D { return set(d, schema.DecKind(v)) }),
	)
}

// incDecChain picks the included type, then names the member or sets how
// many instances it allows.
func incDecChain(prefix string, kind schema.Kind, catalog Catalog) *forms.Chain[schema.IncDec] {
	base := fieldform.New(prefix+"-inc", "Pick the included type",
		fieldform.DynamicSelect("inc", "Type",
			func() []fieldform.Option { return append(names(catalog(kind)), names(schema.CoreTypes(kind))...) },
			func(d schema.IncDec) string { return d.Inc.Name },
			func(d schema.IncDec, v string) schema.IncDec { d.Inc = typeRef(kind, v); return d },
			fieldform.Required[schema.IncDec]()),
	)
	member := fieldform.New(prefix+"-member", "Describe the member",
		fieldform.Text("doc", "Description",
			func(d schema.IncDec) string { return d.Doc },
			func(d schema.IncDec, v string) schema.IncDec { d.Doc = v; return d },
			fieldform.Required[schema.IncDec]()),
		fieldform.Text("name", "Instance name",
			func(d schema.IncDec) string { return d.Name },
			func(d schema.IncDec, v string) schema.IncDec { d.Name = v; return d },
			fieldform.WithRule[schema.IncDec]("omitempty,identifier"),
			fieldform.WithDescription[schema.IncDec]("leave empty to allow several unnamed instances")),
		fieldform.Select("quantity", "Quantity", quantityOptions(),
			func(d schema.IncDec) string { return d.Quantity },
			func(d schema.IncDec, v string) schema.IncDec { d.Quantity = v; return d }),
	)
	return forms.From(base.Step()).Then(member.Step())
}

func groupDecEditor(host forms.Host, cfg Config, catalog Catalog) forms.Launcher[schema.GroupDec] {
	kind := decKindForm("group-dec-kind", "Add a subgroup",
		func(d schema.GroupDec) schema.DecKind { return d.Kind },
		func(d schema.GroupDec, k schema.DecKind) schema.GroupDec { d.Kind = k; return d })
	anon := fieldform.New("group-dec-anonymous", "Name the inline group",
		fieldform.Text("name", "Name",
			func(d schema.AnonymousGroupDec) string { return d.Name },
			func(d schema.AnonymousGroupDec, v string) schema.AnonymousGroupDec { d.Name = v; return d },
			fieldform.WithRule[schema.AnonymousGroupDec]("identifier"), fieldform.Required[schema.AnonymousGroupDec]()),
		fieldform.Text("doc", "Description",
			func(d schema.AnonymousGroupDec) string { return d.Doc },
			func(d schema.AnonymousGroupDec, v string) schema.AnonymousGroupDec { d.Doc = v; return d },
			fieldform.Required[schema.AnonymousGroupDec]()),
	)

	chain := forms.From(kind.Step()).
		Choose(func(d schema.GroupDec) any { return d.Kind }, []forms.ChainCase[schema.GroupDec]{
			forms.On(schema.DecInc, forms.Convert(incDecChain("group-dec", schema.KindGroup, catalog), schema.IncGroup, schema.GroupDec.IncOf)),
			forms.On(schema.DecAnonymous, forms.Convert(forms.From(anon.Step()), schema.AnonymousGroup, schema.GroupDec.AnonymousOf)),
		}, nil)
	return chain.WithParent(host, cfg.RunOptions...)
}

func datasetDecEditor(host forms.Host, cfg Config, catalog Catalog) forms.Launcher[schema.DatasetDec] {
	kind := decKindForm("dataset-dec-kind", "Add a dataset",
		func(d schema.DatasetDec) schema.DecKind { return d.Kind },
		func(d schema.DatasetDec, k schema.DecKind) schema.DatasetDec { d.Kind = k; return d })
	anon := fieldform.New("dataset-dec-anonymous", "Name the inline dataset",
		fieldform.Text("name", "Name",
			func(d schema.AnonymousDatasetDec) string { return d.Name },
			func(d schema.AnonymousDatasetDec, v string) schema.AnonymousDatasetDec { d.Name = v; return d },
			fieldform.WithRule[schema.AnonymousDatasetDec]("identifier"), fieldform.Required[schema.AnonymousDatasetDec]()),
		fieldform.Text("doc", "Description",
			func(d schema.AnonymousDatasetDec) string { return d.Doc },
			func(d schema.AnonymousDatasetDec, v string) schema.AnonymousDatasetDec { d.Doc = v; return d },
			fieldform.Required[schema.AnonymousDatasetDec]()),
	)
	data := fieldform.New("dataset-dec-data", "Describe the data",
		fieldform.Select("dtype", "Data type", dtypeOptions(),
			func(d schema.AnonymousDatasetDec) string { return string(d.Dtype) },
			func(d schema.AnonymousDatasetDec, v string) schema.AnonymousDatasetDec { d.Dtype = schema.Dtype(v); return d },
			fieldform.WithDefault[schema.AnonymousDatasetDec](string(schema.Float32))),
		fieldform.Text("shape", "Shape",
			func(d schema.AnonymousDatasetDec) string { return schema.FormatShape(d.Shape) },
			func(d schema.AnonymousDatasetDec, v string) schema.AnonymousDatasetDec {
				d.Shape, _ = schema.ParseShape(v)
				return d
			},
			fieldform.WithRule[schema.AnonymousDatasetDec]("shape")),
	)

	chain := forms.From(kind.Step()).
		Choose(func(d schema.DatasetDec) any { return d.Kind }, []forms.ChainCase[schema.DatasetDec]{
			forms.On(schema.DecInc, forms.Convert(incDecChain("dataset-dec", schema.KindDataset, catalog), schema.IncDataset, schema.DatasetDec.IncOf)),
			forms.On(schema.DecAnonymous, forms.Convert(forms.From(anon.Step()).Then(data.Step()), schema.AnonymousDataset, schema.DatasetDec.AnonymousOf)),
		}, nil)
	return chain.WithParent(host, cfg.RunOptions...)
}

func typeRef(kind schema.Kind, name string) schema.TypeRef {
	if schema.IsCore(kind, name) {
		return schema.TypeRef{Source: schema.SourceCore, Name: name}
	}
	return schema.TypeRef{Source: schema.SourceTypedef, Name: name}
}

func incDecLabel(d schema.IncDec) string {
	if d.Name != "" {
		return d.Name + ": " + d.Inc.Name
	}
	return d.Inc.Name + " [" + d.Quantity + "]"
}

func groupDecLabel(d schema.GroupDec) string {
	if d.Kind == schema.DecInc {
		return incDecLabel(d.IncOf())
	}
	return d.AnonymousOf().Name + " (inline group)"
}

func datasetDecLabel(d schema.DatasetDec) string {
	if d.Kind == schema.DecInc {
		return incDecLabel(d.IncOf())
	}
	a := d.AnonymousOf()
	return a.Name + " (inline " + string(a.Dtype) + ")"
}
