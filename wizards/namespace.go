// Package wizards assembles the extension builder from form units: a
// namespace wizard whose type list launches a nested type wizard, which in
// turn launches attribute and link editors.
package wizards

import (
	"github.com/BrianJOC/ndx-builder/fieldform"
	"github.com/BrianJOC/ndx-builder/forms"
	"github.com/BrianJOC/ndx-builder/schema"
)

// NamespaceStates labels the namespace step bar.
var NamespaceStates = []string{"namespace", "authors", "types", "export"}

// DefaultVersion is the version a new namespace starts with.
const DefaultVersion = "0.1.0"

// Wizard is the complete extension builder.
type Wizard struct {
	chain    *forms.Chain[schema.Namespace]
	launcher forms.Launcher[schema.Namespace]
	authors  *fieldform.List[schema.Namespace, schema.Author]
	types    *fieldform.List[schema.Namespace, schema.TypeDef]
	export   *Export
	typeWiz  *TypeWizard

	// editing names the type open in the type wizard, if any.
	editing string
}

// New assembles the extension builder on host.
func New(host forms.Host, opts ...Option) *Wizard {
	cfg := newConfig(opts...)
	w := &Wizard{export: newExport(cfg.Clipboard)}

	w.authors = fieldform.NewList(fieldform.ListConfig[schema.Namespace, schema.Author]{
		ID:    "authors",
		Title: "Who maintains this extension?",
		Get:   func(ns schema.Namespace) []schema.Author { return ns.Authors },
		Set: func(ns schema.Namespace, authors []schema.Author) schema.Namespace {
			out := ns.Clone()
			out.Authors = authors
			return out
		},
		Key:    func(a schema.Author) string { return a.Name },
		Label:  authorLabel,
		Seed:   func() schema.Author { return schema.Author{} },
		Editor: authorEditor(host, cfg),
		Guard: func(authors []schema.Author, _ int) error {
			if len(authors) <= 1 {
				return ErrLastAuthor
			}
			return nil
		},
		Min: 1,
	})

	w.types = fieldform.NewList(fieldform.ListConfig[schema.Namespace, schema.TypeDef]{
		ID:    "types",
		Title: "Add your custom types",
		Get:   func(ns schema.Namespace) []schema.TypeDef { return ns.Types },
		Set: func(ns schema.Namespace, types []schema.TypeDef) schema.Namespace {
			out := ns.Clone()
			out.Types = types
			return out
		},
		Key:   func(t schema.TypeDef) string { return t.Name() },
		Label: typeLabel,
		Seed:  func() schema.TypeDef { return schema.TypeDef{Kind: schema.KindGroup} },
		Editor: func(t schema.TypeDef, onAbandon func(), onComplete func(schema.TypeDef)) {
			w.editing = t.Name()
			w.typeWiz.Launcher()(t,
				func() { w.editing = ""; onAbandon() },
				func(out schema.TypeDef) { w.editing = ""; onComplete(out) })
		},
		Guard: referenceGuard,
		Min:   1,
	})
	w.typeWiz = NewTypeWizard(host, w.catalog, opts...)

	info := namespaceForm()
	w.chain = forms.From(info.Step(), forms.At(0, NamespaceStates...)).
		Then(w.authors.Step(), forms.At(1, NamespaceStates...)).
		Then(w.types.Step(), forms.At(2, NamespaceStates...)).
		Then(w.export.Step(), forms.At(3, NamespaceStates...))
	w.launcher = w.chain.WithParent(host, cfg.RunOptions...)
	return w
}

// Launcher returns the launcher that runs the builder.
func (w *Wizard) Launcher() forms.Launcher[schema.Namespace] {
	return w.launcher
}

// Chain returns the composed namespace chain.
func (w *Wizard) Chain() *forms.Chain[schema.Namespace] {
	return w.chain
}

// Authors returns the author list unit.
func (w *Wizard) Authors() *fieldform.List[schema.Namespace, schema.Author] {
	return w.authors
}

// Types returns the nested type wizard.
func (w *Wizard) Types() *TypeWizard {
	return w.typeWiz
}

// Export returns the export unit.
func (w *Wizard) Export() *Export {
	return w.export
}

// Seed returns the value a new namespace starts from.
func Seed() schema.Namespace {
	return schema.Namespace{Version: DefaultVersion}
}

func (w *Wizard) catalog(kind schema.Kind) []string {
	var out []string
	for _, t := range w.types.Items() {
		if t.Kind == kind && (w.editing == "" || t.Name() != w.editing) {
			out = append(out, t.Name())
		}
	}
	return out
}

func namespaceForm() *fieldform.Form[schema.Namespace] {
	return fieldform.New("namespace", "Define the extension namespace",
		fieldform.Text("name", "Namespace name",
			func(ns schema.Namespace) string { return ns.Name },
			func(ns schema.Namespace, v string) schema.Namespace { ns.Name = v; return ns },
			fieldform.WithRule[schema.Namespace]("ndxname"), fieldform.Required[schema.Namespace](),
			fieldform.WithDescription[schema.Namespace]("lower case, starting with ndx-")),
		fieldform.Text("full_name", "Full name",
			func(ns schema.Namespace) string { return ns.FullName },
			func(ns schema.Namespace, v string) schema.Namespace { ns.FullName = v; return ns }),
		fieldform.Text("doc", "Description",
			func(ns schema.Namespace) string { return ns.Doc },
			func(ns schema.Namespace, v string) schema.Namespace { ns.Doc = v; return ns },
			fieldform.Required[schema.Namespace]()),
		fieldform.Text("version", "Version",
			func(ns schema.Namespace) string { return ns.Version },
			func(ns schema.Namespace, v string) schema.Namespace { ns.Version = v; return ns },
			fieldform.WithRule[schema.Namespace]("semver"), fieldform.Required[schema.Namespace](),
			fieldform.WithDefault[schema.Namespace](DefaultVersion)),
	)
}

// referenceGuard refuses to remove a type that another type extends, links
// to or declares as a member.
func referenceGuard(types []schema.TypeDef, i int) error {
	name := types[i].Name()
	for j, t := range types {
		if j == i {
			continue
		}
		if refersTo(t, name) {
			return ReferenceError{Type: name, By: t.Name()}
		}
	}
	return nil
}

func refersTo(t schema.TypeDef, name string) bool {
	switch t.Kind {
	case schema.KindGroup:
		g := schema.GroupOf(t)
		if g.Inc.Source == schema.SourceTypedef && g.Inc.Name == name {
			return true
		}
		for _, l := range g.Links {
			if l.Target == name {
				return true
			}
		}
		for _, d := range g.Groups {
			if includes(d.IncOf(), name) {
				return true
			}
		}
		for _, d := range g.Datasets {
			if includes(d.IncOf(), name) {
				return true
			}
		}
	case schema.KindDataset:
		d := schema.DatasetOf(t)
		return d.Inc.Source == schema.SourceTypedef && d.Inc.Name == name
	}
	return false
}

func includes(d schema.IncDec, name string) bool {
	return d.Inc.Source == schema.SourceTypedef && d.Inc.Name == name
}

func typeLabel(t schema.TypeDef) string {
	inc := ""
	switch t.Kind {
	case schema.KindGroup:
		inc = schema.GroupOf(t).Inc.Name
	case schema.KindDataset:
		inc = schema.DatasetOf(t).Inc.Name
	}
	label := t.Name() + " [" + string(t.Kind) + "]"
	if inc != "" {
		label += " extends " + inc
	}
	return label
}
