package wizards

import (
	"github.com/BrianJOC/ndx-builder/fieldform"
	"github.com/BrianJOC/ndx-builder/forms"
	"github.com/BrianJOC/ndx-builder/schema"
)

func dtypeOptions() []fieldform.Option {
	opts := make([]fieldform.Option, 0, len(schema.Dtypes))
	for _, d := range schema.Dtypes {
		opts = append(opts, fieldform.Option{Value: string(d)})
	}
	return opts
}

func quantityOptions() []fieldform.Option {
	return []fieldform.Option{
		{Value: schema.QuantityExactlyOne, Label: "exactly one"},
		{Value: schema.QuantityOptional, Label: "optional"},
		{Value: schema.QuantityAny, Label: "any number"},
		{Value: schema.QuantityOneOrMore, Label: "one or more"},
	}
}

func attributeForm() *fieldform.Form[schema.Attribute] {
	return fieldform.New("attribute", "Define an attribute",
		fieldform.Text("name", "Name",
			func(a schema.Attribute) string { return a.Name },
			func(a schema.Attribute, v string) schema.Attribute { a.Name = v; return a },
			fieldform.WithRule[schema.Attribute]("identifier"), fieldform.Required[schema.Attribute]()),
		fieldform.Text("doc", "Description",
			func(a schema.Attribute) string { return a.Doc },
			func(a schema.Attribute, v string) schema.Attribute { a.Doc = v; return a },
			fieldform.Required[schema.Attribute]()),
		fieldform.Select("dtype", "Data type", dtypeOptions(),
			func(a schema.Attribute) string { return string(a.Dtype) },
			func(a schema.Attribute, v string) schema.Attribute { a.Dtype = schema.Dtype(v); return a },
			fieldform.WithDefault[schema.Attribute](string(schema.Text))),
		fieldform.Toggle("required", "Required",
			func(a schema.Attribute) bool { return a.Required },
			func(a schema.Attribute, v bool) schema.Attribute { a.Required = v; return a }),
	)
}

func linkTargetForm(targets func() []fieldform.Option) *fieldform.Form[schema.Link] {
	return fieldform.New("link-target", "Pick the linked type",
		fieldform.DynamicSelect("target", "Target type", targets,
			func(l schema.Link) string { return l.Target },
			func(l schema.Link, v string) schema.Link { l.Target = v; return l },
			fieldform.Required[schema.Link]()),
	)
}

func linkInfoForm() *fieldform.Form[schema.Link] {
	return fieldform.New("link-info", "Describe the link",
		fieldform.Text("name", "Name",
			func(l schema.Link) string { return l.Name },
			func(l schema.Link, v string) schema.Link { l.Name = v; return l },
			fieldform.WithRule[schema.Link]("identifier"), fieldform.Required[schema.Link]()),
		fieldform.Text("doc", "Description",
			func(l schema.Link) string { return l.Doc },
			func(l schema.Link, v string) schema.Link { l.Doc = v; return l },
			fieldform.Required[schema.Link]()),
		fieldform.Select("quantity", "Quantity", quantityOptions(),
			func(l schema.Link) string { return l.Quantity },
			func(l schema.Link, v string) schema.Link { l.Quantity = v; return l }),
	)
}

func authorForm() *fieldform.Form[schema.Author] {
	return fieldform.New("author", "Add an author",
		fieldform.Text("name", "Name",
			func(a schema.Author) string { return a.Name },
			func(a schema.Author, v string) schema.Author { a.Name = v; return a },
			fieldform.Required[schema.Author]()),
		fieldform.Text("contact", "Contact email",
			func(a schema.Author) string { return a.Contact },
			func(a schema.Author, v string) schema.Author { a.Contact = v; return a },
			fieldform.WithRule[schema.Author]("email"), fieldform.Required[schema.Author]()),
	)
}

func authorEditor(host forms.Host, cfg Config) forms.Launcher[schema.Author] {
	return forms.From(authorForm().Step()).WithParent(host, cfg.RunOptions...)
}

// attributeEditor builds the nested attribute wizard shared by group and
// dataset types.
func attributeEditor(host forms.Host, cfg Config) forms.Launcher[schema.Attribute] {
	return forms.From(attributeForm().Step()).WithParent(host, cfg.RunOptions...)
}

func linkEditor(host forms.Host, cfg Config, targets func() []fieldform.Option) forms.Launcher[schema.Link] {
	progress := []string{"target", "details"}
	return forms.From(linkTargetForm(targets).Step(), forms.At(0, progress...)).
		Then(linkInfoForm().Step(), forms.At(1, progress...)).
		WithParent(host, cfg.RunOptions...)
}

func attributeLabel(a schema.Attribute) string {
	label := a.Name + " (" + string(a.Dtype) + ")"
	if a.Required {
		label += " required"
	}
	return label
}

func linkLabel(l schema.Link) string {
	label := l.Name + " → " + l.Target
	if l.Quantity != "" {
		label += " [" + l.Quantity + "]"
	}
	return label
}

func authorLabel(a schema.Author) string {
	return a.Name + " <" + a.Contact + ">"
}
