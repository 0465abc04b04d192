package fieldform

import "strconv"

// Kind identifies how a field is rendered and edited.
type Kind string

const (
	KindText   Kind = "text"
	KindSelect Kind = "select"
	KindToggle Kind = "toggle"
)

// Option is a selectable value.
type Option struct {
	Value       string
	Label       string
	Description string
}

// Field binds one input to one part of T. Get and Set must touch only the
// part of T the field owns so that forms built from disjoint fields commute.
type Field[T any] struct {
	ID          string
	Label       string
	Description string
	Kind        Kind
	// Rule is a go-playground/validator tag applied to the field value,
	// e.g. "required,alphanum".
	Rule        string
	Default     string
	Options     []Option
	OptionsFunc func() []Option
	Get         func(T) string
	Set         func(T, string) T
}

// FieldOpt customizes fields produced by the helper constructors.
type FieldOpt[T any] func(*Field[T])

// WithRule sets the validator tag.
func WithRule[T any](rule string) FieldOpt[T] {
	return func(f *Field[T]) {
		f.Rule = rule
	}
}

// WithDescription sets the operator-facing description.
func WithDescription[T any](desc string) FieldOpt[T] {
	return func(f *Field[T]) {
		f.Description = desc
	}
}

// WithDefault sets the value a cleared field starts with.
func WithDefault[T any](value string) FieldOpt[T] {
	return func(f *Field[T]) {
		f.Default = value
	}
}

// Required marks the field as mandatory.
func Required[T any]() FieldOpt[T] {
	return func(f *Field[T]) {
		if f.Rule == "" {
			f.Rule = "required"
			return
		}
		f.Rule = "required," + f.Rule
	}
}

// Text builds a free-text field.
func Text[T any](id, label string, get func(T) string, set func(T, string) T, opts ...FieldOpt[T]) Field[T] {
	f := Field[T]{ID: id, Label: label, Kind: KindText, Get: get, Set: set}
	applyFieldOpts(&f, opts...)
	return f
}

// Select builds a field choosing among fixed options.
func Select[T any](id, label string, options []Option, get func(T) string, set func(T, string) T, opts ...FieldOpt[T]) Field[T] {
	f := Field[T]{ID: id, Label: label, Kind: KindSelect, Options: append([]Option{}, options...), Get: get, Set: set}
	applyFieldOpts(&f, opts...)
	return f
}

// DynamicSelect builds a select field whose options are computed on every fill.
func DynamicSelect[T any](id, label string, options func() []Option, get func(T) string, set func(T, string) T, opts ...FieldOpt[T]) Field[T] {
	f := Field[T]{ID: id, Label: label, Kind: KindSelect, OptionsFunc: options, Get: get, Set: set}
	applyFieldOpts(&f, opts...)
	return f
}

// Toggle builds a yes/no field backed by a bool.
func Toggle[T any](id, label string, get func(T) bool, set func(T, bool) T, opts ...FieldOpt[T]) Field[T] {
	f := Field[T]{
		ID:    id,
		Label: label,
		Kind:  KindToggle,
		Options: []Option{
			{Value: "false", Label: "No"},
			{Value: "true", Label: "Yes"},
		},
		// false reads as "no data" so refilling from an earlier value keeps
		// the operator's current choice.
		Get: func(v T) string {
			if get(v) {
				return "true"
			}
			return ""
		},
		Set: func(v T, s string) T {
			b, _ := strconv.ParseBool(s)
			return set(v, b)
		},
	}
	applyFieldOpts(&f, opts...)
	return f
}

func (f Field[T]) options() []Option {
	if f.OptionsFunc != nil {
		return f.OptionsFunc()
	}
	return f.Options
}

func (f Field[T]) choice() bool {
	return f.Kind == KindSelect || f.Kind == KindToggle
}

func applyFieldOpts[T any](f *Field[T], opts ...FieldOpt[T]) {
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
}
