package fieldform

import "fmt"

// UnknownFieldError indicates a field id that the form does not declare.
type UnknownFieldError struct {
	Form  string
	Field string
}

func (e UnknownFieldError) Error() string {
	return fmt.Sprintf("form %s has no field %q", e.Form, e.Field)
}

// OptionError indicates a value that is not one of a select field's options.
type OptionError struct {
	Field string
	Value string
}

func (e OptionError) Error() string {
	return fmt.Sprintf("field %s has no option %q", e.Field, e.Value)
}

// RuleError wraps a validation failure of a single field.
type RuleError struct {
	Field string
	Rule  string
	Err   error
}

func (e RuleError) Error() string {
	return fmt.Sprintf("field %s fails %q: %v", e.Field, e.Rule, e.Err)
}

func (e RuleError) Unwrap() error {
	return e.Err
}

// IndexError indicates a list position with no item.
type IndexError struct {
	List  string
	Index int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("list %s has no item %d", e.List, e.Index)
}

// BusyError indicates an action on a list whose editor is still open.
type BusyError struct {
	List string
}

func (e BusyError) Error() string {
	return fmt.Sprintf("list %s is waiting for its editor", e.List)
}

// DuplicateError indicates an item whose key another item already uses.
type DuplicateError struct {
	List string
	Key  string
}

func (e DuplicateError) Error() string {
	return fmt.Sprintf("list %s already has an item named %q", e.List, e.Key)
}
