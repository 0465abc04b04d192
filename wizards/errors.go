package wizards

import (
	"errors"
	"fmt"
)

// ReferenceError reports a type that cannot be removed because another type
// still refers to it.
type ReferenceError struct {
	Type string
	By   string
}

func (e ReferenceError) Error() string {
	return fmt.Sprintf("type %s is referenced by %s; edit %s first", e.Type, e.By, e.By)
}

// ErrLastAuthor is returned when removing the only author of a namespace.
var ErrLastAuthor = errors.New("an extension needs at least one author")
