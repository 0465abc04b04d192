package forms

import "fmt"

// HandlerError is the panic value raised when a step action is invoked before
// a run installed a handler for it.
type HandlerError struct {
	Step    string
	Handler string
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("forms: step %q has no %s handler installed", e.Step, e.Handler)
}

// NoBranchError is the panic value raised when Choose finds no case for a key
// and has no default.
type NoBranchError struct {
	Key any
}

func (e *NoBranchError) Error() string {
	return fmt.Sprintf("forms: no branch for key %v", e.Key)
}

// ValidationError reports a chain wired with invalid arguments.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("forms: invalid chain: %s", e.Reason)
}
