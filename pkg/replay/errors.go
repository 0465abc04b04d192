package replay

import (
	"errors"
	"fmt"
)

var (
	// ErrAbandoned reports a script that quit the wizard.
	ErrAbandoned = errors.New("replay: wizard abandoned")
	// ErrNoActiveStep reports an answer with no step on screen to apply it to.
	ErrNoActiveStep = errors.New("replay: no step is shown")
)

// StepMismatchError reports an answer written for a different step than the
// one shown.
type StepMismatchError struct {
	Index int
	Want  string
	Got   string
}

func (e StepMismatchError) Error() string {
	return fmt.Sprintf("replay: answer %d is for step %s but %s is shown", e.Index, e.Want, e.Got)
}

// AnswerError wraps a failure applying answer Index to Step.
type AnswerError struct {
	Index int
	Step  string
	Err   error
}

func (e AnswerError) Error() string {
	return fmt.Sprintf("replay: answer %d on step %s: %v", e.Index, e.Step, e.Err)
}

func (e AnswerError) Unwrap() error {
	return e.Err
}

// IncompleteError reports a script that ended before the wizard finished.
type IncompleteError struct {
	Step string
}

func (e IncompleteError) Error() string {
	return fmt.Sprintf("replay: answers ended while step %s is shown", e.Step)
}

// ActionError reports an unknown action in an answers file.
type ActionError struct {
	Index  int
	Action Action
}

func (e ActionError) Error() string {
	return fmt.Sprintf("replay: answer %d has unknown action %q", e.Index, e.Action)
}
