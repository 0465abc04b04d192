// Package replay drives a wizard headlessly from a recorded answers file.
// Each answer names the step it expects to be shown, the field values to set
// on it and the action to take.
package replay

import (
	"context"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/BrianJOC/ndx-builder/forms"
	"github.com/BrianJOC/ndx-builder/forms/memhost"
)

// Action is what an answer does once its fields are set.
type Action string

const (
	ActionNext   Action = "next"
	ActionBack   Action = "back"
	ActionQuit   Action = "quit"
	ActionAdd    Action = "add"
	ActionEdit   Action = "edit"
	ActionRemove Action = "remove"
)

// Answer is one recorded interaction.
type Answer struct {
	Step   string            `yaml:"step"`
	Fields map[string]string `yaml:"fields,omitempty"`
	Action Action            `yaml:"action"`
	// Index selects the item for edit and remove.
	Index int `yaml:"index,omitempty"`
}

// Script is a full answers file.
type Script struct {
	Answers []Answer `yaml:"answers"`
}

// Load decodes an answers file. Unknown keys and actions are rejected.
func Load(r io.Reader) (Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Script{}, fmt.Errorf("decode answers: %w", err)
	}
	for i, a := range s.Answers {
		switch a.Action {
		case ActionNext, ActionBack, ActionQuit, ActionAdd, ActionEdit, ActionRemove:
		default:
			return Script{}, ActionError{Index: i, Action: a.Action}
		}
	}
	return s, nil
}

type fieldSetter interface {
	SetValue(id, value string) error
}

type checker interface {
	Validate() error
}

type validity interface {
	Valid() bool
}

// rejecter is a list whose last completed edit may have been refused.
type rejecter interface {
	Err() error
}

type itemEditor interface {
	Add() error
	Edit(i int) error
	Remove(i int) error
}

// Run launches the wizard with seed and applies the script. It returns the
// completed value, ErrAbandoned when the script quits, or IncompleteError
// when answers run out first.
func Run[T any](ctx context.Context, launcher forms.Launcher[T], host *memhost.Host, seed T, script Script) (T, error) {
	var (
		zero      T
		out       T
		done      bool
		abandoned bool
	)
	if ctx == nil {
		ctx = context.Background()
	}
	launcher(seed, func() { abandoned = true }, func(v T) {
		out = v
		done = true
	})
	host.Settle()

	for i, answer := range script.Answers {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		if done || abandoned {
			break
		}
		el := host.Active()
		if el == nil {
			return zero, ErrNoActiveStep
		}
		if answer.Step != "" && answer.Step != el.ID() {
			return zero, StepMismatchError{Index: i, Want: answer.Step, Got: el.ID()}
		}
		if err := apply(el, answer); err != nil {
			return zero, AnswerError{Index: i, Step: el.ID(), Err: err}
		}
		host.Settle()
		if next := host.Active(); next != nil {
			if r, ok := next.Unit().(rejecter); ok && r.Err() != nil {
				return zero, AnswerError{Index: i, Step: next.ID(), Err: r.Err()}
			}
		}
	}

	switch {
	case done:
		return out, nil
	case abandoned:
		return zero, ErrAbandoned
	}
	step := ""
	if el := host.Active(); el != nil {
		step = el.ID()
	}
	return zero, IncompleteError{Step: step}
}

func apply(el forms.Element, answer Answer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()

	unit := el.Unit()
	if len(answer.Fields) > 0 {
		setter, ok := unit.(fieldSetter)
		if !ok {
			return fmt.Errorf("step has no fields")
		}
		ids := make([]string, 0, len(answer.Fields))
		for id := range answer.Fields {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			if err := setter.SetValue(id, answer.Fields[id]); err != nil {
				return err
			}
		}
	}

	switch answer.Action {
	case ActionNext:
		if c, ok := unit.(checker); ok {
			if err := c.Validate(); err != nil {
				return err
			}
		} else if v, ok := unit.(validity); ok && !v.Valid() {
			return fmt.Errorf("step is not complete")
		}
		el.Next()
	case ActionBack:
		el.Back()
	case ActionQuit:
		el.Quit()
	case ActionAdd, ActionEdit, ActionRemove:
		list, ok := unit.(itemEditor)
		if !ok {
			return fmt.Errorf("step does not hold a list")
		}
		switch answer.Action {
		case ActionAdd:
			return list.Add()
		case ActionEdit:
			return list.Edit(answer.Index)
		default:
			return list.Remove(answer.Index)
		}
	default:
		return fmt.Errorf("unknown action %q", answer.Action)
	}
	return nil
}
