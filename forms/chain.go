package forms

// Chain accumulates a composed trigger together with the ordered, de-duplicated
// set of steps it owns. Builder methods mutate and return the receiver.
type Chain[T any] struct {
	trigger Trigger[T]
	steps   []Element
}

// NewChain returns an empty chain that forwards its input unchanged.
func NewChain[T any]() *Chain[T] {
	return &Chain[T]{trigger: Identity[T]()}
}

// From returns a chain starting with step. progress, when given, drives the
// step bar; the first value is used.
func From[T any](step *Step[T], progress ...Progress) *Chain[T] {
	return NewChain[T]().Then(step, progress...)
}

// Trigger returns the composed trigger.
func (c *Chain[T]) Trigger() Trigger[T] {
	return c.trigger
}

// Steps returns the steps owned by the chain in mount order.
func (c *Chain[T]) Steps() []Element {
	out := make([]Element, len(c.steps))
	copy(out, c.steps)
	return out
}

// Then appends step to the chain.
func (c *Chain[T]) Then(step *Step[T], progress ...Progress) *Chain[T] {
	if step == nil {
		panic(ValidationError{Reason: "then requires a step"})
	}
	var p *Progress
	if len(progress) > 0 {
		if !progress[0].Valid() {
			panic(ValidationError{Reason: "progress index out of range for step " + step.ID()})
		}
		p = &progress[0]
	}
	c.own(step)
	c.trigger = Then(c.trigger, step.Run(p))
	return c
}

// Chain splices other onto the end of the chain.
func (c *Chain[T]) Chain(other *Chain[T]) *Chain[T] {
	if other == nil {
		panic(ValidationError{Reason: "chain requires a chain"})
	}
	c.own(other.steps...)
	c.trigger = Then(c.trigger, other.trigger)
	return c
}

// Branch continues with whenTrue or whenFalse depending on pred, evaluated on
// the value produced by the chain so far.
func (c *Chain[T]) Branch(pred func(T) bool, whenTrue, whenFalse *Chain[T]) *Chain[T] {
	if pred == nil || whenTrue == nil || whenFalse == nil {
		panic(ValidationError{Reason: "branch requires a predicate and two chains"})
	}
	c.own(whenTrue.steps...)
	c.own(whenFalse.steps...)
	c.trigger = Then(c.trigger, Branch(pred, whenTrue.trigger, whenFalse.trigger))
	return c
}

// ChainCase pairs a key with the chain Choose continues with.
type ChainCase[T any] struct {
	Key   any
	Chain *Chain[T]
}

// On builds a ChainCase.
func On[T any](key any, chain *Chain[T]) ChainCase[T] {
	return ChainCase[T]{Key: key, Chain: chain}
}

// Choose continues with the case whose key equals key(value), or def. def may
// be nil, in which case an unmatched key panics with *NoBranchError. Keys are
// compared with ==, so they must be of comparable dynamic types.
func (c *Chain[T]) Choose(key func(T) any, cases []ChainCase[T], def *Chain[T]) *Chain[T] {
	if key == nil {
		panic(ValidationError{Reason: "choose requires a key function"})
	}
	triggers := make([]Case[any, T], 0, len(cases))
	var fallback Trigger[T]
	if def != nil {
		c.own(def.steps...)
		fallback = def.trigger
	}
	for _, cs := range cases {
		if cs.Chain == nil {
			panic(ValidationError{Reason: "choose case requires a chain"})
		}
		c.own(cs.Chain.steps...)
		triggers = append(triggers, Case[any, T]{Key: cs.Key, Trigger: cs.Chain.trigger})
	}
	c.trigger = Then(c.trigger, Choose(key, triggers, fallback))
	return c
}

// Nest appends a finished chain's launcher as a single sub-step. The nested
// chain owns and mounts its own steps.
func (c *Chain[T]) Nest(l Launcher[T]) *Chain[T] {
	if l == nil {
		panic(ValidationError{Reason: "nest requires a launcher"})
	}
	c.trigger = Then(c.trigger, Nest(l))
	return c
}

// Convert retypes c from T to U. The new chain owns the same steps.
func Convert[T, U any](c *Chain[T], to func(T) U, from func(U) T) *Chain[U] {
	if c == nil || to == nil || from == nil {
		panic(ValidationError{Reason: "convert requires a chain and both conversions"})
	}
	out := &Chain[U]{trigger: ConvertTrigger(c.trigger, to, from)}
	out.own(c.steps...)
	return out
}

func (c *Chain[T]) own(steps ...Element) {
outer:
	for _, s := range steps {
		for _, have := range c.steps {
			if have == s {
				continue outer
			}
		}
		c.steps = append(c.steps, s)
	}
}
