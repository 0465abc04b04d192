package forms

// Trigger runs a step or a composed chain with backtracking.
//
// Calling a trigger displays exactly one step and returns. Later, in response
// to operator input, it calls back at most once (the step is already hidden)
// or forward at most once with the transformed value and a resume thunk that
// redisplays the same step with that transformed value.
type Trigger[T any] func(value T, back func(), forward func(value T, resume func()))

// Launcher is the boundary shape a finished chain presents to its caller.
type Launcher[T any] func(value T, onAbandon func(), onComplete func(T))

// Identity returns a trigger that forwards its input without displaying anything.
func Identity[T any]() Trigger[T] {
	return func(value T, back func(), forward func(T, func())) {
		forward(value, back)
	}
}

// Launch drives t at a chain boundary: back abandons, forward completes and
// the resume thunk is discarded.
func Launch[T any](t Trigger[T]) Launcher[T] {
	return func(value T, onAbandon func(), onComplete func(T)) {
		t(value, onAbandon, func(out T, _ func()) {
			onComplete(out)
		})
	}
}

// Nest lifts a finished launcher into a trigger so a whole chain can act as a
// single sub-step. Abandoning the nested chain goes back; resuming relaunches
// it with the value it completed with.
func Nest[T any](l Launcher[T]) Trigger[T] {
	var nested Trigger[T]
	nested = func(value T, back func(), forward func(T, func())) {
		l(value, back, func(out T) {
			forward(out, func() { nested(out, back, forward) })
		})
	}
	return nested
}

// Then sequences a and b. b's back redisplays a through a's resume thunk.
func Then[T any](a, b Trigger[T]) Trigger[T] {
	return func(value T, back func(), forward func(T, func())) {
		a(value, back, func(next T, resume func()) {
			b(next, resume, forward)
		})
	}
}

// Branch routes to whenTrue or whenFalse. pred is evaluated every time control
// reaches the branch.
func Branch[T any](pred func(T) bool, whenTrue, whenFalse Trigger[T]) Trigger[T] {
	return func(value T, back func(), forward func(T, func())) {
		if pred(value) {
			whenTrue(value, back, forward)
			return
		}
		whenFalse(value, back, forward)
	}
}

// Case pairs a key with the trigger Choose routes to when the key matches.
type Case[K comparable, T any] struct {
	Key     K
	Trigger Trigger[T]
}

// Choose routes to the first case whose key equals key(value), falling back to
// def. With no match and a nil def it panics with a *NoBranchError.
func Choose[T any, K comparable](key func(T) K, cases []Case[K, T], def Trigger[T]) Trigger[T] {
	return func(value T, back func(), forward func(T, func())) {
		k := key(value)
		for _, c := range cases {
			if c.Key == k {
				c.Trigger(value, back, forward)
				return
			}
		}
		if def == nil {
			panic(&NoBranchError{Key: k})
		}
		def(value, back, forward)
	}
}

// ConvertTrigger adapts a trigger over T into one over U. from is applied on entry
// and to on exit; callers must make to(from(u)) == u hold for every u the
// inner trigger can produce.
func ConvertTrigger[T, U any](inner Trigger[T], to func(T) U, from func(U) T) Trigger[U] {
	return func(value U, back func(), forward func(U, func())) {
		inner(from(value), back, func(next T, resume func()) {
			forward(to(next), resume)
		})
	}
}
