package forms

import "go.uber.org/zap"

// RunOption configures a launcher built by WithParent.
type RunOption func(*runConfig)

type runConfig struct {
	observers []Observer
}

// WithObserver registers an observer for every run of the launcher.
func WithObserver(obs Observer) RunOption {
	return func(cfg *runConfig) {
		if obs == nil {
			return
		}
		cfg.observers = append(cfg.observers, obs)
	}
}

// WithLogger logs run lifecycle events to logger.
func WithLogger(logger *zap.Logger) RunOption {
	return func(cfg *runConfig) {
		if logger == nil {
			return
		}
		cfg.observers = append(cfg.observers, LogObserver(logger))
	}
}

// WithParent makes the chain runnable inside host. Each call of the returned
// launcher binds a shared quit handler on every owned step, mounts them, waits
// for the host to settle, clears and hides them, then drives the chain. Quit
// from any owned step, or back from the first one, unmounts everything and
// calls onAbandon; completing the last step unmounts everything and calls
// onComplete.
func (c *Chain[T]) WithParent(host Host, opts ...RunOption) Launcher[T] {
	if host == nil {
		panic(ValidationError{Reason: "with parent requires a host"})
	}
	cfg := runConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	steps := c.Steps()
	trigger := c.trigger

	return func(value T, onAbandon func(), onComplete func(T)) {
		sess := newSession(cfg.observers)

		detach := func() {
			for _, s := range steps {
				host.Unmount(s)
			}
			for _, s := range steps {
				s.bindQuit(func() {})
				s.release()
				s.bindSession(nil)
			}
		}

		quit := func() {
			sess.quit()
			detach()
			if onAbandon != nil {
				onAbandon()
			}
		}

		for _, s := range steps {
			s.bindQuit(quit)
			s.bindSession(sess)
		}
		for _, s := range steps {
			host.Mount(s)
		}

		host.AfterSettled(func() {
			for _, s := range steps {
				s.release()
				s.ClearAndHide()
			}
			trigger(value, quit, func(out T, _ func()) {
				sess.completed(out)
				detach()
				if onComplete != nil {
					onComplete(out)
				}
			})
		})
	}
}
