package wizards

import (
	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/BrianJOC/ndx-builder/forms"
)

// Config controls how the wizards are assembled.
type Config struct {
	RunOptions []forms.RunOption
	Clipboard  func(string) error
}

// Option mutates Config during construction.
type Option func(*Config)

// WithRunOptions applies opts to every chain the wizard launches, nested
// ones included.
func WithRunOptions(opts ...forms.RunOption) Option {
	return func(cfg *Config) {
		if cfg == nil {
			return
		}
		cfg.RunOptions = append(cfg.RunOptions, opts...)
	}
}

// WithLogger logs every chain run to logger.
func WithLogger(logger *zap.Logger) Option {
	return WithRunOptions(forms.WithLogger(logger))
}

// WithClipboard replaces the system clipboard used by the export step.
func WithClipboard(write func(string) error) Option {
	return func(cfg *Config) {
		if cfg == nil || write == nil {
			return
		}
		cfg.Clipboard = write
	}
}

func newConfig(opts ...Option) Config {
	cfg := Config{Clipboard: clipboard.WriteAll}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
