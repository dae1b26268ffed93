package parser

import "log/slog"

type options struct {
	logger *slog.Logger
}

// Option configures a parse call.
type Option func(*options)

// WithLogger sets the logger used for per-line warnings.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) *options {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
