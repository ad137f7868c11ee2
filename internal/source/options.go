package source

import "go.uber.org/zap"

type options struct {
	logger *zap.Logger
}

// Option configures a source.
type Option func(*options)

// WithLogger sets the logger used to report skipped records.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
