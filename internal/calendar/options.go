package calendar

import (
	"time"

	"go.uber.org/zap"
)

type options struct {
	now    func() time.Time
	logger *zap.Logger
}

// Option настраивает компонент календаря
type Option func(*options)

// WithClock подменяет источник текущего времени (для тестов и фиксированного пояса)
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithLogger задаёт логгер компонента
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
