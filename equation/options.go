// SPDX-License-Identifier: MIT

package equation

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/lvleq/linalg"
)

// Option configures an Equation. Nil arguments leave the default in place.
type Option func(*options)

type options struct {
	backend Backend
	logger  *zap.Logger
	parser  Parser
	metrics *Metrics
	table   *Table
}

func defaultOptions() options {
	return options{
		backend: linalg.New(),
		logger:  zap.NewNop(),
		parser:  DefaultParser{},
		table:   NewTable(),
	}
}

// WithBackend injects the linear-algebra backend (default linalg.New()).
func WithBackend(b Backend) Option {
	return func(o *options) {
		if b != nil {
			o.backend = b
		}
	}
}

// WithLogger sets the logger. Steps log at debug, failures at warn.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithParser replaces the formula parser.
func WithParser(p Parser) Option {
	return func(o *options) {
		if p != nil {
			o.parser = p
		}
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithTable replaces the operation table, e.g. one extended via Register.
func WithTable(t *Table) Option {
	return func(o *options) {
		if t != nil {
			o.table = t
		}
	}
}
