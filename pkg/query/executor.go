// Package query compiles preview queries and runs queries through the
// format, validate, resolve and invoke pipeline.
package query

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/sqlframe/pkg/adapter"
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/format"
	"github.com/leapstack-labs/sqlframe/pkg/safety"

	// Policy data for every known dialect.
	_ "github.com/leapstack-labs/sqlframe/pkg/dialects/all"
)

// Executor runs queries. It is safe for concurrent use; every call is
// independent and nothing is cached.
type Executor struct {
	validator safety.Validator
	resolver  adapter.Resolver
	logger    *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithValidator replaces the default safety policy.
func WithValidator(v safety.Validator) Option {
	return func(e *Executor) { e.validator = v }
}

// WithResolver replaces the default adapter registry.
func WithResolver(r adapter.Resolver) Option {
	return func(e *Executor) { e.resolver = r }
}

// WithLogger sets the logger. nil discards output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// NewExecutor creates an executor backed by safety.NewPolicy and the default
// adapter registry unless options say otherwise.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.validator == nil {
		e.validator = safety.NewPolicy()
	}
	if e.resolver == nil {
		e.resolver = adapter.Default()
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

// checker is implemented by validators that can explain a rejection.
type checker interface {
	Check(canonical, dialect string) safety.Verdict
}

// lister is implemented by resolvers that can name their backends.
type lister interface {
	List() []string
}

// Execute canonicalizes, validates, resolves and runs q. The backend receives
// q.Text unchanged; the canonical form is only validated and logged.
//
// Errors are *core.MaliciousQueryError, *core.BackendUnavailableError or
// *core.BackendExecutionError.
func (e *Executor) Execute(ctx context.Context, q core.Query) (*core.ResultSet, error) {
	canonical := q.Canonical
	if canonical == "" {
		canonical = format.SQL(q.Text, q.Dialect)
	}

	logger := e.logger.With(
		slog.String("query_id", uuid.NewString()),
		slog.String("dialect", q.Dialect),
		slog.String("provenance", q.Provenance.String()),
	)
	if q.Dataset != "" {
		logger = logger.With(slog.String("dataset", q.Dataset))
	}
	logger.Debug("executing query", slog.String("sql", canonical))

	if !e.isSafe(logger, canonical, q.Dialect) {
		return nil, &core.MaliciousQueryError{Dialect: q.Dialect, Query: canonical}
	}

	exec, err := e.resolver.Resolve(q.Dialect)
	if err != nil {
		logger.Debug("backend unavailable", slog.Any("error", err))
		return nil, e.unavailable(q.Dialect, err)
	}

	start := time.Now()
	result, err := exec(ctx, q.Connection, q.Text, q.Args...)
	if err != nil {
		if errors.Is(err, core.ErrDriverNotInstalled) {
			logger.Debug("backend unavailable", slog.Any("error", err))
			return nil, e.unavailable(q.Dialect, err)
		}
		logger.Debug("query failed", slog.Any("error", err), slog.Duration("elapsed", time.Since(start)))
		return nil, &core.BackendExecutionError{Dialect: q.Dialect, Err: err}
	}
	if result == nil {
		result = &core.ResultSet{}
	}

	logger.Debug("query complete",
		slog.Int("rows", result.Len()),
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

// ExecuteSQL runs raw, user-supplied SQL.
func (e *Executor) ExecuteSQL(ctx context.Context, text, dialect string, conn core.ConnectionConfig, args ...any) (*core.ResultSet, error) {
	q := core.RawQuery(text, dialect, args...)
	q.Connection = conn
	return e.Execute(ctx, q)
}

func (e *Executor) isSafe(logger *slog.Logger, canonical, dialect string) bool {
	if c, ok := e.validator.(checker); ok {
		v := c.Check(canonical, dialect)
		if !v.Safe {
			logger.Warn("query rejected", slog.String("rule", v.RuleID), slog.String("reason", v.Reason))
		}
		return v.Safe
	}

	if !e.validator.IsSafe(canonical, dialect) {
		logger.Warn("query rejected")
		return false
	}
	return true
}

// unavailable normalizes a resolution failure into *core.BackendUnavailableError.
func (e *Executor) unavailable(dialect string, err error) error {
	var target *core.BackendUnavailableError
	if errors.As(err, &target) {
		return target
	}
	out := &core.BackendUnavailableError{Dialect: dialect, Err: err}
	if l, ok := e.resolver.(lister); ok {
		out.Available = l.List()
	}
	return out
}
