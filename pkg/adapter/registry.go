package adapter

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/sqlframe/pkg/core"
)

// Factory creates an unconnected adapter. The logger is never nil.
type Factory func(*slog.Logger) Adapter

// Registry maps dialect names to adapter factories.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	logger    *slog.Logger
}

var _ Resolver = (*Registry)(nil)

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		factories: make(map[string]Factory),
		logger:    logger,
	}
}

// Register adds an adapter factory, replacing any previous one for name.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[strings.ToLower(name)] = factory
}

// Get retrieves an adapter factory by dialect name.
func (r *Registry) Get(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[strings.ToLower(name)]
	return f, ok
}

// IsRegistered checks if a backend is registered for the dialect.
func (r *Registry) IsRegistered(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// List returns all registered dialect names (sorted).
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewAdapter creates an unconnected adapter for the dialect.
func (r *Registry) NewAdapter(dialectName string) (Adapter, error) {
	factory, ok := r.Get(dialectName)
	if !ok {
		return nil, &core.BackendUnavailableError{
			Dialect:   dialectName,
			Available: r.List(),
		}
	}
	return factory(r.logger.With(slog.String("dialect", dialectName))), nil
}

// Resolve returns an ExecFunc for the dialect. No connection is made until
// the ExecFunc is called.
func (r *Registry) Resolve(dialectName string) (ExecFunc, error) {
	factory, ok := r.Get(dialectName)
	if !ok {
		return nil, &core.BackendUnavailableError{
			Dialect:   dialectName,
			Available: r.List(),
		}
	}
	logger := r.logger.With(slog.String("dialect", dialectName))

	return func(ctx context.Context, conn core.ConnectionConfig, query string, args ...any) (*core.ResultSet, error) {
		a := factory(logger)
		if err := a.Connect(ctx, conn); err != nil {
			return nil, err
		}
		defer func() {
			if err := a.Close(); err != nil {
				logger.Warn("failed to close connection", slog.Any("error", err))
			}
		}()
		return a.Query(ctx, query, args...)
	}, nil
}

var defaultRegistry = NewRegistry(nil)

// Default returns the process-wide registry that adapter packages populate
// from init().
func Default() *Registry {
	return defaultRegistry
}

// Register adds an adapter factory to the default registry.
// Called by adapter implementations in their init() functions.
func Register(name string, factory Factory) {
	defaultRegistry.Register(name, factory)
}

// Get retrieves an adapter factory from the default registry.
func Get(name string) (Factory, bool) {
	return defaultRegistry.Get(name)
}

// ListAdapters returns all dialects with a registered backend (sorted).
func ListAdapters() []string {
	return defaultRegistry.List()
}

// IsRegistered checks if the default registry has a backend for name.
func IsRegistered(name string) bool {
	return defaultRegistry.IsRegistered(name)
}

// NewAdapter creates an unconnected adapter from the default registry.
func NewAdapter(dialectName string) (Adapter, error) {
	return defaultRegistry.NewAdapter(dialectName)
}
