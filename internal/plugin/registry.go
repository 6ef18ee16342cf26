package plugin

import (
	"context"
	"fmt"
	"sync"

	"git.home.luguber.info/inful/staticfiles/internal/build"
	"git.home.luguber.info/inful/staticfiles/internal/errors"
	"git.home.luguber.info/inful/staticfiles/internal/logfields"
	"git.home.luguber.info/inful/staticfiles/internal/observability"
)

// Registry holds reporters in registration order.
type Registry struct {
	mu        sync.RWMutex
	reporters []Reporter
	byName    map[string]Reporter
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Reporter)}
}

// Register adds a reporter. Names must be unique.
func (r *Registry) Register(p Reporter) error {
	if p == nil {
		return fmt.Errorf("cannot register nil plugin")
	}
	metadata := p.Metadata()
	if err := metadata.Validate(); err != nil {
		return fmt.Errorf("invalid plugin metadata: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[metadata.Name]; exists {
		return fmt.Errorf("plugin %s already registered", metadata.Name)
	}
	r.byName[metadata.Name] = p
	r.reporters = append(r.reporters, p)
	return nil
}

// Get retrieves a reporter by name.
func (r *Registry) Get(name string) (Reporter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("plugin %s not found", name)
	}
	return p, nil
}

// List returns all reporters in registration order.
func (r *Registry) List() []Reporter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Reporter, len(r.reporters))
	copy(out, r.reporters)
	return out
}

// Count returns the number of registered reporters.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.reporters)
}

// Dispatch hands event to every reporter in registration order. The first
// failure stops dispatch and is returned wrapped in a PluginError. Failures
// that carry no classification are classified as plugin errors.
func (r *Registry) Dispatch(ctx context.Context, event build.Event, opts build.Options) error {
	for _, p := range r.List() {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := p.Metadata().Name
		observability.DebugContext(ctx, "Dispatching build event", logfields.Plugin(name), logfields.Event(string(event.Type)))
		if err := p.Report(ctx, event, opts); err != nil {
			if !errors.IsClassified(err) {
				err = errors.PluginError("reporter failed").WithCause(err).
					WithContext("plugin", name).
					Build()
			}
			return NewPluginError(name, "report", err)
		}
	}
	return nil
}
