// Package module defines the module contract and the bootstrap port registry
package module

import (
	"slices"
	"sync"

	phttp "wikicord/internal/platform/net/http"
)

// Module is what the composition root mounts
// it lives apart from modkit so a module can export its own ports type without import knots
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// Registry records mounted modules and their exposed ports in mount order
// one per composition root, so tests can mount the API repeatedly
type Registry struct {
	mu    sync.RWMutex
	names []string
	ports map[string]any
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{ports: map[string]any{}}
}

// Register records ports for name, a second registration under the same name panics
func (r *Registry) Register(name string, ports any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.ports[name]; dup {
		panic("module: duplicate module name " + name)
	}
	r.names = append(r.names, name)
	r.ports[name] = ports
}

// Names lists registered modules in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.names)
}

// PortsAs fetches the port set registered under name as T
func PortsAs[T any](r *Registry, name string) (T, bool) {
	r.mu.RLock()
	v, ok := r.ports[name]
	r.mu.RUnlock()
	out, ok2 := v.(T)
	return out, ok && ok2
}
