package service

import (
	"strings"

	"wikicord/internal/core/interaction"
	perr "wikicord/internal/platform/errors"
	"wikicord/internal/services/api/interactions/domain"
)

// Registry maps command names to commands, fixed after construction
type Registry struct {
	byName map[string]domain.Command
	order  []domain.Command
}

// NewRegistry builds a registry; empty or duplicate names are rejected
func NewRegistry(cmds ...domain.Command) (*Registry, error) {
	r := &Registry{byName: make(map[string]domain.Command, len(cmds))}
	for _, c := range cmds {
		if c == nil {
			return nil, perr.InvalidArgf("nil command")
		}
		name := strings.TrimSpace(c.Schema().Name)
		if name == "" {
			return nil, perr.InvalidArgf("command without a name")
		}
		if _, dup := r.byName[name]; dup {
			return nil, perr.WithField(perr.InvalidArgf("duplicate command %q", name), name)
		}
		r.byName[name] = c
		r.order = append(r.order, c)
	}
	return r, nil
}

// MustRegistry is NewRegistry for static command tables
func MustRegistry(cmds ...domain.Command) *Registry {
	r, err := NewRegistry(cmds...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the command registered under name
func (r *Registry) Lookup(name string) (domain.Command, bool) {
	if r == nil {
		return nil, false
	}
	c, ok := r.byName[name]
	return c, ok
}

// Len returns the number of registered commands
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Schemas returns the registration payloads in registration order
func (r *Registry) Schemas() []interaction.CommandSchema {
	if r == nil {
		return []interaction.CommandSchema{}
	}
	out := make([]interaction.CommandSchema, 0, len(r.order))
	for _, c := range r.order {
		out = append(out, c.Schema())
	}
	return out
}
