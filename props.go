package hedgerow

import (
	"sort"
)

// Stores is the read-only view of the registry of named state containers.
// Components may read stores; creating or removing them is the application
// root's job.
type Stores interface {
	Lookup(name string) (any, bool)
	Names() []string
}

// StoreAs looks up a store by name and asserts it to T.
func StoreAs[T any](stores Stores, name string) (T, bool) {
	var zero T
	if stores == nil {
		return zero, false
	}
	v, ok := stores.Lookup(name)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Registry holds the application's named state containers. It is owned by the
// application root and handed to components only as Stores.
//
// Registry is not safe for concurrent use; mutate it between frames only.
type Registry struct {
	stores map[string]any
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{stores: make(map[string]any)}
}

// Register adds or replaces the store under name.
func (r *Registry) Register(name string, store any) {
	if r.stores == nil {
		r.stores = make(map[string]any)
	}
	r.stores[name] = store
}

// Unregister removes the store under name. No-op if absent.
func (r *Registry) Unregister(name string) {
	delete(r.stores, name)
}

// Lookup returns the store registered under name.
func (r *Registry) Lookup(name string) (any, bool) {
	v, ok := r.stores[name]
	return v, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.stores))
	for name := range r.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type emptyStores struct{}

func (emptyStores) Lookup(string) (any, bool) { return nil, false }
func (emptyStores) Names() []string           { return nil }

// PropsContext is the read-only view a component's template functions receive:
// its resolved props plus access to the shared stores.
type PropsContext[P any] struct {
	props  P
	stores Stores
}

// NewPropsContext wraps props and stores. A nil stores is replaced by an
// empty view.
func NewPropsContext[P any](props P, stores Stores) PropsContext[P] {
	if stores == nil {
		stores = emptyStores{}
	}
	return PropsContext[P]{props: props, stores: stores}
}

// Props returns the component's resolved input props.
func (pc PropsContext[P]) Props() P { return pc.props }

// Stores returns the shared store registry.
func (pc PropsContext[P]) Stores() Stores {
	if pc.stores == nil {
		return emptyStores{}
	}
	return pc.stores
}

// Store looks up a single store by name.
func (pc PropsContext[P]) Store(name string) (any, bool) {
	return pc.Stores().Lookup(name)
}
