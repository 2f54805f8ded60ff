package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	ErrDuplicateRoute = errors.New("route already registered")
	ErrEmptyPath      = errors.New("route path is empty")
	ErrNoComponent    = errors.New("route has no component")
	ErrRouteNotFound  = errors.New("route not found")
)

type ComponentFactory func() tea.Model

// Wrapper attaches cross-cutting behaviour to a component before it is
// mounted.
type Wrapper func(tea.Model) tea.Model

type Route struct {
	Group           string
	Path            string
	SidebarLabelKey string
	Icon            string
	Wrappers        []Wrapper
	Component       ComponentFactory
}

// Registry holds the routes the host bootstrap registered. There is no
// package-level default instance.
type Registry struct {
	mu     sync.RWMutex
	routes map[string]Route
}

func New() *Registry {
	return &Registry{routes: map[string]Route{}}
}

func (r *Registry) Register(route Route) error {
	route.Path = strings.TrimSpace(route.Path)
	if route.Path == "" {
		return ErrEmptyPath
	}
	if route.Component == nil {
		return fmt.Errorf("%w: %s", ErrNoComponent, route.Path)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.routes[route.Path]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRoute, route.Path)
	}
	r.routes[route.Path] = route
	return nil
}

// Lookup builds the component for path with its wrappers applied in
// registration order.
func (r *Registry) Lookup(path string) (tea.Model, error) {
	r.mu.RLock()
	route, ok := r.routes[path]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRouteNotFound, path)
	}

	component := route.Component()
	for _, wrap := range route.Wrappers {
		component = wrap(component)
	}
	return component, nil
}

func (r *Registry) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make([]Route, 0, len(r.routes))
	for _, route := range r.routes {
		routes = append(routes, route)
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Group != routes[j].Group {
			return routes[i].Group < routes[j].Group
		}
		return routes[i].Path < routes[j].Path
	})
	return routes
}
