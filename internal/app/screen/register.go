package screen

import (
	"dummy-data/internal/app/registry"
	"dummy-data/internal/app/usecases"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	RoutePath       = "/dummy-data"
	RouteGroup      = "navigation"
	SidebarLabelKey = "dummyDataSetting.sidebarLabel"
	RouteIcon       = "code-braces-box"
)

type Deps struct {
	Service usecases.DummyDataService
	Options Options
}

// AttachService is the wrapper that hands the network client to a mounted
// screen. Components of other types pass through unchanged.
func AttachService(svc usecases.DummyDataService) registry.Wrapper {
	return func(c tea.Model) tea.Model {
		if m, ok := c.(Model); ok {
			return m.WithService(svc)
		}
		return c
	}
}

func Register(reg *registry.Registry, deps Deps) error {
	opts := deps.Options
	return reg.Register(registry.Route{
		Group:           RouteGroup,
		Path:            RoutePath,
		SidebarLabelKey: SidebarLabelKey,
		Icon:            RouteIcon,
		Wrappers:        []registry.Wrapper{AttachService(deps.Service)},
		Component: func() tea.Model {
			return New(opts)
		},
	})
}
