package app

import (
	"github.com/samber/do/v2"

	"github.com/nfrund/golfjourneys/internal/bundle"
	"github.com/nfrund/golfjourneys/internal/config"
	"github.com/nfrund/golfjourneys/internal/module"
	"github.com/nfrund/golfjourneys/internal/viewmodule"
)

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled.
func NewModules(i do.Injector) []module.Module {
	cfg := do.MustInvoke[*config.Config](i)

	return []module.Module{
		// Add new application modules here.
		viewmodule.New(
			do.MustInvoke[*bundle.Bundle](i),
			viewmodule.WithWatch(cfg.BundleWatch),
		),
	}
}
