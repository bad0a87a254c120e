// Package app assembles the view module and the services it runs on.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/samber/do/v2"

	"github.com/nfrund/golfjourneys/internal/bundle"
	"github.com/nfrund/golfjourneys/internal/config"
	"github.com/nfrund/golfjourneys/internal/goals"
	"github.com/nfrund/golfjourneys/internal/module"
	"github.com/nfrund/golfjourneys/internal/pubsub"
	"github.com/nfrund/golfjourneys/internal/settings"
	"github.com/nfrund/golfjourneys/internal/viewmodule"
	"github.com/nfrund/golfjourneys/internal/views"
)

// App owns the injector and the module list.
type App struct {
	Config   *config.Config
	Injector do.Injector
	Modules  []module.Module
}

// New builds the injector and registers every module.
func New(cfg *config.Config) (*App, error) {
	injector := do.New()
	provideServices(injector, cfg)

	a := &App{
		Config:   cfg,
		Injector: injector,
	}

	// Resolving the bundle up front surfaces a malformed disk manifest here
	// rather than on first use.
	if _, err := a.bundle(); err != nil {
		return nil, fmt.Errorf("failed to load bundle: %w", err)
	}

	a.Modules = NewModules(injector)
	for _, m := range a.Modules {
		slog.Debug("Registering module", "module", m.Name())
		if err := m.Register(injector); err != nil {
			return nil, fmt.Errorf("failed to register module %s: %w", m.Name(), err)
		}
	}

	return a, nil
}

// Boot boots every registered module in order.
func (a *App) Boot(ctx context.Context) error {
	for _, m := range a.Modules {
		slog.Debug("Booting module", "module", m.Name())
		if err := m.Boot(ctx, a.Injector); err != nil {
			return fmt.Errorf("failed to boot module %s: %w", m.Name(), err)
		}
	}
	return nil
}

// Shutdown stops the modules in reverse order and closes the event bus.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	for idx := len(a.Modules) - 1; idx >= 0; idx-- {
		m := a.Modules[idx]
		if err := m.Shutdown(ctx); err != nil {
			slog.Error("Module shutdown failed", "module", m.Name(), "error", err)
			errs = append(errs, fmt.Errorf("shutdown %s: %w", m.Name(), err))
		}
	}

	bridge, err := do.Invoke[*pubsub.WatermillBridge](a.Injector)
	if err == nil {
		if err := bridge.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close event bus: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (a *App) bundle() (*bundle.Bundle, error) {
	return do.Invoke[*bundle.Bundle](a.Injector)
}

// Views returns the registered view module.
func (a *App) Views() *viewmodule.Module {
	return do.MustInvoke[*viewmodule.Module](a.Injector)
}

// Goals returns the shared goal book.
func (a *App) Goals() *goals.Book {
	return do.MustInvoke[*goals.Book](a.Injector)
}

// Settings returns the shared settings store.
func (a *App) Settings() *settings.Store {
	return do.MustInvoke[*settings.Store](a.Injector)
}

// Dependencies returns view dependencies backed by the app's services, with
// strings localized for the configured locale.
func (a *App) Dependencies(goalID uuid.UUID) views.Dependencies {
	return views.Dependencies{
		Localizer: a.Views().Bundle().Localizer(a.Config.Locale),
		Goals:     a.Goals(),
		Settings:  a.Settings(),
		GoalID:    goalID,
	}
}
