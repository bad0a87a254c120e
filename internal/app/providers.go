package app

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/nfrund/golfjourneys/internal/bundle"
	"github.com/nfrund/golfjourneys/internal/config"
	"github.com/nfrund/golfjourneys/internal/domain"
	"github.com/nfrund/golfjourneys/internal/goals"
	"github.com/nfrund/golfjourneys/internal/logging"
	"github.com/nfrund/golfjourneys/internal/pubsub"
	"github.com/nfrund/golfjourneys/internal/settings"
)

// provideServices registers the core services every module can depend on.
func provideServices(i do.Injector, cfg *config.Config) {
	do.ProvideValue(i, cfg)

	do.Provide(i, func(i do.Injector) (*bundle.Bundle, error) {
		return bundle.Load(bundle.Options{
			Source: bundle.Source(cfg.BundleMode),
			Path:   cfg.BundlePath,
		})
	})

	do.Provide(i, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		return pubsub.NewWatermillBridge(logging.ParseLevel(cfg.LogLevel) == slog.LevelDebug), nil
	})
	do.Provide(i, func(i do.Injector) (pubsub.Publisher, error) {
		bridge, err := do.Invoke[*pubsub.WatermillBridge](i)
		if err != nil {
			return nil, err
		}
		return bridge, nil
	})
	do.Provide(i, func(i do.Injector) (pubsub.Subscriber, error) {
		bridge, err := do.Invoke[*pubsub.WatermillBridge](i)
		if err != nil {
			return nil, err
		}
		return bridge, nil
	})

	do.Provide(i, func(i do.Injector) (*goals.Book, error) {
		pub, err := do.Invoke[pubsub.Publisher](i)
		if err != nil {
			return nil, err
		}
		return goals.NewBook(goals.WithPublisher(pub)), nil
	})

	do.Provide(i, func(i do.Injector) (*settings.Store, error) {
		pub, err := do.Invoke[pubsub.Publisher](i)
		if err != nil {
			return nil, err
		}
		return settings.NewStore(domain.UserSettings{}, pub), nil
	})
}
