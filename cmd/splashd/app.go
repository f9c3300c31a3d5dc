package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"splashd/internal/config"
	"splashd/internal/event"
	"splashd/internal/registry"
	"splashd/internal/splash"
)

func splashOptions(cfg config.Config) splash.Options {
	return splash.Options{
		Prefix:            cfg.Prefix,
		Version:           cfg.VersionLabel,
		ConsentDomain:     cfg.ConsentDomain,
		SplashContainerID: cfg.SplashContainerID,
		DefaultLang:       cfg.DefaultLang,
	}
}

// buildService wires the dispatcher and the splash service. The dispatcher is
// the single instance shared by every component of the process.
func buildService(cfg config.Config, log zerolog.Logger, metrics bool) (*splash.Service, error) {
	games, err := registry.LoadDir(cfg.GamesDir)
	if err != nil {
		return nil, fmt.Errorf("load games: %w", err)
	}
	bus := event.New(
		event.WithLogger(log.With().Str("component", "event").Logger()),
		event.WithFailurePolicy(event.ParseFailurePolicy(cfg.FailurePolicy)),
		event.WithMetrics(metrics),
	)
	svc, err := splash.NewService(bus, games, splashOptions(cfg), log.With().Str("component", "splash").Logger())
	if err != nil {
		return nil, err
	}
	log.Info().Int("games", len(games)).Str("dir", cfg.GamesDir).Str("failure_policy", bus.Policy().String()).Msg("splash service ready")
	return svc, nil
}
