package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"splashd/internal/config"
	"splashd/internal/event"
	"splashd/internal/httpapi"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket server",
		Example: "  splashd serve --games-dir ./games --consent-domain\n" +
			"  splashd serve --config splashd.yaml --watch-config",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cmd, cfg)
		},
	}
	cmd.Flags().String("addr", "", "HTTP listen address, e.g. :8080")
	cmd.Flags().String("cors-origins", "", "Comma separated list of allowed CORS origins")
	cmd.Flags().Bool("watch-config", false, "Reload the config file when it changes")
	return cmd
}

func serve(ctx context.Context, cmd *cobra.Command, cfg config.Config) error {
	log := newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())

	svc, err := buildService(cfg, log, true)
	if err != nil {
		return err
	}
	defer svc.Close()

	httpapi.SetLogger(log.With().Str("component", "http").Logger())
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(len(cfg.CORSOrigins) > 0, cfg.CORSOrigins,
		[]string{http.MethodGet, http.MethodPost, http.MethodOptions},
		[]string{"Content-Type", "X-Log-Level", "X-Request-Id"})
	httpapi.SetBaseContext(ctx)

	if watch, _ := cmd.Flags().GetBool("watch-config"); watch {
		if err := watchConfig(ctx, cmd, svc.Dispatcher(), log); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("games_dir", cfg.GamesDir).Msg("splashd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}

// watchConfig re-resolves the configuration whenever the config file changes
// and broadcasts ConfigReloaded with the new splash options.
func watchConfig(ctx context.Context, cmd *cobra.Command, bus *event.Dispatcher, log zerolog.Logger) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return errors.New("--watch-config requires --config")
	}
	return config.Watch(ctx, path, func(_ config.Config, err error) {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("config reload failed")
			return
		}
		// Environment and flags still take precedence over the file.
		cfg, err := resolveConfig(cmd)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("config reload rejected")
			return
		}
		payload := event.Payload{"options": splashOptions(cfg), "path": path}
		if _, err := bus.Broadcast(event.ConfigReloaded, payload); err != nil {
			log.Error().Err(err).Msg("config reload listener failed")
			return
		}
		log.Info().Str("path", path).Msg("config reloaded")
	})
}
