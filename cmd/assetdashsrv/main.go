package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/assetdash/assetdash/internal/catalogsrv/apis"
	"github.com/assetdash/assetdash/internal/catalogsrv/catalogstore"
	"github.com/assetdash/assetdash/internal/catalogsrv/catalogview"
	"github.com/assetdash/assetdash/internal/catalogsrv/config"
	"github.com/assetdash/assetdash/internal/catalogsrv/reloader"
	"github.com/assetdash/assetdash/internal/catalogsrv/server"
	"github.com/assetdash/assetdash/internal/common/logtrace"
)

func init() {
	logtrace.InitLogger()
}

type cmdoptions struct {
	configFile *string
}

func main() {
	slog := log.With().Str("state", "init").Logger()
	// Parse command line flags
	opt := parseFlags()

	if *opt.configFile != "" {
		slog.Info().Str("config_file", *opt.configFile).Msg("loading config file")
	}
	if err := config.LoadConfig(*opt.configFile); err != nil {
		slog.Error().Str("config_file", *opt.configFile).Err(err).Msg("unable to load config file")
		os.Exit(1)
	}
	cfg := config.Config()
	logtrace.InitLoggerWithLevel(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.Logger.WithContext(ctx)

	source := cfg.CatalogSource
	if source == "" {
		source = catalogstore.BundledSource
	}
	load := reloader.SourceLoader(catalogstore.LoadOptions{
		Source:  source,
		Retries: cfg.CatalogFetchRetries,
		Timeout: cfg.CatalogFetchTimeout(),
	})
	catalog, err := load(ctx)
	if err != nil {
		slog.Error().Str("source", source).Err(err).Msg("unable to load catalog")
		os.Exit(1)
	}
	backend := apis.NewBackend(catalog, catalogview.NewCache(cfg.ViewCacheSize))
	defer backend.Events.Shutdown()

	rl := reloader.New(backend, load, cfg.CatalogRefreshInterval())
	go rl.Run(ctx)
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				log.Info().Msg("SIGHUP received, reloading catalog")
				rl.Trigger()
			}
		}
	}()

	s, err := server.CreateNewServer(backend)
	if err != nil {
		slog.Error().Err(err).Msg("unable to create server")
		os.Exit(1)
	}
	s.MountHandlers()

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.ServerPort).Int("assets", catalog.Len()).Msg("catalog server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}

func parseFlags() cmdoptions {
	var opt cmdoptions
	opt.configFile = flag.String("config", "", "Path to the config file, e.g. "+config.DefaultConfigFile)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options]\n\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
	}
	flag.Parse()
	return opt
}
